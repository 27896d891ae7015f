// Copyright 2024 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package draftmark

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// sampleTree is the parse of testdata/sample.md,
// which exercises the whole dialect in one document.
const sampleTree = `Heading 1
  Text "Hands on with draftmark"
Paragraph
  Text "This post shows "
  Strong
    Text "bold"
  Text ", "
  Emphasis
    Text "italic"
  Text ", "
  CodeSpan "inline code"
  Text ", and "
  MathSpan "e^{i\\pi}"
  Text " math.\n# still the same paragraph"
Paragraph
  Text "Escaped *stars* stay literal."
Heading 2
  Text "Fences"
CodeBlock "go"
  "fmt.Println(\"hi\")"
MathBlock
  "\\int_0^1 x\\,dx = \\frac{1}{2}"
BlockQuote 2
  Paragraph
    Text "Quoted wisdom."
    FootnoteReference "src"
  BlockQuote 2
    Paragraph
      Text "Nested quote."
Paragraph
  Text "> A single marker is plain text."
Paragraph
  Text "See "
  Link "https://example.com/docs"
    Text "the docs"
  Text " and "
  Image "a chart" -> "images/chart.png" width=50
  Text " here."
HTMLBlock
  "<figure class=\"wide\">"
  "<img src=\"raw.png\">"
  "</figure>"
`

func TestSampleDocument(t *testing.T) {
	source, err := os.ReadFile(filepath.Join("testdata", "sample.md"))
	if err != nil {
		t.Fatal(err)
	}
	doc, diags := Parse(source)
	if len(diags) > 0 {
		t.Errorf("diagnostics = %v; want none", diags)
	}

	if diff := cmp.Diff(sampleTree, dumpDocument(doc)); diff != "" {
		t.Errorf("tree (-want +got):\n%s", diff)
	}
	if !doc.Footnotes().MatchReference("src") {
		t.Error("MatchReference(\"src\") = false; want true")
	}

	buf := new(bytes.Buffer)
	if err := RenderHTML(buf, doc); err != nil {
		t.Fatal("RenderHTML:", err)
	}
	if bytes.Contains(buf.Bytes(), []byte("editors")) {
		t.Error("comment text leaked into the rendered HTML")
	}
}
