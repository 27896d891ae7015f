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
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "Empty",
			input: "",
			want:  "",
		},
		{
			name:  "Paragraph",
			input: "hello world\n",
			want:  "Paragraph\n  Text \"hello world\"\n",
		},
		{
			name:  "ParagraphJoinsLines",
			input: "first line\nsecond line\n",
			want:  "Paragraph\n  Text \"first line\\nsecond line\"\n",
		},
		{
			name:  "LazyHeading",
			input: "text line\n# not a header\n",
			want:  "Paragraph\n  Text \"text line\\n# not a header\"\n",
		},
		{
			name:  "Heading",
			input: "# A *big* day\n",
			want:  "Heading 1\n  Text \"A \"\n  Strong\n    Text \"big\"\n  Text \" day\"\n",
		},
		{
			name:  "HeadingAfterBlank",
			input: "text\n\n## Section\n",
			want:  "Paragraph\n  Text \"text\"\nHeading 2\n  Text \"Section\"\n",
		},
		{
			name:  "HeadingLevelClamped",
			input: "####### deep\n",
			want:  "Heading 6\n  Text \"deep\"\n",
		},
		{
			name:  "QuoteWidthTwo",
			input: ">> a\n",
			want:  "BlockQuote 2\n  Paragraph\n    Text \"a\"\n",
		},
		{
			name:  "SingleMarkerIsLiteral",
			input: "> a\n",
			want:  "Paragraph\n  Text \"> a\"\n",
		},
		{
			name:  "QuoteWithInnerBlocks",
			input: ">> outer\n>>\n>>>> inner\n",
			want: "BlockQuote 2\n" +
				"  Paragraph\n    Text \"outer\"\n" +
				"  BlockQuote 2\n    Paragraph\n      Text \"inner\"\n",
		},
		{
			name:  "Fence",
			input: "```go\nx := 1\n```\n",
			want:  "CodeBlock \"go\"\n  \"x := 1\"\n",
		},
		{
			name:  "FenceKeepsMarkupVerbatim",
			input: "```\n# not a heading\n*not bold*\n```\n",
			want:  "CodeBlock \"\"\n  \"# not a heading\"\n  \"*not bold*\"\n",
		},
		{
			name:  "UnterminatedFenceClosesAtEOF",
			input: "```\ncode\n",
			want:  "CodeBlock \"\"\n  \"code\"\n",
		},
		{
			name:  "MathBlock",
			input: "\\[\nE = mc^2\n\\]\n",
			want:  "MathBlock\n  \"E = mc^2\"\n",
		},
		{
			name:  "UnterminatedMathBlockClosesAtEOF",
			input: "\\[\nE = mc^2\n",
			want:  "MathBlock\n  \"E = mc^2\"\n",
		},
		{
			name:  "HTMLBlock",
			input: "<div>\n<b>hi</b>\n</div>\n\nafter\n",
			want: "HTMLBlock\n  \"<div>\"\n  \"<b>hi</b>\"\n  \"</div>\"\n" +
				"Paragraph\n  Text \"after\"\n",
		},
		{
			name:  "FootnoteDefinitionLeavesBlockSequence",
			input: "hi[^1]\n\n[^1]: note\n",
			want:  "Paragraph\n  Text \"hi\"\n  FootnoteReference \"1\"\n",
		},
		{
			name:  "CRLFLineEndings",
			input: "# Title\r\n\r\ntext\r\n",
			want:  "Heading 1\n  Text \"Title\"\nParagraph\n  Text \"text\"\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			doc, _ := Parse([]byte(test.input))
			got := dumpDocument(doc)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Parse(%q) tree (-want +got):\n%s", test.input, diff)
			}
		})
	}
}

func TestCommentStripping(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "InlineComment",
			input: "before <!-- secret --> after\n",
			want:  "Paragraph\n  Text \"before  after\"\n",
		},
		{
			name:  "BlockComment",
			input: "a\n<!--\nsecret\n-->\nb\n",
			want:  "Paragraph\n  Text \"a\"\nParagraph\n  Text \"b\"\n",
		},
		{
			name:  "UnterminatedComment",
			input: "a\n<!-- secret runs to the end\nmore secret\n",
			want:  "Paragraph\n  Text \"a\"\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			doc, diags := Parse([]byte(test.input))
			got := dumpDocument(doc)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("Parse(%q) tree (-want +got):\n%s", test.input, diff)
			}
			if strings.Contains(got, "secret") {
				t.Errorf("comment text leaked into the tree:\n%s", got)
			}
			if len(diags) > 0 {
				t.Errorf("Parse(%q) diagnostics = %v; want none", test.input, diags)
			}
		})
	}
}

func TestVerbatimRoundTrip(t *testing.T) {
	const input = "```python\nprint(\"hello\")\n  indented\n```\n"
	doc, _ := Parse([]byte(input))
	blocks := doc.Blocks()
	if len(blocks) != 1 || blocks[0].Kind() != FencedCodeBlockKind {
		t.Fatalf("Parse(%q) = %s; want a single code block", input, dumpDocument(doc))
	}

	// Re-inserting the captured payload into a new document
	// must reparse to identical block content.
	reinserted := "```python\n" + blocks[0].RawText() + "\n```\n"
	doc2, _ := Parse([]byte(reinserted))
	if diff := cmp.Diff(dumpDocument(doc), dumpDocument(doc2)); diff != "" {
		t.Errorf("reparsed payload differs (-first +second):\n%s", diff)
	}
}

func TestReadDocument(t *testing.T) {
	t.Run("NilReader", func(t *testing.T) {
		_, _, err := ReadDocument(nil)
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("ReadDocument(nil) error = %v; want ErrInvalidInput", err)
		}
	})
	t.Run("Reader", func(t *testing.T) {
		doc, diags, err := ReadDocument(strings.NewReader("# Hi\n"))
		if err != nil {
			t.Fatal("ReadDocument:", err)
		}
		if len(diags) > 0 {
			t.Errorf("diagnostics = %v; want none", diags)
		}
		if got, want := dumpDocument(doc), "Heading 1\n  Text \"Hi\"\n"; got != want {
			t.Errorf("tree = %q; want %q", got, want)
		}
	})
}

func dumpDocument(doc *Document) string {
	sb := new(strings.Builder)
	for _, b := range doc.Blocks() {
		dumpBlock(sb, b, "")
	}
	return sb.String()
}

func dumpBlock(sb *strings.Builder, b *Block, indent string) {
	switch b.Kind() {
	case ParagraphKind:
		fmt.Fprintf(sb, "%sParagraph\n", indent)
		dumpInlines(sb, b.Inlines(), indent+"  ")
	case HeadingKind:
		fmt.Fprintf(sb, "%sHeading %d\n", indent, b.HeadingLevel())
		dumpInlines(sb, b.Inlines(), indent+"  ")
	case FencedCodeBlockKind:
		fmt.Fprintf(sb, "%sCodeBlock %q\n", indent, b.InfoString())
		for _, line := range b.Lines() {
			fmt.Fprintf(sb, "%s  %q\n", indent, line)
		}
	case MathBlockKind:
		fmt.Fprintf(sb, "%sMathBlock\n", indent)
		for _, line := range b.Lines() {
			fmt.Fprintf(sb, "%s  %q\n", indent, line)
		}
	case HTMLBlockKind:
		fmt.Fprintf(sb, "%sHTMLBlock\n", indent)
		for _, line := range b.Lines() {
			fmt.Fprintf(sb, "%s  %q\n", indent, line)
		}
	case BlockQuoteKind:
		fmt.Fprintf(sb, "%sBlockQuote %d\n", indent, b.QuoteDepth())
		for _, child := range b.BlockChildren() {
			dumpBlock(sb, child, indent+"  ")
		}
	case FootnoteDefinitionKind:
		fmt.Fprintf(sb, "%sFootnoteDefinition %q\n", indent, b.FootnoteLabel())
		dumpInlines(sb, b.Inlines(), indent+"  ")
	default:
		fmt.Fprintf(sb, "%s%v\n", indent, b.Kind())
	}
}

func dumpInlines(sb *strings.Builder, inlines []*Inline, indent string) {
	for _, inline := range inlines {
		switch inline.Kind() {
		case TextKind:
			fmt.Fprintf(sb, "%sText %q\n", indent, inline.Text())
		case StrongKind:
			fmt.Fprintf(sb, "%sStrong\n", indent)
			dumpInlines(sb, inline.Children(), indent+"  ")
		case EmphasisKind:
			fmt.Fprintf(sb, "%sEmphasis\n", indent)
			dumpInlines(sb, inline.Children(), indent+"  ")
		case CodeSpanKind:
			fmt.Fprintf(sb, "%sCodeSpan %q\n", indent, inline.Text())
		case MathSpanKind:
			fmt.Fprintf(sb, "%sMathSpan %q\n", indent, inline.Text())
		case LinkKind:
			fmt.Fprintf(sb, "%sLink %q\n", indent, inline.Destination())
			dumpInlines(sb, inline.Children(), indent+"  ")
		case ImageKind:
			fmt.Fprintf(sb, "%sImage %q -> %q", indent, inline.AltText(), inline.Destination())
			if w, ok := inline.Attributes()["width"]; ok {
				fmt.Fprintf(sb, " width=%s", w)
			}
			sb.WriteString("\n")
		case FootnoteReferenceKind:
			fmt.Fprintf(sb, "%sFootnoteReference %q\n", indent, inline.ReferenceLabel())
		default:
			fmt.Fprintf(sb, "%s%v\n", indent, inline.Kind())
		}
	}
}
