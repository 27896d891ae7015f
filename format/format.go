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

// Package format writes a parsed document back out as source text
// that parses to an equivalent document.
package format

import (
	"io"
	"strings"

	"zombiezen.com/go/draftmark"
)

// Format writes doc as Draftmark source to w.
// Verbatim payloads are emitted byte for byte;
// literal text is re-escaped so that the output reparses
// to a structurally identical document.
// Footnote definitions are appended after the blocks in label order.
func Format(w io.Writer, doc *draftmark.Document) error {
	ww := &errWriter{w: w}
	for i, b := range doc.Blocks() {
		if i > 0 {
			ww.WriteString("\n")
		}
		writeBlock(ww, b, "")
	}
	footnotes := doc.Footnotes()
	for _, label := range footnotes.Labels() {
		def, _ := footnotes.Lookup(label)
		ww.WriteString("\n[^")
		ww.WriteString(def.Label)
		ww.WriteString("]: ")
		ww.WriteString(inlineSource(def.Content))
		ww.WriteString("\n")
	}
	return ww.err
}

func writeBlock(w *errWriter, b *draftmark.Block, prefix string) {
	switch b.Kind() {
	case draftmark.ParagraphKind:
		for _, line := range strings.Split(inlineSource(b.Inlines()), "\n") {
			w.WriteString(prefix)
			w.WriteString(line)
			w.WriteString("\n")
		}
	case draftmark.HeadingKind:
		w.WriteString(prefix)
		w.WriteString(strings.Repeat("#", b.HeadingLevel()))
		w.WriteString(" ")
		w.WriteString(inlineSource(b.Inlines()))
		w.WriteString("\n")
	case draftmark.FencedCodeBlockKind:
		w.WriteString(prefix)
		w.WriteString("```")
		w.WriteString(b.InfoString())
		w.WriteString("\n")
		for _, line := range b.Lines() {
			w.WriteString(prefix)
			w.WriteString(line)
			w.WriteString("\n")
		}
		w.WriteString(prefix)
		w.WriteString("```\n")
	case draftmark.MathBlockKind:
		w.WriteString(prefix)
		w.WriteString("\\[\n")
		for _, line := range b.Lines() {
			w.WriteString(prefix)
			w.WriteString(line)
			w.WriteString("\n")
		}
		w.WriteString(prefix)
		w.WriteString("\\]\n")
	case draftmark.HTMLBlockKind:
		for _, line := range b.Lines() {
			w.WriteString(prefix)
			w.WriteString(line)
			w.WriteString("\n")
		}
	case draftmark.BlockQuoteKind:
		marker := strings.Repeat(">", b.QuoteDepth())
		for i, child := range b.BlockChildren() {
			if i > 0 {
				// Blank separator line inside the quote.
				w.WriteString(prefix)
				w.WriteString(marker)
				w.WriteString("\n")
			}
			writeBlock(w, child, prefix+marker+" ")
		}
	}
}

func inlineSource(inlines []*draftmark.Inline) string {
	sb := new(strings.Builder)
	writeInlines(sb, inlines)
	return sb.String()
}

func writeInlines(sb *strings.Builder, inlines []*draftmark.Inline) {
	for _, inline := range inlines {
		switch inline.Kind() {
		case draftmark.TextKind:
			writeEscaped(sb, inline.Text())
		case draftmark.StrongKind:
			sb.WriteString("*")
			writeInlines(sb, inline.Children())
			sb.WriteString("*")
		case draftmark.EmphasisKind:
			sb.WriteString("_")
			writeInlines(sb, inline.Children())
			sb.WriteString("_")
		case draftmark.CodeSpanKind:
			sb.WriteString("`")
			sb.WriteString(inline.Text())
			sb.WriteString("`")
		case draftmark.MathSpanKind:
			sb.WriteString("$")
			sb.WriteString(inline.Text())
			sb.WriteString("$")
		case draftmark.LinkKind:
			sb.WriteString("[")
			writeInlines(sb, inline.Children())
			sb.WriteString("](")
			sb.WriteString(inline.Destination())
			sb.WriteString(")")
		case draftmark.ImageKind:
			sb.WriteString("![")
			sb.WriteString(inline.AltText())
			sb.WriteString("](")
			sb.WriteString(inline.Destination())
			sb.WriteString(")")
			if w, ok := inline.Attributes()["width"]; ok {
				sb.WriteString("{")
				sb.WriteString(w)
				sb.WriteString("}")
			}
		case draftmark.FootnoteReferenceKind:
			sb.WriteString("[^")
			sb.WriteString(inline.ReferenceLabel())
			sb.WriteString("]")
		}
	}
}

// escapeSet is every character that could open or close a token when the
// text reparses, including the block openers '#' and '>' in case a literal
// lands at the start of a line.
const escapeSet = "\\`*_$[]!#>"

func writeEscaped(sb *strings.Builder, s string) {
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(escapeSet, s[i]) >= 0 {
			sb.WriteByte('\\')
		}
		sb.WriteByte(s[i])
	}
}

type errWriter struct {
	w   io.Writer
	err error
}

func (w *errWriter) WriteString(s string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.w, s)
}
