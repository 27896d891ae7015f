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
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// RenderHTML writes the document as HTML.
// The renderer consumes the block sequence and the footnote table;
// code and math payloads are escaped but never reinterpreted,
// and HTML blocks pass through byte for byte.
// The footnote table is rendered after the blocks, in label order.
func RenderHTML(w io.Writer, doc *Document) error {
	var buf []byte
	for _, b := range doc.Blocks() {
		buf = appendBlockHTML(buf, b)
	}
	buf = appendFootnotesHTML(buf, doc.Footnotes())
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("render document to html: %w", err)
	}
	return nil
}

func appendBlockHTML(dst []byte, block *Block) []byte {
	switch block.Kind() {
	case ParagraphKind:
		dst = append(dst, "<p>"...)
		dst = appendInlinesHTML(dst, block.Inlines())
		dst = append(dst, "</p>\n"...)
	case HeadingKind:
		level := block.HeadingLevel()
		dst = append(dst, "<h"...)
		dst = strconv.AppendInt(dst, int64(level), 10)
		dst = append(dst, ">"...)
		dst = appendInlinesHTML(dst, block.Inlines())
		dst = append(dst, "</h"...)
		dst = strconv.AppendInt(dst, int64(level), 10)
		dst = append(dst, ">\n"...)
		if level == 1 {
			dst = append(dst, "<hr><br>\n"...)
		}
	case FencedCodeBlockKind:
		dst = append(dst, "<pre><code"...)
		if info := block.InfoString(); info != "" {
			dst = append(dst, ` class="code-`...)
			dst = append(dst, html.EscapeString(strings.Fields(info)[0])...)
			dst = append(dst, `"`...)
		}
		dst = append(dst, ">"...)
		for _, line := range block.Lines() {
			dst = append(dst, html.EscapeString(line)...)
			dst = append(dst, '\n')
		}
		dst = append(dst, "</code></pre>\n"...)
	case MathBlockKind:
		dst = append(dst, `<span class="display-math">`...)
		dst = append(dst, html.EscapeString(block.RawText())...)
		dst = append(dst, "</span>\n"...)
	case HTMLBlockKind:
		for _, line := range block.Lines() {
			dst = append(dst, line...)
			dst = append(dst, '\n')
		}
	case BlockQuoteKind:
		dst = append(dst, "<blockquote class=\"quote\">\n"...)
		for _, child := range block.BlockChildren() {
			dst = appendBlockHTML(dst, child)
		}
		dst = append(dst, "</blockquote>\n"...)
	}
	return dst
}

func appendInlinesHTML(dst []byte, inlines []*Inline) []byte {
	for _, inline := range inlines {
		dst = appendInlineHTML(dst, inline)
	}
	return dst
}

func appendInlineHTML(dst []byte, inline *Inline) []byte {
	switch inline.Kind() {
	case TextKind:
		dst = append(dst, html.EscapeString(inline.Text())...)
	case StrongKind:
		dst = append(dst, `<span class="bold">`...)
		dst = appendInlinesHTML(dst, inline.Children())
		dst = append(dst, "</span>"...)
	case EmphasisKind:
		dst = append(dst, `<span class="italic">`...)
		dst = appendInlinesHTML(dst, inline.Children())
		dst = append(dst, "</span>"...)
	case CodeSpanKind:
		dst = append(dst, `<span class="inline-code">`...)
		dst = append(dst, html.EscapeString(inline.Text())...)
		dst = append(dst, "</span>"...)
	case MathSpanKind:
		dst = append(dst, `<span class="inline-math">`...)
		dst = append(dst, html.EscapeString(inline.Text())...)
		dst = append(dst, "</span>"...)
	case LinkKind:
		dst = append(dst, `<a href="`...)
		dst = append(dst, html.EscapeString(NormalizeURI(inline.Destination()))...)
		dst = append(dst, `">`...)
		dst = appendInlinesHTML(dst, inline.Children())
		dst = append(dst, "</a>"...)
	case ImageKind:
		dst = append(dst, `<img src="`...)
		dst = append(dst, html.EscapeString(NormalizeURI(inline.Destination()))...)
		dst = append(dst, `" alt="`...)
		dst = append(dst, html.EscapeString(inline.AltText())...)
		dst = append(dst, `" class="image"`...)
		if w, ok := inline.Attributes()["width"]; ok {
			if pct, err := strconv.Atoi(w); err == nil && pct != 100 {
				dst = append(dst, ` style="width: `...)
				dst = strconv.AppendInt(dst, int64(pct), 10)
				dst = append(dst, `%;"`...)
			}
		}
		dst = append(dst, ">"...)
	case FootnoteReferenceKind:
		label := html.EscapeString(inline.ReferenceLabel())
		dst = append(dst, `<sup id="ref`...)
		dst = append(dst, label...)
		dst = append(dst, `"><a href="#fn`...)
		dst = append(dst, label...)
		dst = append(dst, `">[`...)
		dst = append(dst, label...)
		dst = append(dst, "]</a></sup>"...)
	}
	return dst
}

func appendFootnotesHTML(dst []byte, footnotes FootnoteMap) []byte {
	for _, label := range footnotes.Labels() {
		def, _ := footnotes.Lookup(label)
		esc := html.EscapeString(def.Label)
		dst = append(dst, `<p id="fn`...)
		dst = append(dst, esc...)
		dst = append(dst, `"><a href="#ref`...)
		dst = append(dst, esc...)
		dst = append(dst, `">[`...)
		dst = append(dst, esc...)
		dst = append(dst, "]</a> "...)
		dst = appendInlinesHTML(dst, def.Content)
		dst = append(dst, "</p>\n"...)
	}
	return dst
}

// NormalizeURI percent-encodes any characters in a string
// that are not reserved or unreserved URI characters.
// This is commonly used for transforming link destinations
// into strings suitable for href or src attributes.
func NormalizeURI(s string) string {
	// RFC 3986 reserved and unreserved characters.
	const safeSet = `;/?:@&=+$,-_.!~*'()#`

	sb := new(strings.Builder)
	sb.Grow(len(s))
	skip := 0
	var buf [utf8.UTFMax]byte
	for i, c := range s {
		if skip > 0 {
			skip--
			sb.WriteRune(c)
			continue
		}
		switch {
		case c == '%':
			if i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
				skip = 2
				sb.WriteByte('%')
			} else {
				sb.WriteString("%25")
			}
		case 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' || strings.ContainsRune(safeSet, c):
			sb.WriteRune(c)
		default:
			n := utf8.EncodeRune(buf[:], c)
			for _, b := range buf[:n] {
				sb.WriteByte('%')
				sb.WriteByte(urlHexDigit(b >> 4))
				sb.WriteByte(urlHexDigit(b & 0x0f))
			}
		}
	}
	return sb.String()
}

func isHex(c byte) bool {
	return 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F' || '0' <= c && c <= '9'
}

func urlHexDigit(x byte) byte {
	switch {
	case x < 0xa:
		return '0' + x
	case x < 0x10:
		return 'A' + x - 0xa
	default:
		panic("out of bounds")
	}
}
