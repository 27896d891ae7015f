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
	"strconv"
	"strings"
)

// Inline represents content elements like text, links, or emphasis.
type Inline struct {
	kind     InlineKind
	text     string            // literal text, verbatim span content, alt text, or reference label
	dest     string            // link or image target
	attrs    map[string]string // image attributes
	children []*Inline
}

// Kind returns the type of inline node
// or zero if the node is nil.
func (inline *Inline) Kind() InlineKind {
	if inline == nil {
		return 0
	}
	return inline.kind
}

// Text returns the literal content of a text, code span, or math span node.
// Code and math span content is verbatim: no escape processing is ever
// applied inside it.
func (inline *Inline) Text() string {
	switch inline.Kind() {
	case TextKind, CodeSpanKind, MathSpanKind:
		return inline.text
	default:
		return ""
	}
}

// AltText returns the alt text of an [ImageKind] node.
func (inline *Inline) AltText() string {
	if inline.Kind() != ImageKind {
		return ""
	}
	return inline.text
}

// ReferenceLabel returns the label of a [FootnoteReferenceKind] node.
// The label is a lookup key into the document's footnote table,
// never a direct reference to the definition.
func (inline *Inline) ReferenceLabel() string {
	if inline.Kind() != FootnoteReferenceKind {
		return ""
	}
	return inline.text
}

// Destination returns the target of a [LinkKind] or [ImageKind] node.
func (inline *Inline) Destination() string {
	switch inline.Kind() {
	case LinkKind, ImageKind:
		return inline.dest
	default:
		return ""
	}
}

// Attributes returns the attribute mapping of an [ImageKind] node,
// or nil if no attribute block was present.
// Callers must not modify the returned map.
func (inline *Inline) Attributes() map[string]string {
	if inline.Kind() != ImageKind {
		return nil
	}
	return inline.attrs
}

// Children returns the node's nested inline content in source order.
func (inline *Inline) Children() []*Inline {
	if inline == nil {
		return nil
	}
	return inline.children
}

// ChildCount returns the number of children the node has.
// Calling ChildCount on nil returns 0.
func (inline *Inline) ChildCount() int {
	if inline == nil {
		return 0
	}
	return len(inline.children)
}

// Child returns the i'th child of the node.
func (inline *Inline) Child(i int) *Inline {
	return inline.children[i]
}

// InlineKind is an enumeration of values returned by [*Inline.Kind].
type InlineKind uint16

const (
	TextKind InlineKind = 1 + iota
	EmphasisKind
	StrongKind
	CodeSpanKind
	MathSpanKind
	LinkKind
	ImageKind
	FootnoteReferenceKind
)

// String returns the Go constant name of the kind.
func (kind InlineKind) String() string {
	switch kind {
	case TextKind:
		return "TextKind"
	case EmphasisKind:
		return "EmphasisKind"
	case StrongKind:
		return "StrongKind"
	case CodeSpanKind:
		return "CodeSpanKind"
	case MathSpanKind:
		return "MathSpanKind"
	case LinkKind:
		return "LinkKind"
	case ImageKind:
		return "ImageKind"
	case FootnoteReferenceKind:
		return "FootnoteReferenceKind"
	default:
		return "InlineKind(" + strconv.Itoa(int(kind)) + ")"
	}
}

// rewriteInlines fills in the inline content of every block that carries
// source text, including blocks nested inside quotes.
func rewriteInlines(blocks []*Block) {
	stack := append([]*Block(nil), blocks...)
	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch curr.kind {
		case ParagraphKind, HeadingKind, FootnoteDefinitionKind:
			curr.inlines = parseInlines(curr.rawSource())
		case BlockQuoteKind:
			stack = append(stack, curr.children...)
		}
	}
}

// parseInlines scans one block's source text as a flat character stream,
// left to right, one pass.
// Token precedence, highest first: backslash escape, code span, math span,
// image, link, footnote reference, emphasis, plain text.
// Unmatched delimiters degrade to literal text, never an error.
// Adjacent literal characters coalesce into a single [TextKind] node,
// so an escaped delimiter pair like `\*bold\*` stays one text run.
func parseInlines(src string) []*Inline {
	var out []*Inline
	var buf strings.Builder
	flush := func() {
		if buf.Len() > 0 {
			out = append(out, &Inline{kind: TextKind, text: buf.String()})
			buf.Reset()
		}
	}

	for pos := 0; pos < len(src); {
		switch c := src[pos]; c {
		case '\\':
			if pos+1 < len(src) && isASCIIPunctuation(src[pos+1]) {
				buf.WriteByte(src[pos+1])
				pos += 2
			} else {
				buf.WriteByte('\\')
				pos++
			}
		case '`':
			if end := strings.IndexByte(src[pos+1:], '`'); end >= 0 {
				flush()
				out = append(out, &Inline{kind: CodeSpanKind, text: src[pos+1 : pos+1+end]})
				pos += end + 2
			} else {
				buf.WriteByte(c)
				pos++
			}
		case '$':
			if end := strings.IndexByte(src[pos+1:], '$'); end >= 0 {
				flush()
				out = append(out, &Inline{kind: MathSpanKind, text: src[pos+1 : pos+1+end]})
				pos += end + 2
			} else {
				buf.WriteByte(c)
				pos++
			}
		case '!':
			if img, end := parseImage(src, pos); img != nil {
				flush()
				out = append(out, img)
				pos = end
			} else {
				buf.WriteByte(c)
				pos++
			}
		case '[':
			if link, end := parseLink(src, pos); link != nil {
				flush()
				out = append(out, link)
				pos = end
			} else if ref, end := parseFootnoteRef(src, pos); ref != nil {
				flush()
				out = append(out, ref)
				pos = end
			} else {
				buf.WriteByte(c)
				pos++
			}
		case '*', '_':
			end := findDelimiter(src, pos+1, c)
			if end > pos+1 {
				flush()
				kind := StrongKind
				if c == '_' {
					kind = EmphasisKind
				}
				out = append(out, &Inline{
					kind:     kind,
					children: parseInlines(src[pos+1 : end]),
				})
				pos = end + 1
			} else {
				buf.WriteByte(c)
				pos++
			}
		default:
			buf.WriteByte(c)
			pos++
		}
	}
	flush()
	return out
}

// findDelimiter returns the position of the next unescaped occurrence of
// marker at or after from, or -1 if there is none before the end of src.
// Code and math spans are opaque: a marker inside them never matches.
func findDelimiter(src string, from int, marker byte) int {
	for i := from; i < len(src); {
		switch c := src[i]; c {
		case '\\':
			if i+1 < len(src) && isASCIIPunctuation(src[i+1]) {
				i += 2
			} else {
				i++
			}
		case '`', '$':
			if end := strings.IndexByte(src[i+1:], c); end >= 0 {
				i += end + 2
			} else {
				i++
			}
		default:
			if c == marker {
				return i
			}
			i++
		}
	}
	return -1
}

// parseLinkShape parses "[text](target)" at the given position.
// The text may not contain "]" and the target may not contain ")".
func parseLinkShape(src string, pos int) (text, target string, end int, ok bool) {
	if pos >= len(src) || src[pos] != '[' {
		return "", "", 0, false
	}
	close := strings.IndexByte(src[pos+1:], ']')
	if close < 0 {
		return "", "", 0, false
	}
	text = src[pos+1 : pos+1+close]
	rest := pos + 1 + close + 1
	if rest >= len(src) || src[rest] != '(' {
		return "", "", 0, false
	}
	targetEnd := strings.IndexByte(src[rest+1:], ')')
	if targetEnd <= 0 {
		return "", "", 0, false
	}
	target = src[rest+1 : rest+1+targetEnd]
	return text, target, rest + 1 + targetEnd + 1, true
}

// parseLink parses "[text](target)" into a [LinkKind] node.
// The link text is inline-parsed; the target is kept as-is.
func parseLink(src string, pos int) (*Inline, int) {
	text, target, end, ok := parseLinkShape(src, pos)
	if !ok || text == "" {
		return nil, 0
	}
	return &Inline{
		kind:     LinkKind,
		dest:     target,
		children: parseInlines(text),
	}, end
}

// parseImage parses "![alt](target)" with an optional "{width}" attribute
// block into an [ImageKind] node.
// The attribute block must hold a single bare token; anything else is left
// in place as literal text rather than rejected.
func parseImage(src string, pos int) (*Inline, int) {
	if pos+1 >= len(src) || src[pos+1] != '[' {
		return nil, 0
	}
	alt, target, end, ok := parseLinkShape(src, pos+1)
	if !ok {
		return nil, 0
	}
	img := &Inline{kind: ImageKind, text: alt, dest: target}
	if token, attrEnd, ok := parseAttributeBlock(src, end); ok {
		img.attrs = map[string]string{"width": token}
		end = attrEnd
	}
	return img, end
}

// parseAttributeBlock parses a "{token}" suffix at the given position.
func parseAttributeBlock(src string, pos int) (token string, end int, ok bool) {
	if pos >= len(src) || src[pos] != '{' {
		return "", 0, false
	}
	close := strings.IndexByte(src[pos+1:], '}')
	if close < 0 {
		return "", 0, false
	}
	token = src[pos+1 : pos+1+close]
	if token == "" || strings.ContainsAny(token, " \t{") {
		return "", 0, false
	}
	return token, pos + 1 + close + 1, true
}

// parseFootnoteRef parses "[^label]" into a [FootnoteReferenceKind] node.
// The label may not contain "]" and may not be empty.
func parseFootnoteRef(src string, pos int) (*Inline, int) {
	if pos+1 >= len(src) || src[pos+1] != '^' {
		return nil, 0
	}
	close := strings.IndexByte(src[pos+2:], ']')
	if close <= 0 {
		return nil, 0
	}
	return &Inline{
		kind: FootnoteReferenceKind,
		text: src[pos+2 : pos+2+close],
	}, pos + 2 + close + 1
}

func isASCIIPunctuation(c byte) bool {
	return '!' <= c && c <= '/' || ':' <= c && c <= '@' || '[' <= c && c <= '`' || '{' <= c && c <= '~'
}
