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

// A Block is a structural element in a document.
type Block struct {
	kind     BlockKind
	level    int      // heading level or quote marker width
	info     string   // fence info string
	label    string   // footnote definition label
	lines    []string // verbatim payload, or raw source text before inline parsing
	inlines  []*Inline
	children []*Block
}

// Kind returns the type of block
// or zero if the block is nil.
func (b *Block) Kind() BlockKind {
	if b == nil {
		return 0
	}
	return b.kind
}

// HeadingLevel returns the level (1-6) of a [HeadingKind] block,
// or zero if the block is nil or of a different kind.
func (b *Block) HeadingLevel() int {
	if b.Kind() != HeadingKind {
		return 0
	}
	return b.level
}

// QuoteDepth returns the marker width (>= 2) of a [BlockQuoteKind] block,
// or zero if the block is nil or of a different kind.
func (b *Block) QuoteDepth() int {
	if b.Kind() != BlockQuoteKind {
		return 0
	}
	return b.level
}

// InfoString returns the info string of a [FencedCodeBlockKind] block.
// The info string is stored verbatim and never interpreted.
func (b *Block) InfoString() string {
	if b.Kind() != FencedCodeBlockKind {
		return ""
	}
	return b.info
}

// FootnoteLabel returns the label of a [FootnoteDefinitionKind] block,
// or the empty string if the block is nil or of a different kind.
func (b *Block) FootnoteLabel() string {
	if b.Kind() != FootnoteDefinitionKind {
		return ""
	}
	return b.label
}

// Lines returns the verbatim payload of a code, math, or HTML block.
// The lines are byte-identical to the corresponding source lines
// with fence and delimiter markers removed.
func (b *Block) Lines() []string {
	switch b.Kind() {
	case FencedCodeBlockKind, MathBlockKind, HTMLBlockKind:
		return b.lines
	default:
		return nil
	}
}

// RawText returns the verbatim payload joined by newlines.
func (b *Block) RawText() string {
	return strings.Join(b.Lines(), "\n")
}

// Inlines returns the block's inline content in source order.
func (b *Block) Inlines() []*Inline {
	if b == nil {
		return nil
	}
	return b.inlines
}

// BlockChildren returns the blocks nested inside a [BlockQuoteKind] block.
func (b *Block) BlockChildren() []*Block {
	if b == nil {
		return nil
	}
	return b.children
}

// ChildCount returns the number of children the block has.
// Calling ChildCount on nil returns 0.
func (b *Block) ChildCount() int {
	switch {
	case b == nil:
		return 0
	case len(b.children) > 0:
		return len(b.children)
	default:
		return len(b.inlines)
	}
}

// Child returns the i'th child of the block.
func (b *Block) Child(i int) Node {
	if len(b.children) > 0 {
		return b.children[i].AsNode()
	}
	return b.inlines[i].AsNode()
}

// rawSource returns the block's source text for inline parsing.
func (b *Block) rawSource() string {
	return strings.Join(b.lines, "\n")
}

// BlockKind is an enumeration of values returned by [*Block.Kind].
type BlockKind uint16

const (
	ParagraphKind BlockKind = 1 + iota
	HeadingKind
	FencedCodeBlockKind
	MathBlockKind
	HTMLBlockKind
	BlockQuoteKind
	FootnoteDefinitionKind
)

// String returns the Go constant name of the kind.
func (kind BlockKind) String() string {
	switch kind {
	case ParagraphKind:
		return "ParagraphKind"
	case HeadingKind:
		return "HeadingKind"
	case FencedCodeBlockKind:
		return "FencedCodeBlockKind"
	case MathBlockKind:
		return "MathBlockKind"
	case HTMLBlockKind:
		return "HTMLBlockKind"
	case BlockQuoteKind:
		return "BlockQuoteKind"
	case FootnoteDefinitionKind:
		return "FootnoteDefinitionKind"
	default:
		return "BlockKind(" + strconv.Itoa(int(kind)) + ")"
	}
}

// assembleBlocks consumes the classified line stream sequentially
// and produces the ordered block sequence.
// Quote content recurses on the marker-stripped lines.
// Unterminated fences and math blocks close implicitly at end of input.
func assembleBlocks(lines []string) []*Block {
	var blocks []*Block
	var para []string
	flush := func() {
		if len(para) > 0 {
			blocks = append(blocks, &Block{kind: ParagraphKind, lines: para})
			para = nil
		}
	}

	atStart := true
	for i := 0; i < len(lines); {
		c := classifyLine(lines[i], atStart)
		switch c.kind {
		case lineBlank:
			flush()
			atStart = true
			i++
			continue
		case linePlain:
			para = append(para, lines[i])
			i++
		case lineATXHeading:
			blocks = append(blocks, &Block{
				kind:  HeadingKind,
				level: c.level,
				lines: []string{c.rest},
			})
			i++
		case lineFenceOpen:
			i++
			var body []string
			for i < len(lines) && !isFenceLine(lines[i]) {
				body = append(body, lines[i])
				i++
			}
			if i < len(lines) {
				i++ // closing fence
			}
			blocks = append(blocks, &Block{
				kind:  FencedCodeBlockKind,
				info:  c.info,
				lines: body,
			})
		case lineMathOpen:
			i++
			var body []string
			for i < len(lines) && !isMathClose(lines[i]) {
				body = append(body, lines[i])
				i++
			}
			if i < len(lines) {
				i++ // closing delimiter
			}
			blocks = append(blocks, &Block{kind: MathBlockKind, lines: body})
		case lineHTMLStart:
			var body []string
			for i < len(lines) && !isBlankLine(lines[i]) {
				body = append(body, lines[i])
				i++
			}
			blocks = append(blocks, &Block{kind: HTMLBlockKind, lines: body})
		case lineQuote:
			depth := c.level
			var inner []string
			for i < len(lines) {
				w := quoteMarkerWidth(lines[i])
				if w < depth {
					break
				}
				inner = append(inner, stripQuoteMarker(lines[i], depth))
				i++
			}
			blocks = append(blocks, &Block{
				kind:     BlockQuoteKind,
				level:    depth,
				children: assembleBlocks(inner),
			})
		case lineFootnoteDef:
			blocks = append(blocks, &Block{
				kind:  FootnoteDefinitionKind,
				label: c.label,
				lines: []string{c.rest},
			})
			i++
		}
		atStart = false
	}
	flush()
	return blocks
}
