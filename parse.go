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

// Package draftmark parses a small Markdown-like dialect used for blog
// posts: ATX headings, emphasis, inline and display math, code spans and
// fences, links, images with width attributes, escaped literals,
// footnotes, raw HTML passthrough, HTML comments, and ">>" block quotes.
//
// Parsing happens in two phases: a block pass builds the document
// structure line by line, then an inline pass tokenizes each block's
// text. Footnote definitions may appear anywhere in the document;
// references are bound to them by label in a final resolution pass.
package draftmark

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Document is the result of a parse: the ordered top-level blocks plus
// the document's footnote table.
// A Document is immutable once Parse returns.
type Document struct {
	blocks    []*Block
	footnotes FootnoteMap
}

// Blocks returns the document's top-level blocks in source order.
// Footnote definitions are not part of the sequence;
// they live in the footnote table.
func (doc *Document) Blocks() []*Block {
	if doc == nil {
		return nil
	}
	return doc.blocks
}

// Footnotes returns the document's footnote table.
func (doc *Document) Footnotes() FootnoteMap {
	if doc == nil {
		return nil
	}
	return doc.footnotes
}

// DiagnosticKind is an enumeration of non-fatal problems found during a
// parse.
type DiagnosticKind int8

const (
	// UndefinedFootnote reports a footnote reference whose label has no
	// definition anywhere in the document.
	UndefinedFootnote DiagnosticKind = 1 + iota
	// DuplicateFootnote reports a footnote label defined more than once.
	// The last definition wins.
	DuplicateFootnote
)

// A Diagnostic describes a non-fatal problem found during a parse.
// Diagnostics never change the shape of the returned Document;
// the caller decides whether they are warnings or hard failures.
type Diagnostic struct {
	Kind  DiagnosticKind
	Label string
}

// String formats the diagnostic as a human-readable message.
func (d Diagnostic) String() string {
	switch d.Kind {
	case UndefinedFootnote:
		return fmt.Sprintf("footnote reference [^%s] has no definition", d.Label)
	case DuplicateFootnote:
		return fmt.Sprintf("footnote [^%s] defined more than once; using the last definition", d.Label)
	default:
		return fmt.Sprintf("diagnostic(%d) [^%s]", int8(d.Kind), d.Label)
	}
}

// ErrInvalidInput is returned by [ReadDocument] when it is handed a nil
// reader.
var ErrInvalidInput = errors.New("draftmark: no input")

// Parse converts source text into a Document.
// Parsing never fails: unterminated fences, math blocks, and HTML blocks
// close implicitly at end of input, unmatched inline delimiters degrade
// to literal text, and semantic problems are returned as diagnostics
// alongside the complete Document.
//
// Parse is a pure function; documents may be parsed concurrently by
// independent callers.
func Parse(source []byte) (*Document, []Diagnostic) {
	source = stripComments(source)
	blocks := assembleBlocks(splitLines(source))
	rewriteInlines(blocks)

	doc := &Document{footnotes: make(FootnoteMap)}
	var diags []Diagnostic
	doc.blocks = doc.footnotes.extract(blocks, &diags)
	diags = append(diags, resolveFootnotes(doc)...)
	return doc, diags
}

// ReadDocument reads the remainder of r and parses it.
// The only failure modes are a nil reader and a read error;
// see [Parse] for everything that deliberately cannot fail.
func ReadDocument(r io.Reader) (*Document, []Diagnostic, error) {
	if r == nil {
		return nil, nil, ErrInvalidInput
	}
	source, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("read document: %w", err)
	}
	doc, diags := Parse(source)
	return doc, diags, nil
}

// stripComments removes HTML comments, "<!--" through "-->" inclusive,
// before any other processing; comment text never reaches the block
// assembler, not even inside verbatim regions.
// An unterminated comment runs to end of input.
func stripComments(source []byte) []byte {
	start := bytes.Index(source, []byte("<!--"))
	if start < 0 {
		return source
	}
	out := make([]byte, 0, len(source))
	for start >= 0 {
		out = append(out, source[:start]...)
		end := bytes.Index(source[start+4:], []byte("-->"))
		if end < 0 {
			return out
		}
		source = source[start+4+end+3:]
		start = bytes.Index(source, []byte("<!--"))
	}
	return append(out, source...)
}

// splitLines splits source into lines without their line endings.
// LF and CRLF are both accepted.
func splitLines(source []byte) []string {
	var lines []string
	for len(source) > 0 {
		i := bytes.IndexByte(source, '\n')
		if i < 0 {
			lines = append(lines, strings.TrimSuffix(string(source), "\r"))
			break
		}
		lines = append(lines, strings.TrimSuffix(string(source[:i]), "\r"))
		source = source[i+1:]
	}
	return lines
}

// isBlankLine reports whether the line contains only whitespace.
func isBlankLine(line string) bool {
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case ' ', '\t', '\r', '\n':
		default:
			return false
		}
	}
	return true
}
