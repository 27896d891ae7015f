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
	"strings"

	"golang.org/x/net/html/atom"
)

type lineKind int8

const (
	lineBlank lineKind = iota
	linePlain
	lineATXHeading
	lineFenceOpen
	lineMathOpen
	lineHTMLStart
	lineQuote
	lineFootnoteDef
)

// lineInfo is the classification of a single raw line.
type lineInfo struct {
	kind  lineKind
	level int    // heading level (1-6) or quote marker width (>= 2)
	info  string // fence info string
	label string // footnote definition label
	rest  string // heading content or footnote definition body
}

// classifyLine decides how a single line participates in block structure.
// atBlockStart reports whether the line may open a new block:
// the previous line was blank, or this is the first line of the document
// or of the enclosing quote's content.
// Anywhere else every line is a lazy continuation of the open paragraph,
// so "# not a header" directly after paragraph text stays paragraph text.
func classifyLine(line string, atBlockStart bool) lineInfo {
	if isBlankLine(line) {
		return lineInfo{kind: lineBlank}
	}
	if !atBlockStart {
		return lineInfo{kind: linePlain}
	}
	if level, content, ok := parseATXHeading(line); ok {
		return lineInfo{kind: lineATXHeading, level: level, rest: content}
	}
	if info, ok := parseFenceOpen(line); ok {
		return lineInfo{kind: lineFenceOpen, info: info}
	}
	if isMathOpen(line) {
		return lineInfo{kind: lineMathOpen}
	}
	if label, body, ok := parseFootnoteDef(line); ok {
		return lineInfo{kind: lineFootnoteDef, label: label, rest: body}
	}
	if w := quoteMarkerWidth(line); w >= 2 {
		// A single ">" does not open a quote; it stays literal text.
		return lineInfo{kind: lineQuote, level: w}
	}
	if startsHTMLBlock(line) {
		return lineInfo{kind: lineHTMLStart}
	}
	return lineInfo{kind: linePlain}
}

// parseATXHeading attempts to parse the line as an ATX heading.
// Levels deeper than 6 are clamped to 6.
func parseATXHeading(line string) (level int, content string, ok bool) {
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 {
		return 0, "", false
	}
	content = strings.TrimSpace(line[level:])
	if level > 6 {
		level = 6
	}
	return level, content, true
}

// parseFenceOpen attempts to parse the line as a code fence.
// The info string, if any, is stored but never interpreted.
func parseFenceOpen(line string) (info string, ok bool) {
	if !strings.HasPrefix(line, "```") {
		return "", false
	}
	return strings.TrimSpace(line[3:]), true
}

// isFenceLine reports whether the line closes an open code fence.
func isFenceLine(line string) bool {
	return strings.HasPrefix(line, "```")
}

func isMathOpen(line string) bool {
	return strings.HasPrefix(line, `\[`)
}

func isMathClose(line string) bool {
	return strings.HasPrefix(line, `\]`)
}

// quoteMarkerWidth counts the line's leading run of '>' characters.
func quoteMarkerWidth(line string) int {
	w := 0
	for w < len(line) && line[w] == '>' {
		w++
	}
	return w
}

// stripQuoteMarker removes width leading '>' characters
// and at most one following space.
func stripQuoteMarker(line string, width int) string {
	line = line[width:]
	if len(line) > 0 && line[0] == ' ' {
		line = line[1:]
	}
	return line
}

// parseFootnoteDef attempts to parse the line as a footnote definition
// of the form "[^label]: body".
// The label may not contain "]" and may not be empty.
func parseFootnoteDef(line string) (label, body string, ok bool) {
	if !strings.HasPrefix(line, "[^") {
		return "", "", false
	}
	end := strings.IndexByte(line[2:], ']')
	if end <= 0 {
		return "", "", false
	}
	label = line[2 : 2+end]
	rest := line[2+end+1:]
	if !strings.HasPrefix(rest, ":") {
		return "", "", false
	}
	return label, strings.TrimSpace(rest[1:]), true
}

// startsHTMLBlock reports whether the line looks like the start of a raw
// HTML block: a "<", an optional "/", and a known tag name.
// Hyphenated names are accepted as custom elements.
// No further HTML validation is performed; the block is an opaque payload.
func startsHTMLBlock(line string) bool {
	if len(line) < 2 || line[0] != '<' {
		return false
	}
	i := 1
	if line[i] == '/' {
		i++
	}
	start := i
	for i < len(line) && (isASCIILetter(line[i]) || isASCIIDigit(line[i]) || line[i] == '-') {
		i++
	}
	name := line[start:i]
	if name == "" || !isASCIILetter(name[0]) {
		return false
	}
	if i < len(line) && line[i] != '>' && line[i] != ' ' && line[i] != '/' {
		return false
	}
	return atom.Lookup([]byte(strings.ToLower(name))) != 0 || strings.Contains(name, "-")
}

func isASCIILetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isASCIIDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
