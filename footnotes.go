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
	"sort"
	"strconv"

	"golang.org/x/text/cases"
)

// A type that implements ReferenceMatcher
// can be checked for the presence of footnote definitions.
type ReferenceMatcher interface {
	MatchReference(label string) bool
}

// FootnoteDefinition is the content of one footnote definition.
type FootnoteDefinition struct {
	// Label is the label as written at the definition site.
	Label string
	// Content is the definition body's inline content.
	Content []*Inline
}

// FootnoteMap is a mapping of case-folded footnote labels to definitions.
// References bind to definitions by label, so a definition may appear
// before or after any of its references.
type FootnoteMap map[string]*FootnoteDefinition

// FoldLabel normalizes a footnote label for lookup
// using Unicode case folding.
func FoldLabel(label string) string {
	return cases.Fold().String(label)
}

// MatchReference reports whether the label has a definition in the map.
func (m FootnoteMap) MatchReference(label string) bool {
	_, ok := m[FoldLabel(label)]
	return ok
}

// Lookup returns the definition bound to a reference label.
func (m FootnoteMap) Lookup(label string) (*FootnoteDefinition, bool) {
	def, ok := m[FoldLabel(label)]
	return def, ok
}

// Labels returns the defined labels, as written, in sorted order.
// When every label is an integer the sort is numeric,
// so [^10] follows [^2]; otherwise labels sort lexicographically.
func (m FootnoteMap) Labels() []string {
	labels := make([]string, 0, len(m))
	numeric := true
	for _, def := range m {
		labels = append(labels, def.Label)
		if _, err := strconv.Atoi(def.Label); err != nil {
			numeric = false
		}
	}
	if numeric {
		sort.Slice(labels, func(i, j int) bool {
			a, _ := strconv.Atoi(labels[i])
			b, _ := strconv.Atoi(labels[j])
			return a < b
		})
	} else {
		sort.Strings(labels)
	}
	return labels
}

// extract removes footnote definition blocks from the sequence,
// including inside quotes, and registers their content in the map.
// The last definition for a label wins;
// each overwrite records a [DuplicateFootnote] diagnostic.
func (m FootnoteMap) extract(blocks []*Block, diags *[]Diagnostic) []*Block {
	out := make([]*Block, 0, len(blocks))
	for _, b := range blocks {
		switch b.kind {
		case FootnoteDefinitionKind:
			key := FoldLabel(b.label)
			if _, exists := m[key]; exists {
				*diags = append(*diags, Diagnostic{Kind: DuplicateFootnote, Label: b.label})
			}
			m[key] = &FootnoteDefinition{Label: b.label, Content: b.inlines}
		case BlockQuoteKind:
			b.children = m.extract(b.children, diags)
			out = append(out, b)
		default:
			out = append(out, b)
		}
	}
	return out
}

// resolveFootnotes checks every footnote reference in the document,
// including references inside quotes and inside other footnote bodies,
// against the footnote table.
// References with no definition stay in the tree;
// each missing label is reported once as an [UndefinedFootnote] diagnostic.
func resolveFootnotes(doc *Document) []Diagnostic {
	var diags []Diagnostic
	reported := make(map[string]bool)
	check := func(c *Cursor) bool {
		inline := c.Node().Inline()
		if inline.Kind() != FootnoteReferenceKind {
			return true
		}
		label := inline.ReferenceLabel()
		key := FoldLabel(label)
		if !doc.footnotes.MatchReference(label) && !reported[key] {
			reported[key] = true
			diags = append(diags, Diagnostic{Kind: UndefinedFootnote, Label: label})
		}
		return true
	}

	opts := &WalkOptions{Pre: check}
	for _, b := range doc.Blocks() {
		Walk(b.AsNode(), opts)
	}
	for _, label := range doc.footnotes.Labels() {
		def, _ := doc.footnotes.Lookup(label)
		for _, inline := range def.Content {
			Walk(inline.AsNode(), opts)
		}
	}
	return diags
}
