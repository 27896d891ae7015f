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

// Package normhtml normalizes HTML so that render tests can ignore
// insignificant output differences like whitespace between block tags
// and attribute order.
package normhtml

import (
	"bytes"
	"regexp"
	"sort"
	"unicode"

	"go4.org/bytereplacer"
	"golang.org/x/net/html"
)

var whitespaceRE = regexp.MustCompile(`\s+`)

var textEscaper = bytereplacer.New(
	"&", "&amp;",
	`'`, "&apos;",
	`<`, "&lt;",
	`>`, "&gt;",
	`"`, "&quot;",
)

// NormalizeHTML retokenizes a fragment and writes it back out in a
// canonical form: whitespace collapsed outside <pre>, no whitespace
// around block tags, attributes sorted by name, entities re-escaped
// uniformly.
func NormalizeHTML(b []byte) []byte {
	z := html.NewTokenizerFragment(bytes.NewReader(b), "div")
	var out []byte
	prev := html.StartTagToken
	prevTag := ""
	inPre := false
	for {
		switch tt := z.Next(); tt {
		case html.ErrorToken:
			if !inPre {
				out = bytes.TrimRightFunc(out, unicode.IsSpace)
			}
			return out
		case html.TextToken:
			out = appendText(out, z.Text(), prev, prevTag, inPre)
			prev = tt
		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if tag == "pre" {
				inPre = false
			} else if isBlockTag(tag) {
				out = bytes.TrimRightFunc(out, unicode.IsSpace)
			}
			out = append(out, "</"...)
			out = append(out, tag...)
			out = append(out, '>')
			prev, prevTag = tt, tag
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			tag := string(name)
			if tag == "pre" {
				inPre = true
			}
			if isBlockTag(tag) {
				out = bytes.TrimRightFunc(out, unicode.IsSpace)
			}
			out = append(out, '<')
			out = append(out, tag...)
			if hasAttr {
				out = appendSortedAttrs(out, z)
			}
			out = append(out, '>')
			prev, prevTag = tt, tag
			if tt == html.SelfClosingTagToken {
				prev = html.EndTagToken
			}
		case html.CommentToken:
			out = append(out, z.Raw()...)
			prev = tt
		}
	}
}

// appendText appends one text token,
// collapsing runs of whitespace and trimming around block tags.
func appendText(out, data []byte, prev html.TokenType, prevTag string, inPre bool) []byte {
	afterTag := prev == html.StartTagToken || prev == html.EndTagToken
	if afterTag && prevTag == "br" {
		data = bytes.TrimLeft(data, "\n")
	}
	if !inPre {
		data = whitespaceRE.ReplaceAll(data, []byte(" "))
		if afterTag && isBlockTag(prevTag) {
			if prev == html.StartTagToken {
				data = bytes.TrimLeftFunc(data, unicode.IsSpace)
			} else {
				data = bytes.TrimSpace(data)
			}
		}
	}
	return append(out, textEscaper.Replace(bytes.Clone(data))...)
}

func appendSortedAttrs(out []byte, z *html.Tokenizer) []byte {
	type attribute struct {
		key   string
		value string
	}
	var attrs []attribute
	for {
		k, v, more := z.TagAttr()
		attrs = append(attrs, attribute{string(k), string(v)})
		if !more {
			break
		}
	}
	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].key < attrs[j].key
	})
	for _, attr := range attrs {
		out = append(out, ' ')
		out = append(out, attr.key...)
		if attr.value != "" {
			out = append(out, `="`...)
			out = append(out, html.EscapeString(attr.value)...)
			out = append(out, '"')
		}
	}
	return out
}

// isBlockTag reports whether whitespace adjacent to the tag carries no
// meaning. The set covers what the renderer and raw HTML payloads in
// its input emit at block position.
func isBlockTag(tag string) bool {
	switch tag {
	case "article", "aside", "blockquote", "body", "div", "figure",
		"h1", "h2", "h3", "h4", "h5", "h6", "hr", "html",
		"li", "p", "pre", "section", "table", "td", "tr", "ul":
		return true
	default:
		return false
	}
}
