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

// Command draftmark compiles a post written in the Draftmark dialect
// to an HTML page.
package main

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	flag "github.com/spf13/pflag"
	"zombiezen.com/go/draftmark"
)

const defaultTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
{{.Content}}
</body>
</html>
`

func main() {
	output := flag.StringP("output", "o", "", "output file (default: input with .html extension)")
	templatePath := flag.String("template", "", "page template with {{.Title}} and {{.Content}} slots")
	title := flag.String("title", "", "page title (default: input file name)")
	strict := flag.Bool("strict", false, "treat diagnostics as errors")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: draftmark [flags] post.md")
		flag.PrintDefaults()
		os.Exit(2)
	}
	if err := run(flag.Arg(0), *output, *templatePath, *title, *strict); err != nil {
		fmt.Fprintln(os.Stderr, "draftmark:", err)
		os.Exit(1)
	}
}

func run(input, output, templatePath, title string, strict bool) error {
	source, err := os.ReadFile(input)
	if err != nil {
		return err
	}

	doc, diags := draftmark.Parse(source)
	for _, d := range diags {
		fmt.Fprintf(os.Stderr, "%s: %s\n", input, d)
	}
	if strict && len(diags) > 0 {
		return fmt.Errorf("%d diagnostic(s) in %s", len(diags), input)
	}

	body := new(bytes.Buffer)
	if err := draftmark.RenderHTML(body, doc); err != nil {
		return err
	}

	pageTemplate := defaultTemplate
	if templatePath != "" {
		raw, err := os.ReadFile(templatePath)
		if err != nil {
			return err
		}
		pageTemplate = string(raw)
	}
	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return fmt.Errorf("parse template: %w", err)
	}

	if title == "" {
		title = strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	}
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".html"
	}

	page := new(bytes.Buffer)
	err = tmpl.Execute(page, struct {
		Title   string
		Content template.HTML
	}{Title: title, Content: template.HTML(body.String())})
	if err != nil {
		return fmt.Errorf("execute template: %w", err)
	}

	return os.WriteFile(output, page.Bytes(), 0o644)
}
