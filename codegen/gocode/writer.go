/**
 * Copyright (c) 2026, The gqlcodegen Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package gocode assembles and formats generated Go source. Plugins write declarations into a
// Writer; the runner stitches the fragments of a target together and formats the result.
package gocode

import (
	"bytes"
	"fmt"
	"sort"

	"golang.org/x/tools/imports"

	"github.com/zirkelc/gqlcodegen/codegen"
)

// Header is the marker line required by the Go convention for generated files. Tools such as
// golangci-lint skip files that start with it.
const Header = "// Code generated by gqlcodegen. DO NOT EDIT."

// A Writer accumulates Go declarations for one plugin's fragment. The zero value is ready to use.
type Writer struct {
	buf     bytes.Buffer
	imports map[string]struct{}
}

// Import records an import path the written declarations refer to. Recording a path more than
// once is fine.
func (w *Writer) Import(path string) {
	if path == "" {
		return
	}
	if w.imports == nil {
		w.imports = make(map[string]struct{})
	}
	w.imports[path] = struct{}{}
}

// Imports returns the recorded import paths, sorted.
func (w *Writer) Imports() []string {
	paths := make([]string, 0, len(w.imports))
	for path := range w.imports {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Line writes s followed by a newline.
func (w *Writer) Line(s string) {
	w.buf.WriteString(s)
	w.buf.WriteByte('\n')
}

// Linef writes a formatted line.
func (w *Writer) Linef(format string, args ...interface{}) {
	fmt.Fprintf(&w.buf, format, args...)
	w.buf.WriteByte('\n')
}

// Blank writes an empty line.
func (w *Writer) Blank() {
	w.buf.WriteByte('\n')
}

// Bytes returns the accumulated declarations.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// File packages the writer's content as a plugin output fragment.
func (w *Writer) File() *codegen.File {
	return &codegen.File{
		Content:   w.buf.Bytes(),
		GoImports: w.Imports(),
	}
}

// AssembleFile builds a complete Go source file from plugin fragments: the generated-code header,
// the package clause, an import block over the union of the fragments' imports, and the fragments
// in order.
func AssembleFile(pkg string, files []*codegen.File) []byte {
	var buf bytes.Buffer
	buf.WriteString(Header)
	buf.WriteString("\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", pkg)

	seen := make(map[string]struct{})
	var paths []string
	for _, file := range files {
		for _, path := range file.GoImports {
			if _, dup := seen[path]; !dup {
				seen[path] = struct{}{}
				paths = append(paths, path)
			}
		}
	}
	if len(paths) > 0 {
		sort.Strings(paths)
		buf.WriteString("import (\n")
		for _, path := range paths {
			fmt.Fprintf(&buf, "\t%q\n", path)
		}
		buf.WriteString(")\n\n")
	}

	for _, file := range files {
		buf.Write(file.Content)
	}
	return buf.Bytes()
}

// Format runs src through the goimports machinery: gofmt formatting plus pruning of unused
// imports. filename only affects error messages and style heuristics; nothing is read from disk.
func Format(filename string, src []byte) ([]byte, error) {
	formatted, err := imports.Process(filename, src, nil)
	if err != nil {
		return nil, codegen.NewError(
			fmt.Sprintf("formatting of generated code for %s failed", filename),
			codegen.Op("gocode.Format"), codegen.ErrKindEmit, err)
	}
	return formatted, nil
}
