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

package loader

import (
	"fmt"
	"os"
	"sort"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
	"github.com/vektah/gqlparser/v2/validator"

	"github.com/zirkelc/gqlcodegen/codegen"
)

// LoadDocuments expands the document globs, parses every matched file, and merges all operations
// and fragments into a single document validated against schema. Validation binds each field
// selection to its schema definition, which the generating plugins rely on. The merge is what
// allows a fragment defined in one file to be spread from another.
func LoadDocuments(schema *ast.Schema, globs []string) (*ast.QueryDocument, error) {
	const op = codegen.Op("loader.LoadDocuments")

	files, err := expandDocumentGlobs(globs)
	if err != nil {
		return nil, err
	}

	merged := &ast.QueryDocument{}
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, codegen.NewError("read document", op, codegen.ErrKindIO, err)
		}

		doc, parseErr := parser.ParseQuery(&ast.Source{Name: file, Input: string(data)})
		if parseErr != nil {
			return nil, codegen.ConvertGqlError(op, codegen.ErrKindDocument, file, parseErr)
		}
		merged.Operations = append(merged.Operations, doc.Operations...)
		merged.Fragments = append(merged.Fragments, doc.Fragments...)
	}

	if err := checkNames(merged); err != nil {
		return nil, err
	}

	if listErr := validator.Validate(schema, merged); len(listErr) > 0 {
		return nil, codegen.ConvertGqlError(op, codegen.ErrKindValidation, "", listErr)
	}

	return merged, nil
}

// expandDocumentGlobs expands the globs into a sorted, de-duplicated file list. A glob matching
// nothing is an error: a typo in a glob must not silently shrink the generated surface.
func expandDocumentGlobs(globs []string) ([]string, error) {
	const op = codegen.Op("loader.LoadDocuments")

	seen := make(map[string]struct{})
	var files []string
	for _, glob := range globs {
		matches, err := expandGlob(glob)
		if err != nil {
			return nil, codegen.NewError(fmt.Sprintf("bad document glob %q", glob), op, codegen.ErrKindConfig, err)
		}
		if len(matches) == 0 {
			return nil, codegen.NewError(
				fmt.Sprintf("document glob %q matched no files", glob), op, codegen.ErrKindDocument)
		}
		for _, match := range matches {
			if _, dup := seen[match]; !dup {
				seen[match] = struct{}{}
				files = append(files, match)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

// checkNames enforces the cross-file naming rules the GraphQL validator can only check within one
// document: operation and fragment names must be unique across all loaded files, and anonymous
// operations cannot be mixed with others (they could never be addressed by generated code).
func checkNames(doc *ast.QueryDocument) error {
	const op = codegen.Op("loader.LoadDocuments")

	operations := make(map[string]string)
	for _, operation := range doc.Operations {
		if operation.Name == "" {
			if len(doc.Operations) > 1 {
				return codegen.NewError(
					"anonymous operation must be the only operation across all documents",
					op, codegen.ErrKindDocument, positionOf(operation.Position))
			}
			continue
		}
		if prev, dup := operations[operation.Name]; dup {
			return codegen.NewError(
				fmt.Sprintf("operation %q is defined in both %s and %s",
					operation.Name, prev, fileOf(operation.Position)),
				op, codegen.ErrKindDocument, positionOf(operation.Position))
		}
		operations[operation.Name] = fileOf(operation.Position)
	}

	fragments := make(map[string]string)
	for _, fragment := range doc.Fragments {
		if prev, dup := fragments[fragment.Name]; dup {
			return codegen.NewError(
				fmt.Sprintf("fragment %q is defined in both %s and %s",
					fragment.Name, prev, fileOf(fragment.Position)),
				op, codegen.ErrKindDocument, positionOf(fragment.Position))
		}
		fragments[fragment.Name] = fileOf(fragment.Position)
	}

	return nil
}

func fileOf(pos *ast.Position) string {
	if pos == nil || pos.Src == nil {
		return "<unknown>"
	}
	return pos.Src.Name
}

func positionOf(pos *ast.Position) codegen.ErrorLocation {
	if pos == nil {
		return codegen.ErrorLocation{}
	}
	loc := codegen.ErrorLocation{Line: pos.Line, Column: pos.Column}
	if pos.Src != nil {
		loc.File = pos.Src.Name
	}
	return loc
}
