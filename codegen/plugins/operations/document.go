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

package operations

import (
	"sort"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
)

// DocumentText renders the executable document for a single operation: the operation itself plus
// every fragment it transitively spreads, printed from the AST so formatting is independent of how
// the source files were laid out. Fragments are ordered by name, which keeps the text (and any
// hash derived from it) stable across runs.
func DocumentText(doc *ast.QueryDocument, operation *ast.OperationDefinition) string {
	names := make(map[string]bool)
	collectFragmentNames(operation.SelectionSet, doc, names)

	var fragments ast.FragmentDefinitionList
	for _, fragment := range doc.Fragments {
		if names[fragment.Name] {
			fragments = append(fragments, fragment)
		}
	}
	sort.Slice(fragments, func(i, j int) bool { return fragments[i].Name < fragments[j].Name })

	var b strings.Builder
	f := formatter.NewFormatter(&b)
	f.FormatQueryDocument(&ast.QueryDocument{
		Operations: ast.OperationList{operation},
		Fragments:  fragments,
	})
	return strings.TrimRight(b.String(), "\n")
}

func collectFragmentNames(selections ast.SelectionSet, doc *ast.QueryDocument, names map[string]bool) {
	for _, selection := range selections {
		switch selection := selection.(type) {
		case *ast.Field:
			collectFragmentNames(selection.SelectionSet, doc, names)

		case *ast.InlineFragment:
			collectFragmentNames(selection.SelectionSet, doc, names)

		case *ast.FragmentSpread:
			if names[selection.Name] {
				continue
			}
			names[selection.Name] = true
			for _, fragment := range doc.Fragments {
				if fragment.Name == selection.Name {
					collectFragmentNames(fragment.SelectionSet, doc, names)
					break
				}
			}
		}
	}
}
