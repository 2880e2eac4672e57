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

package schematypes

import (
	"github.com/vektah/gqlparser/v2/ast"
)

// builtinScalars never need a generated declaration.
var builtinScalars = map[string]bool{
	"Int":     true,
	"Float":   true,
	"String":  true,
	"Boolean": true,
	"ID":      true,
}

// Reachable collects the enum, input object, and custom scalar definitions the document can
// reach: through the variable definitions of its operations (recursing into input object fields)
// and through the leaf fields of its selection sets. Generating only the reachable subset keeps
// the output stable under unrelated schema growth.
func Reachable(schema *ast.Schema, doc *ast.QueryDocument) map[string]*ast.Definition {
	c := &collector{schema: schema, reachable: make(map[string]*ast.Definition)}

	for _, operation := range doc.Operations {
		for _, variable := range operation.VariableDefinitions {
			c.addType(variable.Type)
		}
		c.walkSelections(operation.SelectionSet)
	}
	for _, fragment := range doc.Fragments {
		c.walkSelections(fragment.SelectionSet)
	}

	return c.reachable
}

type collector struct {
	schema    *ast.Schema
	reachable map[string]*ast.Definition
}

func (c *collector) addType(t *ast.Type) {
	for t.Elem != nil {
		t = t.Elem
	}
	c.addNamed(t.NamedType)
}

func (c *collector) addNamed(name string) {
	if builtinScalars[name] {
		return
	}
	def := c.schema.Types[name]
	if def == nil {
		return
	}
	if _, seen := c.reachable[name]; seen {
		return
	}

	switch def.Kind {
	case ast.Enum, ast.Scalar:
		c.reachable[name] = def

	case ast.InputObject:
		c.reachable[name] = def
		for _, field := range def.Fields {
			c.addType(field.Type)
		}
	}
}

func (c *collector) walkSelections(selections ast.SelectionSet) {
	for _, selection := range selections {
		switch selection := selection.(type) {
		case *ast.Field:
			if selection.Definition != nil && len(selection.SelectionSet) == 0 {
				// Leaf field; its type is an enum or scalar. Argument types are not collected:
				// arguments only reach generated code through variables, whose definitions are
				// walked above.
				c.addType(selection.Definition.Type)
			}
			c.walkSelections(selection.SelectionSet)

		case *ast.InlineFragment:
			c.walkSelections(selection.SelectionSet)

		case *ast.FragmentSpread:
			// Fragment definitions are walked separately; nothing to do here.
		}
	}
}
