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

// Package operations generates the per-operation bindings: the executable document as a string
// constant, a variables struct, and a response struct tree mirroring the operation's selection
// sets. Fragment spreads are flattened into the structs that spread them; a narrowing fragment
// (one conditioned on a subtype of the surrounding selection) contributes its fields as pointers,
// nil whenever the runtime type does not match.
package operations

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/zirkelc/gqlcodegen/codegen"
	"github.com/zirkelc/gqlcodegen/codegen/config"
	"github.com/zirkelc/gqlcodegen/codegen/gocode"
	"github.com/zirkelc/gqlcodegen/codegen/plugins/schematypes"
)

// PluginName is the identifier targets reference this plugin by.
const PluginName = "operations"

type plugin struct{}

// New creates the operations plugin.
func New() codegen.Plugin {
	return plugin{}
}

func (plugin) Name() string {
	return PluginName
}

// ValidateConfig enforces that schematypes runs earlier in the same target: the generated structs
// reference the enum and scalar declarations it produces.
func (plugin) ValidateConfig(target config.Target) error {
	for _, name := range target.Plugins {
		switch name {
		case schematypes.PluginName:
			return nil
		case PluginName:
			return codegen.NewError(
				fmt.Sprintf("plugin %q requires %q to run before it in the same target",
					PluginName, schematypes.PluginName),
				codegen.ErrKindConfig)
		}
	}
	return nil
}

func (plugin) Generate(input *codegen.Input) (*codegen.File, error) {
	operations := sortedOperations(input.Document)

	var w gocode.Writer
	for _, operation := range operations {
		if operation.Name == "" {
			return nil, codegen.NewError(
				"anonymous operations cannot produce named bindings; give the operation a name",
				codegen.Op("operations.Generate"), codegen.ErrKindPlugin)
		}

		g := &opGenerator{
			schema:  input.Schema,
			scalars: gocode.NewScalarMap(input.Config.Scalars),
			w:       &w,
			prefix:  gocode.ExportedName(operation.Name),
		}
		if err := g.generate(input.Document, operation); err != nil {
			return nil, err
		}
	}

	return w.File(), nil
}

// sortedOperations orders operations by name so the output does not depend on file enumeration
// order.
func sortedOperations(doc *ast.QueryDocument) []*ast.OperationDefinition {
	operations := make([]*ast.OperationDefinition, len(doc.Operations))
	copy(operations, doc.Operations)
	sort.Slice(operations, func(i, j int) bool { return operations[i].Name < operations[j].Name })
	return operations
}

type opGenerator struct {
	schema  *ast.Schema
	scalars gocode.ScalarMap
	w       *gocode.Writer
	prefix  string
}

func (g *opGenerator) generate(doc *ast.QueryDocument, operation *ast.OperationDefinition) error {
	root, err := g.rootDefinition(operation)
	if err != nil {
		return err
	}

	g.w.Linef("// %sDocument is the GraphQL source for the %s %s, including every fragment it"+
		" spreads.", g.prefix, operation.Name, operation.Operation)
	g.w.Linef("const %sDocument = %s", g.prefix, goStringLiteral(DocumentText(doc, operation)))
	g.w.Blank()

	g.w.Linef("// %sOperationName identifies the operation within %sDocument.", g.prefix, g.prefix)
	g.w.Linef("const %sOperationName = %q", g.prefix, operation.Name)
	g.w.Blank()

	if len(operation.VariableDefinitions) > 0 {
		if err := g.writeVariables(operation); err != nil {
			return err
		}
	}

	return g.writeStruct(g.prefix+"Response", root.Name, operation.SelectionSet)
}

func (g *opGenerator) rootDefinition(operation *ast.OperationDefinition) (*ast.Definition, error) {
	var root *ast.Definition
	switch operation.Operation {
	case ast.Query:
		root = g.schema.Query
	case ast.Mutation:
		root = g.schema.Mutation
	case ast.Subscription:
		root = g.schema.Subscription
	}
	if root == nil {
		return nil, codegen.NewError(
			fmt.Sprintf("schema does not define a root type for %s operations", operation.Operation),
			codegen.Op("operations.Generate"), codegen.ErrKindPlugin)
	}
	return root, nil
}

func (g *opGenerator) writeVariables(operation *ast.OperationDefinition) error {
	g.w.Linef("// %sVariables are the inputs of %s.", g.prefix, operation.Name)
	g.w.Linef("type %sVariables struct {", g.prefix)
	for _, variable := range operation.VariableDefinitions {
		ref, imports, err := schematypes.GoInputType(g.schema, g.scalars, variable.Type)
		if err != nil {
			return err
		}
		for _, path := range imports {
			g.w.Import(path)
		}

		tag := variable.Variable
		if !variable.Type.NonNull {
			tag += ",omitempty"
		}
		g.w.Linef("\t%s %s `json:%q`", gocode.ExportedName(variable.Variable), ref, tag)
	}
	g.w.Line("}")
	g.w.Blank()
	return nil
}

// field is one Go struct field derived from a response key.
type field struct {
	key        string
	def        *ast.FieldDefinition
	selections ast.SelectionSet

	// optional forces a pointer: the field was selected through a narrowing fragment, so it is
	// absent whenever the runtime type does not match the fragment's condition.
	optional bool

	typename bool
}

func (g *opGenerator) writeStruct(name, parentType string, selections ast.SelectionSet) error {
	var fields []*field
	index := make(map[string]*field)
	if err := g.collectFields(parentType, selections, false, &fields, index); err != nil {
		return err
	}

	type nested struct {
		name       string
		parentType string
		selections ast.SelectionSet
	}
	var children []nested

	goNames := make(map[string]string)
	g.w.Linef("type %s struct {", name)
	for _, f := range fields {
		goName := gocode.ExportedName(f.key)
		if prev, dup := goNames[goName]; dup {
			return codegen.NewError(
				fmt.Sprintf("response keys %q and %q in %s map to the same Go field %q; alias one of them",
					prev, f.key, name, goName),
				codegen.Op("operations.Generate"), codegen.ErrKindPlugin)
		}
		goNames[goName] = f.key

		var ref string
		if f.typename {
			ref = "string"
		} else if len(f.selections) > 0 {
			childName := name + goName
			ref = typeRef(f.def.Type, childName)
			children = append(children, nested{
				name:       childName,
				parentType: f.def.Type.Name(),
				selections: f.selections,
			})
		} else {
			base, imports, err := g.leafType(f.def.Type.Name())
			if err != nil {
				return err
			}
			for _, path := range imports {
				g.w.Import(path)
			}
			ref = typeRef(f.def.Type, base)
		}

		if f.optional && !strings.HasPrefix(ref, "*") && !strings.HasPrefix(ref, "[]") {
			ref = "*" + ref
		}
		g.w.Linef("\t%s %s `json:%q`", goName, ref, f.key)
	}
	g.w.Line("}")
	g.w.Blank()

	for _, child := range children {
		if err := g.writeStruct(child.name, child.parentType, child.selections); err != nil {
			return err
		}
	}
	return nil
}

// collectFields flattens a selection set into Go struct fields. Fields selected more than once
// under the same response key are merged; the validator has already established they are
// compatible.
func (g *opGenerator) collectFields(
	parentType string, selections ast.SelectionSet, optional bool,
	fields *[]*field, index map[string]*field,
) error {
	for _, selection := range selections {
		switch selection := selection.(type) {
		case *ast.Field:
			key := selection.Alias
			if key == "" {
				key = selection.Name
			}

			if existing, ok := index[key]; ok {
				existing.selections = append(existing.selections, selection.SelectionSet...)
				existing.optional = existing.optional && optional
				continue
			}

			f := &field{key: key, optional: optional}
			if selection.Name == "__typename" {
				f.typename = true
			} else {
				if selection.Definition == nil {
					return codegen.NewError(
						fmt.Sprintf("field %q has no bound schema definition; document was not validated", key),
						codegen.Op("operations.Generate"), codegen.ErrKindInternal)
				}
				f.def = selection.Definition
				f.selections = selection.SelectionSet
			}
			*fields = append(*fields, f)
			index[key] = f

		case *ast.InlineFragment:
			narrow := g.narrows(parentType, selection.TypeCondition)
			scope := parentType
			if selection.TypeCondition != "" {
				scope = selection.TypeCondition
			}
			if err := g.collectFields(scope, selection.SelectionSet, optional || narrow, fields, index); err != nil {
				return err
			}

		case *ast.FragmentSpread:
			fragment := selection.Definition
			if fragment == nil {
				return codegen.NewError(
					fmt.Sprintf("fragment %q has no bound definition; document was not validated", selection.Name),
					codegen.Op("operations.Generate"), codegen.ErrKindInternal)
			}
			narrow := g.narrows(parentType, fragment.TypeCondition)
			if err := g.collectFields(
				fragment.TypeCondition, fragment.SelectionSet, optional || narrow, fields, index); err != nil {
				return err
			}
		}
	}
	return nil
}

// narrows reports whether a fragment conditioned on condition can fail to apply to a value of
// parentType. A condition equal to the parent, or an interface the parent object implements,
// always applies.
func (g *opGenerator) narrows(parentType, condition string) bool {
	if condition == "" || condition == parentType {
		return false
	}
	parent := g.schema.Types[parentType]
	if parent != nil && parent.Kind == ast.Object {
		for _, iface := range parent.Interfaces {
			if iface == condition {
				return false
			}
		}
	}
	return true
}

func (g *opGenerator) leafType(name string) (string, []string, error) {
	def := g.schema.Types[name]
	if def == nil {
		return "", nil, codegen.NewError(
			fmt.Sprintf("type %q is not defined in the schema", name),
			codegen.Op("operations.Generate"), codegen.ErrKindInternal)
	}

	switch def.Kind {
	case ast.Scalar:
		if scalar, ok := g.scalars.Lookup(name); ok {
			if scalar.Import != "" {
				return scalar.Ref, []string{scalar.Import}, nil
			}
			return scalar.Ref, nil, nil
		}
		return schematypes.TypeName(name), nil, nil

	case ast.Enum:
		return schematypes.TypeName(name), nil, nil
	}

	return "", nil, codegen.NewError(
		fmt.Sprintf("composite type %q selected without a selection set; document was not validated", name),
		codegen.Op("operations.Generate"), codegen.ErrKindInternal)
}

// typeRef wraps base according to the GraphQL type reference: nullable named types become
// pointers, lists become slices. A nil slice stands in for a null list.
func typeRef(t *ast.Type, base string) string {
	if t.Elem != nil {
		return "[]" + typeRef(t.Elem, base)
	}
	if t.NonNull {
		return base
	}
	return "*" + base
}

// goStringLiteral renders s as a raw string literal when possible, falling back to an interpreted
// literal when s itself contains a backquote.
func goStringLiteral(s string) string {
	if !strings.Contains(s, "`") {
		return "`" + s + "`"
	}
	return strconv.Quote(s)
}
