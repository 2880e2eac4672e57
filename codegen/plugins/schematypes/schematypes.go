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

// Package schematypes generates the Go declarations for the schema types the loaded operations
// actually use: enums, input objects, and custom scalars. Object types never appear here; their
// shape depends on what each operation selects, so the operations plugin derives them per
// selection set.
package schematypes

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/zirkelc/gqlcodegen/codegen"
	"github.com/zirkelc/gqlcodegen/codegen/gocode"
	"github.com/zirkelc/gqlcodegen/internal/util"
)

// PluginName is the identifier targets reference this plugin by.
const PluginName = "schematypes"

type plugin struct{}

// New creates the schematypes plugin.
func New() codegen.Plugin {
	return plugin{}
}

func (plugin) Name() string {
	return PluginName
}

func (plugin) Generate(input *codegen.Input) (*codegen.File, error) {
	scalars := gocode.NewScalarMap(input.Config.Scalars)
	reachable := Reachable(input.Schema, input.Document)

	names := make([]string, 0, len(reachable))
	for name := range reachable {
		names = append(names, name)
	}
	sort.Strings(names)

	var w gocode.Writer
	for _, name := range names {
		def := reachable[name]
		switch def.Kind {
		case ast.Enum:
			writeEnum(&w, def)

		case ast.InputObject:
			if err := writeInputObject(&w, input.Schema, scalars, def); err != nil {
				return nil, err
			}

		case ast.Scalar:
			if _, mapped := scalars.Lookup(def.Name); mapped {
				// Mapped scalars are referenced by their configured Go type directly.
				continue
			}
			writeDescription(&w, def.Description)
			w.Import("encoding/json")
			w.Linef("type %s = json.RawMessage", TypeName(def.Name))
			w.Blank()
		}
	}

	return w.File(), nil
}

// TypeName is the Go type name generated for a GraphQL type.
func TypeName(name string) string {
	return gocode.ExportedName(name)
}

// EnumValueName is the Go constant name generated for an enum value. The value keeps its enum
// type as prefix so constants of different enums never collide.
func EnumValueName(enum, value string) string {
	return TypeName(enum) + util.CamelCase(util.SnakeCase(value))
}

func writeEnum(w *gocode.Writer, def *ast.Definition) {
	name := TypeName(def.Name)

	writeDescription(w, def.Description)
	w.Linef("type %s string", name)
	w.Blank()

	w.Linef("// Enumeration of %s.", name)
	w.Line("const (")
	for _, value := range def.EnumValues {
		w.Linef("\t%s %s = %q", EnumValueName(def.Name, value.Name), name, value.Name)
	}
	w.Line(")")
	w.Blank()

	w.Linef("// All%s lists every value of %s.", name, name)
	w.Linef("var All%s = []%s{", name, name)
	for _, value := range def.EnumValues {
		w.Linef("\t%s,", EnumValueName(def.Name, value.Name))
	}
	w.Line("}")
	w.Blank()

	w.Linef("// IsValid reports whether v is a declared value of %s.", name)
	w.Linef("func (v %s) IsValid() bool {", name)
	w.Line("\tswitch v {")
	var cases []string
	for _, value := range def.EnumValues {
		cases = append(cases, EnumValueName(def.Name, value.Name))
	}
	w.Linef("\tcase %s:", strings.Join(cases, ", "))
	w.Line("\t\treturn true")
	w.Line("\t}")
	w.Line("\treturn false")
	w.Line("}")
	w.Blank()
}

func writeInputObject(w *gocode.Writer, schema *ast.Schema, scalars gocode.ScalarMap, def *ast.Definition) error {
	writeDescription(w, def.Description)
	w.Linef("type %s struct {", TypeName(def.Name))
	for _, field := range def.Fields {
		ref, imports, err := GoInputType(schema, scalars, field.Type)
		if err != nil {
			return err
		}
		for _, path := range imports {
			w.Import(path)
		}

		tag := field.Name
		if !field.Type.NonNull {
			tag += ",omitempty"
		}
		w.Linef("\t%s %s `json:%q`", gocode.ExportedName(field.Name), ref, tag)
	}
	w.Line("}")
	w.Blank()
	return nil
}

func writeDescription(w *gocode.Writer, description string) {
	if description == "" {
		return
	}
	for _, line := range strings.Split(strings.TrimSpace(description), "\n") {
		w.Linef("// %s", strings.TrimRight(line, " \t"))
	}
}

// GoInputType maps a GraphQL type reference in input position (variable definitions and input
// object fields) to a Go type. A nullable named type becomes a pointer; lists become slices, with
// a nil slice standing in for a null list.
func GoInputType(schema *ast.Schema, scalars gocode.ScalarMap, t *ast.Type) (string, []string, error) {
	if t.Elem != nil {
		elemRef, imports, err := GoInputType(schema, scalars, t.Elem)
		if err != nil {
			return "", nil, err
		}
		return "[]" + elemRef, imports, nil
	}

	ref, imports, err := namedInputType(schema, scalars, t.NamedType)
	if err != nil {
		return "", nil, err
	}
	if !t.NonNull {
		ref = "*" + ref
	}
	return ref, imports, nil
}

func namedInputType(schema *ast.Schema, scalars gocode.ScalarMap, name string) (string, []string, error) {
	def := schema.Types[name]
	if def == nil {
		return "", nil, codegen.NewError(
			fmt.Sprintf("type %q is not defined in the schema", name),
			codegen.Op("schematypes.GoInputType"), codegen.ErrKindInternal)
	}

	switch def.Kind {
	case ast.Scalar:
		if scalar, ok := scalars.Lookup(name); ok {
			if scalar.Import != "" {
				return scalar.Ref, []string{scalar.Import}, nil
			}
			return scalar.Ref, nil, nil
		}
		// Unmapped custom scalar; an alias is generated for it.
		return TypeName(name), nil, nil

	case ast.Enum, ast.InputObject:
		return TypeName(name), nil, nil
	}

	return "", nil, codegen.NewError(
		fmt.Sprintf("type %q (%s) cannot be used in input position", name, def.Kind),
		codegen.Op("schematypes.GoInputType"), codegen.ErrKindInternal)
}
