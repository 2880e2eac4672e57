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

package introspect

import (
	"fmt"
	"sort"
	"strings"
)

// Built-in scalars and directives are part of gqlparser's prelude; re-declaring them in the
// reconstructed SDL would collide.
var builtinScalars = map[string]bool{
	"Int":     true,
	"Float":   true,
	"String":  true,
	"Boolean": true,
	"ID":      true,
}

var builtinDirectives = map[string]bool{
	"skip":        true,
	"include":     true,
	"deprecated":  true,
	"specifiedBy": true,
	"defer":       true,
	"oneOf":       true,
}

// defaultDeprecationReason is the spec-defined default for @deprecated(reason:).
const defaultDeprecationReason = "No longer supported"

// SDL reconstructs a schema definition language document from the introspection result. The
// output is deterministic: types, and nothing else, are reordered (sorted by name), so repeated
// runs against an unchanged endpoint produce identical documents.
func (r *Response) SDL() (string, error) {
	if r.Schema == nil {
		return "", fmt.Errorf("introspection result has no __schema")
	}

	var b strings.Builder
	schema := r.Schema

	if err := writeSchemaDefinition(&b, schema); err != nil {
		return "", err
	}

	directives := make([]Directive, 0, len(schema.Directives))
	for _, directive := range schema.Directives {
		if !builtinDirectives[directive.Name] {
			directives = append(directives, directive)
		}
	}
	sort.Slice(directives, func(i, j int) bool { return directives[i].Name < directives[j].Name })
	for _, directive := range directives {
		if err := writeDirectiveDefinition(&b, directive); err != nil {
			return "", err
		}
	}

	types := make([]FullType, 0, len(schema.Types))
	for _, typ := range schema.Types {
		// Skip introspection meta types and prelude scalars.
		if strings.HasPrefix(typ.Name, "__") || builtinScalars[typ.Name] {
			continue
		}
		types = append(types, typ)
	}
	sort.Slice(types, func(i, j int) bool { return types[i].Name < types[j].Name })
	for _, typ := range types {
		if err := writeTypeDefinition(&b, typ); err != nil {
			return "", err
		}
	}

	return b.String(), nil
}

func writeSchemaDefinition(b *strings.Builder, schema *Schema) error {
	if schema.QueryType == nil || schema.QueryType.Name == "" {
		return fmt.Errorf("introspection result defines no query root type")
	}

	b.WriteString("schema {\n")
	fmt.Fprintf(b, "  query: %s\n", schema.QueryType.Name)
	if schema.MutationType != nil && schema.MutationType.Name != "" {
		fmt.Fprintf(b, "  mutation: %s\n", schema.MutationType.Name)
	}
	if schema.SubscriptionType != nil && schema.SubscriptionType.Name != "" {
		fmt.Fprintf(b, "  subscription: %s\n", schema.SubscriptionType.Name)
	}
	b.WriteString("}\n")
	return nil
}

func writeDirectiveDefinition(b *strings.Builder, directive Directive) error {
	b.WriteByte('\n')
	writeDescription(b, directive.Description, "")

	fmt.Fprintf(b, "directive @%s", directive.Name)
	if err := writeArguments(b, directive.Args); err != nil {
		return err
	}
	if len(directive.Locations) == 0 {
		return fmt.Errorf("directive @%s declares no locations", directive.Name)
	}
	fmt.Fprintf(b, " on %s\n", strings.Join(directive.Locations, " | "))
	return nil
}

func writeTypeDefinition(b *strings.Builder, typ FullType) error {
	if typ.Name == "" {
		return fmt.Errorf("introspection result contains an unnamed %s type", typ.Kind)
	}

	b.WriteByte('\n')
	writeDescription(b, typ.Description, "")

	switch typ.Kind {
	case TypeKindScalar:
		fmt.Fprintf(b, "scalar %s\n", typ.Name)
		return nil

	case TypeKindObject, TypeKindInterface:
		keyword := "type"
		if typ.Kind == TypeKindInterface {
			keyword = "interface"
		}
		fmt.Fprintf(b, "%s %s", keyword, typ.Name)
		if len(typ.Interfaces) > 0 {
			names := make([]string, len(typ.Interfaces))
			for i, iface := range typ.Interfaces {
				names[i] = iface.Name
			}
			sort.Strings(names)
			fmt.Fprintf(b, " implements %s", strings.Join(names, " & "))
		}
		b.WriteString(" {\n")
		for _, field := range typ.Fields {
			if err := writeFieldDefinition(b, field); err != nil {
				return fmt.Errorf("type %s: %w", typ.Name, err)
			}
		}
		b.WriteString("}\n")
		return nil

	case TypeKindUnion:
		if len(typ.PossibleTypes) == 0 {
			return fmt.Errorf("union %s has no member types", typ.Name)
		}
		names := make([]string, len(typ.PossibleTypes))
		for i, member := range typ.PossibleTypes {
			names[i] = member.Name
		}
		sort.Strings(names)
		fmt.Fprintf(b, "union %s = %s\n", typ.Name, strings.Join(names, " | "))
		return nil

	case TypeKindEnum:
		fmt.Fprintf(b, "enum %s {\n", typ.Name)
		for _, value := range typ.EnumValues {
			writeDescription(b, value.Description, "  ")
			fmt.Fprintf(b, "  %s", value.Name)
			writeDeprecated(b, value.IsDeprecated, value.DeprecationReason)
			b.WriteByte('\n')
		}
		b.WriteString("}\n")
		return nil

	case TypeKindInputObject:
		fmt.Fprintf(b, "input %s {\n", typ.Name)
		for _, field := range typ.InputFields {
			writeDescription(b, field.Description, "  ")
			fmt.Fprintf(b, "  %s: ", field.Name)
			if err := writeTypeRef(b, field.Type); err != nil {
				return fmt.Errorf("input %s: %w", typ.Name, err)
			}
			if field.DefaultValue != nil {
				fmt.Fprintf(b, " = %s", *field.DefaultValue)
			}
			b.WriteByte('\n')
		}
		b.WriteString("}\n")
		return nil
	}

	return fmt.Errorf("unknown type kind %q for type %s", typ.Kind, typ.Name)
}

func writeFieldDefinition(b *strings.Builder, field Field) error {
	writeDescription(b, field.Description, "  ")
	fmt.Fprintf(b, "  %s", field.Name)
	if err := writeArguments(b, field.Args); err != nil {
		return fmt.Errorf("field %s: %w", field.Name, err)
	}
	b.WriteString(": ")
	if err := writeTypeRef(b, field.Type); err != nil {
		return fmt.Errorf("field %s: %w", field.Name, err)
	}
	writeDeprecated(b, field.IsDeprecated, field.DeprecationReason)
	b.WriteByte('\n')
	return nil
}

func writeArguments(b *strings.Builder, args []InputValue) error {
	if len(args) == 0 {
		return nil
	}
	b.WriteByte('(')
	for i, arg := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(b, "%s: ", arg.Name)
		if err := writeTypeRef(b, arg.Type); err != nil {
			return fmt.Errorf("argument %s: %w", arg.Name, err)
		}
		if arg.DefaultValue != nil {
			fmt.Fprintf(b, " = %s", *arg.DefaultValue)
		}
	}
	b.WriteByte(')')
	return nil
}

func writeDeprecated(b *strings.Builder, deprecated bool, reason *string) {
	if !deprecated {
		return
	}
	if reason == nil || *reason == "" || *reason == defaultDeprecationReason {
		b.WriteString(" @deprecated")
		return
	}
	fmt.Fprintf(b, " @deprecated(reason: %s)", quoteString(*reason))
}

func writeDescription(b *strings.Builder, description, indent string) {
	if description == "" {
		return
	}
	b.WriteString(indent)
	b.WriteString(quoteString(description))
	b.WriteByte('\n')
}

// writeTypeRef renders a TypeRef wrapping chain, e.g. `[Episode!]!`.
func writeTypeRef(b *strings.Builder, ref TypeRef) error {
	rendered, err := renderTypeRef(&ref, 0)
	if err != nil {
		return err
	}
	b.WriteString(rendered)
	return nil
}

// maxTypeRefDepth matches the wrapping depth selected by the introspection query.
const maxTypeRefDepth = 9

func renderTypeRef(ref *TypeRef, depth int) (string, error) {
	if ref == nil {
		return "", fmt.Errorf("truncated type reference (wrapping deeper than %d levels)", maxTypeRefDepth)
	}
	if depth > maxTypeRefDepth {
		return "", fmt.Errorf("type reference exceeds %d wrapping levels", maxTypeRefDepth)
	}

	switch ref.Kind {
	case TypeKindNonNull:
		inner, err := renderTypeRef(ref.OfType, depth+1)
		if err != nil {
			return "", err
		}
		return inner + "!", nil

	case TypeKindList:
		inner, err := renderTypeRef(ref.OfType, depth+1)
		if err != nil {
			return "", err
		}
		return "[" + inner + "]", nil
	}

	if ref.Name == "" {
		return "", fmt.Errorf("type reference of kind %s has no name", ref.Kind)
	}
	return ref.Name, nil
}

// quoteString renders s as a single-line GraphQL string literal. GraphQL's escape sequences are a
// subset of JSON's, so the escaping here stays within \", \\, \n, \r, \t and \uXXXX.
func quoteString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04X`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}
