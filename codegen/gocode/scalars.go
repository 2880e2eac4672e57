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

package gocode

import (
	"strings"
)

// A ScalarType is the Go rendering of a GraphQL scalar: the type reference to write into
// generated code and the import it requires, if any.
type ScalarType struct {
	// Ref is the type as it appears in source, e.g. "int64" or "time.Time".
	Ref string

	// Import is the package to import for Ref, empty for predeclared types. For "time.Time" it is
	// "time"; for "github.com/google/uuid.UUID" it is "github.com/google/uuid".
	Import string
}

// ParseScalarType interprets a configured scalar mapping value. A value without a dot is a
// predeclared type. Otherwise everything up to the last dot is the import path and the package
// name is its last path element.
func ParseScalarType(value string) ScalarType {
	dot := strings.LastIndexByte(value, '.')
	if dot < 0 {
		return ScalarType{Ref: value}
	}

	importPath := value[:dot]
	typeName := value[dot+1:]
	pkg := importPath
	if slash := strings.LastIndexByte(importPath, '/'); slash >= 0 {
		pkg = importPath[slash+1:]
	}
	return ScalarType{Ref: pkg + "." + typeName, Import: importPath}
}

// ScalarMap resolves GraphQL scalar names to Go types.
type ScalarMap map[string]ScalarType

// NewScalarMap builds a scalar map from the configured custom scalar mappings layered over the
// built-in ones. GraphQL Int is 32-bit at minimum but servers routinely exceed that, so it maps
// to int64; a config entry can narrow it.
func NewScalarMap(custom map[string]string) ScalarMap {
	m := ScalarMap{
		"Int":     {Ref: "int64"},
		"Float":   {Ref: "float64"},
		"String":  {Ref: "string"},
		"Boolean": {Ref: "bool"},
		"ID":      {Ref: "string"},
	}
	for name, value := range custom {
		m[name] = ParseScalarType(value)
	}
	return m
}

// Lookup resolves a scalar name. Unmapped custom scalars are absent; callers decide whether that
// is an error or a fallback to a JSON passthrough type.
func (m ScalarMap) Lookup(name string) (ScalarType, bool) {
	t, ok := m[name]
	return t, ok
}
