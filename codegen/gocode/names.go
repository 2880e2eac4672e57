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
	"go/token"
	"strings"
	"unicode"

	"github.com/zirkelc/gqlcodegen/internal/util"
)

// ExportedName derives an exported Go identifier from a GraphQL name. Leading underscores are
// dropped first so meta fields like "__typename" yield "Typename".
func ExportedName(name string) string {
	name = strings.TrimLeft(name, "_")
	camel := util.CamelCase(name)
	if camel == "" {
		return "X"
	}
	if !unicode.IsLetter(rune(camel[0])) {
		// GraphQL names never start with a digit, but custom scalars mapped through config might.
		return "X" + camel
	}
	return camel
}

// UnexportedName derives an unexported Go identifier from a GraphQL name, suitable for parameters
// and local variables in generated code. Names that collide with a Go keyword get an underscore
// suffix.
func UnexportedName(name string) string {
	name = strings.TrimLeft(name, "_")
	lower := util.LowerCamelCase(name)
	if lower == "" {
		return "x"
	}
	if token.IsKeyword(lower) {
		return lower + "_"
	}
	return lower
}

// ValidPackageName reports whether name can be used as a Go package name.
func ValidPackageName(name string) bool {
	if name == "" || token.IsKeyword(name) {
		return false
	}
	for i, r := range name {
		if unicode.IsLetter(r) || r == '_' || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}
