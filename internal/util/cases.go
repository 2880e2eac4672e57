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

package util

import (
	"strings"
)

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b - 'A' + 'a'
	}
	return b
}

func isLower(b byte) bool {
	return b >= 'a' && b <= 'z'
}

// CamelCase converts a GraphQL name of the form "/[_A-Za-z][_0-9A-Za-z]*/" [0] into upper camel
// case. For example, it returns "CamelCase" for "camel_case". Underscores are treated as word
// separators and dropped from the result.
//
// [0]: https://spec.graphql.org/June2018/#Name
func CamelCase(s string) string {
	sLen := len(s)
	if sLen == 0 {
		return s
	}

	var buf strings.Builder
	buf.Grow(sLen)

	upperNext := true
	for i := 0; i < sLen; i++ {
		b := s[i]
		if b == '_' {
			upperNext = true
			continue
		}
		if upperNext {
			buf.WriteByte(upper(b))
			upperNext = false
		} else {
			buf.WriteByte(b)
		}
	}

	return buf.String()
}

// LowerCamelCase behaves like CamelCase but leaves the first written character in lower case. For
// example, it returns "camelCase" for "Camel_Case".
func LowerCamelCase(s string) string {
	camel := CamelCase(s)
	if len(camel) == 0 {
		return camel
	}
	return string(lower(camel[0])) + camel[1:]
}

// SnakeCase converts a GraphQL name into snake case. For example, it returns "snake_case" for
// "SnakeCase". An underscore is inserted at every case boundary which starts or ends a run of
// lower-case characters; existing underscores are preserved.
func SnakeCase(s string) string {
	sLen := len(s)
	if sLen == 0 {
		return s
	} else if sLen == 1 {
		return string(lower(s[0]))
	}

	var buf strings.Builder
	buf.Grow(sLen + 4)

	prev := s[0]
	buf.WriteByte(lower(prev))

	for i := 1; i < sLen; i++ {
		cur := s[i]
		if lower(cur) != cur && prev != '_' {
			// cur is upper case; only break the word when the character on either side is lower
			// case (so acronym runs like "URL" stay together).
			nextIsLower := i+1 < sLen && isLower(s[i+1])
			if isLower(prev) || nextIsLower {
				buf.WriteByte('_')
			}
		}
		buf.WriteByte(lower(cur))
		prev = cur
	}

	return buf.String()
}
