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

// Dedent fixes indentation of a multi-line raw string literal. It removes leading newlines and
// trailing spaces and tabs, then takes the indentation of the first remaining line and strips it
// from every line. It is primarily used to keep inline GraphQL fixtures readable in source.
func Dedent(s string) string {
	// Remove leading newlines.
	s = strings.TrimLeft(s, "\n")

	// Remove trailing spaces and tabs (but keep a trailing newline).
	s = strings.TrimRight(s, " \t")

	// The indentation of the first line is the indentation of the block.
	indent := s
	for i := 0; i < len(s); i++ {
		if s[i] != '\t' && s[i] != ' ' {
			indent = s[:i]
			break
		}
	}

	if len(indent) == 0 {
		return s
	}

	return strings.ReplaceAll(s[len(indent):], "\n"+indent, "\n")
}
