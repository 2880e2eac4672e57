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

package util_test

import (
	"github.com/zirkelc/gqlcodegen/internal/util"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("CamelCase", func() {
	It("converts string to CamelCase", func() {
		testcases := map[string]string{
			"":           "",
			"a":          "A",
			"foo":        "Foo",
			"A":          "A",
			"FOO":        "FOO",
			"CamelCase":  "CamelCase",
			"Foo_Bar":    "FooBar",
			"foo_bar":    "FooBar",
			"foo_bar_":   "FooBar",
			"_foo_bar":   "FooBar",
			"_foo_bar_":  "FooBar",
			"___foo_bar": "FooBar",
			"foo___bar":  "FooBar",
			"foo_bar___": "FooBar",
			"foo1_bar2":  "Foo1Bar2",
		}

		for s, expected := range testcases {
			Expect(util.CamelCase(s)).Should(Equal(expected), "%s", s)
		}
	})
})

var _ = Describe("LowerCamelCase", func() {
	It("converts string to lowerCamelCase", func() {
		testcases := map[string]string{
			"":          "",
			"A":         "a",
			"foo_bar":   "fooBar",
			"Foo_Bar":   "fooBar",
			"_foo_bar":  "fooBar",
			"CamelCase": "camelCase",
		}

		for s, expected := range testcases {
			Expect(util.LowerCamelCase(s)).Should(Equal(expected), "%s", s)
		}
	})
})

var _ = Describe("SnakeCase", func() {
	It("converts string to snake_case", func() {
		testcases := map[string]string{
			"":          "",
			"a":         "a",
			"A":         "a",
			"foo":       "foo",
			"fooBar":    "foo_bar",
			"FooBar":    "foo_bar",
			"foo_bar":   "foo_bar",
			"FOOBar":    "foo_bar",
			"SnakeCase": "snake_case",
		}

		for s, expected := range testcases {
			Expect(util.SnakeCase(s)).Should(Equal(expected), "%s", s)
		}
	})
})
