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

var _ = Describe("Dedent", func() {
	It("removes indentation in typical usage", func() {
		Expect(util.Dedent(`
      type Query {
        me: User
      }
    `)).Should(Equal("type Query {\n  me: User\n}\n"))
	})

	It("removes only the first level of indentation", func() {
		Expect(util.Dedent(`
      first
        second
          third
    `)).Should(Equal("first\n  second\n    third\n"))
	})

	It("does not alter a string without indentation", func() {
		Expect(util.Dedent("hello\nworld\n")).Should(Equal("hello\nworld\n"))
	})

	It("removes leading newlines", func() {
		Expect(util.Dedent("\n\n\nhello\n")).Should(Equal("hello\n"))
	})

	It("works with tabs", func() {
		Expect(util.Dedent("\n\t\thello\n\t\tworld\n\t")).Should(Equal("hello\nworld\n"))
	})
})
