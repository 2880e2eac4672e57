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

var _ = Describe("SuggestionList", func() {
	It("returns results when input is empty", func() {
		Expect(util.SuggestionList("", []string{"a"})).Should(Equal([]string{"a"}))
	})

	It("returns empty array when there are no options", func() {
		Expect(util.SuggestionList("input", []string{})).Should(BeEmpty())
	})

	It("returns options sorted based on similarity", func() {
		Expect(util.SuggestionList("abc", []string{"a", "ab", "abc"})).
			Should(Equal([]string{"abc", "ab"}))
	})

	It("treats a case change as a single edit", func() {
		Expect(util.SuggestionList("verylongstring", []string{"VERYLONGSTRING"})).
			Should(Equal([]string{"VERYLONGSTRING"}))
	})

	It("rejects options that are too far away", func() {
		Expect(util.SuggestionList("documents", []string{"serve"})).Should(BeEmpty())
	})
})
