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
	"strconv"
	"strings"
)

// OrList transforms a string slice like ["A", "B", "C"] into `A, B, or C`. If quoted is true, each
// item is surrounded by double quotes. If a positive limit is given, at most that number of items
// is included.
func OrList(items []string, limit int, quoted bool) string {
	numItems := len(items)
	if numItems == 0 {
		return ""
	}
	if limit > 0 && numItems > limit {
		items = items[:limit]
		numItems = limit
	}

	writeItem := func(buf *strings.Builder, item string) {
		if quoted {
			buf.WriteString(strconv.Quote(item))
		} else {
			buf.WriteString(item)
		}
	}

	var buf strings.Builder
	writeItem(&buf, items[0])
	for i := 1; i < numItems; i++ {
		if numItems > 2 {
			buf.WriteString(", ")
		} else {
			buf.WriteString(" ")
		}
		if i == numItems-1 {
			buf.WriteString("or ")
		}
		writeItem(&buf, items[i])
	}

	return buf.String()
}

// QuotedOrList is shorthand for OrList with quoting enabled and the customary limit of 5 used in
// "did you mean" messages.
func QuotedOrList(items []string) string {
	return OrList(items, 5, true)
}
