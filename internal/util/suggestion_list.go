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
	"math"
	"sort"
	"strings"
)

// SuggestionList, given an invalid input string and a list of valid options, returns a filtered
// list of valid options sorted by their similarity with the input. It powers the "did you mean"
// part of unknown-name error messages.
func SuggestionList(input string, options []string) []string {
	if len(options) == 0 {
		return nil
	}

	var (
		suggestions []string
		distances   []int
	)
	inputThreshold := float64(len(input)) / 2.0
	for _, option := range options {
		distance := lexicalDistance(input, option)
		threshold := math.Max(math.Max(inputThreshold, float64(len(option))/2.0), 1)
		if float64(distance) <= threshold {
			suggestions = append(suggestions, option)
			distances = append(distances, distance)
		}
	}

	// Sort options by their distance.
	order := make([]int, len(suggestions))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return distances[order[i]] < distances[order[j]]
	})

	sorted := make([]string, len(suggestions))
	for i, k := range order {
		sorted[i] = suggestions[k]
	}
	return sorted
}

// lexicalDistance computes the edit distance between two strings: the minimum number of
// insertions, deletions, substitutions, or swaps of adjacent characters needed to transform one
// into the other (Damerau-Levenshtein), with the alteration that a pure case change counts as a
// single edit. This helps identify mis-cased values with a distance of 1.
func lexicalDistance(aStr, bStr string) int {
	if aStr == bStr {
		return 0
	}

	a := strings.ToLower(aStr)
	b := strings.ToLower(bStr)
	if a == b {
		// Any case change counts as a single edit.
		return 1
	}

	aLen, bLen := len(a), len(b)
	d := make([][]int, aLen+1)
	for i := 0; i <= aLen; i++ {
		d[i] = make([]int, bLen+1)
		d[i][0] = i
	}
	for j := 1; j <= bLen; j++ {
		d[0][j] = j
	}

	for i := 1; i <= aLen; i++ {
		for j := 1; j <= bLen; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			min := d[i-1][j] + 1 // deletion
			if v := d[i][j-1] + 1; v < min {
				min = v // insertion
			}
			if v := d[i-1][j-1] + cost; v < min {
				min = v // substitution
			}
			if i > 1 && j > 1 && a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				if v := d[i-2][j-2] + cost; v < min {
					min = v // adjacent swap
				}
			}

			d[i][j] = min
		}
	}

	return d[aLen][bLen]
}
