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

package loader

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

func isRegularFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}

// expandGlob expands a file glob into matching regular file paths, sorted. In addition to the
// patterns understood by path.Match, a path segment of "**" matches zero or more directories, the
// convention document globs are usually written in (e.g. "queries/**/*.graphql").
func expandGlob(pattern string) ([]string, error) {
	pattern = filepath.ToSlash(pattern)
	if !strings.Contains(pattern, "**") {
		matches, err := filepath.Glob(filepath.FromSlash(pattern))
		if err != nil {
			return nil, err
		}
		files := matches[:0]
		for _, match := range matches {
			if isRegularFile(match) {
				files = append(files, filepath.ToSlash(match))
			}
		}
		sort.Strings(files)
		return files, nil
	}

	// Walk from the fixed directory prefix in front of the first wildcard.
	root := "."
	if idx := strings.IndexAny(pattern, "*?["); idx > 0 {
		if slash := strings.LastIndexByte(pattern[:idx], '/'); slash >= 0 {
			root = pattern[:slash]
		}
	}

	var files []string
	err := filepath.WalkDir(filepath.FromSlash(root), func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		name := filepath.ToSlash(p)
		ok, err := matchDoubleStar(pattern, name)
		if err != nil {
			return err
		}
		if ok {
			files = append(files, name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// matchDoubleStar matches name against pattern where a "**" segment matches any number of path
// segments, including none.
func matchDoubleStar(pattern, name string) (bool, error) {
	patternSegs := strings.Split(pattern, "/")
	nameSegs := strings.Split(name, "/")
	return matchSegments(patternSegs, nameSegs)
}

func matchSegments(pattern, name []string) (bool, error) {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			// Try to consume zero or more name segments.
			for skip := 0; skip <= len(name); skip++ {
				ok, err := matchSegments(pattern[1:], name[skip:])
				if err != nil || ok {
					return ok, err
				}
			}
			return false, nil
		}

		if len(name) == 0 {
			return false, nil
		}
		ok, err := path.Match(pattern[0], name[0])
		if err != nil || !ok {
			return ok, err
		}
		pattern = pattern[1:]
		name = name[1:]
	}
	return len(name) == 0, nil
}
