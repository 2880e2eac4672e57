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

// Package manifest generates a persisted-operation manifest: a JSON object mapping the SHA-256
// hash of each operation's executable document to the document text. Servers that only accept
// allowlisted operations consume this file; the hash is computed over exactly the text a
// generated SDK sends.
package manifest

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"sort"

	"github.com/zirkelc/gqlcodegen/codegen"
	"github.com/zirkelc/gqlcodegen/codegen/plugins/operations"
	"github.com/zirkelc/gqlcodegen/jsonwriter"
)

// PluginName is the identifier targets reference this plugin by.
const PluginName = "manifest"

type plugin struct{}

// New creates the manifest plugin.
func New() codegen.Plugin {
	return plugin{}
}

func (plugin) Name() string {
	return PluginName
}

func (plugin) Generate(input *codegen.Input) (*codegen.File, error) {
	type entry struct {
		name string
		hash string
		text string
	}

	entries := make([]entry, 0, len(input.Document.Operations))
	for _, operation := range input.Document.Operations {
		text := operations.DocumentText(input.Document, operation)
		sum := sha256.Sum256([]byte(text))
		entries = append(entries, entry{
			name: operation.Name,
			hash: hex.EncodeToString(sum[:]),
			text: text,
		})
	}
	// Order by operation name so the manifest diffs cleanly under version control.
	sort.Slice(entries, func(i, j int) bool { return entries[i].name < entries[j].name })

	var buf bytes.Buffer
	stream := jsonwriter.NewStream(&buf)
	stream.WriteObjectStart()
	for i, e := range entries {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteObjectField(e.hash)
		stream.WriteString(e.text)
	}
	stream.WriteObjectEnd()
	stream.WriteRaw("\n")
	if err := stream.Flush(); err != nil {
		return nil, codegen.WrapError(err, "encode manifest")
	}

	return &codegen.File{Content: buf.Bytes()}, nil
}
