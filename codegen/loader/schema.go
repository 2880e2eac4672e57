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

// Package loader turns the configured schema pointers and document globs into a validated
// GraphQL schema and operation document, the inputs every plugin runs against.
package loader

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/zirkelc/gqlcodegen/codegen"
	"github.com/zirkelc/gqlcodegen/codegen/introspect"
	"github.com/zirkelc/gqlcodegen/gqlclient"
)

// SchemaOptions configures LoadSchema.
type SchemaOptions struct {
	// Headers are added to introspection requests against URL pointers.
	Headers map[string]string

	// Client overrides the GraphQL client used for URL pointers. When nil, an HTTP client is
	// constructed per endpoint with the configured headers.
	Client gqlclient.Client
}

// IsURL reports whether a schema pointer refers to an introspection endpoint rather than a file
// glob.
func IsURL(pointer string) bool {
	return strings.HasPrefix(pointer, "http://") || strings.HasPrefix(pointer, "https://")
}

// LoadSchema resolves every schema pointer to SDL sources and loads them into a single schema.
// File pointers are treated as globs and may match several SDL files; URL pointers are
// introspected. Sources from multiple pointers are merged by gqlparser, so a schema can be split
// across files and extended locally.
func LoadSchema(ctx context.Context, pointers []string, opts SchemaOptions) (*ast.Schema, error) {
	const op = codegen.Op("loader.LoadSchema")

	var sources []*ast.Source
	for _, pointer := range pointers {
		if IsURL(pointer) {
			source, err := introspectEndpoint(ctx, pointer, opts)
			if err != nil {
				return nil, err
			}
			sources = append(sources, source)
			continue
		}

		files, err := expandGlob(pointer)
		if err != nil {
			return nil, codegen.NewError(fmt.Sprintf("bad schema glob %q", pointer), op, codegen.ErrKindConfig, err)
		}
		if len(files) == 0 {
			return nil, codegen.NewError(
				fmt.Sprintf("schema pointer %q matched no files", pointer), op, codegen.ErrKindSchema)
		}
		for _, file := range files {
			data, err := os.ReadFile(file)
			if err != nil {
				return nil, codegen.NewError("read schema file", op, codegen.ErrKindIO, err)
			}
			sources = append(sources, &ast.Source{Name: file, Input: string(data)})
		}
	}

	schema, err := gqlparser.LoadSchema(sources...)
	if err != nil {
		return nil, codegen.ConvertGqlError(op, codegen.ErrKindSchema, "", err)
	}
	return schema, nil
}

// introspectEndpoint runs the introspection query against endpoint and reconstructs SDL from the
// result.
func introspectEndpoint(ctx context.Context, endpoint string, opts SchemaOptions) (*ast.Source, error) {
	const op = codegen.Op("loader.introspectEndpoint")

	client := opts.Client
	if client == nil {
		client = gqlclient.New(endpoint, gqlclient.WithHeaders(opts.Headers))
	}

	var response introspect.Response
	err := client.Do(ctx, &gqlclient.Request{
		Query:         introspect.Query,
		OperationName: "IntrospectionQuery",
	}, &response)
	if err != nil {
		return nil, codegen.NewError(
			fmt.Sprintf("introspection of %s failed", endpoint), op, codegen.ErrKindSchema, err)
	}

	sdl, err := response.SDL()
	if err != nil {
		return nil, codegen.NewError(
			fmt.Sprintf("introspection of %s returned an unusable result", endpoint),
			op, codegen.ErrKindSchema, err)
	}

	return &ast.Source{Name: endpoint, Input: sdl}, nil
}
