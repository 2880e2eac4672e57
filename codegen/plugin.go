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

// Package codegen defines the contracts shared by every stage of the generator: the error model,
// the plugin interface, and the registry plugins are looked up in. The pipeline itself lives in
// the generator subpackage; the built-in plugins live under plugins/.
package codegen

import (
	"fmt"
	"sort"

	"github.com/vektah/gqlparser/v2/ast"

	"github.com/zirkelc/gqlcodegen/codegen/config"
	"github.com/zirkelc/gqlcodegen/internal/util"
)

// Input is what a plugin generates from: the loaded schema, the validated operation document, and
// the target's configuration. The same Input value is handed to every plugin of a target, in the
// order the target configures them.
type Input struct {
	// Schema is the merged schema all documents were validated against.
	Schema *ast.Schema

	// Document holds every loaded operation and fragment. Field selections are bound to their
	// schema definitions.
	Document *ast.QueryDocument

	// Config carries the target options.
	Config config.TargetConfig

	// OutputPath is the path the target generates into, relative to the configuration file.
	OutputPath string
}

// File is one plugin's contribution to a target's output.
type File struct {
	// Content is the generated fragment. For Go targets the runner concatenates the fragments of
	// all plugins into a single file and formats the result, so a fragment contains declarations
	// only, without a package clause.
	Content []byte

	// GoImports lists import paths the fragment's declarations refer to.
	GoImports []string
}

// Plugin is a unit of code generation: given a schema and operation documents, it emits bindings.
type Plugin interface {
	// Name is the identifier targets reference in their plugin list.
	Name() string

	// Generate produces this plugin's output fragment.
	Generate(input *Input) (*File, error)
}

// ConfigValidator is implemented by plugins that constrain their target configuration. Validation
// runs for every plugin of a target before any of them generates.
type ConfigValidator interface {
	ValidateConfig(target config.Target) error
}

// Registry maps plugin names to implementations.
type Registry struct {
	plugins map[string]Plugin
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{plugins: make(map[string]Plugin)}
}

// Register adds a plugin. Registering two plugins under one name is a programming error and
// panics.
func (r *Registry) Register(plugin Plugin) {
	name := plugin.Name()
	if _, dup := r.plugins[name]; dup {
		panic(fmt.Sprintf("plugin %q registered twice", name))
	}
	r.plugins[name] = plugin
}

// Names returns the registered plugin names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.plugins))
	for name := range r.plugins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup resolves a configured plugin name. An unknown name produces an error that suggests
// close matches.
func (r *Registry) Lookup(name string) (Plugin, error) {
	if plugin, ok := r.plugins[name]; ok {
		return plugin, nil
	}

	message := fmt.Sprintf("unknown plugin %q", name)
	if suggestions := util.SuggestionList(name, r.Names()); len(suggestions) > 0 {
		message = fmt.Sprintf("%s; did you mean %s?", message, util.QuotedOrList(suggestions))
	}
	return nil, NewError(message, ErrKindConfig)
}
