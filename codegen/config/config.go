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

// Package config loads and validates the generator configuration file (gqlcodegen.yml). The
// surface mirrors the YAML layout long established by GraphQL code generators: schema pointer(s),
// document glob(s), and a "generates" map of output path to an ordered plugin list with optional
// per-target configuration.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// DefaultFilename is the configuration file looked up when none is given on the command line.
const DefaultFilename = "gqlcodegen.yml"

// StringList is a []string that also unmarshals from a single YAML scalar, so users can write
// either
//
//	schema: schema.graphql
//
// or
//
//	schema:
//	  - schema.graphql
//	  - extensions.graphql
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *StringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		*l = StringList{s}
		return nil

	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return err
		}
		*l = StringList(items)
		return nil
	}

	return fmt.Errorf("line %d: expected a string or a list of strings", value.Line)
}

// TargetConfig holds per-target options interpreted by plugins.
type TargetConfig struct {
	// Package is the Go package name written into the generated file's package clause. Defaults to
	// the base name of the output directory.
	Package string `yaml:"package"`

	// Scalars maps custom GraphQL scalar names to fully qualified Go types, e.g.
	// "DateTime: time.Time". Unmapped custom scalars fall back to interface{}.
	Scalars map[string]string `yaml:"scalars"`

	// OmitSubscriptions skips subscription operations when generating the SDK. The HTTP runtime
	// cannot execute them; with this unset, the SDK grows methods that return an error.
	OmitSubscriptions bool `yaml:"omitSubscriptions"`
}

// Target is one entry in the "generates" map: an ordered plugin list plus plugin configuration. In
// YAML a target may be given as a bare sequence of plugin names, or as a mapping with "plugins"
// and "config" keys.
type Target struct {
	Plugins []string     `yaml:"plugins"`
	Config  TargetConfig `yaml:"config"`
}

// UnmarshalYAML implements yaml.Unmarshaler to accept the bare-sequence shorthand.
func (t *Target) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.SequenceNode {
		var plugins []string
		if err := value.Decode(&plugins); err != nil {
			return err
		}
		t.Plugins = plugins
		return nil
	}

	// Decode into a shadow type to avoid recursing into this method.
	type plain Target
	var p plain
	if err := decodeStrict(value, &p); err != nil {
		return err
	}
	*t = Target(p)
	return nil
}

// Config is the root of the configuration file.
type Config struct {
	// Schema pointers: SDL file globs and/or http(s) endpoint URLs.
	Schema StringList `yaml:"schema"`

	// Documents are globs matching operation documents (.graphql/.gql files).
	Documents StringList `yaml:"documents"`

	// Headers are added to introspection requests against URL schema pointers. Values go through
	// environment expansion, so tokens can be referenced as "Bearer ${API_TOKEN}".
	Headers map[string]string `yaml:"headers"`

	// Generates maps an output path to the target generated there.
	Generates map[string]Target `yaml:"generates"`
}

// Load reads and parses the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse parses configuration YAML. Unknown keys are rejected so typos surface as errors instead of
// silently ignored settings.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty configuration")
		}
		return nil, err
	}

	// Expand environment references in header values.
	for name, value := range cfg.Headers {
		cfg.Headers[name] = os.ExpandEnv(value)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the structural invariants of the configuration. Plugin names are checked against
// the registry by the generator, not here, so the config package stays free of plugin imports.
func (cfg *Config) Validate() error {
	if len(cfg.Schema) == 0 {
		return fmt.Errorf("no schema pointer configured (set \"schema\" to a file glob or URL)")
	}
	for _, pointer := range cfg.Schema {
		if pointer == "" {
			return fmt.Errorf("empty schema pointer")
		}
	}

	if len(cfg.Generates) == 0 {
		return fmt.Errorf("nothing to generate (the \"generates\" map is empty)")
	}

	for _, output := range cfg.OutputPaths() {
		target := cfg.Generates[output]
		if output == "" {
			return fmt.Errorf("empty output path in \"generates\"")
		}
		if len(target.Plugins) == 0 {
			return fmt.Errorf("target %q configures no plugins", output)
		}
		seen := make(map[string]struct{}, len(target.Plugins))
		for _, name := range target.Plugins {
			if _, dup := seen[name]; dup {
				return fmt.Errorf("target %q lists plugin %q twice", output, name)
			}
			seen[name] = struct{}{}
		}
	}

	return nil
}

// OutputPaths returns the configured output paths in deterministic (sorted) order.
func (cfg *Config) OutputPaths() []string {
	paths := make([]string, 0, len(cfg.Generates))
	for path := range cfg.Generates {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// decodeStrict decodes a YAML node into out, rejecting unknown fields.
func decodeStrict(value *yaml.Node, out interface{}) error {
	data, err := yaml.Marshal(value)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(out)
}
