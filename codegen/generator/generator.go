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

// Package generator runs the code generation pipeline: it loads the schema and operation
// documents once, then produces every configured output target, running each target's plugins in
// their configured order.
package generator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/zirkelc/gqlcodegen/codegen"
	"github.com/zirkelc/gqlcodegen/codegen/config"
	"github.com/zirkelc/gqlcodegen/codegen/gocode"
	"github.com/zirkelc/gqlcodegen/codegen/loader"
	"github.com/zirkelc/gqlcodegen/codegen/plugins/gosdk"
	"github.com/zirkelc/gqlcodegen/codegen/plugins/manifest"
	"github.com/zirkelc/gqlcodegen/codegen/plugins/operations"
	"github.com/zirkelc/gqlcodegen/codegen/plugins/schematypes"
	"github.com/zirkelc/gqlcodegen/gqlclient"
)

// Options tunes a generator run.
type Options struct {
	// Dir is the directory relative paths in the configuration are resolved against, usually the
	// configuration file's directory. Empty means the current directory.
	Dir string

	// Registry resolves plugin names. Nil means DefaultRegistry.
	Registry *codegen.Registry

	// DryRun loads, generates and formats everything but writes nothing.
	DryRun bool

	// Client overrides the GraphQL client used for schema introspection. Nil constructs an HTTP
	// client per endpoint.
	Client gqlclient.Client

	// Logger receives per-stage progress. The zero value discards it.
	Logger zerolog.Logger
}

// DefaultRegistry returns a registry with every built-in plugin registered.
func DefaultRegistry() *codegen.Registry {
	registry := codegen.NewRegistry()
	registry.Register(schematypes.New())
	registry.Register(operations.New())
	registry.Register(gosdk.New())
	registry.Register(manifest.New())
	return registry
}

// Generate runs the pipeline for cfg. Plugin names and plugin configuration constraints are
// checked for every target before anything is loaded, so a typo in one target fails the run
// without touching the network or the file system.
func Generate(ctx context.Context, cfg *config.Config, opts Options) error {
	registry := opts.Registry
	if registry == nil {
		registry = DefaultRegistry()
	}

	targets, err := resolveTargets(cfg, registry)
	if err != nil {
		return err
	}

	log := opts.Logger

	log.Debug().Strs("pointers", cfg.Schema).Msg("loading schema")
	schema, err := loader.LoadSchema(ctx, resolvePointers(opts.Dir, cfg.Schema), loader.SchemaOptions{
		Headers: cfg.Headers,
		Client:  opts.Client,
	})
	if err != nil {
		return err
	}

	log.Debug().Strs("globs", cfg.Documents).Msg("loading documents")
	document, err := loader.LoadDocuments(schema, resolvePointers(opts.Dir, cfg.Documents))
	if err != nil {
		return err
	}
	log.Debug().
		Int("operations", len(document.Operations)).
		Int("fragments", len(document.Fragments)).
		Msg("documents validated")

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))
	for _, target := range targets {
		target := target
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			input := &codegen.Input{
				Schema:     schema,
				Document:   document,
				Config:     target.config.Config,
				OutputPath: target.path,
			}
			data, err := generateTarget(target, input)
			if err != nil {
				return err
			}

			if opts.DryRun {
				log.Info().Str("path", target.path).Int("bytes", len(data)).Msg("dry run, not writing")
				return nil
			}
			if err := writeFileAtomic(filepath.Join(opts.Dir, target.path), data); err != nil {
				return err
			}
			log.Info().Str("path", target.path).Int("bytes", len(data)).Msg("wrote target")
			return nil
		})
	}
	return group.Wait()
}

// target is one resolved output: its path, configuration, and plugin chain.
type target struct {
	path    string
	config  config.Target
	plugins []codegen.Plugin
}

func resolveTargets(cfg *config.Config, registry *codegen.Registry) ([]target, error) {
	const op = codegen.Op("generator.Generate")

	var targets []target
	for _, path := range cfg.OutputPaths() {
		targetCfg := cfg.Generates[path]

		var plugins []codegen.Plugin
		for _, name := range targetCfg.Plugins {
			plugin, err := registry.Lookup(name)
			if err != nil {
				return nil, codegen.NewError(fmt.Sprintf("target %q", path), op, err)
			}
			if validator, ok := plugin.(codegen.ConfigValidator); ok {
				if err := validator.ValidateConfig(targetCfg); err != nil {
					return nil, codegen.NewError(fmt.Sprintf("target %q", path), op, err)
				}
			}
			plugins = append(plugins, plugin)
		}

		if isGoTarget(path) {
			if _, err := packageName(path, targetCfg); err != nil {
				return nil, err
			}
		}

		targets = append(targets, target{path: path, config: targetCfg, plugins: plugins})
	}
	return targets, nil
}

func generateTarget(t target, input *codegen.Input) ([]byte, error) {
	var files []*codegen.File
	for _, plugin := range t.plugins {
		file, err := plugin.Generate(input)
		if err != nil {
			return nil, codegen.WrapErrorf(err, "plugin %q failed for target %q", plugin.Name(), t.path)
		}
		files = append(files, file)
	}

	if !isGoTarget(t.path) {
		var data []byte
		for _, file := range files {
			data = append(data, file.Content...)
		}
		return data, nil
	}

	pkg, err := packageName(t.path, t.config)
	if err != nil {
		return nil, err
	}
	return gocode.Format(t.path, gocode.AssembleFile(pkg, files))
}

func isGoTarget(path string) bool {
	return strings.HasSuffix(path, ".go")
}

// packageName picks the Go package for a target: the configured one, or the name of the directory
// the target generates into.
func packageName(path string, targetCfg config.Target) (string, error) {
	pkg := targetCfg.Config.Package
	if pkg == "" {
		pkg = filepath.Base(filepath.Dir(filepath.FromSlash(path)))
	}
	if !gocode.ValidPackageName(pkg) {
		return "", codegen.NewError(
			fmt.Sprintf("target %q needs an explicit package name: %q is not a valid Go package name", path, pkg),
			codegen.Op("generator.Generate"), codegen.ErrKindConfig)
	}
	return pkg, nil
}

// writeFileAtomic writes data via a temporary file and rename, so a crashed or cancelled run
// never leaves a half-written target behind.
func writeFileAtomic(path string, data []byte) error {
	const op = codegen.Op("generator.Generate")

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return codegen.NewError("create output directory", op, codegen.ErrKindIO, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return codegen.NewError("create temporary output file", op, codegen.ErrKindIO, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return codegen.NewError("write output", op, codegen.ErrKindIO, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return codegen.NewError("chmod output", op, codegen.ErrKindIO, err)
	}
	if err := tmp.Close(); err != nil {
		return codegen.NewError("close output", op, codegen.ErrKindIO, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return codegen.NewError("replace output", op, codegen.ErrKindIO, err)
	}
	return nil
}

// resolvePointers joins relative, non-URL pointers onto dir.
func resolvePointers(dir string, pointers []string) []string {
	if dir == "" {
		return pointers
	}
	resolved := make([]string, len(pointers))
	for i, pointer := range pointers {
		if loader.IsURL(pointer) || filepath.IsAbs(pointer) {
			resolved[i] = pointer
			continue
		}
		resolved[i] = filepath.Join(dir, pointer)
	}
	return resolved
}
