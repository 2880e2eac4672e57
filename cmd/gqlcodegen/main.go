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

// Command gqlcodegen generates typed Go bindings from a GraphQL schema and a set of operation
// documents, driven by a gqlcodegen.yml configuration file.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/zirkelc/gqlcodegen/codegen/config"
	"github.com/zirkelc/gqlcodegen/codegen/generator"
	"github.com/zirkelc/gqlcodegen/internal/util"
)

// Populated at build time through -ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		configPath string
		watch      bool
		dryRun     bool
		verbose    bool
		quiet      bool
	)

	root := &cobra.Command{
		Use:           "gqlcodegen",
		Short:         "Generate typed Go bindings from a GraphQL schema and operations",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(verbose, quiet)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			opts := generator.Options{
				Dir:    filepath.Dir(configPath),
				DryRun: dryRun,
				Logger: log,
			}

			if watch {
				err := generator.Watch(ctx, configPath, opts)
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return report(log, err)
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return report(log, err)
			}
			return report(log, generator.Generate(ctx, cfg, opts))
		},
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultFilename,
		"path to the configuration file")
	root.Flags().BoolVarP(&watch, "watch", "w", false,
		"regenerate whenever the schema or a document changes")
	root.Flags().BoolVar(&dryRun, "dry-run", false,
		"generate and format everything but write nothing")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log per-stage details")
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "log errors only")

	root.AddCommand(newInitCommand(&configPath, &verbose, &quiet))
	root.AddCommand(newVersionCommand())
	return root
}

// report logs err once at the top level; cobra is configured to stay silent so errors are not
// printed twice.
func report(log zerolog.Logger, err error) error {
	if err != nil {
		log.Error().Msg(err.Error())
	}
	return err
}

func newLogger(verbose, quiet bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	if quiet {
		level = zerolog.ErrorLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

// initialConfig is the scaffold written by "gqlcodegen init".
var initialConfig = util.Dedent(`
  # gqlcodegen configuration. Run "gqlcodegen" to regenerate.
  schema: schema.graphql
  documents:
    - "queries/**/*.graphql"
  generates:
    generated/sdk.go:
      plugins:
        - schematypes
        - operations
        - gosdk
      config:
        package: sdk
`)

func newInitCommand(configPath *string, verbose, quiet *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(*verbose, *quiet)

			if _, err := os.Stat(*configPath); err == nil {
				return report(log, fmt.Errorf("%s already exists, not overwriting", *configPath))
			}
			if err := os.WriteFile(*configPath, []byte(initialConfig), 0o644); err != nil {
				return report(log, err)
			}
			log.Info().Str("path", *configPath).Msg("wrote starter configuration")
			return nil
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the gqlcodegen version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gqlcodegen %s (%s)\n", version, commit)
		},
	}
}
