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

package generator

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/zirkelc/gqlcodegen/codegen"
	"github.com/zirkelc/gqlcodegen/codegen/config"
	"github.com/zirkelc/gqlcodegen/codegen/loader"
)

// watchDebounce batches the burst of events editors produce on save into one regeneration.
const watchDebounce = 250 * time.Millisecond

// Watch regenerates whenever the configuration, a schema file, or a document file changes. The
// first run happens immediately. Failed runs are logged and watching continues; the function
// returns when ctx is cancelled or the watcher breaks.
func Watch(ctx context.Context, configPath string, opts Options) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return codegen.NewError("start file watcher", codegen.Op("generator.Watch"), codegen.ErrKindIO, err)
	}
	defer watcher.Close()

	log := opts.Logger
	outputs := make(map[string]bool)

	run := func() {
		cfg, err := config.Load(configPath)
		if err != nil {
			log.Error().Err(err).Msg("configuration is broken, waiting for the next change")
			return
		}

		started := time.Now()
		if err := Generate(ctx, cfg, opts); err != nil {
			log.Error().Err(err).Msg("generation failed, waiting for the next change")
		} else {
			log.Info().Dur("elapsed", time.Since(started)).Msg("generation complete")
		}

		// Re-sync even after a failed generation: the fix may land in a directory that did not
		// exist before.
		for path := range outputs {
			delete(outputs, path)
		}
		for _, path := range cfg.OutputPaths() {
			outputs[filepath.Join(opts.Dir, path)] = true
		}
		syncWatches(watcher, configPath, opts.Dir, cfg, log)
	}

	run()

	debounce := time.NewTimer(watchDebounce)
	if !debounce.Stop() {
		<-debounce.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return codegen.NewError("file watcher closed", codegen.Op("generator.Watch"), codegen.ErrKindIO)
			}
			if ignoreEvent(event, outputs) {
				continue
			}
			log.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("change detected")
			debounce.Reset(watchDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return codegen.NewError("file watcher closed", codegen.Op("generator.Watch"), codegen.ErrKindIO)
			}
			log.Error().Err(err).Msg("file watcher error")

		case <-debounce.C:
			run()
		}
	}
}

// ignoreEvent filters events that must not trigger a run: chmods, writes to our own outputs, and
// the temporary files those writes go through.
func ignoreEvent(event fsnotify.Event, outputs map[string]bool) bool {
	if event.Op == fsnotify.Chmod {
		return true
	}
	if outputs[event.Name] {
		return true
	}
	return strings.HasPrefix(filepath.Base(event.Name), ".")
}

// syncWatches points the watcher at the configuration file's directory and at every directory a
// schema or document glob can match in. fsnotify does not watch recursively, so directories under
// a "**" glob are walked and added one by one. Adding a directory twice is harmless.
func syncWatches(watcher *fsnotify.Watcher, configPath, dir string, cfg *config.Config, log zerolog.Logger) {
	add := func(path string) {
		if err := watcher.Add(path); err != nil {
			log.Debug().Err(err).Str("path", path).Msg("cannot watch")
		}
	}

	add(filepath.Dir(configPath))

	var pointers []string
	pointers = append(pointers, cfg.Schema...)
	pointers = append(pointers, cfg.Documents...)
	for _, pointer := range resolvePointers(dir, pointers) {
		if loader.IsURL(pointer) {
			continue
		}
		root := staticPrefix(pointer)
		add(root)
		if !strings.Contains(pointer, "**") {
			continue
		}
		filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				add(path)
			}
			return nil
		})
	}
}

// staticPrefix is the directory part of a glob before its first wildcard.
func staticPrefix(pattern string) string {
	slashed := filepath.ToSlash(pattern)
	if idx := strings.IndexAny(slashed, "*?["); idx >= 0 {
		if slash := strings.LastIndexByte(slashed[:idx], '/'); slash >= 0 {
			return filepath.FromSlash(slashed[:slash])
		}
		return "."
	}
	return filepath.Dir(pattern)
}
