// Copyright 2025, hyperchaotic and the launchedit contributors
// SPDX-License-Identifier: GPL-3.0-only

package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// Watch re-reads the configuration file whenever it changes on disk and
// calls onReload after a successful reload. It blocks until ctx is done.
//
// Watch is a no-op when the configuration was loaded purely from defaults
// and environment variables.
func (cfg *Config) Watch(ctx context.Context, onReload func()) error {
	if cfg.loadedFrom == "" {
		<-ctx.Done()

		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create config watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory rather than the file itself so atomic
	// rename-into-place saves by editors keep being seen.
	if err := watcher.Add(filepath.Dir(cfg.loadedFrom)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", cfg.loadedFrom, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Name != cfg.loadedFrom {
				continue
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			if err := cfg.reload(); err != nil {
				log.Warn().
					Err(err).
					Str("path", cfg.loadedFrom).
					Msg("Ignoring invalid configuration change")

				continue
			}

			log.Info().
				Str("path", cfg.loadedFrom).
				Msg("Configuration reloaded")

			if onReload != nil {
				onReload()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			log.Warn().
				Err(err).
				Msg("Config watcher error")
		}
	}
}

// reload re-runs the full load pipeline against the original file path,
// swapping in the result only when it validates.
func (cfg *Config) reload() error {
	next := Config{loadedFrom: cfg.loadedFrom}
	next.SetDefaults()

	if err := next.readYAML(cfg.loadedFrom); err != nil {
		return err
	}

	if err := readEnv(&next); err != nil {
		return err
	}

	if err := next.validate(); err != nil {
		return err
	}

	*cfg = next
	cfg.setupLogging()

	return nil
}
