// Copyright 2025, hyperchaotic and the launchedit contributors
// SPDX-License-Identifier: GPL-3.0-only

package config

import (
	"errors"
	"fmt"

	"golang.org/x/text/language"
)

// validation errors.
var (
	errInvalidLogLevel  = errors.New("invalid Log.Level value")
	errInvalidLogFormat = errors.New("invalid Log.Format value")
	errInvalidLocale    = errors.New("invalid Internationalization.Locale value")
	errNoIconThemes     = errors.New("Icons.Themes cannot be empty")
	errEmptyIconTheme   = errors.New("Icons.Themes cannot contain empty names")
	errEmptySaveDir     = errors.New("Editor.SaveDir cannot be empty")
)

// validate checks the configuration for values that would misbehave at
// runtime rather than fail loudly.
func (cfg *Config) validate() error {
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("%w: %q", errInvalidLogLevel, cfg.Log.Level)
	}

	switch cfg.Log.Format {
	case "console", "json":
		// valid
	default:
		return fmt.Errorf("%w: %q", errInvalidLogFormat, cfg.Log.Format)
	}

	if cfg.Internationalization.Locale != "" {
		if _, err := language.Parse(cfg.Internationalization.Locale); err != nil {
			return fmt.Errorf("%w: %q: %w", errInvalidLocale, cfg.Internationalization.Locale, err)
		}
	}

	if len(cfg.Icons.Themes) == 0 {
		return errNoIconThemes
	}

	for _, theme := range cfg.Icons.Themes {
		if theme == "" {
			return errEmptyIconTheme
		}
	}

	if cfg.Editor.SaveDir == "" {
		return errEmptySaveDir
	}

	return nil
}
