// Copyright 2025, hyperchaotic and the launchedit contributors
// SPDX-License-Identifier: GPL-3.0-only

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetDefaults(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	cfg.SetDefaults()

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, []string{"cosmic", "Adwaita", "hicolor"}, cfg.Icons.Themes)
	assert.NotEmpty(t, cfg.Editor.SaveDir)
	assert.False(t, cfg.Internationalization.StrictMissingKeys)

	require.NoError(t, cfg.validate())
}

func TestReadYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `log:
  logLevel: debug
internationalization:
  locale: da
  strictMissingKeys: true
editor:
  backups: true
icons:
  themes:
    - hicolor
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg := &Config{}
	cfg.SetDefaults()
	require.NoError(t, cfg.readYAML(path))

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "da", cfg.Internationalization.Locale)
	assert.True(t, cfg.Internationalization.StrictMissingKeys)
	assert.True(t, cfg.Editor.Backups)
	assert.Equal(t, []string{"hicolor"}, cfg.Icons.Themes)
	// Untouched sections keep their defaults.
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestReadYAMLMissingFile(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	cfg.SetDefaults()

	require.NoError(t, cfg.readYAML(filepath.Join(t.TempDir(), "nonexistent.yaml")))
	require.NoError(t, cfg.readYAML(""))
}

func TestReadEnv(t *testing.T) {
	t.Setenv("LAUNCHEDIT_LOG_LEVEL", "error")
	t.Setenv("LAUNCHEDIT_LOCALE", "fr-BE")
	t.Setenv("LAUNCHEDIT_STRICT_MISSING_KEYS", "true")
	t.Setenv("LAUNCHEDIT_ICON_THEMES", "Papirus, hicolor")

	cfg := &Config{}
	cfg.SetDefaults()
	require.NoError(t, readEnv(cfg))

	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, "fr-BE", cfg.Internationalization.Locale)
	assert.True(t, cfg.Internationalization.StrictMissingKeys)
	assert.Equal(t, []string{"Papirus", "hicolor"}, cfg.Icons.Themes)

	require.NoError(t, cfg.validate())
}

func TestReadEnvInvalidBool(t *testing.T) {
	t.Setenv("LAUNCHEDIT_STRICT_MISSING_KEYS", "not-a-bool")

	cfg := &Config{}
	cfg.SetDefaults()

	require.Error(t, readEnv(cfg))
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr error
	}{
		{
			name:   "defaults are valid",
			mutate: func(cfg *Config) {},
		},
		{
			name:    "invalid log level",
			mutate:  func(cfg *Config) { cfg.Log.Level = "verbose" },
			wantErr: errInvalidLogLevel,
		},
		{
			name:    "invalid log format",
			mutate:  func(cfg *Config) { cfg.Log.Format = "xml" },
			wantErr: errInvalidLogFormat,
		},
		{
			name:    "invalid locale",
			mutate:  func(cfg *Config) { cfg.Internationalization.Locale = "no_such locale!" },
			wantErr: errInvalidLocale,
		},
		{
			name:   "valid locale",
			mutate: func(cfg *Config) { cfg.Internationalization.Locale = "de-AT" },
		},
		{
			name:    "no icon themes",
			mutate:  func(cfg *Config) { cfg.Icons.Themes = nil },
			wantErr: errNoIconThemes,
		},
		{
			name:    "empty icon theme name",
			mutate:  func(cfg *Config) { cfg.Icons.Themes = []string{"hicolor", ""} },
			wantErr: errEmptyIconTheme,
		},
		{
			name:    "empty save dir",
			mutate:  func(cfg *Config) { cfg.Editor.SaveDir = "" },
			wantErr: errEmptySaveDir,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := &Config{}
			cfg.SetDefaults()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestWatchReloadsOnChange(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  logLevel: warn\n"), 0o644))

	cfg := Config{loadedFrom: path}
	cfg.SetDefaults()
	require.NoError(t, cfg.readYAML(path))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan struct{}, 1)
	done := make(chan error, 1)

	go func() {
		done <- cfg.Watch(ctx, func() { reloaded <- struct{}{} })
	}()

	// Let the watcher install before touching the file.
	time.Sleep(100 * time.Millisecond)

	// An invalid change is ignored without killing the watcher.
	require.NoError(t, os.WriteFile(path, []byte("log:\n  logLevel: nonsense\n"), 0o644))
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("log:\n  logLevel: error\n"), 0o644))

	select {
	case <-reloaded:
	case <-time.After(5 * time.Second):
		t.Fatal("reload callback was not invoked")
	}

	assert.Equal(t, "error", cfg.Log.Level)

	cancel()
	require.NoError(t, <-done)
}

func TestWatchWithoutConfigFile(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var cfg Config

	require.NoError(t, cfg.Watch(ctx, nil))
}
