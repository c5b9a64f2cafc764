// Copyright 2025, hyperchaotic and the launchedit contributors
// SPDX-License-Identifier: GPL-3.0-only

package config

// SetDefaults populates the configuration with default values.
func (cfg *Config) SetDefaults() {
	cfg.Log.Level = "warn"
	cfg.Log.Outputs = []string{"/dev/stderr"}
	cfg.Log.Format = "console"

	cfg.Internationalization.Locale = ""
	cfg.Internationalization.StrictMissingKeys = false

	cfg.Editor.Backups = false
	cfg.Editor.SaveDir = DefaultSaveDir()

	cfg.Icons.Themes = []string{"cosmic", "Adwaita", "hicolor"}
}
