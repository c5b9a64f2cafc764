// Copyright 2025, hyperchaotic and the launchedit contributors
// SPDX-License-Identifier: GPL-3.0-only

// Package config holds the application configuration, loaded in order of
// increasing precedence: built-in defaults, a YAML configuration file, then
// LAUNCHEDIT_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hyperchaotic/launchedit/basedir"
)

// Global exposes the application configuration.
var Global Config

// configFileName is the suffix looked up under the XDG config directories
// when neither the -config flag nor LAUNCHEDIT_CONFIGFILE is set.
const configFileName = "launchedit/config.yaml"

// Config holds the application configuration.
type Config struct {
	Log struct {
		Level   string   `env:"LAUNCHEDIT_LOG_LEVEL,overwrite" yaml:"logLevel"`
		Outputs []string `env:"LAUNCHEDIT_LOG_OUTPUTS,overwrite" yaml:"logOutputs"`
		Format  string   `env:"LAUNCHEDIT_LOG_FORMAT,overwrite" yaml:"logFormat"`
	} `yaml:"log"`

	Internationalization struct {
		// Locale forces a UI locale (BCP 47); empty means follow the
		// environment (LANGUAGE, LC_ALL, LC_MESSAGES, LANG).
		Locale string `env:"LAUNCHEDIT_LOCALE,overwrite" yaml:"locale"`

		// Strict mode for missing keys.
		//
		// When enabled, missing keys are logged (deduplicated per
		// locale+key) and visibly wrapped using markers.
		StrictMissingKeys bool `env:"LAUNCHEDIT_STRICT_MISSING_KEYS" yaml:"strictMissingKeys"`
	} `yaml:"internationalization"`

	Editor struct {
		// Backups keeps a .bak copy of a desktop file before overwriting it.
		Backups bool `env:"LAUNCHEDIT_BACKUPS" yaml:"backups"`

		// SaveDir is the directory suggested for newly created entries.
		SaveDir string `env:"LAUNCHEDIT_SAVE_DIR,overwrite" yaml:"saveDir"`
	} `yaml:"editor"`

	Icons struct {
		// Themes lists the icon themes scanned for icon lookups, in order.
		Themes []string `env:"LAUNCHEDIT_ICON_THEMES,overwrite" yaml:"themes"`
	} `yaml:"icons"`

	// loadedFrom is the resolved configuration file path, kept for Watch.
	loadedFrom string
}

// LoadConfig loads the configuration from its various sources.
func LoadConfig() error {
	return Global.load()
}

func (cfg *Config) load() error {
	parsedConfigFlagValue, configFlagUserSet := parseCommandLineArgs()

	var configFilePath string

	// Determine the config file path with the correct precedence:
	// 1. Command-line flag (-config)
	// 2. Environment variable (LAUNCHEDIT_CONFIGFILE)
	// 3. XDG config lookup (launchedit/config.yaml)
	switch {
	case configFlagUserSet:
		configFilePath = parsedConfigFlagValue
	case os.Getenv("LAUNCHEDIT_CONFIGFILE") != "":
		configFilePath = os.Getenv("LAUNCHEDIT_CONFIGFILE")
	default:
		found, err := basedir.FindConfigFile(configFileName)
		if err != nil {
			return fmt.Errorf("error locating configuration file: %w", err)
		}

		configFilePath = found
	}

	cfg.loadedFrom = configFilePath

	cfg.SetDefaults()

	if err := cfg.readYAML(configFilePath); err != nil {
		return fmt.Errorf("error loading YAML config: %w", err)
	}

	if err := readEnv(cfg); err != nil {
		return fmt.Errorf("error loading environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	cfg.setupLogging()
	cfg.print()

	return nil
}

// DefaultSaveDir is where newly created desktop entries are suggested to be
// saved: the user-writable applications directory.
func DefaultSaveDir() string {
	return filepath.Join(basedir.DataHome, "applications")
}
