// Copyright 2025, hyperchaotic and the launchedit contributors
// SPDX-License-Identifier: GPL-3.0-only

// Package basedir resolves the directories defined by the
// [XDG Base Directory Specification].
//
// [XDG Base Directory Specification]: https://specifications.freedesktop.org/basedir-spec/0.8/
package basedir

import (
	"os"
	"path/filepath"
	"strings"
)

var (
	// ConfigHome is the single base directory relative to which user-specific
	// configuration files should be written ($XDG_CONFIG_HOME).
	ConfigHome string

	// ConfigDirs is a set of preference ordered base directories relative to
	// which configuration files should be searched ($XDG_CONFIG_DIRS).
	ConfigDirs []string

	// DataHome is the single base directory relative to which user-specific
	// data files should be written ($XDG_DATA_HOME).
	DataHome string

	// DataDirs is a set of preference ordered base directories relative to
	// which data files should be searched ($XDG_DATA_DIRS).
	DataDirs []string

	// StateHome is the single base directory relative to which user-specific
	// state data should be written ($XDG_STATE_HOME).
	StateHome string

	// Home is the equivalent of $HOME. It is always non-empty.
	Home string
)

//nolint:gochecknoinits // base directories must be usable before any explicit setup
func init() {
	Reinit()
}

// Reinit reinitializes the base directory values from the environment.
// Use this after changing XDG environment variables, for example in tests.
func Reinit() {
	home := os.Getenv("HOME")
	if home == "" {
		// $HOME must always be set in a POSIX environment.
		panic("$HOME environment variable not set")
	}

	Home = home
	ConfigHome = singleVar("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	ConfigDirs = listVar("XDG_CONFIG_DIRS", []string{"/etc/xdg"})
	DataHome = singleVar("XDG_DATA_HOME", filepath.Join(home, ".local/share"))
	DataDirs = listVar("XDG_DATA_DIRS", []string{"/usr/local/share", "/usr/share"})
	StateHome = singleVar("XDG_STATE_HOME", filepath.Join(home, ".local/state"))
}

// singleVar returns the value of envName if it is set to an absolute path,
// defaultValue otherwise. Relative paths are invalid per the specification.
func singleVar(envName string, defaultValue string) string {
	envValue := os.Getenv(envName)
	if envValue == "" || !filepath.IsAbs(envValue) {
		return defaultValue
	}

	return envValue
}

func listVar(envName string, defaultValue []string) []string {
	envValue := os.Getenv(envName)
	if envValue == "" {
		return defaultValue
	}

	result := make([]string, 0)

	for _, path := range strings.Split(envValue, ":") {
		if path == "" || !filepath.IsAbs(path) {
			continue
		}

		result = append(result, path)
	}

	if len(result) == 0 {
		return defaultValue
	}

	return result
}
