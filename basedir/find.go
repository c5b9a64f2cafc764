// Copyright 2025, hyperchaotic and the launchedit contributors
// SPDX-License-Identifier: GPL-3.0-only

package basedir

import (
	"fmt"
	"os"
	"path/filepath"
)

// FindConfigFile finds the given suffix in order of priority. First,
// XDG_CONFIG_HOME is checked, then each dir in XDG_CONFIG_DIRS.
// An empty string with a nil error means the file does not exist anywhere.
func FindConfigFile(suffix string) (string, error) {
	return findFile(suffix, ConfigHome, ConfigDirs)
}

// FindDataFile finds the given suffix in order of priority. First,
// XDG_DATA_HOME is checked, then each dir in XDG_DATA_DIRS.
func FindDataFile(suffix string) (string, error) {
	return findFile(suffix, DataHome, DataDirs)
}

func findFile(suffix string, primary string, secondary []string) (string, error) {
	for _, dir := range append([]string{primary}, secondary...) {
		path := filepath.Join(dir, suffix)

		_, err := os.Stat(path)
		switch {
		case err == nil:
			return path, nil
		case os.IsNotExist(err):
		default:
			return "", fmt.Errorf("failed to stat %s: %w", path, err)
		}
	}

	return "", nil
}
