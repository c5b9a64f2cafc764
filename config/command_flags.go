// Copyright 2025, hyperchaotic and the launchedit contributors
// SPDX-License-Identifier: GPL-3.0-only

package config

import "flag"

// parseCommandLineArgs defines and parses global flags, returning the value
// of the "config" flag and whether the user set it explicitly.
//
// Subcommand arguments remain available through flag.Args afterwards.
func parseCommandLineArgs() (string, bool) {
	var configFilePath string

	if flag.Lookup("config") == nil {
		flag.StringVar(&configFilePath, "config", "", "Path to a launchedit configuration file in YAML format.")
	}

	if !flag.Parsed() {
		flag.Parse()
	}

	userSet := false

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			userSet = true
		}
	})

	if !userSet {
		return "", false
	}

	return flag.Lookup("config").Value.String(), true
}
