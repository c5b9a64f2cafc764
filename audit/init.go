// Copyright 2025, hyperchaotic and the launchedit contributors
// SPDX-License-Identifier: GPL-3.0-only

// Package audit holds logging helpers shared by the commands.
package audit

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetDefaultLogger provides an ok log output format on startup if no config is set.
func SetDefaultLogger() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}
