// Copyright 2025, hyperchaotic and the launchedit contributors
// SPDX-License-Identifier: GPL-3.0-only

package editor

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/natefinch/atomic"
	"github.com/rs/zerolog/log"

	"github.com/hyperchaotic/launchedit/config"
)

const executableBits = 0o755

// Save writes the session back to the file it was loaded from.
func (s *Session) Save() error {
	if s.Path == "" {
		return ErrNoPath
	}

	return s.SaveTo(s.Path)
}

// SaveTo writes the session to path. The write is atomic: the content goes
// to a temporary file that is renamed into place, so a crash never leaves a
// truncated desktop file behind. Application entries are commonly marked
// executable, so the previous mode is OR'ed with rwxr-xr-x afterwards.
func (s *Session) SaveTo(path string) error {
	if config.Global.Editor.Backups {
		if err := writeBackup(path); err != nil {
			log.Warn().
				Err(err).
				Str("path", path).
				Msg("Could not write backup file")
		}
	}

	if err := atomic.WriteFile(path, bytes.NewReader(s.Doc.Bytes())); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	mode := info.Mode().Perm() | executableBits
	if err := os.Chmod(path, mode); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}

	s.Path = path
	s.Modified = false

	return nil
}

// writeBackup copies the current content of path to path.bak. Nothing is
// written when path does not exist yet.
func writeBackup(path string) error {
	data, err := os.ReadFile(path) // #nosec G304 -- path was chosen by the user
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return err
	}

	return atomic.WriteFile(path+".bak", bytes.NewReader(data))
}

// IsPermissionDenied reports whether err is a permission error, so commands
// can show the user a hint about user-writable locations.
func IsPermissionDenied(err error) bool {
	return errors.Is(err, fs.ErrPermission)
}
