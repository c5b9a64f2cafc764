// Copyright 2025, hyperchaotic and the launchedit contributors
// SPDX-License-Identifier: GPL-3.0-only

package desktop

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/hyperchaotic/launchedit/basedir"
)

// File couples a parsed desktop document with its typed entry view and the
// path it was loaded from.
type File struct {
	Path  string
	Doc   *Document
	Entry *Entry
}

// LoadFile parses and decodes the desktop file at path.
func LoadFile(path string) (*File, error) {
	doc, err := ParseFile(path)
	if err != nil {
		return nil, err
	}

	entry, err := Decode(doc)
	if err != nil {
		return nil, fmt.Errorf("LoadFile, failed to decode desktop file %s: %w", path, err)
	}

	return &File{Path: path, Doc: doc, Entry: entry}, nil
}

// GetDirs returns all directories that may contain desktop files, in
// precedence order per the [Desktop Menu Specification]: user directories
// first, then the system data dirs.
//
// [Desktop Menu Specification]: https://specifications.freedesktop.org/menu-spec/latest/paths.html
func GetDirs() []string {
	result := make([]string, 0, len(basedir.DataDirs)+1)
	result = append(result, filepath.Join(basedir.DataHome, "applications"))

	for _, dir := range basedir.DataDirs {
		result = append(result, filepath.Join(dir, "applications"))
	}

	return result
}

// IdPathMap maps a [Desktop ID], such as libreoffice-writer.desktop, to the
// paths providing it, in order of highest to lowest precedence.
//
// [Desktop ID]: https://specifications.freedesktop.org/desktop-entry-spec/1.5/file-naming.html#desktop-file-id
type IdPathMap map[string][]string

// GetDesktopFiles returns a map of all desktop IDs and their respective
// desktop file paths found in the given locations. If locations is nil,
// [GetDirs] is used.
func GetDesktopFiles(locations []string) (IdPathMap, error) {
	if locations == nil {
		locations = GetDirs()
	}

	result := make(IdPathMap)

	for _, dir := range locations {
		err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}

			if entry.IsDir() {
				return nil
			}

			switch filepath.Ext(path) {
			case ".desktop", ".directory":
			default:
				return nil
			}

			desktopId := strings.ReplaceAll(
				strings.TrimPrefix(path, dir)[1:],
				string(filepath.Separator),
				"-",
			)
			result[desktopId] = append(result[desktopId], path)

			return nil
		})

		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return result, fmt.Errorf(
				"GetDesktopFiles, failed to walk dir %s for desktop files: %w",
				dir,
				err,
			)
		}
	}

	return result, nil
}

// LoadById finds the first valid desktop file with the given ID, parses it,
// and returns the result. If locations is nil, [GetDirs] is used. If no
// valid desktop file could be found, both the file and the error are nil.
// Example of desktopId: vim.desktop.
func LoadById(desktopId string, locations []string) (*File, error) {
	if locations == nil {
		locations = GetDirs()
	}

	for _, dir := range locations {
		attempts := []string{
			filepath.Join(dir, desktopId),
			// IDs with hyphens such as foo-bar.desktop can mean foo/bar.desktop.
			filepath.Join(dir, strings.Replace(desktopId, "-", string(filepath.Separator), 1)),
		}

		for _, path := range attempts {
			_, err := os.Stat(path)
			switch {
			case errors.Is(err, os.ErrNotExist):
				continue
			case err != nil:
				log.Warn().Err(err).Str("path", path).Msg("Failed to stat desktop file")

				continue
			}

			file, err := LoadFile(path)
			if err != nil {
				log.Warn().Err(err).Str("id", desktopId).Msg("Failed to load desktop file, skipping")

				continue
			}

			return file, nil
		}
	}

	return nil, nil
}
