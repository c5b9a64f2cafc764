// Copyright 2025, hyperchaotic and the launchedit contributors
// SPDX-License-Identifier: GPL-3.0-only

package desktop

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperchaotic/launchedit/basedir"
)

const minimalEntry = "[Desktop Entry]\nType=Application\nName=App\nExec=app\n"

func writeDesktopFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestGetDesktopFiles(t *testing.T) {
	dataHome := t.TempDir()
	dataDir := t.TempDir()

	t.Setenv("XDG_DATA_HOME", dataHome)
	t.Setenv("XDG_DATA_DIRS", dataDir)
	basedir.Reinit()

	homeApps := filepath.Join(dataHome, "applications")
	systemApps := filepath.Join(dataDir, "applications")

	writeDesktopFile(t, filepath.Join(homeApps, "editor.desktop"), minimalEntry)
	writeDesktopFile(t, filepath.Join(systemApps, "editor.desktop"), minimalEntry)
	writeDesktopFile(t, filepath.Join(systemApps, "office", "writer.desktop"), minimalEntry)
	writeDesktopFile(t, filepath.Join(systemApps, "README.txt"), "not a desktop file")

	files, err := GetDesktopFiles(nil)
	require.NoError(t, err)

	// The user file shadows the system file under the same ID.
	require.Len(t, files["editor.desktop"], 2)
	assert.Equal(t, filepath.Join(homeApps, "editor.desktop"), files["editor.desktop"][0])
	assert.Equal(t, filepath.Join(systemApps, "editor.desktop"), files["editor.desktop"][1])

	// Subdirectory separators become dashes in the desktop ID.
	require.Len(t, files["office-writer.desktop"], 1)
	assert.NotContains(t, files, "README.txt")
}

func TestGetDesktopFilesMissingDir(t *testing.T) {
	t.Parallel()

	files, err := GetDesktopFiles([]string{filepath.Join(t.TempDir(), "does-not-exist")})
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestLoadById(t *testing.T) {
	t.Parallel()

	apps := t.TempDir()
	writeDesktopFile(t, filepath.Join(apps, "editor.desktop"), minimalEntry)
	writeDesktopFile(t, filepath.Join(apps, "office", "writer.desktop"), minimalEntry)
	writeDesktopFile(t, filepath.Join(apps, "broken.desktop"), "Name=no group\n")

	file, err := LoadById("editor.desktop", []string{apps})
	require.NoError(t, err)
	require.NotNil(t, file)
	assert.Equal(t, "App", file.Entry.Name.Default)

	// A dashed ID can refer to a file in a subdirectory.
	file, err = LoadById("office-writer.desktop", []string{apps})
	require.NoError(t, err)
	require.NotNil(t, file)

	// Unparseable candidates are skipped rather than reported.
	file, err = LoadById("broken.desktop", []string{apps})
	require.NoError(t, err)
	assert.Nil(t, file)

	file, err = LoadById("missing.desktop", []string{apps})
	require.NoError(t, err)
	assert.Nil(t, file)
}

func TestGetDirs(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/home-data")
	t.Setenv("XDG_DATA_DIRS", "/tmp/data-one:/tmp/data-two")
	basedir.Reinit()

	assert.Equal(t, []string{
		"/tmp/home-data/applications",
		"/tmp/data-one/applications",
		"/tmp/data-two/applications",
	}, GetDirs())
}
