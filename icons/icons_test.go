// Copyright 2025, hyperchaotic and the launchedit contributors
// SPDX-License-Identifier: GPL-3.0-only

package icons

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperchaotic/launchedit/basedir"
)

func writeIcon(t *testing.T, path string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("icon"), 0o644))
}

func TestCacheLookup(t *testing.T) {
	dataHome := t.TempDir()
	dataDir := t.TempDir()

	t.Setenv("XDG_DATA_HOME", dataHome)
	t.Setenv("XDG_DATA_DIRS", dataDir)
	basedir.Reinit()

	homeIcon := filepath.Join(dataHome, "icons", "hicolor", "48x48", "apps", "launchedit-test-editor.png")
	writeIcon(t, homeIcon)

	// Same stem under a lower-priority directory must lose.
	writeIcon(t, filepath.Join(dataDir, "icons", "hicolor", "48x48", "apps", "launchedit-test-editor.svg"))

	scalable := filepath.Join(dataDir, "icons", "hicolor", "scalable", "places", "launchedit-test-folder.svg")
	writeIcon(t, scalable)

	// Wrong extension and unknown context are not indexed.
	writeIcon(t, filepath.Join(dataHome, "icons", "hicolor", "48x48", "apps", "notes.txt"))
	writeIcon(t, filepath.Join(dataHome, "icons", "hicolor", "48x48", "animations", "launchedit-test-anim.png"))

	cache := NewCache(context.Background(), []string{"hicolor"})

	path, ok := cache.Lookup("launchedit-test-editor")
	require.True(t, ok)
	assert.Equal(t, homeIcon, path)

	path, ok = cache.Lookup("launchedit-test-editor.png")
	require.True(t, ok)
	assert.Equal(t, homeIcon, path)

	path, ok = cache.Lookup("launchedit-test-folder")
	require.True(t, ok)
	assert.Equal(t, scalable, path)

	_, ok = cache.Lookup("notes")
	assert.False(t, ok)

	_, ok = cache.Lookup("launchedit-test-anim")
	assert.False(t, ok)
}

func TestCacheLookupAbsolutePath(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("XDG_DATA_DIRS", t.TempDir())
	basedir.Reinit()

	iconPath := filepath.Join(t.TempDir(), "custom.png")
	writeIcon(t, iconPath)

	cache := NewCache(context.Background(), []string{"hicolor"})

	path, ok := cache.Lookup(iconPath)
	require.True(t, ok)
	assert.Equal(t, iconPath, path)

	_, ok = cache.Lookup(filepath.Join(t.TempDir(), "missing.png"))
	assert.False(t, ok)
}

func TestCacheLookupPixmaps(t *testing.T) {
	dataHome := t.TempDir()

	t.Setenv("XDG_DATA_HOME", dataHome)
	t.Setenv("XDG_DATA_DIRS", t.TempDir())
	basedir.Reinit()

	pixmap := filepath.Join(dataHome, "icons", "pixmaps", "launchedit-test-legacy.xpm")
	writeIcon(t, pixmap)

	cache := NewCache(context.Background(), []string{"hicolor"})

	path, ok := cache.Lookup("launchedit-test-legacy")
	require.True(t, ok)
	assert.Equal(t, pixmap, path)
}
