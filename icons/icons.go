// Copyright 2025, hyperchaotic and the launchedit contributors
// SPDX-License-Identifier: GPL-3.0-only

// Package icons resolves icon names from desktop entries to files on disk.
//
// The cache indexes the configured themes under the XDG icon directories,
// plus the pixmaps directories, and answers lookups by full file name or by
// name without extension.
package icons

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/hyperchaotic/launchedit/audit"
	"github.com/hyperchaotic/launchedit/basedir"
)

// Sizes are scanned in order of preference, so a scalable icon wins over a
// raster one of the same name.
var sizes = []string{
	"scalable", "512x512", "256x256", "128x128", "64x64", "48x48", "32x32", "24x24", "16x16",
}

var contexts = []string{"apps", "places", "mimetypes", "actions"}

var iconExtensions = []string{".png", ".svg", ".xpm", ".ico", ".jpg", ".jpeg"}

// Cache maps icon names to file paths.
type Cache struct {
	byStem     map[string]string
	byFullName map[string]string
}

// NewCache scans the icon directories for the given themes and returns the
// populated cache. Directories are scanned concurrently; priority between
// them follows the search order regardless of which scan finishes first.
func NewCache(ctx context.Context, themes []string) *Cache {
	cache := &Cache{
		byStem:     make(map[string]string),
		byFullName: make(map[string]string),
	}

	span := audit.Span{Op: "icons.scan"}
	ctx = span.Begin(ctx)

	dirs := searchDirs(themes)
	partials := make([]*Cache, len(dirs))

	group, ctx := errgroup.WithContext(ctx)

	for i, dir := range dirs {
		i, dir := i, dir

		group.Go(func() error {
			partial := &Cache{
				byStem:     make(map[string]string),
				byFullName: make(map[string]string),
			}
			partial.scanDir(ctx, dir)
			partials[i] = partial

			return nil
		})
	}

	// Scans never return errors; unreadable directories are skipped.
	_ = group.Wait()

	for _, partial := range partials {
		for name, path := range partial.byFullName {
			if _, ok := cache.byFullName[name]; !ok {
				cache.byFullName[name] = path
			}
		}

		for stem, path := range partial.byStem {
			if _, ok := cache.byStem[stem]; !ok {
				cache.byStem[stem] = path
			}
		}
	}

	span.Count = len(cache.byFullName)
	span.End()
	span.Log()

	log.Debug().
		Str("sys", "icons").
		Int("base_names", len(cache.byStem)).
		Int("full_names", len(cache.byFullName)).
		Msg("Icon cache loaded")

	return cache
}

// Lookup resolves an icon name to a file path. Icon values in desktop
// entries may be a bare name, a name with extension, or an absolute path.
func (cache *Cache) Lookup(name string) (string, bool) {
	if filepath.IsAbs(name) {
		if _, err := os.Stat(name); err == nil {
			return name, true
		}

		return "", false
	}

	if path, ok := cache.byFullName[name]; ok {
		return path, true
	}

	if path, ok := cache.byStem[name]; ok {
		return path, true
	}

	return "", false
}

// Names returns all known icon names without extension, sorted.
func (cache *Cache) Names() []string {
	names := make([]string, 0, len(cache.byStem))
	for stem := range cache.byStem {
		names = append(names, stem)
	}

	slices.Sort(names)

	return names
}

// searchDirs builds the ordered list of directories to scan: every
// theme/size/context combination under each XDG icon directory, the
// per-base pixmaps directory, and the shared pixmaps directories.
func searchDirs(themes []string) []string {
	baseDirs := make([]string, 0, len(basedir.DataDirs)+3)
	baseDirs = append(baseDirs, filepath.Join(basedir.DataHome, "icons"))

	for _, dataDir := range basedir.DataDirs {
		baseDirs = append(baseDirs, filepath.Join(dataDir, "icons"))
	}

	// Flatpak host dirs (if inside sandbox)
	if _, inFlatpak := os.LookupEnv("FLATPAK_ID"); inFlatpak {
		baseDirs = append(baseDirs, "/run/host/usr/share/icons", "/run/host/share/icons")
	}

	var dirs []string

	for _, base := range baseDirs {
		for _, theme := range themes {
			for _, size := range sizes {
				for _, context := range contexts {
					dirs = append(dirs, filepath.Join(base, theme, size, context))
				}
			}
		}

		dirs = append(dirs, filepath.Join(base, "pixmaps"))
	}

	dirs = append(dirs, "/usr/share/pixmaps")

	return dirs
}

// scanDir walks root recursively, indexing every file with an icon
// extension. Unreadable directories are skipped silently.
func (cache *Cache) scanDir(ctx context.Context, root string) {
	_ = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return fs.SkipDir
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}

		if entry.IsDir() {
			return nil
		}

		name := entry.Name()

		ext := strings.ToLower(filepath.Ext(name))
		if !slices.Contains(iconExtensions, ext) {
			return nil
		}

		stem := strings.TrimSuffix(name, filepath.Ext(name))

		if _, ok := cache.byFullName[name]; !ok {
			cache.byFullName[name] = path
		}

		if _, ok := cache.byStem[stem]; !ok {
			cache.byStem[stem] = path
		}

		return nil
	})
}
