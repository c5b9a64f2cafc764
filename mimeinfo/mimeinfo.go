// Copyright 2025, hyperchaotic and the launchedit contributors
// SPDX-License-Identifier: GPL-3.0-only

// Package mimeinfo loads MIME type descriptions from the shared-mime-info
// package files, so MIME types attached to a desktop entry can be shown with
// a human readable description in the user's language.
package mimeinfo

import (
	"bufio"
	"context"
	"encoding/xml"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"

	"github.com/hyperchaotic/launchedit/audit"
)

// mimeInfo mirrors the <mime-info> document from shared-mime-info package
// files such as /usr/share/mime/packages/freedesktop.org.xml.
type mimeInfo struct {
	XMLName xml.Name   `xml:"mime-info"`
	Types   []mimeType `xml:"mime-type"`
}

type mimeType struct {
	Type     string    `xml:"type,attr"`
	Comments []comment `xml:"comment"`
}

type comment struct {
	Lang string `xml:"lang,attr"`
	Text string `xml:",chardata"`
}

// Item is one known MIME type together with its localized description.
type Item struct {
	Type        string
	Description string
}

// Cache maps MIME type names, canonical and aliased, to descriptions.
type Cache struct {
	descriptions map[string]string
}

// NewCache parses the shared-mime-info package files and returns the
// populated cache. Descriptions are chosen by matching the xml:lang comment
// variants against prefs; comments without a language serve as the fallback.
func NewCache(ctx context.Context, prefs []language.Tag) *Cache {
	return newCacheFromDirs(ctx, candidateMimeDirs(), aliasPaths(), prefs)
}

func newCacheFromDirs(ctx context.Context, dirs, aliasFiles []string, prefs []language.Tag) *Cache {
	cache := &Cache{descriptions: make(map[string]string)}

	span := audit.Span{Op: "mime.scan"}
	_ = span.Begin(ctx)

	aliases := loadAliases(aliasFiles)

	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() || filepath.Ext(entry.Name()) != ".xml" {
				continue
			}

			path := filepath.Join(dir, entry.Name())

			data, err := os.ReadFile(path) // #nosec G304 -- paths come from the fixed candidate list
			if err != nil {
				log.Warn().
					Err(err).
					Str("path", path).
					Msg("Could not read mime package file")

				continue
			}

			var info mimeInfo
			if err := xml.Unmarshal(data, &info); err != nil {
				log.Warn().
					Err(err).
					Str("path", path).
					Msg("Could not parse mime package file")

				continue
			}

			log.Debug().
				Str("sys", "mime").
				Str("path", path).
				Msg("Loading mime descriptions")

			for _, mime := range info.Types {
				if mime.Type == "" {
					continue
				}

				description := pickComment(mime.Comments, prefs)
				if description == "" {
					continue
				}

				if _, ok := cache.descriptions[mime.Type]; !ok {
					cache.descriptions[mime.Type] = description
				}

				// Descriptions are stored under the alias too, so
				// lookups succeed whichever name an entry uses.
				if alias, ok := aliases[mime.Type]; ok {
					if _, exists := cache.descriptions[alias]; !exists {
						cache.descriptions[alias] = description
					}
				}
			}
		}
	}

	span.Count = len(cache.descriptions)
	span.End()
	span.Log()

	return cache
}

// Lookup returns the description for a MIME type name.
func (cache *Cache) Lookup(name string) (string, bool) {
	description, ok := cache.descriptions[name]

	return description, ok
}

// Items returns all known MIME types with descriptions, sorted by name.
func (cache *Cache) Items() []Item {
	items := make([]Item, 0, len(cache.descriptions))
	for name, description := range cache.descriptions {
		items = append(items, Item{Type: name, Description: description})
	}

	slices.SortFunc(items, func(a, b Item) int {
		return strings.Compare(strings.ToLower(a.Type), strings.ToLower(b.Type))
	})

	return items
}

// pickComment chooses the best <comment> variant for the preferred
// languages. The unlocalized comment participates as the matcher fallback,
// so it wins whenever no translation matches.
func pickComment(comments []comment, prefs []language.Tag) string {
	unlocalized := ""

	supported := []language.Tag{language.Und}
	texts := []string{""}

	for _, c := range comments {
		text := strings.TrimSpace(c.Text)
		if text == "" {
			continue
		}

		if c.Lang == "" {
			unlocalized = text
			texts[0] = text

			continue
		}

		// shared-mime-info uses POSIX-style lang_COUNTRY codes.
		tag, err := language.Parse(strings.ReplaceAll(c.Lang, "_", "-"))
		if err != nil {
			continue
		}

		supported = append(supported, tag)
		texts = append(texts, text)
	}

	if len(supported) == 1 || len(prefs) == 0 {
		return unlocalized
	}

	matcher := language.NewMatcher(supported)

	_, index, confidence := matcher.Match(prefs...)
	if confidence == language.No {
		return unlocalized
	}

	return texts[index]
}

// candidateMimeDirs lists the directories scanned for mime package files.
// Inside a Flatpak sandbox the host directories take priority.
func candidateMimeDirs() []string {
	if _, inFlatpak := os.LookupEnv("FLATPAK_ID"); inFlatpak {
		return []string{
			"/run/host/usr/share/mime/packages",
			"/run/host/share/mime/packages",
			"/usr/share/mime/packages", // fallback to runtime's view
		}
	}

	return []string{
		"/usr/share/mime/packages",
		"/usr/local/share/mime/packages",
	}
}

// aliasPaths lists the shared-mime-info aliases tables to read.
func aliasPaths() []string {
	paths := []string{
		"/usr/share/mime/aliases",
		"/usr/local/share/mime/aliases",
	}

	if _, inFlatpak := os.LookupEnv("FLATPAK_ID"); inFlatpak {
		if runtime := os.Getenv("FLATPAK_RUNTIME_DIR"); runtime != "" {
			paths = append(paths, filepath.Join(runtime, "mime/aliases"))
		}

		paths = append(paths, "/app/share/mime/aliases", "/usr/share/mime/aliases")
	}

	return paths
}

// loadAliases reads aliases tables. Each line holds an alias followed by the
// canonical type; the returned map goes from canonical type to alias.
func loadAliases(paths []string) map[string]string {
	aliases := make(map[string]string)

	for _, path := range paths {
		file, err := os.Open(path) // #nosec G304 -- paths come from the fixed candidate list
		if err != nil {
			continue
		}

		log.Debug().
			Str("sys", "mime").
			Str("path", path).
			Msg("Reading mime aliases")

		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}

			fields := strings.Fields(line)
			if len(fields) < 2 {
				continue
			}

			aliases[fields[1]] = fields[0]
		}

		file.Close()
	}

	return aliases
}
