// Copyright 2025, hyperchaotic and the launchedit contributors
// SPDX-License-Identifier: GPL-3.0-only

// Package editor holds an editing session for a single desktop file: the
// parsed document, its typed view, and the mutations the commands apply.
package editor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/hyperchaotic/launchedit/desktop"
	"github.com/hyperchaotic/launchedit/i18n"
)

var (
	// ErrMissingArgument is returned when no file path was supplied.
	ErrMissingArgument = errors.New("missing file path argument")

	// ErrFileNotFound is returned when the desktop file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrNoPath is returned by Save when the session has no file path yet.
	ErrNoPath = errors.New("session has no file path")
)

// Session is one desktop file being edited.
type Session struct {
	// Path is the file the session was loaded from, or empty for a new
	// entry that has not been saved yet.
	Path string

	// Doc is the underlying document. Mutations go through the Session so
	// the typed view stays in sync.
	Doc *desktop.Document

	// Entry is the typed view of Doc, refreshed after every mutation.
	Entry *desktop.Entry

	// Modified reports whether the session has unsaved changes.
	Modified bool
}

// Open loads the desktop file at path into a new session.
func Open(path string) (*Session, error) {
	if path == "" {
		return nil, ErrMissingArgument
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}

		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	doc, err := desktop.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	entry, err := desktop.Decode(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return &Session{Path: path, Doc: doc, Entry: entry}, nil
}

// New creates a session for a fresh desktop entry of the given type. The
// url argument is required for Link entries and ignored otherwise.
func New(entryType, name, url string) (*Session, error) {
	doc := desktop.NewDocument(entryType, name)

	if entryType == desktop.TypeLink {
		doc.DesktopEntry().SetString("URL", url)
	}

	entry, err := desktop.Decode(doc)
	if err != nil {
		return nil, err
	}

	return &Session{Doc: doc, Entry: entry, Modified: true}, nil
}

// refresh re-derives the typed view after a mutation. The document keeps the
// mutation even when it no longer decodes; the error tells the caller why.
func (s *Session) refresh() error {
	entry, err := desktop.Decode(s.Doc)
	if err != nil {
		return err
	}

	s.Entry = entry

	return nil
}

// SetString sets a string key on the main group.
func (s *Session) SetString(key, value string) error {
	s.Doc.DesktopEntry().SetString(key, value)
	s.Modified = true

	return s.refresh()
}

// SetLocalizedString sets the locale variant of a key on the main group.
func (s *Session) SetLocalizedString(key, locale, value string) error {
	s.Doc.DesktopEntry().SetLocalizedString(key, locale, value)
	s.Modified = true

	return s.refresh()
}

// SetBool sets a boolean key on the main group.
func (s *Session) SetBool(key string, value bool) error {
	s.Doc.DesktopEntry().SetBool(key, value)
	s.Modified = true

	return s.refresh()
}

// SetList sets a list key on the main group. An empty list removes the key.
func (s *Session) SetList(key string, items []string) error {
	s.Doc.DesktopEntry().SetList(key, items)
	s.Modified = true

	return s.refresh()
}

// Unset removes a key and all its locale variants from the main group.
func (s *Session) Unset(key string) error {
	group := s.Doc.DesktopEntry()

	removed := group.Unset(key)
	if group.UnsetLocalized(key) {
		removed = true
	}

	if !removed {
		return nil
	}

	s.Modified = true

	return s.refresh()
}

// AddMimeType prepends a MIME type to the entry's MimeType list, dropping
// duplicates and empty elements.
func (s *Session) AddMimeType(mimeType string) error {
	if mimeType == "" {
		return nil
	}

	mimes := []string{mimeType}

	for _, existing := range s.Entry.MimeType {
		if existing == "" || existing == mimeType {
			continue
		}

		mimes = append(mimes, existing)
	}

	return s.SetList("MimeType", mimes)
}

// RemoveMimeType removes a MIME type from the entry's MimeType list.
func (s *Session) RemoveMimeType(mimeType string) error {
	if !slices.Contains(s.Entry.MimeType, mimeType) {
		return nil
	}

	mimes := slices.DeleteFunc(slices.Clone(s.Entry.MimeType), func(m string) bool {
		return m == mimeType
	})

	return s.SetList("MimeType", mimes)
}

// Validate runs the specification checks against the current document.
func (s *Session) Validate() []desktop.Problem {
	return desktop.Validate(s.Doc)
}

// SuggestFileName builds a file name for saving a new entry: the entry name
// lowercased with spaces turned into dashes, or a localized placeholder when
// the entry has no name yet. Directory entries get the .directory extension.
func (s *Session) SuggestFileName(ctx context.Context) string {
	base := s.Entry.Name.Default
	if base == "" {
		switch s.Entry.Type {
		case desktop.TypeLink:
			base = i18n.Tr(ctx, "filename-link")
		case desktop.TypeDirectory:
			base = i18n.Tr(ctx, "filename-directory")
		default:
			base = i18n.Tr(ctx, "filename-application")
		}
	}

	base = strings.ReplaceAll(strings.ToLower(base), " ", "-")

	ext := ".desktop"
	if s.Entry.Type == desktop.TypeDirectory {
		ext = ".directory"
	}

	return base + ext
}
