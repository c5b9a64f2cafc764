// Copyright 2025, hyperchaotic and the launchedit contributors
// SPDX-License-Identifier: GPL-3.0-only

package desktop

import (
	"bytes"
	"io"
	"strings"
)

const (
	// GroupDesktopEntry is the name of the mandatory first group.
	GroupDesktopEntry = "Desktop Entry"

	// ActionGroupPrefix prefixes the group name of an application action.
	ActionGroupPrefix = "Desktop Action "
)

// Desktop entry types defined by the specification. Implementations should
// ignore entries with an unknown type to allow future additions.
const (
	TypeApplication = "Application"
	TypeLink        = "Link"
	TypeDirectory   = "Directory"
)

type lineKind int

const (
	lineBlank lineKind = iota
	lineComment
	lineKeyValue
)

// line is a single physical line of a desktop file. For untouched lines raw
// is reproduced verbatim on output; Set rebuilds raw from key and value.
type line struct {
	kind  lineKind
	raw   string
	key   string // key including any [locale] suffix
	value string // escaped value, exactly as stored in the file
}

// Group is a named section of a desktop file holding its lines in file order.
type Group struct {
	Name  string
	lines []line
}

// Document is an order and comment preserving representation of a desktop
// file. Writing an unmodified Document reproduces its input byte for byte.
type Document struct {
	// preamble holds comments and blank lines before the first group header.
	preamble []line
	groups   []*Group
}

// NewDocument returns a Document containing a single "Desktop Entry" group
// with the given type and name, the minimal skeleton of a valid entry.
func NewDocument(entryType, name string) *Document {
	doc := &Document{}
	group := doc.EnsureGroup(GroupDesktopEntry)
	group.Set("Type", entryType)
	group.Set("Name", escapeString(name))

	return doc
}

// DesktopEntry returns the "Desktop Entry" group, or nil if absent.
// Documents returned by Parse and NewDocument always have one.
func (d *Document) DesktopEntry() *Group {
	return d.Group(GroupDesktopEntry)
}

// Group returns the group with the given name, or nil.
func (d *Document) Group(name string) *Group {
	for _, g := range d.groups {
		if g.Name == name {
			return g
		}
	}

	return nil
}

// GroupNames returns the names of all groups in file order.
func (d *Document) GroupNames() []string {
	names := make([]string, len(d.groups))
	for i, g := range d.groups {
		names[i] = g.Name
	}

	return names
}

// EnsureGroup returns the named group, appending an empty one if necessary.
func (d *Document) EnsureGroup(name string) *Group {
	if g := d.Group(name); g != nil {
		return g
	}

	g := &Group{Name: name}
	d.groups = append(d.groups, g)

	return g
}

// RemoveGroup deletes the named group and reports whether it was present.
// The "Desktop Entry" group cannot be removed.
func (d *Document) RemoveGroup(name string) bool {
	if name == GroupDesktopEntry {
		return false
	}

	for i, g := range d.groups {
		if g.Name == name {
			d.groups = append(d.groups[:i], d.groups[i+1:]...)

			return true
		}
	}

	return false
}

// Value returns the escaped value stored under key, and whether it exists.
func (g *Group) Value(key string) (string, bool) {
	for _, l := range g.lines {
		if l.kind == lineKeyValue && l.key == key {
			return l.value, true
		}
	}

	return "", false
}

// Keys returns the keys of the group in file order, locale suffixes included.
func (g *Group) Keys() []string {
	keys := make([]string, 0, len(g.lines))

	for _, l := range g.lines {
		if l.kind == lineKeyValue {
			keys = append(keys, l.key)
		}
	}

	return keys
}

// Set stores the escaped value under key, updating the existing line in
// place or appending a new one after the last key-value line of the group
// so trailing comments and blank lines stay where they are.
func (g *Group) Set(key, value string) {
	for i, l := range g.lines {
		if l.kind == lineKeyValue && l.key == key {
			g.lines[i].value = value
			g.lines[i].raw = key + "=" + value

			return
		}
	}

	insert := len(g.lines)
	for insert > 0 && g.lines[insert-1].kind != lineKeyValue {
		insert--
	}

	l := line{kind: lineKeyValue, raw: key + "=" + value, key: key, value: value}
	g.lines = append(g.lines[:insert], append([]line{l}, g.lines[insert:]...)...)
}

// Unset removes the key-value line for key and reports whether it existed.
func (g *Group) Unset(key string) bool {
	for i, l := range g.lines {
		if l.kind == lineKeyValue && l.key == key {
			g.lines = append(g.lines[:i], g.lines[i+1:]...)

			return true
		}
	}

	return false
}

// UnsetLocalized removes key and every localized variant of it, for example
// Name together with Name[fr] and Name[nl_BE]. It reports whether any line
// was removed.
func (g *Group) UnsetLocalized(key string) bool {
	removed := false
	kept := g.lines[:0]

	for _, l := range g.lines {
		if l.kind == lineKeyValue {
			base, _, err := splitKeyLocale(l.key)
			if err == nil && base == key {
				removed = true

				continue
			}
		}

		kept = append(kept, l)
	}

	g.lines = kept

	return removed
}

// WriteTo writes the document in desktop file syntax. Lines that were not
// modified since parsing are reproduced verbatim. Every line, including the
// last, is terminated with a newline, so input that lacked a final newline
// gains one on output.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	var total int64

	writeLine := func(raw string) error {
		n, err := io.WriteString(w, raw+"\n")
		total += int64(n)

		return err
	}

	for _, l := range d.preamble {
		if err := writeLine(l.raw); err != nil {
			return total, err
		}
	}

	for _, g := range d.groups {
		if err := writeLine("[" + g.Name + "]"); err != nil {
			return total, err
		}

		for _, l := range g.lines {
			if err := writeLine(l.raw); err != nil {
				return total, err
			}
		}
	}

	return total, nil
}

// Bytes renders the document to a byte slice.
func (d *Document) Bytes() []byte {
	var buf bytes.Buffer
	_, _ = d.WriteTo(&buf)

	return buf.Bytes()
}

func (d *Document) String() string {
	var b strings.Builder
	_, _ = d.WriteTo(&b)

	return b.String()
}
