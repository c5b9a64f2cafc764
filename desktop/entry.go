// Copyright 2025, hyperchaotic and the launchedit contributors
// SPDX-License-Identifier: GPL-3.0-only

package desktop

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// StartupNotify values. The key is tri-state: absent means support is
// unknown.
const (
	StartupNotifyUnset = iota
	StartupNotifyTrue
	StartupNotifyFalse
)

// Decode errors.
var (
	ErrNameRequired = errors.New("Name field is required")
	ErrTypeRequired = errors.New("Type field is required")
	ErrURLRequired  = errors.New("URL field is required for type Link")
)

// Entry is the typed, read-only view of a desktop entry, covering every key
// the specification defines for the "Desktop Entry" group. Keys and groups
// the specification does not know are retained in OtherKeys and OtherGroups.
type Entry struct {
	// Type of the desktop entry: Application, Link, or Directory.
	Type string

	// Version of the Desktop Entry Specification the entry conforms with.
	Version string

	// Name is the specific name of the application, for example "Firefox".
	Name LocaleString

	// GenericName is a generic name, for example "Web Browser".
	GenericName LocaleString

	// NoDisplay means the entry exists but is not shown in menus.
	NoDisplay bool

	// Comment is the tooltip for the entry.
	Comment LocaleString

	// Icon to display. An absolute path is used directly, otherwise the icon
	// is located per the Icon Theme Specification.
	Icon IconString

	// Hidden is equivalent to the file not existing at all for this user.
	Hidden bool

	// OnlyShowIn lists the desktop environments that should display the
	// entry; NotShowIn is its opposite. The same name may not appear in both.
	OnlyShowIn []string
	NotShowIn  []string

	// DBusActivatable reports whether D-Bus activation is supported.
	DBusActivatable bool

	// TryExec is the path of an executable checked to determine whether the
	// program is actually installed.
	TryExec string

	// Exec is the program to execute, possibly with arguments and field
	// codes. Required for Application entries unless DBusActivatable.
	Exec ExecValue

	// Path is the working directory to run the program in.
	Path string

	// Terminal reports whether the program runs in a terminal window.
	Terminal bool

	// Actions are the additional application actions declared by the entry.
	Actions []Action

	// MimeType lists the MIME types supported by this application.
	MimeType []string

	// Categories in which the entry should be shown in a menu.
	Categories []string

	// Implements lists the interfaces this application implements.
	Implements []string

	// Keywords are additional search words, not meant for display.
	Keywords LocaleStrings

	// StartupNotify is one of StartupNotifyUnset, StartupNotifyTrue,
	// StartupNotifyFalse.
	StartupNotify int

	// StartupWMClass is the WM class or name hint of at least one window the
	// application maps.
	StartupWMClass string

	// URL is present on entries of type Link.
	URL string

	// PrefersNonDefaultGPU hints that the application prefers a more
	// powerful discrete GPU if available.
	PrefersNonDefaultGPU bool

	// SingleMainWindow hints that the application has a single main window.
	SingleMainWindow bool

	// OtherKeys holds the remaining keys of the "Desktop Entry" group.
	OtherKeys map[string]string

	// OtherGroups holds groups other than "Desktop Entry" and action groups.
	OtherGroups map[string]map[string]string
}

// Action is one additional application action.
type Action struct {
	// ID is the action identifier from the Actions key.
	ID string

	// Name is the label shown to the user.
	Name LocaleString

	// Icon shown together with the action.
	Icon IconString

	// Exec is the program to execute for this action.
	Exec ExecValue
}

// Decode derives the typed Entry view from a parsed document, applying the
// specification's value types and requiredness rules: Name and Type are
// mandatory, Link entries need URL, and every action listed in Actions must
// have a matching "Desktop Action" group.
func Decode(doc *Document) (*Entry, error) {
	var entry Entry

	main := doc.DesktopEntry()
	if main == nil {
		return nil, fmt.Errorf("decode failure, no [%s] group found", GroupDesktopEntry)
	}

	var actionIDs []string

	for _, l := range main.lines {
		if l.kind != lineKeyValue {
			continue
		}

		key, locale, err := splitKeyLocale(l.key)
		if err != nil {
			return nil, err
		}

		if key == "Actions" {
			actionIDs, err = parseList(l.value)
			if err != nil {
				return nil, fmt.Errorf("decode failure, error parsing Actions %q: %w", l.value, err)
			}

			continue
		}

		if err := entry.applyMainKey(key, locale, l.value); err != nil {
			return nil, fmt.Errorf("decode failure, key=%q, value=%q: %w", l.key, l.value, err)
		}
	}

	if err := entry.decodeGroups(doc, actionIDs); err != nil {
		return nil, err
	}

	if entry.Name.Default == "" {
		return nil, ErrNameRequired
	}

	if entry.Type == "" {
		return nil, ErrTypeRequired
	}

	if entry.Type == TypeLink && entry.URL == "" {
		return nil, ErrURLRequired
	}

	return &entry, nil
}

func (entry *Entry) decodeGroups(doc *Document, actionIDs []string) error {
	for _, group := range doc.groups {
		if group.Name == GroupDesktopEntry {
			continue
		}

		if actionID, ok := strings.CutPrefix(group.Name, ActionGroupPrefix); ok {
			idx := slices.Index(actionIDs, actionID)
			if idx == -1 {
				// Action groups not listed in the Actions key are ignored.
				continue
			}

			action, err := decodeAction(actionID, group)
			if err != nil {
				return err
			}

			entry.Actions = append(entry.Actions, *action)
			actionIDs = append(actionIDs[:idx], actionIDs[idx+1:]...)

			continue
		}

		if entry.OtherGroups == nil {
			entry.OtherGroups = make(map[string]map[string]string)
		}

		kv := make(map[string]string)
		for _, l := range group.lines {
			if l.kind == lineKeyValue {
				kv[l.key] = l.value
			}
		}

		entry.OtherGroups[group.Name] = kv
	}

	if len(actionIDs) > 0 {
		return fmt.Errorf(
			"decode failure, action has no matching %q group: %q",
			strings.TrimRight(ActionGroupPrefix, " "),
			actionIDs[0],
		)
	}

	return nil
}

func decodeAction(id string, group *Group) (*Action, error) {
	action := Action{ID: id}

	for _, l := range group.lines {
		if l.kind != lineKeyValue {
			continue
		}

		key, locale, err := splitKeyLocale(l.key)
		if err != nil {
			return nil, err
		}

		switch key {
		case "Name":
			err = action.Name.assign(locale, l.value)
		case "Icon":
			err = action.Icon.assign(locale, l.value)
		case "Exec":
			action.Exec, err = ParseExec(l.value)
		}

		if err != nil {
			return nil, fmt.Errorf(
				"decode failure in action %q, key=%q, value=%q: %w",
				id,
				l.key,
				l.value,
				err,
			)
		}
	}

	return &action, nil
}

//nolint:gocyclo // one case per specification key
func (entry *Entry) applyMainKey(key, locale, value string) error {
	var err error

	switch key {
	case "Type":
		entry.Type, err = parseString(value)
	case "Version":
		entry.Version, err = parseString(value)
	case "Name":
		err = entry.Name.assign(locale, value)
	case "GenericName":
		err = entry.GenericName.assign(locale, value)
	case "NoDisplay":
		entry.NoDisplay, err = parseBoolean(value)
	case "Comment":
		err = entry.Comment.assign(locale, value)
	case "Icon":
		err = entry.Icon.assign(locale, value)
	case "Hidden":
		entry.Hidden, err = parseBoolean(value)
	case "OnlyShowIn":
		entry.OnlyShowIn, err = parseList(value)
	case "NotShowIn":
		entry.NotShowIn, err = parseList(value)
	case "DBusActivatable":
		entry.DBusActivatable, err = parseBoolean(value)
	case "TryExec":
		entry.TryExec, err = parseString(value)
	case "Exec":
		entry.Exec, err = ParseExec(value)
	case "Path":
		entry.Path, err = parseString(value)
	case "Terminal":
		entry.Terminal, err = parseBoolean(value)
	case "MimeType":
		entry.MimeType, err = parseList(value)
	case "Categories":
		entry.Categories, err = parseList(value)
	case "Implements":
		entry.Implements, err = parseList(value)
	case "Keywords":
		err = entry.Keywords.assign(locale, value)
	case "StartupNotify":
		var supported bool

		supported, err = parseBoolean(value)

		switch {
		case err != nil:
		case supported:
			entry.StartupNotify = StartupNotifyTrue
		default:
			entry.StartupNotify = StartupNotifyFalse
		}
	case "StartupWMClass":
		entry.StartupWMClass, err = parseString(value)
	case "URL":
		entry.URL, err = parseString(value)
	case "PrefersNonDefaultGPU":
		entry.PrefersNonDefaultGPU, err = parseBoolean(value)
	case "SingleMainWindow":
		entry.SingleMainWindow, err = parseBoolean(value)
	default:
		if entry.OtherKeys == nil {
			entry.OtherKeys = make(map[string]string)
		}

		entry.OtherKeys[key] = value
	}

	return err
}
