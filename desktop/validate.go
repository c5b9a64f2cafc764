// Copyright 2025, hyperchaotic and the launchedit contributors
// SPDX-License-Identifier: GPL-3.0-only

package desktop

import (
	"fmt"
	"slices"
	"strings"
)

// Problem is a single validation finding. Group and Key locate the finding
// when it concerns a specific line.
type Problem struct {
	Group string
	Key   string
	Err   error
}

func (p Problem) String() string {
	switch {
	case p.Key != "":
		return fmt.Sprintf("[%s] %s: %v", p.Group, p.Key, p.Err)
	case p.Group != "":
		return fmt.Sprintf("[%s]: %v", p.Group, p.Err)
	default:
		return p.Err.Error()
	}
}

// Validate checks a parsed document against the specification's semantic
// rules and returns all findings. A document with no findings decodes
// without error. Unlike [Decode], Validate does not stop at the first
// violation, making it suitable for a lint-style report.
func Validate(doc *Document) []Problem {
	var problems []Problem

	report := func(group, key string, err error) {
		problems = append(problems, Problem{Group: group, Key: key, Err: err})
	}

	main := doc.DesktopEntry()
	if main == nil {
		report("", "", fmt.Errorf("no [%s] group found", GroupDesktopEntry))

		return problems
	}

	entryType, _ := main.StringValue("Type")

	switch entryType {
	case "":
		report(main.Name, "Type", ErrTypeRequired)
	case TypeApplication, TypeLink, TypeDirectory:
	default:
		// Unknown types must be ignored rather than rejected, but they are
		// worth flagging to someone editing the file.
		report(main.Name, "Type", fmt.Errorf("unknown entry type %q", entryType))
	}

	if _, ok := main.Value("Name"); !ok {
		report(main.Name, "Name", ErrNameRequired)
	}

	if _, ok := main.Value("URL"); !ok && entryType == TypeLink {
		report(main.Name, "URL", ErrURLRequired)
	}

	problems = append(problems, validateValues(main)...)
	problems = append(problems, validateShowIn(main)...)
	problems = append(problems, validateExec(main, entryType)...)
	problems = append(problems, validateActions(doc)...)

	return problems
}

// booleanKeys are the keys of type boolean in the "Desktop Entry" group.
var booleanKeys = []string{
	"NoDisplay", "Hidden", "DBusActivatable", "Terminal",
	"StartupNotify", "PrefersNonDefaultGPU", "SingleMainWindow",
}

// listKeys are the keys of type string list in the "Desktop Entry" group.
var listKeys = []string{
	"OnlyShowIn", "NotShowIn", "MimeType", "Categories", "Implements", "Actions",
}

func validateValues(main *Group) []Problem {
	var problems []Problem

	for _, l := range main.lines {
		if l.kind != lineKeyValue {
			continue
		}

		key, _, err := splitKeyLocale(l.key)
		if err != nil {
			continue
		}

		switch {
		case slices.Contains(booleanKeys, key):
			if _, err := parseBoolean(l.value); err != nil {
				problems = append(problems, Problem{Group: main.Name, Key: l.key, Err: err})
			}
		case slices.Contains(listKeys, key):
			if _, err := parseList(l.value); err != nil {
				problems = append(problems, Problem{Group: main.Name, Key: l.key, Err: err})
			}
		}
	}

	return problems
}

func validateShowIn(main *Group) []Problem {
	onlyShowIn, _ := main.ListValue("OnlyShowIn")
	notShowIn, _ := main.ListValue("NotShowIn")

	for _, name := range onlyShowIn {
		if slices.Contains(notShowIn, name) {
			return []Problem{{
				Group: main.Name,
				Key:   "OnlyShowIn",
				Err:   fmt.Errorf("%q appears in both OnlyShowIn and NotShowIn", name),
			}}
		}
	}

	return nil
}

func validateExec(main *Group, entryType string) []Problem {
	var problems []Problem

	execRaw, hasExec := main.Value("Exec")
	dbus, _ := main.BoolValue("DBusActivatable")

	if entryType == TypeApplication && !hasExec && !dbus {
		problems = append(problems, Problem{
			Group: main.Name,
			Key:   "Exec",
			Err:   fmt.Errorf("Exec is required unless DBusActivatable is true"),
		})
	}

	if hasExec {
		if _, err := ParseExec(execRaw); err != nil {
			problems = append(problems, Problem{Group: main.Name, Key: "Exec", Err: err})
		}
	}

	if tryExec, ok := main.Value("TryExec"); ok {
		if _, err := parseString(tryExec); err != nil {
			problems = append(problems, Problem{Group: main.Name, Key: "TryExec", Err: err})
		}
	}

	return problems
}

func validateActions(doc *Document) []Problem {
	var problems []Problem

	main := doc.DesktopEntry()
	declared, _ := main.ListValue("Actions")

	for _, id := range declared {
		if doc.Group(ActionGroupPrefix+id) == nil {
			problems = append(problems, Problem{
				Group: main.Name,
				Key:   "Actions",
				Err:   fmt.Errorf("action %q has no matching [%s%s] group", id, ActionGroupPrefix, id),
			})
		}
	}

	for _, group := range doc.groups {
		id, ok := strings.CutPrefix(group.Name, ActionGroupPrefix)
		if !ok {
			continue
		}

		if !slices.Contains(declared, id) {
			problems = append(problems, Problem{
				Group: group.Name,
				Err:   fmt.Errorf("action group %q is not listed in the Actions key", id),
			})

			continue
		}

		if _, ok := group.Value("Name"); !ok {
			problems = append(problems, Problem{Group: group.Name, Key: "Name", Err: ErrNameRequired})
		}

		if execRaw, ok := group.Value("Exec"); ok {
			if _, err := ParseExec(execRaw); err != nil {
				problems = append(problems, Problem{Group: group.Name, Key: "Exec", Err: err})
			}
		}
	}

	return problems
}
