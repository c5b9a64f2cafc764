// Copyright 2025, hyperchaotic and the launchedit contributors
// SPDX-License-Identifier: GPL-3.0-only

package desktop

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Parse reads a desktop file into a [Document], validating its syntax: the
// first group must be "Desktop Entry", group and key names must not repeat,
// keys must be ASCII, and values must be valid UTF-8. Semantic constraints
// such as required fields are checked by [Decode] and [Validate].
func Parse(reader io.Reader) (*Document, error) {
	doc := &Document{}
	sc := bufio.NewScanner(reader)

	seenGroups := make(map[string]bool)
	seenKeys := make(map[string]bool)

	var current *Group

	lineNumber := 0
	for sc.Scan() {
		lineNumber++
		raw := sc.Text()
		trimmed := strings.TrimRight(raw, " \t")

		switch {
		case len(trimmed) == 0:
			doc.appendLine(current, line{kind: lineBlank, raw: raw})

			continue
		case strings.HasPrefix(trimmed, "#"):
			doc.appendLine(current, line{kind: lineComment, raw: raw})

			continue
		}

		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			groupName := trimmed[1 : len(trimmed)-1]

			if current == nil && groupName != GroupDesktopEntry {
				return doc, fmt.Errorf(
					"parse failure at line %d, expected [%s], found %s",
					lineNumber,
					GroupDesktopEntry,
					trimmed,
				)
			}

			if seenGroups[groupName] {
				return doc, fmt.Errorf(
					"parse failure at line %d, duplicate group %s",
					lineNumber,
					groupName,
				)
			}

			seenGroups[groupName] = true
			clear(seenKeys)

			current = &Group{Name: groupName}
			doc.groups = append(doc.groups, current)

			continue
		}

		if current == nil {
			return doc, fmt.Errorf(
				"parse failure at line %d, expected [%s], found %s",
				lineNumber,
				GroupDesktopEntry,
				trimmed,
			)
		}

		keyValSplit := strings.SplitN(trimmed, "=", 2)
		if len(keyValSplit) < 2 {
			return doc, fmt.Errorf(
				"parse failure at line %d, tried to read key-value line but no value could be determined. Line: %s",
				lineNumber,
				trimmed,
			)
		}

		// Space around the equals sign is ignored per the specification.
		key := strings.TrimRight(keyValSplit[0], " ")
		value := strings.TrimLeft(keyValSplit[1], " ")

		if !isValidKey(key) {
			return doc, fmt.Errorf(
				"parse failure at line %d, invalid key: %s",
				lineNumber,
				key,
			)
		}

		if _, _, err := splitKeyLocale(key); err != nil {
			return doc, fmt.Errorf("parse failure at line %d: %w", lineNumber, err)
		}

		if !isValidValue(value) {
			return doc, fmt.Errorf(
				"parse failure at line %d, invalid value: %s",
				lineNumber,
				value,
			)
		}

		if seenKeys[key] {
			return doc, fmt.Errorf(
				"parse failure at line %d, duplicate key %s",
				lineNumber,
				key,
			)
		}

		seenKeys[key] = true

		current.lines = append(current.lines, line{
			kind:  lineKeyValue,
			raw:   raw,
			key:   key,
			value: value,
		})
	}

	if err := sc.Err(); err != nil {
		return doc, fmt.Errorf("failed reading line %d: %w", lineNumber, err)
	}

	if doc.DesktopEntry() == nil {
		return doc, fmt.Errorf("parse failure, no [%s] group found", GroupDesktopEntry)
	}

	return doc, nil
}

// ParseFile parses the desktop file at path.
func ParseFile(path string) (*Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ParseFile, failed to open file %s: %w", path, err)
	}
	defer file.Close()

	return Parse(file)
}

func (d *Document) appendLine(current *Group, l line) {
	if current == nil {
		d.preamble = append(d.preamble, l)

		return
	}

	current.lines = append(current.lines, l)
}
