// Copyright 2025, hyperchaotic and the launchedit contributors
// SPDX-License-Identifier: GPL-3.0-only

package desktop

import "strconv"

// SetString stores a string value under key, escaping it for file syntax.
func (g *Group) SetString(key, value string) {
	g.Set(key, escapeString(value))
}

// SetLocalizedString stores a string value under key for the given locale,
// for example SetLocalizedString("Name", "fr", ...) writes Name[fr]. An
// empty locale writes the default key.
func (g *Group) SetLocalizedString(key, locale, value string) {
	if locale != "" {
		key = key + "[" + locale + "]"
	}

	g.Set(key, escapeString(value))
}

// SetBool stores a boolean value under key.
func (g *Group) SetBool(key string, value bool) {
	g.Set(key, strconv.FormatBool(value))
}

// SetList stores a semicolon-separated list under key. An empty list removes
// the key instead, since the specification has no empty list syntax.
func (g *Group) SetList(key string, list []string) {
	if len(list) == 0 {
		g.Unset(key)

		return
	}

	g.Set(key, joinEscapedString(list))
}

// StringValue returns the unescaped string stored under key.
func (g *Group) StringValue(key string) (string, bool) {
	raw, ok := g.Value(key)
	if !ok {
		return "", false
	}

	value, err := parseString(raw)
	if err != nil {
		return "", false
	}

	return value, true
}

// ListValue returns the list stored under key.
func (g *Group) ListValue(key string) ([]string, bool) {
	raw, ok := g.Value(key)
	if !ok {
		return nil, false
	}

	list, err := parseList(raw)
	if err != nil {
		return nil, false
	}

	return list, true
}

// BoolValue returns the boolean stored under key.
func (g *Group) BoolValue(key string) (bool, bool) {
	raw, ok := g.Value(key)
	if !ok {
		return false, false
	}

	value, err := parseBoolean(raw)
	if err != nil {
		return false, false
	}

	return value, true
}
