// Copyright 2025, hyperchaotic and the launchedit contributors
// SPDX-License-Identifier: GPL-3.0-only

package desktop

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrEscapeIncomplete reports a backslash at the end of a value with nothing
// left to escape.
var ErrEscapeIncomplete = errors.New("unexpected end of string, escape sequence not completed")

func isValidKey(key string) bool {
	if len(key) == 0 || strings.HasSuffix(key, "[]") {
		return false
	}

	return isAsciiNoControl(key)
}

func isValidValue(value string) bool {
	if len(value) == 0 {
		return false
	}

	return utf8.ValidString(value)
}

func isAsciiNoControl(value string) bool {
	for _, r := range value {
		if r > unicode.MaxASCII || unicode.IsControl(r) {
			return false
		}
	}

	return true
}

// splitKeyLocale separates a key such as "Name[nl_BE]" into the bare key and
// its locale suffix.
func splitKeyLocale(key string) (string, string, error) {
	if !strings.HasSuffix(key, "]") {
		return key, "", nil
	}

	start := strings.Index(key, "[")
	if start == -1 {
		return "", "", fmt.Errorf("key does not have matching opening bracket: %s", key)
	}

	return key[:start], key[start+1 : len(key)-1], nil
}

func parseBoolean(value string) (bool, error) {
	switch value {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean value: %s", value)
	}
}

func parseString(value string) (string, error) {
	if !isAsciiNoControl(value) {
		return "", fmt.Errorf("value of type string must be ASCII, got: %s", value)
	}

	unescaped, err := unescapeString(value)
	if err != nil {
		return "", fmt.Errorf("unescape error for %s: %w", value, err)
	}

	return unescaped, nil
}

func parseList(value string) ([]string, error) {
	if !isAsciiNoControl(value) {
		return nil, fmt.Errorf("value of type string must be ASCII, got: %s", value)
	}

	return splitEscapedString(value)
}

// unescapeString converts escape sequences such as \n to the characters they
// stand for, per the specification's [value types].
//
// [value types]: https://specifications.freedesktop.org/desktop-entry-spec/1.5/value-types.html
func unescapeString(s string) (string, error) {
	var builder strings.Builder
	builder.Grow(len(s))

	i := 0
	for i < len(s) {
		cur := s[i]
		if cur != '\\' {
			builder.WriteByte(cur)
			i++

			continue
		}

		if i+1 >= len(s) {
			return "", ErrEscapeIncomplete
		}

		switch s[i+1] {
		case 's':
			builder.WriteByte(' ')
		case 'n':
			builder.WriteByte('\n')
		case 't':
			builder.WriteByte('\t')
		case 'r':
			builder.WriteByte('\r')
		case '\\':
			builder.WriteByte('\\')
		default:
			builder.WriteByte(cur)
			i++

			continue
		}

		i += 2
	}

	return builder.String(), nil
}

// escapeString is the inverse of unescapeString, used when writing values
// back into a document.
func escapeString(s string) string {
	var builder strings.Builder
	builder.Grow(len(s))

	for _, r := range s {
		switch r {
		case '\n':
			builder.WriteString(`\n`)
		case '\t':
			builder.WriteString(`\t`)
		case '\r':
			builder.WriteString(`\r`)
		case '\\':
			builder.WriteString(`\\`)
		default:
			builder.WriteRune(r)
		}
	}

	return builder.String()
}

// splitEscapedString splits the input by semicolons that are not escaped and
// unescapes each resulting element.
func splitEscapedString(s string) ([]string, error) {
	var result []string

	var current strings.Builder

	escaped := false

	for _, char := range s {
		switch {
		case escaped:
			if char != ';' {
				current.WriteRune('\\')
			}

			current.WriteRune(char)

			escaped = false
		case char == '\\':
			escaped = true
		case char == ';':
			result = append(result, current.String())
			current.Reset()
		default:
			current.WriteRune(char)
		}
	}

	if escaped {
		return nil, ErrEscapeIncomplete
	}

	if segment := current.String(); segment != "" {
		result = append(result, segment)
	}

	for i := range result {
		unescaped, err := unescapeString(result[i])
		if err != nil {
			return nil, err
		}

		result[i] = unescaped
	}

	return result, nil
}

// joinEscapedString renders a list value: elements with their semicolons
// escaped, joined and terminated by semicolons as the specification requires.
func joinEscapedString(list []string) string {
	var builder strings.Builder

	for _, element := range list {
		builder.WriteString(strings.ReplaceAll(escapeString(element), ";", `\;`))
		builder.WriteByte(';')
	}

	return builder.String()
}
