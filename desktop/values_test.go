// Copyright 2025, hyperchaotic and the launchedit contributors
// SPDX-License-Identifier: GPL-3.0-only

package desktop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnescapeString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "space", value: `a\sb`, want: "a b"},
		{name: "newline", value: `line1\nline2`, want: "line1\nline2"},
		{name: "tab", value: `col1\tcol2`, want: "col1\tcol2"},
		{name: "carriage return", value: `a\rb`, want: "a\rb"},
		{name: "backslash", value: `back\\slash`, want: `back\slash`},
		{name: "unknown sequence kept", value: `a\qb`, want: `a\qb`},
		{name: "no escapes", value: "plain", want: "plain"},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got, err := unescapeString(test.value)
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestUnescapeStringIncomplete(t *testing.T) {
	t.Parallel()

	_, err := unescapeString(`trailing\`)
	assert.ErrorIs(t, err, ErrEscapeIncomplete)
}

func TestEscapeStringRoundTrip(t *testing.T) {
	t.Parallel()

	original := "a b\nc\td\r\\e"

	unescaped, err := unescapeString(escapeString(original))
	require.NoError(t, err)
	assert.Equal(t, original, unescaped)
}

func TestSplitEscapedString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{
			name:  "terminated list",
			value: "a;b;c;",
			want:  []string{"a", "b", "c"},
		},
		{
			name:  "unterminated list",
			value: "GNOME;KDE",
			want:  []string{"GNOME", "KDE"},
		},
		{
			name:  "escaped semicolon",
			value: `a\;b;c;`,
			want:  []string{"a;b", "c"},
		},
		{
			name:  "single element",
			value: "Utility;",
			want:  []string{"Utility"},
		},
		{
			name:  "element with value escapes",
			value: `first\sword;second;`,
			want:  []string{"first word", "second"},
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got, err := splitEscapedString(test.value)
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestSplitEscapedStringIncomplete(t *testing.T) {
	t.Parallel()

	_, err := splitEscapedString(`a;b\`)
	assert.ErrorIs(t, err, ErrEscapeIncomplete)
}

func TestJoinEscapedString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `a\;b;c;`, joinEscapedString([]string{"a;b", "c"}))
	assert.Equal(t, "", joinEscapedString(nil))

	list, err := splitEscapedString(joinEscapedString([]string{"audio/x-mp3", "video/mpeg"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"audio/x-mp3", "video/mpeg"}, list)
}

func TestSplitKeyLocale(t *testing.T) {
	t.Parallel()

	key, locale, err := splitKeyLocale("Name")
	require.NoError(t, err)
	assert.Equal(t, "Name", key)
	assert.Empty(t, locale)

	key, locale, err = splitKeyLocale("Name[nl_BE@custom]")
	require.NoError(t, err)
	assert.Equal(t, "Name", key)
	assert.Equal(t, "nl_BE@custom", locale)

	_, _, err = splitKeyLocale("Name]")
	assert.Error(t, err)
}

func TestParseBoolean(t *testing.T) {
	t.Parallel()

	got, err := parseBoolean("true")
	require.NoError(t, err)
	assert.True(t, got)

	got, err = parseBoolean("false")
	require.NoError(t, err)
	assert.False(t, got)

	// The specification is case sensitive here.
	_, err = parseBoolean("True")
	assert.Error(t, err)

	_, err = parseBoolean("1")
	assert.Error(t, err)
}
