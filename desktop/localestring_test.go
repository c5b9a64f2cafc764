// Copyright 2025, hyperchaotic and the launchedit contributors
// SPDX-License-Identifier: GPL-3.0-only

package desktop

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func localized(keys ...string) map[string]string {
	result := make(map[string]string, len(keys))
	for _, key := range keys {
		result[key] = key
	}

	return result
}

func TestLocaleStringToLocale(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		localized map[string]string
		locale    string
		want      string
	}{
		{
			name:      "no match falls back to default",
			localized: localized("fr"),
			locale:    "nl",
			want:      "Default",
		},
		{
			name:      "lang country modifier",
			localized: localized("fr", "nl", "nl@custom", "nl_BE", "nl_BE@custom"),
			locale:    "nl_BE@custom",
			want:      "nl_BE@custom",
		},
		{
			name:      "encoding is ignored",
			localized: localized("fr", "nl", "nl@custom", "nl_BE", "nl_BE@custom"),
			locale:    "nl_BE.UTF-8@custom",
			want:      "nl_BE@custom",
		},
		{
			name:      "lang country",
			localized: localized("fr", "nl", "nl@custom", "nl_BE"),
			locale:    "nl_BE.UTF-8",
			want:      "nl_BE",
		},
		{
			name:      "lang modifier",
			localized: localized("fr", "nl", "nl@custom"),
			locale:    "nl.UTF-8@custom",
			want:      "nl@custom",
		},
		{
			name:      "country falls back to lang",
			localized: localized("fr", "nl"),
			locale:    "nl_BE",
			want:      "nl",
		},
		{
			name:      "plain lang",
			localized: localized("fr", "nl"),
			locale:    "nl",
			want:      "nl",
		},
		{
			name:      "unparseable locale",
			localized: localized("fr", "nl"),
			locale:    "!!",
			want:      "Default",
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			lstring := LocaleString{Default: "Default", Localized: test.localized}
			assert.Equal(t, test.want, lstring.ToLocale(test.locale))
		})
	}
}

func TestLocaleStringsToLocale(t *testing.T) {
	t.Parallel()

	keywords := LocaleStrings{
		Default: []string{"browser"},
		Localized: map[string][]string{
			"da": {"internet", "web"},
		},
	}

	assert.Equal(t, []string{"internet", "web"}, keywords.ToLocale("da_DK.UTF-8"))
	assert.Equal(t, []string{"browser"}, keywords.ToLocale("de"))
}

func TestIconStringToLocale(t *testing.T) {
	t.Parallel()

	icon := IconString{
		Default: "app-icon",
		Localized: map[string]string{
			"sr@latin": "app-icon-latin",
		},
	}

	assert.Equal(t, "app-icon-latin", icon.ToLocale("sr@latin"))
	assert.Equal(t, "app-icon", icon.ToLocale("sr"))
}
