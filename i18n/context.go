// Copyright 2025, hyperchaotic and the launchedit contributors
// SPDX-License-Identifier: GPL-3.0-only

package i18n

import (
	"context"
	"os"
	"strings"

	"golang.org/x/text/language"
)

type contextKeyType struct{}

var tagKey = contextKeyType{}

// WithTag stores t in ctx and returns a derived context that carries it.
//
// The returned context should be passed to downstream code that performs
// translations. Passing the zero value of [language.Tag] clears any existing
// value.
//
// The ctx must not be nil.
func WithTag(ctx context.Context, t language.Tag) context.Context {
	return context.WithValue(ctx, tagKey, t)
}

// TagFrom returns the language tag stored in ctx, or the tag for [BaseLocale]
// if none is present. It never returns the zero value of [language.Tag].
func TagFrom(ctx context.Context) language.Tag {
	if ctx != nil {
		if t, _ := ctx.Value(tagKey).(language.Tag); t != (language.Tag{}) {
			return t
		}
	}

	return baseTag
}

// FromEnv returns the best language tag for the current process environment,
// inspecting the variables in the order the gettext family does:
//
//  1. LANGUAGE (a colon-separated priority list)
//  2. LC_ALL
//  3. LC_MESSAGES
//  4. LANG
//
// Encoding suffixes (".UTF-8") and modifiers ("@euro") are stripped, and
// underscores become hyphens, turning POSIX locale names into BCP 47 tags.
//
// If Setup has not been called, FromEnv returns the tag for [BaseLocale].
func FromEnv() language.Tag {
	if matcher == nil {
		return baseTag
	}

	preferred := make([]string, 0, 4)

	if languageList := os.Getenv("LANGUAGE"); languageList != "" {
		for _, locale := range strings.Split(languageList, ":") {
			if tag := posixToBCP47(locale); tag != "" {
				preferred = append(preferred, tag)
			}
		}
	}

	for _, envName := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if tag := posixToBCP47(os.Getenv(envName)); tag != "" {
			preferred = append(preferred, tag)
		}
	}

	if len(preferred) == 0 {
		return baseTag
	}

	tag, _ := language.MatchStrings(matcher, preferred...)

	return tag
}

// WithEnv resolves the language from the environment using [FromEnv] and
// installs the matched tag in the returned context. It is equivalent to:
//
//	WithTag(ctx, FromEnv())
func WithEnv(ctx context.Context) context.Context {
	return WithTag(ctx, FromEnv())
}

// posixToBCP47 turns a POSIX locale name such as "da_DK.UTF-8@euro" into a
// BCP 47 candidate such as "da-DK". "C" and "POSIX" yield an empty string.
func posixToBCP47(locale string) string {
	locale, _, _ = strings.Cut(locale, ".")

	if atIdx := strings.Index(locale, "@"); atIdx != -1 {
		locale = locale[:atIdx]
	}

	locale = strings.TrimSpace(locale)
	if locale == "" || locale == "C" || locale == "POSIX" {
		return ""
	}

	return strings.ReplaceAll(locale, "_", "-")
}
