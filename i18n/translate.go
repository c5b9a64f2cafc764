// Copyright 2025, hyperchaotic and the launchedit contributors
// SPDX-License-Identifier: GPL-3.0-only

package i18n

import (
	"bytes"
	"context"
	"log"
	"strings"
	"sync"
	"text/template"

	"github.com/leonelquinteros/gotext"
	"golang.org/x/text/language"
)

// templateCache caches compiled templates per unique template text.
var templateCache sync.Map // key: text, value: *template.Template

type Vars map[string]any

// NewUserError creates a new UserError.
func NewUserError(ctx context.Context, key string, kv ...any) *UserError {
	return &UserError{
		msg: Tr(ctx, key, kv...),
		kv:  kv,
	}
}

// UserError is an error type whose message is a translated string.
// It is intended for errors that can be shown directly to the end user.
type UserError struct {
	msg string
	kv  []any
}

// Error returns the translated error message.
func (e *UserError) Error() string {
	return e.msg
}

// Tr returns the translated string for a message key. If key-value pairs are
// provided, the translation is formatted using text/template-style named
// placeholders.
//
// A key missing from the active locale falls back to the base locale table;
// a key missing there too is returned unchanged, or visibly wrapped if
// strict mode is enabled.
func Tr(ctx context.Context, key string, kv ...any) string {
	return translate(ctx, "", key, "", 0, false, v(kv...))
}

// TrC translates a message key with an explicit disambiguating context,
// similar to gettext's pgettext. If key-value pairs are provided, the
// translation is formatted using named placeholders.
func TrC(ctx context.Context, contextKey, key string, kv ...any) string {
	return translate(ctx, contextKey, key, "", 0, false, v(kv...))
}

// TrN translates a singular or plural message depending on n. If a
// translation is missing, we choose singular when n == 1, otherwise plural.
// If key-value pairs are provided, the translation is formatted using named
// placeholders.
func TrN(ctx context.Context, singular, plural string, n int, kv ...any) string {
	return translate(ctx, "", singular, plural, n, true, v(kv...))
}

// TrNC is the contextual variant of TrN, similar to gettext's npgettext.
func TrNC(ctx context.Context, contextKey, singular, plural string, n int, kv ...any) string {
	return translate(ctx, contextKey, singular, plural, n, true, v(kv...))
}

// translate performs the underlying lookup and formatting.
func translate(
	ctx context.Context,
	contextKey, singular, plural string,
	n int,
	pluralMode bool,
	vars Vars,
) string {
	loc, matched := resolveLocale(TagFrom(ctx))

	// Fallback message
	base := singular
	if pluralMode && n != 1 {
		base = plural
	}

	finalText, found := lookup(loc, contextKey, singular, plural, n, pluralMode)

	// A locale that does not carry the key falls back to the base table.
	if !found && matched != baseTag {
		finalText, found = lookup(localesByTag[BaseLocale], contextKey, singular, plural, n, pluralMode)
	}

	if !found {
		finalText = base

		if strictMissingKeys() {
			logMissingOnce(strippedTagString(matched), buildLogKey(contextKey, singular))

			finalText = "⟦" + base + "⟧"
		}
	}

	return render(matched, finalText, vars)
}

func lookup(
	loc *gotext.Locale,
	contextKey, singular, plural string,
	n int,
	pluralMode bool,
) (string, bool) {
	if loc == nil {
		return "", false
	}

	// Singular presence is tested with n=1: the IsTranslatedD family maps
	// to n=0, which the usual Plural-Forms "(n != 1)" header sends to
	// plural form 1, a form singular entries never define.
	//
	// The method values keep vet's printf check from treating the message
	// id as a format string.
	switch {
	case pluralMode && contextKey != "":
		if loc.IsTranslatedNDC(poDomain, singular, n, contextKey) {
			getNDC := loc.GetNDC

			return getNDC(poDomain, singular, plural, n, contextKey), true
		}
	case pluralMode:
		if loc.IsTranslatedND(poDomain, singular, n) {
			getND := loc.GetND

			return getND(poDomain, singular, plural, n), true
		}
	case contextKey != "":
		if loc.IsTranslatedNDC(poDomain, singular, 1, contextKey) {
			getDC := loc.GetDC

			return getDC(poDomain, singular, contextKey), true
		}
	default:
		if loc.IsTranslatedND(poDomain, singular, 1) {
			getD := loc.GetD

			return getD(poDomain, singular), true
		}
	}

	return "", false
}

// render formats s as a text/template using the provided data.
func render(locale language.Tag, s string, data Vars) string {
	if !strings.Contains(s, "{{") {
		return s
	}

	key := s

	var tmpl *template.Template
	if t, ok := templateCache.Load(key); ok {
		tmpl = t.(*template.Template)
	} else {
		var err error

		tmpl, err = template.New("msg").Option("missingkey=error").Parse(s)
		if err != nil {
			if strictMissingKeys() {
				return "⟦" + s + "⟧"
			}

			log.Printf("i18n: template parse error for locale %s: %v, text: %q", locale, err, s)

			return s
		}

		templateCache.Store(key, tmpl)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]any(data)); err != nil {
		if strictMissingKeys() {
			return "⟦" + s + "⟧"
		}

		log.Printf("i18n: template execute error for locale %s: %v, text: %q", locale, err, s)

		return s
	}

	return buf.String()
}

// resolveLocale matches t to one of the loaded locales and returns the
// corresponding gotext.Locale and the matched tag.
// If no matcher or no locale is found, it returns nil and baseTag.
func resolveLocale(t language.Tag) (*gotext.Locale, language.Tag) {
	if matcher == nil {
		return nil, baseTag
	}

	matched, _ := language.MatchStrings(matcher, t.String())

	return localesByTag[matched.String()], matched
}

// v builds Vars from alternating key, value pairs.
// Panics on programmer error.
func v(kv ...any) Vars {
	if len(kv)%2 != 0 {
		panic("i18n.V: odd number of arguments, want key, value pairs")
	}

	m := make(Vars, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			panic("i18n.V: key must be string")
		}

		m[k] = kv[i+1]
	}

	return m
}
