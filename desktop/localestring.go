// Copyright 2025, hyperchaotic and the launchedit contributors
// SPDX-License-Identifier: GPL-3.0-only

package desktop

import (
	"regexp"
)

// LocaleString is the value of a localized key: the default value plus the
// values of every Key[locale] variant found in the file.
type LocaleString struct {
	Default   string
	Localized map[string]string
}

// LocaleStrings is the list-valued counterpart of LocaleString, used for
// Keywords.
type LocaleStrings struct {
	Default   []string
	Localized map[string][]string
}

// IconString is a localized icon name or path.
type IconString struct {
	Default   string
	Localized map[string]string
}

// localeRegex decomposes lang_COUNTRY.ENCODING@MODIFIER where _COUNTRY,
// .ENCODING, and @MODIFIER may each be omitted.
var localeRegex = regexp.MustCompile(
	`([a-z]{2,})(?:_([A-Z]{2}))?(?:\.[a-zA-Z0-9-]+)?(?:@(.+))?$`,
)

// localeLookupOrder returns the keys to try for a requested locale, most
// specific first, per the specification's [localized keys] matching rules.
// The encoding part never participates in matching.
//
// [localized keys]: https://specifications.freedesktop.org/desktop-entry-spec/1.5/localized-keys.html
func localeLookupOrder(locale string) []string {
	matches := localeRegex.FindStringSubmatch(locale)
	if matches == nil {
		return nil
	}

	lang, country, modifier := matches[1], matches[2], matches[3]

	order := make([]string, 0, 4)

	if country != "" && modifier != "" {
		order = append(order, lang+"_"+country+"@"+modifier)
	}

	if country != "" {
		order = append(order, lang+"_"+country)
	}

	if modifier != "" {
		order = append(order, lang+"@"+modifier)
	}

	return append(order, lang)
}

// ToLocale returns the best value for the requested locale, falling back to
// the default value when no localized variant matches.
func (s *LocaleString) ToLocale(locale string) string {
	for _, key := range localeLookupOrder(locale) {
		if s.Localized[key] != "" {
			return s.Localized[key]
		}
	}

	return s.Default
}

// ToLocale returns the best list for the requested locale, falling back to
// the default list when no localized variant matches.
func (s *LocaleStrings) ToLocale(locale string) []string {
	for _, key := range localeLookupOrder(locale) {
		if len(s.Localized[key]) > 0 {
			return s.Localized[key]
		}
	}

	return s.Default
}

// ToLocale returns the best icon for the requested locale, falling back to
// the default icon when no localized variant matches.
func (s *IconString) ToLocale(locale string) string {
	for _, key := range localeLookupOrder(locale) {
		if s.Localized[key] != "" {
			return s.Localized[key]
		}
	}

	return s.Default
}

func (s *LocaleString) assign(locale, value string) error {
	unescaped, err := unescapeString(value)
	if err != nil {
		return err
	}

	if locale == "" {
		s.Default = unescaped

		return nil
	}

	if s.Localized == nil {
		s.Localized = make(map[string]string)
	}

	s.Localized[locale] = unescaped

	return nil
}

func (s *LocaleStrings) assign(locale, value string) error {
	list, err := splitEscapedString(value)
	if err != nil {
		return err
	}

	if locale == "" {
		s.Default = list

		return nil
	}

	if s.Localized == nil {
		s.Localized = make(map[string][]string)
	}

	s.Localized[locale] = list

	return nil
}

func (s *IconString) assign(locale, value string) error {
	unescaped, err := unescapeString(value)
	if err != nil {
		return err
	}

	if locale == "" {
		s.Default = unescaped

		return nil
	}

	if s.Localized == nil {
		s.Localized = make(map[string]string)
	}

	s.Localized[locale] = unescaped

	return nil
}
