// Copyright 2025, hyperchaotic and the launchedit contributors
// SPDX-License-Identifier: GPL-3.0-only

/*
Package i18n provides internationalisation utilities backed by GNU gettext
.po catalogues. It resolves stable message keys such as "app-title" or
"error-parsingentry" across locales.

# Quick start

Translate strings with calls such as:

	i18n.Tr(ctx, "app-title")
	i18n.Tr(ctx, "hint-exec", "File", path) // named placeholder substitution

The key namespace is a stable contract: application code must reference the
keys verbatim, and every key used in code has an entry in the base locale
catalogue. The cmd/i18ncheck tool enforces this.

# Missing translations

A key missing from the active locale falls back to the base locale table.
A key missing there too is returned unchanged, or, when
StrictMissingKeys is enabled, logged once per locale+key and visibly
wrapped as "⟦...⟧".

# Formatting

Translations can include placeholder tokens that are processed by Go's
standard text/template package. Provide substitutions as alternating
key-value pairs:

	i18n.Tr(ctx, "context-unabletosave", "File", name)

Numbers are not localised automatically; convert values to strings yourself
if you need locale-specific presentation.
*/
package i18n
