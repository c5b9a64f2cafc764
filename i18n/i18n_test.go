// Copyright 2025, hyperchaotic and the launchedit contributors
// SPDX-License-Identifier: GPL-3.0-only

package i18n

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/hyperchaotic/launchedit/config"
)

const testEnPo = `msgid ""
msgstr ""
"Content-Type: text/plain; charset=UTF-8\n"
"Plural-Forms: nplurals=2; plural=(n != 1);\n"

msgid "app-title"
msgstr "Launch Edit"

msgid "greeting"
msgstr "Hello {{.Name}}"

msgctxt "menu"
msgid "open"
msgstr "Open"

msgid "item-count"
msgid_plural "item-count-plural"
msgstr[0] "one item"
msgstr[1] "{{.Count}} items"
`

const testDaPo = `msgid ""
msgstr ""
"Content-Type: text/plain; charset=UTF-8\n"

msgid "app-title"
msgstr "Rediger genveje"
`

const testPtBrPo = `msgid ""
msgstr ""
"Content-Type: text/plain; charset=UTF-8\n"

msgid "app-title"
msgstr "Editar atalhos"
`

func testCatalogFS() fstest.MapFS {
	return fstest.MapFS{
		"po/en.po":          {Data: []byte(testEnPo)},
		"po/da.po":          {Data: []byte(testDaPo)},
		"po/pt_BR.po":       {Data: []byte(testPtBrPo)},
		"po/launchedit.pot": {Data: []byte("msgid \"app-title\"\nmsgstr \"\"\n")},
	}
}

// setupTestLocales loads the test catalogues.  The package keeps its loaded
// locales in package globals, so none of these tests run in parallel.
func setupTestLocales(t *testing.T) {
	t.Helper()

	require.NoError(t, setupFrom(testCatalogFS()))
}

func TestSetupFrom(t *testing.T) {
	setupTestLocales(t)

	var tags []string
	for _, tag := range Languages() {
		tags = append(tags, tag.String())
	}

	// The underscore in pt_BR.po is normalised to a canonical tag.
	assert.Equal(t, []string{"da", "en", "pt-BR"}, tags)
}

func TestSetupFromSkipsInvalidLocaleFile(t *testing.T) {
	fsys := testCatalogFS()
	fsys["po/!!.po"] = &fstest.MapFile{Data: []byte("msgid \"x\"\nmsgstr \"y\"\n")}

	require.NoError(t, setupFrom(fsys))
	assert.Len(t, Languages(), 3)
}

func TestSetupFromMissingBaseLocale(t *testing.T) {
	err := setupFrom(fstest.MapFS{
		"po/da.po": {Data: []byte(testDaPo)},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "po/en.po")

	setupTestLocales(t)
}

func TestTr(t *testing.T) {
	setupTestLocales(t)

	ctx := context.Background()

	assert.Equal(t, "Launch Edit", Tr(ctx, "app-title"))
	assert.Equal(t, "Rediger genveje", Tr(WithTag(ctx, language.Danish), "app-title"))

	// A key the Danish catalogue lacks falls back to the base table.
	assert.Equal(t, "Hello World", Tr(WithTag(ctx, language.Danish), "greeting", "Name", "World"))

	// An unknown key is passed through unchanged.
	assert.Equal(t, "no-such-key", Tr(ctx, "no-such-key"))
}

func TestTrSingularWithPluralFormsHeader(t *testing.T) {
	// The en catalogue declares Plural-Forms "(n != 1)". Singular entries
	// only define form 0, so presence checks that implicitly use n=0 would
	// miss every singular key and return the raw key instead.
	setupTestLocales(t)

	for _, key := range []string{"app-title", "greeting"} {
		assert.NotEqual(t, key, Tr(context.Background(), key, "Name", "x"))
	}

	assert.NotEqual(t, "open", TrC(context.Background(), "menu", "open"))
}

func TestTrRegionalVariant(t *testing.T) {
	setupTestLocales(t)

	ctx := WithTag(context.Background(), language.MustParse("pt-BR"))
	assert.Equal(t, "Editar atalhos", Tr(ctx, "app-title"))
}

func TestTrC(t *testing.T) {
	setupTestLocales(t)

	assert.Equal(t, "Open", TrC(context.Background(), "menu", "open"))
	assert.Equal(t, "open", TrC(context.Background(), "other-context", "open"))
}

func TestTrN(t *testing.T) {
	setupTestLocales(t)

	ctx := context.Background()

	assert.Equal(t, "one item", TrN(ctx, "item-count", "item-count-plural", 1))
	assert.Equal(t, "3 items", TrN(ctx, "item-count", "item-count-plural", 3, "Count", 3))
}

func TestTrStrictMissingKeys(t *testing.T) {
	setupTestLocales(t)

	config.Global.Internationalization.StrictMissingKeys = true
	t.Cleanup(func() { config.Global.Internationalization.StrictMissingKeys = false })

	assert.Equal(t, "⟦no-such-key⟧", Tr(context.Background(), "no-such-key"))
	assert.Equal(t, "Launch Edit", Tr(context.Background(), "app-title"))
}

func TestTagFrom(t *testing.T) {
	assert.Equal(t, baseTag, TagFrom(context.Background()))
	assert.Equal(t, baseTag, TagFrom(nil)) //nolint:staticcheck // nil ctx is part of the contract

	ctx := WithTag(context.Background(), language.Danish)
	assert.Equal(t, language.Danish, TagFrom(ctx))

	// The zero tag clears a previously stored one.
	assert.Equal(t, baseTag, TagFrom(WithTag(ctx, language.Tag{})))
}

func TestFromEnv(t *testing.T) {
	setupTestLocales(t)

	t.Setenv("LANGUAGE", "")
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "da_DK.UTF-8")
	assert.Equal(t, "da", FromEnv().String())

	// LANGUAGE takes precedence and is a priority list.
	t.Setenv("LANGUAGE", "pt_BR:da")
	assert.Equal(t, "pt-BR", FromEnv().String())

	// The C locale means no preference at all.
	t.Setenv("LANGUAGE", "")
	t.Setenv("LANG", "C")
	assert.Equal(t, baseTag, FromEnv())
}

func TestPosixToBCP47(t *testing.T) {
	tests := []struct {
		locale string
		want   string
	}{
		{locale: "da_DK.UTF-8@euro", want: "da-DK"},
		{locale: "pt_BR", want: "pt-BR"},
		{locale: "en", want: "en"},
		{locale: "C", want: ""},
		{locale: "POSIX", want: ""},
		{locale: "", want: ""},
	}

	for _, test := range tests {
		assert.Equal(t, test.want, posixToBCP47(test.locale), "locale %q", test.locale)
	}
}

func TestMsgKey(t *testing.T) {
	setupTestLocales(t)

	assert.Equal(t, "Launch Edit", MsgKey("app-title").Tr(context.Background()))

	var b strings.Builder

	require.NoError(t, MsgKey("app-title").Render(context.Background(), &b))
	assert.Equal(t, "Launch Edit", b.String())
}

func TestUserError(t *testing.T) {
	setupTestLocales(t)

	err := NewUserError(WithTag(context.Background(), language.Danish), "app-title")
	assert.Equal(t, "Rediger genveje", err.Error())
}
