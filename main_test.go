// Copyright 2025, hyperchaotic and the launchedit contributors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/hyperchaotic/launchedit/i18n"
)

// The field printers take message keys, not plain strings, so the catalog
// lint sees the field-* and nav-* keys routed through them.
var (
	_ func(context.Context, i18n.MsgKey, string) = printField
	_ func(context.Context, i18n.MsgKey, bool)   = printBoolField
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	orig := os.Stdout

	r, w, err := os.Pipe()
	require.NoError(t, err)

	os.Stdout = w

	defer func() { os.Stdout = orig }()

	fn()

	require.NoError(t, w.Close())

	data, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(data)
}

func TestPrintFieldLocalizesLabels(t *testing.T) {
	require.NoError(t, i18n.Setup())

	ctx := i18n.WithTag(context.Background(), language.Danish)

	out := captureStdout(t, func() {
		printField(ctx, "field-name", "Editor")
		printField(ctx, "field-url", "")
		printBoolField(ctx, "field-hidden", true)
		printBoolField(ctx, "field-runinterm", false)
	})

	assert.Contains(t, out, "Navn:")
	assert.Contains(t, out, "Editor")
	assert.Contains(t, out, "Slettet (skjult):")

	// Labels come from the catalog, never the raw key; empty and false
	// fields are omitted entirely.
	assert.NotContains(t, out, "field-name")
	assert.NotContains(t, out, "field-url")
	assert.NotContains(t, out, "field-runinterm")
}

func TestSaveErrorIsUserError(t *testing.T) {
	require.NoError(t, i18n.Setup())

	cause := errors.New("disk full")
	err := saveError(context.Background(), cause)
	require.Error(t, err)

	var userErr *i18n.UserError

	require.ErrorAs(t, err, &userErr)
	assert.Equal(t, "Unable to save file", userErr.Error())
	assert.ErrorIs(t, err, cause)
}

func TestSaveErrorLocalized(t *testing.T) {
	require.NoError(t, i18n.Setup())

	ctx := i18n.WithTag(context.Background(), language.Danish)
	err := saveError(ctx, errors.New("disk full"))

	var userErr *i18n.UserError

	require.ErrorAs(t, err, &userErr)
	assert.Equal(t, "Kunne ikke gemme filen", userErr.Error())
}

func TestEntryLocale(t *testing.T) {
	require.NoError(t, i18n.Setup())

	ctx := i18n.WithTag(context.Background(), language.MustParse("pt-BR"))
	assert.Equal(t, "pt_BR", entryLocale(ctx))

	assert.Equal(t, "en", entryLocale(context.Background()))
}

func TestOpenSessionWrapsUsage(t *testing.T) {
	require.NoError(t, i18n.Setup())

	_, err := openSession(context.Background(), "")
	require.ErrorIs(t, err, errUsage)
}
