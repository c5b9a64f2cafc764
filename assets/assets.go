// Copyright 2025, hyperchaotic and the launchedit contributors
// SPDX-License-Identifier: GPL-3.0-only

/*
Package assets provides access to the application's embedded static assets,
most importantly the gettext catalogs under po/.
*/
package assets

import (
	"embed"
)

// FS provides access to the embedded file system.
var FS embed.FS
