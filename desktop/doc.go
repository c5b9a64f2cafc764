// Copyright 2025, hyperchaotic and the launchedit contributors
// SPDX-License-Identifier: GPL-3.0-only

/*
Package desktop reads, edits, and writes desktop entry files as defined by
the freedesktop [Desktop Entry Specification] version 1.5.

Files are parsed twice over, conceptually: [Parse] produces a [Document]
that keeps every line of the input, comments and blank lines included, in
file order, so that an edited file can be written back without disturbing
anything the user did not touch. [Decode] then derives a typed [Entry] view
from a Document, applying the specification's value types: localized
strings, booleans, semicolon-separated lists, and the Exec key's field
codes.

Mutation goes through the Document ([Group.Set], [Group.Unset]), keeping
the typed view a pure read model.

[Desktop Entry Specification]: https://specifications.freedesktop.org/desktop-entry-spec/1.5/
*/
package desktop
