// Package fontkit provides embedded data assets for the font tooling.
//
// The root package exists solely to embed [data/builtin_fonts.toml] via
// [BuiltinFontsTOML]. The fonts package decodes it when rendering the
// generated Go font table.
package fontkit

import _ "embed"

// BuiltinFontsTOML holds the raw bytes of data/builtin_fonts.toml, the
// manually curated web-safe font table appended after generated entries.
//
//go:embed data/builtin_fonts.toml
var BuiltinFontsTOML []byte
