// Package fonts provides the font side of glyphbrush: a small capability
// interface over font files, pluggable parsing backends, glyph rasterization,
// and the registry that maps externally owned font handles to dense ids.
//
// # Backends
//
// Font files are parsed through a named Backend. Two are built in:
//
//   - "ximage": golang.org/x/image/font/sfnt (the default)
//   - "gotext": github.com/go-text/typesetting/font
//
// Custom backends can be registered:
//
//	fonts.RegisterBackend("mine", myBackend)
//	face, err := fonts.Parse(data, fonts.WithBackend("mine"))
//
// # Registry
//
// Registry assigns each font handle a stable ID the first time it is seen
// and keeps a single metrics table for it. Measurement and drawing both read
// through the same Registry so they always agree on glyph advances.
package fonts
