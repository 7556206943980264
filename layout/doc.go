// Package layout turns a section of text into positioned glyphs.
//
// A Section is one font at one scale with a plain string. Engine.Layout
// walks the string in logical order, maps each rune to a glyph through the
// font's character map and places it at the current pen position. The pen
// starts at the section origin with the first baseline one ascent below it.
//
//	engine := layout.Engine{Wrap: layout.WordWrap}
//	glyphs := engine.Layout(registry, layout.Section{
//	    Font:   id,
//	    Scale:  24,
//	    Text:   "Hello, world",
//	    Bounds: layout.Bounds{Width: 200},
//	})
//
// Layout is deterministic and never fails. Vertical extent comes from the
// font's ascent and descent, not from glyph ink, so sizing is stable
// regardless of which glyphs appear.
package layout
