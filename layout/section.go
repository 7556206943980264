package layout

import "github.com/gogpu/glyphbrush/fonts"

// Point is a position in layout space. Y grows downward.
type Point struct {
	X, Y float64
}

// Bounds limits the area text is laid out in.
// A Width or Height of zero or less means unbounded.
type Bounds struct {
	Width, Height float64
}

// Section is one font and scale applied to a plain string.
type Section struct {
	Font   fonts.ID
	Scale  float64 // pixels per em
	Text   string
	Bounds Bounds
	Origin Point
}

// PositionedGlyph is a glyph placed at a pen position.
type PositionedGlyph struct {
	Glyph fonts.GlyphID
	Font  fonts.ID
	Scale float64

	// X and Y are the pen position. Y is the baseline.
	X, Y float64

	// Advance is the horizontal advance at Scale.
	Advance float64

	// Rune is the source character.
	Rune rune
}
