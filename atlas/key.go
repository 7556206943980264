package atlas

import (
	"math"

	"github.com/gogpu/glyphbrush/fonts"
)

// Key identifies a rasterized glyph bitmap. Equal keys share one region.
type Key struct {
	Font  fonts.ID
	Glyph fonts.GlyphID

	// Scale is the pixels-per-em quantized to 1/ScaleSteps.
	Scale uint32
}

// QuantizeScale rounds scale to the nearest of steps subdivisions of a
// pixel. Positive scales never quantize to zero.
func QuantizeScale(scale float64, steps int) uint32 {
	if !(scale > 0) {
		return 0
	}
	q := math.Round(scale * float64(steps))
	return uint32(min(max(q, 1), math.MaxUint32))
}

// PixelsPerEm returns the scale k was quantized from.
func (k Key) PixelsPerEm(steps int) float64 {
	return float64(k.Scale) / float64(steps)
}

// Region is the location of a glyph bitmap in the atlas.
type Region struct {
	// U0, V0, U1, V1 are normalized texture coordinates at the atlas size
	// current when the region was returned.
	U0, V0, U1, V1 float32

	// X, Y, Width and Height are the pixel rectangle in the atlas.
	X, Y, Width, Height int

	// BearingX and BearingY offset the bitmap's top-left corner from the
	// pen position on the baseline.
	BearingX, BearingY float64
}

// Empty reports whether the region holds no pixels. Glyphs without ink,
// such as spaces, have empty regions.
func (r Region) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}
