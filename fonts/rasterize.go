package fonts

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// GlyphImage is a rasterized glyph.
type GlyphImage struct {
	// Mask is the coverage mask. Its Rect starts at (0, 0).
	// Mask is nil for glyphs without ink.
	Mask *image.Alpha

	// Bounds is the mask rectangle relative to the glyph origin on the
	// baseline. Bounds.Min is the bearing of the top-left pixel.
	Bounds image.Rectangle
}

// Empty reports whether the glyph has no ink.
func (g *GlyphImage) Empty() bool {
	return g == nil || g.Mask == nil || g.Bounds.Empty()
}

// Rasterize renders gid at ppem into a coverage mask using
// golang.org/x/image/vector.
//
// If the glyph cannot be loaded, Rasterize falls back to .notdef.
// Glyphs without ink return an empty image and a nil error.
func Rasterize(face Face, gid GlyphID, ppem float64) (*GlyphImage, error) {
	return RasterizeLimit(face, gid, ppem, 0)
}

// RasterizeLimit is like Rasterize but refuses glyphs wider or taller than
// maxSide pixels with a *GlyphSizeError, checked before the bitmap is
// allocated. A maxSide of zero or less means no limit.
func RasterizeLimit(face Face, gid GlyphID, ppem float64, maxSide int) (*GlyphImage, error) {
	outline, err := face.GlyphOutline(gid, ppem)
	if err != nil && gid != NotDef {
		outline, err = face.GlyphOutline(NotDef, ppem)
	}
	if err != nil {
		return &GlyphImage{}, err
	}
	bounds := OutlineBounds(outline)
	if maxSide > 0 && (bounds.Dx() > maxSide || bounds.Dy() > maxSide) {
		return &GlyphImage{}, &GlyphSizeError{Glyph: gid, Width: bounds.Dx(), Height: bounds.Dy(), Limit: maxSide}
	}
	return rasterize(outline, bounds), nil
}

// RasterizeOutline renders an outline into a coverage mask.
func RasterizeOutline(outline Outline) *GlyphImage {
	return rasterize(outline, OutlineBounds(outline))
}

// OutlineBounds returns the pixel rectangle covered by outline, relative to
// the glyph origin. Outlines without ink, or with non-finite or
// out-of-range coordinates, have empty bounds.
func OutlineBounds(outline Outline) image.Rectangle {
	if !hasInk(outline) {
		return image.Rectangle{}
	}
	minX, minY, maxX, maxY := outline.Bounds()
	coords := [4]float64{
		math.Floor(float64(minX)),
		math.Floor(float64(minY)),
		math.Ceil(float64(maxX)),
		math.Ceil(float64(maxY)),
	}
	for _, v := range coords {
		if math.IsNaN(v) || math.Abs(v) > maxCoord {
			return image.Rectangle{}
		}
	}
	return image.Rect(int(coords[0]), int(coords[1]), int(coords[2]), int(coords[3]))
}

// maxCoord bounds outline coordinates so that rectangle sizes fit an int32.
const maxCoord = 1 << 30

// rasterize renders outline into a mask covering bounds.
func rasterize(outline Outline, bounds image.Rectangle) *GlyphImage {
	if bounds.Empty() {
		return &GlyphImage{}
	}
	// x/image/vector expects coordinates in the positive quadrant.
	dx := float32(-bounds.Min.X)
	dy := float32(-bounds.Min.Y)

	r := vector.NewRasterizer(bounds.Dx(), bounds.Dy())
	r.DrawOp = draw.Src

	started := false
	for _, seg := range outline {
		p := seg.Points
		switch seg.Op {
		case SegmentMoveTo:
			if started {
				r.ClosePath()
			}
			r.MoveTo(p[0].X+dx, p[0].Y+dy)
			started = true
		case SegmentLineTo:
			r.LineTo(p[0].X+dx, p[0].Y+dy)
		case SegmentQuadTo:
			r.QuadTo(p[0].X+dx, p[0].Y+dy, p[1].X+dx, p[1].Y+dy)
		case SegmentCubeTo:
			r.CubeTo(p[0].X+dx, p[0].Y+dy, p[1].X+dx, p[1].Y+dy, p[2].X+dx, p[2].Y+dy)
		}
	}
	if started {
		r.ClosePath()
	}

	mask := image.NewAlpha(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	r.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	return &GlyphImage{Mask: mask, Bounds: bounds}
}

// hasInk reports whether the outline draws any lines or curves.
func hasInk(outline Outline) bool {
	for _, seg := range outline {
		if seg.Op != SegmentMoveTo {
			return true
		}
	}
	return false
}
