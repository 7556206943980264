package fonts

import "math"

// ID is the dense internal identifier of a registered font.
// IDs are assigned from zero upward in registration order.
type ID uint32

// GlyphID is the index of a glyph within a font.
// Glyph 0 is the .notdef glyph.
type GlyphID uint16

// NotDef is the glyph used for runes the font cannot map.
const NotDef GlyphID = 0

// Face is the capability set glyphbrush needs from a font: character
// mapping, advances, vertical metrics and outlines.
//
// All sizes are in pixels per em. Implementations must be safe for
// concurrent use.
type Face interface {
	// Name returns the font family name, or an empty string.
	Name() string

	// GlyphIndex maps a rune to a glyph. It reports false and returns
	// NotDef when the font has no glyph for r.
	GlyphIndex(r rune) (GlyphID, bool)

	// GlyphAdvance returns the horizontal advance of gid in pixels.
	GlyphAdvance(gid GlyphID, ppem float64) float64

	// Metrics returns the vertical font metrics at ppem.
	Metrics(ppem float64) Metrics

	// GlyphOutline returns the outline of gid scaled to ppem, in pixels,
	// with the origin on the baseline and Y increasing downward.
	// Glyphs without ink (such as space) return an empty outline.
	GlyphOutline(gid GlyphID, ppem float64) (Outline, error)
}

// ScaleLimiter is implemented by faces that cannot load glyphs above a
// certain size.
type ScaleLimiter interface {
	// MaxPPEM returns the largest supported pixels-per-em value.
	MaxPPEM() float64
}

// MaxPPEM returns the largest size face supports, or +Inf when the face
// does not implement ScaleLimiter.
func MaxPPEM(face Face) float64 {
	if l, ok := face.(ScaleLimiter); ok {
		return l.MaxPPEM()
	}
	return math.Inf(1)
}

// Table resolves font ids to faces. Registry implements Table.
type Table interface {
	Face(id ID) (Face, bool)
}

// Metrics holds font-level vertical metrics at a specific size.
type Metrics struct {
	// Ascent is the distance from the baseline to the top of the font (positive).
	Ascent float64

	// Descent is the distance from the baseline to the bottom of the font (negative).
	Descent float64

	// LineGap is the recommended extra spacing between lines.
	LineGap float64
}

// Height returns the line height (ascent - descent + line gap).
func (m Metrics) Height() float64 {
	return m.Ascent - m.Descent + m.LineGap
}

// SegmentOp is the kind of an outline segment.
type SegmentOp uint8

const (
	// SegmentMoveTo starts a new contour at Points[0].
	SegmentMoveTo SegmentOp = iota
	// SegmentLineTo draws a line to Points[0].
	SegmentLineTo
	// SegmentQuadTo draws a quadratic curve through Points[0] to Points[1].
	SegmentQuadTo
	// SegmentCubeTo draws a cubic curve through Points[0], Points[1] to Points[2].
	SegmentCubeTo
)

// String returns the string representation of the op.
func (op SegmentOp) String() string {
	switch op {
	case SegmentMoveTo:
		return "MoveTo"
	case SegmentLineTo:
		return "LineTo"
	case SegmentQuadTo:
		return "QuadTo"
	case SegmentCubeTo:
		return "CubeTo"
	default:
		return "Unknown"
	}
}

// Point is an outline point in pixels.
type Point struct {
	X, Y float32
}

// Segment is a single outline command.
type Segment struct {
	Op     SegmentOp
	Points [3]Point
}

// Outline is a glyph outline made of segments.
type Outline []Segment

// Bounds returns the bounding box of all points in the outline.
// An empty outline has empty bounds.
func (o Outline) Bounds() (minX, minY, maxX, maxY float32) {
	if len(o) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = o[0].Points[0].X, o[0].Points[0].Y
	maxX, maxY = minX, minY
	for _, seg := range o {
		for _, p := range seg.Points[:seg.Op.pointCount()] {
			minX = min(minX, p.X)
			minY = min(minY, p.Y)
			maxX = max(maxX, p.X)
			maxY = max(maxY, p.Y)
		}
	}
	return minX, minY, maxX, maxY
}

// pointCount returns how many of Points are used by op.
func (op SegmentOp) pointCount() int {
	switch op {
	case SegmentQuadTo:
		return 2
	case SegmentCubeTo:
		return 3
	default:
		return 1
	}
}
