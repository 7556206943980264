package fonts

import (
	"fmt"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// ximageFace implements Face using golang.org/x/image/font/sfnt.
// sfnt.Font is safe for concurrent use; each call uses its own sfnt.Buffer.
type ximageFace struct {
	font    *sfnt.Font
	name    string
	maxPPEM float64
}

// parseXImage is the "ximage" backend.
func parseXImage(data []byte) (Face, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, err
	}
	face := &ximageFace{font: f, maxPPEM: maxPPEMFor(f.UnitsPerEm())}
	face.name = face.lookupName()
	return face, nil
}

// maxPPEMFor returns the largest ppem at which sfnt can scale outlines
// reaching twice the em square without overflowing 32-bit 26.6 products.
func maxPPEMFor(upem sfnt.Units) float64 {
	if upem <= 0 {
		upem = 1000
	}
	return math.Floor(math.MaxInt32 / (64 * 2 * float64(upem)))
}

// MaxPPEM implements ScaleLimiter.
func (f *ximageFace) MaxPPEM() float64 {
	return f.maxPPEM
}

// lookupName returns the family name, falling back to the full name.
func (f *ximageFace) lookupName() string {
	var buf sfnt.Buffer
	if name, err := f.font.Name(&buf, sfnt.NameIDFamily); err == nil && name != "" {
		return name
	}
	if name, err := f.font.Name(&buf, sfnt.NameIDFull); err == nil {
		return name
	}
	return ""
}

// Name implements Face.Name.
func (f *ximageFace) Name() string {
	return f.name
}

// GlyphIndex implements Face.GlyphIndex.
func (f *ximageFace) GlyphIndex(r rune) (GlyphID, bool) {
	var buf sfnt.Buffer
	idx, err := f.font.GlyphIndex(&buf, r)
	if err != nil || idx == 0 {
		return NotDef, false
	}
	return GlyphID(idx), true
}

// GlyphAdvance implements Face.GlyphAdvance.
func (f *ximageFace) GlyphAdvance(gid GlyphID, ppem float64) float64 {
	if ppem > f.maxPPEM {
		return 0
	}
	var buf sfnt.Buffer
	advance, err := f.font.GlyphAdvance(&buf, sfnt.GlyphIndex(gid), toFixed(ppem), font.HintingNone)
	if err != nil {
		return 0
	}
	return fromFixed(advance)
}

// Metrics implements Face.Metrics.
// x/image reports Descent as a positive distance; it is negated here.
func (f *ximageFace) Metrics(ppem float64) Metrics {
	if ppem > f.maxPPEM {
		return Metrics{}
	}
	var buf sfnt.Buffer
	m, err := f.font.Metrics(&buf, toFixed(ppem), font.HintingNone)
	if err != nil {
		return Metrics{}
	}
	ascent := fromFixed(m.Ascent)
	descent := fromFixed(m.Descent)
	return Metrics{
		Ascent:  ascent,
		Descent: -descent,
		LineGap: max(fromFixed(m.Height)-ascent-descent, 0),
	}
}

// GlyphOutline implements Face.GlyphOutline.
// sfnt already reports coordinates with Y pointing down.
func (f *ximageFace) GlyphOutline(gid GlyphID, ppem float64) (Outline, error) {
	if ppem > f.maxPPEM {
		return nil, fmt.Errorf("%w: %v ppem, limit %v", ErrScaleTooLarge, ppem, f.maxPPEM)
	}
	var buf sfnt.Buffer
	segments, err := f.font.LoadGlyph(&buf, sfnt.GlyphIndex(gid), toFixed(ppem), nil)
	if err != nil {
		if err == sfnt.ErrColoredGlyph {
			return nil, ErrNoOutline
		}
		return nil, err
	}

	outline := make(Outline, 0, len(segments))
	for _, seg := range segments {
		var out Segment
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			out.Op = SegmentMoveTo
		case sfnt.SegmentOpLineTo:
			out.Op = SegmentLineTo
		case sfnt.SegmentOpQuadTo:
			out.Op = SegmentQuadTo
		case sfnt.SegmentOpCubeTo:
			out.Op = SegmentCubeTo
		}
		for i := range out.Op.pointCount() {
			out.Points[i] = fixedPoint(seg.Args[i])
		}
		outline = append(outline, out)
	}
	return outline, nil
}

// toFixed converts a pixel size to fixed.Int26_6.
func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

// fromFixed converts fixed.Int26_6 to float64.
func fromFixed(x fixed.Int26_6) float64 {
	return float64(x) / 64.0
}

// fixedPoint converts a fixed.Point26_6 to Point.
func fixedPoint(p fixed.Point26_6) Point {
	return Point{X: float32(p.X) / 64.0, Y: float32(p.Y) / 64.0}
}
