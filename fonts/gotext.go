package fonts

import (
	"bytes"
	"sync"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype"
)

// gotextFace implements Face using github.com/go-text/typesetting.
//
// font.Face is not safe for concurrent use, so calls are serialized.
// go-text works in font units with Y pointing up; values are scaled by
// ppem/upem and Y is flipped to match the rest of glyphbrush.
type gotextFace struct {
	mu   sync.Mutex
	face *font.Face
	upem float64
	name string
}

// parseGoText is the "gotext" backend.
func parseGoText(data []byte) (Face, error) {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	upem := float64(face.Upem())
	if upem == 0 {
		upem = 1000
	}
	return &gotextFace{
		face: face,
		upem: upem,
		name: face.Describe().Family,
	}, nil
}

// Name implements Face.Name.
func (f *gotextFace) Name() string {
	return f.name
}

// GlyphIndex implements Face.GlyphIndex.
func (f *gotextFace) GlyphIndex(r rune) (GlyphID, bool) {
	f.mu.Lock()
	gid, ok := f.face.NominalGlyph(r)
	f.mu.Unlock()
	if !ok || gid == 0 {
		return NotDef, false
	}
	return GlyphID(gid), true //nolint:gosec // glyph counts fit in uint16 for sfnt fonts
}

// GlyphAdvance implements Face.GlyphAdvance.
func (f *gotextFace) GlyphAdvance(gid GlyphID, ppem float64) float64 {
	f.mu.Lock()
	adv := f.face.HorizontalAdvance(font.GID(gid))
	f.mu.Unlock()
	return float64(adv) * ppem / f.upem
}

// Metrics implements Face.Metrics.
func (f *gotextFace) Metrics(ppem float64) Metrics {
	f.mu.Lock()
	ext, ok := f.face.FontHExtents()
	f.mu.Unlock()
	if !ok {
		return Metrics{}
	}
	scale := ppem / f.upem
	return Metrics{
		Ascent:  float64(ext.Ascender) * scale,
		Descent: float64(ext.Descender) * scale,
		LineGap: max(float64(ext.LineGap)*scale, 0),
	}
}

// GlyphOutline implements Face.GlyphOutline.
func (f *gotextFace) GlyphOutline(gid GlyphID, ppem float64) (Outline, error) {
	f.mu.Lock()
	data := f.face.GlyphData(font.GID(gid))
	f.mu.Unlock()

	glyph, ok := data.(font.GlyphOutline)
	if !ok {
		return nil, ErrNoOutline
	}

	scale := float32(ppem / f.upem)
	outline := make(Outline, 0, len(glyph.Segments))
	for _, seg := range glyph.Segments {
		var out Segment
		switch seg.Op {
		case opentype.SegmentOpMoveTo:
			out.Op = SegmentMoveTo
		case opentype.SegmentOpLineTo:
			out.Op = SegmentLineTo
		case opentype.SegmentOpQuadTo:
			out.Op = SegmentQuadTo
		case opentype.SegmentOpCubeTo:
			out.Op = SegmentCubeTo
		}
		for i := range out.Op.pointCount() {
			out.Points[i] = Point{X: seg.Args[i].X * scale, Y: -seg.Args[i].Y * scale}
		}
		outline = append(outline, out)
	}
	return outline, nil
}
