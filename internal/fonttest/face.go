// Package fonttest provides a synthetic fonts.Face with exact metrics for
// tests that must not depend on a real font file.
package fonttest

import (
	"errors"
	"slices"
	"sync/atomic"

	"github.com/gogpu/glyphbrush/fonts"
)

// ErrBroken is returned by GlyphOutline for glyphs listed in Face.Broken.
var ErrBroken = errors.New("fonttest: broken glyph")

// Face is a fonts.Face whose glyphs are filled boxes.
//
// Advances are given in pixels at Scale pixels per em and scale linearly
// with ppem. Runes map to glyph ids in the order of Runes starting at 1;
// any other rune maps to .notdef.
type Face struct {
	FamilyName string

	// Runes lists the mapped runes. Glyph i+1 is Runes[i].
	Runes []rune

	// Advances holds per-rune advances at Scale; missing runes use DefaultAdvance.
	Advances       map[rune]float64
	DefaultAdvance float64

	// Scale is the ppem at which Advances, Ascent and Descent are expressed.
	Scale float64

	Ascent  float64
	Descent float64 // negative

	// Ink lists runes drawn with a filled box; other runes have no ink.
	// A nil Ink means every mapped rune and .notdef has ink.
	Ink map[rune]bool

	// Broken lists glyph ids whose outline fails to load.
	Broken map[fonts.GlyphID]bool

	outlines atomic.Int64
}

// New returns a face mapping runes with the given advances at scale.
func New(scale float64, advances map[rune]float64) *Face {
	f := &Face{
		FamilyName:     "Test",
		Advances:       advances,
		DefaultAdvance: scale / 2,
		Scale:          scale,
		Ascent:         scale * 0.8,
		Descent:        -scale * 0.2,
	}
	for r := range advances {
		f.Runes = append(f.Runes, r)
	}
	slices.Sort(f.Runes)
	return f
}

// Name implements fonts.Face.
func (f *Face) Name() string { return f.FamilyName }

// GlyphIndex implements fonts.Face.
func (f *Face) GlyphIndex(r rune) (fonts.GlyphID, bool) {
	for i, fr := range f.Runes {
		if fr == r {
			return fonts.GlyphID(i + 1), true //nolint:gosec // test fonts are tiny
		}
	}
	return fonts.NotDef, false
}

// GlyphAdvance implements fonts.Face.
func (f *Face) GlyphAdvance(gid fonts.GlyphID, ppem float64) float64 {
	adv := f.DefaultAdvance
	if r, ok := f.runeOf(gid); ok {
		if a, ok := f.Advances[r]; ok {
			adv = a
		}
	}
	return adv * ppem / f.Scale
}

// Metrics implements fonts.Face.
func (f *Face) Metrics(ppem float64) fonts.Metrics {
	k := ppem / f.Scale
	return fonts.Metrics{Ascent: f.Ascent * k, Descent: f.Descent * k}
}

// GlyphOutline implements fonts.Face. Inked glyphs are a box spanning the
// advance horizontally and the ascent vertically.
func (f *Face) GlyphOutline(gid fonts.GlyphID, ppem float64) (fonts.Outline, error) {
	f.outlines.Add(1)
	if f.Broken[gid] {
		return nil, ErrBroken
	}
	if r, ok := f.runeOf(gid); f.Ink != nil && (!ok || !f.Ink[r]) {
		return nil, nil
	}
	w := float32(max(f.GlyphAdvance(gid, ppem)-1, 1))
	h := float32(f.Ascent * ppem / f.Scale)
	return fonts.Outline{
		{Op: fonts.SegmentMoveTo, Points: [3]fonts.Point{{X: 0, Y: -h}}},
		{Op: fonts.SegmentLineTo, Points: [3]fonts.Point{{X: w, Y: -h}}},
		{Op: fonts.SegmentLineTo, Points: [3]fonts.Point{{X: w, Y: 0}}},
		{Op: fonts.SegmentLineTo, Points: [3]fonts.Point{{X: 0, Y: 0}}},
	}, nil
}

// OutlineCalls returns how many times GlyphOutline was called.
func (f *Face) OutlineCalls() int {
	return int(f.outlines.Load())
}

// runeOf returns the rune mapped to gid.
func (f *Face) runeOf(gid fonts.GlyphID) (rune, bool) {
	i := int(gid) - 1
	if i < 0 || i >= len(f.Runes) {
		return 0, false
	}
	return f.Runes[i], true
}

// Table is a fonts.Table over a fixed slice of faces.
type Table []fonts.Face

// Face implements fonts.Table.
func (t Table) Face(id fonts.ID) (fonts.Face, bool) {
	if int(id) >= len(t) {
		return nil, false
	}
	return t[id], true
}
