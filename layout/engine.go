package layout

import (
	"math"
	"strings"
	"unicode"

	"github.com/gogpu/glyphbrush/fonts"
	"golang.org/x/text/unicode/norm"
)

// Engine lays out sections. The zero value lays every paragraph out on a
// single line without normalization.
//
// Engine holds no state between calls and is safe for concurrent use as
// long as the font table is.
type Engine struct {
	// Wrap selects the line breaking policy used when Bounds.Width > 0.
	Wrap WrapMode

	// Normalize applies Unicode NFC to the text before layout so that
	// precomposed and decomposed input map to the same glyphs.
	Normalize bool
}

// MaxScale is the largest pixels-per-em value layout accepts. It matches
// the largest atlas texture side.
const MaxScale = 16384

// ValidScale reports whether scale is a finite positive pixels-per-em value
// no larger than MaxScale.
func ValidScale(scale float64) bool {
	return scale > 0 && !math.IsInf(scale, 0) && scale <= MaxScale
}

// cell is a shaped rune awaiting placement.
type cell struct {
	r     rune
	glyph fonts.GlyphID
	adv   float64
}

// Layout returns the glyphs of s in logical order. Unknown fonts and
// invalid scales produce no glyphs.
func (e Engine) Layout(table fonts.Table, s Section) []PositionedGlyph {
	return e.AppendLayout(nil, table, s)
}

// AppendLayout appends the glyphs of s to dst and returns the extended slice.
func (e Engine) AppendLayout(dst []PositionedGlyph, table fonts.Table, s Section) []PositionedGlyph {
	face, ok := table.Face(s.Font)
	if !ok || !ValidScale(s.Scale) || s.Text == "" {
		return dst
	}

	text := s.Text
	if e.Normalize {
		text = norm.NFC.String(text)
	}

	mode := e.Wrap
	if s.Bounds.Width <= 0 {
		mode = NoWrap
	}

	var lines [][]cell
	for para := range strings.SplitSeq(text, "\n") {
		lines = append(lines, breakLines(shape(face, para, s.Scale), s.Bounds.Width, mode)...)
	}

	m := face.Metrics(s.Scale)
	y := s.Origin.Y + m.Ascent
	for i, line := range lines {
		if i > 0 {
			y += m.Height()
			if s.Bounds.Height > 0 && y-m.Descent-s.Origin.Y > s.Bounds.Height {
				break
			}
		}
		x := s.Origin.X
		for _, c := range line {
			dst = append(dst, PositionedGlyph{
				Glyph:   c.glyph,
				Font:    s.Font,
				Scale:   s.Scale,
				X:       x,
				Y:       y,
				Advance: c.adv,
				Rune:    c.r,
			})
			x += c.adv
		}
	}
	return dst
}

// Measure returns the size of the laid out section relative to its origin:
// the rightmost pen position plus advance, and the lowest baseline plus
// descent. Empty text measures (0, 0).
func (e Engine) Measure(table fonts.Table, s Section) (width, height float64) {
	glyphs := e.Layout(table, s)
	if len(glyphs) == 0 {
		return 0, 0
	}
	face, _ := table.Face(s.Font)
	descent := face.Metrics(s.Scale).Descent

	for _, g := range glyphs {
		width = max(width, g.X+g.Advance-s.Origin.X)
		height = max(height, g.Y-descent-s.Origin.Y)
	}
	return width, height
}

// LineHeight returns the distance between consecutive baselines for the
// font at scale, or 0 if the font is unknown.
func (e Engine) LineHeight(table fonts.Table, id fonts.ID, scale float64) float64 {
	face, ok := table.Face(id)
	if !ok || !ValidScale(scale) {
		return 0
	}
	return face.Metrics(scale).Height()
}

// shape maps each rune of para to a glyph and its advance. Carriage
// returns are dropped.
func shape(face fonts.Face, para string, scale float64) []cell {
	cells := make([]cell, 0, len(para))
	for _, r := range para {
		if r == '\r' {
			continue
		}
		gid, _ := face.GlyphIndex(r)
		cells = append(cells, cell{r: r, glyph: gid, adv: face.GlyphAdvance(gid, scale)})
	}
	return cells
}

// breakLines splits a paragraph into lines no wider than maxWidth where
// mode allows. Whitespace at a wrap point is dropped. An empty paragraph
// still yields one empty line.
func breakLines(cells []cell, maxWidth float64, mode WrapMode) [][]cell {
	if mode == NoWrap || len(cells) == 0 {
		return [][]cell{cells}
	}

	var lines [][]cell
	start := 0
	for start < len(cells) {
		end := lineEnd(cells, start, maxWidth, mode)
		next := end
		for end < len(cells) && end > start && unicode.IsSpace(cells[end-1].r) {
			end--
		}
		lines = append(lines, cells[start:end])

		start = next
		for start < len(cells) && unicode.IsSpace(cells[start].r) {
			start++
		}
	}
	return lines
}

// lineEnd returns the index one past the last cell of the line starting
// at start.
func lineEnd(cells []cell, start int, maxWidth float64, mode WrapMode) int {
	var width float64
	lastBreak := -1

	for i := start; i < len(cells); i++ {
		if i > start && canBreakBefore(cells[i-1].r, cells[i].r, mode) {
			lastBreak = i
		}
		width += cells[i].adv

		// Trailing whitespace may hang past the edge.
		if width > maxWidth && i > start && !unicode.IsSpace(cells[i].r) {
			if lastBreak > start {
				return lastBreak
			}
			return i
		}
	}
	return len(cells)
}
