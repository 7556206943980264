package fonts

import (
	"errors"
	"fmt"
)

// Sentinel errors for the fonts package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("fonts: empty font data")

	// ErrUnknownBackend is returned when a backend name is not registered.
	ErrUnknownBackend = errors.New("fonts: unknown backend")

	// ErrNoOutline is returned when a glyph has no vector outline
	// (bitmap or color glyphs).
	ErrNoOutline = errors.New("fonts: glyph has no outline")

	// ErrScaleTooLarge is returned when a face cannot load glyphs at the
	// requested size.
	ErrScaleTooLarge = errors.New("fonts: scale too large")

	// ErrGlyphTooLarge is returned by RasterizeLimit for glyphs larger than
	// the limit.
	ErrGlyphTooLarge = errors.New("fonts: glyph too large")
)

// GlyphSizeError reports a glyph whose bitmap would exceed a size limit.
// It is returned before any pixel memory is allocated.
type GlyphSizeError struct {
	Glyph         GlyphID
	Width, Height int
	Limit         int
}

func (e *GlyphSizeError) Error() string {
	return fmt.Sprintf("fonts: glyph %d is %dx%d, limit %d", e.Glyph, e.Width, e.Height, e.Limit)
}

// Unwrap returns ErrGlyphTooLarge.
func (e *GlyphSizeError) Unwrap() error { return ErrGlyphTooLarge }
