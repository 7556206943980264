package atlas

import (
	"errors"
	"fmt"
)

// ErrAtlasOverflow is returned when glyphs cannot be packed even at the
// maximum atlas size.
var ErrAtlasOverflow = errors.New("atlas: overflow")

// ErrUnknownTexture is returned by MemoryStorage for handles it did not allocate.
var ErrUnknownTexture = errors.New("atlas: unknown texture")

// OverflowError describes the glyph that did not fit.
type OverflowError struct {
	Key Key

	// Width and Height are the glyph bitmap size.
	Width, Height int

	// MaxSize is the atlas side limit that was reached.
	MaxSize int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("atlas: overflow: glyph %d of font %d (%dx%d) does not fit in %dx%d",
		e.Key.Glyph, e.Key.Font, e.Width, e.Height, e.MaxSize, e.MaxSize)
}

// Unwrap returns ErrAtlasOverflow.
func (e *OverflowError) Unwrap() error { return ErrAtlasOverflow }
