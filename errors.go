package glyphbrush

import (
	"errors"

	"github.com/gogpu/glyphbrush/atlas"
)

// Sentinel errors. Returned errors wrap these; match them with errors.Is.
var (
	// ErrNoSuchFont is returned when a font handle does not resolve to a
	// loaded font. The section is dropped; callers may retry once the
	// asset has loaded.
	ErrNoSuchFont = errors.New("glyphbrush: no such font")

	// ErrInvalidScale is returned for a size that is not a finite
	// positive number. The section is dropped.
	ErrInvalidScale = errors.New("glyphbrush: invalid scale")

	// ErrAtlasOverflow is returned by DrawQueued when the queued glyphs do
	// not fit in the atlas at its maximum size. The draw is aborted and
	// the atlas is left as it was.
	ErrAtlasOverflow = atlas.ErrAtlasOverflow
)
