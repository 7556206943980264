package glyphbrush

import "github.com/gogpu/glyphbrush/fonts"

// Assets resolves externally owned font handles to faces.
// *fonts.Library implements Assets[string].
type Assets[H comparable] interface {
	Resolve(handle H) (fonts.Face, bool)
}

// AssetsFunc adapts a function to the Assets interface.
type AssetsFunc[H comparable] func(handle H) (fonts.Face, bool)

// Resolve implements Assets.
func (f AssetsFunc[H]) Resolve(handle H) (fonts.Face, bool) { return f(handle) }
