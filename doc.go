// Package glyphbrush lays out text and caches rasterized glyphs in a
// texture atlas for GPU rendering.
//
// # Overview
//
// An interactive renderer redraws many text elements every frame, but
// usually only a few of them change. glyphbrush keeps the cost of a frame
// proportional to the text that changed: glyphs are rasterized once into a
// shared atlas, and a frame in which nothing changed is answered with a
// Redraw action instead of a new vertex buffer.
//
// # Quick Start
//
//	lib := fonts.NewLibrary()
//	if err := lib.Load("regular", goregular.TTF); err != nil {
//	    log.Fatal(err)
//	}
//	brush, err := glyphbrush.New[string](lib)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Every frame:
//	brush.QueueText("regular", "Hello, GoGPU!", 24, layout.Bounds{}, layout.Point{X: 10, Y: 10})
//	action, err := brush.DrawQueued()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if action.Kind == glyphbrush.ActionDraw {
//	    vertices = action.Vertices // replace the retained buffer
//	}
//	// draw vertices with the texture from brush.AtlasTexture() bound
//
// # Architecture
//
// The library is organized into:
//   - fonts: font faces, parsing backends, rasterization, the font registry
//   - layout: the layout engine and wrap policies
//   - atlas: the glyph atlas cache and texture storage
//   - gpu: WebGPU texture storage, vertex layout and the text shader
//   - glyphbrush: the pipeline tying them together
//
// # Errors
//
// QueueText and Measure fail per section with ErrNoSuchFont or
// ErrInvalidScale; other sections of the frame are unaffected. DrawQueued
// fails with ErrAtlasOverflow when the glyphs of a frame cannot fit in the
// atlas even at its maximum size; the atlas is then left unchanged.
package glyphbrush
