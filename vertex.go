package glyphbrush

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/glyphbrush/atlas"
	"github.com/gogpu/glyphbrush/layout"
)

// VertexSize is the size of a Vertex in bytes.
const VertexSize = 16

// Vertex is one corner of a glyph quad: a position in layout space and
// its atlas texture coordinate.
type Vertex struct {
	X, Y float32
	U, V float32
}

// VerticesPerQuad is the number of vertices emitted per glyph, in the order
// top-left, top-right, bottom-right, bottom-left.
const VerticesPerQuad = 4

// QuadIndices returns a triangle list index buffer for n quads, two
// triangles per quad.
func QuadIndices(n int) []uint32 {
	indices := make([]uint32, 0, n*6)
	for i := range n {
		base := uint32(i * VerticesPerQuad) //nolint:gosec // quad counts stay far below 2^30
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return indices
}

// appendQuad appends the quad of g drawn with region r. The pen position
// is snapped to whole pixels so bitmaps map one texel per pixel.
func appendQuad(dst []Vertex, g layout.PositionedGlyph, r atlas.Region) []Vertex {
	x0 := snap(float32(g.X)) + float32(r.BearingX)
	y0 := snap(float32(g.Y)) + float32(r.BearingY)
	x1 := x0 + float32(r.Width)
	y1 := y0 + float32(r.Height)

	return append(dst,
		Vertex{X: x0, Y: y0, U: r.U0, V: r.V0},
		Vertex{X: x1, Y: y0, U: r.U1, V: r.V0},
		Vertex{X: x1, Y: y1, U: r.U1, V: r.V1},
		Vertex{X: x0, Y: y1, U: r.U0, V: r.V1},
	)
}

// snap rounds v to the nearest pixel, halves rounding up.
func snap(v float32) float32 {
	return math32.Floor(v + 0.5)
}
