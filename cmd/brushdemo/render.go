package main

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/gogpu/glyphbrush"
)

func fill(dst draw.Image, c color.Color) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// composite draws every quad of vertices onto dst, using the atlas as a
// coverage mask for color c. Quads are axis aligned and unscaled, so each
// one is a straight mask copy.
func composite(dst draw.Image, atlas *image.Alpha, vertices []glyphbrush.Vertex, c color.Color) {
	src := image.NewUniform(c)
	aw, ah := float32(atlas.Bounds().Dx()), float32(atlas.Bounds().Dy())
	for i := 0; i+glyphbrush.VerticesPerQuad <= len(vertices); i += glyphbrush.VerticesPerQuad {
		tl, br := vertices[i], vertices[i+2]
		r := image.Rect(int(tl.X), int(tl.Y), int(br.X), int(br.Y))
		mp := image.Pt(int(tl.U*aw+0.5), int(tl.V*ah+0.5))
		draw.DrawMask(dst, r, src, image.Point{}, atlas, mp, draw.Over)
	}
}
