package glyphbrush

import (
	"slices"
	"testing"

	"github.com/gogpu/glyphbrush/atlas"
	"github.com/gogpu/glyphbrush/layout"
)

func TestQuadIndices(t *testing.T) {
	got := QuadIndices(2)
	want := []uint32{0, 1, 2, 0, 2, 3, 4, 5, 6, 4, 6, 7}
	if !slices.Equal(got, want) {
		t.Errorf("QuadIndices(2) = %v, want %v", got, want)
	}
	if len(QuadIndices(0)) != 0 {
		t.Error("QuadIndices(0) should be empty")
	}
}

func TestAppendQuad(t *testing.T) {
	g := layout.PositionedGlyph{X: 10.4, Y: 20.6}
	r := atlas.Region{
		U0: 0.25, V0: 0.5, U1: 0.75, V1: 1,
		Width: 4, Height: 6,
		BearingX: 1, BearingY: -5,
	}

	got := appendQuad(nil, g, r)
	want := []Vertex{
		{X: 11, Y: 16, U: 0.25, V: 0.5},
		{X: 15, Y: 16, U: 0.75, V: 0.5},
		{X: 15, Y: 22, U: 0.75, V: 1},
		{X: 11, Y: 22, U: 0.25, V: 1},
	}
	if !slices.Equal(got, want) {
		t.Errorf("appendQuad = %+v, want %+v", got, want)
	}
}

func TestSnap(t *testing.T) {
	tests := []struct{ in, want float32 }{
		{0, 0},
		{1.49, 1},
		{1.5, 2},
		{-0.4, 0},
		{-1.6, -2},
	}
	for _, tt := range tests {
		if got := snap(tt.in); got != tt.want {
			t.Errorf("snap(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
