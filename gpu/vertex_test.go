// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/gogpu/glyphbrush"
)

func TestVertexBufferLayout(t *testing.T) {
	layouts := VertexBufferLayout()
	if len(layouts) != 1 {
		t.Fatalf("layouts = %d, want 1", len(layouts))
	}
	l := layouts[0]
	if l.ArrayStride != glyphbrush.VertexSize {
		t.Errorf("ArrayStride = %d, want %d", l.ArrayStride, glyphbrush.VertexSize)
	}
	if len(l.Attributes) != 2 || l.Attributes[1].Offset != 8 || l.Attributes[1].ShaderLocation != 1 {
		t.Errorf("unexpected attributes %+v", l.Attributes)
	}
}

func TestVertexData(t *testing.T) {
	data := VertexData([]glyphbrush.Vertex{{X: 1, Y: 2, U: 0.25, V: 0.5}, {X: -3}})
	if len(data) != 2*glyphbrush.VertexSize {
		t.Fatalf("len = %d, want %d", len(data), 2*glyphbrush.VertexSize)
	}
	want := []float32{1, 2, 0.25, 0.5, -3, 0, 0, 0}
	for i, w := range want {
		got := math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
		if got != w {
			t.Errorf("float %d = %v, want %v", i, got, w)
		}
	}
}

func TestIndexData(t *testing.T) {
	data := IndexData(2)
	want := []uint32{0, 1, 2, 0, 2, 3, 4, 5, 6, 4, 6, 7}
	if len(data) != len(want)*4 {
		t.Fatalf("len = %d, want %d", len(data), len(want)*4)
	}
	for i, w := range want {
		if got := binary.LittleEndian.Uint32(data[i*4:]); got != w {
			t.Errorf("index %d = %d, want %d", i, got, w)
		}
	}
}

func quads(n int) []glyphbrush.Vertex {
	return make([]glyphbrush.Vertex, n*glyphbrush.VerticesPerQuad)
}

func TestVertexBuffer_DrawAndRedraw(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	b, err := NewVertexBuffer(device, queue)
	if err != nil {
		t.Fatalf("NewVertexBuffer failed: %v", err)
	}
	defer b.Destroy()

	if v, i := b.Buffers(); v != nil || i != nil {
		t.Error("buffers allocated before first draw")
	}

	if err := b.Apply(glyphbrush.BrushAction{Kind: glyphbrush.ActionDraw, Vertices: quads(3)}); err != nil {
		t.Fatalf("Apply(Draw) failed: %v", err)
	}
	if b.Quads() != 3 || b.IndexCount() != 18 || b.Uploads() != 1 {
		t.Errorf("after draw: quads=%d indices=%d uploads=%d", b.Quads(), b.IndexCount(), b.Uploads())
	}
	v, i := b.Buffers()
	if v == nil || i == nil {
		t.Fatal("buffers not allocated")
	}

	if err := b.Apply(glyphbrush.BrushAction{Kind: glyphbrush.ActionRedraw}); err != nil {
		t.Fatalf("Apply(Redraw) failed: %v", err)
	}
	if b.Quads() != 3 || b.Uploads() != 1 {
		t.Errorf("redraw changed buffer: quads=%d uploads=%d", b.Quads(), b.Uploads())
	}

	if err := b.Apply(glyphbrush.BrushAction{Kind: glyphbrush.ActionDraw}); err != nil {
		t.Fatalf("Apply(empty Draw) failed: %v", err)
	}
	if b.Quads() != 0 || b.IndexCount() != 0 {
		t.Errorf("empty draw: quads=%d indices=%d", b.Quads(), b.IndexCount())
	}
}

func TestVertexBuffer_Grow(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	b, err := NewVertexBuffer(device, queue)
	if err != nil {
		t.Fatalf("NewVertexBuffer failed: %v", err)
	}
	defer b.Destroy()

	if err := b.Apply(glyphbrush.BrushAction{Kind: glyphbrush.ActionDraw, Vertices: quads(10)}); err != nil {
		t.Fatal(err)
	}

	if err := b.Apply(glyphbrush.BrushAction{Kind: glyphbrush.ActionDraw, Vertices: quads(minQuadCapacity + 1)}); err != nil {
		t.Fatal(err)
	}
	if b.capacity != 2*minQuadCapacity {
		t.Errorf("capacity = %d, want %d", b.capacity, 2*minQuadCapacity)
	}
	if b.Quads() != minQuadCapacity+1 {
		t.Errorf("quads = %d, want %d", b.Quads(), minQuadCapacity+1)
	}
}

func TestVertexBuffer_Destroyed(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	if _, err := NewVertexBuffer(nil, queue); !errors.Is(err, ErrNilDevice) {
		t.Errorf("nil device error = %v, want ErrNilDevice", err)
	}

	b, err := NewVertexBuffer(device, queue)
	if err != nil {
		t.Fatal(err)
	}
	b.Destroy()
	b.Destroy()
	if err := b.Apply(glyphbrush.BrushAction{Kind: glyphbrush.ActionDraw}); !errors.Is(err, ErrBufferDestroyed) {
		t.Errorf("Apply after Destroy error = %v, want ErrBufferDestroyed", err)
	}
}
