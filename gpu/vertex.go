// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/glyphbrush"
)

// ErrBufferDestroyed is returned by a VertexBuffer after Destroy.
var ErrBufferDestroyed = errors.New("gpu: vertex buffer destroyed")

// Minimum buffer capacity in quads.
const minQuadCapacity = 64

// VertexBufferLayout returns the vertex layout of glyphbrush.Vertex:
// position at location 0 and atlas UV at location 1.
func VertexBufferLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: glyphbrush.VertexSize,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // position
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1}, // tex_coord
			},
		},
	}
}

// VertexData encodes vertices as little-endian float32 values.
func VertexData(vertices []glyphbrush.Vertex) []byte {
	buf := make([]byte, len(vertices)*glyphbrush.VertexSize)
	for i, v := range vertices {
		off := i * glyphbrush.VertexSize
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v.X))
		binary.LittleEndian.PutUint32(buf[off+4:], math.Float32bits(v.Y))
		binary.LittleEndian.PutUint32(buf[off+8:], math.Float32bits(v.U))
		binary.LittleEndian.PutUint32(buf[off+12:], math.Float32bits(v.V))
	}
	return buf
}

// IndexData encodes the uint32 index list for quads quads.
func IndexData(quads int) []byte {
	indices := glyphbrush.QuadIndices(quads)
	buf := make([]byte, len(indices)*4)
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(buf[i*4:], idx)
	}
	return buf
}

// VertexBuffer holds the vertices of the last drawn frame on the GPU.
//
// Apply uploads on ActionDraw and leaves the buffers untouched on
// ActionRedraw. Buffers grow to the next power of two quads and never
// shrink.
type VertexBuffer struct {
	device hal.Device
	queue  hal.Queue

	vertices hal.Buffer
	indices  hal.Buffer
	capacity int // in quads
	quads    int
	uploads  int
	closed   bool
}

// NewVertexBuffer creates an empty vertex buffer.
func NewVertexBuffer(device hal.Device, queue hal.Queue) (*VertexBuffer, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	return &VertexBuffer{device: device, queue: queue}, nil
}

// Apply updates the buffer for action.
func (b *VertexBuffer) Apply(action glyphbrush.BrushAction) error {
	if b.closed {
		return ErrBufferDestroyed
	}
	if action.IsRedraw() {
		return nil
	}

	quads := len(action.Vertices) / glyphbrush.VerticesPerQuad
	if quads > b.capacity {
		if err := b.grow(quads); err != nil {
			return err
		}
	}
	if quads > 0 {
		b.queue.WriteBuffer(b.vertices, 0, VertexData(action.Vertices[:quads*glyphbrush.VerticesPerQuad]))
	}
	b.quads = quads
	b.uploads++
	return nil
}

// Buffers returns the vertex and index buffers. Both are nil until the
// first non-empty draw.
func (b *VertexBuffer) Buffers() (vertices, indices hal.Buffer) {
	return b.vertices, b.indices
}

// IndexCount returns the number of indices to draw.
func (b *VertexBuffer) IndexCount() uint32 {
	return uint32(b.quads * 6) //nolint:gosec // bounded by buffer capacity
}

// Quads returns the number of quads in the buffer.
func (b *VertexBuffer) Quads() int { return b.quads }

// Uploads returns how many times Apply wrote new vertices.
func (b *VertexBuffer) Uploads() int { return b.uploads }

// Destroy releases the GPU buffers. Safe to call multiple times.
func (b *VertexBuffer) Destroy() {
	b.release()
	b.closed = true
}

// grow reallocates both buffers to hold at least quads quads.
func (b *VertexBuffer) grow(quads int) error {
	capacity := max(b.capacity, minQuadCapacity)
	for capacity < quads {
		capacity *= 2
	}

	vbuf, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "glyphbrush_vertices",
		Size:  uint64(capacity * glyphbrush.VerticesPerQuad * glyphbrush.VertexSize), //nolint:gosec // positive
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("gpu: create vertex buffer: %w", err)
	}
	ibuf, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "glyphbrush_indices",
		Size:  uint64(capacity * 6 * 4), //nolint:gosec // positive
		Usage: gputypes.BufferUsageIndex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		b.device.DestroyBuffer(vbuf)
		return fmt.Errorf("gpu: create index buffer: %w", err)
	}

	b.release()
	b.vertices, b.indices, b.capacity = vbuf, ibuf, capacity
	b.queue.WriteBuffer(b.indices, 0, IndexData(capacity))
	slogger().Debug("gpu: vertex buffer grown", "quads", capacity)
	return nil
}

func (b *VertexBuffer) release() {
	if b.vertices != nil {
		b.device.DestroyBuffer(b.vertices)
		b.vertices = nil
	}
	if b.indices != nil {
		b.device.DestroyBuffer(b.indices)
		b.indices = nil
	}
	b.capacity = 0
}
