// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/glyphbrush/atlas"
)

// Storage errors.
var (
	// ErrNilDevice is returned when a storage is created without a device or queue.
	ErrNilDevice = errors.New("gpu: nil device or queue")

	// ErrNoHALAccess is returned when a provider does not expose HAL types.
	ErrNoHALAccess = errors.New("gpu: provider does not expose HAL types")

	// ErrUnknownTexture is returned for handles the storage did not allocate.
	ErrUnknownTexture = errors.New("gpu: unknown texture")

	// ErrStorageClosed is returned after Destroy.
	ErrStorageClosed = errors.New("gpu: storage destroyed")
)

// AtlasFormat is the texture format of atlas textures: one 8-bit
// coverage channel.
const AtlasFormat = gputypes.TextureFormatR8Unorm

// atlasTexture is a GPU texture with its default view.
type atlasTexture struct {
	tex           hal.Texture
	view          hal.TextureView
	width, height uint32
}

// Storage is an atlas.TextureStorage backed by GPU textures.
//
// Resize recreates the texture; its previous content is lost. The atlas
// cache re-uploads its full CPU copy after every resize.
//
// Storage is safe for concurrent use.
type Storage struct {
	mu     sync.Mutex
	device hal.Device
	queue  hal.Queue

	textures map[atlas.TextureHandle]*atlasTexture
	next     atlas.TextureHandle
	closed   bool
}

// NewStorage creates a storage that allocates textures on device and
// uploads through queue.
func NewStorage(device hal.Device, queue hal.Queue) (*Storage, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	return &Storage{
		device:   device,
		queue:    queue,
		textures: make(map[atlas.TextureHandle]*atlasTexture),
	}, nil
}

// NewStorageFromProvider creates a storage on the device of a shared GPU
// context. The provider must also implement HalDevice() any and
// HalQueue() any returning hal.Device and hal.Queue.
func NewStorageFromProvider(provider gpucontext.DeviceProvider) (*Storage, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHALAccess
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHALAccess)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHALAccess)
	}
	return NewStorage(device, queue)
}

// Allocate implements atlas.TextureStorage.
func (s *Storage) Allocate(width, height int) (atlas.TextureHandle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrStorageClosed
	}
	s.next++
	t, err := s.createTexture(s.next, width, height)
	if err != nil {
		return 0, err
	}
	s.textures[s.next] = t
	slogger().Info("gpu: atlas texture created", "handle", s.next, "width", width, "height", height)
	return s.next, nil
}

// UploadRegion implements atlas.TextureStorage.
func (s *Storage) UploadRegion(h atlas.TextureHandle, rect image.Rectangle, pixels []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.lookup(h)
	if err != nil {
		return err
	}
	if rect.Empty() {
		return nil
	}
	if rect.Min.X < 0 || rect.Min.Y < 0 || uint32(rect.Max.X) > t.width || uint32(rect.Max.Y) > t.height { //nolint:gosec // checked non-negative
		return fmt.Errorf("gpu: upload %v outside texture %dx%d", rect, t.width, t.height)
	}
	if len(pixels) != rect.Dx()*rect.Dy() {
		return fmt.Errorf("gpu: upload %v needs %d bytes, got %d", rect, rect.Dx()*rect.Dy(), len(pixels))
	}

	w, hgt := uint32(rect.Dx()), uint32(rect.Dy()) //nolint:gosec // rect is inside the texture
	s.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  t.tex,
			MipLevel: 0,
			Origin:   hal.Origin3D{X: uint32(rect.Min.X), Y: uint32(rect.Min.Y), Z: 0}, //nolint:gosec // checked non-negative
		},
		pixels,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  w,
			RowsPerImage: hgt,
		},
		&hal.Extent3D{Width: w, Height: hgt, DepthOrArrayLayers: 1},
	)
	return nil
}

// Resize implements atlas.TextureStorage. The texture is recreated at the
// new size and its content is undefined until the next upload.
func (s *Storage) Resize(h atlas.TextureHandle, width, height int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, err := s.lookup(h)
	if err != nil {
		return err
	}
	t, err := s.createTexture(h, width, height)
	if err != nil {
		return err
	}
	s.destroyTexture(old)
	s.textures[h] = t
	slogger().Debug("gpu: atlas texture resized", "handle", h, "width", width, "height", height)
	return nil
}

// View returns the texture view to bind for texture h. The view changes
// after every resize.
func (s *Storage) View(h atlas.TextureHandle) (hal.TextureView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.textures[h]
	if !ok {
		return nil, false
	}
	return t.view, true
}

// Size returns the size of texture h.
func (s *Storage) Size(h atlas.TextureHandle) (width, height int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.textures[h]
	if !ok {
		return 0, 0, false
	}
	return int(t.width), int(t.height), true
}

// Destroy releases every texture. Safe to call multiple times.
func (s *Storage) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for h, t := range s.textures {
		s.destroyTexture(t)
		delete(s.textures, h)
	}
	s.closed = true
}

// lookup returns texture h. Caller must hold s.mu.
func (s *Storage) lookup(h atlas.TextureHandle) (*atlasTexture, error) {
	if s.closed {
		return nil, ErrStorageClosed
	}
	t, ok := s.textures[h]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTexture, h)
	}
	return t, nil
}

// createTexture creates an atlas texture and its view.
func (s *Storage) createTexture(h atlas.TextureHandle, width, height int) (*atlasTexture, error) {
	if width <= 0 || height <= 0 || width > atlas.MaxTextureSize || height > atlas.MaxTextureSize {
		return nil, fmt.Errorf("gpu: invalid texture size %dx%d", width, height)
	}
	w, hgt := uint32(width), uint32(height) //nolint:gosec // bounded by MaxTextureSize

	tex, err := s.device.CreateTexture(&hal.TextureDescriptor{
		Label:         fmt.Sprintf("glyph_atlas_%d", h),
		Size:          hal.Extent3D{Width: w, Height: hgt, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        AtlasFormat,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create atlas texture: %w", err)
	}

	view, err := s.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         fmt.Sprintf("glyph_atlas_%d_view", h),
		Format:        AtlasFormat,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		s.device.DestroyTexture(tex)
		return nil, fmt.Errorf("gpu: create atlas texture view: %w", err)
	}
	return &atlasTexture{tex: tex, view: view, width: w, height: hgt}, nil
}

// destroyTexture releases t.
func (s *Storage) destroyTexture(t *atlasTexture) {
	if t.view != nil {
		s.device.DestroyTextureView(t.view)
	}
	if t.tex != nil {
		s.device.DestroyTexture(t.tex)
	}
}
