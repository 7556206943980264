package atlas

import (
	"fmt"
	"image"
	"sync"

	"golang.org/x/image/draw"
)

// TextureHandle identifies a texture owned by a TextureStorage.
type TextureHandle uint64

// TextureStorage owns the memory behind the atlas texture. The cache owns
// packing decisions; storage only allocates, uploads and resizes.
//
// Textures hold one 8-bit coverage channel. Pixel data passed to
// UploadRegion is tightly packed, rect.Dx() bytes per row.
type TextureStorage interface {
	Allocate(width, height int) (TextureHandle, error)
	UploadRegion(h TextureHandle, rect image.Rectangle, pixels []byte) error
	Resize(h TextureHandle, width, height int) error
}

// MemoryStorage is a TextureStorage backed by *image.Alpha values.
// Resize preserves existing content in the top-left corner.
//
// MemoryStorage is safe for concurrent use.
type MemoryStorage struct {
	mu       sync.Mutex
	textures map[TextureHandle]*image.Alpha
	next     TextureHandle
}

// NewMemoryStorage creates an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{textures: make(map[TextureHandle]*image.Alpha)}
}

// Allocate implements TextureStorage.
func (s *MemoryStorage) Allocate(width, height int) (TextureHandle, error) {
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("atlas: invalid texture size %dx%d", width, height)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	s.textures[s.next] = image.NewAlpha(image.Rect(0, 0, width, height))
	return s.next, nil
}

// UploadRegion implements TextureStorage.
func (s *MemoryStorage) UploadRegion(h TextureHandle, rect image.Rectangle, pixels []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	img, ok := s.textures[h]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownTexture, h)
	}
	if !rect.In(img.Rect) {
		return fmt.Errorf("atlas: upload %v outside texture %v", rect, img.Rect)
	}
	if len(pixels) != rect.Dx()*rect.Dy() {
		return fmt.Errorf("atlas: upload %v needs %d bytes, got %d", rect, rect.Dx()*rect.Dy(), len(pixels))
	}

	src := &image.Alpha{Pix: pixels, Stride: rect.Dx(), Rect: image.Rect(0, 0, rect.Dx(), rect.Dy())}
	draw.Copy(img, rect.Min, src, src.Rect, draw.Src, nil)
	return nil
}

// Resize implements TextureStorage.
func (s *MemoryStorage) Resize(h TextureHandle, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("atlas: invalid texture size %dx%d", width, height)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.textures[h]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownTexture, h)
	}
	img := image.NewAlpha(image.Rect(0, 0, width, height))
	draw.Copy(img, image.Point{}, old, old.Rect, draw.Src, nil)
	s.textures[h] = img
	return nil
}

// Image returns the current pixels of texture h.
func (s *MemoryStorage) Image(h TextureHandle) (*image.Alpha, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	img, ok := s.textures[h]
	return img, ok
}
