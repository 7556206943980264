package atlas

import (
	"bytes"
	"errors"
	"image"
	"testing"

	"github.com/gogpu/glyphbrush/fonts"
	"github.com/gogpu/glyphbrush/internal/fonttest"
)

// recordingStorage counts storage calls and can be told to fail.
type recordingStorage struct {
	*MemoryStorage
	uploads, resizes int
	failUpload       bool
}

func (s *recordingStorage) UploadRegion(h TextureHandle, rect image.Rectangle, pixels []byte) error {
	if s.failUpload {
		return errors.New("upload failed")
	}
	s.uploads++
	return s.MemoryStorage.UploadRegion(h, rect, pixels)
}

func (s *recordingStorage) Resize(h TextureHandle, width, height int) error {
	s.resizes++
	return s.MemoryStorage.Resize(h, width, height)
}

// newTestCache returns a 16x16 atlas and a font whose letters rasterize
// to 9x8 boxes at scale 10.
func newTestCache(t *testing.T, maxSize int) (*Cache, *recordingStorage, *fonttest.Face) {
	t.Helper()
	face := fonttest.New(10, map[rune]float64{'A': 10, 'B': 10, 'C': 10, ' ': 10})
	face.Ink = map[rune]bool{'A': true, 'B': true, 'C': true}

	storage := &recordingStorage{MemoryStorage: NewMemoryStorage()}
	c, err := NewCache(storage, Config{Width: 16, Height: 16, MaxSize: maxSize, Padding: 1, ScaleSteps: 1})
	if err != nil {
		t.Fatalf("NewCache failed: %v", err)
	}
	return c, storage, face
}

func keyOf(t *testing.T, c *Cache, face fonts.Face, r rune, scale float64) Key {
	t.Helper()
	gid, ok := face.GlyphIndex(r)
	if !ok {
		t.Fatalf("rune %q is not mapped", r)
	}
	return c.Key(0, gid, scale)
}

func TestNewCache_InvalidConfig(t *testing.T) {
	_, err := NewCache(NewMemoryStorage(), Config{})
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Errorf("NewCache(Config{}) = %v, want *ConfigError", err)
	}
}

func TestCache_Reuse(t *testing.T) {
	c, storage, face := newTestCache(t, 64)
	table := fonttest.Table{face}
	keys := []Key{keyOf(t, c, face, 'A', 10), keyOf(t, c, face, 'B', 10), keyOf(t, c, face, 'A', 10)}

	added, regions, err := c.EnsureResident(table, keys)
	if err != nil {
		t.Fatalf("EnsureResident failed: %v", err)
	}
	if !added {
		t.Error("first call should report new glyphs")
	}
	if len(regions) != 2 || c.Len() != 2 {
		t.Errorf("regions = %d, Len() = %d, want 2 and 2", len(regions), c.Len())
	}
	calls := face.OutlineCalls()

	added, again, err := c.EnsureResident(table, keys)
	if err != nil {
		t.Fatalf("EnsureResident failed: %v", err)
	}
	if added {
		t.Error("second call should not report new glyphs")
	}
	if face.OutlineCalls() != calls {
		t.Errorf("outline loaded %d more times, want 0", face.OutlineCalls()-calls)
	}
	for k, r := range regions {
		if again[k] != r {
			t.Errorf("region of %+v changed: %+v -> %+v", k, r, again[k])
		}
	}
	if storage.resizes != 0 {
		t.Errorf("resizes = %d, want 0", storage.resizes)
	}

	st := c.Stats()
	if st.Misses != 2 || st.Hits != 2 || st.Glyphs != 2 {
		t.Errorf("Stats() = %+v, want 2 misses, 2 hits, 2 glyphs", st)
	}
}

func TestCache_RegionGeometry(t *testing.T) {
	c, _, face := newTestCache(t, 64)
	k := keyOf(t, c, face, 'A', 10)

	_, regions, err := c.EnsureResident(fonttest.Table{face}, []Key{k})
	if err != nil {
		t.Fatalf("EnsureResident failed: %v", err)
	}
	r := regions[k]
	if r.Width != 9 || r.Height != 8 {
		t.Errorf("size = %dx%d, want 9x8", r.Width, r.Height)
	}
	if r.BearingX != 0 || r.BearingY != -8 {
		t.Errorf("bearing = (%v, %v), want (0, -8)", r.BearingX, r.BearingY)
	}
	if r.U0 != 0 || r.V0 != 0 || r.U1 != 9.0/16 || r.V1 != 8.0/16 {
		t.Errorf("uv = (%v, %v, %v, %v), want (0, 0, 0.5625, 0.5)", r.U0, r.V0, r.U1, r.V1)
	}
	if got, ok := c.Region(k); !ok || got != r {
		t.Errorf("Region(k) = (%+v, %v), want (%+v, true)", got, ok, r)
	}
}

func TestCache_GrowthChangesUVs(t *testing.T) {
	c, storage, face := newTestCache(t, 64)
	table := fonttest.Table{face}
	a := keyOf(t, c, face, 'A', 10)
	b := keyOf(t, c, face, 'B', 10)

	_, before, err := c.EnsureResident(table, []Key{a})
	if err != nil {
		t.Fatalf("EnsureResident failed: %v", err)
	}

	added, after, err := c.EnsureResident(table, []Key{a, b})
	if err != nil {
		t.Fatalf("EnsureResident failed: %v", err)
	}
	if !added {
		t.Error("growth should report a change")
	}
	if w, h := c.Size(); w != 32 || h != 16 {
		t.Errorf("Size() = %dx%d, want 32x16", w, h)
	}
	if storage.resizes != 1 {
		t.Errorf("resizes = %d, want 1", storage.resizes)
	}

	ra, rb := before[a], after[a]
	if ra.X != rb.X || ra.Y != rb.Y {
		t.Errorf("pixel position moved: (%d, %d) -> (%d, %d)", ra.X, ra.Y, rb.X, rb.Y)
	}
	if ra.U1 == rb.U1 {
		t.Errorf("U1 = %v after growth, want it to change", rb.U1)
	}
	if c.Stats().Grows != 1 {
		t.Errorf("Grows = %d, want 1", c.Stats().Grows)
	}

	// The texture must match the CPU copy after a full re-upload.
	img, _ := storage.Image(c.Texture())
	if !bytes.Equal(img.Pix, c.Image().Pix) {
		t.Error("texture content differs from the CPU copy after growth")
	}
}

func TestCache_OverflowIsAtomic(t *testing.T) {
	c, storage, face := newTestCache(t, 16)
	table := fonttest.Table{face}
	a := keyOf(t, c, face, 'A', 10)

	_, before, err := c.EnsureResident(table, []Key{a})
	if err != nil {
		t.Fatalf("EnsureResident failed: %v", err)
	}
	pix := bytes.Clone(c.Image().Pix)
	uploads := storage.uploads

	// B would need a grow that MaxSize forbids and C is too big for any
	// atlas; neither may be committed.
	b := keyOf(t, c, face, 'B', 10)
	big := keyOf(t, c, face, 'C', 40)
	_, regions, err := c.EnsureResident(table, []Key{a, b, big})

	var overflow *OverflowError
	if !errors.As(err, &overflow) || !errors.Is(err, ErrAtlasOverflow) {
		t.Fatalf("EnsureResident = %v, want *OverflowError", err)
	}
	if regions != nil {
		t.Error("regions should be nil on overflow")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
	if w, h := c.Size(); w != 16 || h != 16 {
		t.Errorf("Size() = %dx%d, want 16x16", w, h)
	}
	if !bytes.Equal(c.Image().Pix, pix) {
		t.Error("CPU copy changed on overflow")
	}
	if storage.uploads != uploads || storage.resizes != 0 {
		t.Errorf("storage touched on overflow: uploads %d -> %d, resizes %d", uploads, storage.uploads, storage.resizes)
	}

	added, after, err := c.EnsureResident(table, []Key{a})
	if err != nil || added || after[a] != before[a] {
		t.Errorf("after overflow EnsureResident(a) = (%v, %+v, %v), want (false, %+v, nil)", added, after[a], err, before[a])
	}
}

func TestCache_EmptyGlyphs(t *testing.T) {
	c, storage, face := newTestCache(t, 64)
	table := fonttest.Table{face}
	space := keyOf(t, c, face, ' ', 10)
	unknown := Key{Font: 9, Glyph: 1, Scale: 10}

	added, regions, err := c.EnsureResident(table, []Key{space, unknown})
	if err != nil {
		t.Fatalf("EnsureResident failed: %v", err)
	}
	if !added {
		t.Error("new empty glyphs still count as added")
	}
	if !regions[space].Empty() || !regions[unknown].Empty() {
		t.Errorf("regions = %+v, want empty", regions)
	}
	if storage.uploads != 0 {
		t.Errorf("uploads = %d, want 0 for glyphs without ink", storage.uploads)
	}
	if c.Stats().Utilization != 0 {
		t.Errorf("Utilization = %v, want 0", c.Stats().Utilization)
	}
}

func TestCache_ScaleQuantization(t *testing.T) {
	face := fonttest.New(10, map[rune]float64{'A': 10})
	c, err := NewCache(NewMemoryStorage(), DefaultConfig())
	if err != nil {
		t.Fatalf("NewCache failed: %v", err)
	}
	k1 := keyOf(t, c, face, 'A', 10)
	k2 := keyOf(t, c, face, 'A', 10.1)
	if k1 != k2 {
		t.Errorf("keys %+v and %+v should quantize to the same step", k1, k2)
	}
	if k3 := keyOf(t, c, face, 'A', 10.25); k3 == k1 {
		t.Error("a full quantization step apart should give a different key")
	}
}

func TestCache_UploadFailure(t *testing.T) {
	c, storage, face := newTestCache(t, 64)
	storage.failUpload = true
	a := keyOf(t, c, face, 'A', 10)

	if _, _, err := c.EnsureResident(fonttest.Table{face}, []Key{a}); err == nil {
		t.Fatal("EnsureResident should report the storage error")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after failed upload", c.Len())
	}

	storage.failUpload = false
	if added, _, err := c.EnsureResident(fonttest.Table{face}, []Key{a}); err != nil || !added {
		t.Errorf("retry = (%v, %v), want (true, nil)", added, err)
	}
}

func TestCache_GlyphLargerThanMaxSize(t *testing.T) {
	c, storage, face := newTestCache(t, 64)

	// At this size the glyph bitmap alone would need terabytes.
	huge := keyOf(t, c, face, 'A', 1e7)
	_, _, err := c.EnsureResident(fonttest.Table{face}, []Key{huge})

	var overflow *OverflowError
	if !errors.As(err, &overflow) {
		t.Fatalf("EnsureResident = %v, want *OverflowError", err)
	}
	if overflow.Key != huge || overflow.Width <= 64 || overflow.Height <= 64 || overflow.MaxSize != 64 {
		t.Errorf("OverflowError = %+v", overflow)
	}
	if c.Len() != 0 || storage.uploads != 0 || storage.resizes != 0 {
		t.Errorf("cache touched: len=%d uploads=%d resizes=%d", c.Len(), storage.uploads, storage.resizes)
	}
}

func TestCache_UploadFailureDuringGrowth(t *testing.T) {
	c, storage, face := newTestCache(t, 64)
	table := fonttest.Table{face}
	a := keyOf(t, c, face, 'A', 10)
	b := keyOf(t, c, face, 'B', 10)

	if _, _, err := c.EnsureResident(table, []Key{a}); err != nil {
		t.Fatalf("EnsureResident failed: %v", err)
	}

	storage.failUpload = true
	if _, _, err := c.EnsureResident(table, []Key{a, b}); err == nil {
		t.Fatal("EnsureResident should report the storage error")
	}
	if storage.resizes != 1 {
		t.Fatalf("resizes = %d, want 1", storage.resizes)
	}

	// The cache follows the texture size even though the upload failed.
	img, _ := storage.Image(c.Texture())
	if w, h := c.Size(); w != img.Rect.Dx() || h != img.Rect.Dy() {
		t.Errorf("cache size %dx%d, texture size %v", w, h, img.Rect.Size())
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
	inked := 0
	for _, v := range c.Image().Pix {
		if v != 0 {
			inked++
		}
	}
	if inked != 9*8 {
		t.Errorf("CPU copy has %d inked pixels, want only glyph A (72)", inked)
	}

	// Cache hits alone must refill the resized texture.
	storage.failUpload = false
	added, regions, err := c.EnsureResident(table, []Key{a})
	if err != nil || !added {
		t.Fatalf("EnsureResident(a) = (%v, %v), want (true, nil)", added, err)
	}
	if got, want := regions[a].U1, float32(9)/32; got != want {
		t.Errorf("U1 = %v, want %v", got, want)
	}
	img, _ = storage.Image(c.Texture())
	if !bytes.Equal(img.Pix, c.Image().Pix) {
		t.Error("texture content differs from the CPU copy after refill")
	}

	if added, _, err := c.EnsureResident(table, []Key{a}); err != nil || added {
		t.Errorf("second EnsureResident(a) = (%v, %v), want (false, nil)", added, err)
	}
	if added, _, err := c.EnsureResident(table, []Key{a, b}); err != nil || !added {
		t.Errorf("EnsureResident(a, b) = (%v, %v), want (true, nil)", added, err)
	}
	if c.Stats().Grows != 1 {
		t.Errorf("Grows = %d, want 1", c.Stats().Grows)
	}
}
