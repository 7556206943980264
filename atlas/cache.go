package atlas

import (
	"cmp"
	"errors"
	"fmt"
	"image"
	"slices"

	"github.com/gogpu/glyphbrush/fonts"
	"golang.org/x/image/draw"
)

// Stats reports cache activity.
type Stats struct {
	Glyphs int    // resident glyphs, including ones without ink
	Hits   uint64 // keys found resident
	Misses uint64 // keys rasterized
	Grows  uint64 // texture resizes

	Width, Height int
	Utilization   float64
}

// entry is a resident glyph. rect is empty for glyphs without ink.
type entry struct {
	rect    image.Rectangle
	bearing image.Point
}

// Cache is a glyph atlas. It keeps a CPU copy of the texture so that a
// grown texture can be refilled in one upload.
//
// Cache is not safe for concurrent use.
type Cache struct {
	cfg     Config
	storage TextureStorage
	texture TextureHandle

	width, height int
	alloc         *ShelfAllocator
	shadow        *image.Alpha
	entries       map[Key]entry

	// stale means the texture was resized and does not hold the CPU copy.
	stale bool

	hits, misses, grows uint64
}

// NewCache validates cfg and allocates the initial texture from storage.
func NewCache(storage TextureStorage, cfg Config) (*Cache, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	tex, err := storage.Allocate(cfg.Width, cfg.Height)
	if err != nil {
		return nil, fmt.Errorf("atlas: allocate texture: %w", err)
	}
	return &Cache{
		cfg:     cfg,
		storage: storage,
		texture: tex,
		width:   cfg.Width,
		height:  cfg.Height,
		alloc:   NewShelfAllocator(cfg.Width, cfg.Height, cfg.Padding),
		shadow:  image.NewAlpha(image.Rect(0, 0, cfg.Width, cfg.Height)),
		entries: make(map[Key]entry),
	}, nil
}

// Key returns the cache key for a glyph at scale.
func (c *Cache) Key(font fonts.ID, glyph fonts.GlyphID, scale float64) Key {
	return Key{Font: font, Glyph: glyph, Scale: QuantizeScale(scale, c.cfg.ScaleSteps)}
}

// pending is a glyph rasterized during EnsureResident but not yet committed.
type pending struct {
	key  Key
	img  *fonts.GlyphImage
	rect image.Rectangle
}

// EnsureResident makes every key resident and returns the regions of all
// keys. newlyAdded reports whether any glyph was rasterized or the texture
// content was replaced; after a growth every previously returned region is
// stale.
//
// If the glyphs do not fit at the maximum size, EnsureResident returns an
// *OverflowError and the cache, its allocator, its pixels and the texture
// are unchanged. Glyphs larger than MaxSize are detected before they are
// rasterized.
//
// Storage errors leave the new glyphs uncommitted. A texture that was
// resized before the error keeps its new size and is refilled from the CPU
// copy on the next call.
func (c *Cache) EnsureResident(table fonts.Table, keys []Key) (newlyAdded bool, regions map[Key]Region, err error) {
	var missing []*pending
	seen := make(map[Key]struct{}, len(keys))
	for _, k := range keys {
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		if _, ok := c.entries[k]; ok {
			c.hits++
			continue
		}
		img, err := c.rasterize(table, k)
		if err != nil {
			return false, nil, err
		}
		missing = append(missing, &pending{key: k, img: img})
	}

	switch {
	case len(missing) > 0:
		if err := c.commit(missing); err != nil {
			return false, nil, err
		}
		newlyAdded = true
	case c.stale:
		if err := c.refill(); err != nil {
			return false, nil, err
		}
		newlyAdded = true
	}

	regions = make(map[Key]Region, len(seen))
	for k := range seen {
		regions[k] = c.region(c.entries[k])
	}
	return newlyAdded, regions, nil
}

// rasterize renders k. Glyphs that cannot fit the largest texture return
// an *OverflowError; other failures yield an empty bitmap.
func (c *Cache) rasterize(table fonts.Table, k Key) (*fonts.GlyphImage, error) {
	face, ok := table.Face(k.Font)
	if !ok {
		slogger().Debug("atlas: unknown font", "font", k.Font)
		return &fonts.GlyphImage{}, nil
	}
	img, err := fonts.RasterizeLimit(face, k.Glyph, k.PixelsPerEm(c.cfg.ScaleSteps), c.cfg.MaxSize)
	var sizeErr *fonts.GlyphSizeError
	if errors.As(err, &sizeErr) {
		return nil, &OverflowError{Key: k, Width: sizeErr.Width, Height: sizeErr.Height, MaxSize: c.cfg.MaxSize}
	}
	if err != nil {
		slogger().Debug("atlas: rasterize failed", "font", k.Font, "glyph", k.Glyph, "err", err)
	}
	return img, nil
}

// commit packs and uploads missing glyphs. Packing is planned on a clone
// of the allocator and applied only if every glyph fits.
func (c *Cache) commit(missing []*pending) error {
	// Taller glyphs first keeps shelves dense.
	order := slices.Clone(missing)
	slices.SortStableFunc(order, func(a, b *pending) int {
		return cmp.Compare(b.img.Bounds.Dy(), a.img.Bounds.Dy())
	})

	alloc := c.alloc.Clone()
	w, h := c.width, c.height
	for _, p := range order {
		if p.img.Empty() {
			continue
		}
		gw, gh := p.img.Bounds.Dx(), p.img.Bounds.Dy()
		for {
			x, y, ok := alloc.Allocate(gw, gh)
			if ok {
				p.rect = image.Rect(x, y, x+gw, y+gh)
				break
			}
			nw, nh, grown := c.cfg.grow(w, h)
			if !grown {
				return &OverflowError{Key: p.key, Width: gw, Height: gh, MaxSize: c.cfg.MaxSize}
			}
			w, h = nw, nh
			alloc.Grow(w, h)
		}
	}

	if w != c.width || h != c.height {
		if err := c.resize(w, h); err != nil {
			return err
		}
	}

	for _, p := range missing {
		if !p.rect.Empty() {
			draw.Copy(c.shadow, p.rect.Min, p.img.Mask, p.img.Mask.Rect, draw.Src, nil)
		}
	}
	if err := c.upload(missing); err != nil {
		for _, p := range missing {
			if !p.rect.Empty() {
				draw.Draw(c.shadow, p.rect, image.Transparent, image.Point{}, draw.Src)
			}
		}
		return err
	}

	c.alloc = alloc
	for _, p := range missing {
		c.entries[p.key] = entry{rect: p.rect, bearing: p.img.Bounds.Min}
	}
	c.misses += uint64(len(missing))
	return nil
}

// resize grows the texture and the CPU copy to w x h. Once the storage has
// resized, the cache adopts the new size and marks the texture stale so
// that its content is replaced by the next upload.
func (c *Cache) resize(w, h int) error {
	if err := c.storage.Resize(c.texture, w, h); err != nil {
		return fmt.Errorf("atlas: resize texture to %dx%d: %w", w, h, err)
	}
	shadow := image.NewAlpha(image.Rect(0, 0, w, h))
	draw.Copy(shadow, image.Point{}, c.shadow, c.shadow.Rect, draw.Src, nil)

	slogger().Debug("atlas: grew", "from_w", c.width, "from_h", c.height, "to_w", w, "to_h", h)
	c.width, c.height = w, h
	c.shadow = shadow
	c.alloc.Grow(w, h)
	c.stale = true
	c.grows++
	return nil
}

// upload pushes the new pixels to storage: the whole CPU copy when the
// texture is stale, otherwise only the new glyph rectangles.
func (c *Cache) upload(missing []*pending) error {
	if c.stale {
		return c.refill()
	}
	for _, p := range missing {
		if p.rect.Empty() {
			continue
		}
		if err := c.storage.UploadRegion(c.texture, p.rect, p.img.Mask.Pix); err != nil {
			return fmt.Errorf("atlas: upload glyph %d: %w", p.key.Glyph, err)
		}
	}
	return nil
}

// refill uploads the whole CPU copy and clears the stale mark.
func (c *Cache) refill() error {
	if err := c.storage.UploadRegion(c.texture, c.shadow.Rect, c.shadow.Pix); err != nil {
		return fmt.Errorf("atlas: upload texture: %w", err)
	}
	c.stale = false
	return nil
}

// region converts e to texture coordinates at the current size.
func (c *Cache) region(e entry) Region {
	fw, fh := float32(c.width), float32(c.height)
	return Region{
		U0:       float32(e.rect.Min.X) / fw,
		V0:       float32(e.rect.Min.Y) / fh,
		U1:       float32(e.rect.Max.X) / fw,
		V1:       float32(e.rect.Max.Y) / fh,
		X:        e.rect.Min.X,
		Y:        e.rect.Min.Y,
		Width:    e.rect.Dx(),
		Height:   e.rect.Dy(),
		BearingX: float64(e.bearing.X),
		BearingY: float64(e.bearing.Y),
	}
}

// Region returns the region of a resident key.
func (c *Cache) Region(k Key) (Region, bool) {
	e, ok := c.entries[k]
	if !ok {
		return Region{}, false
	}
	return c.region(e), true
}

// Texture returns the storage handle of the atlas texture.
func (c *Cache) Texture() TextureHandle { return c.texture }

// Size returns the current texture size.
func (c *Cache) Size() (width, height int) { return c.width, c.height }

// Len returns the number of resident glyphs.
func (c *Cache) Len() int { return len(c.entries) }

// Image returns the CPU copy of the atlas. It must not be modified.
func (c *Cache) Image() *image.Alpha { return c.shadow }

// Config returns the configuration the cache was created with.
func (c *Cache) Config() Config { return c.cfg }

// Stats returns cache statistics.
func (c *Cache) Stats() Stats {
	return Stats{
		Glyphs:      len(c.entries),
		Hits:        c.hits,
		Misses:      c.misses,
		Grows:       c.grows,
		Width:       c.width,
		Height:      c.height,
		Utilization: c.alloc.Utilization(),
	}
}
