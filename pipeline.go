package glyphbrush

import (
	"fmt"
	"image"
	"slices"
	"sync"

	"github.com/gogpu/glyphbrush/atlas"
	"github.com/gogpu/glyphbrush/fonts"
	"github.com/gogpu/glyphbrush/layout"
)

// State is the position of a Pipeline in its frame cycle.
type State uint8

const (
	// StateIdle means nothing has been queued since creation or since a
	// failed draw.
	StateIdle State = iota

	// StateQueued means at least one section is waiting to be drawn.
	StateQueued

	// StateDrawn means the last draw succeeded and the queue is empty.
	// It behaves like StateIdle for the next frame.
	StateDrawn
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateQueued:
		return "Queued"
	case StateDrawn:
		return "Drawn"
	default:
		return "Unknown"
	}
}

// Pipeline lays out, caches and draws text.
//
// During a frame callers Measure text for sizing and QueueText every
// visible section, then call DrawQueued once. Measure and the draw path
// share one font registry and one metrics cache, so measured sizes always
// agree with drawn text.
//
// Pipeline is safe for concurrent use; all methods are serialized.
type Pipeline[H comparable] struct {
	mu sync.Mutex

	assets   Assets[H]
	registry *fonts.Registry[H]
	engine   layout.Engine
	atlas    *atlas.Cache

	queue QueueBuffer
	state State

	// last is the glyph sequence of the last ActionDraw.
	last []layout.PositionedGlyph
}

// New creates a pipeline that resolves font handles through assets.
func New[H comparable](assets Assets[H], opts ...Option) (*Pipeline[H], error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if o.cacheLimit < 0 {
		return nil, fmt.Errorf("glyphbrush: metrics cache limit must be non-negative, got %d", o.cacheLimit)
	}
	if o.storage == nil {
		o.storage = atlas.NewMemoryStorage()
	}

	cache, err := atlas.NewCache(o.storage, o.atlas)
	if err != nil {
		return nil, fmt.Errorf("glyphbrush: %w", err)
	}
	return &Pipeline[H]{
		assets:   assets,
		registry: fonts.NewRegistry[H](o.cacheLimit),
		engine:   o.engine,
		atlas:    cache,
	}, nil
}

// Measure returns the size text would occupy without touching the atlas
// or the queue. Empty text measures (0, 0).
func (p *Pipeline[H]) Measure(handle H, text string, size float64, bounds layout.Bounds) (width, height float64, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	id, err := p.register(handle, size)
	if err != nil {
		return 0, 0, err
	}
	width, height = p.engine.Measure(p.registry, layout.Section{
		Font:   id,
		Scale:  size,
		Text:   text,
		Bounds: bounds,
	})
	return width, height, nil
}

// QueueText lays out text at position and adds it to the next draw.
//
// A section whose font does not resolve fails with ErrNoSuchFont and one
// with an invalid size fails with ErrInvalidScale. Failed sections are
// dropped; sections queued before or after are unaffected.
func (p *Pipeline[H]) QueueText(handle H, text string, size float64, bounds layout.Bounds, position layout.Point) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	id, err := p.register(handle, size)
	if err != nil {
		return err
	}
	p.queue.Push(p.engine.Layout(p.registry, layout.Section{
		Font:   id,
		Scale:  size,
		Text:   text,
		Bounds: bounds,
		Origin: position,
	}))
	p.state = StateQueued
	return nil
}

// register resolves handle and returns its font id.
func (p *Pipeline[H]) register(handle H, size float64) (fonts.ID, error) {
	face, ok := p.assets.Resolve(handle)
	if !ok || face == nil {
		return 0, fmt.Errorf("glyphbrush: font %v: %w", handle, ErrNoSuchFont)
	}
	if !layout.ValidScale(size) || size > fonts.MaxPPEM(face) {
		return 0, fmt.Errorf("glyphbrush: size %v: %w", size, ErrInvalidScale)
	}
	return p.registry.GetOrInsert(handle, face), nil
}

// DrawQueued draws every queued section.
//
// It returns ActionDraw with one quad per inked glyph when the atlas
// changed or the queued glyphs differ from the last draw, and ActionRedraw
// otherwise. The queue is emptied whether or not the draw succeeds.
//
// If the glyphs do not fit in the atlas the error wraps ErrAtlasOverflow,
// the atlas is unchanged and the last drawn vertices remain valid.
func (p *Pipeline[H]) DrawQueued() (BrushAction, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	defer p.queue.Reset()

	glyphs := p.queue.Glyphs()
	keys := make([]atlas.Key, len(glyphs))
	for i, g := range glyphs {
		keys[i] = p.atlas.Key(g.Font, g.Glyph, g.Scale)
	}

	changed, regions, err := p.atlas.EnsureResident(p.registry, keys)
	if err != nil {
		p.state = StateIdle
		return BrushAction{}, fmt.Errorf("glyphbrush: draw %d glyphs: %w", len(glyphs), err)
	}
	p.state = StateDrawn

	if !changed && slices.Equal(glyphs, p.last) {
		Logger().Debug("glyphbrush: redraw", "glyphs", len(glyphs))
		return BrushAction{Kind: ActionRedraw}, nil
	}

	vertices := make([]Vertex, 0, len(glyphs)*VerticesPerQuad)
	for i, g := range glyphs {
		r := regions[keys[i]]
		if r.Empty() {
			continue
		}
		vertices = appendQuad(vertices, g, r)
	}
	p.last = append(p.last[:0], glyphs...)

	Logger().Debug("glyphbrush: draw",
		"glyphs", len(glyphs),
		"quads", len(vertices)/VerticesPerQuad,
		"atlas_changed", changed)
	return BrushAction{Kind: ActionDraw, Vertices: vertices}, nil
}

// State returns the current frame cycle state.
func (p *Pipeline[H]) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Queued returns the number of sections waiting to be drawn.
func (p *Pipeline[H]) Queued() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.queue.Sections()
}

// AtlasStats returns the glyph atlas statistics.
func (p *Pipeline[H]) AtlasStats() atlas.Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.atlas.Stats()
}

// AtlasTexture returns the storage handle and current size of the atlas
// texture, to bind it for the vertices of the last draw.
func (p *Pipeline[H]) AtlasTexture() (h atlas.TextureHandle, width, height int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	width, height = p.atlas.Size()
	return p.atlas.Texture(), width, height
}

// AtlasImage returns a copy of the atlas pixels.
func (p *Pipeline[H]) AtlasImage() *image.Alpha {
	p.mu.Lock()
	defer p.mu.Unlock()
	src := p.atlas.Image()
	return &image.Alpha{Pix: slices.Clone(src.Pix), Stride: src.Stride, Rect: src.Rect}
}

// Fonts returns the font registry shared by measurement and drawing. The
// registry is safe for concurrent use.
func (p *Pipeline[H]) Fonts() *fonts.Registry[H] {
	return p.registry
}
