package fonts

import "sync"

// DefaultMetricsCacheLimit is the default soft limit of the shared metrics cache.
const DefaultMetricsCacheLimit = 8192

// Registry maps externally owned font handles to dense IDs and owns the
// metrics table shared by layout and rasterization.
//
// Entries are added lazily and never removed. Registry is safe for
// concurrent use.
type Registry[H comparable] struct {
	mu    sync.RWMutex
	ids   map[H]ID
	faces []Face

	glyphs   *Cache[runeKey, GlyphID]
	advances *Cache[advanceKey, float64]
}

// runeKey identifies a character map lookup.
type runeKey struct {
	font ID
	r    rune
}

// advanceKey identifies an advance lookup at a given size.
type advanceKey struct {
	font  ID
	glyph GlyphID
	ppem  float64
}

// NewRegistry creates an empty registry whose metrics cache holds roughly
// cacheLimit entries per table. A cacheLimit of 0 means unlimited.
func NewRegistry[H comparable](cacheLimit int) *Registry[H] {
	return &Registry[H]{
		ids:      make(map[H]ID),
		glyphs:   NewCache[runeKey, GlyphID](cacheLimit),
		advances: NewCache[advanceKey, float64](cacheLimit),
	}
}

// GetOrInsert returns the ID for handle, registering face under a new ID
// if handle has not been seen. For a known handle face is not consulted.
func (r *Registry[H]) GetOrInsert(handle H, face Face) ID {
	r.mu.RLock()
	id, ok := r.ids[handle]
	r.mu.RUnlock()
	if ok {
		return id
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.ids[handle]; ok {
		return id
	}
	id = ID(len(r.faces)) //nolint:gosec // registries never approach 2^32 fonts
	r.faces = append(r.faces, &cachedFace{Face: face, id: id, tables: r.caches()})
	r.ids[handle] = id
	return id
}

// Lookup returns the ID registered for handle.
func (r *Registry[H]) Lookup(handle H) (ID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.ids[handle]
	return id, ok
}

// Face implements Table. The returned face reads through the shared
// metrics cache.
func (r *Registry[H]) Face(id ID) (Face, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if int(id) >= len(r.faces) {
		return nil, false
	}
	return r.faces[id], true
}

// Len returns the number of registered fonts.
func (r *Registry[H]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.faces)
}

// CacheStats returns combined hit and miss counts of the metrics cache.
func (r *Registry[H]) CacheStats() (hits, misses uint64) {
	gh, gm := r.glyphs.Stats()
	ah, am := r.advances.Stats()
	return gh + ah, gm + am
}

// caches returns the metrics tables shared by every registered face.
func (r *Registry[H]) caches() *metricsTables {
	return &metricsTables{glyphs: r.glyphs, advances: r.advances}
}

// metricsTables groups the shared caches; it has no type parameter so
// cachedFace stays independent of the handle type.
type metricsTables struct {
	glyphs   *Cache[runeKey, GlyphID]
	advances *Cache[advanceKey, float64]
}

// cachedFace is a Face whose character map and advance lookups go through
// the registry's shared metrics tables.
type cachedFace struct {
	Face
	id     ID
	tables *metricsTables
}

// GlyphIndex implements Face.GlyphIndex.
func (f *cachedFace) GlyphIndex(r rune) (GlyphID, bool) {
	gid := f.tables.glyphs.GetOrCreate(runeKey{font: f.id, r: r}, func() GlyphID {
		gid, _ := f.Face.GlyphIndex(r)
		return gid
	})
	return gid, gid != NotDef
}

// GlyphAdvance implements Face.GlyphAdvance.
func (f *cachedFace) GlyphAdvance(gid GlyphID, ppem float64) float64 {
	return f.tables.advances.GetOrCreate(advanceKey{font: f.id, glyph: gid, ppem: ppem}, func() float64 {
		return f.Face.GlyphAdvance(gid, ppem)
	})
}
