// Package atlas caches rasterized glyph bitmaps in a single growable
// texture.
//
// Glyphs are identified by a Key of font, glyph id and quantized scale.
// Cache.EnsureResident rasterizes the keys that are not yet resident, packs
// them with a shelf allocator and uploads them through a TextureStorage.
// When the texture is full it grows by doubling its smaller side up to
// Config.MaxSize. Growth keeps pixel positions but changes every region's
// texture coordinates, so callers must rebuild all vertices after a call
// that reports a change.
//
// The atlas never evicts. A call that cannot fit its glyphs even at the
// maximum size fails with ErrAtlasOverflow and leaves the cache exactly as
// it was.
package atlas
