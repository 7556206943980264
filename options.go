package glyphbrush

import (
	"github.com/gogpu/glyphbrush/atlas"
	"github.com/gogpu/glyphbrush/layout"
)

// Option configures a Pipeline during creation.
//
// Example:
//
//	p, err := glyphbrush.New[string](library,
//	    glyphbrush.WithWrap(layout.WordWrap),
//	    glyphbrush.WithAtlasConfig(atlas.Config{Width: 512, Height: 512, MaxSize: 2048, Padding: 1, ScaleSteps: 4}),
//	)
type Option func(*options)

// options holds optional configuration for Pipeline creation.
type options struct {
	atlas      atlas.Config
	storage    atlas.TextureStorage
	engine     layout.Engine
	cacheLimit int
	err        error
}

// defaultOptions returns the default pipeline options.
func defaultOptions() options {
	cfg := DefaultConfig()
	return options{
		atlas:      cfg.atlasConfig(),
		cacheLimit: cfg.MetricsCacheLimit,
	}
}

// WithConfig applies every setting of cfg. Invalid settings are reported
// by New.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.err = cfg.Validate()
		o.atlas = cfg.atlasConfig()
		o.cacheLimit = cfg.MetricsCacheLimit
		mode, _ := layout.ParseWrapMode(cfg.Layout.Wrap)
		o.engine = layout.Engine{Wrap: mode, Normalize: cfg.Layout.Normalize}
	}
}

// WithAtlasConfig sets the atlas size limits and quantization.
func WithAtlasConfig(cfg atlas.Config) Option {
	return func(o *options) {
		o.atlas = cfg
	}
}

// WithTextureStorage sets where atlas pixels live. The default is an
// atlas.MemoryStorage; use gpu.Storage to upload straight to a GPU texture.
func WithTextureStorage(s atlas.TextureStorage) Option {
	return func(o *options) {
		o.storage = s
	}
}

// WithWrap sets the line wrapping policy. The default is layout.NoWrap.
func WithWrap(mode layout.WrapMode) Option {
	return func(o *options) {
		o.engine.Wrap = mode
	}
}

// WithNormalization enables Unicode NFC normalization before layout.
func WithNormalization(enabled bool) Option {
	return func(o *options) {
		o.engine.Normalize = enabled
	}
}

// WithMetricsCacheLimit sets the soft limit of the shared glyph metrics
// cache. A value of 0 disables the limit.
func WithMetricsCacheLimit(n int) Option {
	return func(o *options) {
		o.cacheLimit = n
	}
}
