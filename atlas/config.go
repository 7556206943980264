package atlas

import "fmt"

// Default configuration values.
const (
	DefaultSize       = 256
	DefaultMaxSize    = 4096
	DefaultPadding    = 1
	DefaultScaleSteps = 4

	// MaxTextureSize is the largest side any configuration may request.
	MaxTextureSize = 16384
)

// Config holds atlas configuration.
type Config struct {
	// Width and Height are the initial texture size in pixels.
	Width, Height int

	// MaxSize is the largest width or height the atlas may grow to.
	MaxSize int

	// Padding is the gap in pixels kept between packed glyphs.
	Padding int

	// ScaleSteps is the number of quantization steps per pixel-per-em.
	// Scales that round to the same step share one bitmap.
	ScaleSteps int
}

// DefaultConfig returns the default atlas configuration.
func DefaultConfig() Config {
	return Config{
		Width:      DefaultSize,
		Height:     DefaultSize,
		MaxSize:    DefaultMaxSize,
		Padding:    DefaultPadding,
		ScaleSteps: DefaultScaleSteps,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.MaxSize < 1 || c.MaxSize > MaxTextureSize {
		return &ConfigError{Field: "MaxSize", Reason: fmt.Sprintf("must be in [1, %d]", MaxTextureSize)}
	}
	if c.Width < 1 {
		return &ConfigError{Field: "Width", Reason: "must be at least 1"}
	}
	if c.Width > c.MaxSize {
		return &ConfigError{Field: "Width", Reason: "must be at most MaxSize"}
	}
	if c.Height < 1 {
		return &ConfigError{Field: "Height", Reason: "must be at least 1"}
	}
	if c.Height > c.MaxSize {
		return &ConfigError{Field: "Height", Reason: "must be at most MaxSize"}
	}
	if c.Padding < 0 {
		return &ConfigError{Field: "Padding", Reason: "must be non-negative"}
	}
	if c.ScaleSteps < 1 || c.ScaleSteps > 64 {
		return &ConfigError{Field: "ScaleSteps", Reason: "must be in [1, 64]"}
	}
	return nil
}

// grow returns the next atlas size after (w, h): the smaller side doubles,
// width first on ties, each side clamped to MaxSize. It reports false when
// both sides are already at MaxSize.
func (c Config) grow(w, h int) (int, int, bool) {
	switch {
	case w <= h && w < c.MaxSize:
		return min(w*2, c.MaxSize), h, true
	case h < c.MaxSize:
		return w, min(h*2, c.MaxSize), true
	case w < c.MaxSize:
		return min(w*2, c.MaxSize), h, true
	default:
		return w, h, false
	}
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "atlas: invalid config." + e.Field + ": " + e.Reason
}
