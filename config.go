package glyphbrush

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/glyphbrush/atlas"
	"github.com/gogpu/glyphbrush/fonts"
	"github.com/gogpu/glyphbrush/layout"
)

// Config is the file form of the pipeline options.
//
// Example TOML:
//
//	metrics_cache_limit = 8192
//
//	[atlas]
//	width = 512
//	height = 512
//	max_size = 4096
//	padding = 1
//	scale_steps = 4
//
//	[layout]
//	wrap = "word"
//	normalize = true
type Config struct {
	Atlas             AtlasConfig  `toml:"atlas"`
	Layout            LayoutConfig `toml:"layout"`
	MetricsCacheLimit int          `toml:"metrics_cache_limit"`
}

// AtlasConfig mirrors atlas.Config.
type AtlasConfig struct {
	Width      int `toml:"width"`
	Height     int `toml:"height"`
	MaxSize    int `toml:"max_size"`
	Padding    int `toml:"padding"`
	ScaleSteps int `toml:"scale_steps"`
}

// LayoutConfig configures the layout engine.
type LayoutConfig struct {
	// Wrap is "none", "word" or "char".
	Wrap      string `toml:"wrap"`
	Normalize bool   `toml:"normalize"`
}

// DefaultConfig returns the configuration used when no options are given.
func DefaultConfig() Config {
	a := atlas.DefaultConfig()
	return Config{
		Atlas: AtlasConfig{
			Width:      a.Width,
			Height:     a.Height,
			MaxSize:    a.MaxSize,
			Padding:    a.Padding,
			ScaleSteps: a.ScaleSteps,
		},
		Layout:            LayoutConfig{Wrap: "none"},
		MetricsCacheLimit: fonts.DefaultMetricsCacheLimit,
	}
}

// LoadConfig reads a TOML configuration file. Missing keys keep their
// default values; unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("glyphbrush: load config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses a TOML configuration. Missing keys keep their
// default values; unknown keys are an error.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			keys := make([]string, 0, len(strict.Errors))
			for _, e := range strict.Errors {
				keys = append(keys, strings.Join(e.Key(), "."))
			}
			return Config{}, fmt.Errorf("glyphbrush: parse config: unknown keys: %s", strings.Join(keys, ", "))
		}
		return Config{}, fmt.Errorf("glyphbrush: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if err := c.atlasConfig().Validate(); err != nil {
		return fmt.Errorf("glyphbrush: %w", err)
	}
	if _, ok := layout.ParseWrapMode(c.Layout.Wrap); !ok {
		return fmt.Errorf("glyphbrush: invalid config.layout.wrap: %q", c.Layout.Wrap)
	}
	if c.MetricsCacheLimit < 0 {
		return errors.New("glyphbrush: invalid config.metrics_cache_limit: must be non-negative")
	}
	return nil
}

// atlasConfig converts the file form to atlas.Config.
func (c Config) atlasConfig() atlas.Config {
	return atlas.Config{
		Width:      c.Atlas.Width,
		Height:     c.Atlas.Height,
		MaxSize:    c.Atlas.MaxSize,
		Padding:    c.Atlas.Padding,
		ScaleSteps: c.Atlas.ScaleSteps,
	}
}
