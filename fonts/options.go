package fonts

// ParseOption configures Parse.
type ParseOption func(*parseConfig)

// parseConfig holds configuration for Parse.
type parseConfig struct {
	backend string
	name    string
}

// defaultParseConfig returns the default parse configuration.
func defaultParseConfig() parseConfig {
	return parseConfig{
		backend: BackendXImage,
	}
}

// WithBackend selects the parsing backend by name.
// The default is "ximage" which uses golang.org/x/image/font/sfnt.
func WithBackend(name string) ParseOption {
	return func(c *parseConfig) {
		c.backend = name
	}
}

// WithName overrides the family name reported by the parsed face.
func WithName(name string) ParseOption {
	return func(c *parseConfig) {
		c.name = name
	}
}
