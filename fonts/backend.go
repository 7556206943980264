package fonts

import (
	"fmt"
	"os"
	"sync"
)

// Backend parses font files into Faces.
// This abstraction allows swapping the font parsing library.
type Backend interface {
	// Parse parses font data (TTF or OTF) and returns a Face.
	// The backend may retain data; callers must not modify it afterwards.
	Parse(data []byte) (Face, error)
}

// BackendFunc adapts a function to the Backend interface.
type BackendFunc func(data []byte) (Face, error)

// Parse implements Backend.
func (f BackendFunc) Parse(data []byte) (Face, error) { return f(data) }

// Built-in backend names.
const (
	BackendXImage = "ximage"
	BackendGoText = "gotext"
)

var (
	backendsMu sync.RWMutex
	backends   = map[string]Backend{
		BackendXImage: BackendFunc(parseXImage),
		BackendGoText: BackendFunc(parseGoText),
	}
)

// RegisterBackend registers a font backend under name, replacing any
// backend already registered with that name.
func RegisterBackend(name string, b Backend) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	backends[name] = b
}

// lookupBackend returns the backend registered under name.
func lookupBackend(name string) (Backend, bool) {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	b, ok := backends[name]
	return b, ok
}

// Parse parses font data with the configured backend.
// The data slice is copied and can be reused after this call.
func Parse(data []byte, opts ...ParseOption) (Face, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	config := defaultParseConfig()
	for _, opt := range opts {
		opt(&config)
	}

	b, ok := lookupBackend(config.backend)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, config.backend)
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)

	face, err := b.Parse(dataCopy)
	if err != nil {
		return nil, fmt.Errorf("fonts: %s backend: %w", config.backend, err)
	}
	if config.name != "" {
		face = namedFace{Face: face, name: config.name}
	}
	return face, nil
}

// ParseFile loads a font file and parses it with Parse.
func ParseFile(path string, opts ...ParseOption) (Face, error) {
	// #nosec G304 -- Font file path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fonts: failed to read font file: %w", err)
	}
	return Parse(data, opts...)
}

// namedFace overrides the name reported by a Face.
type namedFace struct {
	Face
	name string
}

func (f namedFace) Name() string { return f.name }

func (f namedFace) MaxPPEM() float64 { return MaxPPEM(f.Face) }
