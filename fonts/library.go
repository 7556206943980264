package fonts

import (
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
)

// Library is a collection of faces accessible by name. It is a simple
// in-memory font asset store: Resolve looks a face up by the name it was
// added under.
//
// Library is safe for concurrent use.
type Library struct {
	mu    sync.RWMutex
	faces map[string]Face
}

// NewLibrary creates a new, empty library.
func NewLibrary() *Library {
	return &Library{faces: make(map[string]Face)}
}

// Add stores face under name, replacing any previous face with that name.
func (l *Library) Add(name string, face Face) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.faces[name] = face
}

// Load parses data and stores the face under name.
func (l *Library) Load(name string, data []byte, opts ...ParseOption) error {
	face, err := Parse(data, opts...)
	if err != nil {
		return err
	}
	l.Add(name, face)
	return nil
}

// LoadFS parses every .ttf and .otf file in fsys under dir and stores each
// face under its file name without extension. It returns the names added.
func (l *Library) LoadFS(fsys fs.FS, dir string, opts ...ParseOption) ([]string, error) {
	var names []string
	err := fs.WalkDir(fsys, dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".ttf" && ext != ".otf" {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if err := l.Load(name, data, opts...); err != nil {
			return err
		}
		names = append(names, name)
		return nil
	})
	return names, err
}

// Remove deletes the face stored under name. It reports whether the
// face existed.
func (l *Library) Remove(name string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.faces[name]
	delete(l.faces, name)
	return ok
}

// Resolve returns the face stored under name.
func (l *Library) Resolve(name string) (Face, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	face, ok := l.faces[name]
	return face, ok
}

// Len returns the number of faces in the library.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.faces)
}
