package fonts_test

import (
	"slices"
	"testing"
	"testing/fstest"

	"github.com/gogpu/glyphbrush/fonts"
	"github.com/gogpu/glyphbrush/internal/fonttest"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

func TestLibrary_AddResolveRemove(t *testing.T) {
	lib := fonts.NewLibrary()
	face := fonttest.New(10, nil)

	lib.Add("body", face)
	if got, ok := lib.Resolve("body"); !ok || got != fonts.Face(face) {
		t.Errorf("Resolve(body) = (%v, %v), want the added face", got, ok)
	}
	if lib.Len() != 1 {
		t.Errorf("Len() = %d, want 1", lib.Len())
	}

	if !lib.Remove("body") {
		t.Error("Remove(body) = false, want true")
	}
	if lib.Remove("body") {
		t.Error("second Remove(body) = true, want false")
	}
	if _, ok := lib.Resolve("body"); ok {
		t.Error("Resolve after Remove should fail")
	}
}

func TestLibrary_Load(t *testing.T) {
	lib := fonts.NewLibrary()
	if err := lib.Load("regular", goregular.TTF); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := lib.Load("broken", []byte("nope")); err == nil {
		t.Error("Load of invalid data should fail")
	}
	if lib.Len() != 1 {
		t.Errorf("Len() = %d, want 1", lib.Len())
	}
}

func TestLibrary_LoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"fonts/Regular.ttf":  {Data: goregular.TTF},
		"fonts/Bold.TTF":     {Data: gobold.TTF},
		"fonts/README.md":    {Data: []byte("not a font")},
		"other/Ignored.ttf":  {Data: goregular.TTF},
		"fonts/sub/Deep.otf": {Data: goregular.TTF},
	}

	lib := fonts.NewLibrary()
	names, err := lib.LoadFS(fsys, "fonts", fonts.WithBackend(fonts.BackendGoText))
	if err != nil {
		t.Fatalf("LoadFS failed: %v", err)
	}

	slices.Sort(names)
	want := []string{"Bold", "Deep", "Regular"}
	if !slices.Equal(names, want) {
		t.Errorf("names = %v, want %v", names, want)
	}
	if _, ok := lib.Resolve("Ignored"); ok {
		t.Error("font outside dir should not be loaded")
	}
}
