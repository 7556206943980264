// Command brushdemo lays out text with glyphbrush and writes the rendered
// text and the glyph atlas as PNG images.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/glyphbrush"
	"github.com/gogpu/glyphbrush/fonts"
	"github.com/gogpu/glyphbrush/layout"
)

const defaultFont = "Go Regular"

func main() {
	var (
		fontPath = flag.String("font", "", "TTF/OTF file (default: Go Regular)")
		text     = flag.String("text", "Hello, glyphbrush!\nThe quick brown fox jumps over the lazy dog.", "text to draw; \\n starts a new line")
		size     = flag.Float64("size", 32, "font size in pixels per em")
		width    = flag.Int("width", 800, "image width")
		wrap     = flag.String("wrap", "Word", "wrap mode: None, Word or Char")
		config   = flag.String("config", "", "TOML configuration file")
		output   = flag.String("output", "brushdemo.png", "output file")
		atlasOut = flag.String("atlas", "", "write the glyph atlas to this file")
		verbose  = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	if *verbose {
		glyphbrush.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	lib, name, err := loadFont(*fontPath)
	if err != nil {
		log.Fatalf("Failed to load font: %v", err)
	}

	opts, err := brushOptions(*config, *wrap)
	if err != nil {
		log.Fatal(err)
	}
	brush, err := glyphbrush.New[string](lib, opts...)
	if err != nil {
		log.Fatalf("Failed to create brush: %v", err)
	}

	body := strings.ReplaceAll(*text, `\n`, "\n")
	margin := 16.0
	bounds := layout.Bounds{Width: float64(*width) - 2*margin}
	w, h, err := brush.Measure(name, body, *size, bounds)
	if err != nil {
		log.Fatalf("Failed to measure: %v", err)
	}

	if err := brush.QueueText(name, body, *size, bounds, layout.Point{X: margin, Y: margin}); err != nil {
		log.Fatalf("Failed to queue text: %v", err)
	}
	action, err := brush.DrawQueued()
	if err != nil {
		log.Fatalf("Failed to draw: %v", err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, *width, int(h+2*margin)+1))
	fill(dst, color.RGBA{R: 0x1e, G: 0x22, B: 0x2a, A: 0xff})
	composite(dst, brush.AtlasImage(), action.Vertices, color.RGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff})

	if err := savePNG(*output, dst); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	if *atlasOut != "" {
		if err := savePNG(*atlasOut, brush.AtlasImage()); err != nil {
			log.Fatalf("Failed to save atlas: %v", err)
		}
	}

	st := brush.AtlasStats()
	log.Printf("Text %.0fx%.0f px, %d quads, atlas %dx%d with %d glyphs (%.0f%% used)",
		w, h, len(action.Vertices)/glyphbrush.VerticesPerQuad, st.Width, st.Height, st.Glyphs, st.Utilization*100)
	log.Printf("Saved to %s\n", *output)
}

// loadFont returns a library holding the font at path, or Go Regular
// when path is empty, and the handle of that font.
func loadFont(path string) (*fonts.Library, string, error) {
	lib := fonts.NewLibrary()
	if path == "" {
		return lib, defaultFont, lib.Load(defaultFont, goregular.TTF)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	return lib, path, lib.Load(path, data)
}

// brushOptions builds pipeline options from a config file and the wrap flag.
func brushOptions(configPath, wrap string) ([]glyphbrush.Option, error) {
	var opts []glyphbrush.Option
	if configPath != "" {
		cfg, err := glyphbrush.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, glyphbrush.WithConfig(cfg))
	}
	mode, ok := layout.ParseWrapMode(wrap)
	if !ok {
		return nil, fmt.Errorf("unknown wrap mode %q", wrap)
	}
	return append(opts, glyphbrush.WithWrap(mode)), nil
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
