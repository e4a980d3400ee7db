package icons

import (
	"bytes"
	"testing"
)

var allGlyphs = []string{
	"call-out", "citation", "details",
	"text-xs", "text-sm", "text-md", "text-lg", "text-xl",
}

func TestGet(t *testing.T) {
	for _, name := range allGlyphs {
		t.Run(name, func(t *testing.T) {
			data, ok := Get(name)
			if !ok {
				t.Fatalf("Get(%q) has no glyph", name)
			}
			if !bytes.Contains(data, []byte("<svg")) {
				t.Errorf("glyph %q is not SVG", name)
			}
		})
	}

	if _, ok := Get("no-such-glyph"); ok {
		t.Error("Get() returned a glyph for an unknown name")
	}
}

func TestNames(t *testing.T) {
	names := Names()
	if len(names) != len(allGlyphs) {
		t.Fatalf("Names() = %d entries, want %d", len(names), len(allGlyphs))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("Names() not sorted: %q before %q", names[i-1], names[i])
		}
	}
}

func TestDefaultsIsACopy(t *testing.T) {
	first := Defaults()
	first["call-out"] = []byte("mutated")

	second := Defaults()
	if string(second["call-out"]) == "mutated" {
		t.Error("Defaults() shares state between calls")
	}
}

func TestValidate(t *testing.T) {
	for _, name := range allGlyphs {
		t.Run(name, func(t *testing.T) {
			data, _ := Get(name)
			if err := Validate(data); err != nil {
				t.Errorf("built-in glyph %q does not validate: %v", name, err)
			}
		})
	}

	t.Run("malformed", func(t *testing.T) {
		if err := Validate([]byte("<svg><path")); err == nil {
			t.Error("Validate() accepted malformed SVG")
		}
	})
}

func TestRasterize(t *testing.T) {
	data, _ := Get("citation")

	img, err := Rasterize(data, 48)
	if err != nil {
		t.Fatalf("Rasterize() error = %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != 48 || bounds.Dy() != 48 {
		t.Errorf("Rasterize() bounds = %v, want 48x48", bounds)
	}
}

func TestPreview(t *testing.T) {
	data, _ := Get("text-md")

	img, err := Preview(data, 64)
	if err != nil {
		t.Fatalf("Preview() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 64 {
		t.Errorf("Preview() bounds = %v, want square 64", b)
	}

	if _, err := Preview([]byte("<svg"), 64); err == nil {
		t.Error("Preview() accepted malformed SVG")
	}
}
