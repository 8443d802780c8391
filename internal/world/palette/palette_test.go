package palette

import (
	"encoding/json"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestPaletteParsing(t *testing.T) {
	jsonData := `[
		{
			"name": "brick",
			"glyph": "#",
			"color": "FireBrick",
			"properties": {"blocks_sight": true, "material": "clay", "height": 1.5}
		},
		{
			"name": "glass",
			"glyph": "g",
			"color": "#88ccff80",
			"properties": {"blocks_sight": false}
		},
		{
			"name": "door",
			"color": "#8b4513"
		}
	]`

	var defs []Definition
	if err := json.Unmarshal([]byte(jsonData), &defs); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}

	p, err := New(defs)
	if err != nil {
		t.Fatalf("Failed to build palette: %v", err)
	}

	brick, ok := p.ByGlyph('#')
	if !ok {
		t.Fatal("Expected brick under glyph '#'")
	}
	if brick.Name != "brick" {
		t.Errorf("Expected name 'brick', got '%s'", brick.Name)
	}
	if brick.RGBA() != (color.RGBA{R: 0xb2, G: 0x22, B: 0x22, A: 0xff}) {
		t.Errorf("Expected firebrick, got %v", brick.RGBA())
	}
	if !brick.GetPropertyBool("blocks_sight", false) {
		t.Error("Expected brick to block sight")
	}
	if m := brick.GetPropertyString("material", ""); m != "clay" {
		t.Errorf("Expected material 'clay', got '%s'", m)
	}
	if h := brick.GetPropertyFloat("height", 1); h != 1.5 {
		t.Errorf("Expected height 1.5, got %v", h)
	}

	glass, _ := p.Get("glass")
	if glass.RGBA() != (color.RGBA{R: 0x88, G: 0xcc, B: 0xff, A: 0x80}) {
		t.Errorf("Expected translucent blue, got %v", glass.RGBA())
	}
	if glass.GetPropertyBool("blocks_sight", true) {
		t.Error("Expected glass to not block sight")
	}

	door, ok := p.Get("door")
	if !ok {
		t.Fatal("Expected door definition")
	}
	if v := door.GetPropertyBool("missing", true); !v {
		t.Error("Expected default for missing property")
	}
}

func TestPaletteValidation(t *testing.T) {
	tests := []struct {
		name string
		defs []Definition
	}{
		{"missing name", []Definition{{Color: "red"}}},
		{"duplicate name", []Definition{{Name: "a", Color: "red"}, {Name: "a", Color: "blue"}}},
		{"bad color", []Definition{{Name: "a", Color: "not-a-color"}}},
		{"reserved glyph", []Definition{{Name: "a", Color: "red", Glyph: "."}}},
		{"long glyph", []Definition{{Name: "a", Color: "red", Glyph: "ab"}}},
		{"duplicate glyph", []Definition{{Name: "a", Color: "red", Glyph: "x"}, {Name: "b", Color: "red", Glyph: "x"}}},
	}
	for _, tt := range tests {
		if _, err := New(tt.defs); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
		ok   bool
	}{
		{"red", color.RGBA{R: 255, A: 255}, true},
		{" Navy ", color.RGBA{B: 0x80, A: 255}, true},
		{"#010203", color.RGBA{R: 1, G: 2, B: 3, A: 255}, true},
		{"#01020304", color.RGBA{R: 1, G: 2, B: 3, A: 4}, true},
		{"#12345", color.RGBA{}, false},
		{"#zzzzzz", color.RGBA{}, false},
		{"", color.RGBA{}, false},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("ParseColor(%q): expected ok=%v, got err=%v", tt.in, tt.ok, err)
			continue
		}
		if tt.ok && got != tt.want {
			t.Errorf("ParseColor(%q): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palette.json")
	if err := os.WriteFile(path, []byte(`[{"name": "stone", "glyph": "s", "color": "gray"}]`), 0o644); err != nil {
		t.Fatalf("Failed to write palette: %v", err)
	}
	p, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load palette: %v", err)
	}
	if _, ok := p.ByGlyph('s'); !ok {
		t.Error("Expected stone under glyph 's'")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected error for missing palette")
	}
}
