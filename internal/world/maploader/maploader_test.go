package maploader

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"chosenoffset.com/gridcaster/internal/world/element"
)

const testMap = `{
	"name": "courtyard",
	"width": 5,
	"height": 4,
	"spawn": {"x": 1.5, "y": 1.5},
	"heading_degrees": 90,
	"palette": [
		{"name": "brick", "glyph": "#", "color": "firebrick"},
		{"name": "moss", "glyph": "m", "color": "darkgreen"},
		{"name": "marker", "glyph": "x", "color": "yellow", "properties": {"blocks_sight": false}},
		{"name": "oak", "color": "saddlebrown"}
	],
	"tiles": [
		"#####",
		"#..x#",
		"#...m",
		"#####"
	],
	"rects": [{"x": 2, "y": 2, "width": 1, "height": 1, "tile": "moss"}],
	"doors": [{"x": 3, "y": 2, "width": 1, "height": 1, "tile": "oak"}]
}`

func TestParseMap(t *testing.T) {
	m, err := Parse([]byte(testMap), "")
	if err != nil {
		t.Fatalf("Failed to parse map: %v", err)
	}

	if m.Data.Name != "courtyard" {
		t.Errorf("Expected name 'courtyard', got '%s'", m.Data.Name)
	}
	if b := m.Bounds(); b.Width != 5 || b.Height != 4 {
		t.Errorf("Expected 5x4 bounds, got %v", b)
	}
	if s := m.Spawn(); s.X != 1.5 || s.Y != 1.5 {
		t.Errorf("Expected spawn (1.5, 1.5), got %v", s)
	}
	if h := m.Heading().Degrees(); h < 89.999 || h > 90.001 {
		t.Errorf("Expected heading 90, got %v", h)
	}

	// brick mask, moss mask, moss rect, door; the marker does not block sight
	els := m.Elements()
	if len(els) != 4 {
		t.Fatalf("Expected 4 elements, got %d", len(els))
	}
	if _, ok := els[3].(*element.Door); !ok {
		t.Errorf("Expected last element to be a door, got %T", els[3])
	}
	if len(m.Doors()) != 1 {
		t.Errorf("Expected 1 door, got %d", len(m.Doors()))
	}

	if !m.BlocksSight(0, 0) || !m.BlocksSight(4, 2) || !m.BlocksSight(2, 2) || !m.BlocksSight(3, 2) {
		t.Error("Expected walls, rect and door to block sight")
	}
	if m.BlocksSight(3, 1) {
		t.Error("Expected marker tile to not block sight")
	}
	if m.BlocksSight(1, 1) {
		t.Error("Expected open floor at (1, 1)")
	}

	name, err := m.GetTileAt(4, 2)
	if err != nil || name != "moss" {
		t.Errorf("Expected 'moss' at (4, 2), got '%s' (%v)", name, err)
	}
	if name, _ := m.GetTileAt(1, 1); name != "" {
		t.Errorf("Expected empty tile at (1, 1), got '%s'", name)
	}
	if _, err := m.GetTileAt(9, 9); err == nil {
		t.Error("Expected error for out of bounds tile")
	}
}

func TestParseMapValidation(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		errText string
	}{
		{"bad dims", `{"width": 0, "height": 2}`, "invalid map dimensions"},
		{"row count", `{"width": 2, "height": 2, "tiles": ["##"]}`, "height mismatch"},
		{"row width", `{"width": 2, "height": 2, "tiles": ["##", "#"]}`, "width mismatch"},
		{"spawn outside", `{"width": 2, "height": 2, "spawn": {"x": 5, "y": 0}}`, "spawn point"},
		{"unknown tile", `{"width": 2, "height": 2, "rects": [{"x": 0, "y": 0, "width": 1, "height": 1, "tile": "nope"}]}`, "tile not found"},
		{"bad door", `{"width": 2, "height": 2, "doors": [{"x": 0, "y": 0, "width": 0, "height": 1}]}`, "door 0"},
		{"bad json", `{"width": `, "failed to parse map"},
	}
	for _, tt := range tests {
		_, err := Parse([]byte(tt.json), "")
		if err == nil {
			t.Errorf("%s: expected error", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.errText) {
			t.Errorf("%s: expected error containing %q, got %v", tt.name, tt.errText, err)
		}
	}
}

func TestLoadMapWithMaskAndPaletteFile(t *testing.T) {
	dir := t.TempDir()

	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.NRGBA{A: 255})
	f, err := os.Create(filepath.Join(dir, "pillar.png"))
	if err != nil {
		t.Fatalf("Failed to create mask: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Failed to encode mask: %v", err)
	}
	f.Close()

	if err := os.WriteFile(filepath.Join(dir, "palette.json"), []byte(`[{"name": "stone", "color": "gray"}]`), 0o644); err != nil {
		t.Fatalf("Failed to write palette: %v", err)
	}

	mapJSON := `{
		"name": "pillars",
		"width": 8,
		"height": 8,
		"spawn": {"x": 0.5, "y": 0.5},
		"palette_path": "palette.json",
		"masks": [{"path": "pillar.png", "x": 4, "y": 4, "tile": "stone"}]
	}`
	mapPath := filepath.Join(dir, "level.json")
	if err := os.WriteFile(mapPath, []byte(mapJSON), 0o644); err != nil {
		t.Fatalf("Failed to write map: %v", err)
	}

	m, err := LoadMap(mapPath)
	if err != nil {
		t.Fatalf("Failed to load map: %v", err)
	}
	if !m.BlocksSight(4, 4) {
		t.Error("Expected mask pixel at (4, 4)")
	}
	if m.BlocksSight(5, 4) {
		t.Error("Expected transparent mask pixel at (5, 4)")
	}

	if _, err := LoadMap(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Expected error for missing map")
	}
}

func TestScanMapsAndResolve(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b_hall.json", "a_yard.json", "palette.json", "config.json", ".hidden.json", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(`{}`), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.json"), 0o755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	maps, err := ScanMaps(dir)
	if err != nil {
		t.Fatalf("Failed to scan: %v", err)
	}
	if len(maps) != 2 || maps[0].Name != "a_yard" || maps[1].Name != "b_hall" {
		t.Fatalf("Expected [a_yard b_hall], got %v", maps)
	}

	path, err := Resolve(dir)
	if err != nil || path != filepath.Join(dir, "a_yard.json") {
		t.Errorf("Expected first map for a directory, got %q (%v)", path, err)
	}
	file := filepath.Join(dir, "b_hall.json")
	if path, _ := Resolve(file); path != file {
		t.Errorf("Expected file to resolve to itself, got %q", path)
	}
	if _, err := Resolve(filepath.Join(dir, "missing")); err == nil {
		t.Error("Expected error for a missing path")
	}
	if _, err := Resolve(t.TempDir()); err == nil {
		t.Error("Expected error for a directory without maps")
	}
}
