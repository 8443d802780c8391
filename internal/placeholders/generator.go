// Package placeholders generates a sample map with its palette, mask images
// and settings file so the viewer has something to walk around in.
package placeholders

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"chosenoffset.com/gridcaster/internal/config"
	"chosenoffset.com/gridcaster/internal/world/maploader"
	"chosenoffset.com/gridcaster/internal/world/palette"
)

// Courtyard dimensions in cells
const (
	CourtyardWidth  = 24
	CourtyardHeight = 16
)

// ColorPalette defines colors for the sample elements (dungeon theme)
var ColorPalette = struct {
	WallStone color.RGBA
	Door      color.RGBA
	Pillar    color.RGBA
	Brazier   color.RGBA
	Cloister  color.RGBA
	Barrel    color.RGBA
}{
	WallStone: color.RGBA{130, 125, 115, 255}, // Lighter stone for walls
	Door:      color.RGBA{100, 80, 60, 255},   // Dark wood
	Pillar:    color.RGBA{180, 175, 165, 255}, // Bone white
	Brazier:   color.RGBA{255, 120, 30, 255},  // Bright fire orange
	Cloister:  color.RGBA{80, 60, 140, 255},   // Mystic purple
	Barrel:    color.RGBA{140, 100, 60, 255},  // Wood barrel brown
}

// CreateDiscMask creates a filled circle of the given diameter. Set pixels
// are opaque, the rest transparent.
func CreateDiscMask(diameter int) *image.Alpha {
	img := image.NewAlpha(image.Rect(0, 0, diameter, diameter))

	center := float64(diameter-1) / 2
	radius := float64(diameter) / 2
	for y := 0; y < diameter; y++ {
		for x := 0; x < diameter; x++ {
			dx := float64(x) - center
			dy := float64(y) - center
			if dx*dx+dy*dy <= radius*radius {
				img.SetAlpha(x, y, color.Alpha{A: 255})
			}
		}
	}
	return img
}

// CreateCrossMask creates a plus sign with arms of the given thickness
func CreateCrossMask(size, thickness int) *image.Alpha {
	img := image.NewAlpha(image.Rect(0, 0, size, size))

	lo := (size - thickness) / 2
	hi := lo + thickness
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x >= lo && x < hi) || (y >= lo && y < hi) {
				img.SetAlpha(x, y, color.Alpha{A: 255})
			}
		}
	}
	return img
}

// CreateRingMask creates a hollow square with a border of the given width
func CreateRingMask(size, borderWidth int) *image.Alpha {
	img := image.NewAlpha(image.Rect(0, 0, size, size))

	for i := 0; i < borderWidth; i++ {
		// Top and bottom borders
		for x := 0; x < size; x++ {
			img.SetAlpha(x, i, color.Alpha{A: 255})
			img.SetAlpha(x, size-1-i, color.Alpha{A: 255})
		}
		// Left and right borders
		for y := 0; y < size; y++ {
			img.SetAlpha(i, y, color.Alpha{A: 255})
			img.SetAlpha(size-1-i, y, color.Alpha{A: 255})
		}
	}
	return img
}

// SavePNG saves an image to a PNG file
func SavePNG(img image.Image, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}

// Darken returns a darker version of a color
func Darken(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// Hex formats a color the way palette files spell it
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// CourtyardPalette returns the palette used by the sample map
func CourtyardPalette() []palette.Definition {
	return []palette.Definition{
		{Name: "stone", Glyph: "#", Color: Hex(ColorPalette.WallStone)},
		{Name: "brick", Glyph: "B", Color: Hex(Darken(ColorPalette.WallStone, 0.7))},
		{Name: "door", Color: Hex(ColorPalette.Door)},
		{Name: "pillar", Color: Hex(ColorPalette.Pillar)},
		{Name: "brazier", Color: Hex(ColorPalette.Brazier)},
		{Name: "cloister", Color: Hex(ColorPalette.Cloister)},
		{Name: "barrel", Color: Hex(ColorPalette.Barrel)},
	}
}

// CourtyardTiles returns the tile rows of the sample map: an outer stone wall
// and a brick wall splitting the courtyard, with a gap at rows 7-8 for the
// door.
func CourtyardTiles() []string {
	rows := make([]string, CourtyardHeight)
	for y := range rows {
		row := make([]rune, CourtyardWidth)
		for x := range row {
			switch {
			case x == 0 || y == 0 || x == CourtyardWidth-1 || y == CourtyardHeight-1:
				row[x] = '#'
			case x == CourtyardWidth/2 && y != 7 && y != 8:
				row[x] = 'B'
			default:
				row[x] = '.'
			}
		}
		rows[y] = string(row)
	}
	return rows
}

// CourtyardMap returns the sample map. Mask paths are relative to the map
// file.
func CourtyardMap() *maploader.MapData {
	return &maploader.MapData{
		Name:           "Courtyard",
		Width:          CourtyardWidth,
		Height:         CourtyardHeight,
		Spawn:          maploader.SpawnPoint{X: 4.5, Y: 7.5},
		HeadingDegrees: 0,
		PalettePath:    "palette.json",
		Tiles:          CourtyardTiles(),
		Rects: []maploader.RectData{
			{X: 3, Y: 11, Width: 2, Height: 2, Tile: "barrel"},
		},
		Masks: []maploader.MaskData{
			{Path: "masks/pillar.png", X: 5, Y: 2, Tile: "pillar"},
			{Path: "masks/brazier.png", X: 16, Y: 2, Tile: "brazier"},
			{Path: "masks/cloister.png", X: 16, Y: 9, Tile: "cloister"},
		},
		Doors: []maploader.DoorData{
			{
				RectData:      maploader.RectData{X: CourtyardWidth / 2, Y: 7, Width: 1, Height: 2, Tile: "door"},
				OpenSpeed:     0.5,
				TriggerRadius: 2.5,
			},
		},
	}
}

// GenerateAndSave writes the sample map, its palette, masks and a default
// settings file into dir.
func GenerateAndSave(dir string) error {
	fmt.Println("Generating sample courtyard...")

	masksDir := filepath.Join(dir, "masks")
	if err := os.MkdirAll(masksDir, 0755); err != nil {
		return fmt.Errorf("failed to create masks directory: %w", err)
	}

	masks := []struct {
		name string
		img  *image.Alpha
	}{
		{"pillar.png", CreateDiscMask(5)},
		{"brazier.png", CreateCrossMask(5, 1)},
		{"cloister.png", CreateRingMask(5, 1)},
	}
	for _, m := range masks {
		path := filepath.Join(masksDir, m.name)
		if err := SavePNG(m.img, path); err != nil {
			return fmt.Errorf("failed to save %s: %w", m.name, err)
		}
		b := m.img.Bounds()
		fmt.Printf("✓ Generated %s (%dx%d cells)\n", path, b.Dx(), b.Dy())
	}

	files := []struct {
		name  string
		value interface{}
	}{
		{"palette.json", CourtyardPalette()},
		{"courtyard.json", CourtyardMap()},
		{"config.json", config.DefaultConfig()},
	}
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := saveJSON(f.value, path); err != nil {
			return fmt.Errorf("failed to save %s: %w", f.name, err)
		}
		fmt.Printf("✓ Generated %s\n", path)
	}

	fmt.Println("Sample courtyard generated successfully!")
	return nil
}

func saveJSON(v interface{}, path string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
