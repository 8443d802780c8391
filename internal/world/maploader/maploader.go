// Package maploader reads grid maps from JSON files and turns them into the
// elements the ray caster queries.
package maploader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang/glog"

	"chosenoffset.com/gridcaster/internal/core/geometry"
	"chosenoffset.com/gridcaster/internal/world/element"
	"chosenoffset.com/gridcaster/internal/world/palette"
)

// SpawnPoint defines the viewer start location
type SpawnPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// RectData places a solid block of cells
type RectData struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Tile   string `json:"tile"` // Palette entry name
}

// MaskData places a pixel mask loaded from an image file
type MaskData struct {
	Path string `json:"path"` // Relative to the map file
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Tile string `json:"tile"`
}

// DoorData places a sliding door
type DoorData struct {
	RectData
	OpenSpeed     float64 `json:"open_speed"`     // Fraction per second (default 1)
	TriggerRadius float64 `json:"trigger_radius"` // Cells from the door center (default 2)
}

// MapData represents the loaded map configuration
type MapData struct {
	Name           string               `json:"name"`
	Width          int                  `json:"width"`
	Height         int                  `json:"height"`
	Spawn          SpawnPoint           `json:"spawn"`
	HeadingDegrees float64              `json:"heading_degrees"`
	Palette        []palette.Definition `json:"palette"`
	PalettePath    string               `json:"palette_path"` // Used when Palette is empty
	Tiles          []string             `json:"tiles"`        // Rows of glyphs [y][x]; '.' and ' ' are empty
	Rects          []RectData           `json:"rects"`
	Masks          []MaskData           `json:"masks"`
	Doors          []DoorData           `json:"doors"`
}

// Map represents a loaded map with its palette and elements
type Map struct {
	Data     *MapData
	Palette  *palette.Palette
	elements []element.Element
	doors    []*element.Door
}

// LoadMap loads a map from a JSON file. Relative paths inside the file are
// resolved against the file's directory.
func LoadMap(mapPath string) (*Map, error) {
	data, err := os.ReadFile(mapPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read map file %s: %w", mapPath, err)
	}

	m, err := Parse(data, filepath.Dir(mapPath))
	if err != nil {
		return nil, fmt.Errorf("invalid map file %s: %w", mapPath, err)
	}

	glog.Infof("Loaded map %q (%dx%d, %d elements)", m.Data.Name, m.Data.Width, m.Data.Height, len(m.elements))
	return m, nil
}

// Parse builds a map from JSON bytes.
func Parse(data []byte, baseDir string) (*Map, error) {
	var mapData MapData
	if err := json.Unmarshal(data, &mapData); err != nil {
		return nil, fmt.Errorf("failed to parse map: %w", err)
	}

	if err := validateMapData(&mapData); err != nil {
		return nil, err
	}

	var pal *palette.Palette
	var err error
	if len(mapData.Palette) == 0 && mapData.PalettePath != "" {
		pal, err = palette.Load(resolve(baseDir, mapData.PalettePath))
	} else {
		pal, err = palette.New(mapData.Palette)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load palette: %w", err)
	}

	m := &Map{Data: &mapData, Palette: pal}
	if err := m.buildElements(baseDir); err != nil {
		return nil, err
	}
	return m, nil
}

// validateMapData checks if the map data is valid
func validateMapData(data *MapData) error {
	if data.Width <= 0 || data.Height <= 0 {
		return fmt.Errorf("invalid map dimensions: %dx%d", data.Width, data.Height)
	}

	// Tile rows are optional, but when present they cover the whole map
	if len(data.Tiles) != 0 {
		if len(data.Tiles) != data.Height {
			return fmt.Errorf("tiles array height mismatch: expected %d, got %d", data.Height, len(data.Tiles))
		}
		for y, row := range data.Tiles {
			if n := len([]rune(row)); n != data.Width {
				return fmt.Errorf("tiles array width mismatch at row %d: expected %d, got %d", y, data.Width, n)
			}
		}
	}

	bounds := geometry.Bounds{Width: data.Width, Height: data.Height}
	spawn := geometry.Coordinate{X: data.Spawn.X, Y: data.Spawn.Y}
	if !bounds.Contains(spawn.Cell()) {
		return fmt.Errorf("spawn point (%v, %v) outside map", data.Spawn.X, data.Spawn.Y)
	}

	for i, d := range data.Doors {
		if d.Width <= 0 || d.Height <= 0 {
			return fmt.Errorf("door %d has invalid size %dx%d", i, d.Width, d.Height)
		}
	}
	for i, r := range data.Rects {
		if r.Width <= 0 || r.Height <= 0 {
			return fmt.Errorf("rect %d has invalid size %dx%d", i, r.Width, r.Height)
		}
	}

	return nil
}

func (m *Map) buildElements(baseDir string) error {
	// One mask per palette glyph used in the tile rows
	for i := range m.Palette.Definitions {
		def := &m.Palette.Definitions[i]
		if def.Glyph == "" || !def.GetPropertyBool("blocks_sight", true) {
			continue
		}
		mask := element.NewMaskFromRows(geometry.Point{}, m.Data.Tiles, []rune(def.Glyph)[0], def.RGBA())
		if mask.Count() > 0 {
			m.elements = append(m.elements, mask)
		}
	}

	for i, r := range m.Data.Rects {
		def, err := m.definition(r.Tile)
		if err != nil {
			return fmt.Errorf("rect %d: %w", i, err)
		}
		m.elements = append(m.elements, element.NewRect(geometry.Point{X: r.X, Y: r.Y}, r.Width, r.Height, def.RGBA()))
	}

	for i, md := range m.Data.Masks {
		def, err := m.definition(md.Tile)
		if err != nil {
			return fmt.Errorf("mask %d: %w", i, err)
		}
		mask, err := element.LoadMask(resolve(baseDir, md.Path), geometry.Point{X: md.X, Y: md.Y}, def.RGBA())
		if err != nil {
			return fmt.Errorf("mask %d: %w", i, err)
		}
		m.elements = append(m.elements, mask)
	}

	for i, d := range m.Data.Doors {
		def, err := m.definition(d.Tile)
		if err != nil {
			return fmt.Errorf("door %d: %w", i, err)
		}
		speed := d.OpenSpeed
		if speed <= 0 {
			speed = 1
		}
		radius := d.TriggerRadius
		if radius <= 0 {
			radius = 2
		}
		frame := element.NewRect(geometry.Point{X: d.X, Y: d.Y}, d.Width, d.Height, def.RGBA())
		door := element.NewDoor(*frame, speed, radius)
		m.doors = append(m.doors, door)
		m.elements = append(m.elements, door)
	}

	return nil
}

func (m *Map) definition(name string) (*palette.Definition, error) {
	def, ok := m.Palette.Get(name)
	if !ok {
		return nil, fmt.Errorf("tile not found in palette: %s", name)
	}
	return def, nil
}

func resolve(baseDir, path string) string {
	if filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}

// Elements returns every element in declaration order: tile masks, rects,
// image masks, then doors.
func (m *Map) Elements() []element.Element {
	out := make([]element.Element, len(m.elements))
	copy(out, m.elements)
	return out
}

// Doors returns the map's doors.
func (m *Map) Doors() []*element.Door {
	return m.doors
}

// Bounds returns the map extent in cells.
func (m *Map) Bounds() geometry.Bounds {
	return geometry.Bounds{Width: m.Data.Width, Height: m.Data.Height}
}

// Spawn returns the viewer start position.
func (m *Map) Spawn() geometry.Coordinate {
	return geometry.Coordinate{X: m.Data.Spawn.X, Y: m.Data.Spawn.Y}
}

// Heading returns the viewer start heading.
func (m *Map) Heading() geometry.Radians {
	return geometry.FromDegrees(m.Data.HeadingDegrees)
}

// GetTileAt returns the palette name drawn at the given grid coordinates, or
// "" for an empty tile.
func (m *Map) GetTileAt(x, y int) (string, error) {
	if x < 0 || x >= m.Data.Width || y < 0 || y >= m.Data.Height {
		return "", fmt.Errorf("coordinates out of bounds: (%d, %d)", x, y)
	}
	if len(m.Data.Tiles) == 0 {
		return "", nil
	}
	def, ok := m.Palette.ByGlyph([]rune(m.Data.Tiles[y])[x])
	if !ok {
		return "", nil
	}
	return def.Name, nil
}

// BlocksSight returns whether any element occupies the given cell
func (m *Map) BlocksSight(x, y int) bool {
	p := geometry.Point{X: x, Y: y}
	for _, el := range m.elements {
		if element.Contains(el, p) {
			return true
		}
	}
	return false
}
