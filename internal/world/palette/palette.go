// Package palette maps the names and glyphs used in map files to element
// colors and properties.
package palette

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Definition describes one kind of map element.
type Definition struct {
	Name       string                 `json:"name"`       // Semantic name (e.g., "brick")
	Glyph      string                 `json:"glyph"`      // Single rune used in tile rows
	Color      string                 `json:"color"`      // Color name ("firebrick") or hex ("#b22222")
	Properties map[string]interface{} `json:"properties"` // Custom properties (blocks_sight, etc.)

	rgba color.RGBA
}

// RGBA returns the parsed color. It is only valid once the definition has
// been added to a Palette.
func (d *Definition) RGBA() color.RGBA {
	return d.rgba
}

// GetPropertyBool returns a boolean property with a default fallback.
func (d *Definition) GetPropertyBool(key string, defaultValue bool) bool {
	if d.Properties == nil {
		return defaultValue
	}
	val, ok := d.Properties[key]
	if !ok {
		return defaultValue
	}
	boolVal, ok := val.(bool)
	if !ok {
		return defaultValue
	}
	return boolVal
}

// GetPropertyString returns a string property with a default fallback.
func (d *Definition) GetPropertyString(key string, defaultValue string) string {
	if d.Properties == nil {
		return defaultValue
	}
	val, ok := d.Properties[key]
	if !ok {
		return defaultValue
	}
	strVal, ok := val.(string)
	if !ok {
		return defaultValue
	}
	return strVal
}

// GetPropertyFloat returns a numeric property with a default fallback.
// JSON numbers decode as float64.
func (d *Definition) GetPropertyFloat(key string, defaultValue float64) float64 {
	if d.Properties == nil {
		return defaultValue
	}
	val, ok := d.Properties[key]
	if !ok {
		return defaultValue
	}
	floatVal, ok := val.(float64)
	if !ok {
		return defaultValue
	}
	return floatVal
}

// Palette is a validated set of definitions with lookups by name and glyph.
type Palette struct {
	Definitions []Definition
	byName      map[string]*Definition
	byGlyph     map[rune]*Definition
}

// New validates defs and builds the lookups.
func New(defs []Definition) (*Palette, error) {
	p := &Palette{
		Definitions: make([]Definition, len(defs)),
		byName:      make(map[string]*Definition),
		byGlyph:     make(map[rune]*Definition),
	}
	copy(p.Definitions, defs)

	for i := range p.Definitions {
		def := &p.Definitions[i]
		if def.Name == "" {
			return nil, fmt.Errorf("palette entry %d has no name", i)
		}
		if _, dup := p.byName[def.Name]; dup {
			return nil, fmt.Errorf("duplicate palette entry: %s", def.Name)
		}

		rgba, err := ParseColor(def.Color)
		if err != nil {
			return nil, fmt.Errorf("invalid color for %s: %w", def.Name, err)
		}
		def.rgba = rgba
		p.byName[def.Name] = def

		if def.Glyph == "" {
			continue
		}
		glyph := []rune(def.Glyph)
		if len(glyph) != 1 || glyph[0] == ' ' || glyph[0] == '.' {
			return nil, fmt.Errorf("invalid glyph %q for %s", def.Glyph, def.Name)
		}
		if other, dup := p.byGlyph[glyph[0]]; dup {
			return nil, fmt.Errorf("glyph %q used by both %s and %s", def.Glyph, other.Name, def.Name)
		}
		p.byGlyph[glyph[0]] = def
	}

	return p, nil
}

// Load reads a JSON array of definitions from path.
func Load(path string) (*Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read palette %s: %w", path, err)
	}

	var defs []Definition
	if err := json.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("failed to parse palette %s: %w", path, err)
	}

	return New(defs)
}

// Get returns a definition by name.
func (p *Palette) Get(name string) (*Definition, bool) {
	def, ok := p.byName[name]
	return def, ok
}

// ByGlyph returns the definition drawn with glyph r.
func (p *Palette) ByGlyph(r rune) (*Definition, bool) {
	def, ok := p.byGlyph[r]
	return def, ok
}

// ParseColor accepts an SVG color name or #rrggbb / #rrggbbaa.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.RGBA{}, fmt.Errorf("empty color")
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c, nil
	}
	if !strings.HasPrefix(s, "#") {
		return color.RGBA{}, fmt.Errorf("unknown color %q", s)
	}

	hex := s[1:]
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("malformed hex color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("malformed hex color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
