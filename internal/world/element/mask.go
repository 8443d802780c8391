package element

import (
	"fmt"
	"image"
	"image/color"
	"os"

	// Mask images may be PNG or BMP.
	_ "image/png"

	_ "golang.org/x/image/bmp"

	"chosenoffset.com/gridcaster/internal/core/geometry"
)

// Mask is a pixel mask: every set pixel occupies one cell, offset by Origin.
type Mask struct {
	Origin geometry.Point
	width  int
	height int
	bits   []bool
	fill   color.RGBA
}

// NewMask creates an empty width x height mask.
func NewMask(origin geometry.Point, width, height int, fill color.RGBA) *Mask {
	return &Mask{
		Origin: origin,
		width:  width,
		height: height,
		bits:   make([]bool, width*height),
		fill:   fill,
	}
}

// NewMaskFromRows builds a mask from text rows, setting every cell whose rune
// equals glyph.
func NewMaskFromRows(origin geometry.Point, rows []string, glyph rune, fill color.RGBA) *Mask {
	width := 0
	for _, row := range rows {
		width = max(width, len([]rune(row)))
	}
	m := NewMask(origin, width, len(rows), fill)
	for y, row := range rows {
		for x, r := range []rune(row) {
			if r == glyph {
				m.Set(x, y, true)
			}
		}
	}
	return m
}

// NewMaskFromImage builds a mask from an image; a pixel is set when its alpha
// is non-zero.
func NewMaskFromImage(img image.Image, origin geometry.Point, fill color.RGBA) *Mask {
	b := img.Bounds()
	m := NewMask(origin, b.Dx(), b.Dy(), fill)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a > 0 {
				m.Set(x-b.Min.X, y-b.Min.Y, true)
			}
		}
	}
	return m
}

// LoadMask decodes a PNG or BMP file into a mask.
func LoadMask(path string, origin geometry.Point, fill color.RGBA) (*Mask, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open mask %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode mask %s: %w", path, err)
	}
	return NewMaskFromImage(img, origin, fill), nil
}

// Set marks local cell (x, y) as occupied or free. Out-of-range cells are
// ignored.
func (m *Mask) Set(x, y int, on bool) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return
	}
	m.bits[y*m.width+x] = on
}

// Size returns the mask dimensions in cells.
func (m *Mask) Size() (width, height int) {
	return m.width, m.height
}

// Count returns the number of occupied cells.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}

// IsPointInObject implements Element.
func (m *Mask) IsPointInObject(p geometry.Point) bool {
	x, y := p.X-m.Origin.X, p.Y-m.Origin.Y
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return false
	}
	return m.bits[y*m.width+x]
}

// Color implements Element.
func (m *Mask) Color() color.RGBA {
	return m.fill
}
