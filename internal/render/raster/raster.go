// Package raster implements the render interfaces on an offscreen gg
// canvas, for snapshots and tests that run without a window.
package raster

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/gg"
	"github.com/golang/glog"

	"chosenoffset.com/gridcaster/internal/render"
)

// Renderer draws onto Images created by NewImage.
type Renderer struct{}

// NewRenderer creates a raster renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// NewImage creates a transparent canvas.
func (r *Renderer) NewImage(width, height int) render.Image {
	return NewImage(width, height)
}

// FillPolygon fills the polygon through pts.
func (r *Renderer) FillPolygon(dst render.Image, pts []render.Point, clr color.Color) {
	if len(pts) < 3 {
		return
	}
	dc := unwrap(dst).dc
	dc.SetColor(clr)
	dc.MoveTo(float64(pts[0].X), float64(pts[0].Y))
	for _, p := range pts[1:] {
		dc.LineTo(float64(p.X), float64(p.Y))
	}
	dc.ClosePath()
	if err := dc.Fill(); err != nil {
		glog.Warningf("Failed to fill polygon: %v", err)
	}
}

// FillRect fills an axis-aligned rectangle.
func (r *Renderer) FillRect(dst render.Image, x, y, width, height float32, clr color.Color) {
	dc := unwrap(dst).dc
	dc.SetColor(clr)
	dc.DrawRectangle(float64(x), float64(y), float64(width), float64(height))
	if err := dc.Fill(); err != nil {
		glog.Warningf("Failed to fill rect: %v", err)
	}
}

func unwrap(img render.Image) *Image {
	return img.(*Image)
}

// Image is a gg canvas.
type Image struct {
	dc *gg.Context
}

// NewImage creates a transparent canvas of the given size.
func NewImage(width, height int) *Image {
	return &Image{dc: gg.NewContext(width, height)}
}

// Bounds returns the bounds of the image.
func (i *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, i.dc.Width(), i.dc.Height())
}

// Size returns the width and height of the image.
func (i *Image) Size() (width, height int) {
	return i.dc.Width(), i.dc.Height()
}

// Fill fills the entire image with the given color.
func (i *Image) Fill(clr color.Color) {
	i.dc.ClearWithColor(gg.FromColor(clr))
}

// Clear clears the image to transparent.
func (i *Image) Clear() {
	i.dc.Clear()
}

// Dispose releases the canvas.
func (i *Image) Dispose() {
	if err := i.dc.Close(); err != nil {
		glog.Warningf("Failed to close canvas: %v", err)
	}
}

// Image returns the rendered pixels.
func (i *Image) Image() image.Image {
	return i.dc.Image()
}

// SavePNG writes the canvas to path.
func (i *Image) SavePNG(path string) error {
	if err := i.dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
