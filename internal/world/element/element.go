// Package element defines the map objects the ray caster queries and the
// concrete element kinds a map can contain.
package element

import (
	"image/color"
	"time"

	"github.com/golang/glog"

	"chosenoffset.com/gridcaster/internal/core/geometry"
)

// Element is an opaque map object. Implementations must be safe to query
// from several ray-casting workers at once.
type Element interface {
	// IsPointInObject reports whether grid cell p is occupied by the element.
	IsPointInObject(p geometry.Point) bool

	// Color is the color of every boundary of the element.
	Color() color.RGBA
}

// Animated elements change shape over time. Update is only called between
// frames, never while a frame is being cast.
type Animated interface {
	Update(dt time.Duration)
}

// PositionObserver elements react to the viewer moving.
type PositionObserver interface {
	OnPositionUpdate(pos geometry.Coordinate)
}

// Contains queries el for cell p. A panicking query is treated as an empty
// cell so a broken element renders as open space.
func Contains(el Element, p geometry.Point) (inside bool) {
	defer func() {
		if r := recover(); r != nil {
			glog.V(1).Infof("element query at %v panicked: %v", p, r)
			inside = false
		}
	}()
	return el.IsPointInObject(p)
}

// Rect is an axis-aligned block of cells.
type Rect struct {
	Min    geometry.Point
	Width  int
	Height int
	Fill   color.RGBA
}

// NewRect creates a block of width x height cells whose top-left cell is min.
func NewRect(min geometry.Point, width, height int, fill color.RGBA) *Rect {
	return &Rect{Min: min, Width: width, Height: height, Fill: fill}
}

// IsPointInObject implements Element.
func (r *Rect) IsPointInObject(p geometry.Point) bool {
	return p.X >= r.Min.X && p.X < r.Min.X+r.Width &&
		p.Y >= r.Min.Y && p.Y < r.Min.Y+r.Height
}

// Color implements Element.
func (r *Rect) Color() color.RGBA {
	return r.Fill
}
