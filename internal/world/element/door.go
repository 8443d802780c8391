package element

import (
	"image/color"
	"time"

	"chosenoffset.com/gridcaster/internal/core/geometry"
)

// Door is a sliding block that retracts along its long axis while the viewer
// is close to it. It is mutated only between frames (OnPositionUpdate and
// Update), so concurrent queries during a frame see a stable shape.
type Door struct {
	Frame         Rect
	OpenSpeed     float64 // fraction of the door per second
	TriggerRadius float64 // cells from the door center

	open   float64
	target float64
}

// NewDoor creates a closed door filling frame.
func NewDoor(frame Rect, openSpeed, triggerRadius float64) *Door {
	return &Door{Frame: frame, OpenSpeed: openSpeed, TriggerRadius: triggerRadius}
}

// Open returns how far the door has retracted, from 0 (closed) to 1.
func (d *Door) Open() float64 {
	return d.open
}

// horizontal reports whether the door slides along x.
func (d *Door) horizontal() bool {
	return d.Frame.Width >= d.Frame.Height
}

func (d *Door) center() geometry.Coordinate {
	return geometry.Coordinate{
		X: float64(d.Frame.Min.X) + float64(d.Frame.Width)/2,
		Y: float64(d.Frame.Min.Y) + float64(d.Frame.Height)/2,
	}
}

// IsPointInObject implements Element. A cell stays solid while the sliding
// edge has not passed its center.
func (d *Door) IsPointInObject(p geometry.Point) bool {
	if !d.Frame.IsPointInObject(p) {
		return false
	}
	offset, length := p.Y-d.Frame.Min.Y, d.Frame.Height
	if d.horizontal() {
		offset, length = p.X-d.Frame.Min.X, d.Frame.Width
	}
	return float64(offset)+0.5 >= d.open*float64(length)
}

// Color implements Element.
func (d *Door) Color() color.RGBA {
	return d.Frame.Fill
}

// OnPositionUpdate implements PositionObserver.
func (d *Door) OnPositionUpdate(pos geometry.Coordinate) {
	if d.center().Distance(pos) <= d.TriggerRadius {
		d.target = 1
	} else {
		d.target = 0
	}
}

// Update implements Animated.
func (d *Door) Update(dt time.Duration) {
	step := d.OpenSpeed * dt.Seconds()
	switch {
	case d.open < d.target:
		d.open = min(d.target, d.open+step)
	case d.open > d.target:
		d.open = max(d.target, d.open-step)
	}
}
