// Package projection maps wall endpoints to screen space and orders the
// resulting polygons for painter's-algorithm drawing.
package projection

import (
	"image"
	"image/color"
	"math"

	"chosenoffset.com/gridcaster/internal/core/geometry"
	"chosenoffset.com/gridcaster/internal/core/raycast"
)

// Resolution is the output size in pixels.
type Resolution struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Projector holds the fixed camera parameters. VerticalFOV is in radians,
// WallHeight in cells.
type Projector struct {
	Resolution  Resolution
	VerticalFOV float64
	WallHeight  float64
}

// ScreenPoint is an offset from the screen center; X grows to the right and
// Y grows upward.
type ScreenPoint struct {
	X, Y float64
}

// Polygon is the on-screen quad of one wall.
type Polygon struct {
	Area     [4]ScreenPoint
	Color    color.RGBA
	Distance float64 // From the viewer to the wall's midpoint
}

// PointWidth returns the horizontal screen offset of target. A target inside
// the field of view maps linearly from -W/2 at fov.Start to W/2 at fov.End.
// Targets outside are extrapolated past the nearer edge.
func (p Projector) PointWidth(fov geometry.Angle, viewer, target geometry.Coordinate) float64 {
	w := float64(p.Resolution.Width)
	span := float64(fov.Value())
	if span == 0 {
		return 0
	}

	bearing := viewer.Bearing(target)
	if fov.IsInside(bearing) {
		return (float64(bearing.Sub(fov.Start))/span - 0.5) * w
	}

	before := float64(fov.Start.Sub(bearing))
	after := float64(bearing.Sub(fov.End))
	if before < after {
		return -w/2 - before/span*w
	}
	return w/2 + after/span*w
}

// PointHeight returns half the screen height of a wall standing at target.
func (p Projector) PointHeight(viewer, target geometry.Coordinate) float64 {
	h := float64(p.Resolution.Height)
	half := p.VerticalFOV / 2
	if half <= 0 {
		return 0
	}
	d := viewer.Distance(target)
	return math.Atan2(p.WallHeight/2, d) / half * h / 2
}

// Project turns a wall into its screen quad: top-start, top-end,
// bottom-end, bottom-start.
func (p Projector) Project(fov geometry.Angle, viewer geometry.Coordinate, w raycast.Wall) Polygon {
	start, end := w.Start.Coordinate(), w.End.Coordinate()
	ws, hs := p.PointWidth(fov, viewer, start), p.PointHeight(viewer, start)
	we, he := p.PointWidth(fov, viewer, end), p.PointHeight(viewer, end)
	return Polygon{
		Area: [4]ScreenPoint{
			{X: ws, Y: hs},
			{X: we, Y: he},
			{X: we, Y: -he},
			{X: ws, Y: -hs},
		},
		Color:    w.Color,
		Distance: viewer.Distance(geometry.Coordinate{X: (start.X + end.X) / 2, Y: (start.Y + end.Y) / 2}),
	}
}

// Polygons projects walls in back-to-front order.
func (p Projector) Polygons(fov geometry.Angle, viewer geometry.Coordinate, walls raycast.Walls) []Polygon {
	order := EmissionOrder(viewer, walls)
	out := make([]Polygon, 0, len(order))
	for _, i := range order {
		out = append(out, p.Project(fov, viewer, walls[i]))
	}
	return out
}

// Pixels converts the polygon to absolute pixel positions with y growing
// downward.
func (pg Polygon) Pixels(res Resolution) [4]image.Point {
	var out [4]image.Point
	for i, sp := range pg.Area {
		x, y := pg.pixel(res, sp)
		out[i] = image.Point{X: int(math.Round(x)), Y: int(math.Round(y))}
	}
	return out
}

// Vertices is Pixels without rounding.
func (pg Polygon) Vertices(res Resolution) [4][2]float32 {
	var out [4][2]float32
	for i, sp := range pg.Area {
		x, y := pg.pixel(res, sp)
		out[i] = [2]float32{float32(x), float32(y)}
	}
	return out
}

func (pg Polygon) pixel(res Resolution, sp ScreenPoint) (float64, float64) {
	return sp.X + float64(res.Width)/2, float64(res.Height)/2 - sp.Y
}

// EmissionOrder returns wall indices farthest-first. Walls are taken in sweep
// order; a wall whose successor starts farther away than it ends is held back
// until everything after it has been emitted. Equal distances do not count as
// farther.
func EmissionOrder(viewer geometry.Coordinate, walls raycast.Walls) []int {
	n := len(walls)
	order := make([]int, 0, n)
	var held []int
	for i := 0; i < n; i++ {
		if i+1 < n && farther(viewer, walls[i+1], walls[i]) {
			held = append(held, i)
			continue
		}
		order = append(order, i)
	}
	for k := len(held) - 1; k >= 0; k-- {
		order = append(order, held[k])
	}
	return order
}

// farther reports whether next starts farther from viewer than cur ends.
func farther(viewer geometry.Coordinate, next, cur raycast.Wall) bool {
	return viewer.Distance(next.Start.Coordinate()) > viewer.Distance(cur.End.Coordinate())
}
