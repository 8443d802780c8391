// Package raycast walks rays across the map grid and collapses the
// boundaries they hit into wall segments.
package raycast

import (
	"image/color"
	"math"

	"chosenoffset.com/gridcaster/internal/core/geometry"
	"chosenoffset.com/gridcaster/internal/world/element"
)

// lineEpsilon matches the snapping tolerance of geometry.GetNext.
const lineEpsilon = 1e-9

// Boundary is one color transition found along a ray: the ray entered Cell
// through the grid edge From-To and some element's occupancy changed there.
type Boundary struct {
	Cell     geometry.Point
	From     geometry.Point
	To       geometry.Point
	Color    color.RGBA
	Distance float64
	Entering bool // false when the ray leaves the element
}

// Caster walks single rays. The zero MaxDistance and MaxBoundaries mean no
// limit; Bounds always stops the walk.
type Caster struct {
	Bounds        geometry.Bounds
	MaxDistance   float64
	MaxBoundaries int
}

// Cast walks ray from origin and reports every boundary crossed, in order
// along the ray. Boundaries from different elements at the same cell are all
// reported.
func (c Caster) Cast(ray geometry.LinearGraph, origin geometry.Coordinate, elements []element.Element) []Boundary {
	sx, sy := ray.Steps()
	cell := startCell(origin, sx, sy)

	inside := make([]bool, len(elements))
	for i, el := range elements {
		inside[i] = element.Contains(el, cell)
	}

	w := walk{caster: c, elements: elements, inside: inside}
	pos := origin
	for {
		next := geometry.GetNext(ray, pos)
		pos = next.At
		dist := origin.Distance(pos)
		if c.MaxDistance > 0 && dist > c.MaxDistance {
			return w.found
		}

		switch next.Line {
		case geometry.VerticalLine:
			cell.X += sx
			if !w.enter(cell, verticalEdge(cell, sx), dist) {
				return w.found
			}
		case geometry.HorizontalLine:
			cell.Y += sy
			if !w.enter(cell, horizontalEdge(cell, sy), dist) {
				return w.found
			}
		case geometry.Corner:
			// Horizontal line first, then the diagonal cell.
			cell.Y += sy
			if !w.enter(cell, horizontalEdge(cell, sy), dist) {
				return w.found
			}
			cell.X += sx
			if !w.enter(cell, verticalEdge(cell, sx), dist) {
				return w.found
			}
		}
	}
}

type walk struct {
	caster   Caster
	elements []element.Element
	inside   []bool
	found    []Boundary
}

// enter tests every element at cell and reports whether the walk goes on.
func (w *walk) enter(cell geometry.Point, edge [2]geometry.Point, dist float64) bool {
	if !w.caster.Bounds.Contains(cell) {
		return false
	}
	for i, el := range w.elements {
		now := element.Contains(el, cell)
		if now == w.inside[i] {
			continue
		}
		w.inside[i] = now
		w.found = append(w.found, Boundary{
			Cell:     cell,
			From:     edge[0],
			To:       edge[1],
			Color:    el.Color(),
			Distance: dist,
			Entering: now,
		})
		if w.caster.MaxBoundaries > 0 && len(w.found) >= w.caster.MaxBoundaries {
			return false
		}
	}
	return true
}

// startCell is the cell the ray starts in. A viewer sitting on a grid line
// belongs to the cell the ray heads into.
func startCell(origin geometry.Coordinate, sx, sy int) geometry.Point {
	return geometry.Point{X: startIndex(origin.X, sx), Y: startIndex(origin.Y, sy)}
}

func startIndex(v float64, step int) int {
	n := math.Round(v)
	if math.Abs(v-n) > lineEpsilon {
		return int(math.Floor(v))
	}
	if step < 0 {
		return int(n) - 1
	}
	return int(n)
}

// verticalEdge is the x = const edge crossed to enter cell moving sx.
func verticalEdge(cell geometry.Point, sx int) [2]geometry.Point {
	x := cell.X
	if sx < 0 {
		x++
	}
	return [2]geometry.Point{{X: x, Y: cell.Y}, {X: x, Y: cell.Y + 1}}
}

// horizontalEdge is the y = const edge crossed to enter cell moving sy.
func horizontalEdge(cell geometry.Point, sy int) [2]geometry.Point {
	y := cell.Y
	if sy < 0 {
		y++
	}
	return [2]geometry.Point{{X: cell.X, Y: y}, {X: cell.X + 1, Y: y}}
}
