package raycast

import (
	"fmt"
	"image/color"

	"chosenoffset.com/gridcaster/internal/core/geometry"
)

// Wall is a straight, single-colored boundary running along one grid line.
// Start is the end the sweep reaches first.
type Wall struct {
	Start geometry.Point
	End   geometry.Point
	Color color.RGBA
}

// Vertical reports whether the wall runs along x = const.
func (w Wall) Vertical() bool {
	return w.Start.X == w.End.X && w.Start.Y != w.End.Y
}

// Horizontal reports whether the wall runs along y = const.
func (w Wall) Horizontal() bool {
	return w.Start.Y == w.End.Y && w.Start.X != w.End.X
}

// Length returns the wall length in cells.
func (w Wall) Length() int {
	if w.Vertical() {
		return abs(w.End.Y - w.Start.Y)
	}
	return abs(w.End.X - w.Start.X)
}

func (w Wall) String() string {
	return fmt.Sprintf("Wall{(%d,%d)->(%d,%d) %v}", w.Start.X, w.Start.Y, w.End.X, w.End.Y, w.Color)
}

// Walls is a sequence of walls in sweep order. No two neighbors can be fused.
type Walls []Wall

// TryExtendLastWall fuses w into the tail wall when both share a color and a
// grid line, point the same way, and touch or overlap. Fusing can make the
// tail fusable with its predecessor, so that is collapsed too.
func (ws *Walls) TryExtendLastWall(w Wall) bool {
	n := len(*ws)
	if n == 0 {
		return false
	}
	fused, ok := fuse((*ws)[n-1], w)
	if !ok {
		return false
	}
	(*ws)[n-1] = fused
	ws.collapseTail()
	return true
}

// Push extends the tail wall with w or appends it.
func (ws *Walls) Push(w Wall) {
	if !ws.TryExtendLastWall(w) {
		*ws = append(*ws, w)
	}
}

// Merge stitches other onto the end of ws. Only the seam between the tail of
// ws and the head of other is examined. Partitions must be merged in sweep
// order. The receiver is not modified.
func (ws Walls) Merge(other Walls) Walls {
	out := make(Walls, len(ws), len(ws)+len(other))
	copy(out, ws)
	for i, w := range other {
		if !out.TryExtendLastWall(w) {
			return append(out, other[i:]...)
		}
	}
	return out
}

// Compact runs every wall through Push again. For a sequence built by Push it
// returns the same walls.
func (ws Walls) Compact() Walls {
	out := make(Walls, 0, len(ws))
	for _, w := range ws {
		out.Push(w)
	}
	return out
}

func (ws *Walls) collapseTail() {
	for n := len(*ws); n >= 2; n = len(*ws) {
		fused, ok := fuse((*ws)[n-2], (*ws)[n-1])
		if !ok {
			return
		}
		(*ws)[n-2] = fused
		*ws = (*ws)[:n-1]
	}
}

// fuse joins two collinear walls of the same color and direction whose spans
// touch or overlap.
func fuse(a, b Wall) (Wall, bool) {
	if a.Color != b.Color {
		return Wall{}, false
	}

	var a0, a1, b0, b1, line int
	switch {
	case a.Vertical() && b.Vertical() && a.Start.X == b.Start.X:
		a0, a1, b0, b1, line = a.Start.Y, a.End.Y, b.Start.Y, b.End.Y, a.Start.X
	case a.Horizontal() && b.Horizontal() && a.Start.Y == b.Start.Y:
		a0, a1, b0, b1, line = a.Start.X, a.End.X, b.Start.X, b.End.X, a.Start.Y
	default:
		return Wall{}, false
	}

	dir := sign(a1 - a0)
	if dir != sign(b1-b0) {
		return Wall{}, false
	}

	aLo, aHi := min(a0, a1), max(a0, a1)
	bLo, bHi := min(b0, b1), max(b0, b1)
	if max(aLo, bLo) > min(aHi, bHi) {
		return Wall{}, false
	}

	from, to := min(aLo, bLo), max(aHi, bHi)
	if dir < 0 {
		from, to = to, from
	}
	if a.Vertical() {
		return Wall{Start: geometry.Point{X: line, Y: from}, End: geometry.Point{X: line, Y: to}, Color: a.Color}, true
	}
	return Wall{Start: geometry.Point{X: from, Y: line}, End: geometry.Point{X: to, Y: line}, Color: a.Color}, true
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
