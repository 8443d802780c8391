package raycast

import (
	"image/color"
	"math"
	"testing"

	"chosenoffset.com/gridcaster/internal/core/geometry"
	"chosenoffset.com/gridcaster/internal/world/element"
)

var (
	red  = color.RGBA{R: 255, A: 255}
	blue = color.RGBA{B: 255, A: 255}
)

func pt(x, y int) geometry.Point {
	return geometry.Point{X: x, Y: y}
}

func TestCastStraightRay(t *testing.T) {
	c := Caster{Bounds: geometry.Bounds{Width: 10, Height: 10}}
	block := element.NewRect(pt(3, 0), 1, 1, red)

	got := c.Cast(geometry.NewLinearGraph(0), geometry.Coordinate{X: 0.5, Y: 0.5}, []element.Element{block})
	if len(got) != 2 {
		t.Fatalf("Expected 2 boundaries, got %d: %v", len(got), got)
	}

	in := got[0]
	if !in.Entering || in.Cell != pt(3, 0) || in.From != pt(3, 0) || in.To != pt(3, 1) {
		t.Errorf("Expected entry into (3,0) across x=3, got %+v", in)
	}
	if math.Abs(in.Distance-2.5) > 1e-9 {
		t.Errorf("Expected entry distance 2.5, got %v", in.Distance)
	}
	if in.Color != red {
		t.Errorf("Expected red boundary, got %v", in.Color)
	}

	out := got[1]
	if out.Entering || out.Cell != pt(4, 0) || out.From != pt(4, 0) {
		t.Errorf("Expected exit into (4,0) across x=4, got %+v", out)
	}
}

func TestCastNegativeDirection(t *testing.T) {
	c := Caster{Bounds: geometry.Bounds{Width: 10, Height: 10}}
	block := element.NewRect(pt(2, 4), 1, 1, red)

	west := c.Cast(geometry.NewLinearGraph(geometry.Half), geometry.Coordinate{X: 5.5, Y: 4.5}, []element.Element{block})
	if len(west) == 0 || west[0].From != pt(3, 4) || west[0].To != pt(3, 5) {
		t.Fatalf("Expected entry across x=3 going west, got %v", west)
	}

	north := c.Cast(geometry.NewLinearGraph(geometry.ThreeQuarter), geometry.Coordinate{X: 2.5, Y: 8.5}, []element.Element{block})
	if len(north) == 0 || north[0].From != pt(2, 5) || north[0].To != pt(3, 5) {
		t.Fatalf("Expected entry across y=5 going north, got %v", north)
	}
	if math.Abs(north[0].Distance-3.5) > 1e-9 {
		t.Errorf("Expected distance 3.5, got %v", north[0].Distance)
	}
}

func TestCastLimits(t *testing.T) {
	block := element.NewRect(pt(3, 0), 1, 1, red)
	els := []element.Element{block}
	ray := geometry.NewLinearGraph(0)
	origin := geometry.Coordinate{X: 0.5, Y: 0.5}

	c := Caster{Bounds: geometry.Bounds{Width: 10, Height: 10}, MaxBoundaries: 1}
	if got := c.Cast(ray, origin, els); len(got) != 1 {
		t.Errorf("Expected 1 boundary with MaxBoundaries 1, got %d", len(got))
	}

	c = Caster{Bounds: geometry.Bounds{Width: 10, Height: 10}, MaxDistance: 2}
	if got := c.Cast(ray, origin, els); len(got) != 0 {
		t.Errorf("Expected no boundaries within distance 2, got %v", got)
	}

	c = Caster{Bounds: geometry.Bounds{Width: 3, Height: 10}}
	if got := c.Cast(ray, origin, els); len(got) != 0 {
		t.Errorf("Expected walk to stop at the map edge, got %v", got)
	}
}

func TestCastFromInsideElement(t *testing.T) {
	c := Caster{Bounds: geometry.Bounds{Width: 10, Height: 10}}
	block := element.NewRect(pt(3, 0), 1, 1, red)

	got := c.Cast(geometry.NewLinearGraph(0), geometry.Coordinate{X: 3.5, Y: 0.5}, []element.Element{block})
	if len(got) != 1 || got[0].Entering || got[0].Cell != pt(4, 0) {
		t.Errorf("Expected a single exit boundary, got %v", got)
	}
}

func TestCastOverlappingElements(t *testing.T) {
	c := Caster{Bounds: geometry.Bounds{Width: 10, Height: 10}}
	a := element.NewRect(pt(3, 0), 2, 1, red)
	b := element.NewRect(pt(3, 0), 1, 1, blue)

	got := c.Cast(geometry.NewLinearGraph(0), geometry.Coordinate{X: 0.5, Y: 0.5}, []element.Element{a, b})
	if len(got) != 4 {
		t.Fatalf("Expected 4 boundaries, got %d: %v", len(got), got)
	}
	if got[0].Color != red || got[1].Color != blue || got[0].Cell != got[1].Cell {
		t.Errorf("Expected both elements entered at (3,0), got %v", got[:2])
	}
}

func TestQuarterFanFindsSingleWall(t *testing.T) {
	c := Caster{Bounds: geometry.Bounds{Width: 100, Height: 100}}
	block := element.NewRect(pt(1, 0), 1, 1, red)
	rays := geometry.GenerateAllRays(8)
	fov := geometry.NewAngle(0, geometry.Quarter)

	walls := c.CastRanges(rays, fov.RaysIndexRange(8), geometry.Coordinate{}, []element.Element{block})
	if len(walls) != 1 {
		t.Fatalf("Expected 1 wall, got %d: %v", len(walls), walls)
	}
	want := Wall{Start: pt(1, 0), End: pt(1, 1), Color: red}
	if walls[0] != want {
		t.Errorf("Expected %v, got %v", want, walls[0])
	}
}

func TestAggregatorOrientsBySweep(t *testing.T) {
	agg := NewAggregator(geometry.Coordinate{X: 0.5, Y: 0.5})

	// South of the viewer the sweep runs from east to west.
	agg.Add(Boundary{From: pt(0, 3), To: pt(1, 3), Color: red, Entering: true})
	w := agg.Walls()
	if len(w) != 1 || w[0].Start != pt(1, 3) || w[0].End != pt(0, 3) {
		t.Errorf("Expected wall (1,3)->(0,3), got %v", w)
	}

	agg = NewAggregator(geometry.Coordinate{X: 0.5, Y: 0.5})
	agg.AddRay([]Boundary{
		{From: pt(4, 0), To: pt(4, 1), Color: blue, Entering: false},
		{From: pt(6, 0), To: pt(6, 1), Color: red, Entering: true},
	})
	w = agg.Walls()
	if len(w) != 1 || w[0].Color != red {
		t.Errorf("Expected the first entering boundary, got %v", w)
	}

	agg.AddRay(nil)
	if len(agg.Walls()) != 1 {
		t.Errorf("Expected empty ray to add nothing, got %v", agg.Walls())
	}
}

func TestPushFusesCollinearWalls(t *testing.T) {
	tests := []struct {
		name string
		push []Wall
		want int
	}{
		{"touching", []Wall{{pt(5, 0), pt(5, 1), red}, {pt(5, 1), pt(5, 2), red}}, 1},
		{"overlapping", []Wall{{pt(5, 0), pt(5, 2), red}, {pt(5, 1), pt(5, 3), red}}, 1},
		{"same edge", []Wall{{pt(5, 0), pt(5, 1), red}, {pt(5, 0), pt(5, 1), red}}, 1},
		{"gap", []Wall{{pt(5, 0), pt(5, 1), red}, {pt(5, 2), pt(5, 3), red}}, 2},
		{"color", []Wall{{pt(5, 0), pt(5, 1), red}, {pt(5, 1), pt(5, 2), blue}}, 2},
		{"direction", []Wall{{pt(5, 0), pt(5, 1), red}, {pt(5, 2), pt(5, 1), red}}, 2},
		{"parallel", []Wall{{pt(5, 0), pt(5, 1), red}, {pt(6, 1), pt(6, 2), red}}, 2},
		{"perpendicular", []Wall{{pt(5, 0), pt(5, 1), red}, {pt(5, 1), pt(6, 1), red}}, 2},
		{"horizontal", []Wall{{pt(3, 2), pt(2, 2), red}, {pt(2, 2), pt(1, 2), red}}, 1},
	}
	for _, tt := range tests {
		var ws Walls
		for _, w := range tt.push {
			ws.Push(w)
		}
		if len(ws) != tt.want {
			t.Errorf("%s: expected %d walls, got %d: %v", tt.name, tt.want, len(ws), ws)
		}
	}

	var ws Walls
	ws.Push(Wall{pt(3, 2), pt(2, 2), red})
	ws.Push(Wall{pt(2, 2), pt(0, 2), red})
	if ws[0].Start != pt(3, 2) || ws[0].End != pt(0, 2) {
		t.Errorf("Expected fused wall to keep its direction, got %v", ws[0])
	}
}

func TestPushCascadesBackward(t *testing.T) {
	ws := Walls{
		{pt(5, 0), pt(5, 1), red},
		{pt(5, 3), pt(5, 4), red},
	}
	ws.Push(Wall{pt(5, 1), pt(5, 3), red})
	if len(ws) != 1 {
		t.Fatalf("Expected cascade into 1 wall, got %v", ws)
	}
	if ws[0].Start != pt(5, 0) || ws[0].End != pt(5, 4) || ws[0].Length() != 4 {
		t.Errorf("Expected (5,0)->(5,4), got %v", ws[0])
	}
}

func TestMergeStitchesSeam(t *testing.T) {
	left := Walls{
		{pt(1, 1), pt(2, 1), blue},
		{pt(5, 0), pt(5, 2), red},
	}
	right := Walls{
		{pt(5, 2), pt(5, 4), red},
		{pt(4, 6), pt(3, 6), blue},
	}

	got := left.Merge(right)
	if len(got) != 3 {
		t.Fatalf("Expected 3 walls, got %v", got)
	}
	if got[1].Start != pt(5, 0) || got[1].End != pt(5, 4) {
		t.Errorf("Expected seam walls fused into (5,0)->(5,4), got %v", got[1])
	}
	if left[1].End != pt(5, 2) || len(left) != 2 {
		t.Errorf("Expected receiver to be unchanged, got %v", left)
	}

	if got := Walls(nil).Merge(right); len(got) != 2 {
		t.Errorf("Expected merge into empty to keep 2 walls, got %v", got)
	}
	if got := left.Merge(nil); len(got) != 2 {
		t.Errorf("Expected merge of empty to keep 2 walls, got %v", got)
	}
}

func TestCompactIsIdempotent(t *testing.T) {
	ws := Walls{
		{pt(5, 0), pt(5, 1), red},
		{pt(5, 1), pt(5, 2), red},
		{pt(5, 2), pt(6, 2), red},
		{pt(6, 2), pt(7, 2), red},
	}
	once := ws.Compact()
	if len(once) != 2 {
		t.Fatalf("Expected 2 walls after compaction, got %v", once)
	}
	twice := once.Compact()
	if !equalWalls(once, twice) {
		t.Errorf("Expected compaction to be idempotent, got %v then %v", once, twice)
	}
}

var roomRows = []string{
	"###########",
	"#.........#",
	"#..##.....#",
	"#..##.....#",
	"#.........#",
	"#.........#",
	"#......#..#",
	"#......#..#",
	"#.........#",
	"#.........#",
	"###########",
}

func TestPartitionedCastMatchesSinglePass(t *testing.T) {
	c := Caster{Bounds: geometry.Bounds{Width: 11, Height: 11}}
	els := []element.Element{element.NewMaskFromRows(geometry.Point{}, roomRows, '#', red)}
	rays := geometry.GenerateAllRays(720)
	origin := geometry.Coordinate{X: 5.5, Y: 5.25}

	for _, heading := range []float64{0, 1, 3, 5.9} {
		fov := geometry.AngleAround(geometry.NewRadians(heading), math.Pi/2)
		single := c.CastRanges(rays, fov.RaysIndexRange(len(rays)), origin, els)
		if len(single) == 0 {
			t.Fatalf("heading %v: expected walls", heading)
		}

		for _, parts := range []int{1, 2, 3, 7} {
			var merged Walls
			for p := 0; p < parts; p++ {
				merged = merged.Merge(c.CastRanges(rays, fov.GetRaysAngleRange(len(rays), p, parts), origin, els))
			}
			if !equalWalls(single, merged) {
				t.Errorf("heading %v, %d parts: expected %v, got %v", heading, parts, single, merged)
			}
		}

		if again := single.Compact(); !equalWalls(single, again) {
			t.Errorf("heading %v: expected cast walls to be compacted, got %v", heading, again)
		}
	}
}

func equalWalls(a, b Walls) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
