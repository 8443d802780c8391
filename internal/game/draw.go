package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang/glog"

	"chosenoffset.com/gridcaster/internal/core/pipeline"
	"chosenoffset.com/gridcaster/internal/core/projection"
	"chosenoffset.com/gridcaster/internal/render"
)

// Draw renders the game to the screen.
func (g *Game) Draw(screen render.Image) {
	g.refresh()

	w, h := screen.Size()
	g.Renderer.FillRect(screen, 0, 0, float32(w), float32(h)/2, g.ceiling)
	g.Renderer.FillRect(screen, 0, float32(h)/2, float32(w), float32(h)-float32(h)/2, g.floor)

	res := projection.Resolution{Width: w, Height: h}
	pts := make([]render.Point, 4)
	for _, pg := range g.polygons {
		for i, v := range pg.Vertices(res) {
			pts[i] = render.Point{X: v[0], Y: v[1]}
		}
		c := pg.Color
		if g.Lights != nil {
			c = g.Lights.Shade(c, pg.Distance)
		}
		g.Renderer.FillPolygon(screen, pts, c)
	}

	g.drawUI(screen)
}

// refresh fetches the next frame. A dropped frame keeps the last polygons.
func (g *Game) refresh() {
	if g.Frames == nil {
		return
	}
	ctx := context.Background()
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	frame, err := g.Frames.Frame(ctx)
	switch {
	case err == nil:
		g.polygons = frame.Polygons
		g.Stats.Frames++
		g.Stats.Walls = len(frame.Walls)
	case errors.Is(err, pipeline.ErrFrameDropped):
		g.Stats.Dropped++
		if len(g.Messages) == 0 {
			g.ShowMessage("Frame dropped")
		}
	default:
		glog.V(1).Infof("No frame: %v", err)
	}
}

func (g *Game) drawUI(screen render.Image) {
	td, ok := g.Renderer.(render.TextDrawer)
	if !ok {
		return
	}

	// Draw on-screen messages
	y := 50
	for _, msg := range g.Messages {
		td.DrawText(screen, msg.Text, 20, y)
		y += 20
	}

	if g.ShowHUD {
		v := g.Scene.Viewer()
		td.DrawText(screen, fmt.Sprintf("pos %.2f,%.2f  heading %.0f°", v.Position.X, v.Position.Y, v.Heading().Degrees()), 4, 4)
		td.DrawText(screen, fmt.Sprintf("frames %d  dropped %d  walls %d", g.Stats.Frames, g.Stats.Dropped, g.Stats.Walls), 4, 20)
	}
}
