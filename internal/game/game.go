// Package game ties the scene, the casting pipeline and a renderer into a
// playable first-person viewer.
package game

import (
	"image/color"
	"math"
	"time"

	"github.com/golang/glog"

	"chosenoffset.com/gridcaster/internal/config"
	"chosenoffset.com/gridcaster/internal/core/projection"
	"chosenoffset.com/gridcaster/internal/render"
	"chosenoffset.com/gridcaster/internal/render/lighting"
	"chosenoffset.com/gridcaster/internal/world/scene"
)

// tick is the fixed update step; ebiten calls Update 60 times a second.
const tick = time.Second / 60

// Game holds all game state and logic.
type Game struct {
	ScreenWidth  int
	ScreenHeight int
	Scene        *scene.Scene
	Frames       FrameSource
	Renderer     render.Renderer
	InputMgr     render.InputManager
	Lights       *lighting.Manager // nil draws walls fully lit

	moveSpeed float64 // cells per second
	turnSpeed float64 // radians per second
	ceiling   color.RGBA
	floor     color.RGBA
	timeout   time.Duration

	// Last good frame, kept while frames are dropped
	polygons []projection.Polygon

	// UI state
	Messages []Message
	ShowHUD  bool
	Stats    Stats
}

// New creates a game drawing frames from frames with the settings in cfg.
func New(cfg *config.Config, sc *scene.Scene, frames FrameSource, r render.Renderer, input render.InputManager) *Game {
	ceiling, floor := cfg.Backdrop()
	return &Game{
		ScreenWidth:  cfg.Resolution.Width,
		ScreenHeight: cfg.Resolution.Height,
		Scene:        sc,
		Frames:       frames,
		Renderer:     r,
		InputMgr:     input,
		Lights:       cfg.Lighting(),
		moveSpeed:    cfg.MoveSpeed,
		turnSpeed:    cfg.TurnSpeedDegrees * math.Pi / 180,
		ceiling:      ceiling,
		floor:        floor,
		timeout:      cfg.FrameTimeout(),
	}
}

// Update handles game logic updates.
func (g *Game) Update() error {
	dt := tick.Seconds()
	g.updateMessages(dt)

	if g.InputMgr != nil {
		if g.InputMgr.IsKeyJustPressed(render.KeyEscape) {
			glog.Infof("Quit requested")
			return render.ErrTerminate
		}
		if g.InputMgr.IsKeyJustPressed(render.KeyTab) {
			g.ShowHUD = !g.ShowHUD
		}
		if g.Lights != nil && g.InputMgr.IsKeyJustPressed(render.KeyL) {
			g.Lights.EnablePlayerLight(!g.Lights.IsPlayerLightOn())
		}

		var forward, turn float64
		if g.pressed(render.KeyW, render.KeyUp) {
			forward++
		}
		if g.pressed(render.KeyS, render.KeyDown) {
			forward--
		}
		// Screen y grows downward, so increasing angles turn right
		if g.pressed(render.KeyD, render.KeyRight) {
			turn++
		}
		if g.pressed(render.KeyA, render.KeyLeft) {
			turn--
		}
		if forward != 0 || turn != 0 {
			g.Scene.Move(forward*g.moveSpeed*dt, turn*g.turnSpeed*dt)
		}
	}

	g.Scene.Tick(tick)
	return nil
}

func (g *Game) pressed(keys ...render.Key) bool {
	for _, k := range keys {
		if g.InputMgr.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

// Layout returns the game's logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.ScreenWidth, g.ScreenHeight
}

func (g *Game) updateMessages(dt float64) {
	var active []Message
	for _, msg := range g.Messages {
		msg.TimeLeft -= dt
		if msg.TimeLeft > 0 {
			active = append(active, msg)
		}
	}
	g.Messages = active
}

// ShowMessage adds a new message to be displayed on screen.
func (g *Game) ShowMessage(text string) {
	g.Messages = append(g.Messages, Message{
		Text:     text,
		TimeLeft: 3.0,
		MaxTime:  3.0,
	})
	glog.V(1).Infof("Message: %s", text)
}
