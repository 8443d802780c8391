// Command gridcaster opens a window with a first-person view of a grid map.
package main

import (
	"flag"

	"github.com/golang/glog"

	"chosenoffset.com/gridcaster/internal/config"
	"chosenoffset.com/gridcaster/internal/game"
	ebitenrender "chosenoffset.com/gridcaster/internal/render/ebiten"
	"chosenoffset.com/gridcaster/internal/world/maploader"
)

var (
	configPath = flag.String("config", "data/config.json", "Settings file; defaults are used if it does not exist")
	mapPath    = flag.String("map", "data", "Map file, or a directory whose first map is loaded")
)

func main() {
	flag.Parse()
	defer glog.Flush()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		glog.Exitf("Failed to load config: %v", err)
	}

	path, err := maploader.Resolve(*mapPath)
	if err != nil {
		glog.Exitf("Failed to find map: %v", err)
	}
	m, err := maploader.LoadMap(path)
	if err != nil {
		glog.Exitf("Failed to load map: %v", err)
	}

	sc := game.NewScene(cfg, m)
	frames := game.NewPipeline(cfg, sc)
	defer frames.Close()

	// Initialize the renderer backend (ebiten)
	renderer := ebitenrender.NewRenderer()
	inputMgr := ebitenrender.NewInputManager()
	engine := ebitenrender.NewEngine()

	g := game.New(cfg, sc, frames, renderer, inputMgr)

	// Set up the window
	engine.SetWindowSize(cfg.Resolution.Width, cfg.Resolution.Height)
	engine.SetWindowTitle("gridcaster - " + m.Data.Name)

	glog.Infof("Starting viewer on %s", path)
	if err := engine.RunGame(g); err != nil {
		glog.Errorf("Game loop failed: %v", err)
	}
}
