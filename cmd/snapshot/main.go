// Command snapshot renders a single frame of a grid map to a PNG file.
package main

import (
	"flag"
	"time"

	"github.com/golang/glog"

	"chosenoffset.com/gridcaster/internal/config"
	"chosenoffset.com/gridcaster/internal/game"
	"chosenoffset.com/gridcaster/internal/render/raster"
	"chosenoffset.com/gridcaster/internal/world/maploader"
)

var (
	configPath = flag.String("config", "data/config.json", "Settings file; defaults are used if it does not exist")
	mapPath    = flag.String("map", "data", "Map file, or a directory whose first map is loaded")
	outPath    = flag.String("out", "frame.png", "Output PNG path")
	settle     = flag.Duration("settle", 0, "Simulated time to run before the snapshot, so doors can move")
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

	g := game.New(cfg, sc, frames, raster.NewRenderer(), nil)
	for elapsed := time.Duration(0); elapsed < *settle; elapsed += time.Second / 60 {
		if err := g.Update(); err != nil {
			glog.Exitf("Update failed: %v", err)
		}
	}

	screen := raster.NewImage(cfg.Resolution.Width, cfg.Resolution.Height)
	defer screen.Dispose()
	g.Draw(screen)
	if g.Stats.Frames == 0 {
		glog.Warningf("Frame was dropped; the snapshot shows only the backdrop")
	}

	if err := screen.SavePNG(*outPath); err != nil {
		glog.Exitf("Failed to write snapshot: %v", err)
	}
	glog.Infof("Wrote %s (%d walls)", *outPath, g.Stats.Walls)
}
