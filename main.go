package main

import (
	"errors"
	"flag"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/stormdrop/common"
	"github.com/milk9111/stormdrop/logger"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode")
	levelName := flag.String("level", "", "level name in levels/ (basename, .json optional)")
	seed := flag.Uint64("seed", 0, "override the tuned random seed (0 keeps tuning)")
	flag.Parse()

	logger.Init()
	if *debug {
		logger.SetDebug()
	}

	var seedOverride *uint64
	if *seed != 0 {
		seedOverride = seed
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("stormdrop")
	ebiten.SetTPS(common.TPS)

	game, err := NewGame(*levelName, *debug, seedOverride)
	if err != nil {
		logger.Log.WithError(err).Fatal("failed to start")
	}
	defer game.Close()

	// Relative mouse look needs a captured cursor.
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, errQuit) {
		logger.Log.WithError(err).Fatal("game exited")
	}
}
