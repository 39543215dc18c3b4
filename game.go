package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/stormdrop/config"
	"github.com/milk9111/stormdrop/ecs/system"
	"github.com/milk9111/stormdrop/logger"
	"github.com/milk9111/stormdrop/prefabs"
	"github.com/sirupsen/logrus"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

var errQuit = errors.New("quit")

type Game struct {
	frames int
	debug  bool
	seed   *uint64

	paused           bool
	restartRequested bool
	quit             bool
	pauseUI          *ebitenui.UI

	levelName string
	session   *Session
	render    *system.RenderSystem
	watcher   *prefabs.Watcher
}

// NewGame loads tuning and the level. A non-nil seed overrides the tuned
// seed.
func NewGame(levelName string, debug bool, seed *uint64) (*Game, error) {
	g := &Game{
		debug:     debug,
		seed:      seed,
		levelName: levelName,
		render:    system.NewRenderSystem(),
	}
	if err := g.restart(); err != nil {
		return nil, err
	}
	g.pauseUI = NewPauseUI(g)

	if w, err := prefabs.NewWatcher("prefabs", filepath.Join("prefabs", "scripts")); err != nil {
		logger.Log.WithError(err).Debug("prefab hot reload disabled")
	} else {
		g.watcher = w
	}
	return g, nil
}

func (g *Game) restart() error {
	tuning, err := config.Load()
	if err != nil {
		return err
	}
	if g.seed != nil {
		tuning.Seed = *g.seed
	}
	session, err := NewSession(g.levelName, tuning, system.NewInputSystem())
	if err != nil {
		return err
	}
	session.AddSystem(g.render)
	g.session = session
	return nil
}

func (g *Game) Update() error {
	g.frames++
	if g.quit {
		return errQuit
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.setPaused(!g.paused)
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}
	if g.restartRequested {
		g.restartRequested = false
		if err := g.restart(); err != nil {
			logger.Log.WithError(err).Warn("restart failed, keeping current session")
		}
	}

	g.pollReloads()
	g.session.Update()
	return nil
}

// setPaused releases the cursor while the menu is open.
func (g *Game) setPaused(paused bool) {
	g.paused = paused
	if paused {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	}
}

func (g *Game) pollReloads() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Changes:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(path)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			logger.Log.WithError(err).Warn("prefab watcher")
		default:
			return
		}
	}
}

// reload recompiles changed scripts in place; any prefab or tuning change
// restarts the level so the new values take effect everywhere.
func (g *Game) reload(path string) {
	fields := logrus.Fields{"path": path}
	if strings.EqualFold(filepath.Ext(path), ".tengo") {
		g.session.ScriptChanged(path)
		logger.Log.WithFields(fields).Info("script reloaded")
		return
	}
	if err := g.restart(); err != nil {
		logger.Log.WithFields(fields).WithError(err).Warn("reload failed, keeping current session")
		return
	}
	logger.Log.WithFields(fields).Info("level restarted after prefab change")
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.session.Scheduler().Draw(g.session.World, screen)

	lines := g.session.HUD()
	if g.debug {
		lines = append(lines, fmt.Sprintf("Frames: %d    FPS: %.2f", g.frames, ebiten.ActualFPS()))
	}
	ebitenutil.DebugPrint(screen, strings.Join(lines, "\n"))

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
