package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/milk9111/stormdrop/config"
	"github.com/milk9111/stormdrop/ecs"
	"github.com/milk9111/stormdrop/ecs/component"
	"github.com/milk9111/stormdrop/ecs/entity"
	"github.com/milk9111/stormdrop/ecs/system"
	"github.com/milk9111/stormdrop/levels"
	"github.com/milk9111/stormdrop/logger"
	"github.com/sirupsen/logrus"
)

const defaultLevel = "arena.json"

// Session is one play-through of a level: its world, its player and the
// systems that step it. Each session owns its own equipment slot through
// its player entity.
type Session struct {
	Level  string
	Tuning config.Tuning
	World  *ecs.World
	Player *entity.Agent

	scheduler *ecs.Scheduler
	behavior  *system.BehaviorSystem
}

// NewSession loads levelName and wires the fixed system order. input may be
// nil in tests, where Input components are written directly.
func NewSession(levelName string, tuning config.Tuning, input ecs.System) (*Session, error) {
	if strings.TrimSpace(levelName) == "" {
		levelName = defaultLevel
	}
	lvl, err := levels.Load(levelName)
	if err != nil {
		return nil, fmt.Errorf("session: %w (embedded levels: %s)", err, strings.Join(levels.Names(), ", "))
	}

	w := ecs.NewWorld()
	player, err := entity.LoadLevelToWorld(w, lvl, tuning)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	behavior := system.NewBehaviorSystem()
	scheduler := ecs.NewScheduler()
	if input != nil {
		scheduler.Add(input)
	}
	scheduler.Add(system.NewLookSystem())
	scheduler.Add(system.NewMovementSystem(tuning.World.GroundY))
	scheduler.Add(system.NewEquipmentSystem(tuning.Seed))
	scheduler.Add(system.NewPhysicsSystem(tuning.World.Gravity, tuning.World.GroundY, tuning.World.Friction))
	scheduler.Add(system.NewTriggerSystem())
	scheduler.Add(behavior)
	scheduler.Add(system.NewTTLSystem())

	logger.Log.WithFields(logrus.Fields{
		"level":    levelName,
		"entities": len(w.Entities()),
		"seed":     tuning.Seed,
	}).Info("session started")

	return &Session{
		Level:     levelName,
		Tuning:    tuning,
		World:     w,
		Player:    player,
		scheduler: scheduler,
		behavior:  behavior,
	}, nil
}

func (s *Session) Update() {
	s.scheduler.Update(s.World)
}

// AddSystem appends a system after the simulation systems, e.g. a renderer.
func (s *Session) AddSystem(sys ecs.System) {
	s.scheduler.Add(sys)
}

func (s *Session) Scheduler() *ecs.Scheduler {
	return s.scheduler
}

// HUD returns the lines drawn over the game view.
func (s *Session) HUD() []string {
	stats := s.Player.Stats()
	lines := []string{
		fmt.Sprintf("Health : %g", stats.Health()),
		fmt.Sprintf("Armour : %g", stats.Armour()),
	}

	item, ok := s.Player.Held()
	if !ok {
		return append(lines, "Equipped : none")
	}
	name := "item"
	if n, ok := ecs.Get(s.World, item, component.NameComponent); ok {
		name = n.Value
	}
	line := "Equipped : " + name
	if ammo, ok := s.behavior.State(item)["ammo"]; ok {
		line += fmt.Sprintf(" (%v)", ammo)
	}
	return append(lines, line)
}

// ScriptChanged drops compiled copies of a behaviour script so the next
// tick recompiles it.
func (s *Session) ScriptChanged(path string) {
	s.behavior.Invalidate(filepath.Base(path))
}
