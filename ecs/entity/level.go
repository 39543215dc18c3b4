package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/stormdrop/config"
	"github.com/milk9111/stormdrop/ecs"
	"github.com/milk9111/stormdrop/levels"
	"github.com/milk9111/stormdrop/logger"
	"github.com/sirupsen/logrus"
)

// placementPrefabs maps level placement types to prefabs.
var placementPrefabs = map[string]string{
	"weapon":      WeaponPrefab,
	"health_pick": HealthPickPrefab,
	"armour_pick": ArmourPickPrefab,
	"storm":       StormPrefab,
	"sky_drop":    SkyDropPrefab,
}

// LoadLevelToWorld spawns the player and every placement of lvl into world.
// A failed load destroys everything it had spawned.
func LoadLevelToWorld(world *ecs.World, lvl *levels.Level, tuning config.Tuning) (agent *Agent, err error) {
	if world == nil || lvl == nil {
		return nil, fmt.Errorf("load level: nil world or level")
	}
	if lvl.Spawn == nil {
		return nil, fmt.Errorf("load level %q: %w", lvl.Name, ErrMissingPlayer)
	}
	if err := validatePlacements(lvl); err != nil {
		return nil, fmt.Errorf("load level %q: %w", lvl.Name, err)
	}

	existing := make(map[ecs.Entity]struct{})
	for _, e := range world.Entities() {
		existing[e] = struct{}{}
	}
	defer func() {
		if err == nil {
			return
		}
		for _, e := range world.Entities() {
			if _, ok := existing[e]; !ok {
				ecs.DestroyEntity(world, e)
			}
		}
	}()

	player, err := NewPlayerAt(world, tuning, mgl64.Vec3{lvl.Spawn.X, lvl.Spawn.Y, lvl.Spawn.Z})
	if err != nil {
		return nil, fmt.Errorf("load level %q: %w", lvl.Name, err)
	}

	for i, p := range lvl.Entities {
		pos := mgl64.Vec3{p.X, p.Y, p.Z}
		prefab := placementPrefabs[p.Type]
		if override := p.Text("prefab"); override != "" {
			prefab = override
		}

		var e ecs.Entity
		switch p.Type {
		case "weapon":
			e, err = NewItem(world, tuning, prefab, player, pos, p.Bool("equipped"))
		default:
			amount, _ := p.Float("amount")
			e, err = NewEffect(world, tuning, prefab, pos, amount)
		}
		if err != nil {
			return nil, fmt.Errorf("load level %q: placement %d (%s): %w", lvl.Name, i, p.Type, err)
		}

		logger.Log.WithFields(logrus.Fields{
			"level":  lvl.Name,
			"type":   p.Type,
			"entity": e,
		}).Debug("placed entity")
	}

	return player, nil
}

// validatePlacements rejects a level before anything is spawned.
func validatePlacements(lvl *levels.Level) error {
	equipped := 0
	for i, p := range lvl.Entities {
		if _, ok := placementPrefabs[p.Type]; !ok && p.Text("prefab") == "" {
			return fmt.Errorf("placement %d: unknown type %q", i, p.Type)
		}
		if p.Type == "weapon" && p.Bool("equipped") {
			equipped++
		}
		if amount, ok := p.Float("amount"); ok && amount <= 0 {
			return fmt.Errorf("%w: placement %d amount %v", ErrInvalidEffect, i, amount)
		}
	}
	if equipped > 1 {
		return fmt.Errorf("%w: %d weapons", ErrSlotConflict, equipped)
	}
	return nil
}
