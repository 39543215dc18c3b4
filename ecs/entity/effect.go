package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/stormdrop/config"
	"github.com/milk9111/stormdrop/ecs"
	"github.com/milk9111/stormdrop/ecs/component"
)

const (
	HealthPickPrefab = "health_pick.yaml"
	ArmourPickPrefab = "armour_pick.yaml"
	StormPrefab      = "storm.yaml"
	SkyDropPrefab    = "sky_drop.yaml"
)

// NewEffect builds a trigger volume prefab at pos. A positive amount
// overrides the tuned effect amount.
func NewEffect(w *ecs.World, tuning config.Tuning, prefab string, pos mgl64.Vec3, amount float64) (ecs.Entity, error) {
	if amount < 0 {
		return 0, fmt.Errorf("%w: amount %v is negative", ErrInvalidEffect, amount)
	}
	e, err := BuildEntity(w, prefab, tuning)
	if err != nil {
		return 0, err
	}
	if err := SetEntityPosition(w, e, pos); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("effect: override transform: %w", err)
	}

	effect, isTrigger := ecs.Get(w, e, component.TriggerEffectComponent)
	if !isTrigger && !ecs.Has(w, e, component.DespawnEffectComponent) {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("%w: prefab %q has no effect", ErrInvalidEffect, prefab)
	}
	if isTrigger && amount > 0 {
		effect.Amount = amount
	}
	return e, nil
}
