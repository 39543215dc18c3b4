package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/stormdrop/config"
	"github.com/milk9111/stormdrop/ecs"
	"github.com/milk9111/stormdrop/ecs/component"
	"github.com/milk9111/stormdrop/ecs/system"
)

const WeaponPrefab = "rifle.yaml"

// NewItem builds an equippable prefab owned by player at pos. Items whose
// prefab (or equipped) asks for it start in the player's hand.
func NewItem(w *ecs.World, tuning config.Tuning, prefab string, player *Agent, pos mgl64.Vec3, equipped bool) (ecs.Entity, error) {
	if player == nil {
		return 0, ErrMissingPlayer
	}
	if err := player.Validate(); err != nil {
		return 0, err
	}

	ctx := &buildContext{PrefabPath: prefab, Tuning: tuning, Player: player.Entity, StartEquipped: equipped}
	e, err := buildEntity(w, ctx)
	if err != nil {
		return 0, err
	}
	if !ecs.Has(w, e, component.EquippableComponent) {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("item: prefab %q is not equippable", prefab)
	}
	if !ecs.Has(w, e, component.TransformComponent) || !ecs.Has(w, e, component.RigidBodyComponent) || !ecs.Has(w, e, component.ColliderComponent) {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("%w: %q", ErrMissingBody, prefab)
	}
	if err := SetEntityPosition(w, e, pos); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("item: override transform: %w", err)
	}

	if ctx.StartEquipped {
		if held, ok := player.Held(); ok {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("%w: %q while holding %v", ErrSlotConflict, prefab, held)
		}
		if !system.Equip(w, e, player.Entity) {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("item: equip %q failed", prefab)
		}
	}
	return e, nil
}

func NewWeapon(w *ecs.World, tuning config.Tuning, player *Agent, pos mgl64.Vec3, equipped bool) (ecs.Entity, error) {
	return NewItem(w, tuning, WeaponPrefab, player, pos, equipped)
}
