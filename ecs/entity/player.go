package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/stormdrop/config"
	"github.com/milk9111/stormdrop/ecs"
	"github.com/milk9111/stormdrop/ecs/component"
	"github.com/milk9111/stormdrop/prefabs"
)

const playerPrefab = "player.yaml"

// Agent is the player as seen by the rest of the game: the body entity and
// its view anchor. It satisfies component.HasStatSheet so trigger effects
// can target it directly.
type Agent struct {
	World      *ecs.World
	Entity     ecs.Entity
	ViewAnchor ecs.Entity
}

func NewPlayer(w *ecs.World, tuning config.Tuning) (*Agent, error) {
	return NewPlayerAt(w, tuning, mgl64.Vec3{})
}

// NewPlayerAt builds the player prefab at pos and attaches a view anchor at
// eye height.
func NewPlayerAt(w *ecs.World, tuning config.Tuning, pos mgl64.Vec3) (*Agent, error) {
	e, err := BuildEntity(w, playerPrefab, tuning)
	if err != nil {
		return nil, err
	}
	if err := SetEntityPosition(w, e, pos); err != nil {
		return nil, fmt.Errorf("player: override transform: %w", err)
	}

	p, ok := ecs.Get(w, e, component.PlayerComponent)
	if !ok {
		ecs.DestroyEntity(w, e)
		return nil, fmt.Errorf("player: prefab %q has no player component", playerPrefab)
	}

	eye := tuning.Player.EyeHeight
	if spec, err := prefabs.LoadEntityBuildSpec(playerPrefab); err == nil {
		if ps, err := prefabs.DecodeComponentSpec[prefabs.PlayerComponentSpec](spec.Components["player"]); err == nil && ps.EyeHeight != 0 {
			eye = ps.EyeHeight
		}
	}

	anchor := ecs.CreateEntity(w)
	at := component.NewTransform(mgl64.Vec3{0, eye, 0})
	at.Parent = uint64(e)
	if err := ecs.Add(w, anchor, component.TransformComponent, at); err != nil {
		return nil, err
	}
	if err := ecs.Add(w, anchor, component.ViewAnchorComponent, &component.ViewAnchor{}); err != nil {
		return nil, err
	}
	p.ViewAnchor = uint64(anchor)

	agent := &Agent{World: w, Entity: e, ViewAnchor: anchor}
	if err := agent.Validate(); err != nil {
		return nil, err
	}
	return agent, nil
}

// FindPlayer returns the agent for the first player in w.
func FindPlayer(w *ecs.World) (*Agent, error) {
	e, ok := ecs.First(w, component.PlayerTagComponent)
	if !ok {
		return nil, ErrMissingPlayer
	}
	p, ok := ecs.Get(w, e, component.PlayerComponent)
	if !ok {
		return nil, ErrMissingPlayer
	}
	agent := &Agent{World: w, Entity: e, ViewAnchor: ecs.Entity(p.ViewAnchor)}
	if err := agent.Validate(); err != nil {
		return nil, err
	}
	return agent, nil
}

// Validate checks the player carries everything the equipment machine and
// trigger effects rely on.
func (a *Agent) Validate() error {
	if a == nil || a.World == nil || !a.World.IsAlive(a.Entity) {
		return ErrMissingPlayer
	}
	for _, has := range []bool{
		ecs.Has(a.World, a.Entity, component.StatSheetComponent),
		ecs.Has(a.World, a.Entity, component.EquipmentSlotComponent),
		ecs.Has(a.World, a.Entity, component.TransformComponent),
	} {
		if !has {
			return fmt.Errorf("%w: player %v is incomplete", ErrMissingPlayer, a.Entity)
		}
	}
	if !a.World.IsAlive(a.ViewAnchor) || !ecs.Has(a.World, a.ViewAnchor, component.ViewAnchorComponent) {
		return ErrMissingViewAnchor
	}
	t, ok := ecs.Get(a.World, a.ViewAnchor, component.TransformComponent)
	if !ok || t.Parent != uint64(a.Entity) {
		return fmt.Errorf("%w: anchor %v is not a child of %v", ErrMissingViewAnchor, a.ViewAnchor, a.Entity)
	}
	return nil
}

// StatSheet exposes the player's stats to trigger effects.
func (a *Agent) StatSheet() component.StatMutator {
	if s := a.Stats(); s != nil {
		return s
	}
	return nil
}

func (a *Agent) Stats() *component.StatSheet {
	if a == nil || a.World == nil {
		return nil
	}
	s, ok := ecs.Get(a.World, a.Entity, component.StatSheetComponent)
	if !ok {
		return nil
	}
	return s
}

// Held returns the item in the player's slot, if any.
func (a *Agent) Held() (ecs.Entity, bool) {
	if a == nil || a.World == nil {
		return 0, false
	}
	slot, ok := ecs.Get(a.World, a.Entity, component.EquipmentSlotComponent)
	if !ok || !slot.Occupied {
		return 0, false
	}
	return ecs.Entity(slot.Item), true
}
