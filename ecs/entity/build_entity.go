package entity

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/stormdrop/common"
	"github.com/milk9111/stormdrop/config"
	"github.com/milk9111/stormdrop/ecs"
	"github.com/milk9111/stormdrop/ecs/component"
	"github.com/milk9111/stormdrop/equip"
	"github.com/milk9111/stormdrop/prefabs"
)

type buildContext struct {
	PrefabPath string
	Tuning     config.Tuning
	// Player owns any equippable built in this context.
	Player ecs.Entity
	// StartEquipped is set by the equippable builder when the prefab asks
	// for the item to start in the player's hand.
	StartEquipped bool
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player":         addPlayer,
	"input":          addInput,
	"transform":      addTransform,
	"rigid_body":     addRigidBody,
	"collider":       addCollider,
	"stat_sheet":     addStatSheet,
	"equipment_slot": addEquipmentSlot,
	"trigger_effect": addTriggerEffect,
	"despawn_effect": addDespawnEffect,
	"equippable":     addEquippable,
	"behavior":       addBehavior,
}

var componentBuildOrder = []string{
	"player",
	"input",
	"transform",
	"rigid_body",
	"collider",
	"stat_sheet",
	"equipment_slot",
	"trigger_effect",
	"despawn_effect",
	"equippable",
	"behavior",
}

// BuildEntity creates an entity from a prefab with tuning applied.
func BuildEntity(w *ecs.World, prefabPath string, tuning config.Tuning) (ecs.Entity, error) {
	return buildEntity(w, &buildContext{PrefabPath: prefabPath, Tuning: tuning})
}

func buildEntity(w *ecs.World, ctx *buildContext) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}
	prefabPath := ctx.PrefabPath

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	if spec.Name != "" {
		if err := ecs.Add(w, e, component.NameComponent, &component.Name{Value: spec.Name}); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, err
		}
	}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, names[0])
	}

	return e, nil
}

// SetEntityPosition moves e to pos, keeping the prefab's height offset.
func SetEntityPosition(w *ecs.World, e ecs.Entity, pos mgl64.Vec3) error {
	t, ok := ecs.Get(w, e, component.TransformComponent)
	if !ok {
		return ecs.Add(w, e, component.TransformComponent, component.NewTransform(pos))
	}
	t.Position = pos.Add(mgl64.Vec3{0, t.Position.Y(), 0})
	return nil
}

func addPlayer(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PlayerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode player spec: %w", err)
	}
	tuned := ctx.Tuning.Player
	p := &component.Player{
		Speed:          orDefault(spec.Speed, tuned.Speed),
		Gravity:        orDefault(spec.Gravity, tuned.Gravity),
		JumpHeight:     orDefault(spec.JumpHeight, tuned.JumpHeight),
		GroundDistance: orDefault(spec.GroundDistance, tuned.GroundDistance),
		LookSpeed:      orDefault(spec.LookSpeed, tuned.LookSpeed),
	}
	if err := ecs.Add(w, e, component.PlayerTagComponent, &component.PlayerTag{}); err != nil {
		return err
	}
	return ecs.Add(w, e, component.PlayerComponent, p)
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent, &component.Input{})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	t := component.NewTransform(vec3(spec.Position))
	if spec.Yaw != 0 {
		t.Rotation = common.YawPitch(spec.Yaw*math.Pi/180, 0)
	}
	if spec.Scale != nil {
		t.Scale = vec3(*spec.Scale)
	}
	return ecs.Add(w, e, component.TransformComponent, t)
}

func addRigidBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.RigidBodyComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode rigid body spec: %w", err)
	}
	useGravity := !spec.Kinematic
	if spec.UseGravity != nil {
		useGravity = *spec.UseGravity
	}
	return ecs.Add(w, e, component.RigidBodyComponent, &component.RigidBody{
		Mass:       orDefault(spec.Mass, 1),
		Inertia:    orDefault(spec.Inertia, 1),
		Kinematic:  spec.Kinematic,
		UseGravity: useGravity,
	})
}

func addCollider(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ColliderComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode collider spec: %w", err)
	}
	if spec.Radius <= 0 {
		return fmt.Errorf("collider radius %v must be positive", spec.Radius)
	}
	return ecs.Add(w, e, component.ColliderComponent, &component.Collider{
		Radius:  spec.Radius,
		Height:  spec.Height,
		Trigger: spec.Trigger,
	})
}

func addStatSheet(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.StatSheetComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode stat sheet spec: %w", err)
	}
	health, armour := ctx.Tuning.Player.Health, ctx.Tuning.Player.Armour
	if spec.Health != nil {
		health = *spec.Health
	}
	if spec.Armour != nil {
		armour = *spec.Armour
	}
	return ecs.Add(w, e, component.StatSheetComponent, component.NewStatSheet(health, armour))
}

func addEquipmentSlot(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.EquipmentSlotComponent, &component.EquipmentSlot{})
}

func addTriggerEffect(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TriggerEffectComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode trigger effect spec: %w", err)
	}
	kind, err := component.ParseEffectKind(spec.Kind)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEffect, err)
	}
	amount := spec.Amount
	if amount == 0 {
		amount = defaultEffectAmount(kind, ctx.Tuning.Effects)
	}
	if amount <= 0 {
		return fmt.Errorf("%w: %s amount %v must be positive", ErrInvalidEffect, kind, amount)
	}
	if col, ok := ecs.Get(w, e, component.ColliderComponent); !ok || !col.Trigger {
		return fmt.Errorf("%w: %s needs a trigger collider", ErrInvalidEffect, kind)
	}
	return ecs.Add(w, e, component.TriggerEffectComponent, &component.TriggerEffect{Kind: kind, Amount: amount})
}

func addDespawnEffect(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	if col, ok := ecs.Get(w, e, component.ColliderComponent); !ok || !col.Trigger {
		return fmt.Errorf("%w: despawn effect needs a trigger collider", ErrInvalidEffect)
	}
	return ecs.Add(w, e, component.DespawnEffectComponent, &component.DespawnEffect{})
}

func addEquippable(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.EquippableComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode equippable spec: %w", err)
	}
	if !ctx.Player.Valid() || !w.IsAlive(ctx.Player) {
		return ErrMissingPlayer
	}
	tuned := ctx.Tuning.Equipment
	ctx.StartEquipped = ctx.StartEquipped || spec.Equipped
	return ecs.Add(w, e, component.EquippableComponent, &component.Equippable{
		State:            equip.Unequipped,
		Player:           uint64(ctx.Player),
		PickUpRange:      orDefault(spec.PickUpRange, tuned.PickUpRange),
		DropForwardForce: orDefault(spec.DropForwardForce, tuned.DropForwardForce),
		DropTorque:       orDefault(spec.DropTorque, tuned.DropTorque),
	})
}

func addBehavior(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.BehaviorComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode behavior spec: %w", err)
	}
	if spec.Script == "" {
		return fmt.Errorf("behavior needs a script")
	}
	return ecs.Add(w, e, component.BehaviorComponent, &component.Behavior{Script: spec.Script})
}

func defaultEffectAmount(kind component.EffectKind, fx config.Effects) float64 {
	switch kind {
	case component.EffectHeal:
		return fx.Heal
	case component.EffectArmour:
		return fx.Armour
	case component.EffectDamage:
		return fx.Storm
	}
	return 0
}

func vec3(v prefabs.Vec3Spec) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}
