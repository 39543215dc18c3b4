package system

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/stormdrop/ecs"
	"github.com/milk9111/stormdrop/ecs/component"
)

const testEyeHeight = 1.6

// vecNear compares per component with an absolute tolerance.
func vecNear(got, want mgl64.Vec3) bool {
	for i := range got {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			return false
		}
	}
	return true
}

type testArena struct {
	w      *ecs.World
	player ecs.Entity
	anchor ecs.Entity
}

func mustAdd[T any](t *testing.T, w *ecs.World, e ecs.Entity, h component.ComponentHandle[T], v *T) {
	t.Helper()
	if err := ecs.Add(w, e, h, v); err != nil {
		t.Fatalf("add component: %v", err)
	}
}

func newTestArena(t *testing.T) *testArena {
	t.Helper()
	w := ecs.NewWorld()
	player := ecs.CreateEntity(w)
	anchor := ecs.CreateEntity(w)

	mustAdd(t, w, player, component.PlayerTagComponent, &component.PlayerTag{})
	mustAdd(t, w, player, component.PlayerComponent, &component.Player{
		Speed:          6,
		Gravity:        -12,
		JumpHeight:     3,
		GroundDistance: 0.4,
		LookSpeed:      0.01,
		ViewAnchor:     uint64(anchor),
	})
	mustAdd(t, w, player, component.InputComponent, &component.Input{})
	mustAdd(t, w, player, component.TransformComponent, component.NewTransform(mgl64.Vec3{}))
	mustAdd(t, w, player, component.RigidBodyComponent, &component.RigidBody{Mass: 80, Kinematic: true})
	mustAdd(t, w, player, component.ColliderComponent, &component.Collider{Radius: 0.5, Height: 2})
	mustAdd(t, w, player, component.StatSheetComponent, component.NewStatSheet(100, 10))
	mustAdd(t, w, player, component.EquipmentSlotComponent, &component.EquipmentSlot{})

	at := component.NewTransform(mgl64.Vec3{0, testEyeHeight, 0})
	at.Parent = uint64(player)
	mustAdd(t, w, anchor, component.ViewAnchorComponent, &component.ViewAnchor{})
	mustAdd(t, w, anchor, component.TransformComponent, at)

	return &testArena{w: w, player: player, anchor: anchor}
}

func (a *testArena) input() *component.Input {
	in, _ := ecs.Get(a.w, a.player, component.InputComponent)
	return in
}

func (a *testArena) stats() *component.StatSheet {
	s, _ := ecs.Get(a.w, a.player, component.StatSheetComponent)
	return s
}

func (a *testArena) addRifle(t *testing.T, pos mgl64.Vec3) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(a.w)
	mustAdd(t, a.w, e, component.TransformComponent, component.NewTransform(pos))
	mustAdd(t, a.w, e, component.RigidBodyComponent, &component.RigidBody{Mass: 1, Inertia: 1, UseGravity: true})
	mustAdd(t, a.w, e, component.ColliderComponent, &component.Collider{Radius: 0.25, Height: 0.3})
	mustAdd(t, a.w, e, component.EquippableComponent, &component.Equippable{
		Player:           uint64(a.player),
		PickUpRange:      4,
		DropForwardForce: 2,
		DropTorque:       10,
	})
	mustAdd(t, a.w, e, component.BehaviorComponent, &component.Behavior{Script: "rifle.tengo"})
	return e
}

func (a *testArena) addEffect(t *testing.T, pos mgl64.Vec3, kind component.EffectKind, amount float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(a.w)
	mustAdd(t, a.w, e, component.TransformComponent, component.NewTransform(pos))
	mustAdd(t, a.w, e, component.ColliderComponent, &component.Collider{Radius: 0.5, Height: 1, Trigger: true})
	mustAdd(t, a.w, e, component.TriggerEffectComponent, &component.TriggerEffect{Kind: kind, Amount: amount})
	return e
}
