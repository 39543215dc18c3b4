package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/stormdrop/ecs"
	"github.com/milk9111/stormdrop/ecs/component"
)

func behaviorNames(w *ecs.World) []string {
	var names []string
	for _, evt := range w.Events().DrainType(ecs.EventBehavior) {
		names = append(names, evt.Data.(ecs.BehaviorEvent).Name)
	}
	return names
}

func TestBehaviorRunsOnlyWhileEquipped(t *testing.T) {
	a := newTestArena(t)
	rifle := a.addRifle(t, mgl64.Vec3{0, 0, 1})
	equipSys := NewEquipmentSystem(1)
	beh := NewBehaviorSystem()

	a.input().Fire = true
	beh.Update(a.w)
	if names := behaviorNames(a.w); len(names) != 0 {
		t.Fatalf("unequipped rifle emitted %v", names)
	}

	*a.input() = component.Input{PickupPressed: true, Fire: true}
	equipSys.Update(a.w)
	beh.Update(a.w)
	names := behaviorNames(a.w)
	if len(names) != 1 || names[0] != "shot" {
		t.Fatalf("equipped rifle emitted %v, want [shot]", names)
	}
	state := beh.State(rifle)
	if ammo, _ := state["ammo"].(int64); ammo != 29 {
		t.Fatalf("ammo = %v, want 29", state["ammo"])
	}

	*a.input() = component.Input{DropPressed: true, Fire: true}
	equipSys.Update(a.w)
	beh.Update(a.w)
	if names := behaviorNames(a.w); len(names) != 0 {
		t.Fatalf("dropped rifle emitted %v", names)
	}
}

func TestBehaviorCooldownAndState(t *testing.T) {
	a := newTestArena(t)
	rifle := a.addRifle(t, mgl64.Vec3{0, 0, 1})
	if !Equip(a.w, rifle, a.player) {
		t.Fatalf("equip failed")
	}
	beh := NewBehaviorSystem()
	a.input().Fire = true

	shots := 0
	for tick := 0; tick < 12; tick++ {
		beh.Update(a.w)
		for _, n := range behaviorNames(a.w) {
			if n == "shot" {
				shots++
			}
		}
	}
	// Cooldown of six ticks between shots.
	if shots != 2 {
		t.Fatalf("shots = %d, want 2", shots)
	}
}

func TestBehaviorBadScriptIsSkipped(t *testing.T) {
	a := newTestArena(t)
	rifle := a.addRifle(t, mgl64.Vec3{0, 0, 1})
	b, _ := ecs.Get(a.w, rifle, component.BehaviorComponent)
	b.Script = "broken.tengo"
	if !Equip(a.w, rifle, a.player) {
		t.Fatalf("equip failed")
	}

	calls := 0
	beh := NewBehaviorSystem()
	beh.loader = func(string) ([]byte, error) {
		calls++
		return []byte(`emit("x"`), nil
	}

	beh.Update(a.w)
	beh.Update(a.w)
	if names := behaviorNames(a.w); len(names) != 0 {
		t.Fatalf("broken script emitted %v", names)
	}
	if calls != 1 {
		t.Fatalf("loader called %d times, want 1", calls)
	}

	beh.Invalidate("broken.tengo")
	beh.loader = func(string) ([]byte, error) { return []byte(`emit("fixed")`), nil }
	beh.Update(a.w)
	if names := behaviorNames(a.w); len(names) != 1 || names[0] != "fixed" {
		t.Fatalf("after reload emitted %v, want [fixed]", names)
	}
}

func TestBehaviorCacheDropsDestroyedEntities(t *testing.T) {
	a := newTestArena(t)
	rifle := a.addRifle(t, mgl64.Vec3{0, 0, 1})
	Equip(a.w, rifle, a.player)
	beh := NewBehaviorSystem()
	beh.Update(a.w)
	if _, ok := beh.cache[rifle]; !ok {
		t.Fatalf("expected runtime for %v", rifle)
	}

	ecs.DestroyEntity(a.w, rifle)
	beh.Update(a.w)
	if _, ok := beh.cache[rifle]; ok {
		t.Fatalf("runtime kept for destroyed entity")
	}
}
