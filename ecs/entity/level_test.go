package entity

import (
	"errors"
	"testing"

	"github.com/milk9111/stormdrop/config"
	"github.com/milk9111/stormdrop/ecs"
	"github.com/milk9111/stormdrop/ecs/component"
	"github.com/milk9111/stormdrop/ecs/system"
	"github.com/milk9111/stormdrop/equip"
	"github.com/milk9111/stormdrop/levels"
)

func loadLevel(t *testing.T, name string) (*ecs.World, *Agent) {
	t.Helper()
	lvl, err := levels.LoadLevelFromFS(name)
	if err != nil {
		t.Fatalf("load %s: %v", name, err)
	}
	w := ecs.NewWorld()
	agent, err := LoadLevelToWorld(w, lvl, config.Defaults())
	if err != nil {
		t.Fatalf("spawn %s: %v", name, err)
	}
	return w, agent
}

func newSessionScheduler(tuning config.Tuning) *ecs.Scheduler {
	return ecs.NewScheduler(
		system.NewLookSystem(),
		system.NewMovementSystem(tuning.World.GroundY),
		system.NewEquipmentSystem(tuning.Seed),
		system.NewPhysicsSystem(tuning.World.Gravity, tuning.World.GroundY, tuning.World.Friction),
		system.NewTriggerSystem(),
		system.NewBehaviorSystem(),
		system.NewTTLSystem(),
	)
}

func TestLoadArena(t *testing.T) {
	w, agent := loadLevel(t, "arena.json")

	if n := len(w.Query(component.EquippableComponent.Kind())); n != 2 {
		t.Fatalf("weapons = %d, want 2", n)
	}
	if n := len(w.Query(component.TriggerEffectComponent.Kind())); n != 5 {
		t.Fatalf("trigger effects = %d, want 5", n)
	}
	if n := len(w.Query(component.DespawnEffectComponent.Kind())); n != 1 {
		t.Fatalf("despawn effects = %d, want 1", n)
	}
	if _, held := agent.Held(); held {
		t.Fatalf("arena should start unarmed")
	}

	storms := 0
	ecs.ForEach(w, component.TriggerEffectComponent, func(_ ecs.Entity, fx *component.TriggerEffect) {
		if fx.Kind == component.EffectDamage {
			storms++
			if fx.Amount != 30 && fx.Amount != 15 {
				t.Fatalf("storm amount = %v", fx.Amount)
			}
		}
	})
	if storms != 2 {
		t.Fatalf("storms = %d, want 2", storms)
	}
}

func TestLoadArmedStartsHeld(t *testing.T) {
	w, agent := loadLevel(t, "armed.json")

	item, ok := agent.Held()
	if !ok {
		t.Fatalf("expected a held weapon")
	}
	eq, _ := ecs.Get(w, item, component.EquippableComponent)
	if eq.State != equip.Equipped {
		t.Fatalf("held weapon state = %v", eq.State)
	}
	tr, _ := ecs.Get(w, item, component.TransformComponent)
	if tr.Parent != uint64(agent.ViewAnchor) {
		t.Fatalf("held weapon parent = %d, want %v", tr.Parent, agent.ViewAnchor)
	}
}

func TestLoadLevelRejects(t *testing.T) {
	spawn := &levels.Point{}
	cases := []struct {
		name string
		lvl  levels.Level
		want error
	}{
		{"no_spawn", levels.Level{Name: "x"}, ErrMissingPlayer},
		{"two_equipped", levels.Level{Spawn: spawn, Entities: []levels.Entity{
			{Type: "weapon", Props: map[string]any{"equipped": true}},
			{Type: "weapon", Props: map[string]any{"equipped": true}},
		}}, ErrSlotConflict},
		{"zero_amount", levels.Level{Spawn: spawn, Entities: []levels.Entity{
			{Type: "storm", Props: map[string]any{"amount": 0.0}},
		}}, ErrInvalidEffect},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			_, err := LoadLevelToWorld(w, &c.lvl, config.Defaults())
			if !errors.Is(err, c.want) {
				t.Fatalf("err = %v, want %v", err, c.want)
			}
			if n := len(w.Entities()); n != 0 {
				t.Fatalf("rejected level spawned %d entities", n)
			}
		})
	}
}

func TestLoadLevelRollsBackOnBuildError(t *testing.T) {
	w := ecs.NewWorld()
	keep := ecs.CreateEntity(w)
	lvl := &levels.Level{Name: "broken", Spawn: &levels.Point{}, Entities: []levels.Entity{
		{Type: "storm", Props: map[string]any{"amount": 10.0}},
		{Type: "weapon", Props: map[string]any{"prefab": "health_pick.yaml"}},
	}}

	if _, err := LoadLevelToWorld(w, lvl, config.Defaults()); err == nil {
		t.Fatalf("expected a non-equippable weapon prefab to fail")
	}
	alive := w.Entities()
	if len(alive) != 1 || alive[0] != keep {
		t.Fatalf("entities after failed load = %v, want only %v", alive, keep)
	}
}

func TestLoadLevelUnknownType(t *testing.T) {
	lvl := &levels.Level{Spawn: &levels.Point{}, Entities: []levels.Entity{{Type: "dragon"}}}
	if _, err := LoadLevelToWorld(ecs.NewWorld(), lvl, config.Defaults()); err == nil {
		t.Fatalf("expected unknown placement type to fail")
	}
}

func TestArmedSessionDropThenWalkIntoStorm(t *testing.T) {
	w, agent := loadLevel(t, "armed.json")
	tuning := config.Defaults()
	sched := newSessionScheduler(tuning)
	input, _ := ecs.Get(w, agent.Entity, component.InputComponent)

	item, _ := agent.Held()
	*input = component.Input{DropPressed: true}
	sched.Update(w)

	if _, held := agent.Held(); held {
		t.Fatalf("slot still occupied after drop")
	}
	eq, _ := ecs.Get(w, item, component.EquippableComponent)
	if eq.State != equip.Dropped {
		t.Fatalf("state = %v, want dropped", eq.State)
	}
	body, _ := ecs.Get(w, item, component.RigidBodyComponent)
	if body.Kinematic || body.Velocity.Z() <= 0 || body.Velocity.Y() <= 0 {
		t.Fatalf("dropped body = %+v, want thrown forward and up", body)
	}

	*input = component.Input{MoveZ: 1}
	for i := 0; i < 90; i++ {
		sched.Update(w)
	}

	s := agent.Stats()
	if s.Health() != 70 || s.Armour() != -20 {
		t.Fatalf("stats after storm = %v/%v, want 70/-20", s.Health(), s.Armour())
	}
	if n := len(w.Query(component.TriggerEffectComponent.Kind())); n != 0 {
		t.Fatalf("storm still present: %d effects", n)
	}
}
