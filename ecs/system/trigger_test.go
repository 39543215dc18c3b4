package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/stormdrop/ecs"
	"github.com/milk9111/stormdrop/ecs/component"
)

func newTriggerScheduler() *ecs.Scheduler {
	return ecs.NewScheduler(
		NewPhysicsSystem(-12, 0, 4),
		NewTriggerSystem(),
		NewTTLSystem(),
	)
}

func TestTriggerEffectsApplyOnce(t *testing.T) {
	cases := []struct {
		name       string
		kind       component.EffectKind
		amount     float64
		wantHealth float64
		wantArmour float64
	}{
		{"heal", component.EffectHeal, 30, 130, 10},
		{"armour", component.EffectArmour, 80, 100, 90},
		{"storm", component.EffectDamage, 30, 70, -20},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a := newTestArena(t)
			pick := a.addEffect(t, mgl64.Vec3{0, 0, 0.5}, c.kind, c.amount)
			sched := newTriggerScheduler()

			for tick := 0; tick < 5; tick++ {
				sched.Update(a.w)
			}

			s := a.stats()
			if s.Health() != c.wantHealth || s.Armour() != c.wantArmour {
				t.Fatalf("stats = %v/%v, want %v/%v", s.Health(), s.Armour(), c.wantHealth, c.wantArmour)
			}
			if a.w.IsAlive(pick) {
				t.Fatalf("consumed effect %v still alive", pick)
			}
		})
	}
}

func TestTriggerSequenceFromFullStats(t *testing.T) {
	a := newTestArena(t)
	a.addEffect(t, mgl64.Vec3{0, 0, 0.5}, component.EffectDamage, 30)
	a.addEffect(t, mgl64.Vec3{0.5, 0, 0}, component.EffectHeal, 30)
	a.addEffect(t, mgl64.Vec3{-0.5, 0, 0}, component.EffectArmour, 80)

	sched := newTriggerScheduler()
	for tick := 0; tick < 3; tick++ {
		sched.Update(a.w)
	}

	s := a.stats()
	if s.Health() != 100 || s.Armour() != 60 {
		t.Fatalf("stats = %v/%v, want 100/60", s.Health(), s.Armour())
	}
}

func TestTriggerIgnoresEntitiesWithoutStats(t *testing.T) {
	a := newTestArena(t)
	pick := a.addEffect(t, mgl64.Vec3{20, 0, 0}, component.EffectHeal, 30)

	crate := ecs.CreateEntity(a.w)
	mustAdd(t, a.w, crate, component.TransformComponent, component.NewTransform(mgl64.Vec3{20, 0, 0.3}))
	mustAdd(t, a.w, crate, component.ColliderComponent, &component.Collider{Radius: 0.5, Height: 1})

	sched := newTriggerScheduler()
	for tick := 0; tick < 3; tick++ {
		sched.Update(a.w)
	}

	if !a.w.IsAlive(pick) {
		t.Fatalf("effect consumed by an entity without stats")
	}
	effect, _ := ecs.Get(a.w, pick, component.TriggerEffectComponent)
	if effect.Consumed {
		t.Fatalf("effect marked consumed")
	}
	if s := a.stats(); s.Health() != 100 || s.Armour() != 10 {
		t.Fatalf("player stats changed: %v/%v", s.Health(), s.Armour())
	}
}

func TestTriggerVerticalSeparation(t *testing.T) {
	a := newTestArena(t)
	pick := a.addEffect(t, mgl64.Vec3{0, 5, 0}, component.EffectHeal, 30)

	sched := newTriggerScheduler()
	sched.Update(a.w)

	if !a.w.IsAlive(pick) || a.stats().Health() != 100 {
		t.Fatalf("effect above the player fired")
	}
}

func TestDespawnEffect(t *testing.T) {
	a := newTestArena(t)
	drop := ecs.CreateEntity(a.w)
	mustAdd(t, a.w, drop, component.TransformComponent, component.NewTransform(mgl64.Vec3{0, 0, 0.4}))
	mustAdd(t, a.w, drop, component.ColliderComponent, &component.Collider{Radius: 0.5, Height: 1, Trigger: true})
	mustAdd(t, a.w, drop, component.DespawnEffectComponent, &component.DespawnEffect{})

	sched := newTriggerScheduler()
	sched.Update(a.w)
	sched.Update(a.w)

	if a.w.IsAlive(drop) {
		t.Fatalf("despawn effect still alive")
	}
	if s := a.stats(); s.Health() != 100 || s.Armour() != 10 {
		t.Fatalf("despawn changed stats: %v/%v", s.Health(), s.Armour())
	}
}

func TestTriggerEmitsConsumedEvent(t *testing.T) {
	a := newTestArena(t)
	pick := a.addEffect(t, mgl64.Vec3{0, 0, 0.5}, component.EffectHeal, 30)

	NewPhysicsSystem(-12, 0, 4).Update(a.w)
	NewTriggerSystem().Update(a.w)

	evts := a.w.Events().DrainType(ecs.EventConsumed)
	if len(evts) != 1 {
		t.Fatalf("consumed events = %d, want 1", len(evts))
	}
	got := evts[0].Data.(ecs.ConsumedEvent)
	if got.Effect != pick || got.Target != a.player {
		t.Fatalf("consumed event = %+v", got)
	}
	if ecs.Has(a.w, pick, component.ColliderComponent) {
		t.Fatalf("consumed effect kept its collider")
	}
}
