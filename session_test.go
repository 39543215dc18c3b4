package main

import (
	"testing"

	"github.com/milk9111/stormdrop/config"
	"github.com/milk9111/stormdrop/ecs"
	"github.com/milk9111/stormdrop/ecs/component"
	"github.com/milk9111/stormdrop/ecs/system"
	"github.com/milk9111/stormdrop/equip"
)

func newTestSession(t *testing.T, level string) *Session {
	t.Helper()
	s, err := NewSession(level, config.Defaults(), nil)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return s
}

func (s *Session) input() *component.Input {
	in, _ := ecs.Get(s.World, s.Player.Entity, component.InputComponent)
	return in
}

func TestSessionHUD(t *testing.T) {
	s := newTestSession(t, "")
	want := []string{"Health : 100", "Armour : 10", "Equipped : none"}
	got := s.HUD()
	if len(got) != len(want) {
		t.Fatalf("HUD = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("HUD[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSessionArmedHUD(t *testing.T) {
	s := newTestSession(t, "armed")
	s.Update()
	if got := s.HUD()[2]; got != "Equipped : rifle (30)" {
		t.Fatalf("HUD equipped line = %q", got)
	}

	s.input().Fire = true
	s.Update()
	if got := s.HUD()[2]; got != "Equipped : rifle (29)" {
		t.Fatalf("HUD after firing = %q", got)
	}
}

func TestSessionPickupWalkAndDrop(t *testing.T) {
	s := newTestSession(t, "arena")

	// The first arena weapon sits 3 units ahead of the spawn.
	*s.input() = component.Input{PickupPressed: true}
	s.Update()
	item, ok := s.Player.Held()
	if !ok {
		t.Fatalf("expected pickup from spawn")
	}

	*s.input() = component.Input{MoveZ: 1}
	for i := 0; i < 30; i++ {
		s.Update()
	}
	held, _ := system.WorldPose(s.World, item)
	player, _ := system.WorldPose(s.World, s.Player.Entity)
	if player.Position.Z() < 2.9 || held.Position.Sub(player.Position).Len() > 2 {
		t.Fatalf("held item at %v does not follow player at %v", held.Position, player.Position)
	}

	*s.input() = component.Input{MoveZ: 1, DropPressed: true}
	s.Update()
	eq, _ := ecs.Get(s.World, item, component.EquippableComponent)
	if eq.State != equip.Dropped {
		t.Fatalf("state = %v, want dropped", eq.State)
	}
	body, _ := ecs.Get(s.World, item, component.RigidBodyComponent)
	// Walking velocity is carried into the throw.
	if body.Velocity.Z() <= 2 {
		t.Fatalf("drop velocity %v does not include player momentum", body.Velocity)
	}

	*s.input() = component.Input{}
	for i := 0; i < 180; i++ {
		s.Update()
	}
	tr, _ := ecs.Get(s.World, item, component.TransformComponent)
	if tr.Position.Y() != s.Tuning.World.GroundY {
		t.Fatalf("dropped item did not land: %v", tr.Position)
	}
}

func TestSessionScriptChanged(t *testing.T) {
	s := newTestSession(t, "armed")
	item, _ := s.Player.Held()
	s.input().Fire = true
	s.Update()
	if ammo := s.behavior.State(item)["ammo"]; ammo != int64(29) {
		t.Fatalf("ammo = %v, want 29", ammo)
	}

	s.ScriptChanged("prefabs/scripts/rifle.tengo")
	if st := s.behavior.State(item); st != nil {
		t.Fatalf("script state survived reload: %v", st)
	}
}
