package config

import (
	"errors"
	"testing"
)

func TestParseDefaults(t *testing.T) {
	tun, err := Parse([]byte("{}"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if tun != Defaults() {
		t.Fatalf("empty yaml should yield defaults, got %+v", tun)
	}
}

func TestParseYAMLOverrides(t *testing.T) {
	tun, err := Parse([]byte("equipment:\n  pick_up_range: 5\neffects:\n  storm: 45\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if tun.Equipment.PickUpRange != 5 {
		t.Fatalf("pick_up_range = %v, want 5", tun.Equipment.PickUpRange)
	}
	if tun.Effects.Storm != 45 {
		t.Fatalf("storm = %v, want 45", tun.Effects.Storm)
	}
	if tun.Effects.Heal != 30 {
		t.Fatalf("unset fields should keep defaults, heal = %v", tun.Effects.Heal)
	}
}

func TestParseEnvOverrides(t *testing.T) {
	t.Setenv("STORMDROP_PICKUP_RANGE", "7.5")
	t.Setenv("STORMDROP_SEED", "99")
	tun, err := Parse([]byte("equipment:\n  pick_up_range: 5\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if tun.Equipment.PickUpRange != 7.5 {
		t.Fatalf("env should win over yaml, got %v", tun.Equipment.PickUpRange)
	}
	if tun.Seed != 99 {
		t.Fatalf("seed = %v, want 99", tun.Seed)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Tuning)
	}{
		{"negative_range", func(t *Tuning) { t.Equipment.PickUpRange = -1 }},
		{"negative_force", func(t *Tuning) { t.Equipment.DropForwardForce = -1 }},
		{"negative_torque", func(t *Tuning) { t.Equipment.DropTorque = -1 }},
		{"upward_gravity", func(t *Tuning) { t.Player.Gravity = 1 }},
		{"zero_heal", func(t *Tuning) { t.Effects.Heal = 0 }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tun := Defaults()
			c.mutate(&tun)
			if err := tun.Validate(); !errors.Is(err, ErrInvalidTuning) {
				t.Fatalf("expected ErrInvalidTuning, got %v", err)
			}
		})
	}
	if err := Defaults().Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadEmbedded(t *testing.T) {
	tun, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tun.Effects.Heal != 30 || tun.Effects.Armour != 80 || tun.Effects.Storm != 30 {
		t.Fatalf("unexpected effect amounts: %+v", tun.Effects)
	}
}
