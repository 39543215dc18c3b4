// Package config loads gameplay tuning from the embedded prefab YAML with
// environment overrides on top.
package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/milk9111/stormdrop/prefabs"
	"gopkg.in/yaml.v3"
)

var ErrInvalidTuning = errors.New("config: invalid tuning")

// TuningFile is the prefab the defaults are read from.
const TuningFile = "tuning.yaml"

type Player struct {
	Speed          float64 `yaml:"speed"           env:"STORMDROP_PLAYER_SPEED"`
	Gravity        float64 `yaml:"gravity"         env:"STORMDROP_GRAVITY"`
	JumpHeight     float64 `yaml:"jump_height"     env:"STORMDROP_JUMP_HEIGHT"`
	GroundDistance float64 `yaml:"ground_distance" env:"STORMDROP_GROUND_DISTANCE"`
	EyeHeight      float64 `yaml:"eye_height"      env:"STORMDROP_EYE_HEIGHT"`
	LookSpeed      float64 `yaml:"look_speed"      env:"STORMDROP_LOOK_SPEED"`
	Radius         float64 `yaml:"radius"`
	Height         float64 `yaml:"height"`
	Health         float64 `yaml:"health"          env:"STORMDROP_START_HEALTH"`
	Armour         float64 `yaml:"armour"          env:"STORMDROP_START_ARMOUR"`
}

type Equipment struct {
	PickUpRange      float64 `yaml:"pick_up_range"      env:"STORMDROP_PICKUP_RANGE"`
	DropForwardForce float64 `yaml:"drop_forward_force" env:"STORMDROP_DROP_FORCE"`
	DropTorque       float64 `yaml:"drop_torque"        env:"STORMDROP_DROP_TORQUE"`
}

type Effects struct {
	Heal   float64 `yaml:"heal"   env:"STORMDROP_HEAL_AMOUNT"`
	Armour float64 `yaml:"armour" env:"STORMDROP_ARMOUR_AMOUNT"`
	Storm  float64 `yaml:"storm"  env:"STORMDROP_STORM_DAMAGE"`
}

type World struct {
	GroundY  float64 `yaml:"ground_y"`
	Gravity  float64 `yaml:"gravity"  env:"STORMDROP_WORLD_GRAVITY"`
	Friction float64 `yaml:"friction"`
}

// Tuning is every number the simulation reads.
type Tuning struct {
	Seed      uint64    `yaml:"seed" env:"STORMDROP_SEED"`
	Player    Player    `yaml:"player"`
	Equipment Equipment `yaml:"equipment"`
	Effects   Effects   `yaml:"effects"`
	World     World     `yaml:"world"`
}

// Load reads the tuning prefab and applies environment overrides.
func Load() (Tuning, error) {
	data, err := prefabs.Load(TuningFile)
	if err != nil {
		return Tuning{}, fmt.Errorf("config: load %s: %w", TuningFile, err)
	}
	return Parse(data)
}

// Parse decodes YAML tuning and applies environment overrides.
func Parse(data []byte) (Tuning, error) {
	t := Defaults()
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tuning{}, fmt.Errorf("config: unmarshal tuning: %w", err)
	}
	if err := env.Parse(&t); err != nil {
		return Tuning{}, fmt.Errorf("config: parse env: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, err
	}
	return t, nil
}

// Defaults mirrors the values shipped in tuning.yaml.
func Defaults() Tuning {
	return Tuning{
		Seed: 1,
		Player: Player{
			Speed:          6,
			Gravity:        -12,
			JumpHeight:     3,
			GroundDistance: 0.4,
			EyeHeight:      1.6,
			LookSpeed:      0.003,
			Radius:         0.5,
			Height:         2,
			Health:         100,
			Armour:         10,
		},
		Equipment: Equipment{
			PickUpRange:      4,
			DropForwardForce: 2,
			DropTorque:       10,
		},
		Effects: Effects{
			Heal:   30,
			Armour: 80,
			Storm:  30,
		},
		World: World{
			GroundY:  0,
			Gravity:  -9.81,
			Friction: 4,
		},
	}
}

// Validate rejects values that would make guards or physics meaningless.
func (t Tuning) Validate() error {
	switch {
	case t.Equipment.PickUpRange < 0:
		return fmt.Errorf("%w: pick_up_range %v < 0", ErrInvalidTuning, t.Equipment.PickUpRange)
	case t.Equipment.DropForwardForce < 0:
		return fmt.Errorf("%w: drop_forward_force %v < 0", ErrInvalidTuning, t.Equipment.DropForwardForce)
	case t.Equipment.DropTorque < 0:
		return fmt.Errorf("%w: drop_torque %v < 0", ErrInvalidTuning, t.Equipment.DropTorque)
	case t.Player.Gravity >= 0:
		return fmt.Errorf("%w: player gravity must be negative", ErrInvalidTuning)
	case t.Player.GroundDistance < 0:
		return fmt.Errorf("%w: ground_distance %v < 0", ErrInvalidTuning, t.Player.GroundDistance)
	case t.Effects.Heal <= 0 || t.Effects.Armour <= 0 || t.Effects.Storm <= 0:
		return fmt.Errorf("%w: effect amounts must be positive", ErrInvalidTuning)
	}
	return nil
}
