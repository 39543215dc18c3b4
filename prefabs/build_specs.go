package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type Vec3Spec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

type TransformComponentSpec struct {
	Position Vec3Spec `yaml:"position"`
	// Yaw is in degrees around world up.
	Yaw   float64   `yaml:"yaw"`
	Scale *Vec3Spec `yaml:"scale"`
}

type RigidBodyComponentSpec struct {
	Mass       float64 `yaml:"mass"`
	Inertia    float64 `yaml:"inertia"`
	Kinematic  bool    `yaml:"kinematic"`
	UseGravity *bool   `yaml:"use_gravity"`
}

type ColliderComponentSpec struct {
	Radius  float64 `yaml:"radius"`
	Height  float64 `yaml:"height"`
	Trigger bool    `yaml:"trigger"`
}

type StatSheetComponentSpec struct {
	Health *float64 `yaml:"health"`
	Armour *float64 `yaml:"armour"`
}

type TriggerEffectComponentSpec struct {
	Kind   string  `yaml:"kind"`
	Amount float64 `yaml:"amount"`
}

type EquippableComponentSpec struct {
	Equipped         bool    `yaml:"equipped"`
	PickUpRange      float64 `yaml:"pick_up_range"`
	DropForwardForce float64 `yaml:"drop_forward_force"`
	DropTorque       float64 `yaml:"drop_torque"`
}

type BehaviorComponentSpec struct {
	Script string `yaml:"script"`
}

type PlayerComponentSpec struct {
	Speed          float64 `yaml:"speed"`
	Gravity        float64 `yaml:"gravity"`
	JumpHeight     float64 `yaml:"jump_height"`
	GroundDistance float64 `yaml:"ground_distance"`
	LookSpeed      float64 `yaml:"look_speed"`
	EyeHeight      float64 `yaml:"eye_height"`
}
