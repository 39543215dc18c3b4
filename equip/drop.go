package equip

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

// DropParams describes the player and item at the instant of release.
type DropParams struct {
	PlayerVelocity mgl64.Vec3
	Forward        mgl64.Vec3
	Up             mgl64.Vec3

	// Force is used for both the forward and the upward impulse.
	Force  float64
	Torque float64

	Mass    float64
	Inertia float64
}

// DropResult is the item's motion right after release.
type DropResult struct {
	Velocity        mgl64.Vec3
	AngularVelocity mgl64.Vec3
	TorqueImpulse   mgl64.Vec3
}

// Drop computes the released item's velocity: it carries the player's
// momentum, gets equal impulses along view-forward and view-up, and a random
// tumble where each torque axis is sampled independently from [-1, 1).
func Drop(p DropParams, rng *rand.Rand) DropResult {
	mass := p.Mass
	if mass <= 0 {
		mass = 1
	}
	inertia := p.Inertia
	if inertia <= 0 {
		inertia = 1
	}

	impulse := p.Forward.Mul(p.Force).Add(p.Up.Mul(p.Force))
	vel := p.PlayerVelocity.Add(impulse.Mul(1 / mass))

	var torque mgl64.Vec3
	if rng != nil {
		torque = mgl64.Vec3{
			rng.Float64()*2 - 1,
			rng.Float64()*2 - 1,
			rng.Float64()*2 - 1,
		}.Mul(p.Torque)
	}

	return DropResult{
		Velocity:        vel,
		AngularVelocity: torque.Mul(1 / inertia),
		TorqueImpulse:   torque,
	}
}
