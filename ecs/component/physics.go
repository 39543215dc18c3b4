package component

import "github.com/go-gl/mathgl/mgl64"

// RigidBody is simulated by the physics system unless Kinematic is set.
type RigidBody struct {
	Velocity        mgl64.Vec3
	AngularVelocity mgl64.Vec3
	Mass            float64
	Inertia         float64
	Kinematic       bool
	UseGravity      bool
	Grounded        bool
}

// Impulse adds an instantaneous linear impulse.
func (b *RigidBody) Impulse(j mgl64.Vec3) {
	if b == nil || b.Kinematic {
		return
	}
	m := b.Mass
	if m <= 0 {
		m = 1
	}
	b.Velocity = b.Velocity.Add(j.Mul(1 / m))
}

var RigidBodyComponent = NewComponent[RigidBody]()

// Collider is an upright capsule-ish volume: a circle of Radius on the
// ground plane extruded Height upwards from the transform's position.
// Trigger colliders report overlaps and never block.
type Collider struct {
	Radius  float64
	Height  float64
	Trigger bool
}

var ColliderComponent = NewComponent[Collider]()
