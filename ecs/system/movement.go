package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/stormdrop/common"
	"github.com/milk9111/stormdrop/ecs"
	"github.com/milk9111/stormdrop/ecs/component"
)

// groundedSnap keeps a grounded character pressed onto the floor.
const groundedSnap = -2.0

// MovementSystem is the player's character controller. It reads Input and
// Player tuning and moves the kinematic player body, recording the
// resulting velocity on its RigidBody.
type MovementSystem struct {
	GroundY float64
	DT      float64
}

func NewMovementSystem(groundY float64) *MovementSystem {
	return &MovementSystem{GroundY: groundY, DT: common.DeltaTime}
}

func (s *MovementSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := s.DT

	for _, e := range w.Query(component.PlayerComponent.Kind(), component.InputComponent.Kind(), component.TransformComponent.Kind(), component.RigidBodyComponent.Kind()) {
		p, _ := ecs.Get(w, e, component.PlayerComponent)
		input, _ := ecs.Get(w, e, component.InputComponent)
		t, _ := ecs.Get(w, e, component.TransformComponent)
		body, _ := ecs.Get(w, e, component.RigidBodyComponent)

		grounded := t.Position.Y()-s.GroundY <= p.GroundDistance
		vy := body.Velocity.Y()
		if grounded && vy < 0 {
			vy = groundedSnap
		}

		move := common.Right(t.Rotation).Mul(input.MoveX).Add(common.Forward(t.Rotation).Mul(input.MoveZ))
		move[1] = 0
		if l := move.Len(); l > 1 {
			move = move.Mul(1 / l)
		}
		planar := move.Mul(p.Speed)

		if input.JumpPressed && grounded {
			vy = math.Sqrt(p.JumpHeight * -2 * p.Gravity)
		}
		vy += p.Gravity * dt

		pos := t.Position.Add(mgl64.Vec3{planar.X(), vy, planar.Z()}.Mul(dt))
		if pos.Y() < s.GroundY {
			pos[1] = s.GroundY
		}

		t.Position = pos
		body.Velocity = mgl64.Vec3{planar.X(), vy, planar.Z()}
		body.Grounded = grounded
	}
}
