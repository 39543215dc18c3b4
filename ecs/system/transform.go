package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/stormdrop/ecs"
	"github.com/milk9111/stormdrop/ecs/component"
)

// maxParentDepth bounds parent chain walks so a bad cycle cannot hang a tick.
const maxParentDepth = 16

// Pose is a resolved world-space transform.
type Pose struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    mgl64.Vec3
}

// WorldPose resolves e's transform through its parent chain.
func WorldPose(w *ecs.World, e ecs.Entity) (Pose, bool) {
	return worldPose(w, e, 0)
}

func worldPose(w *ecs.World, e ecs.Entity, depth int) (Pose, bool) {
	t, ok := ecs.Get(w, e, component.TransformComponent)
	if !ok || depth > maxParentDepth {
		return Pose{}, false
	}
	local := Pose{Position: t.Position, Rotation: t.Rotation, Scale: t.Scale}
	if local.Rotation.Len() == 0 {
		local.Rotation = mgl64.QuatIdent()
	}
	if local.Scale == (mgl64.Vec3{}) {
		local.Scale = mgl64.Vec3{1, 1, 1}
	}
	if t.Parent == 0 {
		return local, true
	}

	if !ecs.Has(w, ecs.Entity(t.Parent), component.TransformComponent) {
		// Dangling parent: treat the local pose as world space.
		return local, true
	}
	parent, ok := worldPose(w, ecs.Entity(t.Parent), depth+1)
	if !ok {
		return Pose{}, false
	}
	scaled := mgl64.Vec3{
		parent.Scale.X() * local.Position.X(),
		parent.Scale.Y() * local.Position.Y(),
		parent.Scale.Z() * local.Position.Z(),
	}
	return Pose{
		Position: parent.Position.Add(parent.Rotation.Rotate(scaled)),
		Rotation: parent.Rotation.Mul(local.Rotation).Normalize(),
		Scale: mgl64.Vec3{
			parent.Scale.X() * local.Scale.X(),
			parent.Scale.Y() * local.Scale.Y(),
			parent.Scale.Z() * local.Scale.Z(),
		},
	}, true
}
