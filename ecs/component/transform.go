package component

import "github.com/go-gl/mathgl/mgl64"

// Transform is an entity's pose. With Parent == 0 the pose is in world
// space; otherwise it is local to the parent entity's world pose.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    mgl64.Vec3
	Parent   uint64
}

// NewTransform returns a world-space transform at pos with identity
// rotation and unit scale.
func NewTransform(pos mgl64.Vec3) *Transform {
	return &Transform{Position: pos, Rotation: mgl64.QuatIdent(), Scale: mgl64.Vec3{1, 1, 1}}
}

// HeldPose resets the local pose to zero translation, identity rotation
// and unit scale under parent.
func (t *Transform) HeldPose(parent uint64) {
	t.Parent = parent
	t.Position = mgl64.Vec3{}
	t.Rotation = mgl64.QuatIdent()
	t.Scale = mgl64.Vec3{1, 1, 1}
}

var TransformComponent = NewComponent[Transform]()
