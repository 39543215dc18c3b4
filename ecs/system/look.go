package system

import (
	"math"

	"github.com/milk9111/stormdrop/common"
	"github.com/milk9111/stormdrop/ecs"
	"github.com/milk9111/stormdrop/ecs/component"
)

// MaxPitch keeps the view anchor short of straight up or down.
const MaxPitch = 89 * math.Pi / 180

// LookSystem turns the player body with horizontal look input and tilts the
// view anchor with vertical look input.
type LookSystem struct{}

func NewLookSystem() *LookSystem {
	return &LookSystem{}
}

func (s *LookSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	for _, e := range w.Query(component.PlayerComponent.Kind(), component.InputComponent.Kind(), component.TransformComponent.Kind()) {
		p, _ := ecs.Get(w, e, component.PlayerComponent)
		input, _ := ecs.Get(w, e, component.InputComponent)
		t, _ := ecs.Get(w, e, component.TransformComponent)

		p.Yaw = math.Mod(p.Yaw+input.LookX*p.LookSpeed, 2*math.Pi)
		t.Rotation = common.YawPitch(p.Yaw, 0)

		anchor := ecs.Entity(p.ViewAnchor)
		view, ok := ecs.Get(w, anchor, component.ViewAnchorComponent)
		if !ok {
			continue
		}
		view.Pitch = common.Clamp(view.Pitch+input.LookY*p.LookSpeed, -MaxPitch, MaxPitch)
		if at, ok := ecs.Get(w, anchor, component.TransformComponent); ok {
			at.Rotation = common.YawPitch(0, view.Pitch)
		}
	}
}
