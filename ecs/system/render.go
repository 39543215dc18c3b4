package system

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/stormdrop/common"
	"github.com/milk9111/stormdrop/ecs"
	"github.com/milk9111/stormdrop/ecs/component"
	"golang.org/x/image/colornames"
)

// RenderSystem draws a top-down debug view of the arena centred on the
// player: colliders as circles, the player's facing as a line.
type RenderSystem struct {
	// Scale is pixels per world unit.
	Scale float64
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{Scale: 24}
}

func (r *RenderSystem) Update(*ecs.World) {}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	screen.Fill(colornames.Darkslategray)

	bounds := screen.Bounds()
	cx := float64(bounds.Dx()) / 2
	cy := float64(bounds.Dy()) / 2

	var focus ecs.Entity
	if p, ok := ecs.First(w, component.PlayerTagComponent); ok {
		focus = p
	}
	var origin Pose
	if pose, ok := WorldPose(w, focus); ok {
		origin = pose
	}

	project := func(x, z float64) (float32, float32) {
		// +Z is up the screen.
		return float32(cx + (x-origin.Position.X())*r.Scale), float32(cy - (z-origin.Position.Z())*r.Scale)
	}

	for _, e := range w.Query(component.ColliderComponent.Kind(), component.TransformComponent.Kind()) {
		col, _ := ecs.Get(w, e, component.ColliderComponent)
		pose, ok := WorldPose(w, e)
		if !ok {
			continue
		}
		sx, sy := project(pose.Position.X(), pose.Position.Z())
		radius := float32(col.Radius * r.Scale)
		clr := colliderColor(w, e)
		if col.Trigger {
			vector.StrokeCircle(screen, sx, sy, radius, 2, clr, true)
		} else {
			vector.FillCircle(screen, sx, sy, radius, clr, true)
		}
	}

	if focus.Valid() {
		if view, ok := anchorPose(w, focus); ok {
			fwd := common.Forward(view.Rotation)
			sx, sy := project(view.Position.X(), view.Position.Z())
			ex, ey := project(view.Position.X()+fwd.X()*2, view.Position.Z()+fwd.Z()*2)
			vector.StrokeLine(screen, sx, sy, ex, ey, 2, colornames.White, true)
		}
	}
}

func anchorPose(w *ecs.World, player ecs.Entity) (Pose, bool) {
	p, ok := ecs.Get(w, player, component.PlayerComponent)
	if !ok {
		return Pose{}, false
	}
	return WorldPose(w, ecs.Entity(p.ViewAnchor))
}

func colliderColor(w *ecs.World, e ecs.Entity) color.Color {
	switch {
	case ecs.Has(w, e, component.PlayerTagComponent):
		return colornames.Crimson
	case ecs.Has(w, e, component.EquippableComponent):
		if eq, _ := ecs.Get(w, e, component.EquippableComponent); eq.State.Held() {
			return colornames.Gold
		}
		return colornames.Goldenrod
	case ecs.Has(w, e, component.DespawnEffectComponent):
		return colornames.Lightgrey
	}
	if effect, ok := ecs.Get(w, e, component.TriggerEffectComponent); ok {
		switch effect.Kind {
		case component.EffectHeal:
			return colornames.Limegreen
		case component.EffectArmour:
			return colornames.Deepskyblue
		case component.EffectDamage:
			return colornames.Mediumpurple
		}
	}
	return colornames.Gray
}
