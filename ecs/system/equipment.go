package system

import (
	"math/rand/v2"

	"github.com/milk9111/stormdrop/common"
	"github.com/milk9111/stormdrop/ecs"
	"github.com/milk9111/stormdrop/ecs/component"
	"github.com/milk9111/stormdrop/equip"
	"github.com/milk9111/stormdrop/logger"
	"github.com/sirupsen/logrus"
)

// EquipmentSystem runs the pickup/equip/drop machine for every equippable
// item once per tick. Items are visited in entity id order so two items
// competing for the slot on the same tick always resolve the same way.
type EquipmentSystem struct {
	rng *rand.Rand
}

func NewEquipmentSystem(seed uint64) *EquipmentSystem {
	return &EquipmentSystem{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *EquipmentSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	for _, item := range w.Query(component.EquippableComponent.Kind(), component.TransformComponent.Kind()) {
		eq, ok := ecs.Get(w, item, component.EquippableComponent)
		if !ok {
			continue
		}
		player := ecs.Entity(eq.Player)
		slot, ok := ecs.Get(w, player, component.EquipmentSlotComponent)
		if !ok {
			continue
		}
		input, ok := ecs.Get(w, player, component.InputComponent)
		if !ok {
			continue
		}
		playerPose, ok := WorldPose(w, player)
		if !ok {
			continue
		}
		itemPose, ok := WorldPose(w, item)
		if !ok {
			continue
		}

		guards := equip.Guards{
			InRange:       equip.InRange(itemPose.Position, playerPose.Position, eq.PickUpRange),
			PickupPressed: input.PickupPressed,
			DropPressed:   input.DropPressed,
			SlotOccupied:  slot.Occupied,
		}
		next, effect := equip.Next(eq.State, guards)

		switch effect {
		case equip.EffectEquip:
			if !Equip(w, item, player) {
				continue
			}
		case equip.EffectDrop:
			if slot.Item != 0 && slot.Item != uint64(item) {
				continue
			}
			s.drop(w, item, player, eq)
		}
		eq.State = next
	}
}

// Equip attaches item to player's view anchor and claims the slot. It is
// also used at level build time for items that start held.
func Equip(w *ecs.World, item, player ecs.Entity) bool {
	slot, ok := ecs.Get(w, player, component.EquipmentSlotComponent)
	if !ok || slot.Occupied {
		return false
	}
	p, ok := ecs.Get(w, player, component.PlayerComponent)
	if !ok || !w.IsAlive(ecs.Entity(p.ViewAnchor)) {
		return false
	}
	t, ok := ecs.Get(w, item, component.TransformComponent)
	if !ok {
		return false
	}

	slot.Occupied = true
	slot.Item = uint64(item)

	t.HeldPose(p.ViewAnchor)

	if body, ok := ecs.Get(w, item, component.RigidBodyComponent); ok {
		body.Kinematic = true
		body.Velocity = body.Velocity.Mul(0)
		body.AngularVelocity = body.AngularVelocity.Mul(0)
		body.Grounded = false
	}
	if col, ok := ecs.Get(w, item, component.ColliderComponent); ok {
		col.Trigger = true
	}
	if beh, ok := ecs.Get(w, item, component.BehaviorComponent); ok {
		beh.Enabled = true
	}
	if eq, ok := ecs.Get(w, item, component.EquippableComponent); ok {
		eq.State = equip.Equipped
	}

	w.Events().Push(ecs.Event{Type: ecs.EventEquipped, Data: ecs.EquipmentEvent{Item: item, Player: player}})
	logger.Log.WithFields(logrus.Fields{
		"item":   item,
		"player": player,
		"tick":   w.Tick(),
	}).Debug("item equipped")
	return true
}

func (s *EquipmentSystem) drop(w *ecs.World, item, player ecs.Entity, eq *component.Equippable) {
	slot, _ := ecs.Get(w, player, component.EquipmentSlotComponent)
	t, _ := ecs.Get(w, item, component.TransformComponent)

	// Bake the held world pose before detaching so the item leaves from
	// where it was drawn.
	pose, _ := WorldPose(w, item)
	t.Parent = 0
	t.Position = pose.Position
	t.Rotation = pose.Rotation
	t.Scale = pose.Scale

	if slot != nil {
		slot.Occupied = false
		slot.Item = 0
	}

	if col, ok := ecs.Get(w, item, component.ColliderComponent); ok {
		col.Trigger = false
	}
	if beh, ok := ecs.Get(w, item, component.BehaviorComponent); ok {
		beh.Enabled = false
	}

	body, ok := ecs.Get(w, item, component.RigidBodyComponent)
	if ok {
		params := equip.DropParams{
			Force:   eq.DropForwardForce,
			Torque:  eq.DropTorque,
			Mass:    body.Mass,
			Inertia: body.Inertia,
			Forward: common.WorldForward,
			Up:      common.WorldUp,
		}
		if pb, ok := ecs.Get(w, player, component.RigidBodyComponent); ok {
			params.PlayerVelocity = pb.Velocity
		}
		if p, ok := ecs.Get(w, player, component.PlayerComponent); ok {
			if view, ok := WorldPose(w, ecs.Entity(p.ViewAnchor)); ok {
				params.Forward = common.Forward(view.Rotation)
				params.Up = common.Up(view.Rotation)
			}
		}

		res := equip.Drop(params, s.rng)
		body.Kinematic = false
		body.Velocity = res.Velocity
		body.AngularVelocity = res.AngularVelocity
		body.Grounded = false
	}

	w.Events().Push(ecs.Event{Type: ecs.EventDropped, Data: ecs.EquipmentEvent{Item: item, Player: player}})
	logger.Log.WithFields(logrus.Fields{
		"item":     item,
		"player":   player,
		"position": t.Position,
		"tick":     w.Tick(),
	}).Debug("item dropped")
}
