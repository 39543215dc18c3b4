package system

import (
	"github.com/milk9111/stormdrop/ecs"
	"github.com/milk9111/stormdrop/ecs/component"
)

// TTLSystem decrements frame-based TTL components and destroys entities when
// the TTL reaches zero.
type TTLSystem struct{}

func NewTTLSystem() *TTLSystem {
	return &TTLSystem{}
}

func (s *TTLSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	var expired []ecs.Entity
	ecs.ForEach(w, component.TTLComponent, func(e ecs.Entity, ttl *component.TTL) {
		if ttl.Frames > 1 {
			ttl.Frames--
			return
		}
		expired = append(expired, e)
	})

	for _, e := range expired {
		releaseSlot(w, e)
		ecs.DestroyEntity(w, e)
	}
}

// releaseSlot frees the owning player's slot if e is the held item, so a
// destroyed weapon never leaves the slot occupied.
func releaseSlot(w *ecs.World, e ecs.Entity) {
	eq, ok := ecs.Get(w, e, component.EquippableComponent)
	if !ok || !eq.State.Held() {
		return
	}
	slot, ok := ecs.Get(w, ecs.Entity(eq.Player), component.EquipmentSlotComponent)
	if ok && slot.Item == uint64(e) {
		slot.Occupied = false
		slot.Item = 0
	}
}
