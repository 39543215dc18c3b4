package system

import (
	"github.com/milk9111/stormdrop/ecs"
	"github.com/milk9111/stormdrop/ecs/component"
	"github.com/milk9111/stormdrop/logger"
	"github.com/sirupsen/logrus"
)

// TriggerSystem consumes TriggerEnter events and fires one-shot effects on
// any entity exposing a stat sheet. An effect fires at most once: it is
// marked consumed, loses its collider and is handed to the TTL pass.
type TriggerSystem struct{}

func NewTriggerSystem() *TriggerSystem {
	return &TriggerSystem{}
}

func (s *TriggerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	for _, evt := range w.Events().DrainType(ecs.EventTriggerEnter) {
		enter, ok := evt.Data.(ecs.TriggerEnterEvent)
		if !ok {
			continue
		}
		if !w.IsAlive(enter.Trigger) || !w.IsAlive(enter.Other) {
			continue
		}

		// Entities without a stat sheet are ignored silently.
		target, ok := ecs.Get(w, enter.Other, component.StatSheetComponent)
		if !ok {
			continue
		}

		fired := false
		if effect, ok := ecs.Get(w, enter.Trigger, component.TriggerEffectComponent); ok {
			fired = effect.Apply(target)
		} else if despawn, ok := ecs.Get(w, enter.Trigger, component.DespawnEffectComponent); ok && !despawn.Consumed {
			despawn.Consumed = true
			fired = true
		}
		if !fired {
			continue
		}

		ecs.Remove(w, enter.Trigger, component.ColliderComponent)
		_ = ecs.Add(w, enter.Trigger, component.TTLComponent, &component.TTL{Frames: 1})
		w.Events().Push(ecs.Event{Type: ecs.EventConsumed, Data: ecs.ConsumedEvent{Effect: enter.Trigger, Target: enter.Other}})

		logger.Log.WithFields(logrus.Fields{
			"effect": enter.Trigger,
			"target": enter.Other,
			"health": target.Health(),
			"armour": target.Armour(),
		}).Debug("trigger effect consumed")
	}
}
