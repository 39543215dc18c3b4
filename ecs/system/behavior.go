package system

import (
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/stormdrop/ecs"
	"github.com/milk9111/stormdrop/ecs/component"
	"github.com/milk9111/stormdrop/logger"
	"github.com/milk9111/stormdrop/prefabs"
	"github.com/sirupsen/logrus"
)

// BehaviorSystem runs an item's tengo script once per tick while the item's
// Behavior is enabled. Script globals:
//
//	fire  bool, the owning player's fire button
//	state map, persists between ticks for the life of the entity
//	emit  func(name), queues a BehaviorEvent
type BehaviorSystem struct {
	cache  map[ecs.Entity]*behaviorRuntime
	loader func(string) ([]byte, error)
}

type behaviorRuntime struct {
	scriptPath string
	compiled   *tengo.Compiled
	state      *tengo.Map
	emitted    []string
	failed     bool
}

func NewBehaviorSystem() *BehaviorSystem {
	return &BehaviorSystem{
		cache:  map[ecs.Entity]*behaviorRuntime{},
		loader: prefabs.LoadScript,
	}
}

func (s *BehaviorSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	for ent := range s.cache {
		if !w.IsAlive(ent) || !ecs.Has(w, ent, component.BehaviorComponent) {
			delete(s.cache, ent)
		}
	}

	ecs.ForEach(w, component.BehaviorComponent, func(e ecs.Entity, beh *component.Behavior) {
		if !beh.Enabled || strings.TrimSpace(beh.Script) == "" {
			return
		}

		rt := s.runtime(e, beh.Script)
		if rt == nil {
			return
		}

		fire := false
		if eq, ok := ecs.Get(w, e, component.EquippableComponent); ok {
			if input, ok := ecs.Get(w, ecs.Entity(eq.Player), component.InputComponent); ok {
				fire = input.Fire
			}
		}

		rt.emitted = rt.emitted[:0]
		if err := rt.run(fire); err != nil {
			logger.Log.WithFields(logrus.Fields{"entity": e, "script": beh.Script}).WithError(err).Warn("behavior script failed")
			rt.failed = true
			return
		}
		for _, name := range rt.emitted {
			w.Events().Push(ecs.Event{Type: ecs.EventBehavior, Data: ecs.BehaviorEvent{Source: e, Name: name}})
		}
	})
}

// Invalidate drops compiled scripts for path so they are recompiled from
// disk on the next tick. State maps are discarded with them.
func (s *BehaviorSystem) Invalidate(path string) {
	if s == nil {
		return
	}
	for ent, rt := range s.cache {
		if path == "" || rt.scriptPath == path {
			delete(s.cache, ent)
		}
	}
}

// State returns the persisted script state for e, mainly for the HUD.
func (s *BehaviorSystem) State(e ecs.Entity) map[string]any {
	if s == nil {
		return nil
	}
	rt, ok := s.cache[e]
	if !ok || rt.state == nil {
		return nil
	}
	return tengo.ToInterface(rt.state).(map[string]any)
}

func (s *BehaviorSystem) runtime(e ecs.Entity, path string) *behaviorRuntime {
	if rt, ok := s.cache[e]; ok && rt.scriptPath == path {
		if rt.failed {
			return nil
		}
		return rt
	}

	rt, err := s.compile(path)
	if err != nil {
		logger.Log.WithFields(logrus.Fields{"entity": e, "script": path}).WithError(err).Warn("behavior script compile failed")
		s.cache[e] = &behaviorRuntime{scriptPath: path, failed: true}
		return nil
	}
	s.cache[e] = rt
	return rt
}

func (s *BehaviorSystem) compile(path string) (*behaviorRuntime, error) {
	src, err := s.loader(path)
	if err != nil {
		return nil, err
	}

	rt := &behaviorRuntime{
		scriptPath: path,
		state:      &tengo.Map{Value: map[string]tengo.Object{}},
	}

	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	_ = script.Add("fire", false)
	_ = script.Add("state", rt.state)
	_ = script.Add("emit", &tengo.UserFunction{Name: "emit", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		name, ok := tengo.ToString(args[0])
		if !ok || name == "" {
			return tengo.FalseValue, nil
		}
		rt.emitted = append(rt.emitted, name)
		return tengo.TrueValue, nil
	}})

	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}
	rt.compiled = compiled
	return rt, nil
}

func (rt *behaviorRuntime) run(fire bool) error {
	if err := rt.compiled.Set("fire", fire); err != nil {
		return err
	}
	if err := rt.compiled.Set("state", rt.state); err != nil {
		return err
	}
	return rt.compiled.Run()
}
