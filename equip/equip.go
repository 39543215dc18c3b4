// Package equip holds the pickup/equip/drop state machine for a held item.
//
// The machine is pure: systems gather guards once per tick, call Next, and
// apply the returned Effect to the world themselves.
package equip

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// State is the ownership state of an equippable item.
type State uint8

const (
	// Unequipped is a world-placed item that has never been held.
	Unequipped State = iota
	// Equipped is attached to the player's view anchor.
	Equipped
	// Dropped is physically identical to Unequipped but was held before.
	Dropped
)

func (s State) String() string {
	switch s {
	case Unequipped:
		return "unequipped"
	case Equipped:
		return "equipped"
	case Dropped:
		return "dropped"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Held reports whether the item is attached to a player.
func (s State) Held() bool {
	return s == Equipped
}

// Effect is the side effect a transition asks the caller to apply.
type Effect uint8

const (
	EffectNone Effect = iota
	EffectEquip
	EffectDrop
)

func (e Effect) String() string {
	switch e {
	case EffectNone:
		return "none"
	case EffectEquip:
		return "equip"
	case EffectDrop:
		return "drop"
	default:
		return fmt.Sprintf("effect(%d)", uint8(e))
	}
}

// Guards are the per-tick inputs of the transition function. PickupPressed
// and DropPressed must be edge flags (true only on the tick the key went
// down).
type Guards struct {
	InRange       bool
	PickupPressed bool
	DropPressed   bool
	SlotOccupied  bool
}

// Next evaluates one tick of the machine. A pickup attempt against an
// occupied slot is not an error: the state simply holds.
func Next(s State, g Guards) (State, Effect) {
	switch s {
	case Unequipped, Dropped:
		if g.InRange && g.PickupPressed && !g.SlotOccupied {
			return Equipped, EffectEquip
		}
	case Equipped:
		if g.DropPressed {
			return Dropped, EffectDrop
		}
	}
	return s, EffectNone
}

// InRange reports whether item is within pickUpRange of player (inclusive).
func InRange(item, player mgl64.Vec3, pickUpRange float64) bool {
	return player.Sub(item).Len() <= pickUpRange
}
