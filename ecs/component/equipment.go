package component

import "github.com/milk9111/stormdrop/equip"

// Equippable is an item that can be picked up into the player's single
// equipment slot and dropped back into the world.
type Equippable struct {
	State equip.State
	// Player is the entity whose slot and view anchor this item uses.
	Player uint64

	PickUpRange      float64
	DropForwardForce float64
	DropTorque       float64
}

var EquippableComponent = NewComponent[Equippable]()

// EquipmentSlot is the player's single carry slot. It is owned by the
// player entity so each session has its own.
type EquipmentSlot struct {
	Occupied bool
	Item     uint64
}

var EquipmentSlotComponent = NewComponent[EquipmentSlot]()
