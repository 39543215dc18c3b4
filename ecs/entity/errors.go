package entity

import "errors"

var (
	ErrMissingPlayer     = errors.New("entity: level has no player")
	ErrMissingViewAnchor = errors.New("entity: player has no view anchor")
	ErrMissingBody       = errors.New("entity: equippable item needs a transform, rigid body and collider")
	ErrSlotConflict      = errors.New("entity: more than one item starts equipped")
	ErrInvalidEffect     = errors.New("entity: invalid trigger effect")
)
