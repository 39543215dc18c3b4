package component

// Input stores per-tick input state for an entity. *Pressed fields are edge
// flags: true only on the tick the button went down.
type Input struct {
	MoveX float64
	MoveZ float64
	LookX float64
	LookY float64

	Jump          bool
	JumpPressed   bool
	PickupPressed bool
	DropPressed   bool
	Fire          bool
}

var InputComponent = NewComponent[Input]()
