package component

// Player holds locomotion tuning for the player's character controller.
type Player struct {
	Speed          float64
	Gravity        float64
	JumpHeight     float64
	GroundDistance float64
	LookSpeed      float64
	Yaw            float64
	// ViewAnchor is the child entity the camera and held items attach to.
	ViewAnchor uint64
}

var PlayerComponent = NewComponent[Player]()

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// ViewAnchor is the camera pivot of the player.
type ViewAnchor struct {
	Pitch float64
}

var ViewAnchorComponent = NewComponent[ViewAnchor]()
