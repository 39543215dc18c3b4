package component

// Behavior is a scripted behaviour attached to an item. It only runs while
// Enabled; equipping enables it and dropping disables it.
type Behavior struct {
	Script  string
	Enabled bool
}

var BehaviorComponent = NewComponent[Behavior]()
