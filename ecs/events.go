package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const (
	EventTriggerEnter = "trigger_enter"
	EventBehavior     = "behavior"
	EventEquipped     = "equipped"
	EventDropped      = "dropped"
	EventConsumed     = "consumed"
)

// TriggerEnterEvent is emitted by physics the first tick a trigger volume
// overlaps another collider.
type TriggerEnterEvent struct {
	Trigger Entity
	Other   Entity
}

// BehaviorEvent is emitted by an item behaviour script.
type BehaviorEvent struct {
	Source Entity
	Name   string
}

// EquipmentEvent reports an equip or drop transition.
type EquipmentEvent struct {
	Item   Entity
	Player Entity
}

// ConsumedEvent reports a trigger effect that fired.
type ConsumedEvent struct {
	Effect Entity
	Target Entity
}

// EventQueue is a simple FIFO queue that lives for one tick.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// DrainType removes and returns the events of one type, keeping the rest
// queued in order.
func (q *EventQueue) DrainType(typ string) []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	var out []Event
	kept := q.items[:0]
	for _, evt := range q.items {
		if evt.Type == typ {
			out = append(out, evt)
			continue
		}
		kept = append(kept, evt)
	}
	q.items = kept
	return out
}

// Peek returns the queued events without removing them.
func (q *EventQueue) Peek() []Event {
	if q == nil {
		return nil
	}
	return q.items
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
