package ecs

// EventKind identifies gameplay events raised by systems.
type EventKind string

const (
	EventLanded    EventKind = "landed"
	EventJumped    EventKind = "jumped"
	EventDetached  EventKind = "detached"
	EventCollected EventKind = "collected"
	EventGoal      EventKind = "goal"
)

// Event is a gameplay event payload.
type Event struct {
	Kind   EventKind
	Entity Entity
	Data   any
}

// EventQueue is a simple FIFO queue drained once per frame by the game loop.
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

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
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
