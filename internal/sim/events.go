package sim

import (
	"github.com/gravitas-games/foundry/internal/item"
)

// EventType represents the type of simulation event.
type EventType int

const (
	// EventTaskQueued is emitted when a task or chain enters the queue.
	EventTaskQueued EventType = iota
	// EventTaskCompleted is emitted when a queued task finishes.
	EventTaskCompleted
	// EventChainCompleted is emitted when a chain's final task commits.
	EventChainCompleted
	// EventChainCancelled is emitted when an in-flight chain is torn down.
	EventChainCancelled
	// EventPowerStatusChanged is emitted when the grid flips between
	// surplus, balanced and deficit.
	EventPowerStatusChanged
	// EventFuelExhausted is emitted when a burner facility stalls with an
	// empty buffer despite nonzero demand.
	EventFuelExhausted
)

// String returns a human-readable representation of the event type.
func (t EventType) String() string {
	switch t {
	case EventTaskQueued:
		return "TaskQueued"
	case EventTaskCompleted:
		return "TaskCompleted"
	case EventChainCompleted:
		return "ChainCompleted"
	case EventChainCancelled:
		return "ChainCancelled"
	case EventPowerStatusChanged:
		return "PowerStatusChanged"
	case EventFuelExhausted:
		return "FuelExhausted"
	default:
		return "Unknown"
	}
}

// Event is a simulation event. All fields are plain values so listeners can
// serialize events directly.
type Event struct {
	Type EventType `json:"type"`
	// Time is the simulation clock in seconds.
	Time       float64        `json:"time"`
	TaskID     string         `json:"taskId,omitempty"`
	ChainID    string         `json:"chainId,omitempty"`
	FacilityID string         `json:"facilityId,omitempty"`
	Item       item.ID        `json:"item,omitempty"`
	Data       map[string]any `json:"data,omitempty"`
}

// Bus delivers events to subscribed handlers. Dispatch is synchronous and
// ordered: the simulation is single-threaded and handlers run inside the
// tick that produced the event.
type Bus struct {
	handlers []func(Event)
}

// NewBus creates an empty event bus.
func NewBus() *Bus { return &Bus{} }

// Subscribe registers a handler. There is no unsubscribe; buses live as
// long as the engine that owns them.
func (b *Bus) Subscribe(handler func(Event)) {
	if handler != nil {
		b.handlers = append(b.handlers, handler)
	}
}

// Publish sends an event to all handlers in subscription order. Nil buses
// are silent, so wiring one up is optional.
func (b *Bus) Publish(event Event) {
	if b == nil {
		return
	}
	for _, h := range b.handlers {
		h(event)
	}
}
