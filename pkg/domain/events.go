package domain

import "time"

// EventType defines the category of the event.
type EventType string

const (
	EventChoice    EventType = "choice"
	EventNodeEnter EventType = "node_enter"
	EventEnding    EventType = "ending"
	EventRestart   EventType = "restart"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// ChoiceEvent is emitted for every applied choice, moving or not.
type ChoiceEvent struct {
	EventBase
	FromNodeID string     `json:"from_node_id"`
	ChoiceID   string     `json:"choice_id"`
	Target     string     `json:"to,omitempty"`
	Hint       EndingKind `json:"hint,omitempty"`
}

// NodeEvent is emitted when the cursor enters a node.
type NodeEvent struct {
	EventBase
	NodeID string `json:"node_id"`
}

// EndingEvent is emitted when the cursor lands on an ending node.
type EndingEvent struct {
	EventBase
	NodeID string     `json:"node_id"`
	Kind   EndingKind `json:"kind"`
}

// RestartEvent is emitted when a playthrough is reset to the root.
type RestartEvent struct {
	EventBase
	FromNodeID string `json:"from_node_id"`
}

// LifecycleHooks defines callbacks for engine observability.
// Hooks are invoked synchronously after the engine has released its lock,
// so they may query the engine.
type LifecycleHooks struct {
	OnChoice    func(*ChoiceEvent)
	OnNodeEnter func(*NodeEvent)
	OnEnding    func(*EndingEvent)
	OnRestart   func(*RestartEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnChoice:    chain(h.OnChoice, other.OnChoice),
		OnNodeEnter: chain(h.OnNodeEnter, other.OnNodeEnter),
		OnEnding:    chain(h.OnEnding, other.OnEnding),
		OnRestart:   chain(h.OnRestart, other.OnRestart),
	}
}

func chain[E any](a, b func(E)) func(E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(e E) {
		a(e)
		b(e)
	}
}
