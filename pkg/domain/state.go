package domain

import "slices"

// State is a consistent snapshot of a playthrough.
type State struct {
	// CurrentNodeID is the node the player occupies.
	CurrentNodeID string `json:"current_node_id"`

	// ActiveEnding is the most recently set ending kind (hint or terminal node).
	ActiveEnding EndingKind `json:"active_ending,omitempty"`

	// EndingReached is set when an ending node is entered and stays set until restart,
	// even if the playthrough moves on from that node.
	EndingReached bool `json:"ending_reached"`

	// History lists the nodes visited since the last restart, root first.
	History []string `json:"history"`
}

// NewState creates a clean state positioned at the root node.
func NewState(rootID string) State {
	return State{
		CurrentNodeID: rootID,
		History:       []string{rootID},
	}
}

// Snapshot returns a deep copy of the state.
func (s State) Snapshot() State {
	s.History = slices.Clone(s.History)
	return s
}
