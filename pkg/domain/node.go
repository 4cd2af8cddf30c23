package domain

import "slices"

// Node is a passage of the story graph.
type Node struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`

	// Choices are presented to the player in this order.
	Choices []Choice `json:"choices,omitempty" yaml:"choices,omitempty"`

	// Ending marks the node as a terminal outcome of the given kind.
	// Terminal nodes conventionally carry no choices, but this is not enforced.
	Ending EndingKind `json:"ending,omitempty" yaml:"ending,omitempty"`
}

// IsEnding reports whether the node carries an ending classification.
func (n Node) IsEnding() bool {
	return !n.Ending.IsZero()
}

// Clone returns a copy that does not share the choice slice.
func (n Node) Clone() Node {
	n.Choices = slices.Clone(n.Choices)
	return n
}

// Choice is an edge leaving a node.
type Choice struct {
	ID   string `json:"id" yaml:"id,omitempty"`
	Text string `json:"text" yaml:"text"`

	// Target is the ID of the node this choice leads to.
	// An empty target is a reflective choice: selecting it does not move the cursor.
	Target string `json:"to,omitempty" yaml:"to,omitempty"`

	// Hint nudges the active ending towards a kind, independently of the target.
	Hint EndingKind `json:"hint,omitempty" yaml:"hint,omitempty"`
}

// HasTarget reports whether selecting the choice moves the cursor.
func (c Choice) HasTarget() bool {
	return c.Target != ""
}
