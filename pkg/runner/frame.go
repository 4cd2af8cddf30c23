package runner

import (
	"github.com/aretw0/storyline/pkg/domain"
	"github.com/aretw0/storyline/pkg/ports"
)

// Frame is everything a host needs to draw one turn of the story.
type Frame struct {
	NodeID        string            `json:"node_id"`
	Text          string            `json:"text"`
	Choices       []FrameChoice     `json:"choices"`
	ActiveEnding  domain.EndingKind `json:"active_ending,omitempty"`
	EndingReached bool              `json:"ending_reached"`
	EndingTitle   string            `json:"ending_title,omitempty"`
}

// FrameChoice is a choice as presented to the user, with its menu number.
type FrameChoice struct {
	Number int    `json:"number"`
	ID     string `json:"id"`
	Text   string `json:"text"`
}

// NewFrame captures the playthrough's current turn.
// title maps the active ending to a display title once an ending is reached; it may be nil.
func NewFrame(pt ports.Playthrough, title func(domain.EndingKind) string) Frame {
	state := pt.Snapshot()
	node, _ := pt.Graph().Node(state.CurrentNodeID)

	f := Frame{
		NodeID:        node.ID,
		Text:          node.Text,
		Choices:       make([]FrameChoice, 0, len(node.Choices)),
		ActiveEnding:  state.ActiveEnding,
		EndingReached: state.EndingReached,
	}
	for i, c := range node.Choices {
		f.Choices = append(f.Choices, FrameChoice{Number: i + 1, ID: c.ID, Text: c.Text})
	}

	if f.EndingReached {
		f.EndingTitle = f.ActiveEnding.String()
		if title != nil {
			f.EndingTitle = title(f.ActiveEnding)
		}
	}
	return f
}
