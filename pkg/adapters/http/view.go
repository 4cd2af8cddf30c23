package http

import "github.com/aretw0/storyline/pkg/domain"

// SessionView is the JSON representation of a session.
type SessionView struct {
	SessionID     string            `json:"session_id"`
	NodeID        string            `json:"node_id"`
	Text          string            `json:"text"`
	Choices       []ChoiceView      `json:"choices"`
	ActiveEnding  domain.EndingKind `json:"active_ending,omitempty"`
	EndingReached bool              `json:"ending_reached"`
	EndingTitle   string            `json:"ending_title,omitempty"`
	History       []string          `json:"history"`
}

// ChoiceView is a choice offered by the current node.
type ChoiceView struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

func (s *Server) view(sessionID string, state domain.State) SessionView {
	node, _ := s.Sessions.Graph().Node(state.CurrentNodeID)

	v := SessionView{
		SessionID:     sessionID,
		NodeID:        node.ID,
		Text:          node.Text,
		Choices:       make([]ChoiceView, 0, len(node.Choices)),
		ActiveEnding:  state.ActiveEnding,
		EndingReached: state.EndingReached,
		History:       state.History,
	}
	for _, c := range node.Choices {
		v.Choices = append(v.Choices, ChoiceView{ID: c.ID, Text: c.Text})
	}
	if v.EndingReached {
		v.EndingTitle = v.ActiveEnding.String()
		if s.endingTitle != nil {
			v.EndingTitle = s.endingTitle(v.ActiveEnding)
		}
	}
	return v
}
