package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/storyline/pkg/domain"
)

// GraphOverlay contains dynamic state data to visualize on the graph.
type GraphOverlay struct {
	VisitedNodes []string
	CurrentNode  string
}

// NewOverlay builds an overlay from a playthrough snapshot.
func NewOverlay(state domain.State) *GraphOverlay {
	return &GraphOverlay{
		VisitedNodes: state.History,
		CurrentNode:  state.CurrentNodeID,
	}
}

// GenerateMermaid produces a Mermaid flowchart syntax string from a story graph.
// It applies semantic styling:
// - Root: ((Circle))
// - Ending: (["Stadium"]) labelled with the ending kind
// - Default: [Rectangle]
// Edges carry the choice text and, when present, the hinted ending.
// Choices without target are drawn as dotted self-loops.
// It also applies overlay styles (Visited/Current) if provided.
func GenerateMermaid(g *domain.Graph, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	ids := newIDMapper(g)

	for _, node := range g.Nodes() {
		safeID := ids.get(node.ID)

		opener, closer := "[", "]"
		label := escapeLabel(node.ID)

		switch {
		case node.ID == g.RootID():
			opener, closer = "((", "))"
		case node.IsEnding():
			opener, closer = "([", "])"
			label = fmt.Sprintf("%s <br/> %s", label, escapeLabel(node.Ending.String()))
		}

		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, label, closer))

		for _, c := range node.Choices {
			text := edgeLabel(c)
			if !c.HasTarget() {
				sb.WriteString(fmt.Sprintf("    %s -. \"%s\" .-> %s\n", safeID, text, safeID))
				continue
			}
			sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", safeID, text, ids.get(c.Target)))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, id := range overlay.VisitedNodes {
			safeID := ids.get(id)
			if !visitedSet[safeID] && safeID != "" {
				visitedSet[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", safeID))
			}
		}

		if overlay.CurrentNode != "" {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", ids.get(overlay.CurrentNode)))
		}
	}

	return sb.String()
}

func edgeLabel(c domain.Choice) string {
	text := escapeLabel(c.Text)
	if !c.Hint.IsZero() {
		text = fmt.Sprintf("%s (%s)", text, escapeLabel(c.Hint.String()))
	}
	return text
}

// escapeLabel keeps a label inside its double quotes.
func escapeLabel(text string) string {
	return strings.ReplaceAll(text, "\"", "'")
}

// reservedIDs break the flowchart parser when used as node IDs.
var reservedIDs = map[string]bool{
	"end": true, "graph": true, "flowchart": true, "subgraph": true,
	"class": true, "classdef": true, "style": true, "linkstyle": true,
	"click": true, "direction": true, "default": true,
}

// idMapper assigns every story node a distinct Mermaid ID. Sanitized IDs
// that collide or are reserved get a numeric suffix, in story order.
type idMapper struct {
	ids map[string]string
}

func newIDMapper(g *domain.Graph) *idMapper {
	m := &idMapper{ids: make(map[string]string, g.Len())}
	used := make(map[string]bool, g.Len())

	for _, n := range g.Nodes() {
		base := sanitizeMermaidID(n.ID)
		candidate := base
		for i := 2; used[candidate] || reservedIDs[strings.ToLower(candidate)]; i++ {
			candidate = fmt.Sprintf("%s_%d", base, i)
		}
		used[candidate] = true
		m.ids[n.ID] = candidate
	}
	return m
}

func (m *idMapper) get(id string) string {
	if safe, ok := m.ids[id]; ok {
		return safe
	}
	return sanitizeMermaidID(id)
}

func sanitizeMermaidID(id string) string {
	return strings.Map(func(r rune) rune {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, id)
}
