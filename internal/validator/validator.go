package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/storyline/pkg/domain"
)

// Report is the result of inspecting a compiled story.
type Report struct {
	// Reachable lists the nodes visited from the root, in BFS order.
	Reachable []string
	// Unreachable lists nodes no path from the root leads to.
	Unreachable []string
	// DeadEnds lists reachable non-ending nodes without choices.
	// A player landing there is stuck until Restart.
	DeadEnds []string
	// Endings lists the ending kinds a player can reach, in discovery order.
	Endings []domain.EndingKind
	// EndingsWithChoices lists ending nodes that still offer choices.
	EndingsWithChoices []string
}

// Inspect walks the graph from its root and reports structural problems.
// The graph is already known to be well formed (Compile guarantees that),
// so the checks here are about the shape of the story, not its integrity.
func Inspect(g *domain.Graph) Report {
	var r Report

	visited := make(map[string]bool, g.Len())
	seenEnding := make(map[domain.EndingKind]bool)
	queue := []string{g.RootID()}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		if visited[id] {
			continue
		}
		visited[id] = true
		r.Reachable = append(r.Reachable, id)

		node, ok := g.Node(id)
		if !ok {
			continue
		}

		if node.IsEnding() {
			if !seenEnding[node.Ending] {
				seenEnding[node.Ending] = true
				r.Endings = append(r.Endings, node.Ending)
			}
			if len(node.Choices) > 0 {
				r.EndingsWithChoices = append(r.EndingsWithChoices, id)
			}
		} else if len(node.Choices) == 0 {
			r.DeadEnds = append(r.DeadEnds, id)
		}

		for _, c := range node.Choices {
			if c.HasTarget() && !visited[c.Target] {
				queue = append(queue, c.Target)
			}
		}
	}

	for _, n := range g.Nodes() {
		if !visited[n.ID] {
			r.Unreachable = append(r.Unreachable, n.ID)
		}
	}

	return r
}

// Err returns an error when the story has dead ends. Everything else in the
// report is a warning.
func (r Report) Err() error {
	if len(r.DeadEnds) == 0 {
		return nil
	}
	return fmt.Errorf("found %d dead ends:\n- %s", len(r.DeadEnds), strings.Join(r.DeadEnds, "\n- "))
}

// Warnings describes the non-fatal findings, one line each.
func (r Report) Warnings() []string {
	var out []string
	for _, id := range r.Unreachable {
		out = append(out, fmt.Sprintf("node '%s' is unreachable from the root", id))
	}
	for _, id := range r.EndingsWithChoices {
		out = append(out, fmt.Sprintf("ending node '%s' offers choices", id))
	}
	if len(r.Endings) == 0 {
		out = append(out, "no ending is reachable from the root")
	}
	return out
}
