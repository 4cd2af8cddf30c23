package domain

import (
	"fmt"
	"strconv"
)

// Graph is the validated, read-only story graph.
// Nodes are stored in an arena keyed by ID; choices refer to their targets by ID.
// Accessors return copies, so callers cannot mutate the graph.
type Graph struct {
	title   string
	root    string
	order   []string
	nodes   map[string]Node
	choices map[string]Choice
	owners  map[string]string // choice ID -> owning node ID
}

// NewGraph builds a graph rooted at root from the given nodes.
// Choices without an ID are assigned "<nodeID>/<position>", counting from 1.
//
// Every structural problem is reported at once in an *AggregateError:
// empty or duplicate node IDs, duplicate choice IDs, a missing root and
// choices whose target is not defined.
func NewGraph(root string, nodes ...Node) (*Graph, error) {
	g := &Graph{
		root:    root,
		order:   make([]string, 0, len(nodes)),
		nodes:   make(map[string]Node, len(nodes)),
		choices: make(map[string]Choice),
		owners:  make(map[string]string),
	}

	var errs []error

	for i, n := range nodes {
		if n.ID == "" {
			errs = append(errs, &ValidationError{
				Key:    fmt.Sprintf("nodes[%d]", i),
				Reason: "node has no id",
				Err:    ErrEmptyID,
			})
			continue
		}
		if _, exists := g.nodes[n.ID]; exists {
			errs = append(errs, &ValidationError{
				Key:    n.ID,
				Reason: "node defined more than once",
				Err:    ErrDuplicateID,
			})
			continue
		}

		n = n.Clone()
		for j := range n.Choices {
			c := &n.Choices[j]
			if c.ID == "" {
				c.ID = n.ID + "/" + strconv.Itoa(j+1)
			}
			if owner, exists := g.owners[c.ID]; exists {
				errs = append(errs, &ValidationError{
					Key:    c.ID,
					Reason: fmt.Sprintf("choice already defined on node %q", owner),
					Err:    ErrDuplicateID,
				})
				continue
			}
			g.choices[c.ID] = *c
			g.owners[c.ID] = n.ID
		}

		g.nodes[n.ID] = n
		g.order = append(g.order, n.ID)
	}

	switch {
	case root == "":
		errs = append(errs, &ValidationError{Key: "root", Reason: "no root node designated", Err: ErrMissingRoot})
	case !g.Has(root):
		errs = append(errs, &ValidationError{Key: root, Reason: "root node is not defined", Err: ErrMissingRoot})
	}

	// Targets are resolved in a second pass so forward references are allowed.
	for _, id := range g.order {
		for _, c := range g.nodes[id].Choices {
			if c.HasTarget() && !g.Has(c.Target) {
				errs = append(errs, &ValidationError{
					Key:    c.ID,
					Reason: fmt.Sprintf("target %q is not defined", c.Target),
					Err:    ErrDanglingTarget,
				})
			}
		}
	}

	if len(errs) > 0 {
		return nil, &AggregateError{Errors: errs}
	}
	return g, nil
}

// Title returns the story title, if any.
func (g *Graph) Title() string {
	return g.title
}

// RootID returns the ID of the designated root node.
func (g *Graph) RootID() string {
	return g.root
}

// Root returns the designated root node.
func (g *Graph) Root() Node {
	return g.nodes[g.root].Clone()
}

// Has reports whether a node with the given ID exists.
func (g *Graph) Has(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (Node, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return Node{}, false
	}
	return n.Clone(), true
}

// Choice returns the choice with the given ID and the ID of the node that offers it.
func (g *Graph) Choice(id string) (Choice, string, bool) {
	c, ok := g.choices[id]
	if !ok {
		return Choice{}, "", false
	}
	return c, g.owners[id], true
}

// Nodes returns every node in definition order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id].Clone())
	}
	return out
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.order)
}

// Definition returns the serialisable form of the graph, with generated choice IDs filled in.
func (g *Graph) Definition() Definition {
	return Definition{
		Title: g.title,
		Root:  g.root,
		Nodes: g.Nodes(),
	}
}
