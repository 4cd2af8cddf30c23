package dsl

import (
	"fmt"

	"github.com/aretw0/storyline/pkg/domain"
)

// Builder manages the story construction.
// Nodes may be referenced by choices before they are added; targets are only
// resolved when the story is built.
type Builder struct {
	title string
	root  string
	order []string
	nodes map[string]*NodeBuilder
}

// New creates a new story builder.
func New(title string) *Builder {
	return &Builder{
		title: title,
		nodes: make(map[string]*NodeBuilder),
	}
}

// Root designates the node where every playthrough starts.
// Without it, the first added node is the root.
func (b *Builder) Root(id string) *Builder {
	b.root = id
	return b
}

// Add creates a new node in the story.
// If the node already exists, it returns the existing builder.
func (b *Builder) Add(id string) *NodeBuilder {
	if nb, ok := b.nodes[id]; ok {
		return nb
	}
	nb := &NodeBuilder{
		node:    domain.Node{ID: id},
		builder: b,
	}
	b.nodes[id] = nb
	b.order = append(b.order, id)
	return nb
}

// Definition returns the serialisable story, nodes in insertion order.
func (b *Builder) Definition() domain.Definition {
	root := b.root
	if root == "" && len(b.order) > 0 {
		root = b.order[0]
	}

	nodes := make([]domain.Node, 0, len(b.order))
	for _, id := range b.order {
		nodes = append(nodes, b.nodes[id].Build())
	}

	return domain.Definition{
		Title: b.title,
		Root:  root,
		Nodes: nodes,
	}
}

// Build compiles the story into a validated graph.
func (b *Builder) Build() (*domain.Graph, error) {
	g, err := domain.Compile(b.Definition())
	if err != nil {
		return nil, fmt.Errorf("failed to build story %q: %w", b.title, err)
	}
	return g, nil
}
