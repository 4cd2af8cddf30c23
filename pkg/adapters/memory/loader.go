package memory

import (
	"context"
	"fmt"

	"github.com/aretw0/storyline/pkg/domain"
)

// Loader implements ports.StoryLoader over an in-memory definition.
type Loader struct {
	def domain.Definition
}

// NewLoader creates a loader that always yields def.
func NewLoader(def domain.Definition) *Loader {
	return &Loader{def: cloneDefinition(def)}
}

// NewFromNodes creates a loader from a root and domain nodes.
// This improves DX for tests.
func NewFromNodes(root string, nodes ...domain.Node) (*Loader, error) {
	for _, n := range nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("node missing ID")
		}
	}
	return NewLoader(domain.Definition{Root: root, Nodes: nodes}), nil
}

// Load returns a copy of the definition.
func (l *Loader) Load(ctx context.Context) (domain.Definition, error) {
	if err := ctx.Err(); err != nil {
		return domain.Definition{}, err
	}
	return cloneDefinition(l.def), nil
}

func cloneDefinition(def domain.Definition) domain.Definition {
	nodes := make([]domain.Node, len(def.Nodes))
	for i, n := range def.Nodes {
		nodes[i] = n.Clone()
	}
	def.Nodes = nodes
	return def
}
