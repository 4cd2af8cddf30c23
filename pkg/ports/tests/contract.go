package tests

import (
	"context"
	"testing"

	"github.com/aretw0/storyline/pkg/domain"
	"github.com/aretw0/storyline/pkg/ports"
)

// StoryLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.StoryLoader.
// want is the definition the loader is expected to produce; node order is not significant.
func StoryLoaderContractTest(t *testing.T, loader ports.StoryLoader, want domain.Definition) {
	t.Helper()

	t.Run("Load_Success", func(t *testing.T) {
		got, err := loader.Load(context.Background())
		if err != nil {
			t.Fatalf("unexpected error loading story: %v", err)
		}
		if got.Root != want.Root {
			t.Errorf("root mismatch. got %q, want %q", got.Root, want.Root)
		}
		if len(got.Nodes) != len(want.Nodes) {
			t.Fatalf("expected %d nodes, got %d", len(want.Nodes), len(got.Nodes))
		}

		lookup := make(map[string]domain.Node, len(got.Nodes))
		for _, n := range got.Nodes {
			lookup[n.ID] = n
		}
		for _, expected := range want.Nodes {
			n, ok := lookup[expected.ID]
			if !ok {
				t.Errorf("node %s missing from definition", expected.ID)
				continue
			}
			if n.Text != expected.Text {
				t.Errorf("text mismatch for %s. got %q, want %q", n.ID, n.Text, expected.Text)
			}
			if n.Ending != expected.Ending {
				t.Errorf("ending mismatch for %s. got %q, want %q", n.ID, n.Ending, expected.Ending)
			}
			if len(n.Choices) != len(expected.Choices) {
				t.Errorf("choice count mismatch for %s. got %d, want %d", n.ID, len(n.Choices), len(expected.Choices))
				continue
			}
			for i := range n.Choices {
				if n.Choices[i] != expected.Choices[i] {
					t.Errorf("choice %d mismatch for %s. got %+v, want %+v", i, n.ID, n.Choices[i], expected.Choices[i])
				}
			}
		}
	})

	t.Run("Load_Compiles", func(t *testing.T) {
		def, err := loader.Load(context.Background())
		if err != nil {
			t.Fatalf("unexpected error loading story: %v", err)
		}
		if _, err := domain.Compile(def); err != nil {
			t.Errorf("loaded definition does not compile: %v", err)
		}
	})
}
