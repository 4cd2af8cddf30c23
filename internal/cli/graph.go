package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/storyline/internal/presentation/graph"
	"github.com/aretw0/storyline/pkg/domain"
)

// Graph writes the story as a Mermaid flowchart.
// A non-empty history (node IDs, root first) highlights a playthrough; its last entry is
// drawn as the current node.
func Graph(ctx context.Context, opts Options, history []string, out io.Writer) error {
	logger, err := createLogger(opts)
	if err != nil {
		return err
	}
	engine, err := createEngine(ctx, opts, logger)
	if err != nil {
		return err
	}

	var overlay *graph.GraphOverlay
	if len(history) > 0 {
		for _, id := range history {
			if !engine.Graph().Has(id) {
				return fmt.Errorf("history mentions %q: %w", id, domain.ErrNodeNotFound)
			}
		}
		overlay = graph.NewOverlay(domain.State{
			CurrentNodeID: history[len(history)-1],
			History:       history,
		})
	}

	_, err = io.WriteString(out, graph.GenerateMermaid(engine.Graph(), overlay))
	return err
}
