package ports

import (
	"context"

	"github.com/aretw0/storyline/pkg/domain"
)

// StoryLoader defines how the engine retrieves a story definition.
// This allows the storage layer (Loam, file, memory) to be decoupled.
type StoryLoader interface {
	// Load returns the full story definition.
	// Validation of the graph is left to domain.Compile.
	Load(ctx context.Context) (domain.Definition, error)
}
