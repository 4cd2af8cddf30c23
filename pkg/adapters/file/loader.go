package file

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/storyline/internal/compiler"
	"github.com/aretw0/storyline/pkg/domain"
)

// Loader implements ports.StoryLoader over a single YAML or JSON file.
// The file is read on every Load, so edits are picked up by the next engine built from it.
type Loader struct {
	path   string
	parser *compiler.Parser
}

// New creates a loader for the story file at path.
func New(path string) *Loader {
	return &Loader{
		path:   path,
		parser: compiler.NewParser(),
	}
}

// Path returns the story file path.
func (l *Loader) Path() string {
	return l.path
}

// Load reads and decodes the story file.
func (l *Loader) Load(ctx context.Context) (domain.Definition, error) {
	if err := ctx.Err(); err != nil {
		return domain.Definition{}, err
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		return domain.Definition{}, fmt.Errorf("failed to read story file: %w", err)
	}

	def, err := l.parser.Parse(data, compiler.FormatFromPath(l.path))
	if err != nil {
		return domain.Definition{}, fmt.Errorf("%s: %w", l.path, err)
	}
	return def, nil
}
