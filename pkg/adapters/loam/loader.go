package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/storyline/internal/compiler"
	"github.com/aretw0/storyline/pkg/domain"
)

// DefaultRoot is the node a directory story starts from unless configured otherwise.
const DefaultRoot = "start"

// Loader adapts the Loam library to the StoryLoader interface.
// Every Markdown document is a node: the body is the narrative text and the
// frontmatter carries the ending and the choices.
type Loader struct {
	Repo *loam.TypedRepository[NodeMetadata]
	root string
}

// Option configures the Loader.
type Option func(*Loader)

// WithRoot sets the root node ID (default "start").
func WithRoot(id string) Option {
	return func(l *Loader) {
		if id != "" {
			l.root = id
		}
	}
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[NodeMetadata], opts ...Option) *Loader {
	l := &Loader{
		Repo: repo,
		root: DefaultRoot,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Open initializes a read-only Loam repository at dir and wraps it in a Loader.
func Open(dir string, opts ...Option) (*Loader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	// The engine never modifies the story, so Loam runs read-only
	// and in strict mode for consistent value types.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}

	return New(loam.NewTypedRepository[NodeMetadata](repo), opts...), nil
}

// Load lists every document of the repository and assembles the story.
// Nodes are sorted by ID; two documents resolving to the same ID are an error.
func (l *Loader) Load(ctx context.Context) (domain.Definition, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return domain.Definition{}, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string, len(docs))
	def := domain.Definition{
		Root:  l.root,
		Nodes: make([]domain.Node, 0, len(docs)),
	}

	for _, doc := range docs {
		// Use the ID from metadata if available, otherwise filename ID
		rawID := doc.Data.ID
		if rawID == "" {
			rawID = doc.ID
		}
		id := trimExtension(rawID)

		if existingPath, ok := seen[id]; ok {
			return domain.Definition{}, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existingPath, doc.ID)
		}
		seen[id] = doc.ID

		if id == l.root {
			def.Title = doc.Data.Title
		}
		def.Nodes = append(def.Nodes, buildNode(id, doc.Data, doc.Content))
	}

	sort.Slice(def.Nodes, func(i, j int) bool {
		return def.Nodes[i].ID < def.Nodes[j].ID
	})

	return def, nil
}

// buildNode converts a document through the same path as YAML and JSON stories.
func buildNode(id string, meta NodeMetadata, content string) domain.Node {
	return compiler.NodeDocument{
		ID:      id,
		Text:    content,
		Ending:  meta.Ending,
		Choices: meta.Choices,
	}.Node()
}

func trimExtension(id string) string {
	if id == "" {
		return ""
	}
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
