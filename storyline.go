package storyline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/storyline/internal/logging"
	"github.com/aretw0/storyline/internal/runtime"
	"github.com/aretw0/storyline/pkg/domain"
	"github.com/aretw0/storyline/pkg/ports"
	"github.com/aretw0/storyline/pkg/session"
	"github.com/aretw0/storyline/stories/coop"
)

// Engine is the high-level entry point for the Storyline library.
// It compiles a story once and plays one playthrough of it; NewSessionManager
// hands the same story and configuration to any number of concurrent playthroughs.
type Engine struct {
	rt         *runtime.Engine
	graph      *domain.Graph
	definition *domain.Definition
	loader     ports.StoryLoader
	hooks      domain.LifecycleHooks
	logger     *slog.Logger
	strict     bool
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithDefinition plays the given story definition.
func WithDefinition(def domain.Definition) Option {
	return func(e *Engine) {
		e.definition = &def
	}
}

// WithLoader reads the story from a StoryLoader (file, Markdown directory, memory...).
func WithLoader(l ports.StoryLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithGraph plays an already compiled story.
func WithGraph(g *domain.Graph) Option {
	return func(e *Engine) {
		e.graph = g
	}
}

// WithLifecycleHooks registers observability hooks. Repeated calls merge the hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithStrictChoices rejects choices that the current node does not offer.
func WithStrictChoices() Option {
	return func(e *Engine) {
		e.strict = true
	}
}

// New compiles a story and positions a playthrough at its root.
//
// The story comes from WithGraph, WithDefinition or WithLoader, in that order of
// precedence. Without any of them the built-in story of the chicken who wanted more
// is played. Malformed stories fail with a *domain.AggregateError.
func New(opts ...Option) (*Engine, error) {
	return NewWithContext(context.Background(), opts...)
}

// NewWithContext is New with a context for the story loader.
func NewWithContext(ctx context.Context, opts ...Option) (*Engine, error) {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.graph == nil {
		def, err := eng.resolveDefinition(ctx)
		if err != nil {
			return nil, err
		}
		g, err := domain.Compile(def)
		if err != nil {
			return nil, fmt.Errorf("failed to compile story: %w", err)
		}
		eng.graph = g
	}

	// Ensure logger is initialized (so we don't pass nil to runtime)
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if title := eng.graph.Title(); title != "" {
		eng.logger = eng.logger.With("story", title)
	}

	eng.rt = runtime.NewEngine(eng.graph, eng.runtimeOptions()...)
	return eng, nil
}

func (e *Engine) resolveDefinition(ctx context.Context) (domain.Definition, error) {
	switch {
	case e.definition != nil:
		return *e.definition, nil
	case e.loader != nil:
		def, err := e.loader.Load(ctx)
		if err != nil {
			return domain.Definition{}, fmt.Errorf("failed to load story: %w", err)
		}
		return def, nil
	default:
		return coop.Definition(), nil
	}
}

func (e *Engine) runtimeOptions() []runtime.EngineOption {
	opts := []runtime.EngineOption{
		runtime.WithLifecycleHooks(e.hooks),
		runtime.WithLogger(e.logger),
	}
	if e.strict {
		opts = append(opts, runtime.WithStrictChoices())
	}
	return opts
}

// CurrentNode returns the node at the cursor.
func (e *Engine) CurrentNode() domain.Node {
	return e.rt.CurrentNode()
}

// CurrentChoices returns the choices of the current node, in story order.
func (e *Engine) CurrentChoices() []domain.Choice {
	return e.rt.CurrentChoices()
}

// IsEndingReached reports whether an ending node was entered since the last restart.
func (e *Engine) IsEndingReached() bool {
	return e.rt.IsEndingReached()
}

// ActiveEnding returns the ending the playthrough is heading towards, if any.
func (e *Engine) ActiveEnding() (domain.EndingKind, bool) {
	return e.rt.ActiveEnding()
}

// SelectChoice applies a choice: its hint becomes the active ending, then the cursor
// follows its target, if any. Landing on an ending node overrides the hint and marks
// the ending as reached.
func (e *Engine) SelectChoice(choice domain.Choice) error {
	return e.rt.SelectChoice(choice)
}

// Choose selects a choice of the current node by ID.
func (e *Engine) Choose(choiceID string) error {
	return e.rt.Choose(choiceID)
}

// Restart returns to the root and clears the ending.
func (e *Engine) Restart() {
	e.rt.Restart()
}

// Snapshot returns a copy of the playthrough state.
func (e *Engine) Snapshot() domain.State {
	return e.rt.Snapshot()
}

// Graph returns the compiled story.
func (e *Engine) Graph() *domain.Graph {
	return e.graph
}

// Title returns the story title.
func (e *Engine) Title() string {
	return e.graph.Title()
}

// Logger returns the engine logger, enriched with the story title.
func (e *Engine) Logger() *slog.Logger {
	return e.logger
}

// NewPlaythrough creates an independent playthrough of the same story,
// sharing the hooks, logger and strictness of e.
func (e *Engine) NewPlaythrough() ports.Playthrough {
	return runtime.NewEngine(e.graph, e.runtimeOptions()...)
}

// NewSessionManager creates a session registry whose sessions are playthroughs
// configured like e.
func (e *Engine) NewSessionManager(opts ...session.Option) *session.Manager {
	base := []session.Option{
		session.WithLogger(e.logger),
		session.WithFactory(func(*domain.Graph) ports.Playthrough {
			return e.NewPlaythrough()
		}),
	}
	return session.NewManager(e.graph, append(base, opts...)...)
}
