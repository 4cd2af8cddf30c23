package runtime

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/aretw0/storyline/internal/logging"
	"github.com/aretw0/storyline/pkg/domain"
)

// Engine is the story state machine.
// It holds a reference to an immutable graph and the mutable cursor of one playthrough.
// All methods are safe for concurrent use; each transition is a single critical section.
type Engine struct {
	graph  *domain.Graph
	hooks  domain.LifecycleHooks
	logger *slog.Logger
	strict bool

	mu    sync.RWMutex
	state domain.State
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithStrictChoices makes SelectChoice reject choices not offered by the current node.
func WithStrictChoices() EngineOption {
	return func(e *Engine) {
		e.strict = true
	}
}

// NewEngine creates an engine positioned at the graph's root.
func NewEngine(graph *domain.Graph, opts ...EngineOption) *Engine {
	e := &Engine{
		graph:  graph,
		logger: logging.NewNop(),
		state:  domain.NewState(graph.RootID()),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Graph returns the story graph.
func (e *Engine) Graph() *domain.Graph {
	return e.graph
}

// CurrentNode returns the node at the cursor.
func (e *Engine) CurrentNode() domain.Node {
	e.mu.RLock()
	defer e.mu.RUnlock()
	n, _ := e.graph.Node(e.state.CurrentNodeID)
	return n
}

// CurrentChoices returns the choices of the current node, in presentation order.
func (e *Engine) CurrentChoices() []domain.Choice {
	return e.CurrentNode().Choices
}

// IsEndingReached reports whether an ending node was entered since the last restart.
func (e *Engine) IsEndingReached() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state.EndingReached
}

// ActiveEnding returns the most recently set ending kind.
// The boolean is false when no kind has been set since the last restart.
func (e *Engine) ActiveEnding() (domain.EndingKind, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state.ActiveEnding, !e.state.ActiveEnding.IsZero()
}

// Snapshot returns a copy of the whole playthrough state.
func (e *Engine) Snapshot() domain.State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state.Snapshot()
}

// SelectChoice applies a choice to the playthrough.
//
// The hint, if any, becomes the active ending. A choice without target stops there.
// Otherwise the cursor moves to the target, and landing on an ending node overrides
// the hint with the node's kind and flags the ending as reached.
//
// Membership of the choice in CurrentChoices is not checked unless the engine was
// built WithStrictChoices. A target that is not part of the graph is rejected with
// domain.ErrDanglingTarget and leaves the state untouched.
func (e *Engine) SelectChoice(choice domain.Choice) error {
	return e.transition(func(current domain.Node) (domain.Choice, error) {
		if !e.strict {
			return choice, nil
		}
		return offered(current, choice.ID)
	})
}

// Choose selects the choice with the given ID among the current node's choices.
// Unknown IDs fail with domain.ErrUnknownChoice.
func (e *Engine) Choose(choiceID string) error {
	return e.transition(func(current domain.Node) (domain.Choice, error) {
		return offered(current, choiceID)
	})
}

func offered(current domain.Node, choiceID string) (domain.Choice, error) {
	idx := slices.IndexFunc(current.Choices, func(c domain.Choice) bool { return c.ID == choiceID })
	if idx < 0 {
		return domain.Choice{}, fmt.Errorf("%w: %q is not offered by node %q", domain.ErrUnknownChoice, choiceID, current.ID)
	}
	return current.Choices[idx], nil
}

// transition resolves and applies a choice while holding the lock, then fires hooks.
func (e *Engine) transition(resolve func(current domain.Node) (domain.Choice, error)) error {
	e.mu.Lock()

	from := e.state.CurrentNodeID
	current, _ := e.graph.Node(from)

	choice, err := resolve(current)
	if err != nil {
		e.mu.Unlock()
		return err
	}

	var next domain.Node
	if choice.HasTarget() {
		n, ok := e.graph.Node(choice.Target)
		if !ok {
			e.mu.Unlock()
			return fmt.Errorf("%w: choice %q targets %q", domain.ErrDanglingTarget, choice.ID, choice.Target)
		}
		next = n
	}

	if !choice.Hint.IsZero() {
		e.state.ActiveEnding = choice.Hint
	}

	moved := choice.HasTarget()
	if moved {
		e.state.CurrentNodeID = next.ID
		e.state.History = append(e.state.History, next.ID)
		if next.IsEnding() {
			e.state.ActiveEnding = next.Ending
			e.state.EndingReached = true
		}
	}
	ended := moved && next.IsEnding()
	active := e.state.ActiveEnding

	e.mu.Unlock()

	e.logger.Debug("choice selected",
		"choice_id", choice.ID,
		"from", from,
		"to", choice.Target,
		"active_ending", active,
		"ending_reached", ended,
	)

	now := time.Now()
	if e.hooks.OnChoice != nil {
		e.hooks.OnChoice(&domain.ChoiceEvent{
			EventBase:  domain.EventBase{Timestamp: now, Type: domain.EventChoice},
			FromNodeID: from,
			ChoiceID:   choice.ID,
			Target:     choice.Target,
			Hint:       choice.Hint,
		})
	}
	if moved && e.hooks.OnNodeEnter != nil {
		e.hooks.OnNodeEnter(&domain.NodeEvent{
			EventBase: domain.EventBase{Timestamp: now, Type: domain.EventNodeEnter},
			NodeID:    next.ID,
		})
	}
	if ended && e.hooks.OnEnding != nil {
		e.hooks.OnEnding(&domain.EndingEvent{
			EventBase: domain.EventBase{Timestamp: now, Type: domain.EventEnding},
			NodeID:    next.ID,
			Kind:      next.Ending,
		})
	}

	return nil
}

// Restart returns the cursor to the root and clears the ending state.
func (e *Engine) Restart() {
	e.mu.Lock()
	from := e.state.CurrentNodeID
	e.state = domain.NewState(e.graph.RootID())
	e.mu.Unlock()

	e.logger.Debug("playthrough restarted", "from", from)

	if e.hooks.OnRestart != nil {
		e.hooks.OnRestart(&domain.RestartEvent{
			EventBase:  domain.EventBase{Timestamp: time.Now(), Type: domain.EventRestart},
			FromNodeID: from,
		})
	}
}
