package runtime_test

import (
	"sync"
	"testing"

	"github.com/aretw0/storyline/internal/runtime"
	"github.com/aretw0/storyline/pkg/domain"
	"github.com/aretw0/storyline/stories/coop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_LifecycleHooks(t *testing.T) {
	var events []domain.EventType
	var entered []string
	var endings []domain.EndingKind

	var e *runtime.Engine
	hooks := domain.LifecycleHooks{
		OnChoice: func(ev *domain.ChoiceEvent) {
			events = append(events, ev.Type)
		},
		OnNodeEnter: func(ev *domain.NodeEvent) {
			events = append(events, ev.Type)
			entered = append(entered, ev.NodeID)
			// Hooks run outside the lock, so querying the engine must not deadlock.
			assert.Equal(t, ev.NodeID, e.CurrentNode().ID)
		},
		OnEnding: func(ev *domain.EndingEvent) {
			events = append(events, ev.Type)
			endings = append(endings, ev.Kind)
		},
		OnRestart: func(ev *domain.RestartEvent) {
			events = append(events, ev.Type)
			assert.Equal(t, coop.FamilyEnding, ev.FromNodeID)
		},
	}
	e = newCoopEngine(t, runtime.WithLifecycleHooks(hooks))

	require.NoError(t, e.SelectChoice(domain.Choice{Hint: coop.Family}))
	require.NoError(t, e.SelectChoice(domain.Choice{Target: coop.FamilyEnding}))
	e.Restart()

	assert.Equal(t, []domain.EventType{
		domain.EventChoice,
		domain.EventChoice, domain.EventNodeEnter, domain.EventEnding,
		domain.EventRestart,
	}, events)
	assert.Equal(t, []string{coop.FamilyEnding}, entered)
	assert.Equal(t, []domain.EndingKind{coop.Family}, endings)
}

func TestEngine_ConcurrentUse(t *testing.T) {
	e := newCoopEngine(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			choices := e.CurrentChoices()
			if len(choices) > 0 {
				_ = e.Choose(choices[0].ID)
			}
		}()
		go func() {
			defer wg.Done()
			e.Restart()
		}()
	}
	wg.Wait()

	// Whatever interleaving happened, the state must be coherent.
	snap := e.Snapshot()
	node := e.CurrentNode()
	assert.Equal(t, snap.CurrentNodeID, snap.History[len(snap.History)-1])
	assert.Equal(t, node.IsEnding(), snap.EndingReached)
}
