package storyline_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/aretw0/storyline"
	"github.com/aretw0/storyline/pkg/adapters/memory"
	"github.com/aretw0/storyline/pkg/domain"
	"github.com/aretw0/storyline/pkg/dsl"
	"github.com/aretw0/storyline/pkg/observability"
	"github.com/aretw0/storyline/stories/coop"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// choose selects the current choice whose label is text.
func choose(t *testing.T, eng *storyline.Engine, text string) {
	t.Helper()
	for _, c := range eng.CurrentChoices() {
		if c.Text == text {
			require.NoError(t, eng.SelectChoice(c))
			return
		}
	}
	t.Fatalf("choice %q not offered at %s", text, eng.CurrentNode().ID)
}

func assertAtRoot(t *testing.T, eng *storyline.Engine) {
	t.Helper()
	assert.Equal(t, coop.Root, eng.CurrentNode().ID)
	assert.False(t, eng.IsEndingReached())
	_, ok := eng.ActiveEnding()
	assert.False(t, ok)
}

func TestNew_DefaultStory(t *testing.T) {
	eng, err := storyline.New()
	require.NoError(t, err)

	assert.Equal(t, coop.Title, eng.Title())
	assert.Equal(t, 17, eng.Graph().Len())
	assertAtRoot(t, eng)
}

func TestScenario_FlightPath(t *testing.T) {
	eng, err := storyline.New()
	require.NoError(t, err)

	choose(t, eng, "Practice flying")
	assert.True(t, strings.HasPrefix(eng.CurrentNode().Text, "You climb onto the highest perch"))
	kind, ok := eng.ActiveEnding()
	assert.True(t, ok)
	assert.Equal(t, coop.Flight, kind)
	assert.False(t, eng.IsEndingReached())

	choose(t, eng, "Practice flapping more")
	assert.Equal(t, "flight2", eng.CurrentNode().ID)
	choose(t, eng, "Jump and trust your wings")
	assert.Equal(t, "flight3", eng.CurrentNode().ID)
	choose(t, eng, "Take the leap of faith")

	assert.Equal(t, coop.FlightEnding, eng.CurrentNode().ID)
	assert.True(t, eng.IsEndingReached())
	kind, _ = eng.ActiveEnding()
	assert.Equal(t, coop.Flight, kind)

	eng.Restart()
	assertAtRoot(t, eng)
}

func TestScenario_LastHintWins(t *testing.T) {
	eng, err := storyline.New()
	require.NoError(t, err)

	choose(t, eng, "Look for companionship")
	choose(t, eng, "Focus on your own dreams")

	kind, _ := eng.ActiveEnding()
	assert.Equal(t, coop.Flight, kind)
	assert.Equal(t, "flight1", eng.CurrentNode().ID)
	assert.False(t, eng.IsEndingReached())
}

func TestRestart_Idempotent(t *testing.T) {
	eng, err := storyline.New()
	require.NoError(t, err)

	choose(t, eng, "Explore beyond the fence")
	eng.Restart()
	once := eng.Snapshot()
	eng.Restart()
	assert.Equal(t, once, eng.Snapshot())
	assertAtRoot(t, eng)
}

func TestNew_Sources(t *testing.T) {
	b := dsl.New("Tiny")
	b.Add("a").Text("A").Choice("go", "b").Hint("x")
	b.Add("b").Text("B").Ending("y")

	g, err := b.Build()
	require.NoError(t, err)

	tests := []struct {
		name string
		opt  storyline.Option
	}{
		{"Graph", storyline.WithGraph(g)},
		{"Definition", storyline.WithDefinition(b.Definition())},
		{"Loader", storyline.WithLoader(memory.NewLoader(b.Definition()))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng, err := storyline.New(tt.opt)
			require.NoError(t, err)

			assert.Equal(t, "Tiny", eng.Title())
			assert.Equal(t, "a", eng.CurrentNode().ID)
			require.NoError(t, eng.Choose("a/1"))

			kind, ok := eng.ActiveEnding()
			assert.True(t, ok)
			assert.Equal(t, domain.EndingKind("y"), kind, "ending node overrides the hint")
			assert.True(t, eng.IsEndingReached())
		})
	}
}

func TestNew_RejectsMalformedStory(t *testing.T) {
	def := domain.Definition{
		Root: "start",
		Nodes: []domain.Node{
			{ID: "start", Text: "Hi", Choices: []domain.Choice{{Text: "go", Target: "ghost"}}},
			{ID: "start", Text: "Again"},
		},
	}

	_, err := storyline.New(storyline.WithDefinition(def))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDanglingTarget)
	assert.ErrorIs(t, err, domain.ErrDuplicateID)

	var agg *domain.AggregateError
	assert.True(t, errors.As(err, &agg))
}

func TestNew_LoaderError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := storyline.NewWithContext(ctx, storyline.WithLoader(memory.NewLoader(coop.Definition())))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "failed to load story")
}

func TestStrictChoices(t *testing.T) {
	eng, err := storyline.New(storyline.WithStrictChoices())
	require.NoError(t, err)

	foreign := domain.Choice{ID: "travel3/1", Text: "Embrace the nomad life", Target: coop.TravelEnding}
	err = eng.SelectChoice(foreign)
	assert.ErrorIs(t, err, domain.ErrUnknownChoice)
	assertAtRoot(t, eng)

	lenient, err := storyline.New()
	require.NoError(t, err)
	require.NoError(t, lenient.SelectChoice(foreign))
	assert.True(t, lenient.IsEndingReached())
}

func TestHooksAndLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	metrics := observability.NewMetrics()

	var endings []domain.EndingKind
	eng, err := storyline.New(
		storyline.WithLogger(logger),
		storyline.WithLifecycleHooks(metrics.Hooks()),
		storyline.WithLifecycleHooks(domain.LifecycleHooks{
			OnEnding: func(e *domain.EndingEvent) { endings = append(endings, e.Kind) },
		}),
	)
	require.NoError(t, err)

	for _, label := range []string{"Challenge the farmer", "Continue the rebellion", "Escalate the fight", "Accept your fate defiantly"} {
		choose(t, eng, label)
	}

	assert.Equal(t, []domain.EndingKind{coop.Prison}, endings)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Endings.WithLabelValues(string(coop.Prison))))
	assert.Contains(t, buf.String(), `story="The Chicken Who Wanted More"`)
}

func TestNewSessionManager_SharesConfiguration(t *testing.T) {
	metrics := observability.NewMetrics()
	eng, err := storyline.New(storyline.WithLifecycleHooks(metrics.Hooks()), storyline.WithStrictChoices())
	require.NoError(t, err)

	manager := eng.NewSessionManager()
	ctx := context.Background()

	for _, id := range []string{"a", "b"} {
		_, _, err := manager.Start(ctx, id)
		require.NoError(t, err)
		_, err = manager.Choose(ctx, id, "root/4")
		require.NoError(t, err)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.NodeVisits.WithLabelValues("travel1")))
	assertAtRoot(t, eng)

	p := eng.NewPlaythrough()
	assert.Equal(t, coop.Root, p.CurrentNode().ID)
}
