package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/storyline/internal/runtime"
	"github.com/aretw0/storyline/pkg/dsl"
	"github.com/aretw0/storyline/stories/coop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCoopEngine(t *testing.T) *runtime.Engine {
	t.Helper()
	g, err := coop.Graph()
	require.NoError(t, err)
	return runtime.NewEngine(g)
}

func run(t *testing.T, r *Runner, engine *runtime.Engine) {
	t.Helper()

	done := make(chan error, 1)
	go func() {
		done <- r.Run(context.Background(), engine)
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Runner timed out")
	}
}

func TestRunner_Run_PlaysToEnding(t *testing.T) {
	engine := newCoopEngine(t)
	input := strings.NewReader("1\n1\n1\n1\nquit\n")
	out := &bytes.Buffer{}

	r := NewRunner(
		WithInputHandler(NewTextHandler(input, out)),
		WithEndingTitle(coop.EndingTitle),
	)
	run(t, r, engine)

	text := out.String()
	assert.Contains(t, text, "You wake up in your coop")
	assert.Contains(t, text, "  1. Practice flying")
	assert.Contains(t, text, "*** The Chicken Learned to Fly ***")

	assert.True(t, engine.IsEndingReached())
	assert.Equal(t, coop.FlightEnding, engine.CurrentNode().ID)
}

func TestRunner_Run_RestartAndInvalidInput(t *testing.T) {
	engine := newCoopEngine(t)
	input := strings.NewReader("9\nbanana\n4\nrestart\nroot/2\n")
	out := &bytes.Buffer{}

	r := NewRunner(WithInputHandler(NewTextHandler(input, out)))
	run(t, r, engine)

	text := out.String()
	assert.Contains(t, text, "[System] invalid command: choose a number between 1 and 4")
	assert.Contains(t, text, `[System] invalid command: "banana"`)
	assert.Equal(t, 2, strings.Count(text, "You wake up in your coop"), "root is drawn again after restart")

	// Input ended on family1; EOF is a normal exit.
	assert.Equal(t, "family1", engine.CurrentNode().ID)
	assert.Equal(t, []string{"root", "family1"}, engine.Snapshot().History)
}

func TestRunner_Run_EndedStoryOnlyAcceptsRestartOrQuit(t *testing.T) {
	b := dsl.New("Short")
	b.Add("start").Text("Begin").Choice("Finish", "finale")
	b.Add("finale").Text("Done").Ending("quick")
	g, err := b.Build()
	require.NoError(t, err)
	engine := runtime.NewEngine(g)

	out := &bytes.Buffer{}
	r := NewRunner(WithInputHandler(NewTextHandler(strings.NewReader("1\n1\nq\n"), out)))
	run(t, r, engine)

	text := out.String()
	assert.Contains(t, text, "*** quick ***", "raw kind without a title mapping")
	assert.Contains(t, text, "the story has ended")
	assert.Equal(t, "finale", engine.CurrentNode().ID)
}

func TestRunner_Run_Headless(t *testing.T) {
	engine := newCoopEngine(t)
	inBuf := strings.NewReader("\"3\"\n\"exit\"\n")
	outBuf := &bytes.Buffer{}

	r := NewRunner(WithInputHandler(NewJSONHandler(inBuf, outBuf)))
	run(t, r, engine)

	lines := strings.Split(strings.TrimSpace(outBuf.String()), "\n")
	require.Len(t, lines, 2)

	var last Frame
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &last))
	assert.Equal(t, "prison1", last.NodeID)
	assert.Equal(t, coop.Prison, last.ActiveEnding)
	assert.False(t, last.EndingReached)
	assert.Len(t, last.Choices, 2)
}

func TestRunner_Run_Cancelled(t *testing.T) {
	engine := newCoopEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRunner(WithInputHandler(NewTextHandler(strings.NewReader("1\n"), &bytes.Buffer{})))
	err := r.Run(ctx, engine)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, coop.Root, engine.CurrentNode().ID)
}

func TestNewFrame(t *testing.T) {
	engine := newCoopEngine(t)
	require.NoError(t, engine.Choose("root/1"))

	frame := NewFrame(engine, coop.EndingTitle)
	assert.Equal(t, "flight1", frame.NodeID)
	assert.Equal(t, coop.Flight, frame.ActiveEnding)
	assert.Empty(t, frame.EndingTitle, "no title before the ending is reached")
	require.Len(t, frame.Choices, 3)
	assert.Equal(t, FrameChoice{Number: 2, ID: "flight1/2", Text: "Look for a partner instead"}, frame.Choices[1])
}
