package runner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextHandler_Output(t *testing.T) {
	outBuf := &bytes.Buffer{}
	handler := NewTextHandler(strings.NewReader(""), outBuf, WithTextHandlerRenderer(func(s string) (string, error) {
		return "Rendered: " + s, nil
	}))

	frame := Frame{
		NodeID: "start",
		Text:   "Hello World",
		Choices: []FrameChoice{
			{Number: 1, ID: "start/1", Text: "Go left"},
			{Number: 2, ID: "start/2", Text: "Go right"},
		},
	}

	require.NoError(t, handler.Output(context.Background(), frame))

	output := outBuf.String()
	assert.Contains(t, output, "Rendered: Hello World")
	assert.Contains(t, output, "  1. Go left\n")
	assert.Contains(t, output, "  2. Go right\n")
	assert.NotContains(t, output, "***")
}

func TestTextHandler_OutputEnding(t *testing.T) {
	outBuf := &bytes.Buffer{}
	handler := NewTextHandler(strings.NewReader(""), outBuf)

	frame := Frame{
		NodeID:        "flight_ending",
		Text:          "You are free.",
		EndingReached: true,
		ActiveEnding:  "flight",
		EndingTitle:   "The Chicken Learned to Fly",
	}

	require.NoError(t, handler.Output(context.Background(), frame))
	assert.Contains(t, outBuf.String(), "*** The Chicken Learned to Fly ***")
	assert.Contains(t, outBuf.String(), "'restart'")
}

func TestTextHandler_Input(t *testing.T) {
	outBuf := &bytes.Buffer{}
	handler := NewTextHandler(strings.NewReader("  my user input \nsecond"), outBuf)

	val, err := handler.Input(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "my user input", val)

	// Last line without newline is still delivered
	val, err = handler.Input(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "second", val)

	_, err = handler.Input(context.Background())
	assert.ErrorIs(t, err, io.EOF)

	assert.Equal(t, "> > > ", outBuf.String())
}

func TestTextHandler_InputCancelled(t *testing.T) {
	// A reader that never returns keeps the pump blocked.
	pr, pw := io.Pipe()
	defer pw.Close()

	handler := NewTextHandler(pr, io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := handler.Input(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTextHandler_CloseReleasesReader(t *testing.T) {
	r, w := io.Pipe()
	t.Cleanup(func() { r.Close() })

	handler := NewTextHandler(r, io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := handler.Input(ctx)
	require.ErrorIs(t, err, context.Canceled)

	// Input has given up; the pending lines have no reader.
	var lines strings.Builder
	for i := 0; i < 100; i++ {
		fmt.Fprintf(&lines, "line-%02d\n", i)
	}
	go w.Write([]byte(lines.String()))

	require.Eventually(t, func() bool { return len(handler.inputChan) == 1 }, 2*time.Second, time.Millisecond)
	require.NoError(t, handler.Close())

	received := 0
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-handler.inputChan:
			if !ok {
				assert.Less(t, received, 100)
				return
			}
			received++
		case <-deadline:
			t.Fatal("reader goroutine still running after Close")
		}
	}
}
