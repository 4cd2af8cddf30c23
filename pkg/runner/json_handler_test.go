package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONHandler_Output(t *testing.T) {
	buf := &bytes.Buffer{}
	handler := NewJSONHandler(strings.NewReader(""), buf)

	frame := Frame{
		NodeID:  "start",
		Text:    "Hello Intent",
		Choices: []FrameChoice{{Number: 1, ID: "start/1", Text: "Go"}},
	}
	require.NoError(t, handler.Output(context.Background(), frame))
	require.NoError(t, handler.SystemOutput(context.Background(), "heads up"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var decoded Frame
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &decoded))
	assert.Equal(t, frame, decoded)

	assert.JSONEq(t, `{"system":"heads up"}`, lines[1])
}

func TestJSONHandler_Input(t *testing.T) {
	handler := NewJSONHandler(strings.NewReader("\"restart\"\n2\nquit"), io.Discard)
	ctx := context.Background()

	for _, want := range []string{"restart", "2", "quit"} {
		got, err := handler.Input(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := handler.Input(ctx)
	assert.ErrorIs(t, err, io.EOF)
}

func TestJSONHandler_Input_SkipsUnsafeLines(t *testing.T) {
	tests := []struct {
		name string
		bad  string
		want error
	}{
		{"Invalid UTF-8", "\xff", ErrInvalidUTF8},
		{"Oversized", strings.Repeat("a", DefaultMaxInputSize+1), ErrInputTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			handler := NewJSONHandler(strings.NewReader(tt.bad+"\n1\n"), out)

			got, err := handler.Input(context.Background())
			require.NoError(t, err)
			assert.Equal(t, "1", got)

			var msg map[string]string
			require.NoError(t, json.Unmarshal(out.Bytes(), &msg))
			assert.Contains(t, msg["system"], tt.want.Error())
		})
	}
}

func TestRunner_Run_JSONSurvivesBadLine(t *testing.T) {
	engine := newCoopEngine(t)
	out := &bytes.Buffer{}
	r := NewRunner(WithInputHandler(NewJSONHandler(strings.NewReader("\xff\n1\n"), out)))

	run(t, r, engine)

	assert.Equal(t, "flight1", engine.CurrentNode().ID)
	assert.Contains(t, out.String(), `"system":"invalid input:`)
}
