package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/aretw0/storyline/internal/logging"
	"github.com/aretw0/storyline/pkg/domain"
	"github.com/aretw0/storyline/pkg/ports"
)

// Runner handles the interactive loop of a playthrough using provided IO.
// This allows for easy testing and integration with different frontends (CLI, JSON, etc).
type Runner struct {
	// Handler is the strategy for IO. Defaults to a TextHandler on Stdin/Stdout.
	Handler IOHandler

	// Logger is used for internal debug logging.
	Logger *slog.Logger

	// EndingTitle names ending kinds. If nil, the raw kind is shown.
	EndingTitle func(domain.EndingKind) string
}

// NewRunner creates a new Runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.Handler == nil {
		r.Handler = NewTextHandler(os.Stdin, os.Stdout)
	}
	return r
}

type command int

const (
	cmdChoose command = iota
	cmdRestart
	cmdQuit
)

var errInvalidCommand = errors.New("invalid command")

// Run plays the story until the user quits, the input ends or ctx is cancelled.
// Running out of input is a normal way to stop and returns nil.
func (r *Runner) Run(ctx context.Context, pt ports.Playthrough) error {
	redraw := true

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		frame := NewFrame(pt, r.EndingTitle)
		if redraw {
			if err := r.Handler.Output(ctx, frame); err != nil {
				return fmt.Errorf("failed to output frame: %w", err)
			}
			redraw = false
		}

		input, err := r.Handler.Input(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				r.Logger.Debug("input closed, leaving story", "node_id", frame.NodeID)
				return nil
			}
			return err
		}

		cmd, choiceID, err := parseCommand(input, frame)
		if err != nil {
			if err := r.Handler.SystemOutput(ctx, err.Error()); err != nil {
				return err
			}
			continue
		}

		switch cmd {
		case cmdQuit:
			r.Logger.Debug("user quit", "node_id", frame.NodeID)
			return nil
		case cmdRestart:
			pt.Restart()
			redraw = true
		case cmdChoose:
			if err := pt.Choose(choiceID); err != nil {
				r.Logger.Debug("choice rejected", "choice_id", choiceID, "err", err)
				if err := r.Handler.SystemOutput(ctx, err.Error()); err != nil {
					return err
				}
				continue
			}
			redraw = true
		}
	}
}

// parseCommand interprets a line of user input against the frame on screen.
func parseCommand(input string, frame Frame) (command, string, error) {
	text := strings.TrimSpace(input)

	switch strings.ToLower(text) {
	case "quit", "q", "exit":
		return cmdQuit, "", nil
	case "restart", "r":
		return cmdRestart, "", nil
	case "":
		return 0, "", fmt.Errorf("%w: type a choice number, 'restart' or 'quit'", errInvalidCommand)
	}

	if frame.EndingReached && len(frame.Choices) == 0 {
		return 0, "", fmt.Errorf("%w: the story has ended, type 'restart' or 'quit'", errInvalidCommand)
	}

	if n, err := strconv.Atoi(text); err == nil {
		if n < 1 || n > len(frame.Choices) {
			return 0, "", fmt.Errorf("%w: choose a number between 1 and %d", errInvalidCommand, len(frame.Choices))
		}
		return cmdChoose, frame.Choices[n-1].ID, nil
	}

	for _, c := range frame.Choices {
		if c.ID == text {
			return cmdChoose, c.ID, nil
		}
	}

	return 0, "", fmt.Errorf("%w: %q", errInvalidCommand, text)
}
