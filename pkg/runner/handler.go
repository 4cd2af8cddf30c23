package runner

import (
	"context"
)

// IOHandler defines the strategy for interacting with the user.
// This allows switching between Text (CLI/TUI) and JSON (Structured) modes.
type IOHandler interface {
	// Output presents a frame to the user.
	Output(ctx context.Context, frame Frame) error

	// Input reads one command from the user.
	// io.EOF means the user has nothing more to say.
	Input(ctx context.Context) (string, error)

	// SystemOutput presents a meta-message to the user (e.g. invalid input).
	// This is distinct from content rendering.
	SystemOutput(ctx context.Context, msg string) error
}

// ContentRenderer is a function that transforms the content before outputting it.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)
