package runner

import (
	"log/slog"

	"github.com/aretw0/storyline/pkg/domain"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.Logger = logger
		}
	}
}

// WithInputHandler configures a custom IOHandler.
func WithInputHandler(handler IOHandler) Option {
	return func(r *Runner) {
		r.Handler = handler
	}
}

// WithEndingTitle configures how ending kinds are named once reached.
func WithEndingTitle(title func(domain.EndingKind) string) Option {
	return func(r *Runner) {
		r.EndingTitle = title
	}
}
