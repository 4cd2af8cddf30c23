package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/storyline/internal/validator"
)

// Validate compiles the story and reports dead ends (an error) and other findings (warnings).
func Validate(ctx context.Context, opts Options, out io.Writer) error {
	logger, err := createLogger(opts)
	if err != nil {
		return err
	}
	engine, err := createEngine(ctx, opts, logger)
	if err != nil {
		return err
	}

	report := validator.Inspect(engine.Graph())
	for _, w := range report.Warnings() {
		fmt.Fprintf(out, "warning: %s\n", w)
	}
	if err := report.Err(); err != nil {
		return err
	}

	fmt.Fprintf(out, "Story %q is valid: %d nodes, %d reachable, endings %v\n",
		engine.Title(), engine.Graph().Len(), len(report.Reachable), report.Endings)
	return nil
}
