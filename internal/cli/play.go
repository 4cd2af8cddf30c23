package cli

import (
	"context"
	"io"

	"github.com/aretw0/storyline/internal/presentation/tui"
	"github.com/aretw0/storyline/pkg/runner"
)

// Play runs the story interactively on in/out until the player quits or the input ends.
func Play(ctx context.Context, opts PlayOptions, in io.Reader, out io.Writer) error {
	logger, err := createLogger(opts.Options)
	if err != nil {
		return err
	}

	sigCtx := NewSignalContext(ctx)
	defer sigCtx.Cancel()

	engine, err := createEngine(sigCtx, opts.Options, logger)
	if err != nil {
		return err
	}

	var handler runner.IOHandler
	switch {
	case opts.JSON:
		handler = runner.NewJSONHandler(in, out)
	case opts.Rich:
		tui.PrintBanner(out, engine.Title())
		handler = runner.NewTextHandler(in, out, runner.WithTextHandlerRenderer(tui.NewRenderer()))
	default:
		handler = runner.NewTextHandler(in, out, runner.WithTextHandlerRenderer(tui.Plain))
	}

	if c, ok := handler.(io.Closer); ok {
		defer c.Close()
	}

	r := runner.NewRunner(
		runner.WithLogger(logger),
		runner.WithInputHandler(handler),
		runner.WithEndingTitle(endingTitleFor(opts.Options)),
	)

	logger.Info("Starting playthrough", "root", engine.CurrentNode().ID)
	err = r.Run(sigCtx, engine)

	if !opts.JSON {
		logCompletion(out, engine.CurrentNode().ID, err, sigCtx.Signal())
	}
	return handleExecutionError(err)
}
