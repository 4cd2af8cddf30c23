package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/storyline"
	"github.com/aretw0/storyline/pkg/adapters/file"
	"github.com/aretw0/storyline/pkg/adapters/loam"
	"github.com/aretw0/storyline/pkg/domain"
	"github.com/aretw0/storyline/pkg/ports"
	"github.com/aretw0/storyline/stories/coop"
)

// createEngine builds an engine for the story selected by opts.
func createEngine(ctx context.Context, opts Options, logger *slog.Logger, hooks ...domain.LifecycleHooks) (*storyline.Engine, error) {
	engineOpts := []storyline.Option{storyline.WithLogger(logger)}

	if opts.StoryPath != "" {
		loader, err := loaderFor(opts.StoryPath, opts.Root)
		if err != nil {
			return nil, err
		}
		engineOpts = append(engineOpts, storyline.WithLoader(loader))
	}

	if opts.Debug {
		hooks = append(hooks, createDebugHooks(logger))
	}
	for _, h := range hooks {
		engineOpts = append(engineOpts, storyline.WithLifecycleHooks(h))
	}
	if opts.Strict {
		engineOpts = append(engineOpts, storyline.WithStrictChoices())
	}

	engine, err := storyline.NewWithContext(ctx, engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, nil
}

// loaderFor picks the loader matching path: a directory is read as Markdown
// nodes through loam, anything else as a single YAML/JSON story file.
func loaderFor(path, root string) (ports.StoryLoader, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open story: %w", err)
	}
	if !info.IsDir() {
		return file.New(path), nil
	}

	if root == "" {
		root = determineEntryPoint(path)
	}
	return loam.Open(path, loam.WithRoot(root))
}

// determineEntryPoint guesses the root node of a Markdown directory:
// start, main, index or a node named after the directory, in that order.
func determineEntryPoint(dir string) string {
	candidates := []string{"start", "main", "index", filepath.Base(filepath.Clean(dir))}
	for _, id := range candidates {
		if hasNode(dir, id) {
			return id
		}
	}
	return loam.DefaultRoot
}

// hasNode checks if a node exists as a file in the directory.
func hasNode(dir, nodeID string) bool {
	for _, ext := range []string{".md", ".yaml", ".json"} {
		if _, err := os.Stat(filepath.Join(dir, nodeID+ext)); err == nil {
			return true
		}
	}
	return false
}

// endingTitleFor names endings of the built-in story; other stories show the raw kind.
func endingTitleFor(opts Options) func(domain.EndingKind) string {
	if opts.StoryPath == "" {
		return coop.EndingTitle
	}
	return nil
}
