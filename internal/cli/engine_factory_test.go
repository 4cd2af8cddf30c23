package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/storyline/internal/logging"
	"github.com/aretw0/storyline/pkg/adapters/file"
	"github.com/aretw0/storyline/pkg/domain"
	"github.com/aretw0/storyline/stories/coop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tinyStory = `
title: Tiny
root: start
nodes:
  - id: start
    text: A door.
    choices:
      - {text: Open it, to: end, hint: brave}
  - id: end
    text: Light.
    ending: brave
`

func TestDetermineEntryPoint(t *testing.T) {
	// Helper to create a temp dir with specific files
	createDir := func(t *testing.T, files []string) string {
		dir := t.TempDir()
		for _, f := range files {
			err := os.WriteFile(filepath.Join(dir, f), []byte("content"), 0644)
			require.NoError(t, err)
		}
		return dir
	}

	t.Run("Default to start if exists", func(t *testing.T) {
		dir := createDir(t, []string{"start.md", "main.md"})
		assert.Equal(t, "start", determineEntryPoint(dir))
	})

	t.Run("Fallback to main", func(t *testing.T) {
		dir := createDir(t, []string{"main.md", "index.md"})
		assert.Equal(t, "main", determineEntryPoint(dir))
	})

	t.Run("Fallback to index", func(t *testing.T) {
		dir := createDir(t, []string{"index.md", "other.md"})
		assert.Equal(t, "index", determineEntryPoint(dir))
	})

	t.Run("Fallback to DirectoryName", func(t *testing.T) {
		// We need to create a directory structure where the leaf dir name matches a file
		tmpRoot := t.TempDir()
		moduleDir := filepath.Join(tmpRoot, "checkout")
		err := os.Mkdir(moduleDir, 0755)
		require.NoError(t, err)

		err = os.WriteFile(filepath.Join(moduleDir, "checkout.md"), []byte("content"), 0644)
		require.NoError(t, err)

		assert.Equal(t, "checkout", determineEntryPoint(moduleDir))
	})

	t.Run("Default to start if nothing matches", func(t *testing.T) {
		dir := createDir(t, []string{"other.md"})
		assert.Equal(t, "start", determineEntryPoint(dir))
	})
}

func TestLoaderFor(t *testing.T) {
	t.Run("File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "story.yaml")
		require.NoError(t, os.WriteFile(path, []byte(tinyStory), 0644))

		loader, err := loaderFor(path, "")
		require.NoError(t, err)
		assert.IsType(t, &file.Loader{}, loader)
	})

	t.Run("Directory uses detected entry point", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "main.md"), []byte("---\nending: done\n---\nThe end."), 0644))

		loader, err := loaderFor(dir, "")
		require.NoError(t, err)

		def, err := loader.Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "main", def.Root)
	})

	t.Run("Missing path", func(t *testing.T) {
		_, err := loaderFor(filepath.Join(t.TempDir(), "nope.yaml"), "")
		assert.ErrorContains(t, err, "cannot open story")
	})
}

func TestCreateEngine(t *testing.T) {
	ctx := context.Background()

	engine, err := createEngine(ctx, Options{}, logging.NewNop())
	require.NoError(t, err)
	assert.Equal(t, coop.Title, engine.Title())

	path := filepath.Join(t.TempDir(), "story.yaml")
	require.NoError(t, os.WriteFile(path, []byte(tinyStory), 0644))

	engine, err = createEngine(ctx, Options{StoryPath: path, Strict: true}, logging.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "Tiny", engine.Title())

	err = engine.SelectChoice(domain.Choice{ID: "elsewhere", Target: "end"})
	assert.ErrorIs(t, err, domain.ErrUnknownChoice)
}

func TestEndingTitleFor(t *testing.T) {
	assert.Equal(t, "The Chicken Learned to Fly", endingTitleFor(Options{})(coop.Flight))
	assert.Nil(t, endingTitleFor(Options{StoryPath: "story.yaml"}))
}
