package loam

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/storyline/internal/testutils"
	"github.com/aretw0/storyline/pkg/domain"
	"github.com/aretw0/storyline/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for filename, content := range files {
		err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644)
		require.NoError(t, err)
	}
}

func TestLoader_Contract(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)

	seed(t, tmpDir, map[string]string{
		"start.md": `---
title: Two Roads
choices:
  - text: Take the left road
    to: left
    hint: left
  - id: ponder
    text: Ponder
    hint: right
---
Two roads diverge.
`,
		"left.md": `---
ending: left
---
You took the left road.`,
	})

	loader := New(loam.NewTypedRepository[NodeMetadata](repo))

	want := domain.Definition{
		Root: "start",
		Nodes: []domain.Node{
			{ID: "left", Text: "You took the left road.", Ending: "left"},
			{ID: "start", Text: "Two roads diverge.", Choices: []domain.Choice{
				{Text: "Take the left road", Target: "left", Hint: "left"},
				{ID: "ponder", Text: "Ponder", Hint: "right"},
			}},
		},
	}
	tests.StoryLoaderContractTest(t, loader, want)

	def, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Two Roads", def.Title)
	assert.Equal(t, "left", def.Nodes[0].ID, "nodes are sorted by ID")
}

func TestLoader_NormalizesIDs(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)

	seed(t, tmpDir, map[string]string{
		"start.md": `---
id: start.md
choices:
  - text: go
    to: implicit
---
Hello`,
		"implicit.md": `---
ending: done
---
ID is implied from filename`,
	})

	loader := New(loam.NewTypedRepository[NodeMetadata](repo))

	def, err := loader.Load(context.Background())
	require.NoError(t, err)

	ids := []string{}
	for _, n := range def.Nodes {
		ids = append(ids, n.ID)
	}
	assert.ElementsMatch(t, []string{"start", "implicit"}, ids)

	_, err = domain.Compile(def)
	assert.NoError(t, err)
}

func TestLoader_DetectsCollisions(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)

	seed(t, tmpDir, map[string]string{
		"foo.md": `---
id: foo
---
Explicit ID`,
		"bar.md": `---
id: foo
---
Same ID, other file`,
	})

	loader := New(loam.NewTypedRepository[NodeMetadata](repo))

	_, err := loader.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision detected")
	assert.Contains(t, err.Error(), "foo")
}

func TestLoader_WithRoot(t *testing.T) {
	tmpDir, repo := testutils.SetupTestRepo(t)
	seed(t, tmpDir, map[string]string{
		"intro.md": "---\ntitle: Intro\n---\nOnce upon a time.",
	})

	loader := New(loam.NewTypedRepository[NodeMetadata](repo), WithRoot("intro"))

	def, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "intro", def.Root)
	assert.Equal(t, "Intro", def.Title)
}

func TestOpen_ReadOnlyDirectory(t *testing.T) {
	dir := t.TempDir()
	seed(t, dir, map[string]string{
		"start.md": "---\nending: instant\n---\nIt is over before it began.",
	})

	loader, err := Open(dir)
	require.NoError(t, err)

	def, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, def.Nodes, 1)
	assert.Equal(t, domain.EndingKind("instant"), def.Nodes[0].Ending)
}
