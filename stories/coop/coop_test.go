package coop_test

import (
	"testing"

	"github.com/aretw0/storyline/stories/coop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraph_Shape(t *testing.T) {
	g, err := coop.Graph()
	require.NoError(t, err)

	assert.Equal(t, coop.Title, g.Title())
	assert.Equal(t, coop.Root, g.RootID())
	assert.Equal(t, 17, g.Len())

	labels := []string{}
	for _, c := range g.Root().Choices {
		labels = append(labels, c.Text)
	}
	assert.Equal(t, []string{
		"Practice flying",
		"Look for companionship",
		"Challenge the farmer",
		"Explore beyond the fence",
	}, labels)
}

func TestGraph_EndingsAreLeaves(t *testing.T) {
	g, err := coop.Graph()
	require.NoError(t, err)

	endings := map[string]bool{}
	for _, n := range g.Nodes() {
		if n.IsEnding() {
			endings[string(n.Ending)] = true
			assert.Empty(t, n.Choices, "ending node %s should be a leaf", n.ID)
		} else {
			assert.NotEmpty(t, n.Choices, "passage %s should offer choices", n.ID)
		}
	}
	assert.Len(t, endings, len(coop.Endings()))
}

func TestEndingTitle(t *testing.T) {
	assert.Equal(t, "The Chicken Learned to Fly", coop.EndingTitle(coop.Flight))
	assert.Equal(t, "The Chicken Became a Traveler", coop.EndingTitle(coop.Travel))
	assert.Equal(t, "mystery", coop.EndingTitle("mystery"))
}
