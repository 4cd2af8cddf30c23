package validator

import (
	"testing"

	"github.com/aretw0/storyline/pkg/domain"
	"github.com/aretw0/storyline/pkg/dsl"
	"github.com/aretw0/storyline/stories/coop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspect_DefaultStory(t *testing.T) {
	g, err := coop.Graph()
	require.NoError(t, err)

	report := Inspect(g)

	assert.NoError(t, report.Err())
	assert.Empty(t, report.Unreachable)
	assert.Empty(t, report.DeadEnds)
	assert.Empty(t, report.EndingsWithChoices)
	assert.ElementsMatch(t, coop.Endings(), report.Endings)
	assert.Len(t, report.Reachable, g.Len())
	assert.Empty(t, report.Warnings())
}

func TestInspect_Findings(t *testing.T) {
	b := dsl.New("Broken")
	b.Add("start").Text("Start").
		Choice("Stall", "stuck").
		Choice("Finish", "end")
	b.Add("stuck").Text("Nothing to do here")
	b.Add("end").Text("The end").Ending("done").
		Choice("Again?", "start")
	b.Add("island").Text("Nobody comes here").Ending("lonely")

	g, err := b.Build()
	require.NoError(t, err)

	report := Inspect(g)

	assert.Equal(t, []string{"start", "stuck", "end"}, report.Reachable)
	assert.Equal(t, []string{"stuck"}, report.DeadEnds)
	assert.Equal(t, []string{"island"}, report.Unreachable)
	assert.Equal(t, []string{"end"}, report.EndingsWithChoices)
	assert.Equal(t, []domain.EndingKind{"done"}, report.Endings)

	err = report.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "found 1 dead ends")
	assert.Contains(t, err.Error(), "stuck")

	assert.Len(t, report.Warnings(), 2)
}

func TestInspect_NoReachableEnding(t *testing.T) {
	b := dsl.New("Loop")
	b.Add("a").Text("A").Choice("to b", "b")
	b.Add("b").Text("B").Choice("to a", "a")

	g, err := b.Build()
	require.NoError(t, err)

	report := Inspect(g)
	assert.NoError(t, report.Err())
	assert.Empty(t, report.Endings)
	assert.Contains(t, report.Warnings(), "no ending is reachable from the root")
}
