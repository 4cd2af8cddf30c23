package ports

import "github.com/aretw0/storyline/pkg/domain"

// Playthrough is the surface a presentation layer needs from a story engine:
// read the current passage and its choices, submit one choice, restart.
type Playthrough interface {
	CurrentNode() domain.Node
	CurrentChoices() []domain.Choice
	IsEndingReached() bool
	ActiveEnding() (domain.EndingKind, bool)
	SelectChoice(choice domain.Choice) error
	Choose(choiceID string) error
	Restart()
	Snapshot() domain.State
	Graph() *domain.Graph
}
