// Package coop contains the built-in story: a chicken who feels meant for
// something more than the coop, and the four ways that feeling can end.
package coop

import (
	"github.com/aretw0/storyline/pkg/domain"
	"github.com/aretw0/storyline/pkg/dsl"
)

// Title of the story.
const Title = "The Chicken Who Wanted More"

// Ending kinds of the story.
const (
	Flight domain.EndingKind = "flight"
	Family domain.EndingKind = "family"
	Prison domain.EndingKind = "prison"
	Travel domain.EndingKind = "travel"
)

// Node IDs referenced by hosts and tests.
const (
	Root         = "root"
	FlightEnding = "flight_ending"
	FamilyEnding = "family_ending"
	PrisonEnding = "prison_ending"
	TravelEnding = "travel_ending"
)

var titles = map[domain.EndingKind]string{
	Flight: "The Chicken Learned to Fly",
	Family: "The Chicken Started a Family",
	Prison: "The Chicken Sat in Prison",
	Travel: "The Chicken Became a Traveler",
}

// Endings returns the ending kinds in a stable order.
func Endings() []domain.EndingKind {
	return []domain.EndingKind{Flight, Family, Prison, Travel}
}

// EndingTitle returns the title shown when a playthrough ends with kind.
// Unknown kinds yield their raw value.
func EndingTitle(kind domain.EndingKind) string {
	if t, ok := titles[kind]; ok {
		return t
	}
	return kind.String()
}

// Definition returns the story definition.
func Definition() domain.Definition {
	return builder().Definition()
}

// Graph builds the story graph.
func Graph() (*domain.Graph, error) {
	return builder().Build()
}

func builder() *dsl.Builder {
	b := dsl.New(Title).Root(Root)

	b.Add(Root).
		Text("You wake up in your coop as dawn breaks over the farm. Around you, other chickens go about their daily routine of pecking and clucking. But you feel different today. Deep in your heart, you know you're meant for something more than this ordinary life. What path will you choose?").
		Choice("Practice flying", "flight1").Hint(Flight).
		Choice("Look for companionship", "family1").Hint(Family).
		Choice("Challenge the farmer", "prison1").Hint(Prison).
		Choice("Explore beyond the fence", "travel1").Hint(Travel)

	b.Add("flight1").
		Text("You climb onto the highest perch in the coop. The other chickens cluck nervously below. Your heart pounds with anticipation and fear. This is it – the moment you've been preparing for.").
		Choice("Practice flapping more", "flight2").
		Choice("Look for a partner instead", "family1").Hint(Family).
		Choice("Consider running away", "travel1").Hint(Travel)

	b.Add("flight2").
		Text("You begin flapping your wings frantically, trying to remember everything you learned from watching the sparrows. The ground seems so far away, but freedom calls to you.").
		Choice("Jump and trust your wings", "flight3").
		Choice("Give up and start a rebellion", "prison1").Hint(Prison)

	b.Add("flight3").
		Text("You feel yourself lifting slightly off the perch. It's working! But the farmer is approaching with a concerned look. Do you trust in your abilities?").
		Choice("Take the leap of faith", FlightEnding).
		Choice("Play it safe and settle down", "family1").Hint(Family)

	b.Add("family1").
		Text("You notice another chicken who seems different from the rest – kind eyes and a gentle manner. There's something special about building a life together.").
		Choice("Approach them", "family2").
		Choice("Focus on your own dreams", "flight1").Hint(Flight)

	b.Add("family2").
		Text("You and your partner work together to create the perfect nest. The bond between you grows stronger each day, and you both dream of little chicks.").
		Choice("Commit to this life", "family3").
		Choice("Doubt your choice", "travel1").Hint(Travel)

	b.Add("family3").
		Text("Your first egg arrives! You and your partner take turns keeping it warm, dreaming of the new life that will soon join your family.").
		Choice("Embrace parenthood", FamilyEnding).
		Choice("Feel trapped by responsibility", "prison1").Hint(Prison)

	b.Add("prison1").
		Text("You've had enough of the farmer's rules. The fence seems more like a prison than protection. You start rallying other chickens to your cause.").
		Choice("Continue the rebellion", "prison2").
		Choice("Try to escape alone", "travel1").Hint(Travel)

	b.Add("prison2").
		Text("Your rebellion grows stronger. You lead raids on the chicken feed and refuse to lay eggs. The farmer looks increasingly frustrated with your behavior.").
		Choice("Escalate the fight", "prison3").
		Choice("Try to fly away", "flight1").Hint(Flight)

	b.Add("prison3").
		Text("The farmer has decided you're too much trouble. You see them approaching with a cage. This could be the end of your freedom.").
		Choice("Accept your fate defiantly", PrisonEnding).
		Choice("Make one last escape attempt", "travel1").Hint(Travel)

	b.Add("travel1").
		Text("Beyond the farm fence, you see a road stretching toward distant mountains. Your heart yearns for adventure and unknown lands.").
		Choice("Leave the farm tonight", "travel2").
		Choice("Stay and find love first", "family1").Hint(Family)

	b.Add("travel2").
		Text("You slip through a gap in the fence one moonless night. The world beyond is vast and mysterious, full of possibilities and dangers.").
		Choice("Join the wild birds", "travel3").
		Choice("Try to fly back home", "flight1").Hint(Flight)

	b.Add("travel3").
		Text("You meet a group of wild birds who offer to show you the ways of the world. They speak of distant lands and incredible sights.").
		Choice("Embrace the nomad life", TravelEnding).
		Choice("Rebel against their rules", "prison1").Hint(Prison)

	b.Add(FlightEnding).
		Text("You spread your wings wide, feeling the wind beneath your feathers. The farm below grows smaller as you soar higher than any chicken has ever dared to dream. You are free, you are flying, you are limitless.").
		Ending(Flight)

	b.Add(FamilyEnding).
		Text("Surrounded by your fluffy chicks, you feel a warmth that no adventure could replace. Your partner nuzzles close as the sunset paints the coop golden. This simple life, filled with love and laughter, is your greatest treasure.").
		Ending(Family)

	b.Add(PrisonEnding).
		Text("Behind the cold metal bars, you contemplate your choices. The rebellion was fierce, but the consequences are real. Yet even here, you plan your next move. Some say the strongest cages hold the most dangerous dreams.").
		Ending(Prison)

	b.Add(TravelEnding).
		Text("With a worn map tucked under your wing and endless horizons ahead, you've become a legend among travelers. Each sunrise brings new wonders, each sunset new stories to tell. The world is your coop now.").
		Ending(Travel)

	return b
}
