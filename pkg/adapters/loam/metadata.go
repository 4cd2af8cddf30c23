package loam

import "github.com/aretw0/storyline/internal/compiler"

// NodeMetadata represents the frontmatter of a story node document.
// It uses "mapstructure" tags to match standard Frontmatter/YAML keys.
//
//	---
//	id: flight3
//	choices:
//	  - text: Take the leap of faith
//	    to: flight_ending
//	  - text: Play it safe and settle down
//	    to: family1
//	    hint: family
//	---
//	You feel yourself lifting slightly off the perch...
type NodeMetadata struct {
	ID      string                    `json:"id" mapstructure:"id"`
	Ending  string                    `json:"ending" mapstructure:"ending"`
	Choices []compiler.ChoiceDocument `json:"choices" mapstructure:"choices"`

	// Title is only read from the root node, where it names the whole story.
	Title string `json:"title" mapstructure:"title"`
}
