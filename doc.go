/*
Package storyline is a small engine for branching, choice-driven narratives.

A story is a directed graph of nodes. Each node carries narrative text and an
ordered list of choices; a choice may lead to another node and may hint at one
of the story's endings. Nodes that carry an ending kind are terminal. The engine
holds the cursor of one playthrough: the current node, the ending the player is
heading towards, and whether an ending was reached.

# Rules

  - Selecting a choice with a hint makes that hint the active ending, even when
    the choice has no target.
  - A choice without target does not move the cursor.
  - Landing on an ending node overrides any hint with the node's own kind and
    marks the ending as reached.
  - Restart returns to the root and clears the ending.

# Usage

	eng, err := storyline.New() // the built-in story
	if err != nil {
		log.Fatal(err)
	}

	for !eng.IsEndingReached() {
		fmt.Println(eng.CurrentNode().Text)
		choices := eng.CurrentChoices()
		if err := eng.SelectChoice(choices[0]); err != nil {
			log.Fatal(err)
		}
	}

	kind, _ := eng.ActiveEnding()
	fmt.Println("Ending:", coop.EndingTitle(kind))

Stories can also be written with the fluent builder in package dsl, loaded from
YAML or JSON files (pkg/adapters/file), or from a directory of Markdown files with
frontmatter (pkg/adapters/loam).
*/
package storyline
