/*
Package dsl provides a Go DSL for programmatically constructing Storyline stories.

It mirrors how branching stories are usually written: declare the passages first, then
wire the choices between them, forward references included. Targets are only resolved
when the story is built, so declaration order does not matter.

Example usage:

	package main

	import (
		"github.com/aretw0/storyline/pkg/dsl"
	)

	func main() {
		b := dsl.New("The Door")

		b.Add("hall").
			Text("A door stands before you.").
			Choice("Open it", "garden").Hint("curious").
			Reflect("Wonder who built it").Hint("wise")

		b.Add("garden").
			Text("Sunlight. You made it.").
			Ending("curious")

		graph, err := b.Build()
		// ... pass graph to storyline.New(storyline.WithGraph(graph))
	}
*/
package dsl
