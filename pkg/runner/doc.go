/*
Package runner implements the interactive loop that plays a story.

It acts as the bridge between a playthrough (the engine) and a human or a
program. Each turn the runner presents a Frame (the passage, its numbered
choices and, at the end, the ending title) through an IOHandler, then reads
one command.

# Commands

  - a number selects the matching choice (1-based)
  - a choice ID selects that choice
  - "restart" (or "r") rewinds to the beginning
  - "quit", "q" or "exit" leaves the loop

# Usage

	r := runner.NewRunner(
		runner.WithInputHandler(runner.NewTextHandler(os.Stdin, os.Stdout)),
		runner.WithEndingTitle(coop.EndingTitle),
	)

	if err := r.Run(ctx, engine); err != nil {
		log.Fatal(err)
	}
*/
package runner
