package main

import (
	"os"

	"github.com/aretw0/storyline/internal/cli"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var playCmd = &cobra.Command{
	Use:   "play [story]",
	Short: "Play the story interactively",
	Long: `Plays the story in the terminal. Type a choice number to pick it,
'restart' to start over or 'quit' to leave.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cli.PlayOptions{Options: optionsFrom(cmd)}
		if !cmd.Flags().Changed("story") && len(args) > 0 {
			opts.StoryPath = args[0]
		}
		opts.JSON, _ = cmd.Flags().GetBool("json")
		opts.Rich = !opts.JSON && term.IsTerminal(int(os.Stdout.Fd()))

		return cli.Play(cmd.Context(), opts, os.Stdin, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().Bool("json", false, "Run in JSON mode (NDJSON input/output)")

	// Playing is the default when no command is given.
	rootCmd.RunE = playCmd.RunE
	rootCmd.Args = playCmd.Args
	rootCmd.Flags().AddFlagSet(playCmd.Flags())
}
