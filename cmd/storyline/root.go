package main

import (
	"fmt"
	"os"

	"github.com/aretw0/storyline/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "storyline",
	Short: "Storyline plays branching stories",
	Long: `Storyline is a branching-narrative engine. Each choice may hint at an ending,
and the story is over once an ending node is reached.

Without --story the built-in tale of the chicken who wanted more is played.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringP("story", "s", "", "Story file (YAML/JSON) or directory of Markdown nodes")
	flags.String("root", "", "Root node of a Markdown directory (default: detected)")
	flags.String("log-level", "", "Log level: debug, info, warn or error")
	flags.Bool("debug", false, "Log every engine event to stderr")
	flags.Bool("strict", false, "Reject choices the current node does not offer")
}

// optionsFrom reads the persistent flags.
func optionsFrom(cmd *cobra.Command) cli.Options {
	flags := cmd.Flags()
	storyPath, _ := flags.GetString("story")
	root, _ := flags.GetString("root")
	logLevel, _ := flags.GetString("log-level")
	debug, _ := flags.GetBool("debug")
	strict, _ := flags.GetBool("strict")

	return cli.Options{
		StoryPath: storyPath,
		Root:      root,
		LogLevel:  logLevel,
		Debug:     debug,
		Strict:    strict,
	}
}
