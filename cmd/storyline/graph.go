package main

import (
	"os"

	"github.com/aretw0/storyline/internal/cli"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the story graph as a Mermaid diagram",
	Long: `Outputs a Mermaid flowchart (graph TD) of the story.
With --from-history the visited nodes are highlighted and the last one is marked as current.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		history, _ := cmd.Flags().GetStringSlice("from-history")
		return cli.Graph(cmd.Context(), optionsFrom(cmd), history, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringSlice("from-history", nil, "Comma separated node IDs of a playthrough, root first")
}
