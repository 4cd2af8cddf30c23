package main

import (
	"fmt"
	"os"

	"github.com/aretw0/storyline/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the story for consistency",
	Long:  `Compiles the story, crawls it from the root and reports dead ends, unreachable nodes and missing endings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cli.Validate(cmd.Context(), optionsFrom(cmd), os.Stdout); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
