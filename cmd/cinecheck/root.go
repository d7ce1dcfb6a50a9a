package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	rootCmd := &cobra.Command{
		Use:           "cinecheck",
		Short:         "Schema-validated movie reviews and child-suitability assessments",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newReviewCommand(&configFlag))
	rootCmd.AddCommand(newHealthCommand(&configFlag))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}
