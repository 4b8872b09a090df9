package main

import (
	"github.com/at-ishikawa/translator/internal/cli"
	"github.com/at-ishikawa/translator/internal/language"
	"github.com/spf13/cobra"
)

func newLanguagesCommand() *cobra.Command {
	var popularOnly bool
	command := &cobra.Command{
		Use:   "languages",
		Short: "List the supported target languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := language.All()
			if popularOnly {
				entries = language.Popular()
			}
			cli.RenderLanguages(cmd.OutOrStdout(), entries)
			return nil
		},
	}
	command.Flags().BoolVar(&popularOnly, "popular", false, "Only list the popular languages")

	return command
}
