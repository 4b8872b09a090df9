package main

import (
	"fmt"
	"os"

	"github.com/at-ishikawa/translator/internal/cli"
	"github.com/at-ishikawa/translator/internal/language"
	"github.com/at-ishikawa/translator/internal/session"
	"github.com/at-ishikawa/translator/internal/translator"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newSessionCommand() *cobra.Command {
	var linePrompts bool
	command := &cobra.Command{
		Use:   "session",
		Short: "Start an interactive translation session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			client, err := newClient(cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = client.Close()
			}()

			var prompter cli.Prompter
			if !linePrompts && term.IsTerminal(int(os.Stdin.Fd())) {
				prompter = cli.NewFormPrompter()
			}

			service := translator.NewService(client, session.NewState(), cfg.Translation.Timeout)
			translatorCLI := cli.NewTranslatorCLI(
				cmd.InOrStdin(),
				cmd.OutOrStdout(),
				service,
				prompter,
				afero.NewOsFs(),
				cli.TranslatorCLIOptions{
					ExportDirectory:     cfg.Export.Directory,
					HistoryDisplayLimit: cfg.Session.HistoryDisplayLimit,
					DefaultLanguage:     cfg.Translation.DefaultLanguage,
					DefaultMode:         defaultMode(cfg),
				},
			)

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, "🌍 Translation session started!")
			_, _ = fmt.Fprintf(out, "Translate text into %d languages. Choose quit or press Ctrl-C to exit.\n\n", len(language.All()))
			return translatorCLI.Run(cmd.Context(), translatorCLI)
		},
	}
	command.Flags().BoolVar(&linePrompts, "line", false, "Use line prompts even on a terminal")

	return command
}
