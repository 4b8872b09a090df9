package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/at-ishikawa/translator/internal/export"
	"github.com/at-ishikawa/translator/internal/language"
	"github.com/at-ishikawa/translator/internal/prompt"
	"github.com/at-ishikawa/translator/internal/session"
	"github.com/at-ishikawa/translator/internal/translator"
	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

type translateOptions struct {
	to            string
	mode          prompt.Mode
	autoDetect    bool
	pronunciation bool
	exportDir     string
	output        string
}

// translateOutput is the --output json|yaml document
type translateOutput struct {
	Original               string      `json:"original" yaml:"original"`
	Translated             string      `json:"translated" yaml:"translated"`
	Language               string      `json:"language" yaml:"language"`
	Mode                   prompt.Mode `json:"mode" yaml:"mode"`
	Timestamp              time.Time   `json:"timestamp" yaml:"timestamp"`
	PronunciationAvailable bool        `json:"pronunciation_available" yaml:"pronunciation_available"`
	ExportPath             string      `json:"export_path,omitempty" yaml:"export_path,omitempty"`
}

func newTranslateCommand() *cobra.Command {
	var options translateOptions
	command := &cobra.Command{
		Use:   "translate [text]",
		Short: "Translate text once and print the result",
		Long:  "Translate text once and print the result. The text is read from stdin when no argument is given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isOutputFormat(options.output) {
				return fmt.Errorf("unknown output format %q, want one of text, json, yaml", options.output)
			}

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

			text, err := readText(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			targetLanguage := cfg.Translation.DefaultLanguage
			if options.to != "" {
				entry, err := language.Find(options.to)
				if err != nil {
					return fmt.Errorf("language.Find(%s) > %w", options.to, err)
				}
				targetLanguage = entry.Name
			}
			mode := options.mode
			if !cmd.Flags().Changed("mode") {
				mode = defaultMode(cfg)
			}
			request := translator.Request{
				Mode:           mode,
				TargetLanguage: targetLanguage,
				Text:           text,
				AutoDetect:     options.autoDetect,
				Pronunciation:  options.pronunciation,
			}
			if _, err := translator.Validate(request); err != nil {
				return err
			}

			service := translator.NewService(client, session.NewState(), cfg.Translation.Timeout)
			result, err := service.Translate(cmd.Context(), request)
			if err != nil {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Please check your API key and internet connection")
				return fmt.Errorf("translation error: %w", err)
			}

			var exportPath string
			if options.exportDir != "" {
				exportPath, err = export.Write(afero.NewOsFs(), options.exportDir, export.Document{
					Original:   result.Record.Original,
					Translated: result.Record.Translated,
					Language:   result.Record.Language,
				}, time.Now())
				if err != nil {
					return fmt.Errorf("export.Write() > %w", err)
				}
			}

			return writeResult(cmd.OutOrStdout(), options.output, result, exportPath)
		},
	}

	flags := command.Flags()
	flags.StringVarP(&options.to, "to", "t", "", "Target language name or code (default from configuration)")
	flags.VarP(&options.mode, "mode", "m", "Translation mode: Standard, Formal, Casual or Technical (default from configuration)")
	flags.BoolVar(&options.autoDetect, "detect", false, "Detect the source language first")
	flags.BoolVar(&options.pronunciation, "pronunciation", false, "Request a pronunciation guide")
	flags.StringVar(&options.exportDir, "export", "", "Also save the translation as a text file in this directory")
	flags.StringVarP(&options.output, "output", "o", outputText, "Output format: text, json or yaml")

	_ = command.RegisterFlagCompletionFunc("to", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return language.Names(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = command.RegisterFlagCompletionFunc("output", cobra.FixedCompletions([]string{outputText, outputJSON, outputYAML}, cobra.ShellCompDirectiveNoFileComp))

	return command
}

func isOutputFormat(format string) bool {
	switch format {
	case outputText, outputJSON, outputYAML:
		return true
	}
	return false
}

// readText joins the arguments, or reads all of r when there are none
func readText(r io.Reader, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	content, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("io.ReadAll() > %w", err)
	}
	return strings.TrimRight(string(content), "\r\n"), nil
}

func writeResult(w io.Writer, format string, result translator.Result, exportPath string) error {
	output := translateOutput{
		Original:               result.Record.Original,
		Translated:             result.Record.Translated,
		Language:               result.Record.Language,
		Mode:                   result.Record.Mode,
		Timestamp:              result.Record.Timestamp,
		PronunciationAvailable: result.PronunciationAvailable,
		ExportPath:             exportPath,
	}

	switch format {
	case outputJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(output); err != nil {
			return fmt.Errorf("encoder.Encode() > %w", err)
		}
		return nil
	case outputYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(output); err != nil {
			return fmt.Errorf("encoder.Encode() > %w", err)
		}
		return encoder.Close()
	case outputText:
		bold := color.New(color.Bold)
		_, _ = bold.Fprintf(w, "✅ Translated to %s %s:\n", result.Language.Flag, result.Language.Name)
		_, _ = fmt.Fprintln(w, result.Record.Translated)
		if result.PronunciationAvailable {
			_, _ = color.New(color.Italic).Fprintln(w, "💡 Pronunciation guide available for this language")
		}
		if exportPath != "" {
			_, _ = fmt.Fprintf(w, "📥 Saved to %s\n", exportPath)
		}
		return nil
	}
	return errors.New("unknown output format " + format)
}
