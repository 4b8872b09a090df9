package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/at-ishikawa/translator/internal/export"
	"github.com/at-ishikawa/translator/internal/inference"
	"github.com/at-ishikawa/translator/internal/language"
	"github.com/at-ishikawa/translator/internal/prompt"
	"github.com/at-ishikawa/translator/internal/session"
	"github.com/at-ishikawa/translator/internal/translator"
	"github.com/spf13/afero"
)

type TranslatorCLIOptions struct {
	ExportDirectory     string
	HistoryDisplayLimit int
	DefaultLanguage     string
	DefaultMode         prompt.Mode
}

// TranslatorCLI manages one interactive translation session
type TranslatorCLI struct {
	*InteractiveCLI
	service      *translator.Service
	prompter     Prompter
	fs           afero.Fs
	exportDir    string
	historyLimit int
	defaults     TranslateInput
	lastResult   *translator.Result
	now          func() time.Time
}

// NewTranslatorCLI creates a session reading from stdin and writing to stdout.
// A nil prompter falls back to line prompts on stdin.
func NewTranslatorCLI(
	stdin io.Reader,
	stdout io.Writer,
	service *translator.Service,
	prompter Prompter,
	fs afero.Fs,
	options TranslatorCLIOptions,
) *TranslatorCLI {
	base := newInteractiveCLI(stdin, stdout)
	if prompter == nil {
		prompter = NewLinePrompter(base.stdinReader, stdout)
	}
	if options.HistoryDisplayLimit <= 0 {
		options.HistoryDisplayLimit = 10
	}
	if !options.DefaultMode.IsValid() {
		options.DefaultMode = prompt.ModeStandard
	}

	return &TranslatorCLI{
		InteractiveCLI: base,
		service:        service,
		prompter:       prompter,
		fs:             fs,
		exportDir:      options.ExportDirectory,
		historyLimit:   options.HistoryDisplayLimit,
		defaults: TranslateInput{
			Language: options.DefaultLanguage,
			Mode:     options.DefaultMode,
		},
		now: time.Now,
	}
}

func (r *TranslatorCLI) Session(ctx context.Context) error {
	action, err := r.prompter.SelectAction()
	if err != nil {
		if errors.Is(err, io.EOF) {
			r.println("Session ended.")
			return errEnd
		}
		if errors.Is(err, ErrUnknownAction) {
			_, _ = r.warning.Fprintf(r.stdoutWriter, "⚠️ %v\n", err)
			return nil
		}
		return fmt.Errorf("prompter.SelectAction() > %w", err)
	}

	switch action {
	case ActionTranslate:
		return r.translate(ctx)
	case ActionFavorite:
		r.addFavorite()
	case ActionExport:
		r.export()
	case ActionHistory:
		history := r.service.State().History()
		recent := r.service.State().RecentHistory(r.historyLimit)
		_, _ = r.bold.Fprintln(r.stdoutWriter, "📚 Recent Translations")
		RenderHistory(r.stdoutWriter, recent, len(history)-len(recent))
	case ActionFavorites:
		_, _ = r.bold.Fprintln(r.stdoutWriter, "⭐ Favorite Translations")
		RenderFavorites(r.stdoutWriter, r.service.State().Favorites())
	case ActionRemove:
		return r.removeFavorite()
	case ActionStats:
		_, _ = r.bold.Fprintln(r.stdoutWriter, "📊 Session Statistics")
		RenderStats(r.stdoutWriter, r.service.State().Stats())
	case ActionLanguages:
		_, _ = r.bold.Fprintln(r.stdoutWriter, "🌍 Supported Languages")
		RenderLanguages(r.stdoutWriter, language.All())
	case ActionQuit:
		r.println("Session ended.")
		return errEnd
	}
	return nil
}

func (r *TranslatorCLI) translate(ctx context.Context) error {
	input, err := r.prompter.TranslateForm(r.defaults)
	if err != nil {
		if errors.Is(err, io.EOF) {
			r.println("Session ended.")
			return errEnd
		}
		var validationErr *translator.ValidationError
		if errors.As(err, &validationErr) {
			_, _ = r.warning.Fprintf(r.stdoutWriter, "⚠️ %v\n", err)
			return nil
		}
		return fmt.Errorf("prompter.TranslateForm() > %w", err)
	}
	// keep the selections for the next form, but not the text
	r.defaults = input
	r.defaults.Text = ""

	r.printf("Characters: %d/%d\n", translator.CharacterCount(input.Text), translator.MaxTextLength)

	result, err := r.service.Translate(ctx, translator.Request{
		Mode:           input.Mode,
		TargetLanguage: input.Language,
		Text:           input.Text,
		AutoDetect:     input.AutoDetect,
		Pronunciation:  input.Pronunciation,
	})
	if err != nil {
		// favorite and export only act on the result shown right after a translation
		r.lastResult = nil
		r.reportTranslateError(err)
		return nil
	}

	r.lastResult = &result
	_, _ = r.bold.Fprintf(r.stdoutWriter, "✅ Translated to %s %s:\n", result.Language.Flag, result.Language.Name)
	r.println(result.Record.Translated)
	if result.PronunciationAvailable {
		_, _ = r.italic.Fprintln(r.stdoutWriter, "💡 Pronunciation guide available for this language")
	}
	return nil
}

func (r *TranslatorCLI) reportTranslateError(err error) {
	var validationErr *translator.ValidationError
	if errors.As(err, &validationErr) {
		if errors.Is(err, translator.ErrEmptyText) {
			_, _ = r.warning.Fprintln(r.stdoutWriter, "⚠️ Please enter text to translate")
			return
		}
		_, _ = r.warning.Fprintf(r.stdoutWriter, "⚠️ %v\n", validationErr)
		return
	}

	slog.Default().Debug("translate action failed", "error", err, "timeout", inference.IsTimeout(err))
	var inferenceErr *inference.Error
	if errors.As(err, &inferenceErr) {
		err = inferenceErr
	}
	_, _ = r.failure.Fprintf(r.stdoutWriter, "❌ Translation Error: %v\n", err)
	r.println("Please check your API key and internet connection")
}

func (r *TranslatorCLI) addFavorite() {
	if r.lastResult == nil {
		r.println("No translation yet. Translate something first.")
		return
	}
	record := r.lastResult.Record
	if _, err := r.service.State().AddFavorite(record.Original, record.Translated, record.Language); err != nil {
		_, _ = r.warning.Fprintf(r.stdoutWriter, "⚠️ %v\n", err)
		return
	}
	r.println("Added to favorites!")
}

func (r *TranslatorCLI) export() {
	if r.lastResult == nil {
		r.println("No translation yet. Translate something first.")
		return
	}
	record := r.lastResult.Record
	path, err := export.Write(r.fs, r.exportDir, export.Document{
		Original:   record.Original,
		Translated: record.Translated,
		Language:   record.Language,
	}, r.now())
	if err != nil {
		_, _ = r.failure.Fprintf(r.stdoutWriter, "❌ Export failed: %v\n", err)
		return
	}
	r.printf("📥 Saved to %s\n", path)
}

func (r *TranslatorCLI) removeFavorite() error {
	favorites := r.service.State().Favorites()
	if len(favorites) == 0 {
		r.println("No favorites yet. Add translations to favorites to see them here!")
		return nil
	}
	RenderFavorites(r.stdoutWriter, favorites)

	index, err := r.prompter.SelectFavorite(favorites)
	if err != nil {
		if errors.Is(err, io.EOF) {
			r.println("Session ended.")
			return errEnd
		}
		var validationErr *translator.ValidationError
		if errors.As(err, &validationErr) {
			_, _ = r.warning.Fprintf(r.stdoutWriter, "⚠️ %v\n", err)
			return nil
		}
		return fmt.Errorf("prompter.SelectFavorite() > %w", err)
	}

	if err := r.service.State().RemoveFavorite(index); err != nil {
		if errors.Is(err, session.ErrIndexOutOfRange) {
			_, _ = r.warning.Fprintf(r.stdoutWriter, "⚠️ %v\n", err)
			return nil
		}
		return fmt.Errorf("state.RemoveFavorite() > %w", err)
	}
	r.printf("Removed favorite %d\n", index+1)
	return nil
}
