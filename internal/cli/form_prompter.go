package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/at-ishikawa/translator/internal/language"
	"github.com/at-ishikawa/translator/internal/prompt"
	"github.com/at-ishikawa/translator/internal/session"
	"github.com/at-ishikawa/translator/internal/translator"
	"github.com/charmbracelet/huh"
)

// FormPrompter asks through huh forms on an interactive terminal
type FormPrompter struct{}

func NewFormPrompter() *FormPrompter {
	return &FormPrompter{}
}

func runForm(form *huh.Form) error {
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return io.EOF
		}
		return fmt.Errorf("form.Run() > %w", err)
	}
	return nil
}

func (p *FormPrompter) SelectAction() (Action, error) {
	action := ActionTranslate
	options := make([]huh.Option[Action], 0, len(Actions()))
	for _, a := range Actions() {
		options = append(options, huh.NewOption(a.Label(), a))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[Action]().
				Title("What would you like to do?").
				Options(options...).
				Value(&action),
		),
	)
	if err := runForm(form); err != nil {
		return "", err
	}
	return action, nil
}

func (p *FormPrompter) TranslateForm(defaults TranslateInput) (TranslateInput, error) {
	input := defaults

	// popular languages are listed first, then the full table
	languageOptions := make([]huh.Option[string], 0, len(language.All())+len(language.Popular()))
	for _, e := range language.Popular() {
		languageOptions = append(languageOptions, huh.NewOption(fmt.Sprintf("★ %s %s", e.Flag, e.Name), e.Name))
	}
	for _, e := range language.All() {
		languageOptions = append(languageOptions, huh.NewOption(e.Label(), e.Name))
	}

	modeOptions := make([]huh.Option[prompt.Mode], 0, len(prompt.Modes()))
	for _, m := range prompt.Modes() {
		modeOptions = append(modeOptions, huh.NewOption(string(m), m))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select Target Language").
				Options(languageOptions...).
				Height(10).
				Value(&input.Language),
			huh.NewSelect[prompt.Mode]().
				Title("Translation Mode").
				Options(modeOptions...).
				Value(&input.Mode),
			huh.NewConfirm().
				Title("Auto-detect source language").
				Value(&input.AutoDetect),
			huh.NewConfirm().
				Title("Show pronunciation guide").
				Value(&input.Pronunciation),
		),
		huh.NewGroup(
			huh.NewText().
				Title("Enter text to translate").
				Description(fmt.Sprintf("Maximum %d characters", translator.MaxTextLength)).
				Placeholder("Type or paste your text here...").
				Lines(8).
				Value(&input.Text),
		),
	)
	if err := runForm(form); err != nil {
		return TranslateInput{}, err
	}
	return input, nil
}

func (p *FormPrompter) SelectFavorite(favorites []session.FavoriteRecord) (int, error) {
	index := 0
	options := make([]huh.Option[int], 0, len(favorites))
	for i, f := range favorites {
		label := fmt.Sprintf("Favorite %d - %s (%s): %s", i+1, f.Language, f.Timestamp.Format(session.TimestampLayout), truncate(f.Original, 40))
		options = append(options, huh.NewOption(label, i))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Remove which favorite?").
				Options(options...).
				Value(&index),
		),
	)
	if err := runForm(form); err != nil {
		return 0, err
	}
	return index, nil
}
