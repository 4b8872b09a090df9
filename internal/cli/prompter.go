package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/at-ishikawa/translator/internal/language"
	"github.com/at-ishikawa/translator/internal/prompt"
	"github.com/at-ishikawa/translator/internal/session"
	"github.com/at-ishikawa/translator/internal/translator"
)

type Action string

const (
	ActionTranslate Action = "translate"
	ActionFavorite  Action = "favorite"
	ActionExport    Action = "export"
	ActionHistory   Action = "history"
	ActionFavorites Action = "favorites"
	ActionRemove    Action = "remove"
	ActionStats     Action = "stats"
	ActionLanguages Action = "languages"
	ActionQuit      Action = "quit"
)

// Actions lists the menu in display order
func Actions() []Action {
	return []Action{
		ActionTranslate, ActionFavorite, ActionExport, ActionHistory, ActionFavorites,
		ActionRemove, ActionStats, ActionLanguages, ActionQuit,
	}
}

func (a Action) Label() string {
	switch a {
	case ActionTranslate:
		return "🔄 Translate"
	case ActionFavorite:
		return "⭐ Add last result to favorites"
	case ActionExport:
		return "📥 Download last result"
	case ActionHistory:
		return "📚 Translation history"
	case ActionFavorites:
		return "⭐ Favorites"
	case ActionRemove:
		return "🗑️ Remove a favorite"
	case ActionStats:
		return "📊 Session statistics"
	case ActionLanguages:
		return "🌍 Supported languages"
	case ActionQuit:
		return "Quit"
	default:
		return string(a)
	}
}

// ParseAction accepts an action name, its menu number or "exit"
func ParseAction(s string) (Action, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "exit" {
		return ActionQuit, true
	}
	actions := Actions()
	if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= len(actions) {
		return actions[n-1], true
	}
	for _, a := range actions {
		if string(a) == s {
			return a, true
		}
	}
	return "", false
}

// TranslateInput is what the translate form collects
type TranslateInput struct {
	Language      string
	Mode          prompt.Mode
	AutoDetect    bool
	Pronunciation bool
	Text          string
}

// Prompter asks the user for input. It returns io.EOF when the input ends.
type Prompter interface {
	SelectAction() (Action, error)
	TranslateForm(defaults TranslateInput) (TranslateInput, error)
	SelectFavorite(favorites []session.FavoriteRecord) (int, error)
}

var ErrUnknownAction = errors.New("unknown action")

// textTerminator ends multi-line text input; blank lines belong to the text
const textTerminator = "."

// LinePrompter reads answers line by line, for pipes and dumb terminals
type LinePrompter struct {
	reader *bufio.Reader
	writer io.Writer
}

func NewLinePrompter(reader *bufio.Reader, writer io.Writer) *LinePrompter {
	return &LinePrompter{
		reader: reader,
		writer: writer,
	}
}

func (p *LinePrompter) readLine(label string) (string, error) {
	_, _ = fmt.Fprint(p.writer, label)
	line, err := p.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (p *LinePrompter) SelectAction() (Action, error) {
	var names []string
	for i, a := range Actions() {
		names = append(names, fmt.Sprintf("%d) %s", i+1, a))
	}
	_, _ = fmt.Fprintln(p.writer, strings.Join(names, "  "))
	line, err := p.readLine("Action: ")
	if err != nil {
		return "", err
	}
	action, ok := ParseAction(line)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, line)
	}
	return action, nil
}

func (p *LinePrompter) TranslateForm(defaults TranslateInput) (TranslateInput, error) {
	input := defaults

	popular := language.Popular()
	var shortcuts []string
	for i, e := range popular {
		shortcuts = append(shortcuts, fmt.Sprintf("%d) %s %s", i+1, e.Flag, e.Name))
	}
	_, _ = fmt.Fprintf(p.writer, "Popular Languages: %s\n", strings.Join(shortcuts, "  "))

	line, err := p.readLine(fmt.Sprintf("Target language [%s]: ", defaults.Language))
	if err != nil {
		return TranslateInput{}, err
	}
	if line = strings.TrimSpace(line); line != "" {
		if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(popular) {
			input.Language = popular[n-1].Name
		} else {
			entry, err := language.Find(line)
			if err != nil {
				return TranslateInput{}, &translator.ValidationError{Err: err}
			}
			input.Language = entry.Name
		}
	}

	line, err = p.readLine(fmt.Sprintf("Mode (Standard/Formal/Casual/Technical) [%s]: ", defaults.Mode))
	if err != nil {
		return TranslateInput{}, err
	}
	if strings.TrimSpace(line) != "" {
		mode, err := prompt.ParseMode(line)
		if err != nil {
			return TranslateInput{}, &translator.ValidationError{Err: err}
		}
		input.Mode = mode
	}

	if input.AutoDetect, err = p.confirm("Auto-detect source language?", defaults.AutoDetect); err != nil {
		return TranslateInput{}, err
	}
	if input.Pronunciation, err = p.confirm("Show pronunciation guide?", defaults.Pronunciation); err != nil {
		return TranslateInput{}, err
	}

	_, _ = fmt.Fprintf(p.writer, "Enter text to translate (maximum %d characters, finish with a line containing only %q):\n", translator.MaxTextLength, textTerminator)
	var lines []string
	for {
		line, err := p.readLine("")
		if err != nil {
			if errors.Is(err, io.EOF) && len(lines) > 0 {
				break
			}
			return TranslateInput{}, err
		}
		if line == textTerminator {
			break
		}
		lines = append(lines, line)
	}
	input.Text = strings.Join(lines, "\n")
	return input, nil
}

func (p *LinePrompter) confirm(question string, current bool) (bool, error) {
	hint := "y/N"
	if current {
		hint = "Y/n"
	}
	line, err := p.readLine(fmt.Sprintf("%s [%s]: ", question, hint))
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return current, nil
	}
}

// SelectFavorite returns the zero-based index of the chosen favorite.
// The user answers with the number shown in the favorites list.
func (p *LinePrompter) SelectFavorite(favorites []session.FavoriteRecord) (int, error) {
	line, err := p.readLine(fmt.Sprintf("Favorite to remove (1-%d): ", len(favorites)))
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, &translator.ValidationError{Err: fmt.Errorf("%q is not a number", line)}
	}
	return n - 1, nil
}
