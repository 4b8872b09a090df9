// Package prompt builds the instruction sent to the translation model.
package prompt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/at-ishikawa/translator/internal/language"
)

// ErrInvalidArgument is wrapped by every error caused by an unknown mode or language
var ErrInvalidArgument = errors.New("invalid argument")

// Mode selects the tone of the translation
type Mode string

const (
	ModeStandard  Mode = "Standard"
	ModeFormal    Mode = "Formal"
	ModeCasual    Mode = "Casual"
	ModeTechnical Mode = "Technical"
)

var instructions = map[Mode]string{
	ModeStandard:  "Translate the following text naturally",
	ModeFormal:    "Translate the following text in a formal, professional tone",
	ModeCasual:    "Translate the following text in a casual, conversational tone",
	ModeTechnical: "Translate the following text maintaining technical terminology",
}

// Modes returns all modes in display order
func Modes() []Mode {
	return []Mode{ModeStandard, ModeFormal, ModeCasual, ModeTechnical}
}

// ParseMode resolves a mode name, ignoring case
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes() {
		if strings.EqualFold(string(m), strings.TrimSpace(s)) {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: unknown mode %q (want one of %s)", ErrInvalidArgument, s, modeList())
}

// IsValid reports whether m is one of the four modes
func (m Mode) IsValid() bool {
	_, ok := instructions[m]
	return ok
}

// Instruction returns the instruction phrase for the mode
func (m Mode) Instruction() (string, error) {
	instruction, ok := instructions[m]
	if !ok {
		return "", fmt.Errorf("%w: unknown mode %q", ErrInvalidArgument, string(m))
	}
	return instruction, nil
}

// String implements pflag.Value
func (m *Mode) String() string {
	return string(*m)
}

// Set implements pflag.Value
func (m *Mode) Set(s string) error {
	parsed, err := ParseMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Type implements pflag.Value
func (m *Mode) Type() string {
	return "mode"
}

func modeList() string {
	names := make([]string, 0, len(instructions))
	for _, m := range Modes() {
		names = append(names, string(m))
	}
	return strings.Join(names, ", ")
}

// Build returns the prompt for translating text into targetLanguage.
// When autoDetect is set the model is first asked to detect the source language;
// only the mode instruction is lower-cased in that form.
func Build(mode Mode, targetLanguage, text string, autoDetect bool) (string, error) {
	instruction, err := mode.Instruction()
	if err != nil {
		return "", err
	}
	if !language.IsValid(targetLanguage) {
		return "", fmt.Errorf("%w: %w: %q", ErrInvalidArgument, language.ErrUnknownLanguage, targetLanguage)
	}

	if autoDetect {
		return fmt.Sprintf("First detect the source language, then %s to %s:\n\n%s",
			strings.ToLower(instruction), targetLanguage, text), nil
	}
	return fmt.Sprintf("%s to %s:\n\n%s", instruction, targetLanguage, text), nil
}
