// Package translator runs one translate action: validate the input, build the prompt,
// call the model once and record the result in the session.
package translator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/at-ishikawa/translator/internal/inference"
	"github.com/at-ishikawa/translator/internal/language"
	"github.com/at-ishikawa/translator/internal/prompt"
	"github.com/at-ishikawa/translator/internal/session"
)

const (
	// MaxTextLength is the maximum number of characters accepted per translation
	MaxTextLength = 5000

	DefaultTimeout = 30 * time.Second
)

var (
	ErrEmptyText   = errors.New("please enter text to translate")
	ErrTextTooLong = fmt.Errorf("text too long, please limit to %d characters", MaxTextLength)
)

// ValidationError is returned when the input is rejected before calling the model
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

type Request struct {
	Mode           prompt.Mode
	TargetLanguage string
	Text           string
	AutoDetect     bool
	// Pronunciation asks whether a pronunciation guide should be offered for the result
	Pronunciation bool
}

type Result struct {
	Record   session.TranslationRecord
	Language language.Entry
	Prompt   string
	// PronunciationAvailable is set when a guide was requested and the language has one
	PronunciationAvailable bool
}

type Service struct {
	client  inference.Client
	state   *session.State
	timeout time.Duration
}

func NewService(client inference.Client, state *session.State, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{
		client:  client,
		state:   state,
		timeout: timeout,
	}
}

// State returns the session state the service records into
func (s *Service) State() *session.State {
	return s.state
}

// CharacterCount counts characters the way the length limit does
func CharacterCount(text string) int {
	return utf8.RuneCountInString(text)
}

// Validate checks a request without calling the model
func Validate(req Request) (language.Entry, error) {
	if strings.TrimSpace(req.Text) == "" {
		return language.Entry{}, &ValidationError{Err: ErrEmptyText}
	}
	if count := CharacterCount(req.Text); count > MaxTextLength {
		return language.Entry{}, &ValidationError{Err: fmt.Errorf("%w (got %d)", ErrTextTooLong, count)}
	}
	if !req.Mode.IsValid() {
		return language.Entry{}, &ValidationError{Err: fmt.Errorf("%w: unknown mode %q", prompt.ErrInvalidArgument, string(req.Mode))}
	}
	entry, ok := language.Lookup(req.TargetLanguage)
	if !ok {
		return language.Entry{}, &ValidationError{Err: fmt.Errorf("%w: %w: %q", prompt.ErrInvalidArgument, language.ErrUnknownLanguage, req.TargetLanguage)}
	}
	return entry, nil
}

// Translate performs a single attempt. The session is only changed on success.
func (s *Service) Translate(ctx context.Context, req Request) (Result, error) {
	entry, err := Validate(req)
	if err != nil {
		return Result{}, err
	}

	text, err := prompt.Build(req.Mode, entry.Name, req.Text, req.AutoDetect)
	if err != nil {
		return Result{}, &ValidationError{Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	startTime := time.Now()
	translated, err := s.client.Generate(ctx, text)
	if err != nil {
		slog.Default().Warn("translation failed",
			"language", entry.Name,
			"mode", req.Mode,
			"elapsed", time.Since(startTime),
			"error", err,
		)
		return Result{}, fmt.Errorf("client.Generate() > %w", err)
	}
	if strings.TrimSpace(translated) == "" {
		return Result{}, fmt.Errorf("client.Generate() > %w", inference.NewMalformedError("empty translation"))
	}
	slog.Default().Debug("translation finished",
		"language", entry.Name,
		"mode", req.Mode,
		"characters", CharacterCount(req.Text),
		"elapsed", time.Since(startTime),
	)

	record, err := s.state.RecordTranslation(req.Text, translated, entry.Name, req.Mode)
	if err != nil {
		return Result{}, fmt.Errorf("state.RecordTranslation() > %w", err)
	}

	return Result{
		Record:                 record,
		Language:               entry,
		Prompt:                 text,
		PronunciationAvailable: req.Pronunciation && language.HasPronunciationGuide(entry.Name),
	}, nil
}
