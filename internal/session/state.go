// Package session keeps the translation history and favorites of one interactive session.
//
// A State is owned by a single session and is not safe for concurrent use.
// Nothing is persisted; a new State starts empty.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/at-ishikawa/translator/internal/language"
	"github.com/at-ishikawa/translator/internal/prompt"
)

var (
	ErrIndexOutOfRange = errors.New("favorite index out of range")
	ErrUnknownLanguage = errors.New("language is not in the language table")
)

// TimestampLayout is the format timestamps are displayed in
const TimestampLayout = "2006-01-02 15:04:05"

// TranslationRecord is one successful translation
type TranslationRecord struct {
	Original   string      `json:"original" yaml:"original"`
	Translated string      `json:"translated" yaml:"translated"`
	Language   string      `json:"language" yaml:"language"`
	Mode       prompt.Mode `json:"mode" yaml:"mode"`
	Timestamp  time.Time   `json:"timestamp" yaml:"timestamp"`
}

// FavoriteRecord is a translation the user chose to keep
type FavoriteRecord struct {
	Original   string    `json:"original" yaml:"original"`
	Translated string    `json:"translated" yaml:"translated"`
	Language   string    `json:"language" yaml:"language"`
	Timestamp  time.Time `json:"timestamp" yaml:"timestamp"`
}

// Stats is a snapshot of the session counters
type Stats struct {
	TranslationCount int
	LanguagesUsed    int
	FavoritesCount   int
}

type State struct {
	history          []TranslationRecord
	favorites        []FavoriteRecord
	translationCount int
	now              func() time.Time
}

// Option configures a State
type Option func(*State)

// WithClock overrides the clock used for record timestamps
func WithClock(now func() time.Time) Option {
	return func(s *State) {
		s.now = now
	}
}

func NewState(opts ...Option) *State {
	s := &State{
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RecordTranslation appends a translation to the history and increments the translation count
func (s *State) RecordTranslation(original, translated, lang string, mode prompt.Mode) (TranslationRecord, error) {
	if !language.IsValid(lang) {
		return TranslationRecord{}, fmt.Errorf("%w: %q", ErrUnknownLanguage, lang)
	}
	if !mode.IsValid() {
		return TranslationRecord{}, fmt.Errorf("%w: unknown mode %q", prompt.ErrInvalidArgument, string(mode))
	}

	record := TranslationRecord{
		Original:   original,
		Translated: translated,
		Language:   lang,
		Mode:       mode,
		Timestamp:  s.now(),
	}
	s.history = append(s.history, record)
	s.translationCount++
	return record, nil
}

// AddFavorite appends a favorite. Duplicates are allowed.
func (s *State) AddFavorite(original, translated, lang string) (FavoriteRecord, error) {
	if !language.IsValid(lang) {
		return FavoriteRecord{}, fmt.Errorf("%w: %q", ErrUnknownLanguage, lang)
	}

	favorite := FavoriteRecord{
		Original:   original,
		Translated: translated,
		Language:   lang,
		Timestamp:  s.now(),
	}
	s.favorites = append(s.favorites, favorite)
	return favorite, nil
}

// RemoveFavorite removes the favorite at index, keeping the order of the others
func (s *State) RemoveFavorite(index int) error {
	if index < 0 || index >= len(s.favorites) {
		return fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, index, len(s.favorites))
	}
	s.favorites = append(s.favorites[:index:index], s.favorites[index+1:]...)
	return nil
}

// History returns a copy of all translations, oldest first
func (s *State) History() []TranslationRecord {
	result := make([]TranslationRecord, len(s.history))
	copy(result, s.history)
	return result
}

// RecentHistory returns up to n of the latest translations, oldest first
func (s *State) RecentHistory(n int) []TranslationRecord {
	if n <= 0 {
		return nil
	}
	start := len(s.history) - n
	if start < 0 {
		start = 0
	}
	result := make([]TranslationRecord, len(s.history)-start)
	copy(result, s.history[start:])
	return result
}

// Favorites returns a copy of the favorites in insertion order
func (s *State) Favorites() []FavoriteRecord {
	result := make([]FavoriteRecord, len(s.favorites))
	copy(result, s.favorites)
	return result
}

func (s *State) TranslationCount() int {
	return s.translationCount
}

// DistinctLanguagesUsed counts the unique languages across the history
func (s *State) DistinctLanguagesUsed() int {
	seen := make(map[string]struct{})
	for _, record := range s.history {
		seen[record.Language] = struct{}{}
	}
	return len(seen)
}

func (s *State) FavoritesCount() int {
	return len(s.favorites)
}

func (s *State) Stats() Stats {
	return Stats{
		TranslationCount: s.TranslationCount(),
		LanguagesUsed:    s.DistinctLanguagesUsed(),
		FavoritesCount:   s.FavoritesCount(),
	}
}
