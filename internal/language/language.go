// Package language holds the static table of target languages offered to the user.
package language

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownLanguage is returned when a name is not present in the table
var ErrUnknownLanguage = errors.New("unknown language")

// Entry describes one target language
type Entry struct {
	Name   string `json:"name" yaml:"name"`
	Flag   string `json:"flag" yaml:"flag"`
	Code   string `json:"code" yaml:"code"`
	Region string `json:"region" yaml:"region"`
}

// Label is the display form used in language pickers, e.g. "🇫🇷 French (France)"
func (e Entry) Label() string {
	return fmt.Sprintf("%s %s (%s)", e.Flag, e.Name, e.Region)
}

var entries = []Entry{
	{Name: "Urdu", Flag: "🇵🇰", Code: "ur", Region: "Pakistan/India"},
	{Name: "French", Flag: "🇫🇷", Code: "fr", Region: "France"},
	{Name: "Spanish", Flag: "🇪🇸", Code: "es", Region: "Spain"},
	{Name: "German", Flag: "🇩🇪", Code: "de", Region: "Germany"},
	{Name: "Chinese", Flag: "🇨🇳", Code: "zh", Region: "China"},
	{Name: "Japanese", Flag: "🇯🇵", Code: "ja", Region: "Japan"},
	{Name: "Korean", Flag: "🇰🇷", Code: "ko", Region: "South Korea"},
	{Name: "Arabic", Flag: "🇸🇦", Code: "ar", Region: "Saudi Arabia"},
	{Name: "Portuguese", Flag: "🇵🇹", Code: "pt", Region: "Portugal"},
	{Name: "Russian", Flag: "🇷🇺", Code: "ru", Region: "Russia"},
	{Name: "Hindi", Flag: "🇮🇳", Code: "hi", Region: "India"},
	{Name: "Bengali", Flag: "🇧🇩", Code: "bn", Region: "Bangladesh"},
	{Name: "Turkish", Flag: "🇹🇷", Code: "tr", Region: "Turkey"},
	{Name: "Italian", Flag: "🇮🇹", Code: "it", Region: "Italy"},
	{Name: "Dutch", Flag: "🇳🇱", Code: "nl", Region: "Netherlands"},
	{Name: "Greek", Flag: "🇬🇷", Code: "el", Region: "Greece"},
	{Name: "Polish", Flag: "🇵🇱", Code: "pl", Region: "Poland"},
	{Name: "Swedish", Flag: "🇸🇪", Code: "sv", Region: "Sweden"},
	{Name: "Thai", Flag: "🇹🇭", Code: "th", Region: "Thailand"},
	{Name: "Vietnamese", Flag: "🇻🇳", Code: "vi", Region: "Vietnam"},
	{Name: "Hebrew", Flag: "🇮🇱", Code: "he", Region: "Israel"},
	{Name: "Malay", Flag: "🇲🇾", Code: "ms", Region: "Malaysia"},
	{Name: "Czech", Flag: "🇨🇿", Code: "cs", Region: "Czech Republic"},
	{Name: "Romanian", Flag: "🇷🇴", Code: "ro", Region: "Romania"},
	{Name: "Finnish", Flag: "🇫🇮", Code: "fi", Region: "Finland"},
}

// Popular languages get one-key shortcuts in the translate form
var popular = []string{"Urdu", "French", "Spanish", "German", "Chinese", "Arabic", "Hindi"}

// Languages for which a pronunciation guide can be requested
var pronunciation = []string{"Chinese", "Japanese", "Korean", "Arabic", "Hindi"}

var byName = mustIndex(entries)

// mustIndex builds the name index and panics on a malformed table.
func mustIndex(list []Entry) map[string]Entry {
	index, err := buildIndex(list)
	if err != nil {
		panic(err)
	}
	for _, names := range [][]string{popular, pronunciation} {
		for _, name := range names {
			if _, ok := index[name]; !ok {
				panic(fmt.Sprintf("language %q is not in the language table", name))
			}
		}
	}
	return index
}

func buildIndex(list []Entry) (map[string]Entry, error) {
	index := make(map[string]Entry, len(list))
	codes := make(map[string]struct{}, len(list))
	for i, e := range list {
		if e.Name == "" || e.Code == "" {
			return nil, fmt.Errorf("language entry %d has an empty name or code", i)
		}
		if _, ok := index[e.Name]; ok {
			return nil, fmt.Errorf("duplicate language name %q", e.Name)
		}
		if _, ok := codes[e.Code]; ok {
			return nil, fmt.Errorf("duplicate language code %q", e.Code)
		}
		index[e.Name] = e
		codes[e.Code] = struct{}{}
	}
	return index, nil
}

// All returns every entry in table order
func All() []Entry {
	result := make([]Entry, len(entries))
	copy(result, entries)
	return result
}

// Names returns the language names in table order
func Names() []string {
	result := make([]string, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.Name)
	}
	return result
}

// Popular returns the shortcut languages
func Popular() []Entry {
	result := make([]Entry, 0, len(popular))
	for _, name := range popular {
		result = append(result, byName[name])
	}
	return result
}

// Lookup finds an entry by its exact name
func Lookup(name string) (Entry, bool) {
	e, ok := byName[name]
	return e, ok
}

// Find resolves a user supplied name or ISO code, ignoring case.
func Find(query string) (Entry, error) {
	query = strings.TrimSpace(query)
	if e, ok := byName[query]; ok {
		return e, nil
	}
	for _, e := range entries {
		if strings.EqualFold(e.Name, query) || strings.EqualFold(e.Code, query) {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("%w: %q", ErrUnknownLanguage, query)
}

// IsValid reports whether name is a key of the table
func IsValid(name string) bool {
	_, ok := byName[name]
	return ok
}

// HasPronunciationGuide reports whether a pronunciation guide is offered for the language
func HasPronunciationGuide(name string) bool {
	for _, n := range pronunciation {
		if n == name {
			return true
		}
	}
	return false
}
