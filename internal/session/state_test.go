package session

import (
	"testing"
	"time"

	"github.com/at-ishikawa/translator/internal/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestState_RecordTranslation(t *testing.T) {
	now := time.Date(2025, 3, 4, 10, 20, 30, 0, time.UTC)
	state := NewState(WithClock(fixedClock(now)))

	assert.Empty(t, state.History())
	assert.Equal(t, 0, state.TranslationCount())

	languages := []string{"French", "French", "Spanish"}
	for i, lang := range languages {
		record, err := state.RecordTranslation("Hello", "Bonjour", lang, prompt.ModeStandard)
		require.NoError(t, err)
		assert.Equal(t, TranslationRecord{
			Original:   "Hello",
			Translated: "Bonjour",
			Language:   lang,
			Mode:       prompt.ModeStandard,
			Timestamp:  now,
		}, record)

		assert.Len(t, state.History(), i+1)
		assert.Equal(t, len(state.History()), state.TranslationCount())
	}

	assert.Equal(t, 2, state.DistinctLanguagesUsed())
}

func TestState_RecordTranslation_InvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		language string
		mode     prompt.Mode
		wantErr  error
	}{
		{
			name:     "unknown language",
			language: "Klingon",
			mode:     prompt.ModeStandard,
			wantErr:  ErrUnknownLanguage,
		},
		{
			name:     "unknown mode",
			language: "French",
			mode:     prompt.Mode("Poetic"),
			wantErr:  prompt.ErrInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := NewState()
			_, err := state.RecordTranslation("a", "b", tt.language, tt.mode)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, state.History())
			assert.Equal(t, 0, state.TranslationCount())
		})
	}
}

func TestState_Favorites(t *testing.T) {
	state := NewState()

	for _, original := range []string{"one", "two", "three", "three"} {
		_, err := state.AddFavorite(original, original+"-translated", "German")
		require.NoError(t, err)
	}
	assert.Equal(t, 4, state.FavoritesCount())

	_, err := state.AddFavorite("x", "y", "Klingon")
	assert.ErrorIs(t, err, ErrUnknownLanguage)
	assert.Equal(t, 4, state.FavoritesCount())

	require.NoError(t, state.RemoveFavorite(1))
	var got []string
	for _, f := range state.Favorites() {
		got = append(got, f.Original)
	}
	assert.Equal(t, []string{"one", "three", "three"}, got)
}

func TestState_RemoveFavorite(t *testing.T) {
	tests := []struct {
		name    string
		index   int
		want    []string
		wantErr error
	}{
		{name: "first", index: 0, want: []string{"b", "c"}},
		{name: "middle", index: 1, want: []string{"a", "c"}},
		{name: "last", index: 2, want: []string{"a", "b"}},
		{name: "negative", index: -1, want: []string{"a", "b", "c"}, wantErr: ErrIndexOutOfRange},
		{name: "past end", index: 3, want: []string{"a", "b", "c"}, wantErr: ErrIndexOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := NewState()
			for _, s := range []string{"a", "b", "c"} {
				_, err := state.AddFavorite(s, s, "Italian")
				require.NoError(t, err)
			}
			before := state.Favorites()

			err := state.RemoveFavorite(tt.index)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			var got []string
			for _, f := range state.Favorites() {
				got = append(got, f.Original)
			}
			assert.Equal(t, tt.want, got)
			// a copy taken before removal is not affected
			assert.Len(t, before, 3)
			assert.Equal(t, "c", before[2].Original)
		})
	}
}

func TestState_RecentHistory(t *testing.T) {
	state := NewState()
	for i := 0; i < 12; i++ {
		_, err := state.RecordTranslation(string(rune('a'+i)), "x", "Thai", prompt.ModeCasual)
		require.NoError(t, err)
	}

	recent := state.RecentHistory(10)
	require.Len(t, recent, 10)
	assert.Equal(t, "c", recent[0].Original)
	assert.Equal(t, "l", recent[9].Original)

	assert.Len(t, state.RecentHistory(20), 12)
	assert.Nil(t, state.RecentHistory(0))
	assert.Len(t, state.History(), 12)
}

func TestState_Stats(t *testing.T) {
	state := NewState()
	_, err := state.RecordTranslation("a", "b", "Hindi", prompt.ModeFormal)
	require.NoError(t, err)
	_, err = state.RecordTranslation("a", "b", "Hebrew", prompt.ModeFormal)
	require.NoError(t, err)
	_, err = state.AddFavorite("a", "b", "Hindi")
	require.NoError(t, err)

	assert.Equal(t, Stats{TranslationCount: 2, LanguagesUsed: 2, FavoritesCount: 1}, state.Stats())
}

func TestNewState_Independent(t *testing.T) {
	first := NewState()
	second := NewState()

	_, err := first.RecordTranslation("a", "b", "Polish", prompt.ModeStandard)
	require.NoError(t, err)

	assert.Equal(t, 1, first.TranslationCount())
	assert.Equal(t, 0, second.TranslationCount())
}
