package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/at-ishikawa/translator/internal/language"
	"github.com/at-ishikawa/translator/internal/session"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// previewLength is how many characters of a history entry are shown
const previewLength = 100

// truncate shortens s to at most n characters, marking the cut with "..."
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

func newTable(headers []string, rows [][]string) *table.Table {
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// RenderHistory writes the latest records. offset is the number of older records
// not shown, so entries keep their position in the full history.
func RenderHistory(w io.Writer, records []session.TranslationRecord, offset int) {
	if len(records) == 0 {
		_, _ = fmt.Fprintln(w, "No translations yet. Start translating to see history here!")
		return
	}

	rows := make([][]string, 0, len(records))
	for i, r := range records {
		rows = append(rows, []string{
			strconv.Itoa(offset + i + 1),
			r.Language,
			string(r.Mode),
			r.Timestamp.Format(session.TimestampLayout),
			truncate(r.Original, previewLength),
			truncate(r.Translated, previewLength),
		})
	}
	_, _ = fmt.Fprintln(w, newTable([]string{"#", "LANGUAGE", "MODE", "TIME", "ORIGINAL", "TRANSLATED"}, rows))
}

func RenderFavorites(w io.Writer, favorites []session.FavoriteRecord) {
	if len(favorites) == 0 {
		_, _ = fmt.Fprintln(w, "No favorites yet. Add translations to favorites to see them here!")
		return
	}

	rows := make([][]string, 0, len(favorites))
	for i, f := range favorites {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			f.Language,
			f.Timestamp.Format(session.TimestampLayout),
			f.Original,
			f.Translated,
		})
	}
	_, _ = fmt.Fprintln(w, newTable([]string{"#", "LANGUAGE", "TIME", "ORIGINAL", "TRANSLATED"}, rows))
}

func RenderStats(w io.Writer, stats session.Stats) {
	_, _ = fmt.Fprintln(w, newTable(
		[]string{"TRANSLATIONS DONE", "LANGUAGES USED", "FAVORITES"},
		[][]string{{
			strconv.Itoa(stats.TranslationCount),
			strconv.Itoa(stats.LanguagesUsed),
			strconv.Itoa(stats.FavoritesCount),
		}},
	))
}

func RenderLanguages(w io.Writer, entries []language.Entry) {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Flag, e.Name, e.Code, e.Region})
	}
	_, _ = fmt.Fprintln(w, newTable([]string{"FLAG", "LANGUAGE", "CODE", "REGION"}, rows))
	_, _ = fmt.Fprintf(w, "Total Languages: %d\n", len(entries))
}
