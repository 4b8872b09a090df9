// Package export writes a translation to a plain text file.
package export

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

const fileNameLayout = "20060102_150405"

type Document struct {
	Original   string
	Translated string
	Language   string
}

// Content renders the file body
func Content(doc Document) string {
	return fmt.Sprintf("Original: %s\n\nTranslated (%s): %s", doc.Original, doc.Language, doc.Translated)
}

// FileName returns translation_YYYYMMDD_HHMMSS.txt for the given time
func FileName(now time.Time) string {
	return fmt.Sprintf("translation_%s.txt", now.Format(fileNameLayout))
}

// Write stores doc under dir and returns the file path
func Write(fs afero.Fs, dir string, doc Document, now time.Time) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("fs.MkdirAll(%s) > %w", dir, err)
	}

	path := filepath.Join(dir, FileName(now))
	if err := afero.WriteFile(fs, path, []byte(Content(doc)), 0644); err != nil {
		return "", fmt.Errorf("afero.WriteFile(%s) > %w", path, err)
	}
	return path, nil
}
