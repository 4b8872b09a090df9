package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/at-ishikawa/translator/internal/config"
	"github.com/at-ishikawa/translator/internal/language"
	"github.com/at-ishikawa/translator/internal/prompt"
	"github.com/at-ishikawa/translator/internal/session"
	"github.com/at-ishikawa/translator/internal/testutil"
	"github.com/at-ishikawa/translator/internal/translator"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func setConfigFile(t *testing.T, path string) {
	t.Helper()
	original := configFile
	configFile = path
	t.Cleanup(func() { configFile = original })
}

// isolate runs the test in an empty directory without provider variables
func isolate(t *testing.T) string {
	t.Helper()
	testutil.ClearProviderEnv(t)
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func newGeminiServer(t *testing.T, answer string, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "fake-key-for-testing", r.Header.Get("x-goog-api-key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":` + jsonString(t, answer) + `}]},"finishReason":"STOP"}]}`))
	}))
	t.Cleanup(server.Close)
	return server
}

func jsonString(t *testing.T, s string) string {
	t.Helper()
	b, err := json.Marshal(s)
	require.NoError(t, err)
	return string(b)
}

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		debugMode bool
		wantLevel slog.Level
	}{
		{
			name:      "debug mode enabled",
			debugMode: true,
			wantLevel: slog.LevelDebug,
		},
		{
			name:      "debug mode disabled",
			debugMode: false,
			wantLevel: slog.LevelInfo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupLogger(tt.debugMode)
			logger := slog.Default()
			assert.NotNil(t, logger)
			assert.Equal(t, tt.wantLevel <= slog.LevelDebug, logger.Enabled(context.Background(), slog.LevelDebug))
			assert.True(t, logger.Enabled(context.Background(), slog.LevelInfo))
		})
	}
}

func TestNewRootCommand(t *testing.T) {
	cmd := newRootCommand()

	assert.Equal(t, "translator", cmd.Use)
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("debug"))

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"session", "translate", "languages"}, names)
}

func TestNewTranslateCommand(t *testing.T) {
	cmd := newTranslateCommand()

	assert.Equal(t, "translate [text]", cmd.Use)
	assert.NotNil(t, cmd.RunE)
	for _, name := range []string{"to", "mode", "detect", "pronunciation", "export", "output"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "flag %s", name)
	}
	assert.Equal(t, "mode", cmd.Flags().Lookup("mode").Value.Type())
}

func TestNewTranslateCommand_LanguageCompletion(t *testing.T) {
	cmd := newTranslateCommand()

	complete, ok := cmd.GetFlagCompletionFunc("to")
	require.True(t, ok)
	got, directive := complete(cmd, nil, "")
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
	require.Len(t, got, len(language.All()))
	assert.Equal(t, "Urdu", got[0])
	assert.Contains(t, got, "Finnish")
}

func TestNewTranslateCommand_RunE(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name              string
		args              []string
		stdin             string
		answer            string
		withAPIKey        bool
		wantOutput        []string
		wantErrorContains string
		wantCalls         int32
	}{
		{
			name:       "text from arguments",
			args:       []string{"--to", "fr", "Good", "morning"},
			answer:     "Bonjour",
			withAPIKey: true,
			wantOutput: []string{"✅ Translated to 🇫🇷 French:", "Bonjour"},
			wantCalls:  1,
		},
		{
			name:       "text from stdin with default language",
			args:       []string{"--pronunciation"},
			stdin:      "Thank you\n",
			answer:     "شکریہ",
			withAPIKey: true,
			wantOutput: []string{"✅ Translated to 🇵🇰 Urdu:", "شکریہ"},
			wantCalls:  1,
		},
		{
			name:       "pronunciation hint",
			args:       []string{"--to", "Japanese", "--pronunciation", "Thanks"},
			answer:     "ありがとう",
			withAPIKey: true,
			wantOutput: []string{"💡 Pronunciation guide available for this language"},
			wantCalls:  1,
		},
		{
			name:              "missing api key",
			args:              []string{"Hello"},
			wantErrorContains: "GEMINI_API_KEY",
		},
		{
			name:              "missing api key is reported before invalid text",
			args:              []string{"   "},
			wantErrorContains: "GEMINI_API_KEY",
		},
		{
			name:              "empty text is rejected before calling the model",
			args:              []string{"   "},
			withAPIKey:        true,
			wantErrorContains: "please enter text to translate",
		},
		{
			name:              "too long text",
			args:              []string{strings.Repeat("a", translator.MaxTextLength+1)},
			withAPIKey:        true,
			wantErrorContains: "text too long",
		},
		{
			name:              "unknown language",
			args:              []string{"--to", "Klingon", "Hello"},
			withAPIKey:        true,
			wantErrorContains: "unknown language",
		},
		{
			name:              "unknown mode",
			args:              []string{"--mode", "poetic", "Hello"},
			withAPIKey:        true,
			wantErrorContains: "unknown mode",
		},
		{
			name:              "unknown output format",
			args:              []string{"--output", "xml", "Hello"},
			withAPIKey:        true,
			wantErrorContains: `unknown output format "xml"`,
		},
		{
			name:              "blank answer",
			args:              []string{"Hello"},
			answer:            "  ",
			withAPIKey:        true,
			wantErrorContains: "translation error",
			wantCalls:         1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := isolate(t)
			var calls atomic.Int32
			server := newGeminiServer(t, tt.answer, &calls)

			cfgPath := testutil.SetupTestConfig(t, tmpDir)
			if tt.withAPIKey {
				cfgPath = testutil.SetupTestConfigWithAPIKey(t, tmpDir, server.URL)
			}
			setConfigFile(t, cfgPath)

			var stdout, stderr bytes.Buffer
			cmd := newTranslateCommand()
			cmd.SetArgs(tt.args)
			cmd.SetIn(strings.NewReader(tt.stdin))
			cmd.SetOut(&stdout)
			cmd.SetErr(&stderr)
			err := cmd.Execute()

			assert.Equal(t, tt.wantCalls, calls.Load())
			if tt.wantErrorContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrorContains)
				return
			}
			require.NoError(t, err)
			for _, want := range tt.wantOutput {
				assert.Contains(t, stdout.String(), want)
			}
		})
	}
}

func TestNewTranslateCommand_RunE_MissingAPIKeyIsConfigurationError(t *testing.T) {
	tmpDir := isolate(t)
	setConfigFile(t, testutil.SetupTestConfig(t, tmpDir))

	cmd := newTranslateCommand()
	cmd.SetArgs([]string{"--to", "Klingon", ""})
	cmd.SetOut(&bytes.Buffer{})
	err := cmd.Execute()

	var configErr *config.ConfigurationError
	require.ErrorAs(t, err, &configErr)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestNewTranslateCommand_RunE_ExportAndYAML(t *testing.T) {
	tmpDir := isolate(t)
	var calls atomic.Int32
	server := newGeminiServer(t, "Hola", &calls)
	setConfigFile(t, testutil.SetupTestConfigWithAPIKey(t, tmpDir, server.URL))

	exportDir := filepath.Join(tmpDir, "downloads")
	var stdout bytes.Buffer
	cmd := newTranslateCommand()
	cmd.SetArgs([]string{"--to", "Spanish", "--mode", "casual", "--export", exportDir, "--output", "yaml", "Hi"})
	cmd.SetOut(&stdout)
	require.NoError(t, cmd.Execute())

	var got translateOutput
	require.NoError(t, yaml.Unmarshal(stdout.Bytes(), &got))
	assert.Equal(t, "Hi", got.Original)
	assert.Equal(t, "Hola", got.Translated)
	assert.Equal(t, "Spanish", got.Language)
	assert.Equal(t, prompt.ModeCasual, got.Mode)
	require.NotEmpty(t, got.ExportPath)
	assert.Equal(t, exportDir, filepath.Dir(got.ExportPath))

	content, err := os.ReadFile(got.ExportPath)
	require.NoError(t, err)
	assert.Equal(t, "Original: Hi\n\nTranslated (Spanish): Hola", string(content))
}

func TestWriteResult(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	french, ok := language.Lookup("French")
	require.True(t, ok)
	timestamp := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	result := translator.Result{
		Record: session.TranslationRecord{
			Original:   "Hello",
			Translated: "Bonjour",
			Language:   "French",
			Mode:       prompt.ModeStandard,
			Timestamp:  timestamp,
		},
		Language: french,
	}

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeResult(&buf, outputText, result, "out/translation.txt"))
		assert.Equal(t, "✅ Translated to 🇫🇷 French:\nBonjour\n📥 Saved to out/translation.txt\n", buf.String())
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeResult(&buf, outputJSON, result, ""))
		assert.JSONEq(t, `{
			"original": "Hello",
			"translated": "Bonjour",
			"language": "French",
			"mode": "Standard",
			"timestamp": "2025-01-02T03:04:05Z",
			"pronunciation_available": false
		}`, buf.String())
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeResult(&buf, outputYAML, result, ""))
		assert.Contains(t, buf.String(), "translated: Bonjour\n")
		assert.NotContains(t, buf.String(), "export_path")
	})

	t.Run("unknown", func(t *testing.T) {
		assert.Error(t, writeResult(&bytes.Buffer{}, "xml", result, ""))
	})
}

func TestReadText(t *testing.T) {
	got, err := readText(strings.NewReader("ignored"), []string{"Hello", "world"})
	require.NoError(t, err)
	assert.Equal(t, "Hello world", got)

	got, err = readText(strings.NewReader("line one\nline two\n"), nil)
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", got)
}

func TestNewLanguagesCommand(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantTotal int
	}{
		{name: "all", wantTotal: len(language.All())},
		{name: "popular", args: []string{"--popular"}, wantTotal: len(language.Popular())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout bytes.Buffer
			cmd := newLanguagesCommand()
			cmd.SetArgs(tt.args)
			cmd.SetOut(&stdout)
			require.NoError(t, cmd.Execute())
			assert.Contains(t, stdout.String(), "Total Languages: "+strconv.Itoa(tt.wantTotal))
		})
	}
}

func TestNewSessionCommand_RunE(t *testing.T) {
	t.Run("missing api key", func(t *testing.T) {
		tmpDir := isolate(t)
		setConfigFile(t, testutil.SetupTestConfig(t, tmpDir))

		cmd := newSessionCommand()
		cmd.SetArgs([]string{"--line"})
		err := cmd.Execute()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "GEMINI_API_KEY")
	})

	t.Run("broken config", func(t *testing.T) {
		tmpDir := isolate(t)
		cfgPath := filepath.Join(tmpDir, "config.yml")
		require.NoError(t, os.WriteFile(cfgPath, []byte("translation: [[["), 0644))
		setConfigFile(t, cfgPath)

		cmd := newSessionCommand()
		cmd.SetArgs([]string{"--line"})
		err := cmd.Execute()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuration")
	})

	t.Run("line session", func(t *testing.T) {
		color.NoColor = true
		defer func() { color.NoColor = false }()

		tmpDir := isolate(t)
		var calls atomic.Int32
		server := newGeminiServer(t, "Bonjour", &calls)
		setConfigFile(t, testutil.SetupTestConfigWithAPIKey(t, tmpDir, server.URL))

		input := strings.Join([]string{"translate", "French", "", "", "", "Hello", ".", "export", "stats", "quit"}, "\n") + "\n"
		var stdout bytes.Buffer
		cmd := newSessionCommand()
		cmd.SetArgs([]string{"--line"})
		cmd.SetIn(strings.NewReader(input))
		cmd.SetOut(&stdout)
		require.NoError(t, cmd.Execute())

		assert.Equal(t, int32(1), calls.Load())
		assert.Contains(t, stdout.String(), "🌍 Translation session started!")
		assert.Contains(t, stdout.String(), "Bonjour")

		files, err := os.ReadDir(filepath.Join(tmpDir, "exports"))
		require.NoError(t, err)
		require.Len(t, files, 1)
		assert.True(t, strings.HasPrefix(files[0].Name(), "translation_"))
	})
}
