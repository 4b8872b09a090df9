// Package testutil provides shared test helpers for creating config files.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// SetupTestConfig creates a minimal config file and the export directory for testing.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	exportDir := filepath.Join(tmpDir, "exports")
	require.NoError(t, os.MkdirAll(exportDir, 0755))

	configContent := fmt.Sprintf(`translation:
  timeout: 5s
  requests_per_minute: 0
export:
  directory: %s
`,
		exportDir,
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// SetupTestConfigWithAPIKey creates a config file with a fake Gemini API key pointing
// the client at baseURL, for tests that run a translation against a test server.
func SetupTestConfigWithAPIKey(t *testing.T, tmpDir, baseURL string) string {
	t.Helper()
	cfgPath := SetupTestConfig(t, tmpDir)

	content, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	content = append(content, fmt.Appendf(nil, "gemini:\n  api_key: fake-key-for-testing\n  model: gemini-1.5-flash\n  base_url: %s\n", baseURL)...)
	require.NoError(t, os.WriteFile(cfgPath, content, 0644))
	return cfgPath
}

// ClearProviderEnv unsets the provider environment variables for the duration of the test
func ClearProviderEnv(t *testing.T) {
	t.Helper()
	for _, env := range []string{"TRANSLATOR_PROVIDER", "GEMINI_API_KEY", "GEMINI_MODEL", "OPENAI_API_KEY", "OPENAI_MODEL"} {
		t.Setenv(env, "")
		require.NoError(t, os.Unsetenv(env))
	}
}
