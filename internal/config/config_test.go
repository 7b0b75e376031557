package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	require.Equal(t, "Data Analyst hiring", cfg.Search.Query)
	require.Equal(t, 40, cfg.Search.MaxPosts)
	require.True(t, cfg.Browser.HeadlessMode)
	require.True(t, cfg.Browser.StealthMode)
	require.Equal(t, "storage_state.json", cfg.Browser.StatePath)
	require.Equal(t, "ollama", cfg.LLM.Provider)
	require.Equal(t, "http://localhost:11434", cfg.LLM.BaseURL)
	require.Equal(t, 60*time.Second, cfg.LLM.Timeout)
	require.Equal(t, "linkedin_data_analyst_posts.xlsx", cfg.Storage.OutputPath)
}

func TestLoadConfigFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
search:
  query: "Business Analyst hiring"
  max_posts: 15
browser:
  headless_mode: false
llm:
  provider: claude
  model: claude-sonnet-4-20250514
storage:
  output_path: out.xlsx
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "Business Analyst hiring", cfg.Search.Query)
	require.Equal(t, 15, cfg.Search.MaxPosts)
	require.False(t, cfg.Browser.HeadlessMode)
	require.Equal(t, "claude", cfg.LLM.Provider)
	require.Equal(t, "out.xlsx", cfg.Storage.OutputPath)
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, "Data Analyst hiring", cfg.Search.Query)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("LINKEDIN_EMAIL", "user@example.com")
	t.Setenv("OLLAMA_HOST", "http://ollama.internal:11434")
	t.Setenv("LLM_RATE_LIMIT", "30")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	require.Equal(t, "user@example.com", cfg.Login.Email)
	require.Equal(t, "http://ollama.internal:11434", cfg.LLM.BaseURL)
	require.Equal(t, 30, cfg.LLM.RateLimit)
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("TEST_SECRET", "hunter2")

	require.Equal(t, "hunter2", expandEnvVars("${TEST_SECRET}"))
	require.Equal(t, "hunter2", expandEnvVars("$TEST_SECRET"))
	require.Equal(t, "${UNSET_VARIABLE_XYZ}", expandEnvVars("${UNSET_VARIABLE_XYZ}"))
}
