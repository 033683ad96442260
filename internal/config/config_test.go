package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(configPathEnv, "")
	t.Setenv(databaseDSNEnv, "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.Browser.PageSize)
	assert.Equal(t, "observed", cfg.Browser.LevelCatalog)
	assert.Equal(t, "strict", cfg.Browser.RangePolicy)
	assert.Equal(t, 300*time.Millisecond, cfg.Browser.Debounce)
	assert.Equal(t, []string{"translated_summary", "english_summary"}, cfg.Fields.TranslatedSummary)
	assert.Equal(t, 150, cfg.Translation.MaxLength)
	assert.Empty(t, cfg.Database.DSN)
}

func TestLoadFileOverlaysDefaults(t *testing.T) {
	t.Setenv(databaseDSNEnv, "")
	path := writeConfig(t, `
browser:
  pageSize: 20
  rangePolicy: permissive
  debounce: 150ms
languages:
  spanish:
    - location: data/es_1.csv
    - format: html
      location: https://example.org/es.html
      options:
        selector: "table.articles"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.Browser.PageSize)
	assert.Equal(t, "permissive", cfg.Browser.RangePolicy)
	assert.Equal(t, "observed", cfg.Browser.LevelCatalog)
	assert.Equal(t, 150*time.Millisecond, cfg.Browser.Debounce)
	require.Len(t, cfg.Languages["spanish"], 2)
	assert.Equal(t, "table.articles", cfg.Languages["spanish"][1].Options["selector"])
	assert.Equal(t, "title", cfg.Fields.Title)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(databaseDSNEnv, "postgres://u:p@db:5432/articles")
	t.Setenv(chatGPTAPIKeyEnv, "sk-test")
	t.Setenv(translationAPIKeyEnv, "lt-key")

	cfg, err := Load(writeConfig(t, "database:\n  dsn: postgres://ignored\n"))
	require.NoError(t, err)

	assert.Equal(t, "postgres://u:p@db:5432/articles", cfg.Database.DSN)
	assert.Equal(t, "sk-test", cfg.Translation.ChatGPT.APIKey)
	assert.Equal(t, "lt-key", cfg.Translation.Fallback.APIKey)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := writeConfig(t, `
browser:
  pageSize: 0
  levelCatalog: sometimes
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "browser.pageSize")
	assert.Contains(t, err.Error(), "browser.levelCatalog")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
