package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ".draftguard/draftguard.db", cfg.DatabasePath)
	assert.Equal(t, 10*time.Second, cfg.ScorerTimeout)
	assert.Equal(t, 7*24*time.Hour, cfg.SuggestionCooldown)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().ScorerURL, cfg.ScorerURL)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
database_path: /tmp/dg.db
scorer_url: http://localhost:9000
scorer_timeout: 5s
suggestion_cooldown: 72h
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/dg.db", cfg.DatabasePath)
	assert.Equal(t, "http://localhost:9000", cfg.ScorerURL)
	assert.Equal(t, 5*time.Second, cfg.ScorerTimeout)
	assert.Equal(t, 72*time.Hour, cfg.SuggestionCooldown)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadNegativeCooldownRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("suggestion_cooldown: -1h"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DRAFTGUARD_DB", "/elsewhere/dg.db")
	t.Setenv("DRAFTGUARD_SCORER_URL", "http://scorer:1234")
	t.Setenv("DRAFTGUARD_SUGGESTION_COOLDOWN", "24h")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "/elsewhere/dg.db", cfg.DatabasePath)
	assert.Equal(t, "http://scorer:1234", cfg.ScorerURL)
	assert.Equal(t, 24*time.Hour, cfg.SuggestionCooldown)
}

func TestEnvInvalidCooldownIgnored(t *testing.T) {
	t.Setenv("DRAFTGUARD_SUGGESTION_COOLDOWN", "soon")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().SuggestionCooldown, cfg.SuggestionCooldown)
}
