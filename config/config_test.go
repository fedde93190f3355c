package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.OpenRouterBaseURL)
	assert.Equal(t, "anthropic/claude-3-opus:free", cfg.GenerationModel)
	assert.Equal(t, 4000, cfg.MaxOutputTokens)
	assert.Equal(t, "offline_projects.json", cfg.OfflineStorePath)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":9999")
	t.Setenv("OPENROUTER_API_KEY", "test-key")
	t.Setenv("GENERATION_MODEL", "some/other-model")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.ServerAddress)
	assert.Equal(t, "test-key", cfg.OpenRouterKey)
	assert.Equal(t, "some/other-model", cfg.GenerationModel)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
}
