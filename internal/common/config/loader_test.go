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

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "HUGGINGFACE_API_KEY", "GEMINI_API_KEY", "DB_USER", "DB_PASSWORD", "REDIS_ADDRESS"} {
		t.Setenv(key, "")
	}
}

func TestLoadFromFile_Defaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
app:
  name: grocery-assistant
  version: 1.0.0
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.Server.Address)
	assert.Equal(t, 5, cfg.Server.RateLimit)
	assert.Equal(t, 20, cfg.Server.Burst)
	assert.Equal(t, 3000, cfg.APIs.Pricing.Timeout)
	assert.Equal(t, 5000, cfg.APIs.Suggestion.Timeout)
	assert.Equal(t, "google/flan-t5-small", cfg.APIs.LLM.Model)
	assert.Equal(t, CatalogSourceBuiltin, cfg.Assistant.CatalogSource)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.APIs.LLM.LLMEnabled())
}

func TestLoadFromFile_EnvExpansionAndOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TEST_GEMINI_KEY", "secret-key")
	t.Setenv("PORT", "7070")

	path := writeConfig(t, `
apis:
  llm:
    provider: gemini
    api_key: ${TEST_GEMINI_KEY}
workers:
  interpret-command:
    enabled: true
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Address)
	assert.Equal(t, "secret-key", cfg.APIs.LLM.APIKey)
	assert.Equal(t, "gemini-1.5-flash", cfg.APIs.LLM.Model)
	assert.True(t, cfg.APIs.LLM.LLMEnabled())

	wcfg := GetWorkerConfig(cfg, "interpret-command")
	assert.True(t, wcfg.Enabled)
	assert.Equal(t, 5, wcfg.MaxJobsActive)
	assert.Equal(t, 30000, wcfg.Timeout)
	assert.True(t, IsWorkerEnabled(cfg, "unknown-worker"))
}

func TestLoadFromFile_HuggingFaceKeyFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("HUGGINGFACE_API_KEY", "hf-key")

	cfg, err := LoadFromFile(writeConfig(t, "app:\n  name: test\n"))
	require.NoError(t, err)

	assert.Equal(t, ProviderHuggingFace, cfg.APIs.LLM.Provider)
	assert.Equal(t, "hf-key", cfg.APIs.LLM.APIKey)
}

func TestLoadFromFile_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "unknown llm provider",
			body:    "apis:\n  llm:\n    provider: openai\n",
			wantErr: "apis.llm.provider",
		},
		{
			name:    "postgres catalog without postgres",
			body:    "assistant:\n  catalog_source: postgres\n",
			wantErr: "requires database.postgres.enabled",
		},
		{
			name:    "file catalog without path",
			body:    "assistant:\n  catalog_source: file\n",
			wantErr: "assistant.catalog_file",
		},
		{
			name:    "postgres enabled without host",
			body:    "database:\n  postgres:\n    enabled: true\n",
			wantErr: "database.postgres.host",
		},
		{
			name:    "elasticsearch enabled without addresses",
			body:    "database:\n  elasticsearch:\n    enabled: true\n",
			wantErr: "database.elasticsearch.addresses",
		},
		{
			name:    "redis enabled without address",
			body:    "database:\n  redis:\n    enabled: true\n",
			wantErr: "database.redis.address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidateWorkers(t *testing.T) {
	assert.Error(t, ValidateWorkers(&Config{}))
	assert.NoError(t, ValidateWorkers(&Config{Camunda: CamundaConfig{BrokerAddress: "localhost:26500"}}))
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 1500*time.Millisecond, GetDuration(1500))
	assert.Equal(t, time.Duration(0), GetDuration(0))
}
