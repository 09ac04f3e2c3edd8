package common

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFromFiles_Defaults(t *testing.T) {
	config, err := LoadFromFiles()
	require.NoError(t, err)

	assert.Equal(t, 8086, config.Server.Port)
	assert.Equal(t, LLMProviderGemini, config.LLM.DefaultProvider)
	assert.Equal(t, 1, config.LLM.MaxRetries)
	assert.Equal(t, 20, config.PDF.MaxSizeMB)
	assert.Equal(t, int64(20<<20), config.MaxPDFBytes())
}

func TestLoadFromFiles_LaterFileWins(t *testing.T) {
	base := writeConfig(t, "base.toml", `
[server]
port = 9000
host = "0.0.0.0"

[llm]
default_provider = "claude"
`)
	override := writeConfig(t, "override.toml", `
[server]
port = 9100

[pdf]
max_size_mb = 5
`)

	config, err := LoadFromFiles(base, override)
	require.NoError(t, err)

	assert.Equal(t, 9100, config.Server.Port)
	assert.Equal(t, "0.0.0.0", config.Server.Host)
	assert.Equal(t, LLMProviderClaude, config.LLM.DefaultProvider)
	assert.Equal(t, int64(5<<20), config.MaxPDFBytes())
}

func TestLoadFromFiles_Errors(t *testing.T) {
	_, err := LoadFromFiles(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	bad := writeConfig(t, "bad.toml", "[server\nport = ")
	_, err = LoadFromFiles(bad)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "failed to parse config file"))
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "brfanalys.toml", "[server]\nport = 9000\n")
	t.Setenv("BRF_SERVER_PORT", "9200")
	t.Setenv("BRF_LLM_PROVIDER", "CLAUDE")
	t.Setenv("BRF_LLM_MAX_RETRIES", "3")
	t.Setenv("BRF_LOG_OUTPUT", "stdout, file")

	config, err := LoadFromFiles(path)
	require.NoError(t, err)

	assert.Equal(t, 9200, config.Server.Port)
	assert.Equal(t, LLMProviderClaude, config.LLM.DefaultProvider)
	assert.Equal(t, 3, config.LLM.MaxRetries)
	assert.Equal(t, []string{"stdout", "file"}, config.Logging.Output)
}

func TestApplyFlagOverrides(t *testing.T) {
	config := NewDefaultConfig()
	ApplyFlagOverrides(config, 0, "")
	assert.Equal(t, 8086, config.Server.Port)

	ApplyFlagOverrides(config, 7000, "127.0.0.1")
	assert.Equal(t, 7000, config.Server.Port)
	assert.Equal(t, "127.0.0.1", config.Server.Host)
}

func TestResolveAPIKey(t *testing.T) {
	t.Setenv("BRF_GEMINI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")

	_, err := ResolveAPIKey("gemini_api_key", "")
	assert.Error(t, err)

	key, err := ResolveAPIKey("gemini_api_key", "from-config")
	require.NoError(t, err)
	assert.Equal(t, "from-config", key)

	t.Setenv("GEMINI_API_KEY", "from-env")
	key, err = ResolveAPIKey("gemini_api_key", "from-config")
	require.NoError(t, err)
	assert.Equal(t, "from-env", key)
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 4*time.Second, ParseDuration("4s", time.Second))
	assert.Equal(t, time.Second, ParseDuration("", time.Second))
	assert.Equal(t, time.Second, ParseDuration("soon", time.Second))
	assert.Equal(t, time.Second, ParseDuration("-2s", time.Second))
}

func TestNewRequestID(t *testing.T) {
	a, b := NewRequestID(), NewRequestID()
	assert.True(t, strings.HasPrefix(a, "ana_"))
	assert.NotEqual(t, a, b)
}
