package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/guilhermeluismatos9483-blip/Sistema/internal/llm"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
log_file = "/tmp/mac.log"

[llm]
provider = "anthropic"
model = "claude-haiku-4-5"
api_key = "sk-file"
timeout_ms = 30000
strict_schema = false

[slack]
bot_token = "xoxb-file"
channel = "C-TRIAGE"

[slack.channels]
"Suporte ao Cliente" = "C-SUP"
"Time de Produto" = "C-PROD"
`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FromFile(t *testing.T) {
	cfg, err := Load(viper.New(), writeFile(t, sampleConfig))
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.FilePath)
	assert.Equal(t, "/tmp/mac.log", cfg.LogFile)
	assert.Equal(t, llm.ProviderAnthropic, cfg.LLM.Provider)
	assert.Equal(t, "claude-haiku-4-5", cfg.LLM.Model)
	assert.Equal(t, "sk-file", cfg.LLM.APIKey)
	assert.Equal(t, 30000, cfg.LLM.TimeoutMs)
	assert.False(t, cfg.LLM.StrictSchema)

	assert.Equal(t, "xoxb-file", cfg.Slack.BotToken)
	assert.Equal(t, "C-TRIAGE", cfg.Slack.Fallback)
	assert.Equal(t, "C-SUP", cfg.Slack.Channels["suporte ao cliente"])
	assert.True(t, cfg.Slack.Enabled())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("MAC_LLM_MODEL", "claude-opus-4-1")
	t.Setenv("MAC_SLACK_CHANNEL", "C-ENV")

	cfg, err := Load(viper.New(), writeFile(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "claude-opus-4-1", cfg.LLM.Model)
	assert.Equal(t, "C-ENV", cfg.Slack.Fallback)
}

func TestLoad_MissingFileIsNotAnError(t *testing.T) {
	cfg, err := Load(viper.New(), filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	assert.Empty(t, cfg.FilePath)
	assert.Equal(t, llm.ProviderGemini, cfg.LLM.Provider)
}

func TestLoad_MalformedFile(t *testing.T) {
	_, err := Load(viper.New(), writeFile(t, "[llm\nprovider = "))
	assert.Error(t, err)
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("MAC_CONFIG", "/etc/mac.toml")
	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "/etc/mac.toml", p)
}

func TestWriteDefault_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	require.NoError(t, WriteDefault(path, false))
	assert.Error(t, WriteDefault(path, false))
	require.NoError(t, WriteDefault(path, true))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded fileSchema
	require.NoError(t, toml.Unmarshal(data, &decoded))
	assert.Equal(t, llm.ProviderGemini, decoded.LLM.Provider)
	assert.True(t, decoded.LLM.StrictSchema)

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.FilePath)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.Model)
}

func TestRedacted(t *testing.T) {
	cfg := Config{}
	cfg.LLM.APIKey = "AIzaSyExampleKey"
	cfg.Slack.BotToken = "short"

	r := cfg.Redacted()

	assert.Equal(t, "AIza****", r.LLM.APIKey)
	assert.Equal(t, "****", r.Slack.BotToken)
	assert.Equal(t, "AIzaSyExampleKey", cfg.LLM.APIKey)

	data, err := EncodeTOML(r)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "AIzaSyExampleKey")
}
