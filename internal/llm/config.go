package llm

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
	ProviderBedrock   = "bedrock"
	ProviderOllama    = "ollama"
)

// Default models per provider, used when no model is configured.
var defaultModels = map[string]string{
	ProviderGemini:    "gemini-2.5-flash",
	ProviderAnthropic: "claude-sonnet-4-5",
	ProviderBedrock:   "anthropic.claude-3-5-sonnet-20241022-v2:0",
	ProviderOllama:    "llama3.2",
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Provider     string
	Model        string
	APIKey       string
	Endpoint     string // base URL override; required for ollama
	Region       string // bedrock only
	Temperature  float64
	MaxTokens    int
	TimeoutMs    int // 0 leaves the transport default in place
	StrictSchema bool
	LogCalls     bool
}

// DefaultConfig returns an LLMConfig with the analysis defaults:
// Gemini with a low sampling temperature and no local timeout.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Provider:     ProviderGemini,
		Model:        defaultModels[ProviderGemini],
		Region:       "us-east-1",
		Temperature:  0.2,
		MaxTokens:    2048,
		TimeoutMs:    0,
		StrictSchema: true,
	}
}

// LoadConfig reads LLM configuration from v. Keys live under "llm." and are
// bound to MAC_LLM_* environment variables; the credential also accepts
// API_KEY and the provider's conventional variable.
func LoadConfig(v *viper.Viper) LLMConfig {
	if v == nil {
		v = viper.New()
	}
	def := DefaultConfig()

	v.SetEnvPrefix("MAC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("llm.provider", def.Provider)
	v.SetDefault("llm.region", def.Region)
	v.SetDefault("llm.temperature", def.Temperature)
	v.SetDefault("llm.max_tokens", def.MaxTokens)
	v.SetDefault("llm.timeout_ms", def.TimeoutMs)
	v.SetDefault("llm.strict_schema", def.StrictSchema)
	v.SetDefault("llm.log_calls", def.LogCalls)

	_ = v.BindEnv("llm.api_key", "MAC_LLM_API_KEY", "API_KEY")
	_ = v.BindEnv("providers.gemini.api_key", "GEMINI_API_KEY", "GOOGLE_API_KEY")
	_ = v.BindEnv("providers.anthropic.api_key", "ANTHROPIC_API_KEY")
	_ = v.BindEnv("llm.region", "MAC_LLM_REGION", "AWS_REGION")

	cfg := LLMConfig{
		Provider:     strings.ToLower(strings.TrimSpace(v.GetString("llm.provider"))),
		Model:        strings.TrimSpace(v.GetString("llm.model")),
		APIKey:       strings.TrimSpace(v.GetString("llm.api_key")),
		Endpoint:     strings.TrimRight(strings.TrimSpace(v.GetString("llm.endpoint")), "/"),
		Region:       v.GetString("llm.region"),
		Temperature:  v.GetFloat64("llm.temperature"),
		MaxTokens:    v.GetInt("llm.max_tokens"),
		TimeoutMs:    v.GetInt("llm.timeout_ms"),
		StrictSchema: v.GetBool("llm.strict_schema"),
		LogCalls:     v.GetBool("llm.log_calls"),
	}

	if cfg.Provider == "" {
		cfg.Provider = def.Provider
	}
	if cfg.APIKey == "" {
		cfg.APIKey = strings.TrimSpace(v.GetString("providers." + cfg.Provider + ".api_key"))
	}
	if cfg.Temperature < 0 || cfg.Temperature > 2 {
		cfg.Temperature = def.Temperature
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = def.MaxTokens
	}
	if cfg.TimeoutMs < 0 {
		cfg.TimeoutMs = 0
	}

	return cfg.withProviderDefaults()
}

// withProviderDefaults fills in the provider-specific model and endpoint.
func (c LLMConfig) withProviderDefaults() LLMConfig {
	if c.Model == "" {
		c.Model = defaultModels[c.Provider]
	}
	if c.Provider == ProviderOllama && c.Endpoint == "" {
		c.Endpoint = "http://localhost:11434"
	}
	return c
}

// RequiresAPIKey reports whether the provider authenticates with a static key.
// Bedrock relies on the AWS credential chain and ollama needs none.
func (c LLMConfig) RequiresAPIKey() bool {
	return c.Provider == ProviderGemini || c.Provider == ProviderAnthropic
}

// HasCredential reports whether the configuration can authenticate, which
// is detectable at startup without contacting the provider.
func (c LLMConfig) HasCredential() bool {
	return !c.RequiresAPIKey() || c.APIKey != ""
}

func providerLabel(provider, model string) string {
	if model == "" {
		return provider
	}
	return fmt.Sprintf("%s (%s)", provider, model)
}
