// Package config assembles process configuration from the environment and
// an optional TOML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/guilhermeluismatos9483-blip/Sistema/internal/dispatch"
	"github.com/guilhermeluismatos9483-blip/Sistema/internal/llm"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	configDirName  = ".mac"
	configFileName = "config.toml"
)

// Config is the full process configuration.
type Config struct {
	LLM      llm.LLMConfig
	Slack    dispatch.SlackConfig
	LogFile  string
	FilePath string // config file actually read, if any
}

// DefaultPath returns $MAC_CONFIG or ~/.mac/config.toml.
func DefaultPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv("MAC_CONFIG")); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, configDirName, configFileName), nil
}

// Load reads the config file at path, when it exists, into v and then
// resolves every setting. Environment variables override file values.
func Load(v *viper.Viper, path string) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	var used string
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		err := v.ReadInConfig()
		switch {
		case err == nil:
			used = path
		case !isNotFound(err):
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := Config{LLM: llm.LoadConfig(v), FilePath: used}

	_ = v.BindEnv("log_file", "MAC_LOG_FILE")
	cfg.LogFile = strings.TrimSpace(v.GetString("log_file"))

	_ = v.BindEnv("slack.bot_token", "MAC_SLACK_BOT_TOKEN", "SLACK_BOT_TOKEN")
	_ = v.BindEnv("slack.channel", "MAC_SLACK_CHANNEL")
	_ = v.BindEnv("slack.audit_channel", "MAC_SLACK_AUDIT_CHANNEL")
	cfg.Slack = dispatch.SlackConfig{
		BotToken: strings.TrimSpace(v.GetString("slack.bot_token")),
		Fallback: strings.TrimSpace(v.GetString("slack.channel")),
		Audit:    strings.TrimSpace(v.GetString("slack.audit_channel")),
		APIURL:   strings.TrimSpace(v.GetString("slack.api_url")),
		Channels: v.GetStringMapString("slack.channels"),
	}

	return cfg, nil
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.Is(err, os.ErrNotExist) || errors.As(err, &notFound)
}

// fileSchema is the on-disk layout of config.toml.
type fileSchema struct {
	LogFile string    `toml:"log_file,omitempty"`
	LLM     llmFile   `toml:"llm"`
	Slack   slackFile `toml:"slack"`
}

type llmFile struct {
	Provider     string  `toml:"provider"`
	Model        string  `toml:"model"`
	APIKey       string  `toml:"api_key,omitempty"`
	Endpoint     string  `toml:"endpoint,omitempty"`
	Region       string  `toml:"region,omitempty"`
	Temperature  float64 `toml:"temperature"`
	MaxTokens    int     `toml:"max_tokens"`
	TimeoutMs    int     `toml:"timeout_ms"`
	StrictSchema bool    `toml:"strict_schema"`
	LogCalls     bool    `toml:"log_calls"`
}

type slackFile struct {
	BotToken     string            `toml:"bot_token,omitempty"`
	Channel      string            `toml:"channel,omitempty"`
	AuditChannel string            `toml:"audit_channel,omitempty"`
	Channels     map[string]string `toml:"channels,omitempty"`
}

func toFile(cfg Config) fileSchema {
	return fileSchema{
		LogFile: cfg.LogFile,
		LLM: llmFile{
			Provider:     cfg.LLM.Provider,
			Model:        cfg.LLM.Model,
			APIKey:       cfg.LLM.APIKey,
			Endpoint:     cfg.LLM.Endpoint,
			Region:       cfg.LLM.Region,
			Temperature:  cfg.LLM.Temperature,
			MaxTokens:    cfg.LLM.MaxTokens,
			TimeoutMs:    cfg.LLM.TimeoutMs,
			StrictSchema: cfg.LLM.StrictSchema,
			LogCalls:     cfg.LLM.LogCalls,
		},
		Slack: slackFile{
			BotToken:     cfg.Slack.BotToken,
			Channel:      cfg.Slack.Fallback,
			AuditChannel: cfg.Slack.Audit,
			Channels:     cfg.Slack.Channels,
		},
	}
}

// Redacted returns a copy of cfg with secrets masked.
func (c Config) Redacted() Config {
	c.LLM.APIKey = mask(c.LLM.APIKey)
	c.Slack.BotToken = mask(c.Slack.BotToken)
	return c
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 8 {
		return "****"
	}
	return secret[:4] + "****"
}

// EncodeTOML renders cfg in config-file form.
func EncodeTOML(cfg Config) ([]byte, error) {
	data, err := toml.Marshal(toFile(cfg))
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}

// WriteDefault creates a config file at path populated with defaults. An
// existing file is left untouched unless force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file %s already exists", path)
		}
	}

	cfg := Config{LLM: llm.DefaultConfig()}
	cfg.Slack.Channels = map[string]string{}

	data, err := EncodeTOML(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
