// Package config loads engine configuration from YAML with PROSPECT_*
// environment overrides.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/newthinker/prospect/internal/core"
	"github.com/newthinker/prospect/internal/discovery"
	"github.com/newthinker/prospect/internal/indicator"
	"github.com/newthinker/prospect/internal/store"
)

type Config struct {
	Symbols    []string                 `mapstructure:"symbols"`
	Data       DataConfig               `mapstructure:"data"`
	Indicators indicator.Config         `mapstructure:"indicators"`
	Discovery  discovery.PipelineConfig `mapstructure:"discovery"`
	Signals    SignalsConfig            `mapstructure:"signals"`
	Store      StoreConfig              `mapstructure:"store"`
	Watch      WatchConfig              `mapstructure:"watch"`
	Metrics    MetricsConfig            `mapstructure:"metrics"`
	LLM        LLMConfig                `mapstructure:"llm"`
}

type DataConfig struct {
	Provider    string        `mapstructure:"provider"`
	HistoryDays int           `mapstructure:"history_days"`
	CacheTTL    time.Duration `mapstructure:"cache_ttl"`
}

type SignalsConfig struct {
	LookbackDays int  `mapstructure:"lookback_days"`
	Setups       bool `mapstructure:"setups"`
}

type StoreConfig struct {
	Type  string             `mapstructure:"type"` // "memory", "localfs", "s3" or "redis"
	Path  string             `mapstructure:"path"` // For localfs
	S3    store.S3Options    `mapstructure:"s3"`
	Redis store.RedisOptions `mapstructure:"redis"`
}

type WatchConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
	Path    string `mapstructure:"path"`
}

type LLMConfig struct {
	Provider string       `mapstructure:"provider"`
	Claude   ClaudeConfig `mapstructure:"claude"`
	OpenAI   OpenAIConfig `mapstructure:"openai"`
	Ollama   OllamaConfig `mapstructure:"ollama"`
}

type ClaudeConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type OpenAIConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type OllamaConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	Model    string `mapstructure:"model"`
}

// Load reads configuration from a file on top of Defaults. Environment
// variables prefixed PROSPECT_ override file values, and ${VAR} string
// values expand from the environment.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetEnvPrefix("PROSPECT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, core.WrapError(core.ErrConfigInvalid, fmt.Errorf("reading config: %w", err))
	}

	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	cfg := Defaults()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, core.WrapError(core.ErrConfigInvalid, fmt.Errorf("unmarshaling config: %w", err))
	}

	return cfg, nil
}

// Defaults returns the configuration the engine runs with when no file
// is given: QQQ from Yahoo, ten years of history, the standard discovery
// thresholds and a localfs store.
func Defaults() *Config {
	return &Config{
		Symbols: []string{"QQQ"},
		Data: DataConfig{
			Provider:    "yahoo",
			HistoryDays: 3650,
			CacheTTL:    store.DefaultBarTTL,
		},
		Indicators: indicator.DefaultConfig(),
		Discovery:  discovery.DefaultPipelineConfig(),
		Signals: SignalsConfig{
			LookbackDays: 7,
		},
		Store: StoreConfig{
			Type: "localfs",
			Path: "./data",
		},
		Watch: WatchConfig{
			Interval: 24 * time.Hour,
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    ":9090",
			Path:    "/metrics",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	switch c.Data.Provider {
	case "", "yahoo":
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown data provider %q", c.Data.Provider))
	}
	if c.Data.HistoryDays < 1 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("history_days must be positive, got %d", c.Data.HistoryDays))
	}

	if err := c.Discovery.Validate(); err != nil {
		return core.WrapError(core.ErrConfigInvalid, err)
	}

	if c.Signals.LookbackDays < 1 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("lookback_days must be positive, got %d", c.Signals.LookbackDays))
	}

	switch c.Store.Type {
	case "memory", "localfs", "redis":
	case "s3":
		if c.Store.S3.Bucket == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("s3 bucket required when store type is s3"))
		}
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown store type %q", c.Store.Type))
	}

	if c.Watch.Interval <= 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("watch interval must be positive, got %s", c.Watch.Interval))
	}

	if c.LLM.Provider != "" {
		switch c.LLM.Provider {
		case "claude":
			if c.LLM.Claude.APIKey == "" {
				return core.WrapError(core.ErrConfigMissing,
					fmt.Errorf("claude api_key required when provider is claude"))
			}
		case "openai":
			if c.LLM.OpenAI.APIKey == "" {
				return core.WrapError(core.ErrConfigMissing,
					fmt.Errorf("openai api_key required when provider is openai"))
			}
		case "ollama":
			if c.LLM.Ollama.Endpoint == "" {
				return core.WrapError(core.ErrConfigMissing,
					fmt.Errorf("ollama endpoint required when provider is ollama"))
			}
		default:
			return core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("unknown llm provider %q", c.LLM.Provider))
		}
	}

	return nil
}
