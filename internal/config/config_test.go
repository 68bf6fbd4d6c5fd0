package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/newthinker/prospect/internal/core"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if len(cfg.Symbols) != 1 || cfg.Symbols[0] != "QQQ" {
		t.Errorf("Symbols = %v, want [QQQ]", cfg.Symbols)
	}
	if cfg.Data.Provider != "yahoo" || cfg.Data.HistoryDays != 3650 {
		t.Errorf("unexpected data defaults: %+v", cfg.Data)
	}
	if cfg.Signals.LookbackDays != 7 {
		t.Errorf("LookbackDays = %d, want 7", cfg.Signals.LookbackDays)
	}
	if cfg.Store.Type != "localfs" {
		t.Errorf("Store.Type = %s, want localfs", cfg.Store.Type)
	}
	if cfg.Watch.Interval != 24*time.Hour {
		t.Errorf("Watch.Interval = %s, want 24h", cfg.Watch.Interval)
	}
	if cfg.Discovery.HoldingPeriod != 60 || cfg.Discovery.MinReturn != 10.0 {
		t.Errorf("unexpected discovery defaults: %+v", cfg.Discovery)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestLoad_MergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `
symbols:
  - SPY
  - GLD
discovery:
  holding_period: 30
store:
  type: memory
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(cfg.Symbols) != 2 || cfg.Symbols[0] != "SPY" || cfg.Symbols[1] != "GLD" {
		t.Errorf("Symbols = %v, want [SPY GLD]", cfg.Symbols)
	}
	if cfg.Discovery.HoldingPeriod != 30 {
		t.Errorf("HoldingPeriod = %d, want 30", cfg.Discovery.HoldingPeriod)
	}
	// Untouched keys keep their defaults.
	if cfg.Discovery.MinReturn != 10.0 {
		t.Errorf("MinReturn = %f, want default 10", cfg.Discovery.MinReturn)
	}
	if cfg.Store.Type != "memory" {
		t.Errorf("Store.Type = %s, want memory", cfg.Store.Type)
	}
	if cfg.Data.Provider != "yahoo" {
		t.Errorf("Data.Provider = %s, want default yahoo", cfg.Data.Provider)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, `
data:
  history_days: 200
`)
	t.Setenv("PROSPECT_DATA_HISTORY_DAYS", "100")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Data.HistoryDays != 100 {
		t.Errorf("HistoryDays = %d, want env override 100", cfg.Data.HistoryDays)
	}
}

func TestLoad_ExpandsEnvPlaceholders(t *testing.T) {
	path := writeConfig(t, `
llm:
  provider: claude
  claude:
    api_key: ${TEST_CLAUDE_KEY}
`)
	t.Setenv("TEST_CLAUDE_KEY", "sk-test")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LLM.Claude.APIKey != "sk-test" {
		t.Errorf("APIKey = %s, want sk-test", cfg.LLM.Claude.APIKey)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, core.ErrConfigInvalid) {
		t.Errorf("expected ErrConfigInvalid, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr *core.Error
	}{
		{
			name:    "unknown provider",
			mutate:  func(c *Config) { c.Data.Provider = "bloomberg" },
			wantErr: core.ErrConfigInvalid,
		},
		{
			name:    "zero history",
			mutate:  func(c *Config) { c.Data.HistoryDays = 0 },
			wantErr: core.ErrConfigInvalid,
		},
		{
			name:    "bad discovery config",
			mutate:  func(c *Config) { c.Discovery.HoldingPeriod = 0 },
			wantErr: core.ErrConfigInvalid,
		},
		{
			name:    "zero lookback",
			mutate:  func(c *Config) { c.Signals.LookbackDays = 0 },
			wantErr: core.ErrConfigInvalid,
		},
		{
			name:    "unknown store type",
			mutate:  func(c *Config) { c.Store.Type = "dynamo" },
			wantErr: core.ErrConfigInvalid,
		},
		{
			name:    "s3 without bucket",
			mutate:  func(c *Config) { c.Store.Type = "s3" },
			wantErr: core.ErrConfigMissing,
		},
		{
			name:    "zero watch interval",
			mutate:  func(c *Config) { c.Watch.Interval = 0 },
			wantErr: core.ErrConfigInvalid,
		},
		{
			name:    "claude without key",
			mutate:  func(c *Config) { c.LLM.Provider = "claude" },
			wantErr: core.ErrConfigMissing,
		},
		{
			name:    "unknown llm provider",
			mutate:  func(c *Config) { c.LLM.Provider = "grok" },
			wantErr: core.ErrConfigInvalid,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Defaults()
			tc.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestValidate_RedisStoreNeedsNoExtras(t *testing.T) {
	cfg := Defaults()
	cfg.Store.Type = "redis"
	if err := cfg.Validate(); err != nil {
		t.Errorf("redis store with default options should validate, got %v", err)
	}
}
