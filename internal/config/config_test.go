package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", DefaultConfigFileName)

	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file written: %v", err)
	}
	if cfg.Storage.Path != filepath.Join(dir, "nested", DefaultDBName) {
		t.Fatalf("unexpected resolved db path %q", cfg.Storage.Path)
	}
	if cfg.Weather.Refresh.Duration != 30*time.Minute || cfg.Vocab.MaxRetries != 5 || !cfg.Clock.Use24Hour {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "refresh = '30m0s'") && !strings.Contains(string(data), `refresh = "30m0s"`) {
		t.Fatalf("expected human readable duration in file:\n%s", data)
	}
}

func TestLoadOrCreateReadsExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFileName)
	body := `
[storage]
path = "/var/lib/dashd/kv.db"
driver = "sqlite"

[clock]
timezone = "UTC"
use_24_hour = false

[weather]
city = "Busan"
refresh = "10m"

[vocab]
provider = "anthropic"
language = "thai"
max_retries = 2
timeout = "5s"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage.Path != "/var/lib/dashd/kv.db" || cfg.Storage.Driver != "sqlite" {
		t.Fatalf("unexpected storage: %+v", cfg.Storage)
	}
	if cfg.Clock.Timezone != "UTC" || cfg.Clock.Use24Hour {
		t.Fatalf("unexpected clock: %+v", cfg.Clock)
	}
	if cfg.Weather.City != "Busan" || cfg.Weather.Refresh.Duration != 10*time.Minute {
		t.Fatalf("unexpected weather: %+v", cfg.Weather)
	}
	if cfg.Vocab.Provider != "anthropic" || cfg.Vocab.MaxRetries != 2 || cfg.Vocab.Timeout.Duration != 5*time.Second {
		t.Fatalf("unexpected vocab: %+v", cfg.Vocab)
	}
	if cfg.Keys.Quit != "q" || cfg.Log.File != filepath.Join(dir, DefaultLogName) {
		t.Fatalf("expected untouched defaults, got keys=%+v log=%+v", cfg.Keys, cfg.Log)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestLoadOrCreateRejectsBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	if err := os.WriteFile(path, []byte("[weather]\nrefresh = \"soon\"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadOrCreate(path); err == nil {
		t.Fatal("expected parse error for bad duration")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"driver", func(c *Config) { c.Storage.Driver = "postgres" }},
		{"level", func(c *Config) { c.Log.Level = "chatty" }},
		{"language", func(c *Config) { c.Vocab.Language = "klingon" }},
		{"provider", func(c *Config) { c.Vocab.Provider = "mystery" }},
		{"sort", func(c *Config) { c.Todo.DefaultSort = "random" }},
		{"filter", func(c *Config) { c.Todo.DefaultFilter = "done" }},
		{"refresh", func(c *Config) { c.Weather.Refresh = Duration{time.Second} }},
		{"retries", func(c *Config) { c.Vocab.MaxRetries = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("DASHD_DB_PATH", "/tmp/x.db")
	t.Setenv("DASHD_DB_DRIVER", "sqlite")
	t.Setenv("DASHD_USE_24_HOUR", "no")
	t.Setenv("DASHD_WEATHER_REFRESH", "15m")
	t.Setenv("DASHD_VOCAB_PROVIDER", "Gemini")
	t.Setenv("DASHD_VOCAB_MAX_RETRIES", "0")
	t.Setenv("DASHD_VOCAB_TIMEOUT", "bogus")
	t.Setenv("DASHD_SCHEDULER_BUFFER", "-3")
	t.Setenv("GEMINI_API_KEY", "gem-key")
	t.Setenv("OPENWEATHER_API_KEY", "owm-key")
	t.Setenv("DASHD_WEATHER_API_KEY", "")
	t.Setenv("DASHD_VOCAB_API_KEY", "")
	t.Setenv("DASHD_VOCAB_MODEL", "")

	cfg := FromEnv(Default())
	if cfg.Storage.Path != "/tmp/x.db" || cfg.Storage.Driver != "sqlite" || cfg.Clock.Use24Hour {
		t.Fatalf("unexpected overrides: %+v %+v", cfg.Storage, cfg.Clock)
	}
	if cfg.Weather.Refresh.Duration != 15*time.Minute {
		t.Fatalf("refresh = %v", cfg.Weather.Refresh)
	}
	if cfg.Vocab.Provider != "gemini" || cfg.Vocab.Model != "" || cfg.Vocab.MaxRetries != 0 || cfg.Vocab.Timeout.Duration != 20*time.Second {
		t.Fatalf("unexpected vocab: %+v", cfg.Vocab)
	}
	if cfg.Scheduler.Buffer != 16 {
		t.Fatalf("negative buffer should be ignored, got %d", cfg.Scheduler.Buffer)
	}
	if cfg.Vocab.APIKey != "gem-key" || cfg.Weather.APIKey != "owm-key" {
		t.Fatalf("unexpected api keys vocab=%q weather=%q", cfg.Vocab.APIKey, cfg.Weather.APIKey)
	}
}

func TestFromEnvKeyPrecedence(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "env-fallback")
	t.Setenv("DASHD_VOCAB_API_KEY", "")
	base := Default()
	base.Vocab.APIKey = "from-file"
	if got := FromEnv(base).Vocab.APIKey; got != "from-file" {
		t.Fatalf("file key should win over provider env, got %q", got)
	}
	t.Setenv("DASHD_VOCAB_API_KEY", "explicit")
	if got := FromEnv(base).Vocab.APIKey; got != "explicit" {
		t.Fatalf("DASHD key should win, got %q", got)
	}
}
