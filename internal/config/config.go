// Package config loads dashd's TOML settings file, creating it with defaults
// on first run, and applies DASHD_* environment overrides on top.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/sandeepkv93/dashd/internal/logging"
	"github.com/sandeepkv93/dashd/internal/model"
	"github.com/sandeepkv93/dashd/internal/storage"
	"github.com/sandeepkv93/dashd/internal/vocab"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "dashd.db"
	DefaultLogName        = "dashd.log"
)

// Duration is a time.Duration written as "30m" in TOML.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return fmt.Errorf("config: bad duration %q: %w", b, err)
	}
	d.Duration = v
	return nil
}

type StorageConfig struct {
	Path          string `toml:"path"`
	Driver        string `toml:"driver"`
	MaxValueBytes int    `toml:"max_value_bytes"`
}

type LogConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type ClockConfig struct {
	Timezone  string `toml:"timezone"`
	Use24Hour bool   `toml:"use_24_hour"`
}

type WeatherConfig struct {
	APIKey  string   `toml:"api_key"`
	City    string   `toml:"city"`
	Refresh Duration `toml:"refresh"`
	BaseURL string   `toml:"base_url"`
}

type VocabConfig struct {
	Provider   string   `toml:"provider"`
	Model      string   `toml:"model"`
	APIKey     string   `toml:"api_key"`
	BaseURL    string   `toml:"base_url"`
	Language   string   `toml:"language"`
	MaxRetries int      `toml:"max_retries"`
	Timeout    Duration `toml:"timeout"`
}

type SpeechConfig struct {
	BaseURL      string   `toml:"base_url"`
	FallbackBase string   `toml:"fallback_base"`
	Player       string   `toml:"player"`
	Synthesizer  string   `toml:"synthesizer"`
	Timeout      Duration `toml:"timeout"`
}

type TodoConfig struct {
	DefaultSort   string `toml:"default_sort"`
	DefaultFilter string `toml:"default_filter"`
	ShowCompleted bool   `toml:"show_completed"`
}

type SchedulerConfig struct {
	Buffer int `toml:"buffer"`
}

type Keymap struct {
	Quit         string `toml:"quit"`
	Add          string `toml:"add"`
	Up           string `toml:"up"`
	Down         string `toml:"down"`
	Toggle       string `toml:"toggle"`
	Delete       string `toml:"delete"`
	PriorityUp   string `toml:"priority_up"`
	PriorityDown string `toml:"priority_down"`
	Search       string `toml:"search"`
	Filter       string `toml:"filter"`
	Category     string `toml:"category"`
	Sort         string `toml:"sort"`
	HideDone     string `toml:"hide_done"`
	ClearDone    string `toml:"clear_done"`
	NextWord     string `toml:"next_word"`
	Language     string `toml:"language"`
	Speak        string `toml:"speak"`
	ClockFormat  string `toml:"clock_format"`
	Refresh      string `toml:"refresh"`
	Palette      string `toml:"palette"`
	Help         string `toml:"help"`
	FocusNext    string `toml:"focus_next"`
}

type Config struct {
	Storage   StorageConfig   `toml:"storage"`
	Log       LogConfig       `toml:"log"`
	Clock     ClockConfig     `toml:"clock"`
	Weather   WeatherConfig   `toml:"weather"`
	Vocab     VocabConfig     `toml:"vocab"`
	Speech    SpeechConfig    `toml:"speech"`
	Todo      TodoConfig      `toml:"todo"`
	Scheduler SchedulerConfig `toml:"scheduler"`
	Keys      Keymap          `toml:"keys"`
}

// DefaultPath is config.toml under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "dashd", DefaultConfigFileName), nil
}

// LoadOrCreate reads path, writing the defaults there first if it does not
// exist. Relative storage and log paths resolve against the file's directory.
func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg.resolve(filepath.Dir(path)), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = DefaultDBName
	}
	if cfg.Log.File == "" {
		cfg.Log.File = DefaultLogName
	}
	return cfg.resolve(filepath.Dir(path)), nil
}

func (c Config) resolve(dir string) Config {
	if !filepath.IsAbs(c.Storage.Path) && c.Storage.Path != ":memory:" {
		c.Storage.Path = filepath.Join(dir, c.Storage.Path)
	}
	if !filepath.IsAbs(c.Log.File) {
		c.Log.File = filepath.Join(dir, c.Log.File)
	}
	return c
}

func write(path string, cfg Config) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func Default() Config {
	return Config{
		Storage: StorageConfig{
			Path:          DefaultDBName,
			Driver:        storage.DriverCGO,
			MaxValueBytes: 5 << 20,
		},
		Log: LogConfig{File: DefaultLogName, Level: "info"},
		Clock: ClockConfig{
			Timezone:  "Asia/Seoul",
			Use24Hour: true,
		},
		Weather: WeatherConfig{
			City:    "Seoul",
			Refresh: Duration{30 * time.Minute},
		},
		Vocab: VocabConfig{
			Provider:   vocab.ProviderOpenAI,
			Model:      vocab.DefaultOpenAIModel,
			Language:   string(model.LanguageEnglish),
			MaxRetries: vocab.DefaultMaxRetries,
			Timeout:    Duration{vocab.DefaultTimeout},
		},
		Speech: SpeechConfig{
			Player:  "mpv --really-quiet --no-video -",
			Timeout: Duration{10 * time.Second},
		},
		Todo: TodoConfig{
			DefaultSort:   string(model.SortNewest),
			DefaultFilter: string(model.StatusAll),
			ShowCompleted: true,
		},
		Scheduler: SchedulerConfig{Buffer: 16},
		Keys: Keymap{
			Quit:         "q",
			Add:          "a",
			Up:           "k",
			Down:         "j",
			Toggle:       " ",
			Delete:       "d",
			PriorityUp:   "+",
			PriorityDown: "-",
			Search:       "/",
			Filter:       "f",
			Category:     "c",
			Sort:         "s",
			HideDone:     "h",
			ClearDone:    "x",
			NextWord:     "n",
			Language:     "l",
			Speak:        "p",
			ClockFormat:  "t",
			Refresh:      "r",
			Palette:      ":",
			Help:         "?",
			FocusNext:    "tab",
		},
	}
}

// Validate rejects values the rest of the program would otherwise have to
// second-guess.
func (c Config) Validate() error {
	switch c.Storage.Driver {
	case storage.DriverCGO, storage.DriverPureGo:
	default:
		return fmt.Errorf("config: storage.driver must be %q or %q, got %q", storage.DriverCGO, storage.DriverPureGo, c.Storage.Driver)
	}
	if c.Storage.MaxValueBytes < 0 {
		return errors.New("config: storage.max_value_bytes must not be negative")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := model.ParseLanguage(c.Vocab.Language); err != nil {
		return fmt.Errorf("config: vocab.language: %w", err)
	}
	switch c.Vocab.Provider {
	case vocab.ProviderOpenAI, vocab.ProviderAnthropic, vocab.ProviderGemini:
	default:
		return fmt.Errorf("config: %w: %q", vocab.ErrUnsupportedProvider, c.Vocab.Provider)
	}
	if c.Vocab.MaxRetries < 0 {
		return errors.New("config: vocab.max_retries must not be negative")
	}
	if _, err := model.ParseSortOption(c.Todo.DefaultSort); err != nil {
		return fmt.Errorf("config: todo.default_sort: %w", err)
	}
	if _, err := model.ParseStatusFilter(c.Todo.DefaultFilter); err != nil {
		return fmt.Errorf("config: todo.default_filter: %w", err)
	}
	if c.Weather.Refresh.Duration < time.Minute {
		return errors.New("config: weather.refresh must be at least 1m")
	}
	return nil
}
