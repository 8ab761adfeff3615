package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/dashd/internal/vocab"
)

// FromEnv applies DASHD_* overrides to base. API keys also fall back to the
// providers' conventional variables when neither the file nor DASHD_* set one.
func FromEnv(base Config) Config {
	cfg := base
	if v, ok := getEnvString("DASHD_DB_PATH"); ok {
		cfg.Storage.Path = v
	}
	if v, ok := getEnvString("DASHD_DB_DRIVER"); ok {
		cfg.Storage.Driver = v
	}
	if v, ok := getEnvInt("DASHD_MAX_VALUE_BYTES"); ok && v >= 0 {
		cfg.Storage.MaxValueBytes = v
	}
	if v, ok := getEnvString("DASHD_LOG_FILE"); ok {
		cfg.Log.File = v
	}
	if v, ok := getEnvString("DASHD_LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}
	if v, ok := getEnvString("DASHD_TIMEZONE"); ok {
		cfg.Clock.Timezone = v
	}
	if v, ok := getEnvBool("DASHD_USE_24_HOUR"); ok {
		cfg.Clock.Use24Hour = v
	}
	if v, ok := getEnvString("DASHD_WEATHER_CITY"); ok {
		cfg.Weather.City = v
	}
	if v, ok := getEnvDuration("DASHD_WEATHER_REFRESH"); ok && v > 0 {
		cfg.Weather.Refresh = Duration{v}
	}
	if v, ok := getEnvString("DASHD_VOCAB_PROVIDER"); ok {
		// A model name only means something to the provider it was set for.
		if p := strings.ToLower(v); p != cfg.Vocab.Provider {
			cfg.Vocab.Provider = p
			cfg.Vocab.Model = ""
		}
	}
	if v, ok := getEnvString("DASHD_VOCAB_MODEL"); ok {
		cfg.Vocab.Model = v
	}
	if v, ok := getEnvString("DASHD_VOCAB_LANGUAGE"); ok {
		cfg.Vocab.Language = v
	}
	if v, ok := getEnvInt("DASHD_VOCAB_MAX_RETRIES"); ok && v >= 0 {
		cfg.Vocab.MaxRetries = v
	}
	if v, ok := getEnvDuration("DASHD_VOCAB_TIMEOUT"); ok && v > 0 {
		cfg.Vocab.Timeout = Duration{v}
	}
	if v, ok := getEnvString("DASHD_SPEECH_PLAYER"); ok {
		cfg.Speech.Player = v
	}
	if v, ok := getEnvString("DASHD_SPEECH_SYNTHESIZER"); ok {
		cfg.Speech.Synthesizer = v
	}
	if v, ok := getEnvInt("DASHD_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.Scheduler.Buffer = v
	}

	cfg.Weather.APIKey = firstNonEmpty(os.Getenv("DASHD_WEATHER_API_KEY"), cfg.Weather.APIKey, os.Getenv("OPENWEATHER_API_KEY"))
	cfg.Vocab.APIKey = firstNonEmpty(os.Getenv("DASHD_VOCAB_API_KEY"), cfg.Vocab.APIKey, os.Getenv(providerKeyEnv(cfg.Vocab.Provider)))
	return cfg
}

func providerKeyEnv(provider string) string {
	switch provider {
	case vocab.ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	case vocab.ProviderGemini:
		return "GEMINI_API_KEY"
	default:
		return "OPENAI_API_KEY"
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	return raw, raw != ""
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvDuration(name string) (time.Duration, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
