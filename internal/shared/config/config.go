package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

// AppEnv represents the application environment
// ENUM(local,production,development,testing)
type AppEnv string

const minWebhookSecretLength = 12

type Config struct {
	TelegramBotToken      string `koanf:"telegram_bot_token"`
	TelegramWebhookSecret string `koanf:"telegram_webhook_secret"`
	HTTPPort              string `koanf:"http_port"`
	AppEnv                AppEnv `koanf:"app_env"`
	MaxAudioDuration      int    `koanf:"max_audio_duration"`
	RateLimitPerMinute    int    `koanf:"rate_limit_per_minute"`
	DBPath                string `koanf:"db_path"`
	CloudflareAccountID   string `koanf:"cloudflare_account_id"`
	CloudflareAPIToken    string `koanf:"cloudflare_api_token"`
	TranscriptionModel    string `koanf:"transcription_model"`
	TextModel             string `koanf:"text_model"`
}

// Load reads configuration from the first existing config file (yaml, json or
// toml), then overrides it with environment variables. Invalid configuration
// is an error; the process must not serve traffic with a partial config.
func Load() (*Config, error) {
	k := koanf.New(".")

	// Try to load config file from various formats
	configFiles := []string{
		"config.yaml",
		"config.yml",
		"config.json",
		"config.toml",
	}

	// Use lo.Find to find the first existing config file
	configFile, found := lo.Find(configFiles, func(file string) bool {
		_, err := os.Stat(file)
		return err == nil
	})

	if found {
		var parser koanf.Parser
		ext := filepath.Ext(configFile)

		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		case ".toml":
			parser = toml.Parser()
		default:
			return nil, oops.Errorf("unsupported config file extension: %s", ext)
		}

		if err := k.Load(file.Provider(configFile), parser); err != nil {
			return nil, oops.With("config_file", configFile).Wrap(err)
		}
	}

	// Load environment variables (they override config file values)
	// Convert TELEGRAM_BOT_TOKEN -> telegram_bot_token
	if err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ToLower(s)
	}), nil); err != nil {
		return nil, oops.With("context", "loading environment variables").Wrap(err)
	}

	// Set defaults
	if !k.Exists("http_port") {
		k.Set("http_port", "8080")
	}
	if !k.Exists("app_env") {
		k.Set("app_env", "production")
	}
	if !k.Exists("max_audio_duration") {
		k.Set("max_audio_duration", 300)
	}
	if !k.Exists("rate_limit_per_minute") {
		k.Set("rate_limit_per_minute", 10)
	}
	if !k.Exists("db_path") {
		k.Set("db_path", "./data/voicescribe.db")
	}
	if !k.Exists("transcription_model") {
		k.Set("transcription_model", "@cf/openai/whisper-large-v3-turbo")
	}
	if !k.Exists("text_model") {
		k.Set("text_model", "@cf/google/gemma-3-12b-it")
	}

	// Unmarshal into struct
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.With("context", "unmarshaling config").Wrap(err)
	}

	if appEnvStr := k.String("app_env"); appEnvStr != "" {
		parsed, err := ParseAppEnv(appEnvStr)
		if err != nil {
			return nil, oops.With("app_env", appEnvStr).Wrap(err)
		}
		cfg.AppEnv = parsed
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.TelegramBotToken == "" {
		return oops.Errorf("telegram_bot_token is required")
	}
	if len(c.TelegramWebhookSecret) < minWebhookSecretLength {
		return oops.Errorf("telegram_webhook_secret must be at least %d characters", minWebhookSecretLength)
	}
	if c.CloudflareAccountID == "" {
		return oops.Errorf("cloudflare_account_id is required")
	}
	if c.CloudflareAPIToken == "" {
		return oops.Errorf("cloudflare_api_token is required")
	}
	if c.MaxAudioDuration <= 0 {
		return oops.Errorf("max_audio_duration must be positive, got %d", c.MaxAudioDuration)
	}
	if c.RateLimitPerMinute <= 0 {
		return oops.Errorf("rate_limit_per_minute must be positive, got %d", c.RateLimitPerMinute)
	}
	return nil
}
