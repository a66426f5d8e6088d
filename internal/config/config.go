// Package config loads service configuration from the environment
// (optionally seeded from a .env file).
package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port      string
	LogLevel  string
	LogFormat string

	// GeminiModel is the default generation model; the form can override
	// it per request.
	GeminiModel string

	GeminiAPIKey      string
	GoogleSAJSON      string
	GoogleProjectID   string
	GoogleClientEmail string
	GooglePrivateKey  string

	// RequestTimeout bounds each outbound generation call.
	RequestTimeout time.Duration

	HistoryLimit int

	TelegramBotToken string
	WebhookURL       string
}

func Load() (*Config, error) {
	// Absent .env is fine: plain environment variables still apply.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", "8000")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("gemini_model", "gemini-2.0-flash")
	v.SetDefault("request_timeout", "90s")
	v.SetDefault("history_limit", 20)

	return &Config{
		Port:      v.GetString("port"),
		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),

		GeminiModel: v.GetString("gemini_model"),

		GeminiAPIKey:      v.GetString("gemini_api_key"),
		GoogleSAJSON:      v.GetString("google_sa_json"),
		GoogleProjectID:   v.GetString("google_project_id"),
		GoogleClientEmail: v.GetString("google_client_email"),
		GooglePrivateKey:  v.GetString("google_private_key"),

		RequestTimeout: v.GetDuration("request_timeout"),
		HistoryLimit:   v.GetInt("history_limit"),

		TelegramBotToken: v.GetString("telegram_bot_token"),
		WebhookURL:       v.GetString("webhook_url"),
	}, nil
}
