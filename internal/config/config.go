package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime configuration, loaded from environment
// variables. Optional integrations (S3, push, email) disable cleanly
// when their settings are absent.
type Config struct {
	Port     string `env:"HEARTHSIDE_PORT" envDefault:"8080"`
	DBPath   string `env:"HEARTHSIDE_DB_PATH" envDefault:"hearthside.db"`
	BaseURL  string `env:"HEARTHSIDE_BASE_URL" envDefault:"http://localhost:8080"`
	LogLevel string `env:"HEARTHSIDE_LOG_LEVEL" envDefault:"info"`

	S3Endpoint      string `env:"HEARTHSIDE_S3_ENDPOINT"`
	S3Bucket        string `env:"HEARTHSIDE_S3_BUCKET"`
	S3Region        string `env:"HEARTHSIDE_S3_REGION" envDefault:"auto"`
	S3AccessKey     string `env:"HEARTHSIDE_S3_ACCESS_KEY"`
	S3SecretKey     string `env:"HEARTHSIDE_S3_SECRET_KEY"`
	S3PublicBaseURL string `env:"HEARTHSIDE_S3_PUBLIC_URL"`

	VAPIDPublicKey  string `env:"HEARTHSIDE_VAPID_PUBLIC_KEY"`
	VAPIDPrivateKey string `env:"HEARTHSIDE_VAPID_PRIVATE_KEY"`
	PushSubscriber  string `env:"HEARTHSIDE_PUSH_SUBSCRIBER" envDefault:"mailto:noreply@hearthside.app"`

	PostmarkToken string `env:"HEARTHSIDE_POSTMARK_TOKEN"`
	EmailFrom     string `env:"HEARTHSIDE_EMAIL_FROM" envDefault:"noreply@hearthside.app"`
}

// Load parses configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
