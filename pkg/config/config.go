package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var Empty = new(Config)

type Config struct {
	AppEnv       string `envconfig:"APP_ENV"`
	Port         int    `envconfig:"PORT" default:"8080"`
	SentryDSN    string `envconfig:"SENTRY_DSN"`
	AllowOrigins string `envconfig:"ALLOW_ORIGINS"`

	Search struct {
		// Backend is one of tmdb, http or postgres.
		Backend  string        `envconfig:"SEARCH_BACKEND" default:"tmdb"`
		Endpoint string        `envconfig:"SEARCH_ENDPOINT"`
		Timeout  time.Duration `envconfig:"SEARCH_TIMEOUT" default:"10s"`
		Limit    int           `envconfig:"SEARCH_LIMIT" default:"20"`
	}
	Session struct {
		IdleTTL time.Duration `envconfig:"SESSION_IDLE_TTL" default:"30m"`
	}
	TMDB struct {
		APIKey   string `envconfig:"TMDB_API_KEY"`
		Language string `envconfig:"TMDB_LANGUAGE" default:"en-US"`
		BaseURL  string `envconfig:"TMDB_BASE_URL" default:"https://api.themoviedb.org/3"`
	}
	DB struct {
		Name      string `envconfig:"DB_NAME"`
		Host      string `envconfig:"DB_HOST"`
		Port      int    `envconfig:"DB_PORT"`
		User      string `envconfig:"DB_USER"`
		Pass      string `envconfig:"DB_PASS"`
		EnableSSL bool   `envconfig:"ENABLE_SSL"`
	}
}

func LoadConfig() (*Config, error) {
	// load default .env file, ignore the error
	_ = godotenv.Load()

	cfg := new(Config)
	err := envconfig.Process("", cfg)
	if err != nil {
		return nil, fmt.Errorf("load config error: %v", err)
	}

	return cfg, nil
}
