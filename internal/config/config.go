// internal/config/config.go
//
// Package config loads server settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every environment-driven setting of the server.
type Config struct {
	Port       string `env:"PORT"        envDefault:"5175"`
	LogLevel   string `env:"LOG_LEVEL"   envDefault:"info"`
	DBPath     string `env:"DB_PATH"     envDefault:"./data/app.db"`
	LevelsFile string `env:"LEVELS_FILE"`
	WordsFile  string `env:"WORDS_FILE"`
	DailySalt  string `env:"DAILY_SALT"  envDefault:"local_dev_salt"`

	JWTSecret      string `env:"JWT_SECRET"       envDefault:"dev_secret_change_me"`
	JWTExpiresDays int    `env:"JWT_EXPIRES_DAYS" envDefault:"14"`
	CookieName     string `env:"COOKIE_NAME"      envDefault:"bingo_token"`
	ClientOrigin   string `env:"CLIENT_ORIGIN"    envDefault:"http://localhost:5173"`
	AppEnv         string `env:"APP_ENV"          envDefault:"development"`
}

// Production reports whether cookies must be issued as Secure.
func (c Config) Production() bool { return c.AppEnv == "production" }

// Load reads an optional .env file and parses the environment into a Config.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.JWTExpiresDays <= 0 {
		return Config{}, fmt.Errorf("JWT_EXPIRES_DAYS must be positive, got %d", cfg.JWTExpiresDays)
	}
	return cfg, nil
}

// Default returns the configuration used when no variables are set.
func Default() Config {
	var cfg Config
	_ = env.ParseWithOptions(&cfg, env.Options{Environment: map[string]string{"APP_ENV": "development"}})
	return cfg
}
