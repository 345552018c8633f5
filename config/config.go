package config

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	TelegramToken  string `env:"TELEGRAM_TOKEN"`
	DBPath         string `env:"DB_PATH, default=tips-bot.db"`
	LogLevel       string `env:"LOG_LEVEL, default=info"`
	LogFormat      string `env:"LOG_FORMAT, default=text"`
	Workers        int    `env:"WORKERS, default=4"`
	QueueSize      int    `env:"QUEUE_SIZE, default=32"`
	EmployeeID     int64  `env:"EMPLOYEE_ID, default=0"`
	CurrencySymbol string `env:"CURRENCY_SYMBOL"`
}

// LoadConfig reads .env when present, then the process environment.
func LoadConfig(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()
	return process(ctx, envconfig.OsLookuper())
}

func process(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.CurrencySymbol == "" {
		cfg.CurrencySymbol = "$"
	}
	if cfg.QueueSize < 0 {
		cfg.QueueSize = 0
	}
	return &cfg, nil
}

// RequireToken is checked by the bot only; the CLI works without Telegram.
func (c *Config) RequireToken() error {
	if c.TelegramToken == "" {
		return ErrNoToken{}
	}
	return nil
}

type ErrNoToken struct{}

func (e ErrNoToken) Error() string {
	return "TELEGRAM_TOKEN is not set in the environment"
}
