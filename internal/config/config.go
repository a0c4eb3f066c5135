package config

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	// Server
	Port               int    `mapstructure:"PORT"`
	Env                string `mapstructure:"APP_ENV"` // development | production
	RateLimitPerMinute int    `mapstructure:"RATE_LIMIT_PER_MINUTE"`

	// Database: a file path opens SQLite, a postgres:// URL opens Postgres.
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// Redis is optional. Empty disables the stock listing cache and PDF receipt jobs.
	RedisURL       string `mapstructure:"REDIS_URL"`
	WorkerPoolSize int    `mapstructure:"WORKER_POOL_SIZE"`

	// Business
	HistoricoDir          string `mapstructure:"HISTORICO_DIR"`
	Timezone              string `mapstructure:"TIMEZONE"`
	AlertaValidadeHorario string `mapstructure:"ALERTA_VALIDADE_HORARIO"` // HH:MM, local to Timezone
	ReciboPDF             bool   `mapstructure:"RECIBO_PDF"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault("PORT", 3000)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 600)
	viper.SetDefault("DATABASE_URL", "database/estoque.sqlite")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("WORKER_POOL_SIZE", 2)
	viper.SetDefault("HISTORICO_DIR", "public/historico")
	viper.SetDefault("TIMEZONE", "America/Sao_Paulo")
	viper.SetDefault("ALERTA_VALIDADE_HORARIO", "07:00")
	viper.SetDefault("RECIBO_PDF", false)

	// Optional .env file for local development; a missing file is not an error
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Location resolves Timezone. Receipt names, history grouping and expiry
// arithmetic all use this zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}
