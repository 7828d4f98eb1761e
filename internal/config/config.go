package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Data     DataConfig     `yaml:"data"`
	HTTP     HTTPConfig     `yaml:"http"`
	Telegram TelegramConfig `yaml:"telegram"`
	Schedule ScheduleConfig `yaml:"schedule"`
	Currency string         `yaml:"currency" validate:"required"`
	Log      LogConfig      `yaml:"log"`
	Proxy    string         `yaml:"proxy" validate:"omitempty,url"`
}

// DataConfig selects where the historical price table is loaded from.
// SQLite and Postgres take precedence over Path when set.
type DataConfig struct {
	Path       string   `yaml:"path"`
	Sheet      string   `yaml:"sheet"`
	SQLitePath string   `yaml:"sqlite_path"`
	Postgres   DBConfig `yaml:"postgres"`
}

// DBConfig holds Postgres connection settings.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port" validate:"omitempty,min=1,max=65535"`
	Name     string `yaml:"name" validate:"required_with=Host"`
	User     string `yaml:"user" validate:"required_with=Host"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
	MaxConns int    `yaml:"max_conns" validate:"omitempty,min=1"`
}

// HTTPConfig controls the dashboard API. An empty Addr disables it.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// TelegramConfig controls the chat bot. An empty BotToken disables it.
type TelegramConfig struct {
	BotToken          string  `yaml:"bot_token"`
	ChatID            string  `yaml:"chat_id"`
	MessagesPerSecond float64 `yaml:"messages_per_second" validate:"gt=0"`
}

// ScheduleConfig drives the watchlist digest.
type ScheduleConfig struct {
	DigestCron string           `yaml:"digest_cron" validate:"required"`
	Watchlist  []WatchlistEntry `yaml:"watchlist" validate:"dive"`
}

// WatchlistEntry is one (state, commodity) selection reported in the digest.
type WatchlistEntry struct {
	State     string `yaml:"state" validate:"required"`
	Commodity string `yaml:"commodity" validate:"required"`
}

// LogConfig controls the logger.
type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=trace debug info warn warning error fatal panic"`
	File  string `yaml:"file"`
}

// Load reads config from a YAML file, then applies environment variable overrides
// and defaults. A missing file yields a config built from env and defaults only.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DATA_PATH"); v != "" {
		c.Data.Path = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		c.Data.SQLitePath = v
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		c.HTTP.Addr = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		c.Telegram.ChatID = v
	}
	if v := os.Getenv("CRON_DIGEST"); v != "" {
		c.Schedule.DigestCron = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		c.Proxy = v
	}
}
