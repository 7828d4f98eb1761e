package config

// Default values for optional configuration fields.
const (
	DefaultDataPath          = "data/clean_2026.csv"
	DefaultDigestCron        = "0 0 8 * * *"
	DefaultCurrency          = "₹"
	DefaultLogLevel          = "info"
	DefaultDBPort            = 5432
	DefaultDBSSLMode         = "prefer"
	DefaultDBMaxConns        = 4
	DefaultMessagesPerSecond = 1.0
)

func (c *Config) applyDefaults() {
	if c.Data.Path == "" && c.Data.SQLitePath == "" && c.Data.Postgres.Host == "" {
		c.Data.Path = DefaultDataPath
	}
	if c.Data.Postgres.Host != "" {
		if c.Data.Postgres.Port == 0 {
			c.Data.Postgres.Port = DefaultDBPort
		}
		if c.Data.Postgres.SSLMode == "" {
			c.Data.Postgres.SSLMode = DefaultDBSSLMode
		}
		if c.Data.Postgres.MaxConns == 0 {
			c.Data.Postgres.MaxConns = DefaultDBMaxConns
		}
	}
	if c.Schedule.DigestCron == "" {
		c.Schedule.DigestCron = DefaultDigestCron
	}
	if c.Telegram.MessagesPerSecond == 0 {
		c.Telegram.MessagesPerSecond = DefaultMessagesPerSecond
	}
	if c.Currency == "" {
		c.Currency = DefaultCurrency
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}
