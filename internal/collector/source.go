package collector

import (
	"context"
	"path/filepath"
	"strings"

	"BuyOrWait/internal/config"
)

// NewFetcher picks the configured source: Postgres, then SQLite, then a file
// chosen by extension. The returned cleanup releases any connection.
func NewFetcher(ctx context.Context, cfg config.DataConfig) (Fetcher, func(), error) {
	switch {
	case cfg.Postgres.Host != "":
		f, err := NewPostgresFetcher(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, err
		}
		return f, f.Close, nil
	case cfg.SQLitePath != "":
		f, err := NewSQLiteFetcher(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return f, func() { f.Close() }, nil
	}

	switch strings.ToLower(filepath.Ext(cfg.Path)) {
	case ".xlsx", ".xlsm":
		return NewExcelFetcher(cfg.Path, cfg.Sheet), func() {}, nil
	default:
		return NewCSVFetcher(cfg.Path), func() {}, nil
	}
}
