package collector

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"time"

	"BuyOrWait/internal/config"
	"BuyOrWait/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresFetcher reads the price table from the price_observations table of
// a Postgres database. The table needs a unique id column next to the four
// price columns; rows sharing a date are returned in id order.
type PostgresFetcher struct {
	pool *pgxpool.Pool
	host string
}

const postgresSelect = `SELECT arrival_date, state, commodity, modal_price::float8
	FROM price_observations
	ORDER BY arrival_date, id`

// BuildConnString builds a PostgreSQL connection string from config.
func BuildConnString(cfg config.DBConfig) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "prefer"
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(cfg.User),
		url.QueryEscape(cfg.Password),
		cfg.Host,
		cfg.Port,
		cfg.Name,
		sslMode,
	)
}

// NewPostgresFetcher creates a connection pool and verifies it with a ping.
func NewPostgresFetcher(ctx context.Context, cfg config.DBConfig) (*PostgresFetcher, error) {
	poolCfg, err := pgxpool.ParseConfig(BuildConnString(cfg))
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxConns)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresFetcher{pool: pool, host: cfg.Host}, nil
}

func (f *PostgresFetcher) Name() string { return "postgres:" + f.host }

func (f *PostgresFetcher) FetchObservations(ctx context.Context) ([]model.PriceObservation, error) {
	rows, err := f.pool.Query(ctx, postgresSelect)
	if err != nil {
		return nil, fmt.Errorf("query observations: %w", err)
	}
	defer rows.Close()

	var obs []model.PriceObservation
	for rows.Next() {
		var (
			date time.Time
			o    model.PriceObservation
		)
		if err := rows.Scan(&date, &o.Region, &o.Commodity, &o.Price); err != nil {
			return nil, fmt.Errorf("scan observation: %w", err)
		}
		if math.IsNaN(o.Price) || math.IsInf(o.Price, 0) {
			return nil, fmt.Errorf("invalid price %v for %s / %s on %s", o.Price, o.Region, o.Commodity, date.Format("2006-01-02"))
		}
		o.Date = truncateDay(date)
		obs = append(obs, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate observations: %w", err)
	}
	return obs, nil
}

func (f *PostgresFetcher) Close() {
	f.pool.Close()
}
