package collector

import (
	"context"
	"database/sql"
	"fmt"

	"BuyOrWait/internal/logger"
	"BuyOrWait/internal/model"

	_ "modernc.org/sqlite"
)

const sqliteDateLayout = "2006-01-02"

// SQLiteFetcher reads the price table from the price_observations table of a
// SQLite database.
type SQLiteFetcher struct {
	db   *sql.DB
	path string
}

// NewSQLiteFetcher opens (or creates) the database and ensures the schema exists.
func NewSQLiteFetcher(dbPath string) (*SQLiteFetcher, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	f := &SQLiteFetcher{db: db, path: dbPath}
	if err := f.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Log.Infof("sqlite price table opened: %s", dbPath)
	return f, nil
}

func (f *SQLiteFetcher) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS price_observations (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			arrival_date TEXT NOT NULL,
			state        TEXT NOT NULL,
			commodity    TEXT NOT NULL,
			modal_price  REAL NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_price_selection ON price_observations(state, commodity, arrival_date)`,
	}
	for _, s := range stmts {
		if _, err := f.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (f *SQLiteFetcher) Name() string { return "sqlite:" + f.path }

func (f *SQLiteFetcher) FetchObservations(ctx context.Context) ([]model.PriceObservation, error) {
	rows, err := f.db.QueryContext(ctx,
		`SELECT arrival_date, state, commodity, modal_price FROM price_observations ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query observations: %w", err)
	}
	defer rows.Close()

	var obs []model.PriceObservation
	for rows.Next() {
		var (
			rawDate string
			o       model.PriceObservation
		)
		if err := rows.Scan(&rawDate, &o.Region, &o.Commodity, &o.Price); err != nil {
			return nil, fmt.Errorf("scan observation: %w", err)
		}
		if o.Date, err = ParseDate(rawDate); err != nil {
			return nil, fmt.Errorf("observation %s/%s: %w", o.Region, o.Commodity, err)
		}
		obs = append(obs, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate observations: %w", err)
	}
	return obs, nil
}

// Import appends observations to the table in a single transaction.
func (f *SQLiteFetcher) Import(ctx context.Context, obs []model.PriceObservation) error {
	tx, err := f.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO price_observations (arrival_date, state, commodity, modal_price) VALUES (?,?,?,?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare import: %w", err)
	}
	defer stmt.Close()

	for _, o := range obs {
		if _, err := stmt.ExecContext(ctx, o.Date.Format(sqliteDateLayout), o.Region, o.Commodity, o.Price); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert observation: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	logger.Log.Infof("imported %d observations into %s", len(obs), f.path)
	return nil
}

func (f *SQLiteFetcher) Close() error {
	return f.db.Close()
}
