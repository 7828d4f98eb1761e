// Package collector loads the historical price table once and serves
// per-selection price series from the resulting immutable snapshot.
//
// Sources: CSV/TSV files, .xlsx workbooks, SQLite and Postgres tables. Every
// source exposes the columns Arrival_Date, State, Commodity and Modal_Price.
package collector
