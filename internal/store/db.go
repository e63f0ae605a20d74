package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

func openDB(path string) (*sql.DB, error) {
	// modernc sqlite uses DSN like: file:foo.db?_pragma=busy_timeout(5000)
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)

	pool, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	pool.SetMaxOpenConns(1) // sqlite typically wants 1 writer
	pool.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := pool.PingContext(ctx); err != nil {
		_ = pool.Close()
		return nil, err
	}

	return pool, nil
}

func migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= schemaVersion {
		return tx.Commit()
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS meta (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS vocab (
  idx INTEGER PRIMARY KEY,
  term TEXT NOT NULL,
  idf REAL NOT NULL
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS schemes (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  scheme_name TEXT NOT NULL DEFAULT '',
  slug TEXT NOT NULL DEFAULT '',
  level TEXT NOT NULL DEFAULT '',
  scheme_category TEXT NOT NULL DEFAULT '',
  tags TEXT NOT NULL DEFAULT '',
  details TEXT NOT NULL DEFAULT '',
  benefits TEXT NOT NULL DEFAULT '',
  eligibility TEXT NOT NULL DEFAULT '',
  application TEXT NOT NULL DEFAULT '',
  documents TEXT NOT NULL DEFAULT '',
  state TEXT NOT NULL DEFAULT '',
  states TEXT NOT NULL DEFAULT '',
  popularity REAL NOT NULL DEFAULT 1.0
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(fmt.Sprintf(`PRAGMA user_version = %d;`, schemaVersion)); err != nil {
		return err
	}
	return tx.Commit()
}
