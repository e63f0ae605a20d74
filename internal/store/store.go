// Package store persists a fitted catalog — vectorizer vocabulary, text
// column list, popularity column name, and the cleaned scheme table — as a
// single sqlite file. Training rebuilds it wholesale; serving loads it
// wholesale and is immediately query-ready without the raw CSV.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/gofrs/flock"

	"schemematch-engine/internal/catalog"
	"schemematch-engine/internal/vector"
)

const schemaVersion = 1

// ErrCorrupt marks a store whose contents disagree with what the engine
// expects. It is the one failure mode that propagates instead of falling
// back: a silently patched model would rank garbage.
var ErrCorrupt = errors.New("store: corrupt or incompatible model store")

// CatalogStore is the unit of persistence: everything recommend needs.
type CatalogStore struct {
	Columns       []string
	PopularityCol string
	Vectorizer    *vector.Vectorizer
	Records       []catalog.Record
}

// Fit builds a query-ready CatalogStore from cleaned records: fits the
// vectorizer over the concatenated documents. Records must already carry
// derived popularity (the loader does this).
func Fit(records []catalog.Record, columns []string, popularityCol string, cfg vector.Config) (*CatalogStore, error) {
	if len(columns) == 0 {
		columns = catalog.DefaultTextColumns
	}
	v := &vector.Vectorizer{Cfg: cfg}
	if err := v.Fit(catalog.Documents(records, columns)); err != nil {
		return nil, fmt.Errorf("fit vectorizer: %w", err)
	}
	return &CatalogStore{
		Columns:       columns,
		PopularityCol: popularityCol,
		Vectorizer:    v,
		Records:       records,
	}, nil
}

// Save writes the store to path as one atomic unit: build a fresh sqlite
// file at a temp path, then rename over the target. An exclusive flock on
// the lock file keeps concurrent trainers off each other.
func Save(path string, cs *CatalogStore) error {
	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("lock store: %w", err)
	}
	if !locked {
		return fmt.Errorf("lock store: %s is locked by another process", path)
	}
	defer func() { _ = lock.Unlock() }()

	tmp := path + ".tmp"
	_ = os.Remove(tmp)

	db, err := openDB(tmp)
	if err != nil {
		return fmt.Errorf("create store: %w", err)
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return fmt.Errorf("migrate store: %w", err)
	}
	if err := writeAll(db, cs); err != nil {
		_ = db.Close()
		return err
	}
	if err := db.Close(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}

	return os.Rename(tmp, path)
}

func writeAll(db *sql.DB, cs *CatalogStore) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	colsJSON, _ := json.Marshal(cs.Columns)
	cfgJSON, _ := json.Marshal(cs.Vectorizer.Cfg)
	meta := map[string]string{
		"text_columns":   string(colsJSON),
		"popularity_col": cs.PopularityCol,
		"vectorizer_cfg": string(cfgJSON),
	}
	for k, v := range meta {
		if _, err := tx.Exec(`INSERT INTO meta(key, value) VALUES(?, ?);`, k, v); err != nil {
			return fmt.Errorf("write meta: %w", err)
		}
	}

	for term, idx := range cs.Vectorizer.Vocab {
		if _, err := tx.Exec(`INSERT INTO vocab(idx, term, idf) VALUES(?, ?, ?);`,
			idx, term, cs.Vectorizer.IDF[idx]); err != nil {
			return fmt.Errorf("write vocab: %w", err)
		}
	}

	for _, r := range cs.Records {
		if _, err := tx.Exec(`
INSERT INTO schemes(scheme_name, slug, level, scheme_category, tags, details,
  benefits, eligibility, application, documents, state, states, popularity)
VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?);`,
			r.SchemeName, r.Slug, r.Level, r.Category, r.Tags, r.Details,
			r.Benefits, r.Eligibility, r.Application, r.Documents,
			r.State, r.States, r.Popularity); err != nil {
			return fmt.Errorf("write schemes: %w", err)
		}
	}

	return tx.Commit()
}

// Load reads the store back. Schema or column-list disagreement is a hard
// ErrCorrupt; nothing here is silently patched. The caller rebuilds
// document vectors through Transform (rank.New does), never by refitting.
func Load(path string) (*CatalogStore, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	lock := flock.New(path + ".lock")
	if err := lock.RLock(); err != nil {
		return nil, fmt.Errorf("lock store: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	db, err := openDB(path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	var version int
	if err := db.QueryRow(`PRAGMA user_version;`).Scan(&version); err != nil {
		return nil, fmt.Errorf("read store version: %w", err)
	}
	if version != schemaVersion {
		return nil, fmt.Errorf("%w: schema version %d, want %d", ErrCorrupt, version, schemaVersion)
	}

	meta, err := readMeta(db)
	if err != nil {
		return nil, err
	}

	cs := &CatalogStore{PopularityCol: meta["popularity_col"]}

	if err := json.Unmarshal([]byte(meta["text_columns"]), &cs.Columns); err != nil || len(cs.Columns) == 0 {
		return nil, fmt.Errorf("%w: bad text column list", ErrCorrupt)
	}
	for _, col := range cs.Columns {
		if !knownColumn(col) {
			return nil, fmt.Errorf("%w: unknown text column %q", ErrCorrupt, col)
		}
	}

	var cfg vector.Config
	if err := json.Unmarshal([]byte(meta["vectorizer_cfg"]), &cfg); err != nil {
		return nil, fmt.Errorf("%w: bad vectorizer config", ErrCorrupt)
	}

	cs.Vectorizer, err = readVocab(db, cfg)
	if err != nil {
		return nil, err
	}

	cs.Records, err = readSchemes(db)
	if err != nil {
		return nil, err
	}
	return cs, nil
}

func knownColumn(name string) bool {
	for _, c := range catalog.DefaultTextColumns {
		if c == name {
			return true
		}
	}
	return name == "state" || name == "states" || name == "slug" || name == "level"
}

func readMeta(db *sql.DB) (map[string]string, error) {
	rows, err := db.Query(`SELECT key, value FROM meta;`)
	if err != nil {
		return nil, fmt.Errorf("read meta: %w", err)
	}
	defer rows.Close()

	out := map[string]string{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("read meta: %w", err)
		}
		out[k] = v
	}
	return out, rows.Err()
}

func readVocab(db *sql.DB, cfg vector.Config) (*vector.Vectorizer, error) {
	rows, err := db.Query(`SELECT idx, term, idf FROM vocab ORDER BY idx;`)
	if err != nil {
		return nil, fmt.Errorf("read vocab: %w", err)
	}
	defer rows.Close()

	v := &vector.Vectorizer{Cfg: cfg, Vocab: map[string]int{}}
	for rows.Next() {
		var idx int
		var term string
		var idf float64
		if err := rows.Scan(&idx, &term, &idf); err != nil {
			return nil, fmt.Errorf("read vocab: %w", err)
		}
		if idx != len(v.IDF) {
			return nil, fmt.Errorf("%w: vocab index gap at %d", ErrCorrupt, idx)
		}
		v.Vocab[term] = idx
		v.IDF = append(v.IDF, idf)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(v.Vocab) == 0 {
		return nil, fmt.Errorf("%w: empty vocabulary", ErrCorrupt)
	}
	return v, nil
}

func readSchemes(db *sql.DB) ([]catalog.Record, error) {
	rows, err := db.Query(`
SELECT scheme_name, slug, level, scheme_category, tags, details, benefits,
  eligibility, application, documents, state, states, popularity
FROM schemes ORDER BY id;`)
	if err != nil {
		return nil, fmt.Errorf("read schemes: %w", err)
	}
	defer rows.Close()

	var out []catalog.Record
	for rows.Next() {
		var r catalog.Record
		if err := rows.Scan(&r.SchemeName, &r.Slug, &r.Level, &r.Category,
			&r.Tags, &r.Details, &r.Benefits, &r.Eligibility, &r.Application,
			&r.Documents, &r.State, &r.States, &r.Popularity); err != nil {
			return nil, fmt.Errorf("read schemes: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
