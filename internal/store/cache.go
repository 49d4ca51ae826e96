// Package store provides a SQLite-backed read cache for parsed ledger
// entries. The CSV ledger stays the source of truth; the cache only skips
// reparsing when the ledger file has not changed.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"nutlog/internal/ledger"
	"nutlog/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Cache wraps the sqlite database.
type Cache struct {
	db *sql.DB
}

// Open opens or creates the cache database at the given path.
func Open(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// FileInfo holds the tracked mtime and size for the ledger file.
type FileInfo struct {
	MtimeNs   int64
	SizeBytes int64
}

// TrackedFile returns the tracked state of the ledger file, if any.
func (c *Cache) TrackedFile(path string) (FileInfo, bool, error) {
	var fi FileInfo
	err := c.db.QueryRow(
		"SELECT mtime_ns, size_bytes FROM ledger_tracker WHERE file_path = ?", path,
	).Scan(&fi.MtimeNs, &fi.SizeBytes)
	if err == sql.ErrNoRows {
		return fi, false, nil
	}
	if err != nil {
		return fi, false, err
	}
	return fi, true, nil
}

// ReplaceEntries swaps the cached entry set for the given ledger file in one
// transaction and records the file state they were parsed from.
func (c *Cache) ReplaceEntries(path string, entries []model.ConsumptionEntry, mtimeNs, sizeBytes int64) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM entries"); err != nil {
		return err
	}

	for _, e := range entries {
		_, err := tx.Exec(`INSERT INTO entries
			(recorded_at, food, quantity, calories, carbs, sugar, lactose)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			e.Time.Format(ledger.TimeLayout), e.Food, e.Quantity,
			e.Calories, e.Carbs, e.Sugar, e.Lactose,
		)
		if err != nil {
			return err
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = tx.Exec(`INSERT OR REPLACE INTO ledger_tracker (file_path, mtime_ns, size_bytes, cached_at)
		VALUES (?, ?, ?, ?)`, path, mtimeNs, sizeBytes, now)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// LoadEntries reads all cached entries in append (seq) order.
func (c *Cache) LoadEntries() ([]model.ConsumptionEntry, error) {
	rows, err := c.db.Query(`SELECT recorded_at, food, quantity, calories, carbs, sugar, lactose
		FROM entries ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []model.ConsumptionEntry
	for rows.Next() {
		var e model.ConsumptionEntry
		var recorded string
		if err := rows.Scan(&recorded, &e.Food, &e.Quantity, &e.Calories, &e.Carbs, &e.Sugar, &e.Lactose); err != nil {
			return nil, err
		}
		e.Time, err = time.ParseInLocation(ledger.TimeLayout, recorded, time.Local)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// EntryCount returns the number of cached entries.
func (c *Cache) EntryCount() (int, error) {
	var count int
	err := c.db.QueryRow("SELECT COUNT(*) FROM entries").Scan(&count)
	return count, err
}
