package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"nutlog/internal/ledger"
	"nutlog/internal/model"
	"nutlog/internal/store"
)

// LoadResult holds the output of a history load.
type LoadResult struct {
	Entries   []model.ConsumptionEntry
	FromCache bool
}

// Load reads the whole ledger file. A missing ledger is an empty history.
func Load(ledgerPath string) (*LoadResult, error) {
	entries, err := ledger.ReadFile(ledgerPath)
	if err != nil {
		return nil, err
	}
	return &LoadResult{Entries: entries}, nil
}

// LoadWithCache serves the history from the sqlite cache when the ledger
// file is unchanged (same mtime and size), and reparses + refreshes the
// cache otherwise. A cache write failure is not fatal; the parsed entries
// are still returned.
func LoadWithCache(ledgerPath string, cache *store.Cache) (*LoadResult, error) {
	info, err := os.Stat(ledgerPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &LoadResult{}, nil
		}
		return nil, fmt.Errorf("stat %s: %w", ledgerPath, err)
	}

	tracked, ok, err := cache.TrackedFile(ledgerPath)
	if err != nil {
		return nil, fmt.Errorf("reading cache tracker: %w", err)
	}

	if ok && tracked.MtimeNs == info.ModTime().UnixNano() && tracked.SizeBytes == info.Size() {
		entries, err := cache.LoadEntries()
		if err != nil {
			return nil, fmt.Errorf("loading cached entries: %w", err)
		}
		return &LoadResult{Entries: entries, FromCache: true}, nil
	}

	entries, err := ledger.ReadFile(ledgerPath)
	if err != nil {
		return nil, err
	}

	_ = cache.ReplaceEntries(ledgerPath, entries, info.ModTime().UnixNano(), info.Size())

	return &LoadResult{Entries: entries}, nil
}

// CacheDir returns the platform-appropriate cache directory.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "nutlog")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "nutlog")
}

// CachePath returns the full path to the cache database.
func CachePath() string {
	return filepath.Join(CacheDir(), "history.db")
}
