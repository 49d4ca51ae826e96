package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nutlog/internal/store"
)

// writeLedger creates a temp consumption CSV and returns its path.
func writeLedger(t *testing.T, rows ...string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "consumption.csv")
	lines := append([]string{
		"DataHora,Alimento,Quantidade (g/ml),Calorias,Carboidratos,Açúcar,Contém Lactose",
	}, rows...)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_MissingLedgerIsEmpty(t *testing.T) {
	result, err := Load(filepath.Join(t.TempDir(), "consumption.csv"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Entries) != 0 {
		t.Errorf("entries = %v, want empty", result.Entries)
	}
}

func TestLoadWithCache_MissThenHit(t *testing.T) {
	path := writeLedger(t,
		"2026-03-10 08:00:00,Leite,250,150,12.5,12.5,Sim",
		"2026-03-10 12:30:00,Arroz,180,234,50.4,0.18,Não",
	)

	cache, err := store.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = cache.Close() }()

	// First load parses the CSV and warms the cache.
	first, err := LoadWithCache(path, cache)
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	if first.FromCache {
		t.Error("first load unexpectedly served from cache")
	}
	if len(first.Entries) != 2 {
		t.Fatalf("first load = %d entries, want 2", len(first.Entries))
	}

	// Unchanged file: second load is a cache hit with identical data.
	second, err := LoadWithCache(path, cache)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if !second.FromCache {
		t.Error("second load did not hit the cache")
	}
	if len(second.Entries) != 2 {
		t.Fatalf("second load = %d entries, want 2", len(second.Entries))
	}
	for i := range first.Entries {
		if second.Entries[i] != first.Entries[i] {
			t.Errorf("entry %d differs between parse and cache: %+v vs %+v",
				i, first.Entries[i], second.Entries[i])
		}
	}
}

func TestLoadWithCache_InvalidatesOnChange(t *testing.T) {
	path := writeLedger(t,
		"2026-03-10 08:00:00,Leite,250,150,12.5,12.5,Sim",
	)

	cache, err := store.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = cache.Close() }()

	if _, err := LoadWithCache(path, cache); err != nil {
		t.Fatal(err)
	}

	// Append a row; the size change alone must invalidate the cache.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString("2026-03-10 12:30:00,Arroz,180,234,50.4,0.18,Não\n"); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	result, err := LoadWithCache(path, cache)
	if err != nil {
		t.Fatal(err)
	}
	if result.FromCache {
		t.Error("stale cache served after the ledger grew")
	}
	if len(result.Entries) != 2 {
		t.Errorf("entries = %d, want 2 after append", len(result.Entries))
	}
}

func TestLoadWithCache_MissingLedger(t *testing.T) {
	cache, err := store.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = cache.Close() }()

	result, err := LoadWithCache(filepath.Join(t.TempDir(), "consumption.csv"), cache)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Entries) != 0 {
		t.Errorf("entries = %v, want empty", result.Entries)
	}
}
