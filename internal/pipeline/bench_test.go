package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"nutlog/internal/model"
	"nutlog/internal/store"
)

func syntheticEntries(n int) []model.ConsumptionEntry {
	base := time.Date(2025, 1, 1, 8, 0, 0, 0, time.Local)
	entries := make([]model.ConsumptionEntry, n)
	for i := range entries {
		entries[i] = model.ConsumptionEntry{
			Time:     base.Add(time.Duration(i) * 3 * time.Hour),
			Food:     "Arroz",
			Quantity: 180,
			Calories: 234,
			Carbs:    50.4,
			Sugar:    0.18,
			Lactose:  "Não",
		}
	}
	return entries
}

func syntheticLedger(b *testing.B, n int) string {
	b.Helper()
	var sb strings.Builder
	sb.WriteString("DataHora,Alimento,Quantidade (g/ml),Calorias,Carboidratos,Açúcar,Contém Lactose\n")
	for _, e := range syntheticEntries(n) {
		fmt.Fprintf(&sb, "%s,%s,180,234,50.4,0.18,Não\n", e.Time.Format("2006-01-02 15:04:05"), e.Food)
	}

	path := filepath.Join(b.TempDir(), "consumption.csv")
	if err := os.WriteFile(path, []byte(sb.String()), 0o600); err != nil {
		b.Fatal(err)
	}
	return path
}

func BenchmarkLoad(b *testing.B) {
	path := syntheticLedger(b, 5000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		result, err := Load(path)
		if err != nil {
			b.Fatal(err)
		}
		_ = result
	}
}

func BenchmarkLoadWithCache(b *testing.B) {
	path := syntheticLedger(b, 5000)

	cache, err := store.Open(filepath.Join(b.TempDir(), "history.db"))
	if err != nil {
		b.Fatal(err)
	}
	defer func() { _ = cache.Close() }()

	// Warm the cache once so the loop measures the hit path.
	if _, err := LoadWithCache(path, cache); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		result, err := LoadWithCache(path, cache)
		if err != nil {
			b.Fatal(err)
		}
		_ = result
	}
}

func BenchmarkAggregateMonths(b *testing.B) {
	entries := syntheticEntries(10000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = AggregateMonths(entries)
	}
}
