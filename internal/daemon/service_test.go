package daemon

import (
	"math"
	"testing"
	"time"

	"nutlog/internal/model"
)

func TestDiffSnapshots(t *testing.T) {
	prev := Snapshot{
		Date:     "2026-03-10",
		Entries:  3,
		Calories: 850,
		Carbs:    120.5,
		Sugar:    14,
	}
	curr := Snapshot{
		Date:     "2026-03-10",
		Entries:  5,
		Calories: 1230,
		Carbs:    165.75,
		Sugar:    22,
	}

	delta := diffSnapshots(prev, curr)
	if delta.Entries != 2 {
		t.Fatalf("Entries delta = %d, want 2", delta.Entries)
	}
	if delta.Calories != 380 {
		t.Fatalf("Calories delta = %v, want 380", delta.Calories)
	}
	if math.Abs(delta.Carbs-45.25) > 1e-9 {
		t.Fatalf("Carbs delta = %v, want 45.25", delta.Carbs)
	}
	if delta.Sugar != 8 {
		t.Fatalf("Sugar delta = %v, want 8", delta.Sugar)
	}
	if delta.isZero() {
		t.Fatal("delta unexpectedly reported as zero")
	}
}

func TestDiffSnapshots_MidnightRollover(t *testing.T) {
	prev := Snapshot{
		Date:     "2026-03-10",
		Entries:  5,
		Calories: 1900,
		Carbs:    280,
		Sugar:    25,
	}
	curr := Snapshot{
		Date:     "2026-03-11",
		Entries:  1,
		Calories: 150,
		Carbs:    12.5,
		Sugar:    12.5,
	}

	// On a date change the counters restart; the delta is the new day's
	// totals, not negative differences against yesterday.
	delta := diffSnapshots(prev, curr)
	if delta.Entries != 1 {
		t.Fatalf("Entries delta = %d, want 1", delta.Entries)
	}
	if delta.Calories != 150 {
		t.Fatalf("Calories delta = %v, want 150", delta.Calories)
	}
	if delta.Carbs != 12.5 {
		t.Fatalf("Carbs delta = %v, want 12.5", delta.Carbs)
	}
}

func TestDiffSnapshots_NoChangeIsZero(t *testing.T) {
	snap := Snapshot{Date: "2026-03-10", Entries: 4, Calories: 900, Carbs: 110, Sugar: 18}
	if delta := diffSnapshots(snap, snap); !delta.isZero() {
		t.Fatalf("delta = %+v, want zero", delta)
	}
}

func TestSnapshotFromEntries(t *testing.T) {
	at := time.Date(2026, 3, 10, 14, 0, 0, 0, time.Local)
	entries := []model.ConsumptionEntry{
		{Time: at.Add(-6 * time.Hour), Food: "Leite", Calories: 150, Carbs: 12.5, Sugar: 12.5},
		{Time: at.Add(-2 * time.Hour), Food: "Arroz", Calories: 234, Carbs: 50.4, Sugar: 0.18},
		{Time: at.AddDate(0, 0, -1), Food: "Azeite", Calories: 884, Carbs: 0, Sugar: 0},
	}

	snap := snapshotFromEntries(entries, model.DefaultTargets, at)

	if snap.Date != "2026-03-10" {
		t.Fatalf("Date = %q, want 2026-03-10", snap.Date)
	}
	if snap.Entries != 2 {
		t.Fatalf("Entries = %d, want 2 (yesterday excluded)", snap.Entries)
	}
	if snap.Calories != 384 {
		t.Fatalf("Calories = %v, want 384", snap.Calories)
	}
	if snap.CaloriesLeft != 1616 {
		t.Fatalf("CaloriesLeft = %v, want 1616", snap.CaloriesLeft)
	}
	if snap.HistoryLength != 3 {
		t.Fatalf("HistoryLength = %d, want 3 (all entries ever)", snap.HistoryLength)
	}
}

func TestPublishEventRingBuffer(t *testing.T) {
	s := New(Config{
		LedgerPath:   "consumption.csv",
		Targets:      model.DefaultTargets,
		Interval:     10 * time.Second,
		EventsBuffer: 2,
	})

	s.publishEvent(Event{ID: 1})
	s.publishEvent(Event{ID: 2})
	s.publishEvent(Event{ID: 3})

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.events) != 2 {
		t.Fatalf("events len = %d, want 2", len(s.events))
	}
	if s.events[0].ID != 2 || s.events[1].ID != 3 {
		t.Fatalf("events ring contains IDs [%d, %d], want [2, 3]", s.events[0].ID, s.events[1].ID)
	}
}
