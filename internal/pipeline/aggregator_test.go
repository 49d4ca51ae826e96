package pipeline

import (
	"testing"
	"time"

	"nutlog/internal/model"
)

func entry(at time.Time, food string, kcal, carbs, sugar float64) model.ConsumptionEntry {
	return model.ConsumptionEntry{
		Time:     at,
		Food:     food,
		Quantity: 100,
		Calories: kcal,
		Carbs:    carbs,
		Sugar:    sugar,
	}
}

func TestAggregateDay_SumsOnlyMatchingDate(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)
	entries := []model.ConsumptionEntry{
		entry(day.Add(8*time.Hour), "Leite", 150, 12.5, 12.5),
		entry(day.Add(13*time.Hour), "Arroz", 234, 50.4, 0.18),
		entry(day.AddDate(0, 0, -1).Add(20*time.Hour), "Azeite", 114.92, 0, 0),
		entry(day.AddDate(0, 0, 1), "Leite", 60, 5, 5),
	}

	totals := AggregateDay(entries, day.Add(15*time.Hour))

	if totals.Entries != 2 {
		t.Errorf("Entries = %d, want 2", totals.Entries)
	}
	if totals.Calories != 384 {
		t.Errorf("Calories = %v, want 384", totals.Calories)
	}
	if totals.Carbs != 62.9 {
		t.Errorf("Carbs = %v, want 62.9", totals.Carbs)
	}
	if !totals.Date.Equal(day) {
		t.Errorf("Date = %v, want %v (midnight)", totals.Date, day)
	}
}

func TestAggregateDay_Empty(t *testing.T) {
	totals := AggregateDay(nil, time.Now())
	if totals.Entries != 0 || totals.Calories != 0 || totals.Carbs != 0 || totals.Sugar != 0 {
		t.Errorf("totals = %+v, want all zero", totals)
	}
}

func TestFilterByDay_BoundariesAreLocalMidnight(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)
	entries := []model.ConsumptionEntry{
		entry(day, "A", 1, 0, 0),                                    // 00:00:00 inclusive
		entry(day.Add(24*time.Hour-time.Second), "B", 1, 0, 0),      // 23:59:59 inclusive
		entry(day.Add(24*time.Hour), "C", 1, 0, 0),                  // next day
		entry(day.Add(-time.Second), "D", 1, 0, 0),                  // previous day
	}

	got := FilterByDay(entries, day)
	if len(got) != 2 {
		t.Fatalf("filtered %d entries, want 2", len(got))
	}
	if got[0].Food != "A" || got[1].Food != "B" {
		t.Errorf("filtered = %v %v, want A B", got[0].Food, got[1].Food)
	}
}

func TestBalance_OrderAndRemaining(t *testing.T) {
	totals := model.DayTotals{Calories: 1850.5, Carbs: 310.25, Sugar: 12}

	balances := Balance(totals, model.DefaultTargets)

	if len(balances) != 3 {
		t.Fatalf("got %d balances, want 3", len(balances))
	}

	wantOrder := []string{"Calories", "Carbohydrates", "Sugar"}
	for i, nb := range balances {
		if nb.Nutrient != wantOrder[i] {
			t.Errorf("balance %d = %q, want %q", i, nb.Nutrient, wantOrder[i])
		}
	}

	if balances[0].Remaining != 149.5 {
		t.Errorf("calories remaining = %v, want 149.5", balances[0].Remaining)
	}
	// Over target stays negative, never clamped to zero.
	if balances[1].Remaining != -10.25 {
		t.Errorf("carbs remaining = %v, want -10.25", balances[1].Remaining)
	}
	if balances[2].Remaining != 18 {
		t.Errorf("sugar remaining = %v, want 18", balances[2].Remaining)
	}
}

func TestBalance_ZeroConsumptionEqualsTargets(t *testing.T) {
	balances := Balance(model.DayTotals{}, model.DefaultTargets)
	for _, nb := range balances {
		if nb.Remaining != nb.Target {
			t.Errorf("%s remaining = %v, want full target %v", nb.Nutrient, nb.Remaining, nb.Target)
		}
	}
}

func TestAggregateMonths_GroupsAndSorts(t *testing.T) {
	entries := []model.ConsumptionEntry{
		entry(time.Date(2026, 3, 10, 8, 0, 0, 0, time.Local), "Leite", 150, 12.5, 12.5),
		entry(time.Date(2026, 1, 5, 12, 0, 0, 0, time.Local), "Arroz", 234, 50.4, 0.18),
		entry(time.Date(2026, 3, 28, 20, 0, 0, 0, time.Local), "Azeite", 115.25, 0, 0),
		entry(time.Date(2025, 12, 31, 23, 0, 0, 0, time.Local), "Leite", 60, 5, 5),
	}

	months := AggregateMonths(entries)

	if len(months) != 3 {
		t.Fatalf("got %d months, want 3", len(months))
	}

	wantKeys := []string{"2025-12", "2026-01", "2026-03"}
	for i, m := range months {
		if got := m.Month.Format("2006-01"); got != wantKeys[i] {
			t.Errorf("month %d = %s, want %s (ascending)", i, got, wantKeys[i])
		}
	}

	march := months[2]
	if march.Entries != 2 {
		t.Errorf("2026-03 entries = %d, want 2", march.Entries)
	}
	if march.Calories != 265.25 {
		t.Errorf("2026-03 calories = %v, want 265.25", march.Calories)
	}
}

func TestAggregateMonths_Empty(t *testing.T) {
	if months := AggregateMonths(nil); len(months) != 0 {
		t.Errorf("months = %v, want empty", months)
	}
}
