// Package pipeline orchestrates ledger loading, caching, and aggregation.
package pipeline

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"nutlog/internal/model"
)

// FilterByDay returns the entries whose date component equals day.
func FilterByDay(entries []model.ConsumptionEntry, day time.Time) []model.ConsumptionEntry {
	y, m, d := day.Date()
	var result []model.ConsumptionEntry
	for _, e := range entries {
		ey, em, ed := e.Time.Date()
		if ey == y && em == m && ed == d {
			result = append(result, e)
		}
	}
	return result
}

// AggregateDay sums the nutrient fields of all entries dated day.
// Zero matching entries yields zero totals, never an error.
func AggregateDay(entries []model.ConsumptionEntry, day time.Time) model.DayTotals {
	y, m, d := day.Date()
	totals := model.DayTotals{
		Date: time.Date(y, m, d, 0, 0, 0, 0, day.Location()),
	}

	for _, e := range FilterByDay(entries, day) {
		totals.Entries++
		totals.Calories += e.Calories
		totals.Carbs += e.Carbs
		totals.Sugar += e.Sugar
	}

	return totals
}

// Balance computes target − consumed per nutrient, in fixed display order.
// Remaining is rounded to 2 decimal places and may be negative (over
// target); it is never clamped.
func Balance(totals model.DayTotals, targets model.DailyTargets) []model.NutrientBalance {
	return []model.NutrientBalance{
		{
			Nutrient:  "Calories",
			Unit:      "kcal",
			Target:    targets.Calories,
			Consumed:  totals.Calories,
			Remaining: round2(targets.Calories - totals.Calories),
		},
		{
			Nutrient:  "Carbohydrates",
			Unit:      "g",
			Target:    targets.Carbs,
			Consumed:  totals.Carbs,
			Remaining: round2(targets.Carbs - totals.Carbs),
		},
		{
			Nutrient:  "Sugar",
			Unit:      "g",
			Target:    targets.Sugar,
			Consumed:  totals.Sugar,
			Remaining: round2(targets.Sugar - totals.Sugar),
		},
	}
}

// AggregateMonths groups all entries by calendar year-month and sums the
// nutrient fields per group. Groups are returned in ascending month order
// for stable display.
func AggregateMonths(entries []model.ConsumptionEntry) []model.MonthTotals {
	monthMap := make(map[string]*model.MonthTotals)

	for _, e := range entries {
		key := e.Time.Format("2006-01")
		mt, ok := monthMap[key]
		if !ok {
			y, m, _ := e.Time.Date()
			mt = &model.MonthTotals{
				Month: time.Date(y, m, 1, 0, 0, 0, 0, e.Time.Location()),
			}
			monthMap[key] = mt
		}
		mt.Entries++
		mt.Calories += e.Calories
		mt.Carbs += e.Carbs
		mt.Sugar += e.Sugar
	}

	months := make([]model.MonthTotals, 0, len(monthMap))
	for _, mt := range monthMap {
		months = append(months, *mt)
	}
	sort.Slice(months, func(i, j int) bool {
		return months[i].Month.Before(months[j].Month)
	})

	return months
}

// round2 rounds to 2 decimal places, half away from zero, matching the
// rounding used when entries are recorded.
func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
