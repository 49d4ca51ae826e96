package model

import "time"

// DayTotals holds summed nutrient values for a single calendar day.
type DayTotals struct {
	Date     time.Time
	Entries  int
	Calories float64
	Carbs    float64
	Sugar    float64
}

// NutrientBalance compares consumption against a daily target for one nutrient.
// Remaining is negative when the target is exceeded; it is displayed as-is.
type NutrientBalance struct {
	Nutrient  string
	Unit      string
	Target    float64
	Consumed  float64
	Remaining float64
}

// MonthTotals holds summed nutrient values for one calendar year-month.
type MonthTotals struct {
	Month    time.Time // first day of the month
	Entries  int
	Calories float64
	Carbs    float64
	Sugar    float64
}
