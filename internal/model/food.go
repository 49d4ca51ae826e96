// Package model defines domain types for nutlog foods, entries, and totals.
package model

// FoodProfile is one row of the nutritional reference table.
// All nutrient values are per 100 g/ml of the food. Profiles are
// immutable after load.
type FoodProfile struct {
	Name           string
	CaloriesPer100 float64
	CarbsPer100    float64
	SugarPer100    float64
	Lactose        string // copied verbatim from the source ("Sim", "Não", ...)
}

// DailyTargets holds the fixed daily intake targets, per nutrient.
type DailyTargets struct {
	Calories float64
	Carbs    float64
	Sugar    float64
}

// DefaultTargets are the built-in daily targets. Config can override them,
// but these are the values the balance view uses out of the box.
var DefaultTargets = DailyTargets{
	Calories: 2000,
	Carbs:    300,
	Sugar:    30,
}
