package model

import "time"

// ConsumptionEntry is one recorded consumption event. Nutrient values are
// already scaled to the consumed quantity and rounded to 2 decimal places.
// Entries are written once and never updated.
type ConsumptionEntry struct {
	Time     time.Time // second precision
	Food     string    // denormalized; not re-validated against the table on read
	Quantity float64   // grams or millilitres, same basis as the profile
	Calories float64
	Carbs    float64
	Sugar    float64
	Lactose  string // snapshot of the profile's lactose flag at write time
}

// Day returns the entry's calendar date, truncated to midnight local time.
func (e ConsumptionEntry) Day() time.Time {
	y, m, d := e.Time.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, e.Time.Location())
}
