// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatAmount renders a nutrient amount with up to 2 decimal places,
// trimming trailing zeros. e.g., 150.0 -> "150", 12.5 -> "12.5"
func FormatAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}

// FormatKcal renders a calorie amount with its unit.
func FormatKcal(v float64) string {
	return FormatAmount(v) + " kcal"
}

// FormatGrams renders a gram amount with its unit.
func FormatGrams(v float64) string {
	return FormatAmount(v) + " g"
}

// FormatQuantity renders a consumed quantity in the 100-unit basis.
func FormatQuantity(v float64) string {
	return FormatAmount(v) + " g/ml"
}

// FormatSigned renders an amount with an explicit sign, for balance deltas.
// e.g., -200 -> "-200", 150 -> "+150"
func FormatSigned(v float64) string {
	if v < 0 {
		return "-" + FormatAmount(-v)
	}
	return "+" + FormatAmount(v)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatDayOfWeek returns a 3-letter day abbreviation from a weekday number.
func FormatDayOfWeek(weekday int) string {
	days := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if weekday >= 0 && weekday < 7 {
		return days[weekday]
	}
	return "???"
}

// FormatLactose normalizes a lactose flag for display; empty means unknown.
func FormatLactose(flag string) string {
	if strings.TrimSpace(flag) == "" {
		return "—"
	}
	return flag
}

// Percent formats a 0-1 ratio as a percentage string.
func Percent(f float64) string {
	return fmt.Sprintf("%.0f%%", f*100)
}
