// Package reftable loads the static per-100g nutritional reference table.
package reftable

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"nutlog/internal/model"
)

// ErrSourceUnavailable indicates the reference table file is missing or
// malformed. This is fatal at startup; the process cannot do anything
// useful without the table.
var ErrSourceUnavailable = errors.New("reference table unavailable")

// Required column headers, as written by the source data set.
// The headers carry accents; the file must be UTF-8.
const (
	colName     = "Alimento"
	colCalories = "Calorias (kcal)"
	colCarbs    = "Carboidratos (g)"
	colSugar    = "Açúcar (g)"
	colLactose  = "Contém Lactose"
)

// Table is an immutable food-name lookup. It is loaded once at startup and
// passed explicitly to whoever needs it; there is no package-level cache.
type Table struct {
	profiles map[string]model.FoodProfile
	names    []string // source file order, for stable display
}

// Load reads the reference CSV at path. Every row becomes one FoodProfile
// keyed by food name; a duplicate name keeps the first occurrence.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading header of %s: %v", ErrSourceUnavailable, path, err)
	}

	idx, err := columnIndex(header)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, path, err)
	}

	t := &Table{profiles: make(map[string]model.FoodProfile)}

	for line := 2; ; line++ {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: %v", ErrSourceUnavailable, path, line, err)
		}

		p, err := profileFromRecord(record, idx)
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: %v", ErrSourceUnavailable, path, line, err)
		}
		if _, dup := t.profiles[p.Name]; dup {
			continue
		}
		t.profiles[p.Name] = p
		t.names = append(t.names, p.Name)
	}

	if len(t.names) == 0 {
		return nil, fmt.Errorf("%w: %s has no food rows", ErrSourceUnavailable, path)
	}

	return t, nil
}

type columns struct {
	name, calories, carbs, sugar, lactose int
}

func columnIndex(header []string) (columns, error) {
	idx := columns{name: -1, calories: -1, carbs: -1, sugar: -1, lactose: -1}
	for i, h := range header {
		switch strings.TrimSpace(h) {
		case colName:
			idx.name = i
		case colCalories:
			idx.calories = i
		case colCarbs:
			idx.carbs = i
		case colSugar:
			idx.sugar = i
		case colLactose:
			idx.lactose = i
		}
	}

	missing := []string{}
	if idx.name < 0 {
		missing = append(missing, colName)
	}
	if idx.calories < 0 {
		missing = append(missing, colCalories)
	}
	if idx.carbs < 0 {
		missing = append(missing, colCarbs)
	}
	if idx.sugar < 0 {
		missing = append(missing, colSugar)
	}
	if idx.lactose < 0 {
		missing = append(missing, colLactose)
	}
	if len(missing) > 0 {
		return idx, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return idx, nil
}

func profileFromRecord(record []string, idx columns) (model.FoodProfile, error) {
	var p model.FoodProfile

	p.Name = strings.TrimSpace(record[idx.name])
	if p.Name == "" {
		return p, errors.New("empty food name")
	}

	var err error
	if p.CaloriesPer100, err = parseNumber(record[idx.calories]); err != nil {
		return p, fmt.Errorf("calories: %v", err)
	}
	if p.CarbsPer100, err = parseNumber(record[idx.carbs]); err != nil {
		return p, fmt.Errorf("carbohydrates: %v", err)
	}
	if p.SugarPer100, err = parseNumber(record[idx.sugar]); err != nil {
		return p, fmt.Errorf("sugar: %v", err)
	}
	p.Lactose = strings.TrimSpace(record[idx.lactose])

	return p, nil
}

func parseNumber(s string) (float64, error) {
	// Source files sometimes use a decimal comma.
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	return strconv.ParseFloat(s, 64)
}

// Lookup returns the profile for a food name.
func (t *Table) Lookup(name string) (model.FoodProfile, bool) {
	p, ok := t.profiles[name]
	return p, ok
}

// Names returns all food names in source file order.
func (t *Table) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Len returns the number of foods in the table.
func (t *Table) Len() int {
	return len(t.names)
}
