// Package ledger implements the append-only consumption log: scaling a
// (food, quantity) pair against the reference table, durable CSV appends,
// and whole-file history reads.
package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"nutlog/internal/model"
	"nutlog/internal/reftable"
)

// TimeLayout is the timestamp format used in the ledger file.
const TimeLayout = "2006-01-02 15:04:05"

// Ledger column headers, in file order. Kept byte-compatible with the
// original data set so existing ledger files remain readable.
var header = []string{
	"DataHora",
	"Alimento",
	"Quantidade (g/ml)",
	"Calorias",
	"Carboidratos",
	"Açúcar",
	"Contém Lactose",
}

// Ledger records consumption entries against a reference table and answers
// history reads. It is stateless across calls; the CSV file is the only
// durable state. Concurrent writers are not guarded against.
type Ledger struct {
	table *reftable.Table
	path  string
	now   func() time.Time
}

// New returns a ledger backed by the CSV file at path. The file is created
// lazily on the first Record call.
func New(table *reftable.Table, path string) *Ledger {
	return &Ledger{table: table, path: path, now: time.Now}
}

// Path returns the ledger file path.
func (l *Ledger) Path() string {
	return l.path
}

// Foods returns the known food names in reference-table order.
func (l *Ledger) Foods() []string {
	return l.table.Names()
}

// Record validates the input, computes the scaled entry, and appends it
// durably to the ledger file. The constructed entry is returned so callers
// can display it without a reload.
//
// Nutrients are profile-per-100 × quantity/100, rounded to 2 decimal places
// with ties going away from zero. The lactose flag is copied verbatim from
// the profile at write time.
func (l *Ledger) Record(food string, quantity float64) (model.ConsumptionEntry, error) {
	var entry model.ConsumptionEntry

	profile, ok := l.table.Lookup(food)
	if !ok {
		return entry, fmt.Errorf("%w: %q", ErrUnknownFood, food)
	}
	// NaN compares false against everything, so the sign check alone
	// would let non-finite values through to the decimal math.
	if quantity < 0 || math.IsNaN(quantity) || math.IsInf(quantity, 0) {
		return entry, fmt.Errorf("%w: %v", ErrInvalidQuantity, quantity)
	}

	entry = model.ConsumptionEntry{
		Time:     l.now().Truncate(time.Second),
		Food:     profile.Name,
		Quantity: quantity,
		Calories: scale(profile.CaloriesPer100, quantity),
		Carbs:    scale(profile.CarbsPer100, quantity),
		Sugar:    scale(profile.SugarPer100, quantity),
		Lactose:  profile.Lactose,
	}

	if err := l.append(entry); err != nil {
		return model.ConsumptionEntry{}, err
	}
	return entry, nil
}

// scale computes per100 × quantity/100 rounded to 2 decimal places,
// half away from zero.
func scale(per100, quantity float64) float64 {
	v := decimal.NewFromFloat(per100).
		Mul(decimal.NewFromFloat(quantity)).
		Div(decimal.NewFromInt(100)).
		Round(2)
	f, _ := v.Float64()
	return f
}

// append writes one row. The file is created with the header row on first
// write; afterwards it is opened in append mode and prior rows are never
// touched. The write is synced before returning.
func (l *Ledger) append(e model.ConsumptionEntry) error {
	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
	}

	_, statErr := os.Stat(l.path)
	fresh := os.IsNotExist(statErr)

	f, err := os.OpenFile(l.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if fresh {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("%w: %v", ErrPersistence, err)
		}
	}
	if err := w.Write(encodeRow(e)); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// History reads the whole ledger file. A missing file is an empty history,
// not an error. Pure read; safe to interleave with Record.
func (l *Ledger) History() ([]model.ConsumptionEntry, error) {
	return ReadFile(l.path)
}

// ReadFile parses a ledger CSV into entries, in file (append) order.
func ReadFile(path string) ([]model.ConsumptionEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		// An unreadable file is an I/O problem, not a corrupt store.
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(header)

	got, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrCorruptStore, err)
	}
	for i, h := range header {
		if strings.TrimSpace(got[i]) != h {
			return nil, fmt.Errorf("%w: header column %d is %q, want %q", ErrCorruptStore, i+1, got[i], h)
		}
	}

	var entries []model.ConsumptionEntry
	for line := 2; ; line++ {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrCorruptStore, line, err)
		}

		e, err := decodeRow(record)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrCorruptStore, line, err)
		}
		entries = append(entries, e)
	}

	return entries, nil
}

func encodeRow(e model.ConsumptionEntry) []string {
	return []string{
		e.Time.Format(TimeLayout),
		e.Food,
		formatFloat(e.Quantity),
		formatFloat(e.Calories),
		formatFloat(e.Carbs),
		formatFloat(e.Sugar),
		e.Lactose,
	}
}

func decodeRow(record []string) (model.ConsumptionEntry, error) {
	var e model.ConsumptionEntry

	t, err := time.ParseInLocation(TimeLayout, record[0], time.Local)
	if err != nil {
		return e, fmt.Errorf("timestamp: %v", err)
	}
	e.Time = t
	e.Food = record[1]

	if e.Quantity, err = strconv.ParseFloat(record[2], 64); err != nil {
		return e, fmt.Errorf("quantity: %v", err)
	}
	if e.Calories, err = strconv.ParseFloat(record[3], 64); err != nil {
		return e, fmt.Errorf("calories: %v", err)
	}
	if e.Carbs, err = strconv.ParseFloat(record[4], 64); err != nil {
		return e, fmt.Errorf("carbohydrates: %v", err)
	}
	if e.Sugar, err = strconv.ParseFloat(record[5], 64); err != nil {
		return e, fmt.Errorf("sugar: %v", err)
	}
	e.Lactose = record[6]

	return e, nil
}

// formatFloat writes the shortest decimal representation that round-trips.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
