package cmd

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"nutlog/internal/cli"
	"nutlog/internal/ledger"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log [food] [quantity]",
	Short: "Record a consumed food",
	Long: "Record a consumption entry. With no arguments an interactive form opens;\n" +
		"otherwise pass the food name and the consumed quantity in grams or ml.",
	Args: cobra.MaximumNArgs(2),
	RunE: runLog,
}

func init() {
	rootCmd.AddCommand(logCmd)
}

func runLog(_ *cobra.Command, args []string) error {
	cfg := loadConfigOrDefault()

	lg, err := openLedger(cfg)
	if err != nil {
		return err
	}

	var (
		food     string
		quantity float64
	)

	switch len(args) {
	case 2:
		food = args[0]
		quantity, err = strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("quantity must be a number, got %q", args[1])
		}
	case 1:
		return errors.New("pass both food and quantity, or neither for the interactive form")
	default:
		food, quantity, err = promptEntry(lg.Foods())
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}
	}

	entry, err := lg.Record(food, quantity)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrUnknownFood):
			fmt.Printf("  Unknown food %q. Run `nutlog foods` to see what the table knows.\n", food)
			return err
		case errors.Is(err, ledger.ErrInvalidQuantity):
			fmt.Println("  Quantity must be zero or positive.")
			return err
		default:
			return err
		}
	}

	fmt.Println()
	fmt.Printf("  Recorded %s of %s at %s\n",
		cli.FormatQuantity(entry.Quantity), entry.Food, entry.Time.Format("15:04:05"))
	fmt.Printf("  %s · %s carbs · %s sugar · lactose: %s\n",
		cli.FormatKcal(entry.Calories),
		cli.FormatGrams(entry.Carbs),
		cli.FormatGrams(entry.Sugar),
		cli.FormatLactose(entry.Lactose),
	)
	return nil
}

// promptEntry runs the interactive consumption form.
func promptEntry(foods []string) (string, float64, error) {
	var (
		food   string
		qtyStr string
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Food").
				Description("What did you eat or drink?").
				Options(huh.NewOptions(foods...)...).
				Value(&food),
			huh.NewInput().
				Title("Quantity (g/ml)").
				Placeholder("100").
				Validate(validateQuantity).
				Value(&qtyStr),
		),
	)

	if err := form.Run(); err != nil {
		return "", 0, err
	}

	quantity, err := strconv.ParseFloat(strings.TrimSpace(qtyStr), 64)
	if err != nil {
		return "", 0, fmt.Errorf("quantity: %w", err)
	}
	return food, quantity, nil
}

func validateQuantity(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return errors.New("enter a number")
	}
	if v < 0 {
		return errors.New("must be zero or positive")
	}
	return nil
}
