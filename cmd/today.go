package cmd

import (
	"errors"
	"fmt"
	"time"

	"nutlog/internal/cli"
	"nutlog/internal/config"
	"nutlog/internal/ledger"
	"nutlog/internal/model"
	"nutlog/internal/pipeline"

	"github.com/spf13/cobra"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Today's entries, totals, and balance against daily targets",
	RunE:  runToday,
}

func init() {
	rootCmd.AddCommand(todayCmd)
}

func runToday(_ *cobra.Command, _ []string) error {
	cfg := loadConfigOrDefault()

	entries, err := loadHistory(cfg)
	if err != nil {
		if errors.Is(err, ledger.ErrCorruptStore) {
			fmt.Printf("\n  History unavailable: %v\n", err)
			fmt.Println("  New entries can still be recorded with `nutlog log`.")
			return nil
		}
		return err
	}

	now := time.Now()
	todays := pipeline.FilterByDay(entries, now)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("TODAY  %s (%s)",
		now.Format("2006-01-02"), cli.FormatDayOfWeek(int(now.Weekday())))))
	fmt.Println()

	if len(todays) == 0 {
		fmt.Println("  Nothing logged today yet. Use `nutlog log` to record a meal.")
		return nil
	}

	fmt.Print(cli.RenderTable(entriesTable("ENTRIES", todays)))
	fmt.Println()

	totals := pipeline.AggregateDay(entries, now)
	balance := pipeline.Balance(totals, config.ResolveTargets(cfg))
	fmt.Print(cli.RenderTable(balanceTable(balance)))

	return nil
}

// entriesTable renders consumption entries, one per row, in the given order.
func entriesTable(title string, entries []model.ConsumptionEntry) cli.Table {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.Time.Format("15:04"),
			e.Food,
			cli.FormatQuantity(e.Quantity),
			cli.FormatAmount(e.Calories),
			cli.FormatAmount(e.Carbs),
			cli.FormatAmount(e.Sugar),
			cli.FormatLactose(e.Lactose),
		})
	}

	return cli.Table{
		Title:   title,
		Headers: []string{"Time", "Food", "Qty", "Kcal", "Carbs", "Sugar", "Lactose"},
		Rows:    rows,
	}
}

func balanceTable(balance []model.NutrientBalance) cli.Table {
	rows := make([][]string, 0, len(balance))
	over := make(map[int]bool)
	for i, b := range balance {
		rows = append(rows, []string{
			b.Nutrient,
			cli.FormatAmount(b.Target) + " " + b.Unit,
			cli.FormatAmount(b.Consumed) + " " + b.Unit,
			cli.FormatSigned(b.Remaining),
		})
		if b.Remaining < 0 {
			over[i] = true
		}
	}

	return cli.Table{
		Title:    "DAILY BALANCE",
		Headers:  []string{"Nutrient", "Target", "Consumed", "Remaining"},
		Rows:     rows,
		OverRows: over,
	}
}
