package cmd

import (
	"errors"
	"fmt"
	"sort"

	"nutlog/internal/cli"
	"nutlog/internal/ledger"
	"nutlog/internal/model"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Full consumption history, most recent first",
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	cfg := loadConfigOrDefault()

	entries, err := loadHistory(cfg)
	if err != nil {
		if errors.Is(err, ledger.ErrCorruptStore) {
			fmt.Printf("\n  History unavailable: %v\n", err)
			return nil
		}
		return err
	}

	if len(entries) == 0 {
		fmt.Println("\n  No entries recorded yet.")
		return nil
	}

	// Display order only; the ledger itself stays in append order.
	sorted := make([]model.ConsumptionEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time.After(sorted[j].Time)
	})

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("HISTORY  %s entries", cli.FormatNumber(int64(len(sorted))))))
	fmt.Println()

	rows := make([][]string, 0, len(sorted))
	for _, e := range sorted {
		rows = append(rows, []string{
			e.Time.Format("2006-01-02 15:04"),
			e.Food,
			cli.FormatQuantity(e.Quantity),
			cli.FormatAmount(e.Calories),
			cli.FormatAmount(e.Carbs),
			cli.FormatAmount(e.Sugar),
			cli.FormatLactose(e.Lactose),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"When", "Food", "Qty", "Kcal", "Carbs", "Sugar", "Lactose"},
		Rows:    rows,
	}))

	return nil
}
