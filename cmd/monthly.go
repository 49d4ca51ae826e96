package cmd

import (
	"errors"
	"fmt"

	"nutlog/internal/cli"
	"nutlog/internal/ledger"
	"nutlog/internal/pipeline"

	"github.com/spf13/cobra"
)

var monthlyCmd = &cobra.Command{
	Use:   "monthly",
	Short: "Monthly nutrient totals across all history",
	RunE:  runMonthly,
}

func init() {
	rootCmd.AddCommand(monthlyCmd)
}

func runMonthly(_ *cobra.Command, _ []string) error {
	cfg := loadConfigOrDefault()

	entries, err := loadHistory(cfg)
	if err != nil {
		if errors.Is(err, ledger.ErrCorruptStore) {
			fmt.Printf("\n  History unavailable: %v\n", err)
			return nil
		}
		return err
	}

	months := pipeline.AggregateMonths(entries)
	if len(months) == 0 {
		fmt.Println("\n  No entries recorded yet.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("MONTHLY SUMMARY"))
	fmt.Println()

	rows := make([][]string, 0, len(months))
	for _, m := range months {
		rows = append(rows, []string{
			m.Month.Format("2006-01"),
			cli.FormatNumber(int64(m.Entries)),
			cli.FormatAmount(m.Calories),
			cli.FormatAmount(m.Carbs),
			cli.FormatAmount(m.Sugar),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Month", "Entries", "Kcal", "Carbs (g)", "Sugar (g)"},
		Rows:    rows,
	}))

	return nil
}
