package cmd

import (
	"fmt"

	"nutlog/internal/cli"

	"github.com/spf13/cobra"
)

var foodsCmd = &cobra.Command{
	Use:   "foods",
	Short: "List known foods and their per-100g/ml values",
	RunE:  runFoods,
}

func init() {
	rootCmd.AddCommand(foodsCmd)
}

func runFoods(_ *cobra.Command, _ []string) error {
	cfg := loadConfigOrDefault()

	table, err := loadTable(cfg)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("REFERENCE TABLE  %d foods", table.Len())))
	fmt.Println()

	rows := make([][]string, 0, table.Len())
	for _, name := range table.Names() {
		p, _ := table.Lookup(name)
		rows = append(rows, []string{
			p.Name,
			cli.FormatAmount(p.CaloriesPer100),
			cli.FormatAmount(p.CarbsPer100),
			cli.FormatAmount(p.SugarPer100),
			cli.FormatLactose(p.Lactose),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Food", "Kcal/100", "Carbs/100", "Sugar/100", "Lactose"},
		Rows:    rows,
	}))

	return nil
}
