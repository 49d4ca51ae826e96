package cmd

import (
	"fmt"

	"nutlog/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [Files]")
	fmt.Printf("    Reference table: %s\n", tablePath(cfg))
	fmt.Printf("    Ledger:          %s\n", ledgerPath(cfg))
	fmt.Println()

	targets := config.ResolveTargets(cfg)
	fmt.Println("  [Daily targets]")
	fmt.Printf("    Calories:      %.0f kcal", targets.Calories)
	if cfg.Targets.Calories == nil {
		fmt.Print(" (default)")
	}
	fmt.Println()
	fmt.Printf("    Carbohydrates: %.0f g", targets.Carbs)
	if cfg.Targets.Carbs == nil {
		fmt.Print(" (default)")
	}
	fmt.Println()
	fmt.Printf("    Sugar:         %.0f g", targets.Sugar)
	if cfg.Targets.Sugar == nil {
		fmt.Print(" (default)")
	}
	fmt.Println()
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  Run `nutlog setup` to reconfigure.")
	return nil
}
