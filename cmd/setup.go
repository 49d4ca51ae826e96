package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"nutlog/internal/config"
	"nutlog/internal/reftable"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	reader := bufio.NewReader(os.Stdin)

	// Load existing config or defaults
	cfg, _ := config.Load()

	fmt.Println()
	fmt.Println("  Welcome to nutlog!")
	fmt.Println()

	// 1. Reference table location
	fmt.Println("  1. Nutritional reference table (CSV)")
	fmt.Printf("     Current: %s\n", tablePath(cfg))
	if table, err := reftable.Load(tablePath(cfg)); err == nil {
		fmt.Printf("     Found %d foods.\n", table.Len())
	} else {
		fmt.Println("     Not readable yet. Enter a path or place the file there later.")
	}
	fmt.Print("     > ")
	path, _ := reader.ReadString('\n')
	if path = strings.TrimSpace(path); path != "" {
		cfg.General.TableFile = path
	}
	fmt.Println()

	// 2. Ledger location
	fmt.Println("  2. Consumption ledger (CSV, created on first entry)")
	fmt.Printf("     Current: %s\n", ledgerPath(cfg))
	fmt.Print("     > ")
	path, _ = reader.ReadString('\n')
	if path = strings.TrimSpace(path); path != "" {
		cfg.General.LedgerFile = path
	}
	fmt.Println()

	// 3. Daily calorie target
	fmt.Println("  3. Daily calorie target")
	fmt.Printf("     Current: %.0f kcal (Enter to keep)\n", config.ResolveTargets(cfg).Calories)
	fmt.Print("     > ")
	kcalStr, _ := reader.ReadString('\n')
	if kcalStr = strings.TrimSpace(kcalStr); kcalStr != "" {
		kcal, err := strconv.ParseFloat(kcalStr, 64)
		if err != nil || kcal <= 0 {
			fmt.Println("     Not a positive number, keeping the current target.")
		} else {
			cfg.Targets.Calories = &kcal
		}
	}
	fmt.Println()

	// 4. Theme
	fmt.Println("  4. Color theme")
	fmt.Println("     (1) Flexoki Dark [default]")
	fmt.Println("     (2) Catppuccin Mocha")
	fmt.Println("     (3) Terminal (ANSI 16)")
	fmt.Print("     > ")
	choice, _ := reader.ReadString('\n')
	switch strings.TrimSpace(choice) {
	case "2":
		cfg.Appearance.Theme = "catppuccin-mocha"
	case "3":
		cfg.Appearance.Theme = "terminal"
	default:
		cfg.Appearance.Theme = "flexoki-dark"
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `nutlog setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}
