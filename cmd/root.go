// Package cmd implements the nutlog CLI commands.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"nutlog/internal/config"
	"nutlog/internal/ledger"
	"nutlog/internal/model"
	"nutlog/internal/pipeline"
	"nutlog/internal/reftable"
	"nutlog/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagTable   string
	flagLedger  string
	flagDataDir string
	flagNoCache bool
	flagQuiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "nutlog",
	Short: "Food intake ledger",
	Long:  "Log what you eat and track calories, carbohydrates, and sugar against daily targets.",
	RunE:  runToday,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagTable, "table", "t", "", "Nutritional reference CSV (default: config or data dir)")
	rootCmd.PersistentFlags().StringVarP(&flagLedger, "ledger", "l", "", "Consumption ledger CSV (default: config or data dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "Directory holding foods.csv and consumption.csv (overrides XDG data dir)")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Skip the SQLite history cache, reread the ledger")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// loadConfigOrDefault loads config, falling back to defaults so commands
// still work with a corrupted config file.
func loadConfigOrDefault() config.Config {
	cfg, err := config.Load()
	if err != nil {
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "  Ignoring config: %v\n", err)
		}
		return config.DefaultConfig()
	}
	return cfg
}

func tablePath(cfg config.Config) string {
	if flagTable != "" {
		return flagTable
	}
	if flagDataDir != "" {
		return filepath.Join(flagDataDir, "foods.csv")
	}
	return config.TablePath(cfg)
}

func ledgerPath(cfg config.Config) string {
	if flagLedger != "" {
		return flagLedger
	}
	if flagDataDir != "" {
		return filepath.Join(flagDataDir, "consumption.csv")
	}
	return config.LedgerPath(cfg)
}

// loadTable loads the reference table once per invocation. A missing or
// malformed table is fatal; nothing works without it.
func loadTable(cfg config.Config) (*reftable.Table, error) {
	path := tablePath(cfg)
	table, err := reftable.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading reference table: %w\n  Put the food table at %s or point --table at it", err, path)
	}
	return table, nil
}

// loadHistory is the shared history loading path used by all read commands.
// It serves from the SQLite cache when the ledger file is unchanged and
// falls back to a direct CSV read on any cache trouble.
func loadHistory(cfg config.Config) ([]model.ConsumptionEntry, error) {
	path := ledgerPath(cfg)

	if !flagNoCache {
		cache, err := store.Open(pipeline.CachePath())
		if err != nil {
			if !flagQuiet {
				fmt.Fprintf(os.Stderr, "  Cache unavailable, reading ledger directly\n")
			}
		} else {
			defer func() { _ = cache.Close() }()

			result, err := pipeline.LoadWithCache(path, cache)
			if err == nil {
				return result.Entries, nil
			}
			if !flagQuiet {
				fmt.Fprintf(os.Stderr, "  Cache error, reading ledger directly\n")
			}
		}
	}

	result, err := pipeline.Load(path)
	if err != nil {
		return nil, err
	}
	return result.Entries, nil
}

// openLedger wires the reference table and ledger file together.
func openLedger(cfg config.Config) (*ledger.Ledger, error) {
	table, err := loadTable(cfg)
	if err != nil {
		return nil, err
	}
	return ledger.New(table, ledgerPath(cfg)), nil
}
