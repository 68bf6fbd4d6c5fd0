package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/newthinker/prospect/internal/app"
	"github.com/newthinker/prospect/internal/logger"
	"github.com/newthinker/prospect/internal/report"
)

var (
	signalsLookback int
	signalsSetups   bool
)

var signalsCmd = &cobra.Command{
	Use:   "signals [symbol...]",
	Short: "Scan recent bars against the validated catalog",
	Long: `Signals checks the last days of each symbol against its stored catalog
(or the built-in pattern set when no discovery run was saved) and prints a
report. Without arguments the configured symbols are checked.`,
	RunE: runSignals,
}

func init() {
	signalsCmd.Flags().IntVar(&signalsLookback, "lookback", 0, "days to scan, last bar included (default from config)")
	signalsCmd.Flags().BoolVar(&signalsSetups, "setups", false, "include contextual chart setups")
	rootCmd.AddCommand(signalsCmd)
}

func runSignals(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}
	if signalsLookback > 0 {
		cfg.Signals.LookbackDays = signalsLookback
	}
	if signalsSetups {
		cfg.Signals.Setups = true
	}

	a, err := app.New(cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	symbols := args
	if len(symbols) == 0 {
		symbols = cfg.Symbols
	}

	ctx := context.Background()
	for _, symbol := range symbols {
		rep, err := a.CheckSignals(ctx, symbol)
		if err != nil {
			return fmt.Errorf("checking %s: %w", symbol, err)
		}
		fmt.Print(report.Render(rep))
	}
	return nil
}
