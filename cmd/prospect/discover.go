package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/newthinker/prospect/internal/app"
	"github.com/newthinker/prospect/internal/logger"
)

var (
	discoverHolding   int
	discoverMinReturn float64
)

var discoverCmd = &cobra.Command{
	Use:   "discover [symbol]",
	Short: "Run pattern discovery and two-stage validation for a symbol",
	Long: `Discover scans the symbol's history for profit cases, profiles the
indicator state before them, generates candidate patterns and keeps only
those that hold up out of sample. The validated catalog is saved to the
configured store.`,
	Args: cobra.ExactArgs(1),
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().IntVar(&discoverHolding, "holding", 0, "holding period in trading days (default from config)")
	discoverCmd.Flags().Float64Var(&discoverMinReturn, "min-return", 0, "forward return target in percent (default from config)")
	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}
	if discoverHolding > 0 {
		cfg.Discovery.HoldingPeriod = discoverHolding
	}
	if discoverMinReturn > 0 {
		cfg.Discovery.MinReturn = discoverMinReturn
	}

	a, err := app.New(cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	symbol := args[0]
	cat, res, err := a.Discover(context.Background(), symbol)
	if err != nil {
		return err
	}

	fmt.Printf("=== prospect discovery: %s ===\n", symbol)
	fmt.Printf("Run:                %s\n", res.RunID)
	fmt.Printf("Target:             %+.1f%% over %d days\n", cfg.Discovery.MinReturn, cfg.Discovery.HoldingPeriod)
	fmt.Printf("Profit cases:       %d (discovery segment %d)\n", res.TotalCases, res.DiscoveryCases)
	fmt.Printf("Generated patterns: %d\n", len(res.Generated))
	fmt.Printf("Frequency passed:   %d\n", len(res.FrequencyPassed))
	fmt.Printf("Validated:          %d\n", len(cat.Patterns))
	fmt.Println()

	if len(cat.Patterns) == 0 {
		fmt.Println("No pattern survived validation.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PATTERN\tCATEGORY\tTRAIN WIN\tTEST WIN\tTEST AVG\tLIFT\tOCC (TRAIN/TEST)\t")
	fmt.Fprintln(w, "-------\t--------\t---------\t--------\t--------\t----\t----------------\t")
	for _, p := range cat.Patterns {
		fmt.Fprintf(w, "%s\t%s\t%.1f%%\t%.1f%%\t%+.1f%%\t%.2fx\t%d/%d\t\n",
			p.Name, p.Category,
			p.TrainWinRate*100, p.TestWinRate*100, p.TestAvgReturn, p.TestLift,
			p.TrainOccurrences, p.TestOccurrences)
	}
	w.Flush()

	fmt.Printf("\nCatalog saved for %s (%d patterns).\n", cat.Symbol, len(cat.Patterns))
	return nil
}
