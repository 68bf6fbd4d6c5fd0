package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/newthinker/prospect/internal/app"
	"github.com/newthinker/prospect/internal/discovery"
	"github.com/newthinker/prospect/internal/logger"
	"github.com/newthinker/prospect/internal/perf"
)

var (
	sweepHoldings   []int
	sweepMinReturns []float64
	sweepMinCases   int
)

var sweepCmd = &cobra.Command{
	Use:   "sweep [symbol]",
	Short: "Sweep holding period and return target combinations",
	Long: `Sweep counts profit cases for every (holding period, return target)
combination, picks the best qualified one and shows the unconditional
trade profile at that horizon.`,
	Args: cobra.ExactArgs(1),
	RunE: runSweep,
}

func init() {
	sweepCmd.Flags().IntSliceVar(&sweepHoldings, "holdings", nil, "holding periods to try (default 20,40,60,90)")
	sweepCmd.Flags().Float64SliceVar(&sweepMinReturns, "min-returns", nil, "return targets in percent (default 5,10,15,20)")
	sweepCmd.Flags().IntVar(&sweepMinCases, "min-cases", 50, "cases a combination needs to qualify")
	rootCmd.AddCommand(sweepCmd)
}

func runSweep(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	a, err := app.New(cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	symbol := args[0]
	f, err := a.LoadBars(context.Background(), symbol)
	if err != nil {
		return err
	}

	grid := discovery.DefaultGrid()
	if len(sweepHoldings) > 0 {
		grid.HoldingPeriods = sweepHoldings
	}
	if len(sweepMinReturns) > 0 {
		grid.MinReturns = sweepMinReturns
	}

	summaries, err := discovery.Sweep(f, grid)
	if err != nil {
		return err
	}

	fmt.Printf("=== prospect sweep: %s (%d bars) ===\n\n", symbol, f.Len())
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "HOLDING\tMIN RET\tCASES\tFREQ\tAVG RET\tMAX RET\tSTD\t")
	fmt.Fprintln(w, "-------\t-------\t-----\t----\t-------\t-------\t---\t")
	for _, s := range summaries {
		fmt.Fprintf(w, "%dd\t%.1f%%\t%d\t%.1f%%\t%+.1f%%\t%+.1f%%\t%.1f\t\n",
			s.HoldingPeriod, s.MinReturn, s.Count, s.Frequency*100, s.AvgReturn, s.MaxReturn, s.StdReturn)
	}
	w.Flush()

	best, qualified := discovery.BestCombination(summaries, sweepMinCases)
	if !qualified {
		fmt.Printf("\nNo combination reached %d cases; closest by count: %dd / %.1f%% (%d cases).\n",
			sweepMinCases, best.HoldingPeriod, best.MinReturn, best.Count)
	} else {
		fmt.Printf("\nBest: %dd holding, %.1f%% target (%d cases, avg %+.1f%%)\n",
			best.HoldingPeriod, best.MinReturn, best.Count, best.AvgReturn)
	}

	rets, err := discovery.ForwardReturns(f, best.HoldingPeriod)
	if err != nil {
		return err
	}
	s := perf.Summarize(rets)
	fmt.Printf("\nUnconditional %d-day profile over %d entries:\n", best.HoldingPeriod, s.Count)
	fmt.Printf("  Win rate:      %.1f%%\n", s.WinRate*100)
	fmt.Printf("  Expectancy:    %+.2f%%\n", s.Expectancy)
	fmt.Printf("  Profit factor: %.2f\n", s.ProfitFactor)
	fmt.Printf("  Sharpe:        %.2f\n", s.Sharpe)
	fmt.Printf("  Sortino:       %.2f\n", s.Sortino)
	fmt.Printf("  Max drawdown:  %.1f%%\n", s.MaxDrawdown)
	return nil
}
