package main

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/quantpulse/pulse/internal/backtest"
	"github.com/quantpulse/pulse/internal/logger"
	"github.com/quantpulse/pulse/internal/metrics"
	"github.com/quantpulse/pulse/internal/signal"
	"github.com/spf13/cobra"
)

var (
	backtestData  string
	backtestLabel string
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Generate signals and replay them against the bar history",
	Long:  "Run the full pipeline: score bars, simulate every signal, and show performance statistics",
	RunE:  runBacktest,
}

func init() {
	backtestCmd.Flags().StringVar(&backtestData, "data", "", "OHLCV CSV file (required)")
	backtestCmd.Flags().StringVar(&backtestLabel, "label", "run", "label used for archived output")

	backtestCmd.MarkFlagRequired("data")

	rootCmd.AddCommand(backtestCmd)
}

func runBacktest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger()
	defer log.Sync()

	bars, features, err := loadInputs(backtestData, cfg.Signals.WarmupBars)
	if err != nil {
		return err
	}
	rules := loadRuleSet(cfg, log)

	gen, err := signal.NewGenerator(signal.Config{
		WarmupBars:        cfg.Signals.WarmupBars,
		MinScore:          cfg.Signals.MinScore,
		VolatilityFeature: cfg.Signals.VolatilityFeature,
		Filter:            &cfg.Signals.Filter,
	}, logger.Named(log, "signals"))
	if err != nil {
		return err
	}
	sim, err := backtest.NewSimulator(backtest.Config{
		HoldingPeriod:     cfg.Backtest.HoldingPeriod,
		TransactionCost:   cfg.Backtest.TransactionCost,
		Slippage:          cfg.Backtest.Slippage,
		VolatilityFeature: cfg.Signals.VolatilityFeature,
	}, logger.Named(log, "backtest"))
	if err != nil {
		return err
	}

	reg := metrics.NewRegistry()
	start := time.Now()
	signals := gen.Generate(bars, features, rules)
	result := sim.Run(bars, features, signals)
	reg.RecordBacktest(time.Since(start), len(result.Trades))
	if err := dumpMetrics(reg); err != nil {
		return err
	}

	fmt.Println("=== PULSE Backtest ===")
	fmt.Printf("Data:    %s (%d bars)\n", backtestData, len(bars))
	fmt.Printf("Signals: %d generated, %d simulated\n", len(signals), result.TotalSignals)
	fmt.Println()
	printStats(result.Stats)

	if archiver, err := buildArchiver(cfg); err != nil {
		return err
	} else if archiver != nil {
		path, err := archiver.SaveResult(context.Background(), backtestLabel, result)
		if err != nil {
			return err
		}
		fmt.Printf("\nArchived to %s\n", path)
	}

	return nil
}

func printStats(stats backtest.Stats) {
	fmt.Printf("Trades:        %d (%d won / %d lost)\n",
		stats.TotalSignals, stats.WinningTrades, stats.LosingTrades)
	fmt.Printf("Win rate:      %.1f%%\n", stats.WinRate*100)
	fmt.Printf("Avg return:    %.4f\n", stats.AvgReturn)
	fmt.Printf("Max drawdown:  %.4f\n", stats.MaxDrawdown)
	fmt.Printf("Sharpe ratio:  %.3f\n", stats.SharpeRatio)
	if math.IsInf(stats.ProfitFactor, 1) {
		fmt.Println("Profit factor: inf")
	} else {
		fmt.Printf("Profit factor: %.3f\n", stats.ProfitFactor)
	}
}
