package main

import (
	"fmt"

	"github.com/quantpulse/pulse/internal/backtest"
	"github.com/quantpulse/pulse/internal/logger"
	"github.com/quantpulse/pulse/internal/metrics"
	"github.com/quantpulse/pulse/internal/optimize"
	"github.com/quantpulse/pulse/internal/signal"
	"github.com/spf13/cobra"
)

var (
	optimizeData   string
	optimizeMetric string
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Rank rules by their contribution to a target metric",
	Long:  "Disable each rule in turn, rerun the full pipeline, and report the metric delta as that rule's importance",
	RunE:  runOptimize,
}

func init() {
	optimizeCmd.Flags().StringVar(&optimizeData, "data", "", "OHLCV CSV file (required)")
	optimizeCmd.Flags().StringVar(&optimizeMetric, "metric", "", "target metric (default from config)")

	optimizeCmd.MarkFlagRequired("data")

	rootCmd.AddCommand(optimizeCmd)
}

func runOptimize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger()
	defer log.Sync()

	metric := cfg.Optimize.Metric
	if optimizeMetric != "" {
		metric = optimizeMetric
	}

	bars, features, err := loadInputs(optimizeData, cfg.Signals.WarmupBars)
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

	opt := optimize.New(gen, sim, logger.Named(log, "optimize"))
	if cfg.Optimize.Workers > 0 {
		opt.SetWorkers(cfg.Optimize.Workers)
	}

	report, err := opt.Run(bars, features, rules, metric)
	if err != nil {
		return err
	}
	reg := metrics.NewRegistry()
	reg.RecordAblations(rules.Len())
	if err := dumpMetrics(reg); err != nil {
		return err
	}

	fmt.Println("=== PULSE Rule Importance ===")
	fmt.Printf("Metric:   %s\n", report.Metric)
	fmt.Printf("Baseline: %.4f\n", report.BaselineScore)
	fmt.Println()
	for _, score := range report.Ranked() {
		fmt.Printf("  %-28s %+.4f\n", score.Rule, score.Importance)
	}

	return nil
}
