package main

import (
	"context"
	"fmt"
	"time"

	"github.com/quantpulse/pulse/internal/analysis"
	"github.com/quantpulse/pulse/internal/core"
	"github.com/quantpulse/pulse/internal/logger"
	"github.com/quantpulse/pulse/internal/metrics"
	"github.com/quantpulse/pulse/internal/signal"
	sigstore "github.com/quantpulse/pulse/internal/storage/signal"
	"github.com/spf13/cobra"
)

var (
	signalsData  string
	signalsLabel string
)

var signalsCmd = &cobra.Command{
	Use:   "signals",
	Short: "Generate trading signals from a bar CSV",
	Long:  "Score every bar past the warm-up window against the rule set and print the resulting signals",
	RunE:  runSignals,
}

func init() {
	signalsCmd.Flags().StringVar(&signalsData, "data", "", "OHLCV CSV file (required)")
	signalsCmd.Flags().StringVar(&signalsLabel, "label", "run", "label used for archived output")

	signalsCmd.MarkFlagRequired("data")

	rootCmd.AddCommand(signalsCmd)
}

func runSignals(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger()
	defer log.Sync()

	bars, features, err := loadInputs(signalsData, cfg.Signals.WarmupBars)
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

	reg := metrics.NewRegistry()
	start := time.Now()
	signals := gen.Generate(bars, features, rules)
	summary := analysis.Summarize(signals)
	reg.RecordGeneration(time.Since(start), summary.BuySignals, summary.SellSignals)
	if err := dumpMetrics(reg); err != nil {
		return err
	}

	fmt.Println("=== PULSE Signals ===")
	fmt.Printf("Data:  %s (%d bars)\n", signalsData, len(bars))
	fmt.Printf("Rules: %d\n", rules.Len())
	fmt.Println()
	fmt.Println(summary)

	store := sigstore.NewMemoryStore(cfg.Store.MaxSignals)
	ctx := context.Background()
	if err := store.SaveBatch(ctx, signals); err != nil {
		return err
	}
	strong, err := store.List(ctx, sigstore.ListFilter{MinStrength: 70})
	if err != nil {
		return err
	}
	if len(strong) > 0 {
		fmt.Println()
		fmt.Println("Strong signals:")
		for _, sig := range strong {
			printSignal(sig)
		}
	}

	if archiver, err := buildArchiver(cfg); err != nil {
		return err
	} else if archiver != nil {
		path, err := archiver.SaveSignals(ctx, signalsLabel, signals)
		if err != nil {
			return err
		}
		fmt.Printf("\nArchived to %s\n", path)
	}

	return nil
}

func printSignal(sig core.Signal) {
	fmt.Printf("  %s %-4s strength=%.0f price=%.2f stop=%.2f target=%.2f risk=%s\n",
		sig.Timestamp.Format("2006-01-02 15:04"),
		sig.Direction, sig.Strength, sig.Price, sig.StopLoss, sig.TakeProfit, sig.RiskLevel)
}
