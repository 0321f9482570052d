package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile    string
	debug      bool
	metricsOut string
)

var rootCmd = &cobra.Command{
	Use:   "pulse",
	Short: "PULSE - rule-based signal generation and backtest engine",
	Long: `PULSE generates directional trading signals from a declarative set of
weighted rules evaluated over derived price features, replays them against
historical bars, and measures per-rule importance by ablation.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug mode")
	rootCmd.PersistentFlags().StringVar(&metricsOut, "metrics-out", "", "write Prometheus text-format metrics to this file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
