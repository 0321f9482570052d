package main

import (
	"fmt"
	"os"

	"github.com/quantpulse/pulse/internal/config"
	"github.com/quantpulse/pulse/internal/core"
	"github.com/quantpulse/pulse/internal/data"
	"github.com/quantpulse/pulse/internal/feature"
	"github.com/quantpulse/pulse/internal/indicator"
	"github.com/quantpulse/pulse/internal/logger"
	"github.com/quantpulse/pulse/internal/metrics"
	"github.com/quantpulse/pulse/internal/rule"
	"github.com/quantpulse/pulse/internal/storage/archive"
	"go.uber.org/zap"
)

// loadConfig reads the configured file or falls back to defaults.
func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.Defaults(), nil
	}
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger() *zap.Logger {
	return logger.Must(debug)
}

// loadRuleSet builds the working rule set: the built-in rules merged with
// the configured rule file, if any. A broken rule file is logged and
// skipped; the set stays usable.
func loadRuleSet(cfg *config.Config, log *zap.Logger) *rule.Set {
	rules := rule.DefaultSet(logger.Named(log, "rules"))
	if cfg.Rules.File != "" {
		if err := rules.Load(cfg.Rules.File); err != nil {
			log.Warn("continuing with built-in rules", zap.Error(err))
		}
	}
	return rules
}

// loadInputs reads the bar CSV and computes the indicator feature feed.
// Histories that cannot outlast the warm-up window are rejected here with a
// clear error rather than producing a silent empty run.
func loadInputs(path string, warmupBars int) ([]core.Bar, []feature.Snapshot, error) {
	bars, err := data.ReadBars(path)
	if err != nil {
		return nil, nil, fmt.Errorf("loading bars: %w", err)
	}
	if len(bars) <= warmupBars {
		return nil, nil, core.WrapError(core.ErrInsufficientData,
			fmt.Errorf("%d bars loaded, need more than the %d-bar warm-up", len(bars), warmupBars))
	}
	return bars, indicator.Features(bars).Snapshots(), nil
}

// dumpMetrics writes the run's metrics to the --metrics-out file, if one
// was given.
func dumpMetrics(reg *metrics.Registry) error {
	if metricsOut == "" {
		return nil
	}
	f, err := os.Create(metricsOut)
	if err != nil {
		return fmt.Errorf("creating metrics file: %w", err)
	}
	defer f.Close()
	if err := reg.WriteText(f); err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}
	return nil
}

// buildArchiver returns the configured archiver, or nil when archiving is
// disabled.
func buildArchiver(cfg *config.Config) (*archive.Archiver, error) {
	if !cfg.Archive.Enabled {
		return nil, nil
	}

	var storage archive.Storage
	var err error
	switch cfg.Archive.Type {
	case "s3":
		storage, err = archive.NewS3(archive.S3Config{
			Bucket:    cfg.Archive.S3.Bucket,
			Endpoint:  cfg.Archive.S3.Endpoint,
			Region:    cfg.Archive.S3.Region,
			AccessKey: cfg.Archive.S3.AccessKey,
			SecretKey: cfg.Archive.S3.SecretKey,
			Prefix:    cfg.Archive.S3.Prefix,
		})
	default:
		storage, err = archive.NewLocalFS(cfg.Archive.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("building archive storage: %w", err)
	}
	return archive.NewArchiver(storage), nil
}
