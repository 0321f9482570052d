package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/quantpulse/pulse/internal/backtest"
	"github.com/quantpulse/pulse/internal/core"
	"github.com/quantpulse/pulse/internal/signal"
	"github.com/spf13/viper"
)

type Config struct {
	Signals  SignalsConfig  `mapstructure:"signals"`
	Backtest BacktestConfig `mapstructure:"backtest"`
	Optimize OptimizeConfig `mapstructure:"optimize"`
	Rules    RulesConfig    `mapstructure:"rules"`
	Store    StoreConfig    `mapstructure:"store"`
	Archive  ArchiveConfig  `mapstructure:"archive"`
}

type SignalsConfig struct {
	WarmupBars        int             `mapstructure:"warmup_bars"`
	MinScore          float64         `mapstructure:"min_score"`
	VolatilityFeature string          `mapstructure:"volatility_feature"`
	Filter            signal.Criteria `mapstructure:"filter"`
}

type BacktestConfig struct {
	HoldingPeriod   int     `mapstructure:"holding_period"`
	TransactionCost float64 `mapstructure:"transaction_cost"`
	Slippage        float64 `mapstructure:"slippage"`
}

type OptimizeConfig struct {
	Metric  string `mapstructure:"metric"`
	Workers int    `mapstructure:"workers"`
}

type RulesConfig struct {
	File string `mapstructure:"file"`
}

type StoreConfig struct {
	MaxSignals int `mapstructure:"max_signals"`
}

// ArchiveConfig selects the cold storage backend for results.
type ArchiveConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Type    string   `mapstructure:"type"` // "localfs" or "s3"
	Path    string   `mapstructure:"path"` // For localfs
	S3      S3Config `mapstructure:"s3"`
}

type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

// Load reads configuration from file
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Support environment variable overrides
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	cfg := Defaults()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return cfg, nil
}

// Defaults returns a config with sensible defaults
func Defaults() *Config {
	return &Config{
		Signals: SignalsConfig{
			WarmupBars:        signal.DefaultWarmupBars,
			MinScore:          signal.DefaultMinScore,
			VolatilityFeature: signal.DefaultVolatilityFeature,
		},
		Backtest: BacktestConfig{
			HoldingPeriod:   backtest.DefaultHoldingPeriod,
			TransactionCost: backtest.DefaultTransactionCost,
		},
		Optimize: OptimizeConfig{
			Metric: backtest.MetricSharpeRatio,
		},
		Store: StoreConfig{
			MaxSignals: 10000,
		},
		Archive: ArchiveConfig{
			Type: "localfs",
		},
	}
}

// Validate checks the configuration for errors. Parameter problems fail
// here, at construction time, rather than mid-simulation.
func (c *Config) Validate() error {
	if c.Signals.WarmupBars < 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("warmup_bars cannot be negative, got %d", c.Signals.WarmupBars))
	}
	if c.Signals.MinScore <= 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("min_score must be positive, got %f", c.Signals.MinScore))
	}
	if c.Backtest.HoldingPeriod <= 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("holding_period must be positive, got %d", c.Backtest.HoldingPeriod))
	}
	if c.Backtest.TransactionCost < 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("transaction_cost cannot be negative, got %f", c.Backtest.TransactionCost))
	}
	if c.Backtest.Slippage < 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("slippage cannot be negative, got %f", c.Backtest.Slippage))
	}
	if _, err := (backtest.Result{}).Metric(c.Optimize.Metric); err != nil {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown optimize metric %q", c.Optimize.Metric))
	}
	if c.Archive.Enabled {
		switch c.Archive.Type {
		case "localfs":
			if c.Archive.Path == "" {
				return core.WrapError(core.ErrConfigInvalid,
					fmt.Errorf("archive path required for localfs"))
			}
		case "s3":
			if c.Archive.S3.Bucket == "" {
				return core.WrapError(core.ErrConfigInvalid,
					fmt.Errorf("s3 bucket required for s3 archive"))
			}
		default:
			return core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("unknown archive type %q", c.Archive.Type))
		}
	}
	return nil
}
