// Package signal implements the scoring pass that turns bars, features, and
// a rule set into directional trading signals, plus the exit level
// calculator attached to each signal.
package signal

import (
	"fmt"

	"github.com/quantpulse/pulse/internal/core"
	"github.com/quantpulse/pulse/internal/feature"
	"github.com/quantpulse/pulse/internal/rule"
	"go.uber.org/zap"
)

const (
	// DefaultWarmupBars skips the head of the sequence so indicator
	// features have stabilized before any rule is scored.
	DefaultWarmupBars = 50

	// DefaultMinScore is the minimum weighted score either side must
	// reach before a signal is emitted.
	DefaultMinScore = 2.0

	// DefaultVolatilityFeature names the ATR-like feature used for exit
	// levels and volatility filtering.
	DefaultVolatilityFeature = "atr"
)

// Config holds scorer parameters.
type Config struct {
	WarmupBars        int
	MinScore          float64
	VolatilityFeature string
	Filter            *Criteria
}

// DefaultConfig returns the standard scorer parameters.
func DefaultConfig() Config {
	return Config{
		WarmupBars:        DefaultWarmupBars,
		MinScore:          DefaultMinScore,
		VolatilityFeature: DefaultVolatilityFeature,
	}
}

// Validate fails fast on parameters that would make scoring meaningless.
func (c Config) Validate() error {
	if c.WarmupBars < 0 {
		return core.WrapError(core.ErrInvalidParams,
			fmt.Errorf("warmup bars cannot be negative, got %d", c.WarmupBars))
	}
	if c.MinScore <= 0 {
		return core.WrapError(core.ErrInvalidParams,
			fmt.Errorf("min score must be positive, got %f", c.MinScore))
	}
	return nil
}

// Generator walks a bar sequence and emits a signal wherever the enabled
// rules accumulate enough weighted score on one side. Given identical
// inputs it produces identical output: rules are evaluated in sorted name
// order and no map iteration influences the result.
type Generator struct {
	cfg    Config
	logger *zap.Logger
}

// NewGenerator creates a scorer with the given parameters.
func NewGenerator(cfg Config, logger ...*zap.Logger) (*Generator, error) {
	if cfg.VolatilityFeature == "" {
		cfg.VolatilityFeature = DefaultVolatilityFeature
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var l *zap.Logger
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	} else {
		l = zap.NewNop()
	}
	return &Generator{cfg: cfg, logger: l}, nil
}

// Generate scores every bar past the warm-up window. Short histories and
// bars missing required OHLCV fields are an expected boundary condition:
// they yield an empty signal list, never an error.
func (g *Generator) Generate(bars []core.Bar, features []feature.Snapshot, rules *rule.Set) []core.Signal {
	if len(bars) <= g.cfg.WarmupBars {
		g.logger.Warn("not enough bars for signal generation",
			zap.Int("bars", len(bars)),
			zap.Int("warmup", g.cfg.WarmupBars),
		)
		return nil
	}
	for i, bar := range bars {
		if !bar.IsValid() {
			g.logger.Warn("bar missing required OHLCV fields", zap.Int("index", i))
			return nil
		}
	}

	enabled := rules.Enabled()

	var signals []core.Signal
	for i := g.cfg.WarmupBars; i < len(bars); i++ {
		bar := bars[i]
		snap := snapshotAt(features, i)

		if !g.cfg.Filter.Accept(bar, snap, g.cfg.VolatilityFeature) {
			continue
		}

		if sig, ok := g.scoreBar(bar, snap, enabled); ok {
			signals = append(signals, sig)
		}
	}

	g.logger.Info("signal generation complete",
		zap.Int("bars", len(bars)),
		zap.Int("signals", len(signals)),
	)
	return signals
}

// scoreBar evaluates every enabled rule against one bar's snapshot and
// decides whether a signal fires. Rules arrive sorted by name; firing
// confirmation rules reinforce whichever side is strictly ahead at that
// point in the pass and sit out ties.
func (g *Generator) scoreBar(bar core.Bar, snap feature.Snapshot, enabled []rule.Rule) (core.Signal, bool) {
	var buyScore, sellScore float64
	conditionsMet := make(map[string]bool, len(enabled))

	for _, r := range enabled {
		fired := r.Fires(snap)
		conditionsMet[r.Name] = fired
		if !fired {
			continue
		}

		switch r.Intent {
		case rule.IntentBuy:
			buyScore += r.Weight
		case rule.IntentSell:
			sellScore += r.Weight
		case rule.IntentConfirmation:
			if buyScore > sellScore {
				buyScore += r.Weight
			} else if sellScore > buyScore {
				sellScore += r.Weight
			}
		}
	}

	var direction core.Direction
	var winning float64
	switch {
	case buyScore > sellScore && buyScore >= g.cfg.MinScore:
		direction = core.DirectionBuy
		winning = buyScore
	case sellScore > buyScore && sellScore >= g.cfg.MinScore:
		direction = core.DirectionSell
		winning = sellScore
	default:
		// Below threshold, or a dead tie
		return core.Signal{}, false
	}

	strength := winning * 20
	if strength > 100 {
		strength = 100
	}

	levels := ComputeExits(bar.Close, direction, volatilityFrom(snap, g.cfg.VolatilityFeature))

	return core.Signal{
		Timestamp:     bar.Timestamp,
		Direction:     direction,
		Strength:      strength,
		Confidence:    strength / 100,
		Price:         bar.Close,
		ConditionsMet: conditionsMet,
		StopLoss:      levels.StopLoss,
		TakeProfit:    levels.TakeProfit,
		RiskLevel:     levels.Risk,
		Notes:         fmt.Sprintf("score: buy=%.1f sell=%.1f", buyScore, sellScore),
	}, true
}

// snapshotAt returns the features for bar i, or an empty snapshot when the
// feed is shorter than the bar sequence.
func snapshotAt(features []feature.Snapshot, i int) feature.Snapshot {
	if i < 0 || i >= len(features) {
		return feature.Snapshot{}
	}
	return features[i]
}
