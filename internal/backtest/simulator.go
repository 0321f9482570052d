// Package backtest replays generated signals against subsequent price
// action, producing one Trade per resolved signal and aggregate
// performance statistics.
package backtest

import (
	"fmt"

	"github.com/quantpulse/pulse/internal/core"
	"github.com/quantpulse/pulse/internal/feature"
	"github.com/quantpulse/pulse/internal/signal"
	"go.uber.org/zap"
)

const (
	// DefaultHoldingPeriod caps a position's lifetime in bars.
	DefaultHoldingPeriod = 10

	// DefaultTransactionCost is the per-side cost rate (10bps).
	DefaultTransactionCost = 0.001
)

// Config holds simulation parameters.
type Config struct {
	HoldingPeriod     int
	TransactionCost   float64
	Slippage          float64
	VolatilityFeature string
}

// DefaultConfig returns the standard simulation parameters.
func DefaultConfig() Config {
	return Config{
		HoldingPeriod:     DefaultHoldingPeriod,
		TransactionCost:   DefaultTransactionCost,
		VolatilityFeature: signal.DefaultVolatilityFeature,
	}
}

// Validate fails fast on parameters that would corrupt a simulation.
func (c Config) Validate() error {
	if c.HoldingPeriod <= 0 {
		return core.WrapError(core.ErrInvalidParams,
			fmt.Errorf("holding period must be positive, got %d", c.HoldingPeriod))
	}
	if c.TransactionCost < 0 {
		return core.WrapError(core.ErrInvalidParams,
			fmt.Errorf("transaction cost cannot be negative, got %f", c.TransactionCost))
	}
	if c.Slippage < 0 {
		return core.WrapError(core.ErrInvalidParams,
			fmt.Errorf("slippage cannot be negative, got %f", c.Slippage))
	}
	return nil
}

// Simulator replays chronological signals against a bar sequence. It holds
// at most one open position at a time: signals arriving while a position is
// open are ignored, and signals with fewer than HoldingPeriod future bars
// are skipped entirely rather than counted as losses.
type Simulator struct {
	cfg    Config
	logger *zap.Logger
}

// NewSimulator creates a simulator with the given parameters.
func NewSimulator(cfg Config, logger ...*zap.Logger) (*Simulator, error) {
	if cfg.VolatilityFeature == "" {
		cfg.VolatilityFeature = signal.DefaultVolatilityFeature
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
	return &Simulator{cfg: cfg, logger: l}, nil
}

// Run simulates the signal list and aggregates the resulting trades.
// An empty signal list yields a zero-valued result, never an error.
func (s *Simulator) Run(bars []core.Bar, features []feature.Snapshot, signals []core.Signal) Result {
	trades := s.simulate(bars, features, signals)
	result := Result{
		Stats:  Compute(trades),
		Trades: trades,
	}
	s.logger.Info("backtest complete",
		zap.Int("signals", len(signals)),
		zap.Int("trades", len(trades)),
		zap.Float64("win_rate", result.WinRate),
	)
	return result
}

func (s *Simulator) simulate(bars []core.Bar, features []feature.Snapshot, signals []core.Signal) []Trade {
	var trades []Trade

	cursor := 0   // advances monotonically: signals are chronological
	lastExit := -1

	for _, sig := range signals {
		for cursor < len(bars) && bars[cursor].Timestamp.Before(sig.Timestamp) {
			cursor++
		}
		if cursor >= len(bars) {
			break
		}
		entry := cursor

		// Still in a position opened by an earlier signal
		if entry <= lastExit {
			continue
		}

		// Not enough future bars to resolve the position: skip, do not
		// count as a loss.
		if entry+s.cfg.HoldingPeriod >= len(bars) {
			continue
		}

		trade := s.openAndClose(bars, features, sig, entry)
		trades = append(trades, trade.Trade)
		lastExit = trade.exitIndex
	}

	return trades
}

type resolvedTrade struct {
	Trade
	exitIndex int
}

// openAndClose enters at the entry bar's close (worsened by slippage),
// recomputes exit levels against the actual entry price, and scans forward
// for the first bar breaching them. Stop-loss takes precedence over
// take-profit within a single bar.
func (s *Simulator) openAndClose(bars []core.Bar, features []feature.Snapshot, sig core.Signal, entry int) resolvedTrade {
	entryBar := bars[entry]
	entryPrice := s.slippedEntry(entryBar.Close, sig.Direction)

	vol := volatilityAt(features, entry, s.cfg.VolatilityFeature)
	levels := signal.ComputeExits(entryPrice, sig.Direction, vol)

	exitIdx := entry + s.cfg.HoldingPeriod
	exitPrice := bars[exitIdx].Close
	reason := core.ExitMaxHoldingPeriod

scan:
	for j := entry + 1; j <= entry+s.cfg.HoldingPeriod; j++ {
		bar := bars[j]
		if sig.Direction == core.DirectionBuy {
			switch {
			case bar.Low <= levels.StopLoss:
				exitIdx, exitPrice, reason = j, levels.StopLoss, core.ExitStopLoss
				break scan
			case bar.High >= levels.TakeProfit:
				exitIdx, exitPrice, reason = j, levels.TakeProfit, core.ExitTakeProfit
				break scan
			}
		} else {
			switch {
			case bar.High >= levels.StopLoss:
				exitIdx, exitPrice, reason = j, levels.StopLoss, core.ExitStopLoss
				break scan
			case bar.Low <= levels.TakeProfit:
				exitIdx, exitPrice, reason = j, levels.TakeProfit, core.ExitTakeProfit
				break scan
			}
		}
	}

	exitPrice = s.slippedExit(exitPrice, sig.Direction)

	var rawReturn float64
	if sig.Direction == core.DirectionBuy {
		rawReturn = (exitPrice - entryPrice) / entryPrice
	} else {
		rawReturn = (entryPrice - exitPrice) / entryPrice
	}
	netReturn := rawReturn - 2*s.cfg.TransactionCost

	return resolvedTrade{
		Trade: Trade{
			EntryTime:  entryBar.Timestamp,
			ExitTime:   bars[exitIdx].Timestamp,
			Direction:  sig.Direction,
			EntryPrice: entryPrice,
			ExitPrice:  exitPrice,
			ReturnNet:  netReturn,
			ExitReason: reason,
			StoppedOut: reason != core.ExitMaxHoldingPeriod,
			Strength:   sig.Strength,
		},
		exitIndex: exitIdx,
	}
}

// slippedEntry worsens the entry price in the signal's direction.
func (s *Simulator) slippedEntry(price float64, direction core.Direction) float64 {
	if direction == core.DirectionBuy {
		return price * (1 + s.cfg.Slippage)
	}
	return price * (1 - s.cfg.Slippage)
}

// slippedExit worsens the exit price symmetrically.
func (s *Simulator) slippedExit(price float64, direction core.Direction) float64 {
	if direction == core.DirectionBuy {
		return price * (1 - s.cfg.Slippage)
	}
	return price * (1 + s.cfg.Slippage)
}

func volatilityAt(features []feature.Snapshot, i int, name string) float64 {
	if i < 0 || i >= len(features) {
		return 0
	}
	v, ok := features[i].Get(name)
	if !ok {
		return 0
	}
	return v
}
