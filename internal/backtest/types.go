package backtest

import (
	"time"

	"github.com/quantpulse/pulse/internal/core"
)

// Trade is the closed-position record for one simulated signal.
// Immutable once recorded.
type Trade struct {
	EntryTime  time.Time       `json:"entry_time"`
	ExitTime   time.Time       `json:"exit_time"`
	Direction  core.Direction  `json:"direction"`
	EntryPrice float64         `json:"entry_price"`
	ExitPrice  float64         `json:"exit_price"`
	ReturnNet  float64         `json:"return_net"`
	ExitReason core.ExitReason `json:"exit_reason"`
	// StoppedOut marks exits caused by a level breach (stop-loss or
	// take-profit), as opposed to running out the holding period.
	StoppedOut bool    `json:"stopped_out"`
	Strength   float64 `json:"strength"`
}

// IsWin reports whether the trade ended with a positive net return.
func (t Trade) IsWin() bool {
	return t.ReturnNet > 0
}

// Stats holds aggregate performance statistics over the resolved trades.
type Stats struct {
	TotalSignals  int     `json:"total_signals"`
	WinningTrades int     `json:"winning_trades"`
	LosingTrades  int     `json:"losing_trades"`
	WinRate       float64 `json:"win_rate"`   // fraction of winning trades
	AvgReturn     float64 `json:"avg_return"` // mean net return per trade
	MaxDrawdown   float64 `json:"max_drawdown"`
	SharpeRatio   float64 `json:"sharpe_ratio"`
	ProfitFactor  float64 `json:"profit_factor"`
}

// Result is the complete backtest output: the statistics plus the trade
// list they were computed from, in chronological order.
type Result struct {
	Stats
	Trades []Trade `json:"trades"`
}

// Target metric names accepted by Result.Metric and the optimizer.
const (
	MetricWinRate      = "win_rate"
	MetricAvgReturn    = "avg_return"
	MetricMaxDrawdown  = "max_drawdown"
	MetricSharpeRatio  = "sharpe_ratio"
	MetricProfitFactor = "profit_factor"
)

// Metric returns the named statistic, or core.ErrUnknownMetric for names
// outside the supported set.
func (r Result) Metric(name string) (float64, error) {
	switch name {
	case MetricWinRate:
		return r.WinRate, nil
	case MetricAvgReturn:
		return r.AvgReturn, nil
	case MetricMaxDrawdown:
		return r.MaxDrawdown, nil
	case MetricSharpeRatio:
		return r.SharpeRatio, nil
	case MetricProfitFactor:
		return r.ProfitFactor, nil
	default:
		return 0, core.ErrUnknownMetric
	}
}
