package signal

import (
	"math"

	"github.com/quantpulse/pulse/internal/core"
	"github.com/quantpulse/pulse/internal/feature"
)

const (
	// DefaultVolatilityFraction substitutes for a missing volatility
	// feature: 2% of the entry price.
	DefaultVolatilityFraction = 0.02

	stopLossMultiple   = 2.0
	takeProfitMultiple = 3.0

	highRiskVolatility   = 0.03
	mediumRiskVolatility = 0.015
)

// ExitLevels holds the derived exit prices and coarse risk classification
// for a position entered at a given price.
type ExitLevels struct {
	StopLoss   float64
	TakeProfit float64
	Risk       core.RiskLevel
}

// ComputeExits derives stop-loss/take-profit levels from a volatility
// measure (an ATR-like feature). A non-positive or NaN volatility falls
// back to DefaultVolatilityFraction of the entry price. Stop distance is
// twice the volatility, take-profit distance three times, applied on the
// side matching the direction.
func ComputeExits(entryPrice float64, direction core.Direction, volatility float64) ExitLevels {
	if math.IsNaN(volatility) || volatility <= 0 {
		volatility = entryPrice * DefaultVolatilityFraction
	}

	var levels ExitLevels
	if direction == core.DirectionBuy {
		levels.StopLoss = entryPrice - volatility*stopLossMultiple
		levels.TakeProfit = entryPrice + volatility*takeProfitMultiple
	} else {
		levels.StopLoss = entryPrice + volatility*stopLossMultiple
		levels.TakeProfit = entryPrice - volatility*takeProfitMultiple
	}
	levels.Risk = riskLevel(entryPrice, volatility)
	return levels
}

// riskLevel classifies relative volatility: above 3% high, above 1.5%
// medium, otherwise low.
func riskLevel(entryPrice, volatility float64) core.RiskLevel {
	if entryPrice <= 0 {
		return core.RiskLow
	}
	ratio := volatility / entryPrice
	switch {
	case ratio > highRiskVolatility:
		return core.RiskHigh
	case ratio > mediumRiskVolatility:
		return core.RiskMedium
	default:
		return core.RiskLow
	}
}

// volatilityFrom reads the configured volatility feature from a snapshot,
// returning 0 when absent so ComputeExits applies its fallback.
func volatilityFrom(snap feature.Snapshot, name string) float64 {
	v, ok := snap.Get(name)
	if !ok {
		return 0
	}
	return v
}
