package backtest

import (
	"math"
)

// Compute reduces a trade list into aggregate statistics. All trades passed
// in are resolved (the simulator never emits dangling positions), so
// winning + losing always equals TotalSignals.
func Compute(trades []Trade) Stats {
	if len(trades) == 0 {
		return Stats{}
	}

	var winning int
	returns := make([]float64, len(trades))
	for i, t := range trades {
		returns[i] = t.ReturnNet
		if t.IsWin() {
			winning++
		}
	}

	total := len(trades)
	return Stats{
		TotalSignals:  total,
		WinningTrades: winning,
		LosingTrades:  total - winning,
		WinRate:       float64(winning) / float64(total),
		AvgReturn:     mean(returns),
		MaxDrawdown:   maxDrawdown(returns),
		SharpeRatio:   sharpeRatio(returns),
		ProfitFactor:  profitFactor(returns),
	}
}

// maxDrawdown reports the magnitude of the largest peak-to-trough decline
// of the cumulative (additive) return curve in chronological trade order.
// The running peak is taken over the curve itself, so a curve that starts
// below zero owes nothing until it falls below its own earlier high.
func maxDrawdown(returns []float64) float64 {
	var cumulative, maxDD float64
	peak := math.Inf(-1)
	for _, r := range returns {
		cumulative += r
		if cumulative > peak {
			peak = cumulative
		}
		if dd := peak - cumulative; dd > maxDD {
			maxDD = dd
		}
	}
	return maxDD
}

// sharpeRatio is mean return over population standard deviation, per trade.
// Deliberately not annualized: the ratio describes the signal stream, not a
// calendar-scaled portfolio. Returns 0 when the deviation is 0.
func sharpeRatio(returns []float64) float64 {
	m := mean(returns)

	var variance float64
	for _, r := range returns {
		variance += (r - m) * (r - m)
	}
	stdDev := math.Sqrt(variance / float64(len(returns)))

	if stdDev == 0 {
		return 0
	}
	return m / stdDev
}

// profitFactor is gross profit over gross loss magnitude. +Inf exactly
// when there are winners but no losers; 0 when there are no trades or no
// winners. Zero-return trades count as losers but contribute no gross loss.
func profitFactor(returns []float64) float64 {
	var grossProfit, grossLoss float64
	losers := 0
	for _, r := range returns {
		if r > 0 {
			grossProfit += r
		} else {
			losers++
			grossLoss -= r
		}
	}

	if losers == 0 {
		if grossProfit > 0 {
			return math.Inf(1)
		}
		return 0
	}
	if grossLoss == 0 {
		return 0
	}
	return grossProfit / grossLoss
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
