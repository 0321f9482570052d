// Package indicator computes the derived series the default rule set
// references. It sits outside the engine proper: the scorer and simulator
// consume only feature snapshots and never call into this package.
//
// All functions return series aligned with their input, NaN-padded at the
// head until the indicator has enough history.
package indicator

import (
	"math"

	"github.com/quantpulse/pulse/internal/core"
)

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// SMA calculates a simple moving average.
func SMA(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period <= 0 || len(values) < period {
		return out
	}

	var sum float64
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}
	return out
}

// EMA calculates an exponential moving average seeded with the SMA of the
// first period values.
func EMA(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period <= 0 || len(values) < period {
		return out
	}

	var sum float64
	for i := 0; i < period; i++ {
		sum += values[i]
	}
	ema := sum / float64(period)
	out[period-1] = ema

	multiplier := 2.0 / float64(period+1)
	for i := period; i < len(values); i++ {
		ema = (values[i]-ema)*multiplier + ema
		out[i] = ema
	}
	return out
}

// RSI calculates Wilder's relative strength index.
func RSI(closes []float64, period int) []float64 {
	out := nanSlice(len(closes))
	if period <= 0 || len(closes) <= period {
		return out
	}

	var gainSum, lossSum float64
	for i := 1; i <= period; i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gainSum += delta
		} else {
			lossSum -= delta
		}
	}
	avgGain := gainSum / float64(period)
	avgLoss := lossSum / float64(period)
	out[period] = rsiValue(avgGain, avgLoss)

	for i := period + 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		var gain, loss float64
		if delta > 0 {
			gain = delta
		} else {
			loss = -delta
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out[i] = rsiValue(avgGain, avgLoss)
	}
	return out
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

// ATR calculates the average true range over period bars.
func ATR(bars []core.Bar, period int) []float64 {
	out := nanSlice(len(bars))
	if period <= 0 || len(bars) <= period {
		return out
	}

	tr := make([]float64, len(bars))
	tr[0] = bars[0].High - bars[0].Low
	for i := 1; i < len(bars); i++ {
		highLow := bars[i].High - bars[i].Low
		highClose := math.Abs(bars[i].High - bars[i-1].Close)
		lowClose := math.Abs(bars[i].Low - bars[i-1].Close)
		tr[i] = math.Max(highLow, math.Max(highClose, lowClose))
	}

	var sum float64
	for i := 0; i <= period; i++ {
		sum += tr[i]
	}
	atr := sum / float64(period+1)
	out[period] = atr

	for i := period + 1; i < len(bars); i++ {
		atr = (atr*float64(period-1) + tr[i]) / float64(period)
		out[i] = atr
	}
	return out
}

// MACD calculates the MACD line, its signal line, and the histogram.
func MACD(closes []float64, fast, slow, signalPeriod int) (line, signalLine, histogram []float64) {
	fastEMA := EMA(closes, fast)
	slowEMA := EMA(closes, slow)

	line = nanSlice(len(closes))
	for i := range closes {
		line[i] = fastEMA[i] - slowEMA[i]
	}

	// Signal line is an EMA over the defined stretch of the MACD line
	signalLine = nanSlice(len(closes))
	if len(closes) > slow-1 {
		defined := line[slow-1:]
		sig := EMA(defined, signalPeriod)
		copy(signalLine[slow-1:], sig)
	}

	histogram = nanSlice(len(closes))
	for i := range closes {
		histogram[i] = line[i] - signalLine[i]
	}
	return line, signalLine, histogram
}

// BollingerPercentB calculates %B: where the close sits within the bands,
// 0 at the lower band and 1 at the upper.
func BollingerPercentB(closes []float64, period int, k float64) []float64 {
	out := nanSlice(len(closes))
	if period <= 0 || len(closes) < period {
		return out
	}

	ma := SMA(closes, period)
	for i := period - 1; i < len(closes); i++ {
		var variance float64
		for j := i - period + 1; j <= i; j++ {
			d := closes[j] - ma[i]
			variance += d * d
		}
		stdDev := math.Sqrt(variance / float64(period))
		if stdDev == 0 {
			continue // leave NaN: bands collapsed
		}
		lower := ma[i] - k*stdDev
		upper := ma[i] + k*stdDev
		out[i] = (closes[i] - lower) / (upper - lower)
	}
	return out
}

// VWAP calculates the cumulative volume-weighted average price.
func VWAP(bars []core.Bar) []float64 {
	out := nanSlice(len(bars))
	var cumPV, cumVol float64
	for i, b := range bars {
		typical := (b.High + b.Low + b.Close) / 3
		cumPV += typical * b.Volume
		cumVol += b.Volume
		if cumVol > 0 {
			out[i] = cumPV / cumVol
		}
	}
	return out
}

// Slope returns the bar-over-bar difference of a series.
func Slope(values []float64) []float64 {
	out := nanSlice(len(values))
	for i := 1; i < len(values); i++ {
		out[i] = values[i] - values[i-1]
	}
	return out
}

// Shift returns the series delayed by n bars.
func Shift(values []float64, n int) []float64 {
	out := nanSlice(len(values))
	for i := n; i < len(values); i++ {
		out[i] = values[i-n]
	}
	return out
}

// PctChange returns the bar-over-bar fractional change of a series.
func PctChange(values []float64) []float64 {
	out := nanSlice(len(values))
	for i := 1; i < len(values); i++ {
		if values[i-1] != 0 {
			out[i] = (values[i] - values[i-1]) / values[i-1]
		}
	}
	return out
}

// VolumeRatio returns volume relative to its rolling average.
func VolumeRatio(volumes []float64, period int) []float64 {
	avg := SMA(volumes, period)
	out := nanSlice(len(volumes))
	for i := range volumes {
		if !math.IsNaN(avg[i]) && avg[i] > 0 {
			out[i] = volumes[i] / avg[i]
		}
	}
	return out
}
