package indicator

import (
	"github.com/quantpulse/pulse/internal/core"
	"github.com/quantpulse/pulse/internal/feature"
)

// Standard indicator periods used by the default feature table.
const (
	emaFastPeriod    = 9
	emaSlowPeriod    = 21
	rsiPeriod        = 14
	atrPeriod        = 14
	macdFastPeriod   = 12
	macdSlowPeriod   = 26
	macdSignalPeriod = 9
	bollingerPeriod  = 20
	bollingerWidth   = 2.0
	volumeAvgPeriod  = 20
)

// Features computes the feature table the built-in rule set references.
// Support/resistance features (near_support, support_strength and their
// resistance counterparts) come from a separate detector and can be added
// to the returned table by the caller.
func Features(bars []core.Bar) *feature.Table {
	closes := make([]float64, len(bars))
	volumes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
		volumes[i] = b.Volume
	}

	t := feature.NewTable(len(bars))
	t.Set("close", closes)
	t.Set("close_change", PctChange(closes))
	t.Set("volume_ratio", VolumeRatio(volumes, volumeAvgPeriod))

	emaSlow := EMA(closes, emaSlowPeriod)
	t.Set("ema_9", EMA(closes, emaFastPeriod))
	t.Set("ema_21", emaSlow)
	t.Set("ema_21_slope", Slope(emaSlow))

	rsi := RSI(closes, rsiPeriod)
	t.Set("rsi_current", rsi)
	t.Set("rsi_previous", Shift(rsi, 1))

	t.Set("atr", ATR(bars, atrPeriod))

	macdLine, macdSignal, _ := MACD(closes, macdFastPeriod, macdSlowPeriod, macdSignalPeriod)
	t.Set("macd_line", macdLine)
	t.Set("macd_signal", macdSignal)

	percentB := BollingerPercentB(closes, bollingerPeriod, bollingerWidth)
	t.Set("bb_percent_b_current", percentB)
	t.Set("bb_percent_b_previous", Shift(percentB, 1))

	t.Set("vwap", VWAP(bars))

	return t
}
