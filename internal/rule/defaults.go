package rule

import "go.uber.org/zap"

// val returns a pointer to v for constant condition operands.
func val(v float64) *float64 {
	return &v
}

// DefaultSet returns the built-in rule set: five buy rules, five sell
// rules, and two confirmation rules spanning trend, momentum, volatility,
// volume, and support/resistance categories. The feature names referenced
// here must be supplied by the caller's feature feed (indicator.Features
// produces all of them except the support/resistance family).
func DefaultSet(logger ...*zap.Logger) *Set {
	s := NewSet(logger...)

	defaults := []Rule{
		{
			Name:        "ema_bullish_crossover",
			Description: "EMA9 above EMA21 while EMA21 slopes up",
			Intent:      IntentBuy,
			Category:    "trend",
			Weight:      1.5,
			Enabled:     true,
			Conditions: []Condition{
				{Feature: "ema_9", Operator: OpGreater, CompareTo: "ema_21"},
				{Feature: "ema_21_slope", Operator: OpGreater, Value: val(0)},
			},
		},
		{
			Name:        "rsi_oversold_recovery",
			Description: "RSI recovering from below 30",
			Intent:      IntentBuy,
			Category:    "momentum",
			Weight:      1.2,
			Enabled:     true,
			Conditions: []Condition{
				{Feature: "rsi_current", Operator: OpGreater, Value: val(30)},
				{Feature: "rsi_previous", Operator: OpLess, Value: val(30)},
				{Feature: "rsi_current", Operator: OpLess, Value: val(70)},
			},
		},
		{
			Name:        "bollinger_lower_bounce",
			Description: "Bounce off the lower Bollinger band",
			Intent:      IntentBuy,
			Category:    "volatility",
			Weight:      1.3,
			Enabled:     true,
			Conditions: []Condition{
				{Feature: "bb_percent_b_previous", Operator: OpLess, Value: val(0.1)},
				{Feature: "bb_percent_b_current", Operator: OpGreater, Value: val(0.15)},
				{Feature: "close_change", Operator: OpGreater, Value: val(0)},
			},
		},
		{
			Name:        "volume_surge_bullish",
			Description: "Twice the usual volume on a rising close",
			Intent:      IntentBuy,
			Category:    "volume",
			Weight:      1.1,
			Enabled:     true,
			Conditions: []Condition{
				{Feature: "volume_ratio", Operator: OpGreater, Value: val(2.0)},
				{Feature: "close_change", Operator: OpGreater, Value: val(0.005)},
			},
		},
		{
			Name:        "support_level_bounce",
			Description: "Bounce off a strong support level",
			Intent:      IntentBuy,
			Category:    "support_resistance",
			Weight:      1.4,
			Enabled:     true,
			Conditions: []Condition{
				{Feature: "near_support", Operator: OpEqual, Value: val(1)},
				{Feature: "support_strength", Operator: OpGreater, Value: val(0.7)},
				{Feature: "close_change", Operator: OpGreater, Value: val(0)},
			},
		},
		{
			Name:        "ema_bearish_crossover",
			Description: "EMA9 below EMA21 while EMA21 slopes down",
			Intent:      IntentSell,
			Category:    "trend",
			Weight:      1.5,
			Enabled:     true,
			Conditions: []Condition{
				{Feature: "ema_9", Operator: OpLess, CompareTo: "ema_21"},
				{Feature: "ema_21_slope", Operator: OpLess, Value: val(0)},
			},
		},
		{
			Name:        "rsi_overbought_reversal",
			Description: "RSI dropping back from above 70",
			Intent:      IntentSell,
			Category:    "momentum",
			Weight:      1.2,
			Enabled:     true,
			Conditions: []Condition{
				{Feature: "rsi_current", Operator: OpLess, Value: val(70)},
				{Feature: "rsi_previous", Operator: OpGreater, Value: val(70)},
				{Feature: "rsi_current", Operator: OpGreater, Value: val(30)},
			},
		},
		{
			Name:        "bollinger_upper_rejection",
			Description: "Rejection at the upper Bollinger band",
			Intent:      IntentSell,
			Category:    "volatility",
			Weight:      1.3,
			Enabled:     true,
			Conditions: []Condition{
				{Feature: "bb_percent_b_previous", Operator: OpGreater, Value: val(0.9)},
				{Feature: "bb_percent_b_current", Operator: OpLess, Value: val(0.85)},
				{Feature: "close_change", Operator: OpLess, Value: val(0)},
			},
		},
		{
			Name:        "volume_surge_bearish",
			Description: "Twice the usual volume on a falling close",
			Intent:      IntentSell,
			Category:    "volume",
			Weight:      1.1,
			Enabled:     true,
			Conditions: []Condition{
				{Feature: "volume_ratio", Operator: OpGreater, Value: val(2.0)},
				{Feature: "close_change", Operator: OpLess, Value: val(-0.005)},
			},
		},
		{
			Name:        "resistance_level_rejection",
			Description: "Rejection at a strong resistance level",
			Intent:      IntentSell,
			Category:    "support_resistance",
			Weight:      1.4,
			Enabled:     true,
			Conditions: []Condition{
				{Feature: "near_resistance", Operator: OpEqual, Value: val(1)},
				{Feature: "resistance_strength", Operator: OpGreater, Value: val(0.7)},
				{Feature: "close_change", Operator: OpLess, Value: val(0)},
			},
		},
		{
			Name:        "macd_confirmation",
			Description: "MACD line above its signal line",
			Intent:      IntentConfirmation,
			Category:    "confirmation",
			Weight:      0.8,
			Enabled:     true,
			Conditions: []Condition{
				{Feature: "macd_line", Operator: OpGreater, CompareTo: "macd_signal"},
			},
		},
		{
			Name:        "vwap_confirmation",
			Description: "Close above VWAP",
			Intent:      IntentConfirmation,
			Category:    "confirmation",
			Weight:      0.7,
			Enabled:     true,
			Conditions: []Condition{
				{Feature: "close", Operator: OpGreater, CompareTo: "vwap"},
			},
		},
	}

	for _, r := range defaults {
		// Built-in rules always validate
		_ = s.Add(r)
	}

	return s
}
