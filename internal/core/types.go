package core

import "time"

// Direction represents the side of a trading signal
type Direction string

const (
	DirectionBuy  Direction = "buy"
	DirectionSell Direction = "sell"
)

// RiskLevel classifies the volatility risk of a signal
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// ExitReason records why a simulated position was closed
type ExitReason string

const (
	ExitStopLoss         ExitReason = "stop_loss"
	ExitTakeProfit       ExitReason = "take_profit"
	ExitMaxHoldingPeriod ExitReason = "max_holding_period"
)

// Bar represents a single OHLCV observation for a fixed interval.
// Bars are immutable once ingested; the engine only reads them.
type Bar struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
}

// IsValid checks that the bar carries the required OHLCV fields
func (b Bar) IsValid() bool {
	return !b.Timestamp.IsZero() && b.Open > 0 && b.High > 0 && b.Low > 0 && b.Close > 0
}

// Signal represents a directional trading signal produced by the scorer.
// Created once per qualifying bar and never mutated afterwards.
type Signal struct {
	ID            string          `json:"id,omitempty"`
	Timestamp     time.Time       `json:"timestamp"`
	Direction     Direction       `json:"direction"`
	Strength      float64         `json:"strength"`   // 0-100
	Confidence    float64         `json:"confidence"` // strength / 100
	Price         float64         `json:"price"`
	ConditionsMet map[string]bool `json:"conditions_met"`
	StopLoss      float64         `json:"stop_loss"`
	TakeProfit    float64         `json:"take_profit"`
	RiskLevel     RiskLevel       `json:"risk_level"`
	Notes         string          `json:"notes,omitempty"`
}
