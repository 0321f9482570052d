package backtest

import (
	"math"
	"testing"
	"time"

	"github.com/quantpulse/pulse/internal/core"
	"github.com/quantpulse/pulse/internal/feature"
)

var testStart = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

// steadyBars builds n hourly bars closing at close with a 1-point range.
func steadyBars(n int, close float64) []core.Bar {
	bars := make([]core.Bar, n)
	for i := range bars {
		bars[i] = core.Bar{
			Timestamp: testStart.Add(time.Duration(i) * time.Hour),
			Open:      close, High: close + 1, Low: close - 1, Close: close,
			Volume: 1000,
		}
	}
	return bars
}

func atrSnapshots(n int, atr float64) []feature.Snapshot {
	out := make([]feature.Snapshot, n)
	for i := range out {
		out[i] = feature.Snapshot{"atr": atr}
	}
	return out
}

func buySignalAt(i int) core.Signal {
	return core.Signal{
		Timestamp: testStart.Add(time.Duration(i) * time.Hour),
		Direction: core.DirectionBuy,
		Strength:  60,
		Price:     100,
	}
}

func newTestSimulator(t *testing.T, cfg Config) *Simulator {
	t.Helper()
	sim, err := NewSimulator(cfg)
	if err != nil {
		t.Fatalf("NewSimulator failed: %v", err)
	}
	return sim
}

func TestSimulator_StopLossExit(t *testing.T) {
	// Entry at 100 with ATR 5: stop 90, take-profit 115. Bar 2 trades down
	// through the stop.
	bars := steadyBars(8, 100)
	bars[2].Low = 89

	cfg := Config{HoldingPeriod: 5, TransactionCost: 0.001}
	sim := newTestSimulator(t, cfg)

	result := sim.Run(bars, atrSnapshots(8, 5), []core.Signal{buySignalAt(0)})

	if len(result.Trades) != 1 {
		t.Fatalf("got %d trades, want 1", len(result.Trades))
	}
	trade := result.Trades[0]
	if trade.ExitReason != core.ExitStopLoss {
		t.Errorf("ExitReason = %v, want stop_loss", trade.ExitReason)
	}
	if !trade.StoppedOut {
		t.Error("stop-loss exit must set StoppedOut")
	}
	if trade.ExitPrice != 90 {
		t.Errorf("ExitPrice = %v, want the stop level 90", trade.ExitPrice)
	}
	wantReturn := (90.0-100.0)/100.0 - 2*0.001
	if math.Abs(trade.ReturnNet-wantReturn) > 1e-12 {
		t.Errorf("ReturnNet = %v, want %v", trade.ReturnNet, wantReturn)
	}
	if !trade.ExitTime.Equal(bars[2].Timestamp) {
		t.Errorf("ExitTime = %v, want bar 2", trade.ExitTime)
	}
}

func TestSimulator_TakeProfitExit(t *testing.T) {
	bars := steadyBars(8, 100)
	bars[3].High = 116 // through the 115 take-profit

	cfg := Config{HoldingPeriod: 5, TransactionCost: 0.001}
	sim := newTestSimulator(t, cfg)

	result := sim.Run(bars, atrSnapshots(8, 5), []core.Signal{buySignalAt(0)})

	if len(result.Trades) != 1 {
		t.Fatalf("got %d trades, want 1", len(result.Trades))
	}
	trade := result.Trades[0]
	if trade.ExitReason != core.ExitTakeProfit {
		t.Errorf("ExitReason = %v, want take_profit", trade.ExitReason)
	}
	if !trade.StoppedOut {
		t.Error("take-profit exit counts as a level breach")
	}
	if trade.ExitPrice != 115 {
		t.Errorf("ExitPrice = %v, want the take-profit level 115", trade.ExitPrice)
	}
	if !trade.IsWin() {
		t.Error("take-profit trade should be a win")
	}
}

func TestSimulator_StopTakesPrecedenceWithinBar(t *testing.T) {
	// Bar 1 trades through both levels: the stop wins.
	bars := steadyBars(8, 100)
	bars[1].Low = 88
	bars[1].High = 117

	cfg := Config{HoldingPeriod: 5, TransactionCost: 0}
	sim := newTestSimulator(t, cfg)

	result := sim.Run(bars, atrSnapshots(8, 5), []core.Signal{buySignalAt(0)})

	if len(result.Trades) != 1 {
		t.Fatalf("got %d trades, want 1", len(result.Trades))
	}
	if result.Trades[0].ExitReason != core.ExitStopLoss {
		t.Errorf("ExitReason = %v, want stop_loss when both levels are hit", result.Trades[0].ExitReason)
	}
}

func TestSimulator_MaxHoldingPeriodExit(t *testing.T) {
	bars := steadyBars(8, 100)
	bars[5].Close = 103 // no breach anywhere, exit at the holding bound
	bars[5].High = 104

	cfg := Config{HoldingPeriod: 5, TransactionCost: 0}
	sim := newTestSimulator(t, cfg)

	result := sim.Run(bars, atrSnapshots(8, 5), []core.Signal{buySignalAt(0)})

	if len(result.Trades) != 1 {
		t.Fatalf("got %d trades, want 1", len(result.Trades))
	}
	trade := result.Trades[0]
	if trade.ExitReason != core.ExitMaxHoldingPeriod {
		t.Errorf("ExitReason = %v, want max_holding_period", trade.ExitReason)
	}
	if trade.StoppedOut {
		t.Error("a max-holding exit is not a level breach")
	}
	if trade.ExitPrice != 103 {
		t.Errorf("ExitPrice = %v, want the bar-5 close 103", trade.ExitPrice)
	}
	if !trade.ExitTime.Equal(bars[5].Timestamp) {
		t.Errorf("ExitTime = %v, want bar 5", trade.ExitTime)
	}
}

func TestSimulator_SellSide(t *testing.T) {
	// Sell entry at 100 with ATR 5: stop 110 above, take-profit 85 below.
	bars := steadyBars(8, 100)
	bars[2].High = 111

	cfg := Config{HoldingPeriod: 5, TransactionCost: 0}
	sim := newTestSimulator(t, cfg)

	sell := buySignalAt(0)
	sell.Direction = core.DirectionSell

	result := sim.Run(bars, atrSnapshots(8, 5), []core.Signal{sell})

	if len(result.Trades) != 1 {
		t.Fatalf("got %d trades, want 1", len(result.Trades))
	}
	trade := result.Trades[0]
	if trade.ExitReason != core.ExitStopLoss {
		t.Errorf("ExitReason = %v, want stop_loss", trade.ExitReason)
	}
	if trade.ExitPrice != 110 {
		t.Errorf("ExitPrice = %v, want 110", trade.ExitPrice)
	}
	wantReturn := (100.0 - 110.0) / 100.0
	if math.Abs(trade.ReturnNet-wantReturn) > 1e-12 {
		t.Errorf("ReturnNet = %v, want %v", trade.ReturnNet, wantReturn)
	}
}

func TestSimulator_SkipsSignalsWithoutEnoughFutureBars(t *testing.T) {
	// The signal lands on bar 5 with only 2 future bars against a 5-bar
	// holding period: skipped, not counted as a loss.
	bars := steadyBars(8, 100)

	cfg := Config{HoldingPeriod: 5, TransactionCost: 0.001}
	sim := newTestSimulator(t, cfg)

	result := sim.Run(bars, atrSnapshots(8, 5), []core.Signal{buySignalAt(5)})

	if len(result.Trades) != 0 {
		t.Errorf("got %d trades, want 0 for an unresolvable signal", len(result.Trades))
	}
	if result.TotalSignals != 0 {
		t.Errorf("TotalSignals = %d, want 0", result.TotalSignals)
	}
}

func TestSimulator_EmptySignalsYieldZeroResult(t *testing.T) {
	bars := steadyBars(20, 100)

	sim := newTestSimulator(t, DefaultConfig())
	result := sim.Run(bars, atrSnapshots(20, 5), nil)

	if result.Stats != (Stats{}) {
		t.Errorf("Stats = %+v, want zero value", result.Stats)
	}
	if len(result.Trades) != 0 {
		t.Errorf("got %d trades, want 0", len(result.Trades))
	}
}

func TestSimulator_IgnoresSignalsWhileInPosition(t *testing.T) {
	bars := steadyBars(12, 100)

	cfg := Config{HoldingPeriod: 5, TransactionCost: 0}
	sim := newTestSimulator(t, cfg)

	// The second signal fires on bar 2 while the bar-0 position is still
	// open until bar 5.
	signals := []core.Signal{buySignalAt(0), buySignalAt(2)}
	result := sim.Run(bars, atrSnapshots(12, 5), signals)

	if len(result.Trades) != 1 {
		t.Fatalf("got %d trades, want 1 (overlapping signal ignored)", len(result.Trades))
	}
	if !result.Trades[0].EntryTime.Equal(bars[0].Timestamp) {
		t.Error("the surviving trade should be the earlier signal's")
	}
}

func TestSimulator_BackToBackSignals(t *testing.T) {
	bars := steadyBars(20, 100)

	cfg := Config{HoldingPeriod: 5, TransactionCost: 0}
	sim := newTestSimulator(t, cfg)

	// First position runs bars 0-5; a signal on bar 6 opens a second one.
	signals := []core.Signal{buySignalAt(0), buySignalAt(6)}
	result := sim.Run(bars, atrSnapshots(20, 5), signals)

	if len(result.Trades) != 2 {
		t.Fatalf("got %d trades, want 2", len(result.Trades))
	}
}

func TestSimulator_SlippageWorsensBothSides(t *testing.T) {
	bars := steadyBars(8, 100)

	cfg := Config{HoldingPeriod: 5, TransactionCost: 0, Slippage: 0.01}
	sim := newTestSimulator(t, cfg)

	// No ATR feed: exits fall back to 2% of the slipped entry and are never
	// breached by the flat 99-101 range, so the position runs the full
	// holding period.
	result := sim.Run(bars, nil, []core.Signal{buySignalAt(0)})

	if len(result.Trades) != 1 {
		t.Fatalf("got %d trades, want 1", len(result.Trades))
	}
	trade := result.Trades[0]
	if trade.EntryPrice != 101 {
		t.Errorf("EntryPrice = %v, want 101 (close worsened by 1%%)", trade.EntryPrice)
	}
	if trade.ExitPrice != 99 {
		t.Errorf("ExitPrice = %v, want 99 (close worsened by 1%%)", trade.ExitPrice)
	}
	wantReturn := (99.0 - 101.0) / 101.0
	if math.Abs(trade.ReturnNet-wantReturn) > 1e-12 {
		t.Errorf("ReturnNet = %v, want %v", trade.ReturnNet, wantReturn)
	}
}

func TestSimulator_ConfigValidation(t *testing.T) {
	bad := []Config{
		{HoldingPeriod: 0},
		{HoldingPeriod: 10, TransactionCost: -0.1},
		{HoldingPeriod: 10, Slippage: -0.01},
	}
	for _, cfg := range bad {
		if _, err := NewSimulator(cfg); err == nil {
			t.Errorf("config %+v should be rejected", cfg)
		}
	}
}
