package optimize

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/quantpulse/pulse/internal/backtest"
	"github.com/quantpulse/pulse/internal/core"
	"github.com/quantpulse/pulse/internal/feature"
	"github.com/quantpulse/pulse/internal/rule"
	"github.com/quantpulse/pulse/internal/signal"
)

func fval(v float64) *float64 { return &v }

// risingBars builds n hourly bars with the close climbing one point per bar.
func risingBars(n int) []core.Bar {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]core.Bar, n)
	for i := range bars {
		close := 100.0 + float64(i)
		bars[i] = core.Bar{
			Timestamp: start.Add(time.Duration(i) * time.Hour),
			Open:      close, High: close + 1, Low: close - 1, Close: close,
			Volume: 1000,
		}
	}
	return bars
}

func risingSnapshots(bars []core.Bar) []feature.Snapshot {
	out := make([]feature.Snapshot, len(bars))
	for i, b := range bars {
		out[i] = feature.Snapshot{"close": b.Close}
	}
	return out
}

// testPipeline wires a short-warmup generator and a short-holding simulator
// around two rules: one that fires on every bar and one that never fires.
func testPipeline(t *testing.T) (*Optimizer, *rule.Set, []core.Bar, []feature.Snapshot) {
	t.Helper()

	rules := rule.NewSet()
	for _, r := range []rule.Rule{
		{
			Name: "always_long", Intent: rule.IntentBuy, Weight: 3, Enabled: true,
			Conditions: []rule.Condition{{Feature: "close", Operator: rule.OpGreater, Value: fval(0)}},
		},
		{
			Name: "never_fires", Intent: rule.IntentSell, Weight: 3, Enabled: true,
			Conditions: []rule.Condition{{Feature: "close", Operator: rule.OpLess, Value: fval(0)}},
		},
	} {
		if err := rules.Add(r); err != nil {
			t.Fatal(err)
		}
	}

	gen, err := signal.NewGenerator(signal.Config{WarmupBars: 1, MinScore: 2})
	if err != nil {
		t.Fatal(err)
	}
	sim, err := backtest.NewSimulator(backtest.Config{HoldingPeriod: 2, TransactionCost: 0})
	if err != nil {
		t.Fatal(err)
	}

	bars := risingBars(10)
	return New(gen, sim), rules, bars, risingSnapshots(bars)
}

func TestOptimizer_Importance(t *testing.T) {
	opt, rules, bars, features := testPipeline(t)

	report, err := opt.Run(bars, features, rules, backtest.MetricAvgReturn)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if report.Metric != backtest.MetricAvgReturn {
		t.Errorf("Metric = %q, want %q", report.Metric, backtest.MetricAvgReturn)
	}
	// Rising closes make every long trade a winner.
	if report.BaselineScore <= 0 {
		t.Fatalf("BaselineScore = %v, want positive", report.BaselineScore)
	}
	if len(report.Importance) != 2 {
		t.Fatalf("Importance has %d entries, want 2", len(report.Importance))
	}

	// Disabling the only firing rule kills every signal, so its importance
	// equals the full baseline.
	if got := report.Importance["always_long"]; got != report.BaselineScore {
		t.Errorf("Importance[always_long] = %v, want %v", got, report.BaselineScore)
	}
	// A rule that never fired cannot move the metric.
	if got := report.Importance["never_fires"]; got != 0 {
		t.Errorf("Importance[never_fires] = %v, want 0", got)
	}
}

func TestOptimizer_Ranked(t *testing.T) {
	report := Report{Importance: map[string]float64{
		"beta":  0.02,
		"alpha": 0.02,
		"gamma": 0.05,
		"delta": -0.01,
	}}

	want := []RuleScore{
		{Rule: "gamma", Importance: 0.05},
		{Rule: "alpha", Importance: 0.02},
		{Rule: "beta", Importance: 0.02},
		{Rule: "delta", Importance: -0.01},
	}
	if got := report.Ranked(); !reflect.DeepEqual(got, want) {
		t.Errorf("Ranked() = %v, want %v", got, want)
	}
}

func TestOptimizer_DoesNotMutateRuleSet(t *testing.T) {
	opt, rules, bars, features := testPipeline(t)
	before := rules.Rules()

	if _, err := opt.Run(bars, features, rules, backtest.MetricWinRate); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if !reflect.DeepEqual(before, rules.Rules()) {
		t.Error("Run must leave the caller's rule set untouched")
	}
}

func TestOptimizer_UnknownMetric(t *testing.T) {
	opt, rules, bars, features := testPipeline(t)

	_, err := opt.Run(bars, features, rules, "calmar")
	if !errors.Is(err, core.ErrUnknownMetric) {
		t.Errorf("expected ErrUnknownMetric, got %v", err)
	}
}

func TestOptimizer_SetWorkersFloor(t *testing.T) {
	opt, rules, bars, features := testPipeline(t)
	opt.SetWorkers(0) // clamped to 1

	if _, err := opt.Run(bars, features, rules, backtest.MetricAvgReturn); err != nil {
		t.Fatalf("Run with a single worker failed: %v", err)
	}
}
