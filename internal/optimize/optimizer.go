// Package optimize measures per-rule importance by ablation: rerunning the
// full scoring and simulation pipeline with each rule disabled in turn and
// reporting the change in a target metric.
package optimize

import (
	"runtime"
	"sort"
	"sync"

	"github.com/quantpulse/pulse/internal/backtest"
	"github.com/quantpulse/pulse/internal/core"
	"github.com/quantpulse/pulse/internal/feature"
	"github.com/quantpulse/pulse/internal/rule"
	"github.com/quantpulse/pulse/internal/signal"
	"go.uber.org/zap"
)

// RuleScore pairs a rule name with its importance: the drop in the target
// metric observed when the rule is disabled.
type RuleScore struct {
	Rule       string  `json:"rule"`
	Importance float64 `json:"importance"`
}

// Report holds the ablation results for one optimizer run.
type Report struct {
	Metric        string             `json:"metric"`
	BaselineScore float64            `json:"baseline_score"`
	Importance    map[string]float64 `json:"rule_importance"`
}

// Ranked returns the per-rule scores sorted by descending importance,
// ties broken by name for stable output.
func (r Report) Ranked() []RuleScore {
	scores := make([]RuleScore, 0, len(r.Importance))
	for name, imp := range r.Importance {
		scores = append(scores, RuleScore{Rule: name, Importance: imp})
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Importance != scores[j].Importance {
			return scores[i].Importance > scores[j].Importance
		}
		return scores[i].Rule < scores[j].Rule
	})
	return scores
}

// Optimizer wraps a generator and simulator and reruns them per ablation.
type Optimizer struct {
	gen     *signal.Generator
	sim     *backtest.Simulator
	workers int
	logger  *zap.Logger
}

// New creates an optimizer. Ablation runs are spread over one worker per
// CPU by default; each worker operates on its own deep copy of the rule
// set, so runs never share mutable state.
func New(gen *signal.Generator, sim *backtest.Simulator, logger ...*zap.Logger) *Optimizer {
	var l *zap.Logger
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	} else {
		l = zap.NewNop()
	}
	return &Optimizer{
		gen:     gen,
		sim:     sim,
		workers: runtime.GOMAXPROCS(0),
		logger:  l,
	}
}

// SetWorkers bounds the number of concurrent ablation runs. Values below 1
// are treated as 1.
func (o *Optimizer) SetWorkers(n int) {
	if n < 1 {
		n = 1
	}
	o.workers = n
}

// Run computes the baseline score with the full rule set, then disables
// each rule in turn on a private copy and records the score delta. The
// caller's rule set is never mutated: every pipeline run, baseline
// included, operates on a clone, so its enabled flags are bit-identical
// before and after the call.
func (o *Optimizer) Run(bars []core.Bar, features []feature.Snapshot, rules *rule.Set, metric string) (Report, error) {
	if _, err := (backtest.Result{}).Metric(metric); err != nil {
		return Report{}, core.WrapError(core.ErrUnknownMetric, err)
	}

	baseline := o.pipeline(bars, features, rules.Clone())
	baselineScore, _ := baseline.Metric(metric)

	names := rules.Names()
	deltas := make([]float64, len(names))

	var wg sync.WaitGroup
	sem := make(chan struct{}, o.workers)
	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			ablated := rules.Clone()
			ablated.SetEnabled(name, false)
			result := o.pipeline(bars, features, ablated)
			score, _ := result.Metric(metric)
			deltas[i] = baselineScore - score
		}(i, name)
	}
	wg.Wait()

	importance := make(map[string]float64, len(names))
	for i, name := range names {
		importance[name] = deltas[i]
	}

	o.logger.Info("rule ablation complete",
		zap.String("metric", metric),
		zap.Float64("baseline", baselineScore),
		zap.Int("rules", len(names)),
	)

	return Report{
		Metric:        metric,
		BaselineScore: baselineScore,
		Importance:    importance,
	}, nil
}

func (o *Optimizer) pipeline(bars []core.Bar, features []feature.Snapshot, rules *rule.Set) backtest.Result {
	signals := o.gen.Generate(bars, features, rules)
	return o.sim.Run(bars, features, signals)
}
