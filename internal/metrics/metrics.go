// Package metrics exposes Prometheus counters and histograms for the
// engine. The engine packages themselves stay pure; callers record
// observations around the public operations.
package metrics

import (
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/common/expfmt"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	signalsGenerated *prometheus.CounterVec
	generationRuns   prometheus.Counter
	generationTime   prometheus.Histogram
	backtestsTotal   prometheus.Counter
	backtestTime     prometheus.Histogram
	tradesSimulated  prometheus.Counter
	ablationRuns     prometheus.Counter
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		signalsGenerated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pulse_signals_generated_total",
				Help: "Total number of signals generated",
			},
			[]string{"direction"},
		),
		generationRuns: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "pulse_generation_runs_total",
				Help: "Total number of signal generation runs",
			},
		),
		generationTime: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "pulse_generation_duration_seconds",
				Help:    "Signal generation duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		backtestsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "pulse_backtests_total",
				Help: "Total number of backtest runs",
			},
		),
		backtestTime: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "pulse_backtest_duration_seconds",
				Help:    "Backtest duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		tradesSimulated: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "pulse_trades_simulated_total",
				Help: "Total number of simulated trades",
			},
		),
		ablationRuns: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "pulse_ablation_runs_total",
				Help: "Total number of optimizer ablation runs",
			},
		),
	}

	reg.MustRegister(
		r.signalsGenerated,
		r.generationRuns,
		r.generationTime,
		r.backtestsTotal,
		r.backtestTime,
		r.tradesSimulated,
		r.ablationRuns,
	)

	return r
}

// RecordGeneration records a completed signal generation run.
func (r *Registry) RecordGeneration(duration time.Duration, buySignals, sellSignals int) {
	r.generationRuns.Inc()
	r.generationTime.Observe(duration.Seconds())
	r.signalsGenerated.WithLabelValues("buy").Add(float64(buySignals))
	r.signalsGenerated.WithLabelValues("sell").Add(float64(sellSignals))
}

// RecordBacktest records a completed backtest run.
func (r *Registry) RecordBacktest(duration time.Duration, trades int) {
	r.backtestsTotal.Inc()
	r.backtestTime.Observe(duration.Seconds())
	r.tradesSimulated.Add(float64(trades))
}

// RecordAblations records optimizer ablation runs.
func (r *Registry) RecordAblations(runs int) {
	r.ablationRuns.Add(float64(runs))
}

// WriteText dumps every registered metric to w in the Prometheus text
// exposition format, so batch runs can hand their observations to a
// node-exporter textfile collector or a log shipper.
func (r *Registry) WriteText(w io.Writer) error {
	families, err := r.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
