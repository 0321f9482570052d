// Package analysis provides descriptive statistics over generated signals:
// direction counts, strength distribution, and hour-of-day spread.
package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/quantpulse/pulse/internal/core"
)

// Strength bucket boundaries.
const (
	weakMax     = 40.0
	moderateMax = 70.0
)

// Summary describes a batch of generated signals.
type Summary struct {
	TotalSignals  int         `json:"total_signals"`
	BuySignals    int         `json:"buy_signals"`
	SellSignals   int         `json:"sell_signals"`
	Weak          int         `json:"weak"`     // strength < 40
	Moderate      int         `json:"moderate"` // 40 <= strength < 70
	Strong        int         `json:"strong"`   // strength >= 70
	Hourly        map[int]int `json:"hourly_distribution"`
	AvgStrength   float64     `json:"avg_strength"`
	AvgConfidence float64     `json:"avg_confidence"`
}

// Summarize reduces a signal list into a Summary. An empty list yields a
// zero summary.
func Summarize(signals []core.Signal) Summary {
	s := Summary{Hourly: make(map[int]int)}
	if len(signals) == 0 {
		return s
	}

	var strengthSum, confidenceSum float64
	for _, sig := range signals {
		s.TotalSignals++
		if sig.Direction == core.DirectionBuy {
			s.BuySignals++
		} else {
			s.SellSignals++
		}

		switch {
		case sig.Strength < weakMax:
			s.Weak++
		case sig.Strength < moderateMax:
			s.Moderate++
		default:
			s.Strong++
		}

		s.Hourly[sig.Timestamp.Hour()]++
		strengthSum += sig.Strength
		confidenceSum += sig.Confidence
	}

	s.AvgStrength = strengthSum / float64(s.TotalSignals)
	s.AvgConfidence = confidenceSum / float64(s.TotalSignals)
	return s
}

// String renders a human-readable summary.
func (s Summary) String() string {
	if s.TotalSignals == 0 {
		return "no signals generated"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "signals: %d (buy %d / sell %d)\n", s.TotalSignals, s.BuySignals, s.SellSignals)
	fmt.Fprintf(&b, "strength: avg %.1f, weak %d / moderate %d / strong %d\n",
		s.AvgStrength, s.Weak, s.Moderate, s.Strong)
	fmt.Fprintf(&b, "confidence: avg %.2f\n", s.AvgConfidence)

	hours := make([]int, 0, len(s.Hourly))
	for h := range s.Hourly {
		hours = append(hours, h)
	}
	sort.Ints(hours)
	for _, h := range hours {
		fmt.Fprintf(&b, "  %02d:00 %d\n", h, s.Hourly[h])
	}
	return strings.TrimRight(b.String(), "\n")
}
