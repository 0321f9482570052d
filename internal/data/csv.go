// Package data loads OHLCV bar sequences from CSV files for the CLI.
package data

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/quantpulse/pulse/internal/core"
)

// Expected header: timestamp,open,high,low,close,volume. Timestamps are
// RFC 3339 or "2006-01-02 15:04:05" or plain dates.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ReadBars loads a chronological bar sequence from a CSV file. The bars
// must be strictly time-ordered; violations surface as a data error since
// the engine trusts the ordering.
func ReadBars(path string) ([]core.Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, core.WrapError(core.ErrNoData, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, core.WrapError(core.ErrNoData, err)
	}
	if len(records) < 2 {
		return nil, core.ErrNoData
	}

	cols, err := columnIndex(records[0])
	if err != nil {
		return nil, err
	}

	bars := make([]core.Bar, 0, len(records)-1)
	for i, rec := range records[1:] {
		bar, err := parseBar(rec, cols)
		if err != nil {
			return nil, core.WrapError(core.ErrNoData, fmt.Errorf("row %d: %w", i+2, err))
		}
		if len(bars) > 0 && !bar.Timestamp.After(bars[len(bars)-1].Timestamp) {
			return nil, core.WrapError(core.ErrUnorderedBars,
				fmt.Errorf("row %d: %s not after %s", i+2, bar.Timestamp, bars[len(bars)-1].Timestamp))
		}
		bars = append(bars, bar)
	}
	return bars, nil
}

func columnIndex(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"timestamp", "open", "high", "low", "close", "volume"} {
		if _, ok := cols[required]; !ok {
			return nil, core.WrapError(core.ErrNoData, fmt.Errorf("missing column %q", required))
		}
	}
	return cols, nil
}

func parseBar(rec []string, cols map[string]int) (core.Bar, error) {
	ts, err := parseTime(rec[cols["timestamp"]])
	if err != nil {
		return core.Bar{}, err
	}

	fields := make(map[string]float64, 5)
	for _, name := range []string{"open", "high", "low", "close", "volume"} {
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[cols[name]]), 64)
		if err != nil {
			return core.Bar{}, fmt.Errorf("parsing %s: %w", name, err)
		}
		fields[name] = v
	}

	bar := core.Bar{
		Timestamp: ts,
		Open:      fields["open"],
		High:      fields["high"],
		Low:       fields["low"],
		Close:     fields["close"],
		Volume:    fields["volume"],
	}
	if !bar.IsValid() {
		return core.Bar{}, fmt.Errorf("bar missing required OHLCV fields")
	}
	return bar, nil
}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	// Unix seconds as a fallback
	if sec, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(sec, 0).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
