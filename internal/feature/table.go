package feature

import "math"

// Table holds aligned per-bar feature series and produces Snapshots.
// Series shorter than the bar count are NaN-padded at the head so an
// indicator that needs N bars of warm-up reads as absent until it
// stabilizes.
type Table struct {
	length int
	series map[string][]float64
}

// NewTable creates an empty table for the given number of bars.
func NewTable(length int) *Table {
	return &Table{
		length: length,
		series: make(map[string][]float64),
	}
}

// Len returns the number of bars the table covers.
func (t *Table) Len() int {
	return t.length
}

// Set stores a series under name. Series longer than the table are
// truncated, shorter ones are right-aligned with a NaN head.
func (t *Table) Set(name string, values []float64) {
	aligned := make([]float64, t.length)
	offset := t.length - len(values)
	if offset < 0 {
		values = values[-offset:]
		offset = 0
	}
	for i := 0; i < offset; i++ {
		aligned[i] = math.NaN()
	}
	copy(aligned[offset:], values)
	t.series[name] = aligned
}

// SetBool stores a boolean series using the canonical 1/0 encoding.
func (t *Table) SetBool(name string, values []bool) {
	encoded := make([]float64, len(values))
	for i, b := range values {
		encoded[i] = Bool(b)
	}
	t.Set(name, encoded)
}

// Names returns the feature names present in the table.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.series))
	for name := range t.series {
		names = append(names, name)
	}
	return names
}

// At builds the snapshot for bar index i. Out-of-range indexes yield an
// empty snapshot.
func (t *Table) At(i int) Snapshot {
	snap := make(Snapshot, len(t.series))
	if i < 0 || i >= t.length {
		return snap
	}
	for name, values := range t.series {
		snap[name] = values[i]
	}
	return snap
}

// Snapshots materializes one snapshot per bar.
func (t *Table) Snapshots() []Snapshot {
	out := make([]Snapshot, t.length)
	for i := range out {
		out[i] = t.At(i)
	}
	return out
}
