package feature

import (
	"math"
	"testing"
)

func TestSnapshot_Get(t *testing.T) {
	snap := Snapshot{"close": 105.5, "atr": math.NaN()}

	if v, ok := snap.Get("close"); !ok || v != 105.5 {
		t.Errorf("Get(close) = %v, %v; want 105.5, true", v, ok)
	}
	if _, ok := snap.Get("missing"); ok {
		t.Error("missing key must report absent")
	}
	if _, ok := snap.Get("atr"); ok {
		t.Error("NaN value must report absent")
	}
}

func TestBool(t *testing.T) {
	if Bool(true) != True || Bool(false) != False {
		t.Error("boolean encoding must be 1/0")
	}
	snap := Snapshot{"near_support": Bool(true)}
	if v, ok := snap.Get("near_support"); !ok || v != 1.0 {
		t.Errorf("Get(near_support) = %v, %v; want 1, true", v, ok)
	}
}

func TestTable_SetAligned(t *testing.T) {
	tab := NewTable(3)
	tab.Set("close", []float64{1, 2, 3})

	for i, want := range []float64{1, 2, 3} {
		if v, ok := tab.At(i).Get("close"); !ok || v != want {
			t.Errorf("At(%d) close = %v, %v; want %v, true", i, v, ok, want)
		}
	}
}

func TestTable_SetShortSeriesRightAligned(t *testing.T) {
	// A 2-value series in a 4-bar table covers the last two bars; the head
	// reads as absent.
	tab := NewTable(4)
	tab.Set("ema", []float64{10, 11})

	for i := 0; i < 2; i++ {
		if _, ok := tab.At(i).Get("ema"); ok {
			t.Errorf("At(%d) should be absent during warm-up", i)
		}
	}
	if v, ok := tab.At(2).Get("ema"); !ok || v != 10 {
		t.Errorf("At(2) ema = %v, %v; want 10, true", v, ok)
	}
	if v, ok := tab.At(3).Get("ema"); !ok || v != 11 {
		t.Errorf("At(3) ema = %v, %v; want 11, true", v, ok)
	}
}

func TestTable_SetLongSeriesTruncated(t *testing.T) {
	// A series longer than the table keeps its most recent values.
	tab := NewTable(2)
	tab.Set("close", []float64{1, 2, 3, 4})

	if v, _ := tab.At(0).Get("close"); v != 3 {
		t.Errorf("At(0) close = %v, want 3", v)
	}
	if v, _ := tab.At(1).Get("close"); v != 4 {
		t.Errorf("At(1) close = %v, want 4", v)
	}
}

func TestTable_SetBool(t *testing.T) {
	tab := NewTable(2)
	tab.SetBool("near_support", []bool{true, false})

	if v, _ := tab.At(0).Get("near_support"); v != True {
		t.Errorf("At(0) = %v, want 1", v)
	}
	if v, _ := tab.At(1).Get("near_support"); v != False {
		t.Errorf("At(1) = %v, want 0", v)
	}
}

func TestTable_AtOutOfRange(t *testing.T) {
	tab := NewTable(2)
	tab.Set("close", []float64{1, 2})

	if len(tab.At(-1)) != 0 || len(tab.At(2)) != 0 {
		t.Error("out-of-range indexes must yield empty snapshots")
	}
}

func TestTable_Snapshots(t *testing.T) {
	tab := NewTable(3)
	tab.Set("close", []float64{1, 2, 3})
	tab.Set("volume_ratio", []float64{0.5, 1.5})

	snaps := tab.Snapshots()
	if len(snaps) != 3 {
		t.Fatalf("got %d snapshots, want 3", len(snaps))
	}
	if _, ok := snaps[0].Get("volume_ratio"); ok {
		t.Error("warm-up bar should miss the short series")
	}
	if v, _ := snaps[2].Get("volume_ratio"); v != 1.5 {
		t.Errorf("snapshot 2 volume_ratio = %v, want 1.5", v)
	}
}
