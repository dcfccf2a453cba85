package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestTradeHistory_AppendAndRecent(t *testing.T) {
	h := NewTradeHistory(4)

	for i := 1; i <= 3; i++ {
		h.Append(Trade{TradeID: int64(i), ArrivalNS: int64(i * 100)})
	}

	if h.Len() != 3 {
		t.Fatalf("len = %d, want 3", h.Len())
	}

	recent := h.Recent(2)
	if len(recent) != 2 || recent[0].TradeID != 2 || recent[1].TradeID != 3 {
		t.Errorf("Recent(2) = %+v, want trades 2,3 oldest first", recent)
	}

	// Asking for more than held returns what exists.
	all := h.Recent(10)
	if len(all) != 3 || all[0].TradeID != 1 {
		t.Errorf("Recent(10) = %+v, want all 3 trades", all)
	}
}

func TestTradeHistory_EvictsOldestOnOverflow(t *testing.T) {
	h := NewTradeHistory(3)

	for i := 1; i <= 5; i++ {
		h.Append(Trade{TradeID: int64(i), ArrivalNS: int64(i * 100)})
	}

	if h.Len() != 3 {
		t.Fatalf("len = %d, want capacity 3", h.Len())
	}
	snap := h.Snapshot()
	if snap[0].TradeID != 3 || snap[2].TradeID != 5 {
		t.Errorf("snapshot = %+v, want trades 3,4,5", snap)
	}
}

func TestTradeHistory_ClampsOutOfOrderArrivals(t *testing.T) {
	h := NewTradeHistory(4)

	h.Append(Trade{TradeID: 1, ArrivalNS: 500})
	h.Append(Trade{TradeID: 2, ArrivalNS: 300}) // violates ordering

	if h.Reordered() != 1 {
		t.Errorf("reordered = %d, want 1", h.Reordered())
	}
	snap := h.Snapshot()
	if snap[1].ArrivalNS != 500 {
		t.Errorf("out-of-order arrival should be clamped to 500, got %d", snap[1].ArrivalNS)
	}

	// The windowing early-exit depends on this invariant.
	for i, tr := range snap[1:] {
		if tr.ArrivalNS < snap[i].ArrivalNS {
			t.Fatal("arrival times must be non-decreasing")
		}
	}
}

func TestTradeHistory_EmptyReads(t *testing.T) {
	h := NewTradeHistory(8)

	if h.Recent(5) != nil {
		t.Error("Recent on empty history should be nil")
	}
	if h.Snapshot() != nil {
		t.Error("Snapshot on empty history should be nil")
	}
}

func TestTradeHistory_SnapshotIsCopy(t *testing.T) {
	h := NewTradeHistory(2)
	h.Append(Trade{TradeID: 1, Price: decimal.NewFromInt(100)})

	snap := h.Snapshot()
	snap[0].Price = decimal.NewFromInt(999)

	if !h.Snapshot()[0].Price.Equal(decimal.NewFromInt(100)) {
		t.Error("mutating a snapshot must not touch the buffer")
	}
}
