package domain

import (
	"sync"

	"github.com/shopspring/decimal"
)

// Trade is a single executed trade from the feed.
type Trade struct {
	Symbol         string          `json:"symbol"`
	Price          decimal.Decimal `json:"price"`
	Quantity       decimal.Decimal `json:"quantity"`
	ExchangeTimeMS int64           `json:"exchange_time_ms"` // feed trade time, ms
	TradeID        int64           `json:"trade_id"`
	ArrivalNS      int64           `json:"arrival_ns"` // local receive stamp, ns
}

// TradeHistory is a fixed-capacity ring buffer of recent trades.
// It has exactly one writer (the trade ingestion loop); readers get copies.
//
// Appends keep ArrivalNS monotonically non-decreasing: the windowed metrics
// scan backwards and stop at the first trade older than their cutoff, which
// is only correct when the buffer is time-ordered. An out-of-order arrival
// is clamped to the last stamp and counted instead of trusted.
type TradeHistory struct {
	mu            sync.RWMutex
	buf           []Trade
	head          int // index of oldest entry
	size          int
	lastArrivalNS int64
	reordered     uint64
}

// NewTradeHistory creates a ring buffer holding up to capacity trades.
func NewTradeHistory(capacity int) *TradeHistory {
	if capacity <= 0 {
		capacity = 1
	}
	return &TradeHistory{buf: make([]Trade, capacity)}
}

// Append adds a trade, evicting the oldest entry when full.
func (h *TradeHistory) Append(t Trade) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if t.ArrivalNS < h.lastArrivalNS {
		t.ArrivalNS = h.lastArrivalNS
		h.reordered++
	} else {
		h.lastArrivalNS = t.ArrivalNS
	}

	if h.size < len(h.buf) {
		h.buf[(h.head+h.size)%len(h.buf)] = t
		h.size++
		return
	}
	// Full: overwrite the oldest slot.
	h.buf[h.head] = t
	h.head = (h.head + 1) % len(h.buf)
}

// Len returns the number of trades currently held.
func (h *TradeHistory) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.size
}

// Cap returns the fixed capacity.
func (h *TradeHistory) Cap() int {
	return len(h.buf)
}

// Recent returns a copy of the most recent n trades, oldest first.
// It returns fewer when the history is shorter.
func (h *TradeHistory) Recent(n int) []Trade {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if n > h.size {
		n = h.size
	}
	if n <= 0 {
		return nil
	}
	out := make([]Trade, n)
	start := h.size - n
	for i := 0; i < n; i++ {
		out[i] = h.buf[(h.head+start+i)%len(h.buf)]
	}
	return out
}

// Snapshot returns a copy of the full history, oldest first.
func (h *TradeHistory) Snapshot() []Trade {
	return h.Recent(h.Cap())
}

// Reordered returns how many appends violated arrival-time ordering.
func (h *TradeHistory) Reordered() uint64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.reordered
}
