package event

import (
	"sync"

	"micro_go/internal/domain"
)

// Pools for high-frequency event allocation on the trade hotpath.
//
// Usage:
//
//	ev := AcquireTradeEvent()
//	ev.Trade = t
//	// ... send, consume ...
//	ReleaseTradeEvent(ev)  // Return to pool after processing
var tradePool = sync.Pool{
	New: func() interface{} {
		return &TradeEvent{}
	},
}

// AcquireTradeEvent gets a TradeEvent from the pool.
// The returned event has zero values and must be initialized.
func AcquireTradeEvent() *TradeEvent {
	return tradePool.Get().(*TradeEvent)
}

// ReleaseTradeEvent returns a TradeEvent to the pool.
// The event is reset to zero values before being pooled.
func ReleaseTradeEvent(ev *TradeEvent) {
	if ev == nil {
		return
	}
	ev.Trade = domain.Trade{}
	ev.Latency = domain.Latency{}
	tradePool.Put(ev)
}

var topOfBookPool = sync.Pool{
	New: func() interface{} {
		return &TopOfBookEvent{}
	},
}

// AcquireTopOfBookEvent gets a TopOfBookEvent from the pool.
func AcquireTopOfBookEvent() *TopOfBookEvent {
	return topOfBookPool.Get().(*TopOfBookEvent)
}

// ReleaseTopOfBookEvent returns a TopOfBookEvent to the pool.
func ReleaseTopOfBookEvent(ev *TopOfBookEvent) {
	if ev == nil {
		return
	}
	ev.Update = domain.TopOfBookUpdate{}
	ev.Latency = domain.Latency{}
	topOfBookPool.Put(ev)
}
