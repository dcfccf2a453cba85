// Package event defines the typed messages carried from stream workers to
// the market service inbox channels.
package event

import "micro_go/internal/domain"

// TradeEvent is one decoded trade tick plus its latency pair.
type TradeEvent struct {
	Trade   domain.Trade
	Latency domain.Latency
}

// TopOfBookEvent is one decoded best-bid/ask update plus its latency pair.
// The latency is always a proxy: the bookTicker stream carries no event
// time, only the update id.
type TopOfBookEvent struct {
	Update  domain.TopOfBookUpdate
	Latency domain.Latency
}
