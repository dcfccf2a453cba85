package domain

import "github.com/shopspring/decimal"

// Side identifies an order book side.
type Side int

const (
	SideBid Side = iota + 1
	SideAsk
)

func (s Side) String() string {
	switch s {
	case SideBid:
		return "bid"
	case SideAsk:
		return "ask"
	default:
		return "unknown"
	}
}

// PriceLevel is one price/quantity pair on a book side.
type PriceLevel struct {
	Price    decimal.Decimal `json:"price"`
	Quantity decimal.Decimal `json:"quantity"`
}

// TopOfBookUpdate is an atomic best-level replacement event. The feed
// reports the complete current best level, not a delta: applying an update
// discards every existing level on both sides.
type TopOfBookUpdate struct {
	Symbol    string          `json:"symbol"`
	BidPrice  decimal.Decimal `json:"bid_price"`
	BidQty    decimal.Decimal `json:"bid_qty"`
	AskPrice  decimal.Decimal `json:"ask_price"`
	AskQty    decimal.Decimal `json:"ask_qty"`
	UpdateID  int64           `json:"update_id"`
	ArrivalNS int64           `json:"arrival_ns"`
}

// BookSnapshot is a consistent point-in-time read of the book's best
// levels. Zero prices mean the side is empty.
type BookSnapshot struct {
	Symbol     string          `json:"symbol"`
	BestBid    decimal.Decimal `json:"best_bid"`
	BestBidQty decimal.Decimal `json:"best_bid_qty"`
	BestAsk    decimal.Decimal `json:"best_ask"`
	BestAskQty decimal.Decimal `json:"best_ask_qty"`
}
