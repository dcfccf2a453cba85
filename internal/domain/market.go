package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MarketSnapshot is the merged read-only view handed to external consumers
// (display and analysis tools). Nil metric pointers mean "no value": the
// metric is undefined for the current state, not zero.
type MarketSnapshot struct {
	Symbol string       `json:"symbol"`
	Book   BookSnapshot `json:"book"`

	Spread         *decimal.Decimal `json:"spread,omitempty"`
	MidPrice       *decimal.Decimal `json:"mid_price,omitempty"`
	Imbalance      *decimal.Decimal `json:"imbalance,omitempty"`
	VWAP           *decimal.Decimal `json:"vwap,omitempty"`
	TrailingVolume decimal.Decimal  `json:"trailing_volume"`

	TradeCount int       `json:"trade_count"`
	TakenAt    time.Time `json:"taken_at"`
}

// HasQuote reports whether both best levels are populated, i.e. whether
// the quote-driven metrics can be defined at all.
func (m *MarketSnapshot) HasQuote() bool {
	return m.Book.BestBid.IsPositive() && m.Book.BestAsk.IsPositive()
}
