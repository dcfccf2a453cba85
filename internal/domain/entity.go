package domain

import "time"

// MetricSample is one persisted row of derived metrics, written by the
// sampler for offline analysis tools. Decimal values are stored as strings
// to keep exact feed precision; empty string means the metric was
// undefined when sampled.
type MetricSample struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Symbol         string    `gorm:"index" json:"symbol"`
	BestBid        string    `json:"best_bid"`
	BestBidQty     string    `json:"best_bid_qty"`
	BestAsk        string    `json:"best_ask"`
	BestAskQty     string    `json:"best_ask_qty"`
	Spread         string    `json:"spread"`
	MidPrice       string    `json:"mid_price"`
	Imbalance      string    `json:"imbalance"`
	VWAP           string    `json:"vwap"`
	TrailingVolume string    `json:"trailing_volume"`
	TradeCount     int       `json:"trade_count"`
	SampledAt      time.Time `gorm:"index" json:"sampled_at"`
}
