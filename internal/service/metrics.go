package service

import (
	"time"

	"github.com/shopspring/decimal"

	"micro_go/internal/domain"
)

// Microstructure metrics. All functions are pure over a consistent read of
// the book and trade history; nil means the metric is undefined for the
// given inputs, not zero.

var two = decimal.NewFromInt(2)

// Spread returns best_ask - best_bid, defined only for a crossed-free,
// two-sided quote.
func Spread(bestBid, bestAsk decimal.Decimal) *decimal.Decimal {
	if bestBid.IsPositive() && bestAsk.IsPositive() && bestAsk.GreaterThan(bestBid) {
		spread := bestAsk.Sub(bestBid)
		return &spread
	}
	return nil
}

// MidPrice returns (best_ask + best_bid) / 2 under the same definedness
// condition as Spread.
func MidPrice(bestBid, bestAsk decimal.Decimal) *decimal.Decimal {
	if bestBid.IsPositive() && bestAsk.IsPositive() && bestAsk.GreaterThan(bestBid) {
		mid := bestAsk.Add(bestBid).Div(two)
		return &mid
	}
	return nil
}

// Imbalance returns (bid_qty - ask_qty) / (bid_qty + ask_qty) at the best
// level, in [-1, 1]; undefined when the total quantity is zero.
func Imbalance(bidQty, askQty decimal.Decimal) *decimal.Decimal {
	total := bidQty.Add(askQty)
	if total.Sign() <= 0 {
		return nil
	}
	imb := bidQty.Sub(askQty).Div(total)
	return &imb
}

// VWAP returns the volume-weighted average price over the most recent
// window trades (or fewer when the history is shorter); undefined for an
// empty window or zero total volume.
func VWAP(trades []domain.Trade, window int) *decimal.Decimal {
	if len(trades) == 0 || window <= 0 {
		return nil
	}
	if window > len(trades) {
		window = len(trades)
	}

	totalValue := decimal.Zero
	totalVolume := decimal.Zero
	for _, t := range trades[len(trades)-window:] {
		totalValue = totalValue.Add(t.Price.Mul(t.Quantity))
		totalVolume = totalVolume.Add(t.Quantity)
	}
	if totalVolume.IsZero() {
		return nil
	}
	vwap := totalValue.Div(totalVolume)
	return &vwap
}

// TrailingVolume sums trade quantity within the window ending at nowNS,
// judged by exchange time. Trades arrive time-ordered (the TradeHistory
// boundary enforces it), so the backward scan stops at the first trade
// older than the cutoff. An empty window yields zero, not an error.
func TrailingVolume(trades []domain.Trade, window time.Duration, nowNS int64) decimal.Decimal {
	volume := decimal.Zero
	if window <= 0 {
		return volume
	}
	cutoffNS := nowNS - window.Nanoseconds()
	for i := len(trades) - 1; i >= 0; i-- {
		if trades[i].ExchangeTimeMS*1_000_000 < cutoffNS {
			break
		}
		volume = volume.Add(trades[i].Quantity)
	}
	return volume
}
