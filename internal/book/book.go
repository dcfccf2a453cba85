// Package book holds the live top-of-book order book state for one symbol.
package book

import (
	"sync"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/shopspring/decimal"

	"micro_go/internal/domain"
)

// decimalComparator orders treemap keys by numeric price, so equal prices
// with different exponents ("100.5" vs "100.50") collapse to one level.
func decimalComparator(a, b interface{}) int {
	return a.(decimal.Decimal).Cmp(b.(decimal.Decimal))
}

// OrderBook stores bid/ask price levels and answers best-bid/best-ask
// queries. Sides are ordered maps keyed by price, so insert, remove and
// extremum lookup all cost O(log n); invalidating the current best level
// is no more expensive than any other mutation.
//
// It has exactly one writer (the quote ingestion loop). Readers must go
// through Snapshot or the accessor methods, which copy under RLock.
type OrderBook struct {
	mu     sync.RWMutex
	symbol string
	bids   *treemap.Map // decimal.Decimal -> decimal.Decimal
	asks   *treemap.Map
}

// New creates an empty order book for the given symbol.
func New(symbol string) *OrderBook {
	return &OrderBook{
		symbol: symbol,
		bids:   treemap.NewWith(decimalComparator),
		asks:   treemap.NewWith(decimalComparator),
	}
}

// Symbol returns the symbol this book tracks.
func (b *OrderBook) Symbol() string {
	return b.symbol
}

func (b *OrderBook) side(s domain.Side) *treemap.Map {
	if s == domain.SideBid {
		return b.bids
	}
	return b.asks
}

// Upsert inserts or overwrites the quantity at price on the given side.
// A quantity <= 0 removes the level; removing an absent level is a no-op.
func (b *OrderBook) Upsert(s domain.Side, price, quantity decimal.Decimal) {
	b.mu.Lock()
	defer b.mu.Unlock()

	m := b.side(s)
	if quantity.Sign() <= 0 {
		m.Remove(price)
		return
	}
	m.Put(price, quantity)
}

// ApplyTopOfBook atomically discards all existing levels on both sides and
// installs the single best bid and ask from the update. A side whose
// incoming quantity is <= 0 becomes empty.
func (b *OrderBook) ApplyTopOfBook(u domain.TopOfBookUpdate) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.bids.Clear()
	b.asks.Clear()
	if u.BidQty.Sign() > 0 {
		b.bids.Put(u.BidPrice, u.BidQty)
	}
	if u.AskQty.Sign() > 0 {
		b.asks.Put(u.AskPrice, u.AskQty)
	}
}

// BestBid returns the highest bid price, or zero if the side is empty.
func (b *OrderBook) BestBid() decimal.Decimal {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if k, _ := b.bids.Max(); k != nil {
		return k.(decimal.Decimal)
	}
	return decimal.Zero
}

// BestAsk returns the lowest ask price, or zero if the side is empty.
func (b *OrderBook) BestAsk() decimal.Decimal {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if k, _ := b.asks.Min(); k != nil {
		return k.(decimal.Decimal)
	}
	return decimal.Zero
}

// QuantityAt returns the stored quantity at price, or zero if absent.
func (b *OrderBook) QuantityAt(s domain.Side, price decimal.Decimal) decimal.Decimal {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if v, ok := b.side(s).Get(price); ok {
		return v.(decimal.Decimal)
	}
	return decimal.Zero
}

// Levels returns a copy of one side, best price first.
func (b *OrderBook) Levels(s domain.Side) []domain.PriceLevel {
	b.mu.RLock()
	defer b.mu.RUnlock()

	m := b.side(s)
	out := make([]domain.PriceLevel, 0, m.Size())
	m.Each(func(k, v interface{}) {
		out = append(out, domain.PriceLevel{
			Price:    k.(decimal.Decimal),
			Quantity: v.(decimal.Decimal),
		})
	})
	if s == domain.SideBid {
		// Ascending map order; bids read best-first.
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

// Snapshot returns a consistent copy of both best levels.
func (b *OrderBook) Snapshot() domain.BookSnapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	snap := domain.BookSnapshot{Symbol: b.symbol}
	if k, v := b.bids.Max(); k != nil {
		snap.BestBid = k.(decimal.Decimal)
		snap.BestBidQty = v.(decimal.Decimal)
	}
	if k, v := b.asks.Min(); k != nil {
		snap.BestAsk = k.(decimal.Decimal)
		snap.BestAskQty = v.(decimal.Decimal)
	}
	return snap
}
