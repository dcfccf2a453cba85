// Package service maintains the live market state for one symbol and
// derives its microstructure metrics.
package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"micro_go/internal/book"
	"micro_go/internal/domain"
	"micro_go/internal/event"
)

// MarketService owns the order book and trade history and runs one
// ingestion loop per stream: each store has exactly one writer. The two
// streams carry no ordering guarantee relative to each other; they only
// merge here, at read time, through Snapshot.
type MarketService struct {
	symbol  string
	book    *book.OrderBook
	history *domain.TradeHistory

	trades <-chan *event.TradeEvent
	quotes <-chan *event.TopOfBookEvent

	vwapWindow     int
	trailingWindow time.Duration

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewMarketService wires the stores to their inbox channels.
func NewMarketService(symbol string, historyCap, vwapWindow int, trailingWindow time.Duration,
	trades <-chan *event.TradeEvent, quotes <-chan *event.TopOfBookEvent) *MarketService {
	return &MarketService{
		symbol:         symbol,
		book:           book.New(symbol),
		history:        domain.NewTradeHistory(historyCap),
		trades:         trades,
		quotes:         quotes,
		vwapWindow:     vwapWindow,
		trailingWindow: trailingWindow,
	}
}

// Book exposes the order book for read-only accessor queries.
func (s *MarketService) Book() *book.OrderBook {
	return s.book
}

// History exposes the trade history for read-only snapshot queries.
func (s *MarketService) History() *domain.TradeHistory {
	return s.history
}

// Start launches the two ingestion loops.
func (s *MarketService) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(2)
	go s.consumeTrades(ctx)
	go s.consumeQuotes(ctx)
}

func (s *MarketService) consumeTrades(ctx context.Context) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-s.trades:
			s.history.Append(ev.Trade)
			event.ReleaseTradeEvent(ev)
		}
	}
}

func (s *MarketService) consumeQuotes(ctx context.Context) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-s.quotes:
			s.book.ApplyTopOfBook(ev.Update)
			event.ReleaseTopOfBookEvent(ev)
		}
	}
}

// Stop cancels the loops and waits up to grace for them to come back. On
// timeout the loops are logged as unresponsive and abandoned.
func (s *MarketService) Stop(grace time.Duration) {
	if s.cancel != nil {
		s.cancel()
	}
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(grace):
		slog.Warn("market service loops unresponsive, abandoning", slog.String("symbol", s.symbol))
	}
}

// Snapshot returns the merged read-only view: best levels plus the derived
// metrics, computed over consistent copies of both stores.
func (s *MarketService) Snapshot(nowNS int64) domain.MarketSnapshot {
	bookSnap := s.book.Snapshot()
	trades := s.history.Snapshot()

	return domain.MarketSnapshot{
		Symbol:         s.symbol,
		Book:           bookSnap,
		Spread:         Spread(bookSnap.BestBid, bookSnap.BestAsk),
		MidPrice:       MidPrice(bookSnap.BestBid, bookSnap.BestAsk),
		Imbalance:      Imbalance(bookSnap.BestBidQty, bookSnap.BestAskQty),
		VWAP:           VWAP(trades, s.vwapWindow),
		TrailingVolume: TrailingVolume(trades, s.trailingWindow, nowNS),
		TradeCount:     len(trades),
		TakenAt:        time.Now(),
	}
}
