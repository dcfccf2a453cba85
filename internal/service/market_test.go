package service

import (
	"context"
	"testing"
	"time"

	"micro_go/internal/domain"
	"micro_go/internal/event"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestMarketService_IngestsBothStreams(t *testing.T) {
	trades := make(chan *event.TradeEvent, 16)
	quotes := make(chan *event.TopOfBookEvent, 16)

	svc := NewMarketService("BTCUSDT", 100, 100, time.Second, trades, quotes)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc.Start(ctx)
	defer svc.Stop(time.Second)

	te := event.AcquireTradeEvent()
	te.Trade = domain.Trade{Symbol: "BTCUSDT", Price: d("100.00"), Quantity: d("2"), ExchangeTimeMS: 1000, ArrivalNS: 1}
	trades <- te

	qe := event.AcquireTopOfBookEvent()
	qe.Update = domain.TopOfBookUpdate{
		Symbol:   "BTCUSDT",
		BidPrice: d("100.00"), BidQty: d("10.0"),
		AskPrice: d("100.10"), AskQty: d("5.0"),
	}
	quotes <- qe

	waitFor(t, func() bool {
		return svc.History().Len() == 1 && svc.Book().BestBid().IsPositive()
	})

	snap := svc.Snapshot(time.Now().UnixNano())
	if !snap.Book.BestBid.Equal(d("100.00")) || !snap.Book.BestAsk.Equal(d("100.10")) {
		t.Errorf("snapshot book = %+v", snap.Book)
	}
	if snap.Spread == nil || !snap.Spread.Equal(d("0.10")) {
		t.Errorf("spread = %v, want 0.10", snap.Spread)
	}
	if snap.MidPrice == nil || !snap.MidPrice.Equal(d("100.05")) {
		t.Errorf("mid = %v, want 100.05", snap.MidPrice)
	}
	if snap.VWAP == nil || !snap.VWAP.Equal(d("100.00")) {
		t.Errorf("vwap = %v, want 100.00", snap.VWAP)
	}
	if snap.TradeCount != 1 {
		t.Errorf("trade count = %d, want 1", snap.TradeCount)
	}
}

func TestMarketService_SnapshotUndefinedWhenEmpty(t *testing.T) {
	trades := make(chan *event.TradeEvent)
	quotes := make(chan *event.TopOfBookEvent)

	svc := NewMarketService("BTCUSDT", 100, 100, time.Second, trades, quotes)
	snap := svc.Snapshot(time.Now().UnixNano())

	if snap.Spread != nil || snap.MidPrice != nil || snap.Imbalance != nil || snap.VWAP != nil {
		t.Errorf("metrics over empty state must be undefined: %+v", snap)
	}
	if !snap.TrailingVolume.IsZero() {
		t.Error("trailing volume over empty state must be zero")
	}
	if snap.HasQuote() {
		t.Error("empty book must not report a quote")
	}
}

func TestMarketService_StopReturnsWithinGrace(t *testing.T) {
	trades := make(chan *event.TradeEvent)
	quotes := make(chan *event.TopOfBookEvent)

	svc := NewMarketService("BTCUSDT", 10, 10, time.Second, trades, quotes)
	svc.Start(context.Background())

	done := make(chan struct{})
	go func() {
		svc.Stop(time.Second)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return within the grace period")
	}
}
