package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"micro_go/internal/domain"
	"micro_go/internal/event"
)

type fakeStore struct {
	mu      sync.Mutex
	samples []domain.MetricSample
}

func (f *fakeStore) SaveSample(sample *domain.MetricSample) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.samples = append(f.samples, *sample)
	return nil
}

func (f *fakeStore) RecentSamples(symbol string, limit int) ([]domain.MetricSample, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.MetricSample(nil), f.samples...), nil
}

func (f *fakeStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.samples)
}

func TestSampler_PersistsSnapshots(t *testing.T) {
	trades := make(chan *event.TradeEvent, 1)
	quotes := make(chan *event.TopOfBookEvent, 1)
	svc := NewMarketService("BTCUSDT", 10, 10, time.Second, trades, quotes)

	store := &fakeStore{}
	sampler := NewSampler(svc, store, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sampler.Start(ctx)

	waitFor(t, func() bool { return store.count() >= 2 })
	sampler.Stop()

	samples, _ := store.RecentSamples("BTCUSDT", 10)
	got := samples[0]
	if got.Symbol != "BTCUSDT" {
		t.Errorf("symbol = %q", got.Symbol)
	}
	// Nothing ingested: metrics undefined, stored as empty strings.
	if got.Spread != "" || got.MidPrice != "" || got.VWAP != "" {
		t.Errorf("undefined metrics must persist as empty: %+v", got)
	}
	if got.TrailingVolume != "0" {
		t.Errorf("trailing volume = %q, want 0", got.TrailingVolume)
	}
}

func TestSampler_StopHaltsLoop(t *testing.T) {
	trades := make(chan *event.TradeEvent, 1)
	quotes := make(chan *event.TopOfBookEvent, 1)
	svc := NewMarketService("BTCUSDT", 10, 10, time.Second, trades, quotes)

	store := &fakeStore{}
	sampler := NewSampler(svc, store, 5*time.Millisecond)
	sampler.Start(context.Background())

	waitFor(t, func() bool { return store.count() >= 1 })
	sampler.Stop()

	before := store.count()
	time.Sleep(30 * time.Millisecond)
	if store.count() != before {
		t.Error("sampler kept writing after Stop")
	}
}
