package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"micro_go/internal/domain"
)

// Sampler periodically persists a MarketSnapshot row so the external
// analysis tools can read the metric series later. Failures are logged and
// skipped; sampling is derived output and never blocks ingestion.
type Sampler struct {
	market   *MarketService
	store    domain.SampleStore
	interval time.Duration
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewSampler creates a sampler writing to store every interval.
func NewSampler(market *MarketService, store domain.SampleStore, interval time.Duration) *Sampler {
	return &Sampler{
		market:   market,
		store:    store,
		interval: interval,
	}
}

// Start launches the sampling loop.
func (s *Sampler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go s.loop(ctx)
}

func (s *Sampler) loop(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			snap := s.market.Snapshot(time.Now().UnixNano())
			if err := s.store.SaveSample(toSample(snap)); err != nil {
				slog.Error("failed to persist metric sample", slog.Any("error", err))
			}
		}
	}
}

// Stop cancels the loop and waits for it to finish the in-flight write.
func (s *Sampler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

func toSample(snap domain.MarketSnapshot) *domain.MetricSample {
	return &domain.MetricSample{
		Symbol:         snap.Symbol,
		BestBid:        snap.Book.BestBid.String(),
		BestBidQty:     snap.Book.BestBidQty.String(),
		BestAsk:        snap.Book.BestAsk.String(),
		BestAskQty:     snap.Book.BestAskQty.String(),
		Spread:         decimalOrEmpty(snap.Spread),
		MidPrice:       decimalOrEmpty(snap.MidPrice),
		Imbalance:      decimalOrEmpty(snap.Imbalance),
		VWAP:           decimalOrEmpty(snap.VWAP),
		TrailingVolume: snap.TrailingVolume.String(),
		TradeCount:     snap.TradeCount,
		SampledAt:      snap.TakenAt,
	}
}

// decimalOrEmpty keeps "undefined" distinguishable from zero in storage.
func decimalOrEmpty(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}
