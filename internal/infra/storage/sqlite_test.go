package storage

import (
	"os"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"micro_go/internal/domain"
)

func setupTestDB(t *testing.T) *Storage {
	dbName := "test.db"
	db, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := db.AutoMigrate(&domain.MetricSample{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	t.Cleanup(func() {
		os.Remove(dbName)
	})

	return &Storage{db: db}
}

func TestSaveAndRecentSamples(t *testing.T) {
	s := setupTestDB(t)

	base := time.Now().Add(-time.Minute)
	for i := 0; i < 3; i++ {
		sample := &domain.MetricSample{
			Symbol:         "BTCUSDT",
			BestBid:        "100.5",
			BestAsk:        "101.5",
			Spread:         "1",
			MidPrice:       "101",
			TrailingVolume: "3.5",
			TradeCount:     i + 1,
			SampledAt:      base.Add(time.Duration(i) * time.Second),
		}
		if err := s.SaveSample(sample); err != nil {
			t.Fatalf("SaveSample failed: %v", err)
		}
	}

	samples, err := s.RecentSamples("BTCUSDT", 2)
	if err != nil {
		t.Fatalf("RecentSamples failed: %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(samples))
	}
	// Newest first
	if samples[0].TradeCount != 3 {
		t.Errorf("expected newest sample first, got trade count %d", samples[0].TradeCount)
	}
}

func TestRecentSamples_FiltersSymbol(t *testing.T) {
	s := setupTestDB(t)

	s.SaveSample(&domain.MetricSample{Symbol: "BTCUSDT", SampledAt: time.Now()})
	s.SaveSample(&domain.MetricSample{Symbol: "ETHUSDT", SampledAt: time.Now()})

	samples, err := s.RecentSamples("ETHUSDT", 10)
	if err != nil {
		t.Fatalf("RecentSamples failed: %v", err)
	}
	if len(samples) != 1 || samples[0].Symbol != "ETHUSDT" {
		t.Errorf("expected only ETHUSDT samples, got %+v", samples)
	}
}

func TestUndefinedMetricsStoredEmpty(t *testing.T) {
	s := setupTestDB(t)

	s.SaveSample(&domain.MetricSample{Symbol: "BTCUSDT", Spread: "", VWAP: "", SampledAt: time.Now()})

	samples, _ := s.RecentSamples("BTCUSDT", 1)
	if len(samples) != 1 {
		t.Fatal("expected one sample")
	}
	if samples[0].Spread != "" || samples[0].VWAP != "" {
		t.Error("undefined metrics must round-trip as empty, not zero")
	}
}

func TestPruneBefore(t *testing.T) {
	s := setupTestDB(t)

	now := time.Now()
	s.SaveSample(&domain.MetricSample{Symbol: "BTCUSDT", SampledAt: now.Add(-2 * time.Hour)})
	s.SaveSample(&domain.MetricSample{Symbol: "BTCUSDT", SampledAt: now})

	if err := s.PruneBefore(now.Add(-time.Hour)); err != nil {
		t.Fatalf("PruneBefore failed: %v", err)
	}

	samples, _ := s.RecentSamples("BTCUSDT", 10)
	if len(samples) != 1 {
		t.Errorf("expected 1 sample after prune, got %d", len(samples))
	}
}
