package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"micro_go/internal/app"
	"micro_go/internal/event"
	"micro_go/internal/infra/binance"
	"micro_go/internal/service"

	_ "net/http/pprof" // For pprof profiling
)

const (
	inboxSize     = 1024
	shutdownGrace = 5 * time.Second
)

func main() {
	// 1. Pprof Server (for performance profiling)
	go func() {
		// Localhost only for security
		slog.Info("Pprof server started on localhost:6060")
		if err := http.ListenAndServe("localhost:6060", nil); err != nil {
			slog.Error("Pprof server failed", slog.Any("error", err))
		}
	}()

	// 2. System Bootstrapping
	bootstrap := app.NewBootstrap()
	if err := bootstrap.Initialize("configs/config.yaml"); err != nil {
		slog.Error("Bootstrapping failed", slog.Any("error", err))
		os.Exit(1)
	}
	cfg := bootstrap.Config

	// 3. Graceful Shutdown Context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Market state: one inbox per stream, one writer per store
	tradeInbox := make(chan *event.TradeEvent, inboxSize)
	quoteInbox := make(chan *event.TopOfBookEvent, inboxSize)

	market := service.NewMarketService(
		cfg.Feed.Symbol,
		cfg.History.Capacity,
		cfg.Metrics.VWAPWindow,
		time.Duration(cfg.Metrics.TrailingWindowSec)*time.Second,
		tradeInbox, quoteInbox,
	)
	market.Start(ctx)

	// 5. Stream workers. Constructor errors are the only fatal class and
	// surface here, before anything connects.
	tradeWorker, err := binance.NewTradeWorker(cfg.Feed.WSURL, cfg.Feed.Symbol, tradeInbox)
	if err != nil {
		slog.Error("Invalid trade subscription", slog.Any("error", err))
		os.Exit(1)
	}
	bookWorker, err := binance.NewBookTickerWorker(cfg.Feed.WSURL, cfg.Feed.Symbol, quoteInbox)
	if err != nil {
		slog.Error("Invalid bookTicker subscription", slog.Any("error", err))
		os.Exit(1)
	}

	if err := tradeWorker.Connect(ctx); err != nil {
		slog.Error("Failed to start trade worker", slog.Any("error", err))
		os.Exit(1)
	}
	defer tradeWorker.Disconnect()
	if err := bookWorker.Connect(ctx); err != nil {
		slog.Error("Failed to start bookTicker worker", slog.Any("error", err))
		os.Exit(1)
	}
	defer bookWorker.Disconnect()
	slog.InfoContext(ctx, "Stream workers started", slog.String("symbol", cfg.Feed.Symbol))

	// 6. Metric sampler for the downstream analysis tools
	if cfg.Recorder.Enabled {
		sampler := service.NewSampler(market, bootstrap.Storage,
			time.Duration(cfg.Recorder.IntervalMS)*time.Millisecond)
		sampler.Start(ctx)
		defer sampler.Stop()
		slog.InfoContext(ctx, "Sampler started", slog.Int("interval_ms", cfg.Recorder.IntervalMS))
	}

	slog.InfoContext(ctx, "Micro Go fully operational. Press Ctrl+C to exit.")

	// Wait for shutdown signal
	<-ctx.Done()

	slog.Info("Shutting down gracefully...")
	market.Stop(shutdownGrace)
}
