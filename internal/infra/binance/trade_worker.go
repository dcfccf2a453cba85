package binance

import (
	"log/slog"
	"time"

	"micro_go/internal/domain"
	"micro_go/internal/event"
	"micro_go/internal/infra"
)

// TradeWorker subscribes to the trade stream and feeds decoded ticks into
// the trade inbox.
type TradeWorker struct {
	*worker
	inbox chan<- *event.TradeEvent
}

// NewTradeWorker creates the trade-stream worker for one symbol.
func NewTradeWorker(baseURL, symbol string, inbox chan<- *event.TradeEvent) (*TradeWorker, error) {
	t := &TradeWorker{inbox: inbox}
	w, err := newWorker(baseURL, symbol, StreamTrade, t.handleFrame)
	if err != nil {
		return nil, err
	}
	t.worker = w
	return t, nil
}

func (t *TradeWorker) handleFrame(payload []byte, arrivalNS int64) {
	pre := time.Now().UnixNano()
	trade, err := decodeTrade(payload)
	post := time.Now().UnixNano()
	if err != nil {
		// Drop the single frame; the stream and prior state continue.
		infra.GlobalMetrics.RecordFrameDropped()
		slog.Debug("dropping trade frame", slog.String("stream", t.name), slog.Any("error", err))
		return
	}
	trade.ArrivalNS = arrivalNS

	lat := domain.Latency{
		TransportNS: domain.TransportLatencyNS(arrivalNS, trade.ExchangeTimeMS),
		ParseNS:     domain.ParseLatencyNS(pre, post),
	}
	infra.GlobalMetrics.RecordFrame(lat.TransportNS, lat.ParseNS, false)

	ev := event.AcquireTradeEvent()
	ev.Trade = trade
	ev.Latency = lat
	select {
	case t.inbox <- ev:
	default:
		event.ReleaseTradeEvent(ev)
		infra.GlobalMetrics.RecordEventDropped()
	}
}
