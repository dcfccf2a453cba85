package binance

import (
	"log/slog"
	"time"

	"micro_go/internal/domain"
	"micro_go/internal/event"
	"micro_go/internal/infra"
)

// BookTickerWorker subscribes to the bookTicker stream and feeds decoded
// top-of-book updates into the quote inbox.
type BookTickerWorker struct {
	*worker
	inbox chan<- *event.TopOfBookEvent
}

// NewBookTickerWorker creates the bookTicker-stream worker for one symbol.
func NewBookTickerWorker(baseURL, symbol string, inbox chan<- *event.TopOfBookEvent) (*BookTickerWorker, error) {
	b := &BookTickerWorker{inbox: inbox}
	w, err := newWorker(baseURL, symbol, StreamBookTicker, b.handleFrame)
	if err != nil {
		return nil, err
	}
	b.worker = w
	return b, nil
}

func (b *BookTickerWorker) handleFrame(payload []byte, arrivalNS int64) {
	pre := time.Now().UnixNano()
	update, err := decodeBookTicker(payload)
	post := time.Now().UnixNano()
	if err != nil {
		// Reject the update whole; the prior book state stays untouched.
		infra.GlobalMetrics.RecordFrameDropped()
		slog.Debug("dropping bookTicker frame", slog.String("stream", b.name), slog.Any("error", err))
		return
	}
	update.ArrivalNS = arrivalNS

	// bookTicker has no event time; the update id stands in, flagged as a
	// proxy so consumers never mistake it for wall-clock latency.
	lat := domain.Latency{
		TransportNS: domain.TransportLatencyNS(arrivalNS, update.UpdateID),
		ParseNS:     domain.ParseLatencyNS(pre, post),
		Proxy:       true,
	}
	infra.GlobalMetrics.RecordFrame(lat.TransportNS, lat.ParseNS, true)

	ev := event.AcquireTopOfBookEvent()
	ev.Update = update
	ev.Latency = lat
	select {
	case b.inbox <- ev:
	default:
		event.ReleaseTopOfBookEvent(ev)
		infra.GlobalMetrics.RecordEventDropped()
	}
}
