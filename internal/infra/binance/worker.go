// Package binance maintains Binance market-data stream subscriptions. Each
// worker owns one (symbol, stream kind) endpoint, decodes its frames and
// stamps them with nanosecond timestamps, reconnecting with exponential
// backoff forever until externally cancelled.
package binance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"micro_go/internal/domain"
	"micro_go/internal/infra"
)

const (
	// DefaultWSURL is the public market-data endpoint base.
	DefaultWSURL = "wss://data-stream.binance.vision/ws"

	handshakeTimeout = 10 * time.Second
	readTimeout      = 60 * time.Second
	shutdownGrace    = 5 * time.Second
)

// frameHandler receives one raw frame and its arrival stamp. It must not
// retain the payload after returning.
type frameHandler func(payload []byte, arrivalNS int64)

// worker runs the connect/read/reconnect state machine shared by the trade
// and bookTicker subscriptions.
type worker struct {
	url    string
	name   string // "<symbol>@<stream>", for logs
	handle frameHandler

	conn   *websocket.Conn
	mu     sync.RWMutex
	state  atomic.Int32
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// newWorker validates the subscription target and builds the endpoint.
// Validation failures are the one fatal, non-retryable error class and are
// returned here, before any connection is attempted.
func newWorker(baseURL, symbol, stream string, handle frameHandler) (*worker, error) {
	if symbol == "" {
		return nil, &domain.ConfigError{Field: "symbol", Err: errors.New("empty symbol")}
	}
	if stream != StreamTrade && stream != StreamBookTicker {
		return nil, &domain.ConfigError{Field: "stream", Err: fmt.Errorf("unsupported stream kind %q", stream)}
	}
	if baseURL == "" {
		baseURL = DefaultWSURL
	}
	name := strings.ToLower(symbol) + "@" + stream
	return &worker{
		url:    strings.TrimRight(baseURL, "/") + "/" + name,
		name:   name,
		handle: handle,
	}, nil
}

// Connect starts the connection loop. It returns immediately; the stream
// never completes on its own, only cancellation stops it.
func (w *worker) Connect(ctx context.Context) error {
	ctx, w.cancel = context.WithCancel(ctx)
	w.wg.Add(1)
	go w.connectionLoop(ctx)
	return nil
}

func (w *worker) connectionLoop(ctx context.Context) {
	defer w.wg.Done()
	backoff := infra.NewBackoff()
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		connected, err := w.runSession(ctx)
		if ctx.Err() != nil {
			return
		}
		if connected {
			// Reaching Connected resets the retry schedule, even when
			// the session later failed.
			backoff = backoff.Reset()
		}

		var delay time.Duration
		delay, backoff = backoff.Next()
		infra.GlobalMetrics.RecordReconnect()
		slog.Warn("stream disconnected, retrying",
			slog.String("stream", w.name),
			slog.String("op", failureOp(err)),
			slog.Any("error", err),
			slog.Duration("retry_in", delay))

		// Backoff sleep is a cancellable suspension point.
		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
	}
}

// runSession dials once and reads until failure. It reports whether the
// Connected state was reached, so the caller can reset its backoff.
func (w *worker) runSession(ctx context.Context) (bool, error) {
	w.setState(infra.StateConnecting)

	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, w.url, nil)
	if err != nil {
		w.setState(infra.StateDisconnected)
		if errors.Is(err, websocket.ErrBadHandshake) {
			return false, domain.NewNetworkError("handshake", err)
		}
		return false, domain.NewNetworkError("dial", fmt.Errorf("%w: %v", domain.ErrConnectionFailed, err))
	}

	w.mu.Lock()
	w.conn = conn
	w.mu.Unlock()
	w.setState(infra.StateConnected)
	infra.GlobalMetrics.IncrementConnections()
	slog.Info("stream connected", slog.String("stream", w.name))

	err = w.readLoop(ctx)

	w.closeConnection()
	w.setState(infra.StateDisconnected)
	infra.GlobalMetrics.DecrementConnections()
	return true, err
}

func (w *worker) readLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		// Capture under the lock: Disconnect can nil out w.conn at any time.
		w.mu.RLock()
		conn := w.conn
		w.mu.RUnlock()
		if conn == nil {
			return domain.NewNetworkError("read", errors.New("connection gone"))
		}
		conn.SetReadDeadline(time.Now().Add(readTimeout))

		_, msg, err := conn.ReadMessage()
		if err != nil {
			op := "read"
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				op = "closed"
			}
			return domain.NewNetworkError(op, err)
		}
		w.handle(msg, time.Now().UnixNano())
	}
}

func (w *worker) setState(s infra.ConnectionState) {
	w.state.Store(int32(s))
}

// State returns the current connection state.
func (w *worker) State() infra.ConnectionState {
	return infra.ConnectionState(w.state.Load())
}

// IsConnected reports whether the worker currently holds a live session.
func (w *worker) IsConnected() bool {
	return w.State() == infra.StateConnected
}

func (w *worker) closeConnection() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.conn != nil {
		w.conn.Close()
		w.conn = nil
	}
}

// Disconnect cancels the loop and waits up to the shutdown grace period.
// A loop that does not come back in time is abandoned, not blocked on.
func (w *worker) Disconnect() {
	if w.cancel != nil {
		w.cancel()
	}
	w.closeConnection()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(shutdownGrace):
		slog.Warn("stream worker unresponsive, abandoning", slog.String("stream", w.name))
	}
}

// failureOp extracts the failing phase for log fields. The distinction
// between a close, a rejected handshake and anything else never changes
// control flow.
func failureOp(err error) string {
	var ne *domain.NetworkError
	if errors.As(err, &ne) {
		return ne.Op
	}
	return "unknown"
}
