package infra

import (
	"sync/atomic"
	"time"
)

// Metrics provides lightweight observability without external dependencies.
// Uses atomic operations for thread-safety.
type Metrics struct {
	// Counters
	framesDecoded atomic.Uint64
	framesDropped atomic.Uint64
	eventsDropped atomic.Uint64 // inbox full, event discarded
	reconnects    atomic.Uint64

	// Latency tracking
	transportSumNS atomic.Int64
	transportCount atomic.Uint64
	parseSumNS     atomic.Int64
	parseCount     atomic.Uint64

	// Gauges
	activeConnections atomic.Int32
}

// GlobalMetrics is the singleton metrics instance.
var GlobalMetrics = &Metrics{}

// RecordFrame records a successfully decoded frame with its latency pair.
// Transport latency is skipped when it is only a proxy value.
func (m *Metrics) RecordFrame(transportNS, parseNS int64, proxy bool) {
	m.framesDecoded.Add(1)
	m.parseSumNS.Add(parseNS)
	m.parseCount.Add(1)
	if !proxy {
		m.transportSumNS.Add(transportNS)
		m.transportCount.Add(1)
	}
}

// RecordFrameDropped records a frame discarded as undecodable.
func (m *Metrics) RecordFrameDropped() {
	m.framesDropped.Add(1)
}

// RecordEventDropped records an event discarded because the inbox was full.
func (m *Metrics) RecordEventDropped() {
	m.eventsDropped.Add(1)
}

// RecordReconnect records a reconnect attempt after a failure.
func (m *Metrics) RecordReconnect() {
	m.reconnects.Add(1)
}

// IncrementConnections increments active connections by 1.
func (m *Metrics) IncrementConnections() {
	m.activeConnections.Add(1)
}

// DecrementConnections decrements active connections by 1.
func (m *Metrics) DecrementConnections() {
	m.activeConnections.Add(-1)
}

// MetricsSnapshot is a point-in-time view of all metrics.
type MetricsSnapshot struct {
	FramesDecoded     uint64
	FramesDropped     uint64
	EventsDropped     uint64
	Reconnects        uint64
	AvgTransportNS    int64
	AvgParseNS        int64
	ActiveConnections int32
	Timestamp         time.Time
}

// Snapshot returns current metrics as a snapshot.
func (m *Metrics) Snapshot() MetricsSnapshot {
	var avgTransport, avgParse int64
	if n := m.transportCount.Load(); n > 0 {
		avgTransport = m.transportSumNS.Load() / int64(n)
	}
	if n := m.parseCount.Load(); n > 0 {
		avgParse = m.parseSumNS.Load() / int64(n)
	}

	return MetricsSnapshot{
		FramesDecoded:     m.framesDecoded.Load(),
		FramesDropped:     m.framesDropped.Load(),
		EventsDropped:     m.eventsDropped.Load(),
		Reconnects:        m.reconnects.Load(),
		AvgTransportNS:    avgTransport,
		AvgParseNS:        avgParse,
		ActiveConnections: m.activeConnections.Load(),
		Timestamp:         time.Now(),
	}
}

// Reset clears all metrics (for testing).
func (m *Metrics) Reset() {
	m.framesDecoded.Store(0)
	m.framesDropped.Store(0)
	m.eventsDropped.Store(0)
	m.reconnects.Store(0)
	m.transportSumNS.Store(0)
	m.transportCount.Store(0)
	m.parseSumNS.Store(0)
	m.parseCount.Store(0)
	m.activeConnections.Store(0)
}
