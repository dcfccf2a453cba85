package domain

import "context"

// StreamWorker defines the interface for feed websocket connectors
type StreamWorker interface {
	Connect(ctx context.Context) error
	Disconnect()
	IsConnected() bool
}

// SampleStore defines how derived metric samples are persisted for
// downstream analysis tools.
type SampleStore interface {
	SaveSample(sample *MetricSample) error
	RecentSamples(symbol string, limit int) ([]MetricSample, error)
}
