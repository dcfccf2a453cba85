package infra

import "time"

// ConnectionState tracks one stream subscription's lifecycle.
type ConnectionState int32

const (
	StateDisconnected ConnectionState = iota
	StateConnecting
	StateConnected
)

func (s ConnectionState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "disconnected"
	}
}

const (
	backoffBase = 1 * time.Second
	backoffMax  = 60 * time.Second
)

// Backoff is the reconnect delay state, threaded as an explicit value so
// the retry schedule is testable without a live connection. The zero value
// is not usable; start from NewBackoff.
type Backoff struct {
	delay time.Duration
}

// NewBackoff returns the initial 1s backoff state.
func NewBackoff() Backoff {
	return Backoff{delay: backoffBase}
}

// Next returns the delay to sleep for the current failure and the state to
// carry into the next one: doubled, capped at 60s.
func (b Backoff) Next() (time.Duration, Backoff) {
	delay := b.delay
	next := delay * 2
	if next > backoffMax {
		next = backoffMax
	}
	return delay, Backoff{delay: next}
}

// Reset returns the state back to the initial delay. Called immediately
// upon reaching Connected.
func (b Backoff) Reset() Backoff {
	return NewBackoff()
}
