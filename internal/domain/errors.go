package domain

import "errors"

// RetriableError defines an interface for errors that can be retried
type RetriableError interface {
	error
	IsRetriable() bool
}

// IsRetriable checks if an error is retriable
func IsRetriable(err error) bool {
	var re RetriableError
	if errors.As(err, &re) {
		return re.IsRetriable()
	}
	return false
}

// NetworkError represents a stream transport error. Op records which phase
// failed ("dial", "handshake", "read"); the worker logs it for diagnostics
// only, every NetworkError follows the same backoff-and-retry path.
type NetworkError struct {
	Op        string
	Err       error
	Retriable bool
}

func (e *NetworkError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *NetworkError) IsRetriable() bool {
	return e.Retriable
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NewNetworkError creates a new retriable network error
func NewNetworkError(op string, err error) *NetworkError {
	return &NetworkError{Op: op, Err: err, Retriable: true}
}

// ConfigError represents a configuration error (never retriable). It is
// the only failure surfaced at startup before any ingestion worker runs.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return "config error [" + e.Field + "]: " + e.Err.Error()
}

func (e *ConfigError) IsRetriable() bool {
	return false
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

var (
	// ErrConnectionFailed is returned when the websocket connection fails. Retriable.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrMalformedFrame is returned when a frame cannot be decoded. The
	// frame is dropped and the stream continues.
	ErrMalformedFrame = errors.New("malformed frame")

	// ErrMissingField is returned when a decoded message lacks a required
	// field. The message is rejected before touching any store.
	ErrMissingField = errors.New("missing required field")

	// ErrConfigNotFound is returned when the configuration file is missing
	ErrConfigNotFound = errors.New("configuration not found")
)
