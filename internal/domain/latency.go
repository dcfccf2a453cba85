package domain

// Latency carries the per-message latency pair derived from the stream
// client's timestamps. It is computed once per message and never mutates
// shared state.
type Latency struct {
	TransportNS int64 `json:"transport_ns"` // arrival - exchange event time
	ParseNS     int64 `json:"parse_ns"`     // post-decode - pre-decode
	// Proxy is true when the feed kind has no event-time field and a
	// substitute (the bookTicker update id) was used. The value is then
	// not a true wall-clock latency.
	Proxy bool `json:"proxy"`
}

// TransportLatencyNS derives transport latency from the local arrival
// stamp and the feed's millisecond event time.
func TransportLatencyNS(arrivalNS, eventTimeMS int64) int64 {
	return arrivalNS - eventTimeMS*1_000_000
}

// ParseLatencyNS derives decode cost from the stamps straddling the decode.
func ParseLatencyNS(preDecodeNS, postDecodeNS int64) int64 {
	return postDecodeNS - preDecodeNS
}
