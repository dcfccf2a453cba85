package domain

import "testing"

func TestTransportLatencyNS(t *testing.T) {
	// Event at 1000ms, arrival 2.5ms later.
	got := TransportLatencyNS(1_002_500_000, 1000)
	if got != 2_500_000 {
		t.Errorf("transport latency = %d, want 2500000", got)
	}

	// Clock skew can make it negative; the value is reported as-is.
	if TransportLatencyNS(999_000_000, 1000) >= 0 {
		t.Error("expected negative latency under skew")
	}
}

func TestParseLatencyNS(t *testing.T) {
	if got := ParseLatencyNS(100, 350); got != 250 {
		t.Errorf("parse latency = %d, want 250", got)
	}
}
