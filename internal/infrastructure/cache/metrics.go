package cache

import "sync/atomic"

// Metrics counts cache hits and misses. It is injected into the
// response cache and surfaced on the system status endpoint, so
// callers can observe effectiveness without a metrics backend.
type Metrics struct {
	hits   atomic.Int64
	misses atomic.Int64
}

// NewMetrics creates a zeroed metrics counter
func NewMetrics() *Metrics {
	return &Metrics{}
}

// Hit records a cache hit
func (m *Metrics) Hit() {
	m.hits.Add(1)
}

// Miss records a cache miss
func (m *Metrics) Miss() {
	m.misses.Add(1)
}

// MetricsSnapshot is a point-in-time view of the counters
type MetricsSnapshot struct {
	Hits       int64   `json:"hits"`
	Misses     int64   `json:"misses"`
	HitRatePct float64 `json:"hit_rate_pct"`
}

// Snapshot returns the current counters and derived hit rate.
// The two loads are not atomic together; the snapshot is approximate
// under concurrent traffic, which is fine for a status endpoint.
func (m *Metrics) Snapshot() MetricsSnapshot {
	hits := m.hits.Load()
	misses := m.misses.Load()

	total := hits + misses
	rate := 0.0
	if total > 0 {
		rate = float64(hits) / float64(total) * 100
	}

	return MetricsSnapshot{
		Hits:       hits,
		Misses:     misses,
		HitRatePct: rate,
	}
}
