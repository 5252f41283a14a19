package input

import (
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

const latencySamples = 1000

// Metrics tracks dispatch counts and resolution latency.
type Metrics struct {
	eventsTotal      atomic.Uint64
	matchedTotal     atomic.Uint64
	unmatchedTotal   atomic.Uint64
	droppedTotal     atomic.Uint64
	hookConsumptions atomic.Uint64

	mu        sync.Mutex
	latencies []time.Duration
	next      int

	peakLatency atomic.Int64
}

// NewMetrics creates a metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{latencies: make([]time.Duration, 0, latencySamples)}
}

func (m *Metrics) recordResolve(latency time.Duration, matched bool) {
	m.eventsTotal.Add(1)
	if matched {
		m.matchedTotal.Add(1)
	} else {
		m.unmatchedTotal.Add(1)
	}

	ns := latency.Nanoseconds()
	for {
		current := m.peakLatency.Load()
		if ns <= current || m.peakLatency.CompareAndSwap(current, ns) {
			break
		}
	}

	m.mu.Lock()
	if len(m.latencies) < latencySamples {
		m.latencies = append(m.latencies, latency)
	} else {
		m.latencies[m.next] = latency
	}
	m.next = (m.next + 1) % latencySamples
	m.mu.Unlock()
}

func (m *Metrics) recordDropped() {
	m.droppedTotal.Add(1)
}

func (m *Metrics) recordHookConsumption() {
	m.eventsTotal.Add(1)
	m.hookConsumptions.Add(1)
}

// MetricsSnapshot holds a point-in-time view of metrics.
type MetricsSnapshot struct {
	EventsTotal      uint64
	MatchedTotal     uint64
	UnmatchedTotal   uint64
	DroppedTotal     uint64
	HookConsumptions uint64

	AvgLatency  time.Duration
	P99Latency  time.Duration
	PeakLatency time.Duration
}

// Snapshot returns the current values.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	samples := slices.Clone(m.latencies)
	m.mu.Unlock()

	snap := MetricsSnapshot{
		EventsTotal:      m.eventsTotal.Load(),
		MatchedTotal:     m.matchedTotal.Load(),
		UnmatchedTotal:   m.unmatchedTotal.Load(),
		DroppedTotal:     m.droppedTotal.Load(),
		HookConsumptions: m.hookConsumptions.Load(),
		PeakLatency:      time.Duration(m.peakLatency.Load()),
	}
	snap.AvgLatency, snap.P99Latency = latencyStats(samples)
	return snap
}

func latencyStats(samples []time.Duration) (avg, p99 time.Duration) {
	if len(samples) == 0 {
		return 0, 0
	}
	var sum time.Duration
	for _, l := range samples {
		sum += l
	}
	slices.Sort(samples)
	idx := int(float64(len(samples)) * 0.99)
	if idx >= len(samples) {
		idx = len(samples) - 1
	}
	return sum / time.Duration(len(samples)), samples[idx]
}
