package vmm

import (
	"log/slog"
	"math"
	"sort"
	"sync"
	"sync/atomic"
)

// Histogram tracks a sample distribution with percentile support. The
// simulator uses it for the optimal policy's lookahead distances.
type Histogram struct {
	samples []float64
	mu sync.Mutex
	maxSize int // Maximum samples to retain
	sorted bool
}

// NewHistogram creates a new histogram with a max sample size
func NewHistogram(maxSize int) *Histogram {
	if maxSize <= 0 {
		maxSize = 10000 // Default: keep last 10k samples
	}
	return &Histogram{
		samples: make([]float64, 0, maxSize),
		maxSize: maxSize,
		sorted: true,
	}
}

// Record adds a sample, dropping the oldest one at capacity
func (h *Histogram) Record(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.samples) >= h.maxSize {
		copy(h.samples, h.samples[1:])
		h.samples = h.samples[:len(h.samples)-1]
	}

	h.samples = append(h.samples, value)
	h.sorted = false
}

// Percentile calculates the given percentile (0-100)
func (h *Histogram) Percentile(p float64) float64 {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.samples) == 0 {
		return 0
	}

	if !h.sorted {
		sort.Float64s(h.samples)
		h.sorted = true
	}

	rank := (p / 100.0) * float64(len(h.samples)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))

	if lower == upper {
		return h.samples[lower]
	}

	// Linear interpolation between the straddling samples
	weight := rank - float64(lower)
	return h.samples[lower]*(1-weight) + h.samples[upper]*weight
}

// Mean calculates the average sample value
func (h *Histogram) Mean() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.samples) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range h.samples {
		sum += v
	}
	return sum / float64(len(h.samples))
}

// Count returns the number of samples
func (h *Histogram) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.samples)
}

// Reset clears all samples
func (h *Histogram) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.samples = h.samples[:0]
	h.sorted = true
}

// HistogramSnapshot holds the percentile statistics of a histogram
type HistogramSnapshot struct {
	Count int
	Mean float64
	P50 float64
	P95 float64
	P99 float64
}

// Snapshot captures current histogram statistics
func (h *Histogram) Snapshot() HistogramSnapshot {
	return HistogramSnapshot{
		Count: h.Count(),
		Mean: h.Mean(),
		P50: h.Percentile(50),
		P95: h.Percentile(95),
		P99: h.Percentile(99),
	}
}

// Metrics tracks simulation counters beyond the fault counts themselves
type Metrics struct {
	hits atomic.Uint64
	faults atomic.Uint64
	evictions atomic.Uint64

	// Lookahead distance of each optimal-policy eviction, in trace records
	lookahead *Histogram
}

// NewMetrics creates a new metrics tracker
func NewMetrics() *Metrics {
	return &Metrics{
		lookahead: NewHistogram(10000),
	}
}

func (m *Metrics) RecordHit() {
	m.hits.Add(1)
}

func (m *Metrics) RecordFault() {
	m.faults.Add(1)
}

func (m *Metrics) RecordEviction() {
	m.evictions.Add(1)
}

// RecordLookahead records how far ahead the optimal policy had to scan
func (m *Metrics) RecordLookahead(records int) {
	m.lookahead.Record(float64(records))
}

// Getters

func (m *Metrics) GetHits() uint64 {
	return m.hits.Load()
}

func (m *Metrics) GetFaults() uint64 {
	return m.faults.Load()
}

func (m *Metrics) GetEvictions() uint64 {
	return m.evictions.Load()
}

// GetHitRate returns the fraction of accesses served without a fault
func (m *Metrics) GetHitRate() float64 {
	hits := m.hits.Load()
	faults := m.faults.Load()
	total := hits + faults
	if total == 0 {
		return 0.0
	}
	return float64(hits) / float64(total)
}

// GetLookahead returns a snapshot of the optimal lookahead distribution
func (m *Metrics) GetLookahead() HistogramSnapshot {
	return m.lookahead.Snapshot()
}

// LogMetrics logs all metrics using structured logging
func (m *Metrics) LogMetrics(logger *slog.Logger) {
	lookahead := m.GetLookahead()

	logger.Info("Simulation Metrics",
		slog.Group("accesses",
			slog.Uint64("hits", m.GetHits()),
			slog.Uint64("faults", m.GetFaults()),
			slog.Float64("hit_rate", m.GetHitRate()),
			slog.Uint64("evictions", m.GetEvictions()),
		),
		slog.Group("optimal_lookahead",
			slog.Int("count", lookahead.Count),
			slog.Float64("mean", lookahead.Mean),
			slog.Float64("p50", lookahead.P50),
			slog.Float64("p95", lookahead.P95),
			slog.Float64("p99", lookahead.P99),
		),
	)
}

// Reset resets all metrics (useful for testing)
func (m *Metrics) Reset() {
	m.hits.Store(0)
	m.faults.Store(0)
	m.evictions.Store(0)
	m.lookahead.Reset()
}
