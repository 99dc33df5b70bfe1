package logger

import (
	"sync"
	"time"
)

// Metrics tracks per-run counters, gauges and timings.
// All operations are thread-safe.
type Metrics struct {
	mu       sync.Mutex
	counters map[string]int64
	gauges   map[string]float64
	timings  map[string]time.Duration
}

// Snapshot is a copy of the metrics at one point of the run.
// Timings are the total time spent per name, in milliseconds.
type Snapshot struct {
	Counters  map[string]int64   `json:"counters"`
	Gauges    map[string]float64 `json:"gauges"`
	TimingsMS map[string]int64   `json:"timings_ms"`
}

var defaultMetrics = NewMetrics()

// NewMetrics creates a new metrics tracker with empty counters, gauges, and timings.
func NewMetrics() *Metrics {
	return &Metrics{
		counters: make(map[string]int64),
		gauges:   make(map[string]float64),
		timings:  make(map[string]time.Duration),
	}
}

// IncrCounter increments a counter by 1
func (m *Metrics) IncrCounter(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[name]++
}

// SetGauge sets a gauge to the specified value, overwriting any previous value.
func (m *Metrics) SetGauge(name string, value float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gauges[name] = value
}

// RecordTiming adds duration to the named timing.
func (m *Metrics) RecordTiming(name string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timings[name] += duration
}

// Reset drops every recorded value
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters = make(map[string]int64)
	m.gauges = make(map[string]float64)
	m.timings = make(map[string]time.Duration)
}

// GetSnapshot returns a copy of all metrics
func (m *Metrics) GetSnapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := Snapshot{
		Counters:  make(map[string]int64, len(m.counters)),
		Gauges:    make(map[string]float64, len(m.gauges)),
		TimingsMS: make(map[string]int64, len(m.timings)),
	}
	for k, v := range m.counters {
		snap.Counters[k] = v
	}
	for k, v := range m.gauges {
		snap.Gauges[k] = v
	}
	for k, v := range m.timings {
		snap.TimingsMS[k] = v.Milliseconds()
	}

	return snap
}

// IncrCounter increments a counter on the default metrics tracker.
func IncrCounter(name string) {
	defaultMetrics.IncrCounter(name)
}

// SetGauge sets a gauge on the default metrics tracker.
func SetGauge(name string, value float64) {
	defaultMetrics.SetGauge(name, value)
}

// RecordTiming records a timing on the default metrics tracker.
func RecordTiming(name string, duration time.Duration) {
	defaultMetrics.RecordTiming(name, duration)
}

// ResetMetrics clears the default metrics tracker
func ResetMetrics() {
	defaultMetrics.Reset()
}

// GetMetricsSnapshot returns a snapshot of all metrics from the default tracker.
func GetMetricsSnapshot() Snapshot {
	return defaultMetrics.GetSnapshot()
}
