package metrics

import (
	"sync"
	"sync/atomic"
)

// Collector collects and aggregates repository operation metrics in process.
// Keys are "<operation>:<kind>", e.g. "create:follow".
type Collector struct {
	operations sync.Map // map[string]*uint64 - key -> count
	errors     sync.Map // map[string]*uint64 - key -> error count
	durations  sync.Map // map[string]*durationValue - key -> total duration in seconds
}

// durationValue holds duration with mutex for thread-safe updates.
type durationValue struct {
	mu           sync.Mutex
	totalSeconds float64
}

// OperationMetrics is a snapshot of the collected counters.
type OperationMetrics struct {
	OperationCounts      map[string]uint64
	ErrorCounts          map[string]uint64
	TotalDurationSeconds map[string]float64
}

// NewCollector creates a new metrics collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Key returns the collector key of an operation on a relationship kind
func Key(operation, kind string) string {
	return operation + ":" + kind
}

// RecordOperation records one repository call.
func (c *Collector) RecordOperation(key string) {
	atomic.AddUint64(c.getOrCreateCounter(&c.operations, key), 1)
}

// RecordError records a failed repository call.
func (c *Collector) RecordError(key string) {
	atomic.AddUint64(c.getOrCreateCounter(&c.errors, key), 1)
}

// RecordDuration records the duration of a repository call in seconds.
func (c *Collector) RecordDuration(key string, durationSeconds float64) {
	val, _ := c.durations.LoadOrStore(key, &durationValue{})
	dv := val.(*durationValue)

	dv.mu.Lock()
	dv.totalSeconds += durationSeconds
	dv.mu.Unlock()
}

// Snapshot returns the current counters.
func (c *Collector) Snapshot() *OperationMetrics {
	result := &OperationMetrics{
		OperationCounts:      make(map[string]uint64),
		ErrorCounts:          make(map[string]uint64),
		TotalDurationSeconds: make(map[string]float64),
	}

	c.operations.Range(func(key, value interface{}) bool {
		result.OperationCounts[key.(string)] = atomic.LoadUint64(value.(*uint64))
		return true
	})

	c.errors.Range(func(key, value interface{}) bool {
		result.ErrorCounts[key.(string)] = atomic.LoadUint64(value.(*uint64))
		return true
	})

	c.durations.Range(func(key, value interface{}) bool {
		dv := value.(*durationValue)
		dv.mu.Lock()
		result.TotalDurationSeconds[key.(string)] = dv.totalSeconds
		dv.mu.Unlock()
		return true
	})

	return result
}

func (c *Collector) getOrCreateCounter(m *sync.Map, key string) *uint64 {
	val, _ := m.LoadOrStore(key, new(uint64))
	return val.(*uint64)
}
