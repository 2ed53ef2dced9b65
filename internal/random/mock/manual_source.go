package mockrandom

import (
	"fmt"
	"sync"
)

// ManualSource implements random.Source for testing with predetermined
// draws. Values are consumed in order; Float64/Percent return the next
// value as-is, Between clamps it into [lo, hi].
type ManualSource struct {
	mu     sync.Mutex
	values []float64
	index  int
}

// NewManualSource creates a new manual source
func NewManualSource() *ManualSource {
	return &ManualSource{values: []float64{}}
}

// SetNextValue queues a single draw
func (m *ManualSource) SetNextValue(v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values = append(m.values, v)
}

// SetValues replaces the queued draws
func (m *ManualSource) SetValues(values []float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values = values
	m.index = 0
}

// Reset clears all queued draws
func (m *ManualSource) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values = []float64{}
	m.index = 0
}

func (m *ManualSource) next() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.index >= len(m.values) {
		panic(fmt.Sprintf("no more predetermined draws available (used %d of %d)", m.index, len(m.values)))
	}

	v := m.values[m.index]
	m.index++
	return v
}

// Float64 returns the next predetermined draw
func (m *ManualSource) Float64(n float64) float64 {
	v := m.next()
	if v >= n && n > 0 {
		return n - 1e-9
	}
	return v
}

// Between returns the next predetermined draw clamped to [lo, hi]
func (m *ManualSource) Between(lo, hi float64) float64 {
	v := m.next()
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Percent returns the next predetermined draw
func (m *ManualSource) Percent() float64 {
	return m.Float64(100)
}
