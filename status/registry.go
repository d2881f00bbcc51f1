package status

import (
	"fmt"
	"sync/atomic"
)

// Metric keys written by the encounter session
const (
	KeyTicks     = "session.ticks"
	KeyScore     = "session.score"
	KeyWaveCount = "wave.count"
	KeyPlaced    = "attack.placed"
	KeySkipped   = "attack.skipped"
	KeyMultiProb = "attack.multi_prob"
)

// Registry is the metrics facade shared by the session, HUD and logs
// Writers cache pointers once; per-tick updates go straight to the atomics
type Registry struct {
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[AtomicFloat]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[AtomicFloat](),
	}
}

// Lines renders every metric as "key=value" in sorted key order, ints first
func (r *Registry) Lines() []string {
	lines := make([]string, 0, r.Ints.Count()+r.Floats.Count())
	r.Ints.Range(func(key string, v *atomic.Int64) {
		lines = append(lines, fmt.Sprintf("%s=%d", key, v.Load()))
	})
	r.Floats.Range(func(key string, v *AtomicFloat) {
		lines = append(lines, fmt.Sprintf("%s=%.2f", key, v.Get()))
	})
	return lines
}
