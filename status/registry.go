package status

import "sync/atomic"

// Registry is the central facade over live loop counters. The ticker
// caches pointers at construction; hot paths write straight to atomics
//
// Published keys:
//
//	engine.ticks              simulation steps executed
//	engine.frames             frames actually presented
//	engine.frames_skipped     attempts throttled by the max frame rate
//	engine.blend_factor       blend factor of the last presented frame
//	interp.tracked            nodes captured by the latest pass
//	interp.capacity_exceeded  capture passes that refused registrations
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

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Ints.Count() + r.Floats.Count()
}
