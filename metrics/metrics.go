// Package metrics exposes loop health as Prometheus collectors. The
// collector implements engine.Observer, so hosts that scrape already
// get tick, frame, and capacity counters with no extra plumbing.
package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// LoopCollector bundles Prometheus metrics for a running ticker loop.
type LoopCollector struct {
	gatherer prometheus.Gatherer

	Ticks            prometheus.Counter
	Frames           prometheus.Counter
	FramesSkipped    prometheus.Counter
	CapacityRefusals prometheus.Counter

	TrackedNodes prometheus.Gauge
	BlendFactor  prometheus.Gauge
}

// NewLoopCollector registers loop metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewLoopCollector(reg prometheus.Registerer) (*LoopCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	ticks, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "loop_ticks_total",
		Help: "Total number of fixed simulation steps executed.",
	}), "loop_ticks_total")
	if err != nil {
		return nil, err
	}
	frames, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "loop_frames_total",
		Help: "Total number of frames presented.",
	}), "loop_frames_total")
	if err != nil {
		return nil, err
	}
	skipped, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "loop_frames_skipped_total",
		Help: "Total number of presentation attempts dropped by the frame-rate throttle.",
	}), "loop_frames_skipped_total")
	if err != nil {
		return nil, err
	}
	capacity, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "loop_capacity_exceeded_total",
		Help: "Total number of nodes refused tracking because the snapshot buffer was full.",
	}), "loop_capacity_exceeded_total")
	if err != nil {
		return nil, err
	}

	tracked, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "loop_tracked_nodes",
		Help: "Number of nodes holding a snapshot slot as of the last presented frame.",
	}), "loop_tracked_nodes")
	if err != nil {
		return nil, err
	}
	blend, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "loop_blend_factor",
		Help: "Interpolation factor of the last presented frame, in [0, 1].",
	}), "loop_blend_factor")
	if err != nil {
		return nil, err
	}

	return &LoopCollector{
		gatherer:         gatherer,
		Ticks:            ticks,
		Frames:           frames,
		FramesSkipped:    skipped,
		CapacityRefusals: capacity,
		TrackedNodes:     tracked,
		BlendFactor:      blend,
	}, nil
}

// StepExecuted implements engine.Observer.
func (c *LoopCollector) StepExecuted() {
	if c == nil || c.Ticks == nil {
		return
	}
	c.Ticks.Inc()
}

// FramePresented implements engine.Observer.
func (c *LoopCollector) FramePresented(blend float64, tracked int) {
	if c == nil {
		return
	}
	if c.Frames != nil {
		c.Frames.Inc()
	}
	if c.BlendFactor != nil {
		c.BlendFactor.Set(blend)
	}
	if c.TrackedNodes != nil {
		c.TrackedNodes.Set(float64(tracked))
	}
}

// FrameSkipped implements engine.Observer.
func (c *LoopCollector) FrameSkipped() {
	if c == nil || c.FramesSkipped == nil {
		return
	}
	c.FramesSkipped.Inc()
}

// CapacityExceeded implements engine.Observer.
func (c *LoopCollector) CapacityExceeded() {
	if c == nil || c.CapacityRefusals == nil {
		return
	}
	c.CapacityRefusals.Inc()
}

// Handler exposes a ready-to-use /metrics handler.
func (c *LoopCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
