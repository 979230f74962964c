package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/venlott/smoothtick/events"
	"github.com/venlott/smoothtick/interp"
	"github.com/venlott/smoothtick/parameter"
	"github.com/venlott/smoothtick/scene"
	"github.com/venlott/smoothtick/status"
)

// Ticker is the cycle driver: it decouples the fixed-rate simulation from
// the variable-rate presentation and keeps the presentation smooth by
// blending the last two captured snapshots.
//
// Each presentation attempt runs, in order: throttle check, time
// accumulation, capture+simulate for every due step, pre-present hook,
// blend (only when a step ran this attempt), present hook, presentation,
// restore, post-present hook. All of it executes synchronously on the
// ticker's own goroutine; user callbacks are never called re-entrantly
type Ticker struct {
	cfg      Config
	provider TimeProvider
	clock    *FrameClock
	stepper  *FixedStepper
	tracker  *interp.Tracker

	root     atomic.Pointer[scene.Node]
	speed    status.AtomicFloat
	simulate func(step time.Duration)
	present  func(root *scene.Node)
	hooks    Hooks
	observer Observer

	queue          *events.Queue
	attemptSampler *RateSampler
	presentSampler *RateSampler
	updateSampler  *RateSampler

	statusReg    *status.Registry
	statTicks    *atomic.Int64
	statFrames   *atomic.Int64
	statSkipped  *atomic.Int64
	statTracked  *atomic.Int64
	statCapacity *atomic.Int64
	statBlend    *status.AtomicFloat

	paused  atomic.Bool
	running atomic.Bool
	mu      sync.Mutex
	stop    chan struct{}
	wg      sync.WaitGroup
}

// NewTicker builds a ticker over root. simulate is invoked once per due
// fixed step with the nominal step size; present is invoked once per
// non-skipped attempt with interpolated values live on the tree
func NewTicker(root *scene.Node, simulate func(time.Duration), present func(*scene.Node), cfg Config) *Ticker {
	cfg.normalize()

	t := &Ticker{
		cfg:      cfg,
		provider: cfg.TimeProvider,
		simulate: simulate,
		present:  present,
		queue:    events.NewQueue(),
	}
	t.root.Store(root)

	t.statusReg = status.NewRegistry()
	t.statTicks = t.statusReg.Ints.Get("engine.ticks")
	t.statFrames = t.statusReg.Ints.Get("engine.frames")
	t.statSkipped = t.statusReg.Ints.Get("engine.frames_skipped")
	t.statTracked = t.statusReg.Ints.Get("interp.tracked")
	t.statCapacity = t.statusReg.Ints.Get("interp.capacity_exceeded")
	t.statBlend = t.statusReg.Floats.Get("engine.blend_factor")

	t.clock = NewFrameClock(t.provider, cfg.MaxFPS, cfg.FPSTolerance)
	t.stepper = NewFixedStepper(cfg.Step, cfg.Speed, cfg.MaxFrameDebt)
	t.speed.Set(t.stepper.Speed())

	// Capacity refusals surface as a diagnostic event and a counter; the
	// caller's own callback, if any, still runs
	userCapacity := cfg.Interp.OnCapacityExceeded
	cfg.Interp.OnCapacityExceeded = func(n *scene.Node) {
		t.statCapacity.Add(1)
		if t.observer != nil {
			t.observer.CapacityExceeded()
		}
		t.pushEvent(events.Event{
			Type: events.EventCapacityExceeded,
			Payload: &events.CapacityPayload{
				Tracked:  t.tracker.Tracked(),
				Capacity: t.tracker.Capacity(),
			},
		})
		if userCapacity != nil {
			userCapacity(n)
		}
	}
	t.tracker = interp.NewTracker(cfg.Interp)

	t.attemptSampler = NewRateSampler(cfg.RateInterval, cfg.RatePrecision, t.rateEmitter(events.EventAttemptRateChanged))
	t.presentSampler = NewRateSampler(cfg.RateInterval, cfg.RatePrecision, t.rateEmitter(events.EventFrameRateChanged))
	t.updateSampler = NewRateSampler(cfg.RateInterval, cfg.RatePrecision, t.rateEmitter(events.EventUpdateRateChanged))

	return t
}

func (t *Ticker) rateEmitter(eventType events.EventType) func(float64) {
	return func(rate float64) {
		t.pushEvent(events.Event{
			Type:    eventType,
			Payload: &events.RateChangedPayload{Rate: rate},
		})
	}
}

func (t *Ticker) pushEvent(ev events.Event) {
	ev.Timestamp = t.provider.Now()
	t.queue.Push(ev)
}

// Start transitions Stopped -> Running: records the current time as the
// baseline and begins scheduling presentation attempts. Calling Start
// while running performs an implicit Stop first
func (t *Ticker) Start() {
	t.Stop()

	t.mu.Lock()
	t.stop = make(chan struct{})
	t.running.Store(true)
	t.clock.Reset()
	t.stepper.Reset()
	t.wg.Add(1)
	stop := t.stop
	t.mu.Unlock()

	go t.loop(stop)
}

// Stop transitions Running -> Stopped, cancelling the next scheduled
// attempt. An attempt already in flight runs to completion. Idempotent
func (t *Ticker) Stop() {
	t.mu.Lock()
	if !t.running.CompareAndSwap(true, false) {
		t.mu.Unlock()
		return
	}
	close(t.stop)
	t.mu.Unlock()
	t.wg.Wait()
}

// Running reports whether the ticker is scheduling attempts
func (t *Ticker) Running() bool {
	return t.running.Load()
}

// Pause freezes simulation time: attempts keep presenting true values
// but no elapsed time reaches the accumulator, so no steps run
func (t *Ticker) Pause() {
	t.paused.Store(true)
}

// Resume unfreezes simulation time. The pause gap is not replayed
func (t *Ticker) Resume() {
	t.paused.Store(false)
}

// Paused reports the pause state
func (t *Ticker) Paused() bool {
	return t.paused.Load()
}

// SetSpeed adjusts the simulation speed multiplier; negative values are
// clamped to zero. Safe to call from any goroutine, the loop picks the
// new value up on its next attempt
func (t *Ticker) SetSpeed(speed float64) {
	if speed < 0 {
		speed = 0
	}
	t.speed.Set(speed)
}

// Speed returns the current speed multiplier
func (t *Ticker) Speed() float64 {
	return t.speed.Get()
}

// SetHooks installs the presentation hooks. Must be called before Start
func (t *Ticker) SetHooks(hooks Hooks) {
	t.hooks = hooks
}

// SetObserver installs a loop observer. Must be called before Start
func (t *Ticker) SetObserver(observer Observer) {
	t.observer = observer
}

// SetRoot swaps the tree driving capture and presentation. Nodes no
// longer reachable are released on the next capture pass. Safe to call
// from any goroutine
func (t *Ticker) SetRoot(root *scene.Node) {
	t.root.Store(root)
}

// Events returns the diagnostics queue for rate-change and capacity
// notifications
func (t *Ticker) Events() *events.Queue {
	return t.queue
}

// Status returns the live metric registry
func (t *Ticker) Status() *status.Registry {
	return t.statusReg
}

// loop schedules presentation attempts on drift-corrected deadlines so
// timer jitter does not compound
func (t *Ticker) loop(stop <-chan struct{}) {
	defer t.wg.Done()

	deadline := t.provider.Now().Add(parameter.AttemptInterval)

	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	defer timer.Stop()

	for {
		select {
		case <-stop:
			return
		default:
		}

		now := t.provider.Now()
		if !now.Before(deadline) {
			// Reschedule before running the attempt
			deadline = deadline.Add(parameter.AttemptInterval)
			if now.Sub(deadline) > parameter.AttemptInterval*2 {
				deadline = now.Add(parameter.AttemptInterval)
			}
			t.attempt()
		}

		if sleep := deadline.Sub(t.provider.Now()); sleep > 0 {
			timer.Reset(sleep)
			select {
			case <-timer.C:
			case <-stop:
				return
			}
		}
	}
}

// attempt executes one presentation attempt
func (t *Ticker) attempt() {
	now := t.provider.Now()
	t.attemptSampler.Sample(now)

	// A throttled attempt must not consume the elapsed baseline: the
	// time carries over so simulation pace is unaffected by the cap
	if !t.clock.ShouldPresent(now) {
		t.statSkipped.Add(1)
		if t.observer != nil {
			t.observer.FrameSkipped()
		}
		return
	}

	elapsed, _ := t.clock.Elapsed()
	stepTime := elapsed
	if t.paused.Load() {
		stepTime = 0
	}
	t.stepper.SetSpeed(t.speed.Get())
	steps, blend := t.stepper.Advance(stepTime)

	root := t.root.Load()
	for i := 0; i < steps; i++ {
		t.tracker.Capture(root)
		if t.simulate != nil {
			t.simulate(t.stepper.Step())
		}
		t.statTicks.Add(1)
		if t.observer != nil {
			t.observer.StepExecuted()
		}
		t.updateSampler.Sample(t.provider.Now())
	}

	if t.hooks.PrePresent != nil {
		t.hooks.PrePresent(elapsed)
	}

	// A zero-step attempt has nothing new to interpolate toward: true
	// values are presented as-is
	if steps > 0 {
		t.tracker.Blend(blend)
	}

	if t.hooks.Present != nil {
		t.hooks.Present(elapsed, blend)
	}
	if t.present != nil {
		t.present(root)
	}
	t.clock.MarkPresented(t.provider.Now())

	t.statFrames.Add(1)
	t.statBlend.Set(blend)
	t.statTracked.Store(int64(t.tracker.Tracked()))
	if t.observer != nil {
		t.observer.FramePresented(blend, t.tracker.Tracked())
	}

	t.tracker.Restore()
	if t.hooks.PostPresent != nil {
		t.hooks.PostPresent(elapsed)
	}
	t.presentSampler.Sample(t.provider.Now())
}
