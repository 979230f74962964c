package engine

import (
	"testing"
	"time"

	"github.com/venlott/smoothtick/events"
	"github.com/venlott/smoothtick/scene"
)

// testRig drives a Ticker by hand through the mock clock, calling
// attempt() directly instead of running the scheduling goroutine
type testRig struct {
	mock   *MockTimeProvider
	ticker *Ticker
	root   *scene.Node
	sprite *scene.Node
	calls  *[]string
}

func newTestRig(t *testing.T, cfg Config) *testRig {
	t.Helper()
	mock := NewMockTimeProvider(time.Unix(100, 0))
	cfg.TimeProvider = mock

	root := scene.NewNode()
	root.Smooth = scene.FlagOff
	root.SmoothChildren = scene.FlagOn
	sprite := root.AddChild(scene.NewNode())

	calls := &[]string{}
	simulate := func(step time.Duration) {
		*calls = append(*calls, "simulate")
		sprite.X += float64(step) / float64(time.Millisecond) // 1 unit per ms
	}
	present := func(*scene.Node) {
		*calls = append(*calls, "present")
	}

	ticker := NewTicker(root, simulate, present, cfg)
	return &testRig{mock: mock, ticker: ticker, root: root, sprite: sprite, calls: calls}
}

func (r *testRig) advance(d time.Duration) {
	r.mock.Advance(d)
	r.ticker.attempt()
}

func TestAttemptRunsDueSteps(t *testing.T) {
	r := newTestRig(t, Config{Step: 10 * time.Millisecond})

	r.advance(25 * time.Millisecond)

	simulations := 0
	for _, c := range *r.calls {
		if c == "simulate" {
			simulations++
		}
	}
	if simulations != 2 {
		t.Errorf("simulate ran %d times for 25ms at a 10ms step, want 2", simulations)
	}
	if got := r.ticker.Status().Ints.Get("engine.ticks").Load(); got != 2 {
		t.Errorf("engine.ticks = %d, want 2", got)
	}
	if got := r.ticker.Status().Ints.Get("engine.frames").Load(); got != 1 {
		t.Errorf("engine.frames = %d, want 1", got)
	}
}

func TestHookOrdering(t *testing.T) {
	r := newTestRig(t, Config{Step: 10 * time.Millisecond})
	r.ticker.SetHooks(Hooks{
		PrePresent:  func(time.Duration) { *r.calls = append(*r.calls, "pre") },
		Present:     func(time.Duration, float64) { *r.calls = append(*r.calls, "hook") },
		PostPresent: func(time.Duration) { *r.calls = append(*r.calls, "post") },
	})

	r.advance(15 * time.Millisecond)

	want := []string{"simulate", "pre", "hook", "present", "post"}
	if len(*r.calls) != len(want) {
		t.Fatalf("call sequence = %v, want %v", *r.calls, want)
	}
	for i := range want {
		if (*r.calls)[i] != want[i] {
			t.Fatalf("call sequence = %v, want %v", *r.calls, want)
		}
	}
}

func TestPresentedValuesAreBlended(t *testing.T) {
	r := newTestRig(t, Config{Step: 10 * time.Millisecond})

	var presented float64
	r.ticker.present = func(*scene.Node) {
		presented = r.sprite.X
	}

	// One step moves the sprite from 0 to 10; at blend 0.5 the presented
	// position is halfway between the snapshot (0) and the true value (10)
	r.advance(15 * time.Millisecond)

	if presented != 5 {
		t.Errorf("presented X = %v, want blended 5", presented)
	}
	if r.sprite.X != 10 {
		t.Errorf("true X after restore = %v, want 10", r.sprite.X)
	}
}

func TestZeroStepAttemptSkipsBlend(t *testing.T) {
	r := newTestRig(t, Config{Step: 10 * time.Millisecond})

	var presented float64
	r.ticker.present = func(*scene.Node) {
		presented = r.sprite.X
	}

	r.advance(15 * time.Millisecond) // one step, sprite at 10, 5ms debt

	// The host mutated the node between attempts; with no step due, true
	// values are presented as-is
	r.sprite.X = 99
	r.advance(2 * time.Millisecond)

	if presented != 99 {
		t.Errorf("presented X = %v on a zero-step attempt, want true value 99", presented)
	}
}

func TestThrottleSkipsWholeAttempt(t *testing.T) {
	r := newTestRig(t, Config{Step: 10 * time.Millisecond, MaxFPS: 50}) // 20ms floor

	r.advance(25 * time.Millisecond) // presents
	r.advance(10 * time.Millisecond) // throttled: no sim, no present

	presents := 0
	simulations := 0
	for _, c := range *r.calls {
		switch c {
		case "present":
			presents++
		case "simulate":
			simulations++
		}
	}
	if presents != 1 {
		t.Errorf("present ran %d times, want 1 (second attempt throttled)", presents)
	}
	if simulations != 2 {
		t.Errorf("simulate ran %d times, want 2 (throttled attempt runs nothing)", simulations)
	}
	if got := r.ticker.Status().Ints.Get("engine.frames_skipped").Load(); got != 1 {
		t.Errorf("engine.frames_skipped = %d, want 1", got)
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	r := newTestRig(t, Config{Step: 10 * time.Millisecond})

	r.ticker.Pause()
	r.advance(50 * time.Millisecond)

	for _, c := range *r.calls {
		if c == "simulate" {
			t.Fatal("simulate must not run while paused")
		}
	}
	presents := 0
	for _, c := range *r.calls {
		if c == "present" {
			presents++
		}
	}
	if presents != 1 {
		t.Errorf("present ran %d times while paused, want 1 (presentation continues)", presents)
	}

	// The pause gap is dropped, not replayed
	r.ticker.Resume()
	*r.calls = nil
	r.advance(10 * time.Millisecond)
	simulations := 0
	for _, c := range *r.calls {
		if c == "simulate" {
			simulations++
		}
	}
	if simulations != 1 {
		t.Errorf("simulate ran %d times after resume, want 1", simulations)
	}
}

func TestSpeedChangeKeepsStepSize(t *testing.T) {
	r := newTestRig(t, Config{Step: 10 * time.Millisecond})

	var steps []time.Duration
	r.ticker.simulate = func(step time.Duration) {
		steps = append(steps, step)
	}

	r.ticker.SetSpeed(2)
	r.advance(20 * time.Millisecond) // 40ms of sim time: 4 steps

	if len(steps) != 4 {
		t.Fatalf("simulate ran %d times at speed 2, want 4", len(steps))
	}
	for _, s := range steps {
		if s != 10*time.Millisecond {
			t.Errorf("step size = %v, want the nominal 10ms regardless of speed", s)
		}
	}
}

func TestStartStopLifecycle(t *testing.T) {
	r := newTestRig(t, Config{Step: 10 * time.Millisecond})

	if r.ticker.Running() {
		t.Fatal("new ticker must start stopped")
	}
	r.ticker.Stop() // stop before start is a no-op

	r.ticker.Start()
	if !r.ticker.Running() {
		t.Fatal("ticker should be running after Start")
	}

	// Start while running performs an implicit stop, not a second loop
	r.ticker.Start()
	if !r.ticker.Running() {
		t.Fatal("ticker should be running after restart")
	}

	r.ticker.Stop()
	r.ticker.Stop() // idempotent
	if r.ticker.Running() {
		t.Fatal("ticker should be stopped")
	}
}

func TestCapacityDiagnosticEvent(t *testing.T) {
	cfg := Config{
		Step: 10 * time.Millisecond,
	}
	cfg.Interp.InitialCapacity = 1
	cfg.Interp.MaxCapacity = 1
	r := newTestRig(t, cfg)
	r.root.AddChild(scene.NewNode())

	r.advance(15 * time.Millisecond)

	var capacityEvents int
	for _, ev := range r.ticker.Events().Consume() {
		if ev.Type == events.EventCapacityExceeded {
			capacityEvents++
			payload := ev.Payload.(*events.CapacityPayload)
			if payload.Capacity != 1 {
				t.Errorf("payload capacity = %d, want 1", payload.Capacity)
			}
		}
	}
	if capacityEvents == 0 {
		t.Error("expected a capacity-exceeded diagnostic event")
	}
	if got := r.ticker.Status().Ints.Get("interp.capacity_exceeded").Load(); got == 0 {
		t.Error("interp.capacity_exceeded counter should be incremented")
	}
}

type countingObserver struct {
	steps, frames, skipped, capacity int
	lastBlend                        float64
	lastTracked                      int
}

func (o *countingObserver) StepExecuted() { o.steps++ }
func (o *countingObserver) FramePresented(blend float64, tracked int) {
	o.frames++
	o.lastBlend = blend
	o.lastTracked = tracked
}
func (o *countingObserver) FrameSkipped()     { o.skipped++ }
func (o *countingObserver) CapacityExceeded() { o.capacity++ }

func TestObserverNotifications(t *testing.T) {
	r := newTestRig(t, Config{Step: 10 * time.Millisecond, MaxFPS: 50})
	obs := &countingObserver{}
	r.ticker.SetObserver(obs)

	r.advance(25 * time.Millisecond)
	r.advance(10 * time.Millisecond) // throttled

	if obs.steps != 2 {
		t.Errorf("observer steps = %d, want 2", obs.steps)
	}
	if obs.frames != 1 {
		t.Errorf("observer frames = %d, want 1", obs.frames)
	}
	if obs.skipped != 1 {
		t.Errorf("observer skipped = %d, want 1", obs.skipped)
	}
	if obs.lastBlend != 0.5 {
		t.Errorf("observer blend = %v, want 0.5", obs.lastBlend)
	}
	if obs.lastTracked != 1 {
		t.Errorf("observer tracked = %d, want 1", obs.lastTracked)
	}
}

func TestLoopRunsAttempts(t *testing.T) {
	// Real provider, real goroutine: just verify steps happen and stop
	// terminates promptly
	root := scene.NewNode()
	ticker := NewTicker(root, func(time.Duration) {}, func(*scene.Node) {}, Config{
		Step: time.Millisecond,
	})

	ticker.Start()
	time.Sleep(50 * time.Millisecond)
	ticker.Stop()

	if got := ticker.Status().Ints.Get("engine.ticks").Load(); got == 0 {
		t.Error("expected simulation steps while running")
	}
	frames := ticker.Status().Ints.Get("engine.frames").Load()
	ticker.Stop()
	if got := ticker.Status().Ints.Get("engine.frames").Load(); got != frames {
		t.Error("no attempts may run after Stop returns")
	}
}
