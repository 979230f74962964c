package engine

import (
	"testing"
	"time"
)

func TestElapsedAdvancesBaseline(t *testing.T) {
	mock := NewMockTimeProvider(time.Unix(0, 0))
	c := NewFrameClock(mock, 0, 0)

	mock.Advance(16 * time.Millisecond)
	d, _ := c.Elapsed()
	if d != 16*time.Millisecond {
		t.Errorf("elapsed = %v, want 16ms", d)
	}

	mock.Advance(4 * time.Millisecond)
	d, _ = c.Elapsed()
	if d != 4*time.Millisecond {
		t.Errorf("elapsed = %v, want 4ms", d)
	}
}

func TestUnlimitedAlwaysPresents(t *testing.T) {
	mock := NewMockTimeProvider(time.Unix(0, 0))
	c := NewFrameClock(mock, 0, 0)
	if !c.ShouldPresent(mock.Now()) {
		t.Error("unlimited clock must always present")
	}
}

func TestThrottleHoldsBackEarlyFrames(t *testing.T) {
	mock := NewMockTimeProvider(time.Unix(0, 0))
	c := NewFrameClock(mock, 100, 0) // 10ms floor

	mock.Advance(4 * time.Millisecond)
	if c.ShouldPresent(mock.Now()) {
		t.Error("4ms after a presentation must be throttled at 100 FPS")
	}

	mock.Advance(6 * time.Millisecond)
	if !c.ShouldPresent(mock.Now()) {
		t.Error("10ms after a presentation must pass at 100 FPS")
	}

	c.MarkPresented(mock.Now())
	mock.Advance(9 * time.Millisecond)
	if c.ShouldPresent(mock.Now()) {
		t.Error("9ms after the second presentation must be throttled")
	}
}

func TestToleranceForgivesEarlyFrames(t *testing.T) {
	mock := NewMockTimeProvider(time.Unix(0, 0))
	c := NewFrameClock(mock, 100, 0.2) // 10ms floor, 2ms forgiven

	mock.Advance(8 * time.Millisecond)
	if !c.ShouldPresent(mock.Now()) {
		t.Error("8ms should pass with 20% tolerance on a 10ms floor")
	}

	c.Reset()
	mock.Advance(7 * time.Millisecond)
	if c.ShouldPresent(mock.Now()) {
		t.Error("7ms should still be throttled")
	}
}

func TestMalformedRateNormalized(t *testing.T) {
	mock := NewMockTimeProvider(time.Unix(0, 0))
	c := NewFrameClock(mock, -60, 5)
	// Negative rate means unlimited; tolerance is clamped
	if !c.ShouldPresent(mock.Now()) {
		t.Error("negative max rate must normalize to unlimited")
	}
}
