package engine

import (
	"testing"
	"time"
)

func TestRateSampledOverWindow(t *testing.T) {
	var got []float64
	s := NewRateSampler(time.Second, 1, func(rate float64) {
		got = append(got, rate)
	})

	now := time.Unix(0, 0)
	s.Sample(now) // opens the window
	for i := 1; i <= 60; i++ {
		now = now.Add(time.Second / 60)
		s.Sample(now)
	}

	if len(got) != 1 {
		t.Fatalf("onChange fired %d times, want 1", len(got))
	}
	if got[0] != 60 {
		t.Errorf("rate = %v, want 60", got[0])
	}
	if s.Rate() != 60 {
		t.Errorf("Rate() = %v, want 60", s.Rate())
	}
}

func TestUnchangedRateStaysQuiet(t *testing.T) {
	fired := 0
	s := NewRateSampler(time.Second, 1, func(float64) { fired++ })

	now := time.Unix(0, 0)
	s.Sample(now)
	// Two full windows at the same steady rate: only the first transition
	// from 0 reports
	for i := 1; i <= 120; i++ {
		now = now.Add(time.Second / 60)
		s.Sample(now)
	}

	if fired != 1 {
		t.Errorf("onChange fired %d times at a steady rate, want 1", fired)
	}
}

func TestRatePrecisionRounding(t *testing.T) {
	var got float64
	s := NewRateSampler(time.Second, 1, func(rate float64) { got = rate })

	// 60 samples over ~1.001s lands near 59.94; precision 1 rounds to 60
	now := time.Unix(0, 0)
	s.Sample(now)
	for i := 1; i <= 59; i++ {
		now = now.Add(16660 * time.Microsecond)
		s.Sample(now)
	}
	now = now.Add(18 * time.Millisecond)
	s.Sample(now)

	if got != 60 {
		t.Errorf("rounded rate = %v, want 60", got)
	}
}

func TestResetClearsWindow(t *testing.T) {
	s := NewRateSampler(time.Second, 1, nil)
	now := time.Unix(0, 0)
	s.Sample(now)
	for i := 1; i <= 60; i++ {
		now = now.Add(time.Second / 60)
		s.Sample(now)
	}
	if s.Rate() == 0 {
		t.Fatal("expected a sampled rate before reset")
	}
	s.Reset()
	if s.Rate() != 0 {
		t.Errorf("Rate() = %v after reset, want 0", s.Rate())
	}
}
