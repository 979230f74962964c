package events

import "time"

// EventType identifies a diagnostics event
type EventType int

const (
	// EventUpdateRateChanged reports a change in the effective simulation
	// step rate, sampled over the configured interval
	// Payload: *RateChangedPayload
	EventUpdateRateChanged EventType = iota

	// EventFrameRateChanged reports a change in the effective presentation
	// rate
	// Payload: *RateChangedPayload
	EventFrameRateChanged

	// EventAttemptRateChanged reports a change in the host scheduling rate
	// (presentation attempts, including throttled ones)
	// Payload: *RateChangedPayload
	EventAttemptRateChanged

	// EventCapacityExceeded reports that the snapshot buffer refused a
	// registration at maximum capacity; excess nodes are presented
	// unblended for the frame. Non-fatal
	// Payload: *CapacityPayload
	EventCapacityExceeded
)

// Event is a single diagnostics notification. Events are advisory: they
// never block or alter scheduling
type Event struct {
	Type      EventType
	Timestamp time.Time
	Payload   any
}

// RateChangedPayload carries the newly sampled rate, rounded to the
// configured precision
type RateChangedPayload struct {
	Rate float64
}

// CapacityPayload carries buffer occupancy at the moment of refusal
type CapacityPayload struct {
	Tracked  int
	Capacity int
}
