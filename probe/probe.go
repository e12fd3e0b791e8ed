package probe

import (
	"time"

	"github.com/jonwraymond/probewatch/observe"
)

// Status is a confirmed probe state transition. Watchers emit a Status only
// when a consecutive-outcome counter reaches its threshold, never per poll.
type Status int

const (
	// StatusSuccess indicates the success threshold was reached.
	StatusSuccess Status = iota
	// StatusFailure indicates the failure threshold was reached.
	StatusFailure
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Probe describes one probe: how to attempt it and how to debounce the raw
// outcomes into confirmed transitions. Immutable after construction.
type Probe struct {
	// Method performs one attempt (Exec or HTTPGet).
	Method Method

	// InitialDelay is the wait before the first attempt.
	InitialDelay time.Duration

	// Period is the fixed interval between attempt deadlines.
	Period time.Duration

	// Timeout bounds a single attempt; expiry counts as a failure.
	Timeout time.Duration

	// SuccessThreshold is the number of consecutive successes required to
	// emit StatusSuccess. Must be >= 1.
	SuccessThreshold int

	// FailureThreshold is the number of consecutive failures required to
	// emit StatusFailure. Must be >= 1.
	FailureThreshold int
}

// Meta builds the telemetry identity for this probe on the given target.
func (p Probe) Meta(target, kind string) observe.ProbeMeta {
	meta := observe.ProbeMeta{
		Target: target,
		Kind:   kind,
	}
	if p.Method != nil {
		meta.Method = p.Method.Kind()
		meta.Detail = p.Method.String()
	}
	return meta
}
