package probe

import (
	"context"
	"time"

	"github.com/jonwraymond/probewatch/observe"
)

// Watcher turns a stream of raw poll outcomes into a lazy sequence of
// confirmed transitions. It performs no work between calls to Next; the
// consumer's pull drives the polling. A fresh Watcher restarts the sequence
// with zeroed counters and a new initial delay.
type Watcher struct {
	probe     Probe
	attempter Attempter
	meta      observe.ProbeMeta

	deadline time.Time
	success  int
	failure  int
}

// Watch creates a watcher for this probe. The first attempt deadline is
// now + InitialDelay.
func (p Probe) Watch(att Attempter, meta observe.ProbeMeta) *Watcher {
	return &Watcher{
		probe:     p,
		attempter: att,
		meta:      meta,
		deadline:  time.Now().Add(p.InitialDelay),
	}
}

// Next blocks until the next confirmed transition and returns it. Polls that
// do not cross a threshold are absorbed silently. Next returns a non-nil
// error only when ctx is done; the watcher is not reusable after that.
//
// A threshold emits exactly when its consecutive-outcome counter equals it.
// Counters are not reset on emission beyond what the outcome accounting
// already does, so a threshold re-fires only after the opposite outcome has
// interrupted the streak. With thresholds above one, an endlessly alternating
// outcome sequence never emits; that flap suppression is intentional.
func (w *Watcher) Next(ctx context.Context) (Status, error) {
	for {
		if err := sleepUntil(ctx, w.deadline); err != nil {
			return StatusFailure, err
		}
		// Advance by exactly one period from the previous deadline, not from
		// "now", so slow attempts do not drift the schedule.
		w.deadline = w.deadline.Add(w.probe.Period)

		err := w.attempter.Attempt(ctx, w.meta, w.probe.Method, w.probe.Timeout)
		if err != nil && ctx.Err() != nil {
			// Parent cancellation, not a probe outcome.
			return StatusFailure, ctx.Err()
		}

		if err != nil {
			w.success = 0
			w.failure++
		} else {
			w.success++
			w.failure = 0
		}

		if w.success == w.probe.SuccessThreshold {
			return StatusSuccess, nil
		}
		if w.failure == w.probe.FailureThreshold {
			return StatusFailure, nil
		}
	}
}

// sleepUntil waits for the deadline or context cancellation, whichever is
// first. A deadline already in the past returns immediately, still honoring
// cancellation.
func sleepUntil(ctx context.Context, deadline time.Time) error {
	d := time.Until(deadline)
	if d <= 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			return nil
		}
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
