// Package probe implements single probe attempts and the debounce state
// machine that confirms them.
//
// A Probe pairs a Method (Exec or HTTPGet) with scheduling and threshold
// parameters. The Executor performs one attempt per call: Exec succeeds on
// exit code 0, HTTPGet on a 2xx response; a timed-out attempt tears down its
// child process or in-flight request and counts as a failure.
//
// A Watcher wraps a Probe into a pull-based sequence of confirmed
// transitions:
//
//	w := p.Watch(executor, p.Meta("api", "readiness"))
//	for {
//	    status, err := w.Next(ctx)
//	    if err != nil {
//	        return err // ctx done
//	    }
//	    // status crossed a threshold: StatusSuccess or StatusFailure
//	}
//
// Attempts are scheduled on absolute deadlines advanced by a fixed period, so
// slow attempts never accumulate drift. Requiring N consecutive identical
// outcomes before emitting suppresses flapping; alternating outcomes under a
// threshold above one never emit.
package probe
