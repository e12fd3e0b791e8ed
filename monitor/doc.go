// Package monitor orchestrates probe evaluation across a fleet of targets.
//
// Each target gets one long-lived goroutine: an optional startup probe gates
// everything else and retries until its first confirmed Success, then the
// liveness and readiness watchers run concurrently. A confirmed liveness
// Failure clears the target's live flag for good; readiness follows its
// watcher in both directions for the life of the process. Unconfigured probe
// kinds yield a permanent healthy default.
//
// The per-target flags are atomic booleans with exactly one writer each, so
// the HTTP handlers read them without locks. Set implements health.Checker
// by re-deriving the logical AND across all targets on every call.
package monitor
