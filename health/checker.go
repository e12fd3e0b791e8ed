package health

// TargetStatus is the point-in-time health of one monitored target.
type TargetStatus struct {
	Name  string `json:"name"`
	Live  bool   `json:"live"`
	Ready bool   `json:"ready"`
}

// Checker reports aggregated health over a set of monitored targets.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Freshness: every call re-derives the answer from the underlying flags;
//   implementations must not cache.
type Checker interface {
	// Live reports whether every target is live.
	Live() bool

	// Ready reports whether every target is ready.
	Ready() bool

	// Targets returns a snapshot of all targets' flags.
	Targets() []TargetStatus
}
