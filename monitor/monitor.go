package monitor

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/jonwraymond/probewatch/health"
	"github.com/jonwraymond/probewatch/observe"
	"github.com/jonwraymond/probewatch/probe"
)

// Target is one monitored unit with up to three probe kinds. Immutable after
// load; a nil probe means that kind is never evaluated.
type Target struct {
	Name      string
	Startup   *probe.Probe
	Liveness  *probe.Probe
	Readiness *probe.Probe
}

// flags holds one target's health booleans. The target's orchestration
// goroutine is the only writer; HTTP handlers and the aggregate are readers.
// live defaults to true, ready to false.
type flags struct {
	live  atomic.Bool
	ready atomic.Bool
}

// Config configures a monitor Set.
type Config struct {
	// Targets is the immutable fleet to monitor.
	Targets []Target

	// Attempter performs probe attempts for every target.
	Attempter probe.Attempter

	// Observer supplies logging and transition metrics.
	// Default: a no-op observer.
	Observer observe.Observer
}

// Set orchestrates the full fleet: one long-lived goroutine per target runs
// the startup gate followed by concurrent liveness and readiness branches.
// Set is also the health.Checker the exposure layer reads from.
type Set struct {
	targets   []Target
	flags     []*flags
	attempter probe.Attempter
	logger    observe.Logger
	mw        *observe.Middleware
}

// NewSet creates a Set with default flags for every target.
func NewSet(cfg Config) (*Set, error) {
	if cfg.Attempter == nil {
		return nil, ErrNilAttempter
	}

	obs := cfg.Observer
	if obs == nil {
		obs = observe.Noop()
	}
	mw, err := observe.MiddlewareFromObserver(obs)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(cfg.Targets))
	fl := make([]*flags, len(cfg.Targets))
	for i, t := range cfg.Targets {
		if t.Name == "" {
			return nil, ErrUnnamedTarget
		}
		if seen[t.Name] {
			return nil, ErrDuplicateTarget
		}
		seen[t.Name] = true

		fl[i] = &flags{}
		fl[i].live.Store(true)
	}

	return &Set{
		targets:   cfg.Targets,
		flags:     fl,
		attempter: cfg.Attempter,
		logger:    obs.Logger(),
		mw:        mw,
	}, nil
}

// Run monitors every target until ctx is done. Targets are fully independent:
// no probe outcome on one target affects another, and Run returns a non-nil
// error only from ctx.
func (s *Set) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for i := range s.targets {
		i := i
		g.Go(func() error {
			return s.runTarget(ctx, &s.targets[i], s.flags[i])
		})
	}
	return g.Wait()
}

// runTarget drives one target: the startup gate strictly precedes the steady
// state; liveness and readiness then run concurrently with no ordering
// guarantee between them, each owning its own flag.
func (s *Set) runTarget(ctx context.Context, t *Target, f *flags) error {
	if err := s.awaitStartup(ctx, t); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.watchLiveness(ctx, t, f)
	})
	g.Go(func() error {
		return s.watchReadiness(ctx, t, f)
	})
	return g.Wait()
}

// awaitStartup blocks until the startup probe confirms its first Success.
// Confirmed Failures are observed but never abort the gate; it retries
// indefinitely. A target without a startup probe proceeds immediately.
func (s *Set) awaitStartup(ctx context.Context, t *Target) error {
	if t.Startup == nil {
		return nil
	}

	meta := t.Startup.Meta(t.Name, "startup")
	w := t.Startup.Watch(s.attempter, meta)
	for {
		status, err := w.Next(ctx)
		if err != nil {
			return err
		}
		s.mw.Transition(ctx, meta, status.String())
		if status == probe.StatusSuccess {
			return nil
		}
	}
}

// watchLiveness consumes the liveness watcher until the first confirmed
// Failure, which clears the flag permanently; liveness never self-heals.
// Success transitions have no effect since live starts true.
func (s *Set) watchLiveness(ctx context.Context, t *Target, f *flags) error {
	if t.Liveness == nil {
		return nil
	}

	meta := t.Liveness.Meta(t.Name, "liveness")
	w := t.Liveness.Watch(s.attempter, meta)
	for {
		status, err := w.Next(ctx)
		if err != nil {
			return err
		}
		s.mw.Transition(ctx, meta, status.String())
		if status == probe.StatusFailure {
			f.live.Store(false)
			s.logger.WithProbe(meta).Warn(ctx, "target is no longer live")
			return nil
		}
	}
}

// watchReadiness consumes the readiness watcher for the target's lifetime,
// mirroring every confirmed transition onto the flag in both directions. A
// target without a readiness probe is marked ready once, immediately.
func (s *Set) watchReadiness(ctx context.Context, t *Target, f *flags) error {
	if t.Readiness == nil {
		f.ready.Store(true)
		return nil
	}

	meta := t.Readiness.Meta(t.Name, "readiness")
	w := t.Readiness.Watch(s.attempter, meta)
	for {
		status, err := w.Next(ctx)
		if err != nil {
			return err
		}
		s.mw.Transition(ctx, meta, status.String())
		f.ready.Store(status == probe.StatusSuccess)
	}
}

// Live reports whether every target is live. Re-derived on every call.
func (s *Set) Live() bool {
	for _, f := range s.flags {
		if !f.live.Load() {
			return false
		}
	}
	return true
}

// Ready reports whether every target is ready. Re-derived on every call.
func (s *Set) Ready() bool {
	for _, f := range s.flags {
		if !f.ready.Load() {
			return false
		}
	}
	return true
}

// Targets returns a snapshot of all targets' flags. Cross-flag atomicity is
// not provided; each flag is read independently.
func (s *Set) Targets() []health.TargetStatus {
	statuses := make([]health.TargetStatus, len(s.targets))
	for i, t := range s.targets {
		statuses[i] = health.TargetStatus{
			Name:  t.Name,
			Live:  s.flags[i].live.Load(),
			Ready: s.flags[i].ready.Load(),
		}
	}
	return statuses
}

var _ health.Checker = (*Set)(nil)
