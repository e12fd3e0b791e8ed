package config

// Probe defaults follow the container-orchestration conventions:
// https://kubernetes.io/docs/tasks/configure-pod-container/configure-liveness-readiness-startup-probes/#configure-probes
const (
	DefaultInitialDelaySeconds = 0
	DefaultPeriodSeconds       = 10
	DefaultTimeoutSeconds      = 1
	DefaultSuccessThreshold    = 1
	DefaultFailureThreshold    = 3
)

// Normalize fills unset optional probe fields with their defaults.
// Idempotent; call before Validate.
func (f *File) Normalize() {
	for i := range f.Targets {
		f.Targets[i].normalize()
	}
}

func (t *TargetSpec) normalize() {
	for _, p := range []*ProbeSpec{t.StartupProbe, t.LivenessProbe, t.ReadinessProbe} {
		if p != nil {
			p.normalize()
		}
	}
}

func (p *ProbeSpec) normalize() {
	if p.InitialDelaySeconds == nil {
		p.InitialDelaySeconds = intp(DefaultInitialDelaySeconds)
	}
	if p.PeriodSeconds == nil {
		p.PeriodSeconds = intp(DefaultPeriodSeconds)
	}
	if p.TimeoutSeconds == nil {
		p.TimeoutSeconds = intp(DefaultTimeoutSeconds)
	}
	if p.SuccessThreshold == nil {
		p.SuccessThreshold = intp(DefaultSuccessThreshold)
	}
	if p.FailureThreshold == nil {
		p.FailureThreshold = intp(DefaultFailureThreshold)
	}
}

func intp(v int) *int { return &v }
