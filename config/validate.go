package config

import (
	"errors"
	"fmt"
)

var (
	// ErrUnnamedTarget indicates a target with an empty name.
	ErrUnnamedTarget = errors.New("config: target name is required")

	// ErrDuplicateTarget indicates two targets share a name.
	ErrDuplicateTarget = errors.New("config: duplicate target name")

	// ErrNoMethod indicates a probe without exec or http_get.
	ErrNoMethod = errors.New("config: probe needs exactly one of exec or http_get")

	// ErrAmbiguousMethod indicates a probe with both exec and http_get.
	ErrAmbiguousMethod = errors.New("config: probe has both exec and http_get")

	// ErrEmptyCommand indicates an exec probe with no program.
	ErrEmptyCommand = errors.New("config: exec command needs one or more entries")

	// ErrInvalidPort indicates an http_get port outside 1-65535.
	ErrInvalidPort = errors.New("config: port must be between 1 and 65535")

	// ErrInvalidDuration indicates a negative delay or non-positive period/timeout.
	ErrInvalidDuration = errors.New("config: invalid probe timing")

	// ErrInvalidThreshold indicates a threshold below 1.
	ErrInvalidThreshold = errors.New("config: thresholds must be >= 1")

	// ErrMissingEnv indicates a ${VAR} reference with no matching variable.
	ErrMissingEnv = errors.New("config: missing required environment variables")
)

// Validate checks the normalized configuration. Any error here is fatal at
// load time; nothing is evaluated lazily later. An empty fleet is valid:
// aggregation over zero targets is vacuously healthy.
func (f *File) Validate() error {
	seen := make(map[string]bool, len(f.Targets))
	for i := range f.Targets {
		t := &f.Targets[i]
		if t.Name == "" {
			return fmt.Errorf("%w (target #%d)", ErrUnnamedTarget, i)
		}
		if seen[t.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicateTarget, t.Name)
		}
		seen[t.Name] = true

		for kind, p := range map[string]*ProbeSpec{
			"startup_probe":   t.StartupProbe,
			"liveness_probe":  t.LivenessProbe,
			"readiness_probe": t.ReadinessProbe,
		} {
			if p == nil {
				continue
			}
			if err := p.validate(); err != nil {
				return fmt.Errorf("%w (target %q, %s)", err, t.Name, kind)
			}
		}
	}
	return nil
}

func (p *ProbeSpec) validate() error {
	switch {
	case p.Exec == nil && p.HTTPGet == nil:
		return ErrNoMethod
	case p.Exec != nil && p.HTTPGet != nil:
		return ErrAmbiguousMethod
	}

	if p.Exec != nil && len(p.Exec.Command) == 0 {
		return ErrEmptyCommand
	}
	if p.HTTPGet != nil && p.HTTPGet.Port != nil {
		if *p.HTTPGet.Port < 1 || *p.HTTPGet.Port > 65535 {
			return ErrInvalidPort
		}
	}

	if p.InitialDelaySeconds != nil && *p.InitialDelaySeconds < 0 {
		return fmt.Errorf("%w: initial_delay_seconds must be >= 0", ErrInvalidDuration)
	}
	if p.PeriodSeconds != nil && *p.PeriodSeconds < 1 {
		return fmt.Errorf("%w: period_seconds must be >= 1", ErrInvalidDuration)
	}
	if p.TimeoutSeconds != nil && *p.TimeoutSeconds < 1 {
		return fmt.Errorf("%w: timeout_seconds must be >= 1", ErrInvalidDuration)
	}
	if p.SuccessThreshold != nil && *p.SuccessThreshold < 1 {
		return fmt.Errorf("%w: success_threshold", ErrInvalidThreshold)
	}
	if p.FailureThreshold != nil && *p.FailureThreshold < 1 {
		return fmt.Errorf("%w: failure_threshold", ErrInvalidThreshold)
	}
	return nil
}
