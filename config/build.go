package config

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jonwraymond/probewatch/monitor"
	"github.com/jonwraymond/probewatch/probe"
)

// Build constructs the runtime target list from a normalized, validated File.
func (f *File) Build() ([]monitor.Target, error) {
	targets := make([]monitor.Target, 0, len(f.Targets))
	for i := range f.Targets {
		t, err := f.Targets[i].target()
		if err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}
	return targets, nil
}

func (s *TargetSpec) target() (monitor.Target, error) {
	t := monitor.Target{Name: s.Name}

	var err error
	if s.StartupProbe != nil {
		if t.Startup, err = s.StartupProbe.build(); err != nil {
			return monitor.Target{}, fmt.Errorf("target %q startup_probe: %w", s.Name, err)
		}
	}
	if s.LivenessProbe != nil {
		if t.Liveness, err = s.LivenessProbe.build(); err != nil {
			return monitor.Target{}, fmt.Errorf("target %q liveness_probe: %w", s.Name, err)
		}
	}
	if s.ReadinessProbe != nil {
		if t.Readiness, err = s.ReadinessProbe.build(); err != nil {
			return monitor.Target{}, fmt.Errorf("target %q readiness_probe: %w", s.Name, err)
		}
	}
	return t, nil
}

func (p *ProbeSpec) build() (*probe.Probe, error) {
	method, err := p.method()
	if err != nil {
		return nil, err
	}

	return &probe.Probe{
		Method:           method,
		InitialDelay:     time.Duration(*p.InitialDelaySeconds) * time.Second,
		Period:           time.Duration(*p.PeriodSeconds) * time.Second,
		Timeout:          time.Duration(*p.TimeoutSeconds) * time.Second,
		SuccessThreshold: *p.SuccessThreshold,
		FailureThreshold: *p.FailureThreshold,
	}, nil
}

func (p *ProbeSpec) method() (probe.Method, error) {
	if p.Exec != nil {
		command, err := expandEnvSlice(p.Exec.Command)
		if err != nil {
			return nil, err
		}
		return probe.Exec{Command: command}, nil
	}
	return p.HTTPGet.method()
}

// method assembles the request URL with the documented defaults: scheme
// "http" (lowercased), host "localhost", path "/", the port segment only
// when given.
func (g *HTTPGetSpec) method() (probe.Method, error) {
	var b strings.Builder

	if g.Scheme != nil {
		b.WriteString(strings.ToLower(*g.Scheme))
	} else {
		b.WriteString("http")
	}
	b.WriteString("://")
	if g.Host != nil {
		b.WriteString(*g.Host)
	} else {
		b.WriteString("localhost")
	}
	if g.Port != nil {
		fmt.Fprintf(&b, ":%d", *g.Port)
	}
	if g.Path != nil {
		b.WriteString(*g.Path)
	} else {
		b.WriteString("/")
	}

	u, err := url.Parse(b.String())
	if err != nil {
		return nil, fmt.Errorf("config: assemble http_get url: %w", err)
	}

	var header http.Header
	if len(g.HTTPHeaders) > 0 {
		header = make(http.Header, len(g.HTTPHeaders))
		for name, value := range g.HTTPHeaders {
			expanded, err := expandEnv(value)
			if err != nil {
				return nil, fmt.Errorf("header %q: %w", name, err)
			}
			header.Set(name, expanded)
		}
	}

	return probe.HTTPGet{URL: u, Header: header}, nil
}
