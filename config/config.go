package config

import (
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"gopkg.in/yaml.v3"
)

// File is the decoded target configuration.
type File struct {
	Targets []TargetSpec `json:"targets" yaml:"targets"`
}

// TargetSpec declares one monitored target and its optional probes.
type TargetSpec struct {
	Name           string     `json:"name" yaml:"name"`
	StartupProbe   *ProbeSpec `json:"startup_probe,omitempty" yaml:"startup_probe,omitempty"`
	LivenessProbe  *ProbeSpec `json:"liveness_probe,omitempty" yaml:"liveness_probe,omitempty"`
	ReadinessProbe *ProbeSpec `json:"readiness_probe,omitempty" yaml:"readiness_probe,omitempty"`
}

// ProbeSpec declares one probe. Exactly one of Exec and HTTPGet must be set.
// Optional fields left nil take the container-orchestration defaults applied
// by Normalize.
type ProbeSpec struct {
	Exec    *ExecSpec    `json:"exec,omitempty" yaml:"exec,omitempty"`
	HTTPGet *HTTPGetSpec `json:"http_get,omitempty" yaml:"http_get,omitempty"`

	InitialDelaySeconds *int `json:"initial_delay_seconds,omitempty" yaml:"initial_delay_seconds,omitempty"`
	PeriodSeconds       *int `json:"period_seconds,omitempty" yaml:"period_seconds,omitempty"`
	TimeoutSeconds      *int `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty"`
	SuccessThreshold    *int `json:"success_threshold,omitempty" yaml:"success_threshold,omitempty"`
	FailureThreshold    *int `json:"failure_threshold,omitempty" yaml:"failure_threshold,omitempty"`
}

// ExecSpec declares an exec probe method.
type ExecSpec struct {
	// Command is the program followed by its arguments.
	Command []string `json:"command" yaml:"command"`
}

// HTTPGetSpec declares an http_get probe method. All fields are optional;
// the assembled URL defaults to http://localhost/.
type HTTPGetSpec struct {
	Host        *string           `json:"host,omitempty" yaml:"host,omitempty"`
	Scheme      *string           `json:"scheme,omitempty" yaml:"scheme,omitempty"`
	Path        *string           `json:"path,omitempty" yaml:"path,omitempty"`
	HTTPHeaders map[string]string `json:"http_headers,omitempty" yaml:"http_headers,omitempty"`
	Port        *int              `json:"port,omitempty" yaml:"port,omitempty"`
}

// Load reads and decodes a YAML configuration file. The result still needs
// Normalize and Validate before Targets can be built.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return &f, nil
}

// ParseTarget decodes a single JSON target definition, as passed on the
// command line via a repeated --target flag.
func ParseTarget(s string) (TargetSpec, error) {
	var spec TargetSpec
	if err := sonic.UnmarshalString(s, &spec); err != nil {
		return TargetSpec{}, fmt.Errorf("config: decode target: %w", err)
	}
	return spec, nil
}
