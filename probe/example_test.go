package probe_test

import (
	"context"
	"fmt"
	"time"

	"github.com/jonwraymond/probewatch/observe"
	"github.com/jonwraymond/probewatch/probe"
)

// okAttempter reports every attempt as successful.
type okAttempter struct{}

func (okAttempter) Attempt(ctx context.Context, meta observe.ProbeMeta, method probe.Method, timeout time.Duration) error {
	return nil
}

func ExampleProbe_Watch() {
	p := probe.Probe{
		Method:           probe.Exec{Command: []string{"true"}},
		Period:           time.Millisecond,
		Timeout:          time.Second,
		SuccessThreshold: 2,
		FailureThreshold: 3,
	}

	w := p.Watch(okAttempter{}, p.Meta("api", "readiness"))

	// Two consecutive successes cross the threshold and emit one transition.
	status, err := w.Next(context.Background())
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println("Transition:", status)
	// Output:
	// Transition: success
}
