package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/exec"
	"time"

	"github.com/jonwraymond/probewatch/observe"
)

// Attempter performs exactly one probe attempt. Implementations must be safe
// for concurrent use; all targets share a single Attempter.
type Attempter interface {
	Attempt(ctx context.Context, meta observe.ProbeMeta, method Method, timeout time.Duration) error
}

// ExecutorConfig configures the probe executor.
type ExecutorConfig struct {
	// Client is the shared outbound HTTP client used by all HTTPGet probes.
	// Default: http.DefaultClient.
	Client *http.Client

	// Observer supplies tracing, metrics and logging for attempts.
	// Default: a no-op observer.
	Observer observe.Observer
}

// Executor performs probe attempts. An attempt either succeeds or returns an
// error carrying a diagnostic reason; the reason feeds logs and traces only,
// callers branch solely on the error being non-nil.
type Executor struct {
	client *http.Client
	mw     *observe.Middleware
}

// NewExecutor creates a new Executor.
func NewExecutor(cfg ExecutorConfig) (*Executor, error) {
	client := cfg.Client
	if client == nil {
		client = http.DefaultClient
	}

	mw := observe.NoopMiddleware()
	if cfg.Observer != nil {
		var err error
		mw, err = observe.MiddlewareFromObserver(cfg.Observer)
		if err != nil {
			return nil, fmt.Errorf("probe: middleware setup: %w", err)
		}
	}

	return &Executor{client: client, mw: mw}, nil
}

// Attempt performs one probe attempt under the given timeout. The attempt
// context expires at the timeout; Exec children are killed and in-flight
// requests are torn down when that happens, never merely abandoned.
func (e *Executor) Attempt(ctx context.Context, meta observe.ProbeMeta, method Method, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return e.mw.Attempt(ctx, meta, func(ctx context.Context) error {
		err := e.dispatch(ctx, method)
		if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%w after %s: %v", ErrAttemptTimeout, timeout, err)
		}
		return err
	})
}

func (e *Executor) dispatch(ctx context.Context, method Method) error {
	switch m := method.(type) {
	case Exec:
		return e.runExec(ctx, m)
	case HTTPGet:
		return e.runHTTPGet(ctx, m)
	default:
		return fmt.Errorf("probe: unsupported method %T", method)
	}
}

func (e *Executor) runExec(ctx context.Context, m Exec) error {
	if len(m.Command) == 0 {
		return ErrEmptyCommand
	}

	// CommandContext kills the child when the attempt context expires, so a
	// timed-out attempt leaves no orphaned process behind.
	cmd := exec.CommandContext(ctx, m.Command[0], m.Command[1:]...)
	if err := cmd.Run(); err != nil {
		return err
	}
	return nil
}

func (e *Executor) runHTTPGet(ctx context.Context, m HTTPGet) error {
	if m.URL == nil {
		return ErrMissingURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.URL.String(), nil)
	if err != nil {
		return err
	}
	for name, values := range m.Header {
		req.Header[name] = values
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// Body content is ignored; drain a bounded amount so the connection can
	// be reused by the shared pool.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("probe: unexpected status %s", resp.Status)
	}
	return nil
}
