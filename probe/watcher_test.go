package probe

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonwraymond/probewatch/observe"
)

var errScripted = errors.New("scripted failure")

// scriptAttempter replays a fixed outcome sequence; the last outcome repeats
// once the script is exhausted.
type scriptAttempter struct {
	mu       sync.Mutex
	outcomes []bool // true = success
	calls    int
}

func (s *scriptAttempter) Attempt(ctx context.Context, meta observe.ProbeMeta, method Method, timeout time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.calls
	if i >= len(s.outcomes) {
		i = len(s.outcomes) - 1
	}
	s.calls++

	if s.outcomes[i] {
		return nil
	}
	return errScripted
}

func (s *scriptAttempter) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func fastProbe(successThreshold, failureThreshold int) Probe {
	return Probe{
		Method:           Exec{Command: []string{"true"}},
		Period:           time.Millisecond,
		Timeout:          time.Second,
		SuccessThreshold: successThreshold,
		FailureThreshold: failureThreshold,
	}
}

func TestWatcher_SingleThreshold(t *testing.T) {
	att := &scriptAttempter{outcomes: []bool{false, true, false}}
	p := fastProbe(1, 1)
	w := p.Watch(att, observe.ProbeMeta{Target: "t", Kind: "readiness"})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for i, want := range []Status{StatusFailure, StatusSuccess, StatusFailure} {
		got, err := w.Next(ctx)
		if err != nil {
			t.Fatalf("Next #%d: %v", i, err)
		}
		if got != want {
			t.Errorf("Next #%d = %v, want %v", i, got, want)
		}
	}

	if calls := att.callCount(); calls != 3 {
		t.Errorf("attempts = %d, want 3 (one per transition at threshold 1/1)", calls)
	}
}

func TestWatcher_HigherThresholdRequiresStreak(t *testing.T) {
	// Two failures, then a success interrupting the streak, then three
	// failures: only the final streak of three emits.
	att := &scriptAttempter{outcomes: []bool{false, false, true, false, false, false}}
	p := fastProbe(3, 3)
	w := p.Watch(att, observe.ProbeMeta{Target: "t", Kind: "liveness"})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	got, err := w.Next(ctx)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if got != StatusFailure {
		t.Errorf("Next = %v, want StatusFailure", got)
	}
	if calls := att.callCount(); calls != 6 {
		t.Errorf("attempts = %d, want 6 (emission only on the third consecutive failure)", calls)
	}
}

func TestWatcher_SuccessStreakAfterReset(t *testing.T) {
	att := &scriptAttempter{outcomes: []bool{true, false, true, true}}
	p := fastProbe(2, 5)
	w := p.Watch(att, observe.ProbeMeta{Target: "t", Kind: "startup"})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	got, err := w.Next(ctx)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if got != StatusSuccess {
		t.Errorf("Next = %v, want StatusSuccess", got)
	}
	if calls := att.callCount(); calls != 4 {
		t.Errorf("attempts = %d, want 4 (failure at #2 reset the success streak)", calls)
	}
}

func TestWatcher_FlapSuppression(t *testing.T) {
	// Strictly alternating outcomes under threshold 2 must never emit.
	flap := &alternatingAttempter{}
	p := fastProbe(2, 2)
	w := p.Watch(flap, observe.ProbeMeta{Target: "t", Kind: "readiness"})

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	_, err := w.Next(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Next = %v, want context.DeadlineExceeded (no emission while flapping)", err)
	}
	if calls := flap.callCount(); calls < 10 {
		t.Errorf("attempts = %d, want many polls absorbed silently", calls)
	}
}

// alternatingAttempter flips the outcome on every call.
type alternatingAttempter struct {
	mu    sync.Mutex
	calls int
}

func (a *alternatingAttempter) Attempt(ctx context.Context, meta observe.ProbeMeta, method Method, timeout time.Duration) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls++
	if a.calls%2 == 1 {
		return nil
	}
	return errScripted
}

func (a *alternatingAttempter) callCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls
}

func TestWatcher_RefireAfterInterruption(t *testing.T) {
	// failure_threshold=2: two failures emit, two more failures stay silent
	// (counter keeps climbing past the threshold), a success resets, and the
	// following two failures emit again.
	att := &scriptAttempter{outcomes: []bool{
		false, false, // emit #1
		false, false, // silent: counter at 3 then 4
		true,         // success at threshold 1 -> emit
		false, false, // emit #2
	}}
	p := fastProbe(1, 2)
	w := p.Watch(att, observe.ProbeMeta{Target: "t", Kind: "readiness"})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for i, want := range []Status{StatusFailure, StatusSuccess, StatusFailure} {
		got, err := w.Next(ctx)
		if err != nil {
			t.Fatalf("Next #%d: %v", i, err)
		}
		if got != want {
			t.Errorf("Next #%d = %v, want %v", i, got, want)
		}
	}

	if calls := att.callCount(); calls != 7 {
		t.Errorf("attempts = %d, want 7", calls)
	}
}

// slowAttempter succeeds after a fixed in-attempt delay.
type slowAttempter struct {
	delay time.Duration

	mu    sync.Mutex
	calls int
}

func (s *slowAttempter) Attempt(ctx context.Context, meta observe.ProbeMeta, method Method, timeout time.Duration) error {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	select {
	case <-time.After(s.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *slowAttempter) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestWatcher_DeadlineSpacingIgnoresAttemptDuration(t *testing.T) {
	const (
		period     = 50 * time.Millisecond
		attemptDur = 30 * time.Millisecond
	)

	att := &slowAttempter{delay: attemptDur}
	p := Probe{
		Method:           Exec{Command: []string{"true"}},
		Period:           period,
		Timeout:          time.Second,
		SuccessThreshold: 4,
		FailureThreshold: 4,
	}
	w := p.Watch(att, observe.ProbeMeta{Target: "t", Kind: "readiness"})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	start := time.Now()
	got, err := w.Next(ctx)
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if got != StatusSuccess {
		t.Fatalf("Next = %v, want StatusSuccess", got)
	}
	if calls := att.callCount(); calls != 4 {
		t.Errorf("attempts = %d, want 4", calls)
	}

	// Deadlines advance by one period from the previous deadline, so the
	// attempts start at 0, 50, 100 and 150ms no matter how long each one
	// runs; the fourth completes around 180ms. A schedule resampled from
	// "now" after each attempt would stretch toward 4 x (period + attempt
	// duration), well past 250ms.
	if elapsed < 3*period {
		t.Errorf("emitted after %v, want >= %v", elapsed, 3*period)
	}
	if elapsed > 250*time.Millisecond {
		t.Errorf("emitted after %v, want < 250ms: attempt duration leaked into the schedule", elapsed)
	}
}

func TestWatcher_InitialDelay(t *testing.T) {
	att := &scriptAttempter{outcomes: []bool{true}}
	p := fastProbe(1, 1)
	p.InitialDelay = 80 * time.Millisecond
	w := p.Watch(att, observe.ProbeMeta{Target: "t", Kind: "startup"})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	start := time.Now()
	if _, err := w.Next(ctx); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 80*time.Millisecond {
		t.Errorf("first attempt after %v, want >= 80ms initial delay", elapsed)
	}
}

func TestWatcher_Cancellation(t *testing.T) {
	att := &scriptAttempter{outcomes: []bool{true}}
	p := fastProbe(100, 100) // thresholds never reached
	w := p.Watch(att, observe.ProbeMeta{Target: "t", Kind: "readiness"})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := w.Next(ctx)
		done <- err
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Next = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Next did not unblock after cancellation")
	}
}

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusSuccess, "success"},
		{StatusFailure, "failure"},
		{Status(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.status.String(); got != tt.want {
				t.Errorf("Status.String() = %v, want %v", got, tt.want)
			}
		})
	}
}
