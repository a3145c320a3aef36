package aggregates

import (
	"context"
	"errors"
	"testing"
	"time"

	domainagg "github.com/careerpath/careerpath-backend/internal/domain/aggregates"
	"github.com/careerpath/careerpath-backend/internal/platform/dbctx"
)

// flakyRunner fails the first n attempts with err, then runs fn.
type flakyRunner struct {
	n     int
	err   error
	calls int
}

func (r *flakyRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	r.calls++
	if r.calls <= r.n {
		return r.err
	}
	return fn(dbctx.Context{Ctx: ctx})
}

type spyHooks struct {
	statuses []string
	events   []Event
}

func (h *spyHooks) Observe(_ string, status string, _ time.Duration) {
	h.statuses = append(h.statuses, status)
}

func (h *spyHooks) Event(_ string, ev Event) { h.events = append(h.events, ev) }

func TestExecuteWriteRetriesTransientFailures(t *testing.T) {
	hooks := &spyHooks{}
	runner := &flakyRunner{n: 2, err: errors.New("database is locked")}
	ran := 0
	err := executeWrite(context.Background(), BaseDeps{Runner: runner, Hooks: hooks}, "saved.toggle", func(dbctx.Context) error {
		ran++
		return nil
	})
	if err != nil {
		t.Fatalf("executeWrite: %v", err)
	}
	if runner.calls != 3 || ran != 1 {
		t.Fatalf("attempts: want=3 got=%d body runs=%d", runner.calls, ran)
	}
	if len(hooks.events) != 2 || hooks.events[0] != EventRetry {
		t.Fatalf("events: got %v", hooks.events)
	}
	if len(hooks.statuses) != 1 || hooks.statuses[0] != "success" {
		t.Fatalf("statuses: got %v", hooks.statuses)
	}
}

func TestExecuteWriteGivesUpAfterAttempts(t *testing.T) {
	hooks := &spyHooks{}
	runner := &flakyRunner{n: 10, err: RetryableError("could not serialize access")}
	err := executeWrite(context.Background(), BaseDeps{Runner: runner, Hooks: hooks, Attempts: 2}, "assessment.create", func(dbctx.Context) error {
		return nil
	})
	if !domainagg.IsCode(err, domainagg.CodeRetryable) {
		t.Fatalf("want retryable got %v", err)
	}
	if runner.calls != 2 {
		t.Fatalf("attempts: want=2 got=%d", runner.calls)
	}
	if hooks.statuses[0] != string(domainagg.CodeRetryable) {
		t.Fatalf("status: got %v", hooks.statuses)
	}
}

func TestExecuteWriteDoesNotRetryDecisions(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code domainagg.ErrorCode
	}{
		{"validation", ValidationError("resource id is required"), domainagg.CodeValidation},
		{"quota", QuotaExceededError("limit reached"), domainagg.CodeQuotaExceeded},
		{"conflict", ConflictError("duplicate"), domainagg.CodeConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hooks := &spyHooks{}
			runner := &flakyRunner{}
			err := executeWrite(context.Background(), BaseDeps{Runner: runner, Hooks: hooks}, "op", func(dbctx.Context) error {
				return tc.err
			})
			if !domainagg.IsCode(err, tc.code) {
				t.Fatalf("code: want=%s got=%v", tc.code, err)
			}
			if runner.calls != 1 {
				t.Fatalf("attempts: want=1 got=%d", runner.calls)
			}
			if tc.code == domainagg.CodeConflict && (len(hooks.events) != 1 || hooks.events[0] != EventConflict) {
				t.Fatalf("conflict event: got %v", hooks.events)
			}
		})
	}
}

func TestExecuteWriteStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	runner := &flakyRunner{n: 10, err: context.Canceled}
	err := executeWrite(ctx, BaseDeps{Runner: runner}, "op", func(dbctx.Context) error { return nil })
	if err == nil || runner.calls != 1 {
		t.Fatalf("want single failed attempt, got calls=%d err=%v", runner.calls, err)
	}
}

func TestWriteStatus(t *testing.T) {
	if got := writeStatus(nil); got != "success" {
		t.Fatalf("nil: got %s", got)
	}
	if got := writeStatus(errors.New("plain")); got != "internal" {
		t.Fatalf("plain: got %s", got)
	}
	if got := writeStatus(MapError("op", ConflictError("x"))); got != "conflict" {
		t.Fatalf("conflict: got %s", got)
	}
}
