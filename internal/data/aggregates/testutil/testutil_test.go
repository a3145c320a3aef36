package testutil

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/careerpath/careerpath-backend/internal/data/aggregates"
	"github.com/careerpath/careerpath-backend/internal/platform/dbctx"
)

func TestHooksRecorderCountsPerOp(t *testing.T) {
	h := &HooksRecorder{}
	h.Observe("saved.toggle", "success", time.Millisecond)
	h.Event("saved.toggle", aggregates.EventRetry)
	h.Event("saved.toggle", aggregates.EventRetry)
	h.Event("assessment.create", aggregates.EventConflict)

	if got := h.Count("saved.toggle", aggregates.EventRetry); got != 2 {
		t.Fatalf("retries: want=2 got=%d", got)
	}
	if got := h.Count("saved.toggle", aggregates.EventConflict); got != 0 {
		t.Fatalf("conflicts: want=0 got=%d", got)
	}
	w := h.Writes()
	if len(w) != 1 || w[0].Op != "saved.toggle" || w[0].Status != "success" {
		t.Fatalf("writes: got %+v", w)
	}
}

func TestScriptedTxRunnerConsumesScript(t *testing.T) {
	busy := errors.New("database is locked")
	r := &ScriptedTxRunner{Fail: []error{busy}}
	runs := 0
	body := func(dbctx.Context) error { runs++; return nil }

	if err := r.InTx(context.Background(), body); !errors.Is(err, busy) {
		t.Fatalf("first attempt: want busy got %v", err)
	}
	if err := r.InTx(context.Background(), body); err != nil {
		t.Fatalf("second attempt: %v", err)
	}
	begins, commits, rollbacks := r.Counts()
	if runs != 1 || begins != 2 || commits != 1 || rollbacks != 1 {
		t.Fatalf("runs=%d begins=%d commits=%d rollbacks=%d", runs, begins, commits, rollbacks)
	}
}

func TestScriptedTxRunnerRollsBackBodyError(t *testing.T) {
	r := &ScriptedTxRunner{}
	boom := errors.New("boom")
	if err := r.InTx(context.Background(), func(dbctx.Context) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("want boom got %v", err)
	}
	if _, commits, rollbacks := r.Counts(); commits != 0 || rollbacks != 1 {
		t.Fatalf("commits=%d rollbacks=%d", commits, rollbacks)
	}
}
