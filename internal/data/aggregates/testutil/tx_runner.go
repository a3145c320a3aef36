package testutil

import (
	"context"
	"sync"

	"github.com/careerpath/careerpath-backend/internal/data/aggregates"
	"github.com/careerpath/careerpath-backend/internal/platform/dbctx"
)

// ScriptedTxRunner fails transactions from a script without a database.
// Each InTx call pops the next entry of Fail; a non-nil entry aborts that
// attempt before fn runs. Once the script is exhausted fn runs through Next, or
// with no Tx when Next is nil, and its result decides commit or rollback.
type ScriptedTxRunner struct {
	mu   sync.Mutex
	Fail []error
	Next aggregates.TxRunner

	Begins    int
	Commits   int
	Rollbacks int
}

var _ aggregates.TxRunner = (*ScriptedTxRunner)(nil)

func (r *ScriptedTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	r.mu.Lock()
	r.Begins++
	var scripted error
	if len(r.Fail) > 0 {
		scripted, r.Fail = r.Fail[0], r.Fail[1:]
	}
	r.mu.Unlock()

	err := scripted
	switch {
	case err != nil || fn == nil:
	case r.Next != nil:
		err = r.Next.InTx(ctx, fn)
	default:
		err = fn(dbctx.Context{Ctx: ctx})
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.Rollbacks++
		return err
	}
	r.Commits++
	return nil
}

// Counts returns begins, commits and rollbacks under the lock.
func (r *ScriptedTxRunner) Counts() (begins, commits, rollbacks int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Begins, r.Commits, r.Rollbacks
}
