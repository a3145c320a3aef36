package aggregates

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/careerpath/careerpath-backend/internal/data/repos"
	domainagg "github.com/careerpath/careerpath-backend/internal/domain/aggregates"
	"github.com/careerpath/careerpath-backend/internal/platform/dbctx"
	"github.com/careerpath/careerpath-backend/internal/platform/logger"
)

const (
	defaultWriteAttempts = 3
	retryBackoff         = 25 * time.Millisecond
)

type BaseDeps struct {
	DB     *gorm.DB
	Log    *logger.Logger
	Runner TxRunner
	Hooks  Hooks
	Quota  QuotaGuard
	// Attempts bounds how often a retryable write is run. Zero means 3.
	Attempts int
}

func (d BaseDeps) withDefaults() BaseDeps {
	if d.Runner == nil {
		d.Runner = NewGormTxRunner(d.DB)
	}
	if d.Hooks == nil {
		d.Hooks = noopHooks{}
	}
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	if d.Quota.users == nil && d.DB != nil {
		d.Quota = NewQuotaGuard(repos.NewUserRepo(d.DB, d.Log))
	}
	if d.Attempts <= 0 {
		d.Attempts = defaultWriteAttempts
	}
	return d
}

// executeWrite runs fn in a transaction, rerunning it on retryable failures such
// as serialization errors or a busy SQLite file. fn must not keep state across
// attempts other than what it overwrites on success.
func executeWrite(ctx context.Context, deps BaseDeps, op string, fn func(dbc dbctx.Context) error) error {
	deps = deps.withDefaults()
	op = strings.TrimSpace(op)
	if op == "" {
		op = "aggregate.write"
	}
	start := time.Now()

	var err error
	for attempt := 1; ; attempt++ {
		err = MapError(op, deps.Runner.InTx(ctx, fn))
		if !domainagg.IsCode(err, domainagg.CodeRetryable) || attempt >= deps.Attempts {
			break
		}
		deps.Hooks.Event(op, EventRetry)
		deps.Log.Debug("retrying aggregate write", "op", op, "attempt", attempt, "error", err)
		if !sleepCtx(ctx, time.Duration(attempt)*retryBackoff) {
			break
		}
	}
	if domainagg.IsCode(err, domainagg.CodeConflict) {
		deps.Hooks.Event(op, EventConflict)
	}
	deps.Hooks.Observe(op, writeStatus(err), time.Since(start))
	return err
}

func writeStatus(err error) string {
	if err == nil {
		return "success"
	}
	if code := domainagg.CodeOf(err); code != "" {
		return string(code)
	}
	return string(domainagg.CodeInternal)
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
