package aggregates

import (
	"github.com/google/uuid"

	"github.com/careerpath/careerpath-backend/internal/data/repos"
	"github.com/careerpath/careerpath-backend/internal/modules/quota"
	"github.com/careerpath/careerpath-backend/internal/platform/dbctx"
)

// QuotaGuard serializes quota-limited writes per owner. Lock bumps the owner's
// quota_epoch, which takes the row lock on Postgres and the write lock on SQLite,
// so a count taken after Lock stays valid until the transaction ends.
type QuotaGuard struct {
	users repos.UserRepo
}

func NewQuotaGuard(users repos.UserRepo) QuotaGuard {
	return QuotaGuard{users: users}
}

func (g QuotaGuard) Lock(dbc dbctx.Context, ownerID uuid.UUID) error {
	if ownerID == uuid.Nil {
		return ValidationError("owner id is required for quota lock")
	}
	if dbc.Tx == nil {
		return ValidationError("quota lock requires a transaction")
	}
	if g.users == nil {
		return ValidationError("quota guard has no user repo")
	}
	rows, err := g.users.BumpQuotaEpoch(dbc, ownerID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ValidationError("unknown owner " + ownerID.String())
	}
	return nil
}

// Admit locks the owner, counts, and applies the quota rule. Guests are admitted
// without locking.
func (g QuotaGuard) Admit(dbc dbctx.Context, ownerID *uuid.UUID, category string, limit int, count func() (int64, error)) (quota.Decision, error) {
	if ownerID == nil || *ownerID == uuid.Nil {
		return quota.Check(nil, category, 0, limit), nil
	}
	if err := g.Lock(dbc, *ownerID); err != nil {
		return quota.Decision{}, err
	}
	n, err := count()
	if err != nil {
		return quota.Decision{}, err
	}
	return quota.Check(ownerID, category, n, limit), nil
}
