package aggregates

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/careerpath/careerpath-backend/internal/data/repos"
	"github.com/careerpath/careerpath-backend/internal/data/repos/testutil"
	domainagg "github.com/careerpath/careerpath-backend/internal/domain/aggregates"
	"github.com/careerpath/careerpath-backend/internal/platform/dbctx"
)

func TestQuotaGuardAdmit(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	u := testutil.SeedUser(t, ctx, db, "guard@example.com")
	guard := NewQuotaGuard(repos.NewUserRepo(db, testutil.Logger(t)))

	err := db.Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		owner := u.ID
		d, err := guard.Admit(dbc, &owner, "CAREER", 5, func() (int64, error) { return 4, nil })
		if err != nil {
			return err
		}
		if !d.Allowed {
			t.Fatalf("count 4 of 5: want allowed")
		}
		d, err = guard.Admit(dbc, &owner, "CAREER", 5, func() (int64, error) { return 5, nil })
		if err != nil {
			return err
		}
		if d.Allowed {
			t.Fatalf("count 5 of 5: want denied")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("tx: %v", err)
	}

	var epoch int64
	if err := db.Table("user").Select("quota_epoch").Where("id = ?", u.ID).Scan(&epoch).Error; err != nil {
		t.Fatalf("read epoch: %v", err)
	}
	if epoch != 2 {
		t.Fatalf("quota_epoch: want=2 got=%d", epoch)
	}
}

func TestQuotaGuardGuestSkipsLock(t *testing.T) {
	guard := QuotaGuard{}
	called := false
	d, err := guard.Admit(dbctx.Context{Ctx: context.Background()}, nil, "assessment", 3, func() (int64, error) {
		called = true
		return 99, nil
	})
	if err != nil {
		t.Fatalf("guest admit: %v", err)
	}
	if !d.Allowed || called {
		t.Fatalf("guest: want allowed without count, allowed=%v counted=%v", d.Allowed, called)
	}
}

func TestQuotaGuardUnknownOwner(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	guard := NewQuotaGuard(repos.NewUserRepo(db, testutil.Logger(t)))
	err := db.Transaction(func(tx *gorm.DB) error {
		return guard.Lock(dbctx.Context{Ctx: ctx, Tx: tx}, uuid.New())
	})
	if !domainagg.IsCode(MapError("guard", err), domainagg.CodeValidation) {
		t.Fatalf("unknown owner: want validation got=%v", err)
	}
}

func TestQuotaGuardRequiresTx(t *testing.T) {
	guard := NewQuotaGuard(repos.NewUserRepo(testutil.DB(t), testutil.Logger(t)))
	if err := guard.Lock(dbctx.Context{Ctx: context.Background()}, uuid.New()); err == nil {
		t.Fatalf("expected error without tx")
	}
}
