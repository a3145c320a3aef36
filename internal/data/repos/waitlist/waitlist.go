package waitlist

import (
	"gorm.io/gorm"

	types "github.com/careerpath/careerpath-backend/internal/domain"
	"github.com/careerpath/careerpath-backend/internal/platform/dbctx"
	"github.com/careerpath/careerpath-backend/internal/platform/logger"
)

type WaitlistRepo interface {
	EmailExists(dbc dbctx.Context, email string) (bool, error)
	Create(dbc dbctx.Context, e *types.WaitlistEntry) (*types.WaitlistEntry, error)
}

type waitlistRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWaitlistRepo(db *gorm.DB, baseLog *logger.Logger) WaitlistRepo {
	return &waitlistRepo{db: db, log: baseLog.With("repo", "WaitlistRepo")}
}

func (r *waitlistRepo) tx(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx
	}
	return r.db
}

func (r *waitlistRepo) EmailExists(dbc dbctx.Context, email string) (bool, error) {
	var n int64
	if err := r.tx(dbc).WithContext(dbc.Ctx).
		Model(&types.WaitlistEntry{}).
		Where("email = ?", email).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *waitlistRepo) Create(dbc dbctx.Context, e *types.WaitlistEntry) (*types.WaitlistEntry, error) {
	if err := r.tx(dbc).WithContext(dbc.Ctx).Create(e).Error; err != nil {
		return nil, err
	}
	return e, nil
}
