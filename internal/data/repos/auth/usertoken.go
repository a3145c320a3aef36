package auth

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/careerpath/careerpath-backend/internal/domain"
	"github.com/careerpath/careerpath-backend/internal/platform/dbctx"
	"github.com/careerpath/careerpath-backend/internal/platform/logger"
)

// UserTokenRepo stores login sessions. One row pairs an access token with the
// refresh token that may replace it.
type UserTokenRepo interface {
	Create(dbc dbctx.Context, token *types.UserToken) error
	// FindByAccessToken and FindByRefreshToken return nil when no session matches.
	FindByAccessToken(dbc dbctx.Context, access string) (*types.UserToken, error)
	FindByRefreshToken(dbc dbctx.Context, refresh string) (*types.UserToken, error)
	// Consume deletes the session and reports whether this call removed it.
	// Two concurrent refreshes of one token see exactly one true.
	Consume(dbc dbctx.Context, id uuid.UUID) (bool, error)
	PruneExpired(dbc dbctx.Context, userID uuid.UUID, now time.Time) (int64, error)
}

type userTokenRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserTokenRepo(db *gorm.DB, baseLog *logger.Logger) UserTokenRepo {
	return &userTokenRepo{db: db, log: baseLog.With("repo", "UserTokenRepo")}
}

func (r *userTokenRepo) tx(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx.WithContext(dbc.Ctx)
	}
	return r.db.WithContext(dbc.Ctx)
}

func (r *userTokenRepo) Create(dbc dbctx.Context, token *types.UserToken) error {
	if token == nil {
		return errors.New("user token is nil")
	}
	return r.tx(dbc).Create(token).Error
}

func (r *userTokenRepo) FindByAccessToken(dbc dbctx.Context, access string) (*types.UserToken, error) {
	return r.findBy(dbc, "access_token", access)
}

func (r *userTokenRepo) FindByRefreshToken(dbc dbctx.Context, refresh string) (*types.UserToken, error) {
	return r.findBy(dbc, "refresh_token", refresh)
}

func (r *userTokenRepo) findBy(dbc dbctx.Context, column, value string) (*types.UserToken, error) {
	if value == "" {
		return nil, nil
	}
	var out types.UserToken
	err := r.tx(dbc).Where(column+" = ?", value).Take(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *userTokenRepo) Consume(dbc dbctx.Context, id uuid.UUID) (bool, error) {
	res := r.tx(dbc).Unscoped().Where("id = ?", id).Delete(&types.UserToken{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *userTokenRepo) PruneExpired(dbc dbctx.Context, userID uuid.UUID, now time.Time) (int64, error) {
	res := r.tx(dbc).Unscoped().
		Where("user_id = ? AND expires_at < ?", userID, now).
		Delete(&types.UserToken{})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected > 0 {
		r.log.Debug("pruned expired sessions", "user_id", userID, "count", res.RowsAffected)
	}
	return res.RowsAffected, nil
}
