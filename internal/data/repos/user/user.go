package user

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/careerpath/careerpath-backend/internal/domain"
	"github.com/careerpath/careerpath-backend/internal/platform/dbctx"
	"github.com/careerpath/careerpath-backend/internal/platform/logger"
)

type ProfileUpdate struct {
	FirstName   string
	LastName    string
	PhoneNumber *string
	Country     *string
	City        *string
	ZipCode     *string
}

type UserRepo interface {
	Create(dbc dbctx.Context, users []*types.User) ([]*types.User, error)
	GetByIDs(dbc dbctx.Context, userIDs []uuid.UUID) ([]*types.User, error)
	GetByEmail(dbc dbctx.Context, email string) (*types.User, error)
	EmailExists(dbc dbctx.Context, email string) (bool, error)
	UpdateProfile(dbc dbctx.Context, userID uuid.UUID, upd ProfileUpdate) error
	// BumpQuotaEpoch takes the per-user row lock used to serialize quota-limited
	// writes. It must run inside a transaction; rows reports whether the user exists.
	BumpQuotaEpoch(dbc dbctx.Context, userID uuid.UUID) (rows int64, err error)
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	repoLog := baseLog.With("repo", "UserRepo")
	return &userRepo{db: db, log: repoLog}
}

func (ur *userRepo) tx(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx
	}
	return ur.db
}

func (ur *userRepo) Create(dbc dbctx.Context, users []*types.User) ([]*types.User, error) {
	if len(users) == 0 {
		return []*types.User{}, nil
	}
	if err := ur.tx(dbc).WithContext(dbc.Ctx).Create(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (ur *userRepo) GetByIDs(dbc dbctx.Context, userIDs []uuid.UUID) ([]*types.User, error) {
	var results []*types.User
	if len(userIDs) == 0 {
		return results, nil
	}
	if err := ur.tx(dbc).WithContext(dbc.Ctx).
		Where("id IN ?", userIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetByEmail returns nil, nil when no user has the address.
func (ur *userRepo) GetByEmail(dbc dbctx.Context, email string) (*types.User, error) {
	var results []*types.User
	if err := ur.tx(dbc).WithContext(dbc.Ctx).
		Where("email = ?", email).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (ur *userRepo) EmailExists(dbc dbctx.Context, email string) (bool, error) {
	var count int64
	if err := ur.tx(dbc).WithContext(dbc.Ctx).
		Model(&types.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (ur *userRepo) UpdateProfile(dbc dbctx.Context, userID uuid.UUID, upd ProfileUpdate) error {
	fields := map[string]any{
		"first_name": upd.FirstName,
		"last_name":  upd.LastName,
	}
	if upd.PhoneNumber != nil {
		fields["phone_number"] = *upd.PhoneNumber
	}
	if upd.Country != nil {
		fields["country"] = *upd.Country
	}
	if upd.City != nil {
		fields["city"] = *upd.City
	}
	if upd.ZipCode != nil {
		fields["zip_code"] = *upd.ZipCode
	}
	return ur.tx(dbc).WithContext(dbc.Ctx).
		Model(&types.User{}).
		Where("id = ?", userID).
		Updates(fields).Error
}

func (ur *userRepo) BumpQuotaEpoch(dbc dbctx.Context, userID uuid.UUID) (int64, error) {
	res := ur.tx(dbc).WithContext(dbc.Ctx).
		Model(&types.User{}).
		Where("id = ?", userID).
		UpdateColumn("quota_epoch", gorm.Expr("quota_epoch + ?", 1))
	return res.RowsAffected, res.Error
}
