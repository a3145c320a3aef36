package saved

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/careerpath/careerpath-backend/internal/domain"
	"github.com/careerpath/careerpath-backend/internal/platform/dbctx"
	"github.com/careerpath/careerpath-backend/internal/platform/logger"
)

type SavedResourceRepo interface {
	// FindUnique returns nil, nil when (user, resource) is not saved.
	FindUnique(dbc dbctx.Context, userID uuid.UUID, resourceID string) (*types.SavedResource, error)
	CountByUserAndType(dbc dbctx.Context, userID uuid.UUID, t types.RecommendationType) (int64, error)
	CountByUser(dbc dbctx.Context, userID uuid.UUID) (int64, error)
	Create(dbc dbctx.Context, s *types.SavedResource) (*types.SavedResource, error)
	DeleteByID(dbc dbctx.Context, id uuid.UUID) error
	ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.SavedResource, error)
}

type savedResourceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSavedResourceRepo(db *gorm.DB, baseLog *logger.Logger) SavedResourceRepo {
	return &savedResourceRepo{db: db, log: baseLog.With("repo", "SavedResourceRepo")}
}

func (r *savedResourceRepo) tx(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx
	}
	return r.db
}

func (r *savedResourceRepo) FindUnique(dbc dbctx.Context, userID uuid.UUID, resourceID string) (*types.SavedResource, error) {
	var row types.SavedResource
	err := r.tx(dbc).WithContext(dbc.Ctx).
		Where("user_id = ? AND resource_id = ?", userID, resourceID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *savedResourceRepo) CountByUserAndType(dbc dbctx.Context, userID uuid.UUID, t types.RecommendationType) (int64, error) {
	var n int64
	if err := r.tx(dbc).WithContext(dbc.Ctx).
		Model(&types.SavedResource{}).
		Where("user_id = ? AND type = ?", userID, t).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *savedResourceRepo) CountByUser(dbc dbctx.Context, userID uuid.UUID) (int64, error) {
	var n int64
	if err := r.tx(dbc).WithContext(dbc.Ctx).
		Model(&types.SavedResource{}).
		Where("user_id = ?", userID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *savedResourceRepo) Create(dbc dbctx.Context, s *types.SavedResource) (*types.SavedResource, error) {
	if s == nil {
		return nil, errors.New("nil saved resource")
	}
	if err := r.tx(dbc).WithContext(dbc.Ctx).Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

func (r *savedResourceRepo) DeleteByID(dbc dbctx.Context, id uuid.UUID) error {
	return r.tx(dbc).WithContext(dbc.Ctx).
		Where("id = ?", id).
		Delete(&types.SavedResource{}).Error
}

func (r *savedResourceRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.SavedResource, error) {
	var results []*types.SavedResource
	if err := r.tx(dbc).WithContext(dbc.Ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
