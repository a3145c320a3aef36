package assessment

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/careerpath/careerpath-backend/internal/domain"
	"github.com/careerpath/careerpath-backend/internal/platform/dbctx"
	"github.com/careerpath/careerpath-backend/internal/platform/logger"
)

type AssessmentRepo interface {
	// Create writes the record and its recommendations. Callers wrap it in a
	// transaction so readers never observe a partial write.
	Create(dbc dbctx.Context, rec *types.AssessmentRecord) (*types.AssessmentRecord, error)
	// GetByID returns nil, nil when the id is unknown.
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.AssessmentRecord, error)
	// ListByUser returns newest first with recommendations loaded. limit <= 0 means all.
	ListByUser(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*types.AssessmentRecord, error)
	CountByUser(dbc dbctx.Context, userID uuid.UUID) (int64, error)
}

type assessmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssessmentRepo(db *gorm.DB, baseLog *logger.Logger) AssessmentRepo {
	return &assessmentRepo{db: db, log: baseLog.With("repo", "AssessmentRepo")}
}

func (r *assessmentRepo) tx(dbc dbctx.Context) *gorm.DB {
	if dbc.Tx != nil {
		return dbc.Tx
	}
	return r.db
}

func orderedRecommendations(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func (r *assessmentRepo) Create(dbc dbctx.Context, rec *types.AssessmentRecord) (*types.AssessmentRecord, error) {
	if rec == nil {
		return nil, errors.New("nil assessment")
	}
	for i := range rec.Recommendations {
		rec.Recommendations[i].Position = i
	}
	if err := r.tx(dbc).WithContext(dbc.Ctx).Create(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *assessmentRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.AssessmentRecord, error) {
	var rec types.AssessmentRecord
	err := r.tx(dbc).WithContext(dbc.Ctx).
		Preload("Recommendations", orderedRecommendations).
		Where("id = ?", id).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *assessmentRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*types.AssessmentRecord, error) {
	q := r.tx(dbc).WithContext(dbc.Ctx).
		Preload("Recommendations", orderedRecommendations).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var results []*types.AssessmentRecord
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *assessmentRepo) CountByUser(dbc dbctx.Context, userID uuid.UUID) (int64, error) {
	var n int64
	if err := r.tx(dbc).WithContext(dbc.Ctx).
		Model(&types.AssessmentRecord{}).
		Where("user_id = ?", userID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
