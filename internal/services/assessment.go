package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/careerpath/careerpath-backend/internal/data/repos"
	types "github.com/careerpath/careerpath-backend/internal/domain"
	domainagg "github.com/careerpath/careerpath-backend/internal/domain/aggregates"
	"github.com/careerpath/careerpath-backend/internal/modules/assessment"
	"github.com/careerpath/careerpath-backend/internal/modules/clarity"
	"github.com/careerpath/careerpath-backend/internal/modules/questionnaire"
	"github.com/careerpath/careerpath-backend/internal/modules/quota"
	"github.com/careerpath/careerpath-backend/internal/observability"
	"github.com/careerpath/careerpath-backend/internal/platform/apierr"
	"github.com/careerpath/careerpath-backend/internal/platform/ctxutil"
	"github.com/careerpath/careerpath-backend/internal/platform/dbctx"
	"github.com/careerpath/careerpath-backend/internal/platform/logger"
)

// ResultView is an assessment split by recommendation category.
type ResultView struct {
	ID        uuid.UUID              `json:"id"`
	Summary   string                 `json:"analysis"`
	CreatedAt time.Time              `json:"created_at"`
	Careers   []types.Recommendation `json:"careers"`
	Degrees   []types.Recommendation `json:"degrees"`
}

// HistoryEntry carries an assessment with its best recommendation only.
type HistoryEntry struct {
	ID              uuid.UUID              `json:"id"`
	Summary         string                 `json:"result_summary"`
	CreatedAt       time.Time              `json:"created_at"`
	Recommendations []types.Recommendation `json:"recommendations"`
}

type AssessmentService interface {
	Questions() []questionnaire.Question
	SubmitQuiz(ctx context.Context, answers map[string]any) (*types.AssessmentRecord, error)
	GetResult(ctx context.Context, id uuid.UUID) (*ResultView, error)
	History(ctx context.Context) ([]HistoryEntry, error)
}

type assessmentService struct {
	log         *logger.Logger
	catalog     *questionnaire.Catalog
	analyzer    *assessment.Analyzer
	assessments repos.AssessmentRepo
	aggregate   domainagg.AssessmentAggregate
	policy      quota.Policy
}

func NewAssessmentService(
	log *logger.Logger,
	catalog *questionnaire.Catalog,
	analyzer *assessment.Analyzer,
	assessments repos.AssessmentRepo,
	aggregate domainagg.AssessmentAggregate,
	policy quota.Policy,
) AssessmentService {
	return &assessmentService{
		log:         log.With("service", "AssessmentService"),
		catalog:     catalog,
		analyzer:    analyzer,
		assessments: assessments,
		aggregate:   aggregate,
		policy:      policy,
	}
}

func (s *assessmentService) Questions() []questionnaire.Question {
	return s.catalog.Questions
}

// SubmitQuiz checks the quota before spending a model call, then writes the
// assessment through the aggregate, which checks it again under the owner lock.
func (s *assessmentService) SubmitQuiz(ctx context.Context, answers map[string]any) (*types.AssessmentRecord, error) {
	normalized, err := s.catalog.Normalize(answers)
	if err != nil {
		return nil, apierr.Validation(err)
	}
	owner := ctxutil.OwnerID(ctx)
	limit := s.policy.LimitFor(quota.ResourceAssessment)

	if owner != nil {
		count, err := s.assessments.CountByUser(dbctx.Context{Ctx: ctx}, *owner)
		if err != nil {
			return nil, fmt.Errorf("count assessments: %w", err)
		}
		if d := quota.Check(owner, string(quota.ResourceAssessment), count, limit); !d.Allowed {
			observability.Current().IncQuotaDenied(string(quota.ResourceAssessment))
			s.log.Info("assessment quota reached", "user_id", *owner, "count", count)
			return nil, d.Err()
		}
	}

	outcome, err := s.analyzer.Analyze(ctx, normalized)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(normalized)
	if err != nil {
		return nil, fmt.Errorf("encode answers: %w", err)
	}
	res, err := s.aggregate.Create(ctx, domainagg.CreateAssessmentInput{
		OwnerID:         owner,
		Answers:         datatypes.JSON(raw),
		Summary:         outcome.Summary,
		Recommendations: outcome.Recommendations,
		Limit:           limit,
	})
	if err != nil {
		if domainagg.IsCode(err, domainagg.CodeQuotaExceeded) {
			observability.Current().IncQuotaDenied(string(quota.ResourceAssessment))
		}
		return nil, mapAggregateError(err)
	}
	s.log.Info("assessment created", "assessment_id", res.Record.ID, "recommendations", len(res.Record.Recommendations))
	return res.Record, nil
}

// GetResult serves guest results to anyone holding the id. Owned results are
// visible to their owner only; others get not found.
func (s *assessmentService) GetResult(ctx context.Context, id uuid.UUID) (*ResultView, error) {
	rec, err := s.assessments.GetByID(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		return nil, fmt.Errorf("load assessment: %w", err)
	}
	if rec == nil {
		return nil, apierr.NotFound("assessment")
	}
	if rec.UserID != nil {
		owner := ctxutil.OwnerID(ctx)
		if owner == nil || *owner != *rec.UserID {
			return nil, apierr.NotFound("assessment")
		}
	}
	return &ResultView{
		ID:        rec.ID,
		Summary:   rec.ResultSummary,
		CreatedAt: rec.CreatedAt,
		Careers:   rec.ByType(types.RecommendationCareer),
		Degrees:   rec.ByType(types.RecommendationDegree),
	}, nil
}

func (s *assessmentService) History(ctx context.Context) ([]HistoryEntry, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	records, err := s.assessments.ListByUser(dbctx.Context{Ctx: ctx}, userID, 0)
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	out := make([]HistoryEntry, 0, len(records))
	for _, rec := range records {
		entry := HistoryEntry{
			ID:              rec.ID,
			Summary:         rec.ResultSummary,
			CreatedAt:       rec.CreatedAt,
			Recommendations: []types.Recommendation{},
		}
		if top, ok := clarity.TopRecommendation(rec); ok {
			entry.Recommendations = append(entry.Recommendations, top)
		}
		out = append(out, entry)
	}
	return out, nil
}
