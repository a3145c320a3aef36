package aggregates

import (
	"context"

	"github.com/careerpath/careerpath-backend/internal/data/repos"
	"github.com/careerpath/careerpath-backend/internal/domain"
	domainagg "github.com/careerpath/careerpath-backend/internal/domain/aggregates"
	"github.com/careerpath/careerpath-backend/internal/modules/quota"
	"github.com/careerpath/careerpath-backend/internal/platform/dbctx"
)

type AssessmentAggregateDeps struct {
	BaseDeps
	Assessments repos.AssessmentRepo
}

type assessmentAggregate struct {
	deps AssessmentAggregateDeps
}

func NewAssessmentAggregate(deps AssessmentAggregateDeps) domainagg.AssessmentAggregate {
	deps.BaseDeps = deps.BaseDeps.withDefaults()
	if deps.Assessments == nil && deps.DB != nil {
		deps.Assessments = repos.NewAssessmentRepo(deps.DB, deps.Log)
	}
	return &assessmentAggregate{deps: deps}
}

func (a *assessmentAggregate) Contract() domainagg.Contract {
	return domainagg.AssessmentAggregateContract
}

func (a *assessmentAggregate) Create(ctx context.Context, in domainagg.CreateAssessmentInput) (domainagg.CreateAssessmentResult, error) {
	const op = "assessment.create"
	var out domainagg.CreateAssessmentResult

	err := executeWrite(ctx, a.deps.BaseDeps, op, func(dbc dbctx.Context) error {
		if len(in.Recommendations) == 0 {
			return ValidationError("assessment needs at least one recommendation")
		}
		for i := range in.Recommendations {
			if err := in.Recommendations[i].Validate(); err != nil {
				return ValidationError(err.Error())
			}
		}
		decision, err := a.deps.Quota.Admit(dbc, in.OwnerID, string(quota.ResourceAssessment), in.Limit, func() (int64, error) {
			return a.deps.Assessments.CountByUser(dbc, *in.OwnerID)
		})
		if err != nil {
			return err
		}
		if !decision.Allowed {
			return QuotaExceededError(decision.Reason)
		}

		recs := make([]domain.Recommendation, len(in.Recommendations))
		copy(recs, in.Recommendations)
		rec := &domain.AssessmentRecord{
			UserID:          in.OwnerID,
			Answers:         in.Answers,
			ResultSummary:   in.Summary,
			Recommendations: recs,
		}
		created, err := a.deps.Assessments.Create(dbc, rec)
		if err != nil {
			return err
		}
		out = domainagg.CreateAssessmentResult{Record: created, PriorCount: decision.Count}
		return nil
	})
	if err != nil {
		return domainagg.CreateAssessmentResult{}, err
	}
	return out, nil
}
