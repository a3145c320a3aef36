package aggregates

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/careerpath/careerpath-backend/internal/domain"
)

var AssessmentAggregateContract = Contract{
	Name:   "Assessment.AssessmentAggregate",
	Tables: []string{"assessment_session", "recommendation", "user"},
	Quota:  "assessments",
	Notes:  "Writes one assessment with all of its recommendations atomically; owners are quota-checked inside the same transaction.",
}

// AssessmentAggregate owns the assessment write.
//
// Write method failures return *aggregates.Error with codes:
// CodeValidation, CodeQuotaExceeded, CodeRetryable, CodeInternal.
type AssessmentAggregate interface {
	Aggregate

	// Create persists the record and its recommendations, or nothing.
	Create(ctx context.Context, in CreateAssessmentInput) (CreateAssessmentResult, error)
}

type CreateAssessmentInput struct {
	// OwnerID is nil for guests, who skip the quota.
	OwnerID         *uuid.UUID
	Answers         datatypes.JSON
	Summary         string
	Recommendations []domain.Recommendation
	Limit           int
}

type CreateAssessmentResult struct {
	Record *domain.AssessmentRecord
	// PriorCount is the owner's assessment count before this write.
	PriorCount int64
}
