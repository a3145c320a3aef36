package aggregates

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/careerpath/careerpath-backend/internal/domain"
)

var SavedResourceAggregateContract = Contract{
	Name:   "Saved.SavedResourceAggregate",
	Tables: []string{"saved_resource", "user"},
	Quota:  "saved_per_category",
	Notes:  "Owns the save toggle: unique (user, resource), per-category quota on save, no quota on unsave.",
}

// SavedResourceAggregate owns bookmark toggling.
//
// Write method failures return *aggregates.Error with codes:
// CodeValidation, CodeNotFound, CodeRetryable, CodeInternal.
// A quota denial is a result, not an error.
type SavedResourceAggregate interface {
	Aggregate

	// Toggle removes an existing bookmark or creates a new one when the quota allows.
	Toggle(ctx context.Context, in ToggleSaveInput) (ToggleSaveResult, error)
}

type ToggleSaveInput struct {
	UserID     uuid.UUID
	ResourceID string
	Type       domain.RecommendationType
	Title      string
	MatchScore int
	Data       datatypes.JSON
	// Limit is the per-category quota applied on save.
	Limit int
}

type ToggleOutcome string

const (
	ToggleSaved   ToggleOutcome = "saved"
	ToggleUnsaved ToggleOutcome = "unsaved"
	ToggleDenied  ToggleOutcome = "denied"
)

type ToggleSaveResult struct {
	Outcome ToggleOutcome
	// Reason is set on denial.
	Reason string
	Entry  *domain.SavedResource
	// Count is the category count seen before the decision.
	Count int64
}
