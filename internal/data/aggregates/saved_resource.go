package aggregates

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/careerpath/careerpath-backend/internal/data/repos"
	"github.com/careerpath/careerpath-backend/internal/domain"
	domainagg "github.com/careerpath/careerpath-backend/internal/domain/aggregates"
	"github.com/careerpath/careerpath-backend/internal/modules/quota"
	"github.com/careerpath/careerpath-backend/internal/platform/dbctx"
)

type SavedResourceAggregateDeps struct {
	BaseDeps
	Saved repos.SavedResourceRepo
}

type savedResourceAggregate struct {
	deps SavedResourceAggregateDeps
}

func NewSavedResourceAggregate(deps SavedResourceAggregateDeps) domainagg.SavedResourceAggregate {
	deps.BaseDeps = deps.BaseDeps.withDefaults()
	if deps.Saved == nil && deps.DB != nil {
		deps.Saved = repos.NewSavedResourceRepo(deps.DB, deps.Log)
	}
	return &savedResourceAggregate{deps: deps}
}

func (a *savedResourceAggregate) Contract() domainagg.Contract {
	return domainagg.SavedResourceAggregateContract
}

func (a *savedResourceAggregate) Toggle(ctx context.Context, in domainagg.ToggleSaveInput) (domainagg.ToggleSaveResult, error) {
	const op = "saved.toggle"
	var out domainagg.ToggleSaveResult
	in.ResourceID = strings.TrimSpace(in.ResourceID)

	err := executeWrite(ctx, a.deps.BaseDeps, op, func(dbc dbctx.Context) error {
		if err := validateToggle(in); err != nil {
			return err
		}
		existing, err := a.deps.Saved.FindUnique(dbc, in.UserID, in.ResourceID)
		if err != nil {
			return err
		}
		if existing != nil {
			if err := a.deps.Saved.DeleteByID(dbc, existing.ID); err != nil {
				return err
			}
			out = domainagg.ToggleSaveResult{Outcome: domainagg.ToggleUnsaved, Entry: existing}
			return nil
		}

		ownerID := in.UserID
		decision, err := a.deps.Quota.Admit(dbc, &ownerID, string(in.Type), in.Limit, func() (int64, error) {
			return a.deps.Saved.CountByUserAndType(dbc, in.UserID, in.Type)
		})
		if err != nil {
			return err
		}
		if quota.DecideToggle(false, decision) == quota.Denied {
			out = domainagg.ToggleSaveResult{Outcome: domainagg.ToggleDenied, Reason: decision.Reason, Count: decision.Count}
			return nil
		}

		entry := &domain.SavedResource{
			UserID:     in.UserID,
			ResourceID: in.ResourceID,
			Type:       in.Type,
			Title:      in.Title,
			MatchScore: in.MatchScore,
			Data:       in.Data,
		}
		created, dup, err := a.createOnce(dbc, entry)
		if err != nil {
			return err
		}
		out = domainagg.ToggleSaveResult{Outcome: domainagg.ToggleSaved, Entry: created, Count: decision.Count}
		if dup {
			a.deps.Log.Debug("duplicate save treated as saved", "user_id", in.UserID, "resource_id", in.ResourceID)
		}
		return nil
	})
	if err != nil {
		return domainagg.ToggleSaveResult{}, err
	}
	return out, nil
}

// createOnce inserts under a savepoint so a unique violation leaves the outer
// transaction usable. On a duplicate the stored row is returned.
func (a *savedResourceAggregate) createOnce(dbc dbctx.Context, entry *domain.SavedResource) (*domain.SavedResource, bool, error) {
	if dbc.Tx == nil {
		created, err := a.deps.Saved.Create(dbc, entry)
		return created, false, err
	}
	var created *domain.SavedResource
	err := dbc.Tx.Transaction(func(sp *gorm.DB) error {
		var err error
		created, err = a.deps.Saved.Create(dbctx.Context{Ctx: dbc.Ctx, Tx: sp}, entry)
		return err
	})
	if err == nil {
		return created, false, nil
	}
	if !IsUniqueViolation(err) {
		return nil, false, err
	}
	existing, findErr := a.deps.Saved.FindUnique(dbc, entry.UserID, entry.ResourceID)
	if findErr != nil {
		return nil, false, findErr
	}
	if existing == nil {
		return nil, false, errors.Join(ErrRetryable, err)
	}
	return existing, true, nil
}

func validateToggle(in domainagg.ToggleSaveInput) error {
	if in.UserID == uuid.Nil {
		return ValidationError("user id is required")
	}
	if in.ResourceID == "" {
		return ValidationError("resource id is required")
	}
	if _, err := domain.ParseRecommendationType(string(in.Type)); err != nil {
		return ValidationError(err.Error())
	}
	if in.Limit <= 0 {
		return ValidationError("limit must be positive")
	}
	return nil
}
