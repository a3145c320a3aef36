package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"gorm.io/datatypes"

	"github.com/careerpath/careerpath-backend/internal/data/repos"
	types "github.com/careerpath/careerpath-backend/internal/domain"
	domainagg "github.com/careerpath/careerpath-backend/internal/domain/aggregates"
	"github.com/careerpath/careerpath-backend/internal/modules/notify"
	"github.com/careerpath/careerpath-backend/internal/modules/quota"
	"github.com/careerpath/careerpath-backend/internal/observability"
	"github.com/careerpath/careerpath-backend/internal/platform/apierr"
	"github.com/careerpath/careerpath-backend/internal/platform/dbctx"
	"github.com/careerpath/careerpath-backend/internal/platform/logger"
)

type ToggleSaveInput struct {
	ResourceID string          `json:"resourceId"`
	Type       string          `json:"type"`
	Title      string          `json:"title"`
	MatchScore float64         `json:"matchScore"`
	Data       json.RawMessage `json:"data"`
}

type SidebarStats struct {
	HasSavedItems bool `json:"hasSavedItems"`
}

type SavedResourceService interface {
	// Toggle reports whether the resource is saved afterwards.
	Toggle(ctx context.Context, in ToggleSaveInput) (bool, error)
	List(ctx context.Context) ([]*types.SavedResource, error)
	SidebarStats(ctx context.Context) (SidebarStats, error)
}

type savedResourceService struct {
	log           *logger.Logger
	saved         repos.SavedResourceRepo
	aggregate     domainagg.SavedResourceAggregate
	notifications NotificationService
	policy        quota.Policy
}

func NewSavedResourceService(
	log *logger.Logger,
	saved repos.SavedResourceRepo,
	aggregate domainagg.SavedResourceAggregate,
	notifications NotificationService,
	policy quota.Policy,
) SavedResourceService {
	return &savedResourceService{
		log:           log.With("service", "SavedResourceService"),
		saved:         saved,
		aggregate:     aggregate,
		notifications: notifications,
		policy:        policy,
	}
}

func (s *savedResourceService) Toggle(ctx context.Context, in ToggleSaveInput) (bool, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return false, err
	}
	resourceID := strings.TrimSpace(in.ResourceID)
	if resourceID == "" {
		return false, apierr.Validationf("resourceId is required")
	}
	kind, err := types.ParseRecommendationType(in.Type)
	if err != nil {
		return false, apierr.Validation(err)
	}
	if in.MatchScore < types.MinMatchScore || in.MatchScore > types.MaxMatchScore {
		return false, apierr.Validationf("matchScore must be within [%d,%d]", types.MinMatchScore, types.MaxMatchScore)
	}
	data := datatypes.JSON(in.Data)
	if len(data) == 0 {
		data = datatypes.JSON([]byte("null"))
	}

	res, err := s.aggregate.Toggle(ctx, domainagg.ToggleSaveInput{
		UserID:     userID,
		ResourceID: resourceID,
		Type:       kind,
		Title:      strings.TrimSpace(in.Title),
		MatchScore: int(in.MatchScore + 0.5),
		Data:       data,
		Limit:      s.policy.LimitFor(quota.ResourceSaved),
	})
	if err != nil {
		return false, mapAggregateError(err)
	}

	switch res.Outcome {
	case domainagg.ToggleDenied:
		observability.Current().IncQuotaDenied(string(quota.ResourceSaved))
		return false, apierr.QuotaExceeded(res.Reason)
	case domainagg.ToggleUnsaved:
		return false, nil
	}

	if s.notifications != nil {
		if err := s.notifications.Fire(ctx, notify.SaveTemplateFor(kind)); err != nil {
			s.log.Warn("save notification failed", "error", err)
		}
	}
	return true, nil
}

func (s *savedResourceService) List(ctx context.Context) ([]*types.SavedResource, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.saved.ListByUser(dbctx.Context{Ctx: ctx}, userID)
	if err != nil {
		return nil, fmt.Errorf("list saved resources: %w", err)
	}
	return items, nil
}

func (s *savedResourceService) SidebarStats(ctx context.Context) (SidebarStats, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return SidebarStats{}, err
	}
	n, err := s.saved.CountByUser(dbctx.Context{Ctx: ctx}, userID)
	if err != nil {
		return SidebarStats{}, fmt.Errorf("count saved resources: %w", err)
	}
	return SidebarStats{HasSavedItems: n > 0}, nil
}
