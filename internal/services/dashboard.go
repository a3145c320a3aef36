package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/careerpath/careerpath-backend/internal/data/repos"
	types "github.com/careerpath/careerpath-backend/internal/domain"
	"github.com/careerpath/careerpath-backend/internal/modules/clarity"
	"github.com/careerpath/careerpath-backend/internal/platform/dbctx"
	"github.com/careerpath/careerpath-backend/internal/platform/logger"
)

type DashboardService interface {
	Summary(ctx context.Context) (clarity.Summary, error)
}

type dashboardService struct {
	log         *logger.Logger
	assessments repos.AssessmentRepo
	saved       repos.SavedResourceRepo
}

func NewDashboardService(log *logger.Logger, assessments repos.AssessmentRepo, saved repos.SavedResourceRepo) DashboardService {
	return &dashboardService{
		log:         log.With("service", "DashboardService"),
		assessments: assessments,
		saved:       saved,
	}
}

func (s *dashboardService) Summary(ctx context.Context) (clarity.Summary, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return clarity.Summary{}, err
	}
	var (
		records    []*types.AssessmentRecord
		savedCount int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = s.assessments.ListByUser(dbctx.Context{Ctx: gctx}, userID, 0)
		if err != nil {
			return fmt.Errorf("list assessments: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		savedCount, err = s.saved.CountByUser(dbctx.Context{Ctx: gctx}, userID)
		if err != nil {
			return fmt.Errorf("count saved resources: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return clarity.Summary{}, err
	}
	return clarity.Compute(records, int(savedCount)), nil
}
