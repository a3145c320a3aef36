package services

import (
	"context"
	"fmt"

	"github.com/careerpath/careerpath-backend/internal/data/repos"
	types "github.com/careerpath/careerpath-backend/internal/domain"
	"github.com/careerpath/careerpath-backend/internal/platform/dbctx"
	"github.com/careerpath/careerpath-backend/internal/platform/logger"
)

type WaitlistService interface {
	// Join reports whether the email was newly added.
	Join(ctx context.Context, email string) (bool, error)
}

type waitlistService struct {
	log  *logger.Logger
	repo repos.WaitlistRepo
}

func NewWaitlistService(log *logger.Logger, repo repos.WaitlistRepo) WaitlistService {
	return &waitlistService{log: log.With("service", "WaitlistService"), repo: repo}
}

func (s *waitlistService) Join(ctx context.Context, email string) (bool, error) {
	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return false, err
	}
	dbc := dbctx.Context{Ctx: ctx}
	exists, err := s.repo.EmailExists(dbc, email)
	if err != nil {
		return false, fmt.Errorf("check waitlist: %w", err)
	}
	if exists {
		return false, nil
	}
	if _, err := s.repo.Create(dbc, &types.WaitlistEntry{Email: email}); err != nil {
		if isDuplicate(err) {
			return false, nil
		}
		return false, fmt.Errorf("join waitlist: %w", err)
	}
	return true, nil
}
