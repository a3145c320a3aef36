package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/careerpath/careerpath-backend/internal/data/repos"
	"github.com/careerpath/careerpath-backend/internal/modules/notify"
	"github.com/careerpath/careerpath-backend/internal/observability"
	"github.com/careerpath/careerpath-backend/internal/platform/apierr"
	"github.com/careerpath/careerpath-backend/internal/platform/ctxutil"
	"github.com/careerpath/careerpath-backend/internal/platform/dbctx"
	"github.com/careerpath/careerpath-backend/internal/platform/logger"
)

// NotificationService scopes notification state to the calling client, keyed by
// user and the X-Client-Id of the device.
type NotificationService interface {
	Sync(ctx context.Context) (notify.State, error)
	Fire(ctx context.Context, tpl notify.Template) error
	MarkAllRead(ctx context.Context) (notify.State, error)
}

type notificationService struct {
	log         *logger.Logger
	tracker     *notify.Tracker
	userRepo    repos.UserRepo
	assessments repos.AssessmentRepo
}

func NewNotificationService(log *logger.Logger, tracker *notify.Tracker, userRepo repos.UserRepo, assessments repos.AssessmentRepo) NotificationService {
	return &notificationService{
		log:         log.With("service", "NotificationService"),
		tracker:     tracker,
		userRepo:    userRepo,
		assessments: assessments,
	}
}

func (ns *notificationService) Sync(ctx context.Context) (notify.State, error) {
	userID, key, err := clientKey(ctx)
	if err != nil {
		return notify.State{}, err
	}
	dbc := dbctx.Context{Ctx: ctx}
	users, err := ns.userRepo.GetByIDs(dbc, []uuid.UUID{userID})
	if err != nil {
		return notify.State{}, fmt.Errorf("load user: %w", err)
	}
	if len(users) == 0 {
		return notify.State{}, apierr.NotFound("user")
	}
	count, err := ns.assessments.CountByUser(dbc, userID)
	if err != nil {
		return notify.State{}, fmt.Errorf("count assessments: %w", err)
	}

	before, err := ns.tracker.List(ctx, key)
	if err != nil {
		return notify.State{}, fmt.Errorf("load notifications: %w", err)
	}
	state, err := ns.tracker.Sync(ctx, key, notify.Facts{
		AccountCreatedAt: users[0].CreatedAt,
		AssessmentCount:  int(count),
	})
	if err != nil {
		return notify.State{}, fmt.Errorf("sync notifications: %w", err)
	}
	if added := len(state.Items) - len(before.Items); added > 0 {
		for _, it := range state.Items[:added] {
			observability.Current().IncNotification(it.ID)
		}
	}
	return state, nil
}

func (ns *notificationService) Fire(ctx context.Context, tpl notify.Template) error {
	_, key, err := clientKey(ctx)
	if err != nil {
		return err
	}
	if _, err := ns.tracker.Trigger(ctx, key, tpl); err != nil {
		return fmt.Errorf("trigger %s: %w", tpl.ID, err)
	}
	observability.Current().IncNotification(tpl.ID)
	return nil
}

func (ns *notificationService) MarkAllRead(ctx context.Context) (notify.State, error) {
	_, key, err := clientKey(ctx)
	if err != nil {
		return notify.State{}, err
	}
	state, err := ns.tracker.MarkAllRead(ctx, key)
	if err != nil {
		return notify.State{}, fmt.Errorf("mark notifications read: %w", err)
	}
	return state, nil
}

func clientKey(ctx context.Context) (uuid.UUID, string, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return uuid.Nil, "", err
	}
	clientID := ""
	if rd := ctxutil.GetRequestData(ctx); rd != nil {
		clientID = rd.ClientID
	}
	return userID, notify.ClientKey(userID, clientID), nil
}
