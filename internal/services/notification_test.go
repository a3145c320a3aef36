package services

import (
	"context"
	"testing"

	"github.com/careerpath/careerpath-backend/internal/modules/notify"
	"github.com/careerpath/careerpath-backend/internal/platform/apierr"
)

func TestNotificationSyncFiresOnce(t *testing.T) {
	env := newTestEnv(t)
	userID := env.seedUser(t, "fresh@example.com")
	ctx := userCtx(userID, "tab-1")

	state, err := env.notifications.Sync(ctx)
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if len(state.Items) != 1 || state.Items[0].ID != notify.OnboardingWelcome.ID || state.UnreadCount != 1 {
		t.Fatalf("first sync: %+v", state)
	}

	if _, err := env.assessments.SubmitQuiz(ctx, validAnswers()); err != nil {
		t.Fatalf("SubmitQuiz: %v", err)
	}
	state, err = env.notifications.Sync(ctx)
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if len(state.Items) != 2 || state.Items[0].ID != notify.MilestoneFirstQuiz.ID {
		t.Fatalf("milestone sync: %+v", state.Items)
	}

	again, err := env.notifications.Sync(ctx)
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if len(again.Items) != 2 {
		t.Fatalf("repeat sync added items: %d", len(again.Items))
	}
}

func TestNotificationMarkAllRead(t *testing.T) {
	env := newTestEnv(t)
	userID := env.seedUser(t, "reader@example.com")
	ctx := userCtx(userID, "tab-1")

	if _, err := env.notifications.Sync(ctx); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if err := env.notifications.Fire(ctx, notify.ActionSaveCareer); err != nil {
		t.Fatalf("Fire: %v", err)
	}
	state, err := env.notifications.MarkAllRead(ctx)
	if err != nil {
		t.Fatalf("MarkAllRead: %v", err)
	}
	if state.UnreadCount != 0 || len(state.Items) != 2 {
		t.Fatalf("after mark read: %+v", state)
	}

	// A second device keeps its own history.
	other, err := env.notifications.Sync(userCtx(userID, "tab-2"))
	if err != nil {
		t.Fatalf("Sync tab-2: %v", err)
	}
	if other.UnreadCount != 1 {
		t.Fatalf("tab-2 unread: want=1 got=%d", other.UnreadCount)
	}
}

func TestNotificationRequiresUser(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.notifications.Sync(context.Background()); !apierr.IsCode(err, apierr.CodeUnauthorized) {
		t.Fatalf("want unauthorized got=%v", err)
	}
}
