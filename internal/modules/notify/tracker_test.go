package notify

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/careerpath/careerpath-backend/internal/domain"
	"github.com/careerpath/careerpath-backend/internal/platform/logger"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestTracker(t *testing.T, c *clock) *Tracker {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return NewTracker(NewMemoryStore(), log).WithClock(c.now)
}

func countTemplate(items []Item, id string) int {
	n := 0
	for _, it := range items {
		if it.ID == id {
			n++
		}
	}
	return n
}

func TestOnboardingFiresOnceWithinWindow(t *testing.T) {
	signup := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	c := &clock{t: signup.Add(time.Hour)}
	tr := newTestTracker(t, c)
	ctx := context.Background()
	key := ClientKey(uuid.New(), "laptop")

	for i := 0; i < 5; i++ {
		c.t = c.t.Add(2 * time.Hour)
		st, err := tr.Sync(ctx, key, Facts{AccountCreatedAt: signup})
		if err != nil {
			t.Fatalf("Sync: %v", err)
		}
		if got := countTemplate(st.Items, OnboardingWelcome.ID); got != 1 {
			t.Fatalf("render %d: onboarding count want=1 got=%d", i, got)
		}
	}
}

func TestOnboardingNeverFiresAfterWindow(t *testing.T) {
	signup := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	c := &clock{t: signup.Add(NewUserWindow)}
	tr := newTestTracker(t, c)

	st, err := tr.Sync(context.Background(), ClientKey(uuid.New(), ""), Facts{AccountCreatedAt: signup})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if len(st.Items) != 0 {
		t.Fatalf("items: want=0 got=%d", len(st.Items))
	}
}

func TestMilestoneFiresOnceAfterFirstAssessment(t *testing.T) {
	c := &clock{t: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)}
	tr := newTestTracker(t, c)
	ctx := context.Background()
	key := ClientKey(uuid.New(), "phone")
	old := c.t.Add(-30 * 24 * time.Hour)

	st, err := tr.Sync(ctx, key, Facts{AccountCreatedAt: old, AssessmentCount: 0})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if len(st.Items) != 0 {
		t.Fatalf("before first quiz: want=0 items got=%d", len(st.Items))
	}

	for i := 0; i < 3; i++ {
		st, err = tr.Sync(ctx, key, Facts{AccountCreatedAt: old, AssessmentCount: i + 1})
		if err != nil {
			t.Fatalf("Sync: %v", err)
		}
	}
	if got := countTemplate(st.Items, MilestoneFirstQuiz.ID); got != 1 {
		t.Fatalf("milestone count: want=1 got=%d", got)
	}
}

func TestMilestoneIsPrependedAfterWelcome(t *testing.T) {
	now := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)
	items := Evaluate(nil, Facts{AccountCreatedAt: now.Add(-time.Hour), AssessmentCount: 1}, now)
	if len(items) != 2 {
		t.Fatalf("items: want=2 got=%d", len(items))
	}
	if items[0].ID != MilestoneFirstQuiz.ID || items[1].ID != OnboardingWelcome.ID {
		t.Fatalf("order: got=%s,%s", items[0].ID, items[1].ID)
	}
}

func TestTriggerActionRepeats(t *testing.T) {
	c := &clock{t: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)}
	tr := newTestTracker(t, c)
	ctx := context.Background()
	key := ClientKey(uuid.New(), "laptop")

	for i := 0; i < 3; i++ {
		c.t = c.t.Add(time.Second)
		if _, err := tr.Trigger(ctx, key, SaveTemplateFor(domain.RecommendationDegree)); err != nil {
			t.Fatalf("Trigger: %v", err)
		}
	}
	st, err := tr.List(ctx, key)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if got := countTemplate(st.Items, ActionSaveDegree.ID); got != 3 {
		t.Fatalf("degree saves: want=3 got=%d", got)
	}
	if st.UnreadCount != 3 {
		t.Fatalf("unread: want=3 got=%d", st.UnreadCount)
	}
	if st.Items[0].UniqueID == st.Items[1].UniqueID {
		t.Fatalf("unique ids should differ across triggers")
	}
}

func TestTriggerRejectsUnknownTemplate(t *testing.T) {
	tr := newTestTracker(t, &clock{t: time.Now()})
	if _, err := tr.Trigger(context.Background(), "k", Template{ID: "bogus"}); err == nil {
		t.Fatalf("Trigger: expected error for unknown template")
	}
}

func TestMarkAllReadKeepsOrderAndCount(t *testing.T) {
	c := &clock{t: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)}
	tr := newTestTracker(t, c)
	ctx := context.Background()
	key := ClientKey(uuid.New(), "laptop")

	if _, err := tr.Sync(ctx, key, Facts{AccountCreatedAt: c.t.Add(-time.Minute), AssessmentCount: 1}); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	c.t = c.t.Add(time.Second)
	before, err := tr.Trigger(ctx, key, ActionSaveCareer)
	if err != nil {
		t.Fatalf("Trigger: %v", err)
	}

	after, err := tr.MarkAllRead(ctx, key)
	if err != nil {
		t.Fatalf("MarkAllRead: %v", err)
	}
	if len(after.Items) != len(before.Items) {
		t.Fatalf("count: want=%d got=%d", len(before.Items), len(after.Items))
	}
	for i := range after.Items {
		if after.Items[i].UniqueID != before.Items[i].UniqueID {
			t.Fatalf("order changed at %d", i)
		}
		if !after.Items[i].IsRead {
			t.Fatalf("item %d still unread", i)
		}
	}
	if after.UnreadCount != 0 {
		t.Fatalf("unread: want=0 got=%d", after.UnreadCount)
	}

	// read is monotonic: a later sync does not resurrect unread state
	again, err := tr.Sync(ctx, key, Facts{AccountCreatedAt: c.t.Add(-time.Minute), AssessmentCount: 2})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if again.UnreadCount != 0 {
		t.Fatalf("unread after sync: want=0 got=%d", again.UnreadCount)
	}
}

func TestStateIsScopedPerClient(t *testing.T) {
	c := &clock{t: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)}
	tr := newTestTracker(t, c)
	ctx := context.Background()
	user := uuid.New()

	if _, err := tr.Trigger(ctx, ClientKey(user, "laptop"), ActionSaveCareer); err != nil {
		t.Fatalf("Trigger: %v", err)
	}
	st, err := tr.List(ctx, ClientKey(user, "phone"))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(st.Items) != 0 {
		t.Fatalf("other device: want=0 items got=%d", len(st.Items))
	}
}

func TestTriggerSameInstantGivesDistinctIDs(t *testing.T) {
	c := &clock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	tr := newTestTracker(t, c)
	ctx := context.Background()
	key := ClientKey(uuid.New(), "phone")

	for i := 0; i < 2; i++ {
		if _, err := tr.Trigger(ctx, key, ActionSaveCareer); err != nil {
			t.Fatalf("Trigger: %v", err)
		}
	}
	st, err := tr.List(ctx, key)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(st.Items) != 2 {
		t.Fatalf("items: want=2 got=%d", len(st.Items))
	}
	if st.Items[0].UniqueID == st.Items[1].UniqueID {
		t.Fatalf("unique ids collide at one instant: %q", st.Items[0].UniqueID)
	}
}
