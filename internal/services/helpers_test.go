package services

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/careerpath/careerpath-backend/internal/data/aggregates"
	"github.com/careerpath/careerpath-backend/internal/data/repos"
	"github.com/careerpath/careerpath-backend/internal/data/repos/testutil"
	"github.com/careerpath/careerpath-backend/internal/modules/assessment"
	"github.com/careerpath/careerpath-backend/internal/modules/notify"
	"github.com/careerpath/careerpath-backend/internal/modules/questionnaire"
	"github.com/careerpath/careerpath-backend/internal/modules/quota"
	"github.com/careerpath/careerpath-backend/internal/platform/ctxutil"
	"github.com/careerpath/careerpath-backend/internal/platform/logger"
	"github.com/careerpath/careerpath-backend/internal/platform/sendgrid"
)

type fakeGenerator struct {
	mu    sync.Mutex
	calls int
	out   string
	err   error
}

func (f *fakeGenerator) GenerateJSON(context.Context, string, string, map[string]any) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.out, f.err
}

func (f *fakeGenerator) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeMailer struct {
	sent []sendgrid.SendEmailRequest
	err  error
}

func (m *fakeMailer) Send(_ context.Context, req sendgrid.SendEmailRequest) (*sendgrid.SendEmailResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.sent = append(m.sent, req)
	return &sendgrid.SendEmailResult{StatusCode: 202}, nil
}

func modelOutput(t *testing.T) string {
	t.Helper()
	rec := func(title, kind string, score float64) map[string]any {
		return map[string]any{
			"title":       title,
			"type":        kind,
			"matchScore":  score,
			"matchReason": "fits your answers",
			"overview":    "overview",
			"skills":      []string{"analysis"},
			"difficulty":  "Moderate",
			"futureScope": "High",
		}
	}
	raw, err := json.Marshal(map[string]any{
		"analysis": "You enjoy structured problem solving.",
		"recommendations": []any{
			rec("Data Scientist", "CAREER", 92),
			rec("UX Researcher", "CAREER", 81),
			rec("BSc Statistics", "DEGREE", 88),
		},
	})
	if err != nil {
		t.Fatalf("marshal model output: %v", err)
	}
	return "```json\n" + string(raw) + "\n```"
}

func validAnswers() map[string]any {
	return map[string]any{
		"interests":          "Technology & Coding",
		"work_style":         "Independently",
		"creativity_logic":   30,
		"risk_tolerance":     60,
		"social_interaction": 45,
	}
}

type testEnv struct {
	db            *gorm.DB
	gen           *fakeGenerator
	mailer        *fakeMailer
	store         *notify.MemoryStore
	now           time.Time
	users         repos.UserRepo
	auth          AuthService
	user          UserService
	assessments   AssessmentService
	saved         SavedResourceService
	dashboard     DashboardService
	notifications NotificationService
	waitlist      WaitlistService
	contact       ContactService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	env := &testEnv{db: db, gen: &fakeGenerator{}, mailer: &fakeMailer{}, store: notify.NewMemoryStore(), now: time.Now()}
	env.gen.out = modelOutput(t)

	userRepo := repos.NewUserRepo(db, log)
	tokenRepo := repos.NewUserTokenRepo(db, log)
	assessmentRepo := repos.NewAssessmentRepo(db, log)
	savedRepo := repos.NewSavedResourceRepo(db, log)
	env.users = userRepo

	base := aggregates.BaseDeps{DB: db, Log: log}
	assessmentAgg := aggregates.NewAssessmentAggregate(aggregates.AssessmentAggregateDeps{BaseDeps: base, Assessments: assessmentRepo})
	savedAgg := aggregates.NewSavedResourceAggregate(aggregates.SavedResourceAggregateDeps{BaseDeps: base, Saved: savedRepo})

	tracker := notify.NewTracker(env.store, log).WithClock(func() time.Time { return env.now })
	policy := quota.DefaultPolicy()

	env.auth = NewAuthService(db, log, userRepo, tokenRepo, "test-secret", time.Hour, 24*time.Hour)
	env.user = NewUserService(db, log, userRepo)
	env.notifications = NewNotificationService(log, tracker, userRepo, assessmentRepo)
	env.assessments = NewAssessmentService(log, questionnaire.Default(), assessment.NewAnalyzer(env.gen, log), assessmentRepo, assessmentAgg, policy)
	env.saved = NewSavedResourceService(log, savedRepo, savedAgg, env.notifications, policy)
	env.dashboard = NewDashboardService(log, assessmentRepo, savedRepo)
	env.waitlist = NewWaitlistService(log, repos.NewWaitlistRepo(db, log))
	env.contact = NewContactService(log, env.mailer, "team@careerpath.test")
	return env
}

func (e *testEnv) seedUser(t *testing.T, email string) uuid.UUID {
	t.Helper()
	u := testutil.SeedUser(t, context.Background(), e.db, email)
	return u.ID
}

func userCtx(userID uuid.UUID, clientID string) context.Context {
	return ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{UserID: userID, ClientID: clientID})
}

func testLogger(t *testing.T) *logger.Logger {
	return testutil.Logger(t)
}
