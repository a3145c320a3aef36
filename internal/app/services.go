package app

import (
	"gorm.io/gorm"

	"github.com/careerpath/careerpath-backend/internal/data/aggregates"
	"github.com/careerpath/careerpath-backend/internal/modules/assessment"
	"github.com/careerpath/careerpath-backend/internal/modules/notify"
	"github.com/careerpath/careerpath-backend/internal/modules/questionnaire"
	"github.com/careerpath/careerpath-backend/internal/observability"
	"github.com/careerpath/careerpath-backend/internal/platform/logger"
	"github.com/careerpath/careerpath-backend/internal/services"
)

type Services struct {
	Auth          services.AuthService
	User          services.UserService
	Assessment    services.AssessmentService
	SavedResource services.SavedResourceService
	Dashboard     services.DashboardService
	Notification  services.NotificationService
	Waitlist      services.WaitlistService
	Contact       services.ContactService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, clients Clients) Services {
	log.Info("Wiring services...")

	base := aggregates.BaseDeps{
		DB:    db,
		Log:   log,
		Hooks: aggregates.NewObservabilityHooks(observability.Current()),
	}
	assessmentAgg := aggregates.NewAssessmentAggregate(aggregates.AssessmentAggregateDeps{
		BaseDeps:    base,
		Assessments: reposet.Assessment,
	})
	savedAgg := aggregates.NewSavedResourceAggregate(aggregates.SavedResourceAggregateDeps{
		BaseDeps: base,
		Saved:    reposet.SavedResource,
	})

	tracker := notify.NewTracker(clients.NotifyStore, log)
	notifications := services.NewNotificationService(log, tracker, reposet.User, reposet.Assessment)
	analyzer := assessment.NewAnalyzer(clients.Gemini, log)

	return Services{
		Auth: services.NewAuthService(db, log, reposet.User, reposet.UserToken,
			cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
		User:          services.NewUserService(db, log, reposet.User),
		Assessment:    services.NewAssessmentService(log, questionnaire.Default(), analyzer, reposet.Assessment, assessmentAgg, cfg.Quota),
		SavedResource: services.NewSavedResourceService(log, reposet.SavedResource, savedAgg, notifications, cfg.Quota),
		Dashboard:     services.NewDashboardService(log, reposet.Assessment, reposet.SavedResource),
		Notification:  notifications,
		Waitlist:      services.NewWaitlistService(log, reposet.Waitlist),
		Contact:       services.NewContactService(log, clients.Mailer, cfg.ContactEmail),
	}
}
