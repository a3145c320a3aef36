package app

import (
	"gorm.io/gorm"

	"github.com/careerpath/careerpath-backend/internal/data/repos"
	"github.com/careerpath/careerpath-backend/internal/platform/logger"
)

type Repos struct {
	User          repos.UserRepo
	UserToken     repos.UserTokenRepo
	Assessment    repos.AssessmentRepo
	SavedResource repos.SavedResourceRepo
	Waitlist      repos.WaitlistRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:          repos.NewUserRepo(db, log),
		UserToken:     repos.NewUserTokenRepo(db, log),
		Assessment:    repos.NewAssessmentRepo(db, log),
		SavedResource: repos.NewSavedResourceRepo(db, log),
		Waitlist:      repos.NewWaitlistRepo(db, log),
	}
}
