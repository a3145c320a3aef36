// Package repos re-exports the per-table repositories so wiring code imports one package.
package repos

import (
	"gorm.io/gorm"

	"github.com/careerpath/careerpath-backend/internal/data/repos/assessment"
	"github.com/careerpath/careerpath-backend/internal/data/repos/auth"
	"github.com/careerpath/careerpath-backend/internal/data/repos/saved"
	"github.com/careerpath/careerpath-backend/internal/data/repos/user"
	"github.com/careerpath/careerpath-backend/internal/data/repos/waitlist"
	"github.com/careerpath/careerpath-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo
type ProfileUpdate = user.ProfileUpdate
type UserTokenRepo = auth.UserTokenRepo
type AssessmentRepo = assessment.AssessmentRepo
type SavedResourceRepo = saved.SavedResourceRepo
type WaitlistRepo = waitlist.WaitlistRepo

func NewUserRepo(db *gorm.DB, log *logger.Logger) UserRepo { return user.NewUserRepo(db, log) }

func NewUserTokenRepo(db *gorm.DB, log *logger.Logger) UserTokenRepo {
	return auth.NewUserTokenRepo(db, log)
}

func NewAssessmentRepo(db *gorm.DB, log *logger.Logger) AssessmentRepo {
	return assessment.NewAssessmentRepo(db, log)
}

func NewSavedResourceRepo(db *gorm.DB, log *logger.Logger) SavedResourceRepo {
	return saved.NewSavedResourceRepo(db, log)
}

func NewWaitlistRepo(db *gorm.DB, log *logger.Logger) WaitlistRepo {
	return waitlist.NewWaitlistRepo(db, log)
}
