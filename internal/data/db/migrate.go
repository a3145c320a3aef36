package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/careerpath/careerpath-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(domain.Models()...)
}

// EnsureAssessmentConstraints adds the Postgres-side score bound and the history
// ordering index. Models validate scores too; this covers writes that bypass them.
func EnsureAssessmentConstraints(db *gorm.DB) error {
	if err := db.Exec(`
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1 FROM pg_constraint WHERE conname = 'chk_recommendation_match_score'
			) THEN
				ALTER TABLE recommendation
				ADD CONSTRAINT chk_recommendation_match_score
				CHECK (match_score BETWEEN 0 AND 100);
			END IF;
		END $$;
	`).Error; err != nil {
		return fmt.Errorf("create chk_recommendation_match_score: %w", err)
	}
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_assessment_session_user_created
		ON assessment_session (user_id, created_at DESC);
	`).Error; err != nil {
		return fmt.Errorf("create idx_assessment_session_user_created: %w", err)
	}
	return nil
}

func (s *Service) AutoMigrateAll() error {
	s.log.Info("Auto migrating tables...", "driver", s.driver)
	if err := AutoMigrateAll(s.db); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	if s.driver != DriverPostgres {
		return nil
	}
	if err := EnsureAssessmentConstraints(s.db); err != nil {
		s.log.Error("Assessment constraint migration failed", "error", err)
		return err
	}
	return nil
}
