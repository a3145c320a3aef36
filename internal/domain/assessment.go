package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AssessmentRecord is one completed questionnaire. UserID is nil for guest sessions.
type AssessmentRecord struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          *uuid.UUID       `gorm:"type:uuid;index;column:user_id" json:"user_id,omitempty"`
	Answers         datatypes.JSON   `gorm:"column:answers" json:"answers,omitempty"`
	ResultSummary   string           `gorm:"type:text;column:result_summary" json:"result_summary"`
	Recommendations []Recommendation `gorm:"foreignKey:AssessmentID;constraint:OnDelete:CASCADE" json:"recommendations"`
	CreatedAt       time.Time        `gorm:"not null;index" json:"created_at"`
}

func (AssessmentRecord) TableName() string { return "assessment_session" }

func (a *AssessmentRecord) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// ByType returns the recommendations of one category, preserving order.
func (a *AssessmentRecord) ByType(t RecommendationType) []Recommendation {
	out := make([]Recommendation, 0, len(a.Recommendations))
	for _, r := range a.Recommendations {
		if r.Type == t {
			out = append(out, r)
		}
	}
	return out
}
