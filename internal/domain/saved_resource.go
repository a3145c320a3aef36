package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SavedResource is a bookmark of a recommendation-shaped payload, unique per (user, resource).
type SavedResource struct {
	ID         uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_saved_resource_user_resource,priority:1;index:idx_saved_resource_user_type,priority:1" json:"user_id"`
	ResourceID string             `gorm:"not null;uniqueIndex:idx_saved_resource_user_resource,priority:2;column:resource_id" json:"resource_id"`
	Type       RecommendationType `gorm:"type:varchar(16);not null;index:idx_saved_resource_user_type,priority:2;column:type" json:"type"`
	Title      string             `gorm:"not null;column:title" json:"title"`
	MatchScore int                `gorm:"not null;default:0;column:match_score" json:"match_score"`
	Data       datatypes.JSON     `gorm:"column:data" json:"data"`
	CreatedAt  time.Time          `gorm:"not null;index" json:"created_at"`
}

func (SavedResource) TableName() string { return "saved_resource" }

func (s *SavedResource) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
