package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WaitlistEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (WaitlistEntry) TableName() string { return "waitlist" }

func (w *WaitlistEntry) BeforeCreate(*gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
