package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email       string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password    string    `gorm:"column:password" json:"-"`
	FirstName   string    `gorm:"not null;column:first_name" json:"first_name"`
	LastName    string    `gorm:"not null;column:last_name" json:"last_name"`
	PhoneNumber string    `gorm:"column:phone_number" json:"phone_number,omitempty"`
	Country     string    `gorm:"column:country" json:"country,omitempty"`
	City        string    `gorm:"column:city" json:"city,omitempty"`
	ZipCode     string    `gorm:"column:zip_code" json:"zip_code,omitempty"`

	// Bumped by the quota guard to serialize quota-limited writes per user.
	QuotaEpoch int64 `gorm:"not null;default:0;column:quota_epoch" json:"-"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string { return "user" }

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
