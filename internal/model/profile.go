package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserType string

const (
	UserTypeUser       UserType = "user"
	UserTypeKabadiwala UserType = "kabadiwalla"
	UserTypeRecycler   UserType = "recycler"
	UserTypeAdmin      UserType = "admin"
)

// Profile holds the per-user karma balance. The balance is only ever
// changed through the conditional add/deduct repository paths.
type Profile struct {
	ID          string    `gorm:"primaryKey;size:36"`
	Name        string    `gorm:"size:120;not null"`
	UserType    UserType  `gorm:"column:user_type;size:32;not null;default:user"`
	KarmaPoints int64     `gorm:"column:karma_points;not null;default:0"`
	Location    *string   `gorm:"size:255"`
	PhoneNumber *string   `gorm:"column:phone_number;size:32"`
	Bio         *string   `gorm:"type:text"`
	AvatarURL   *string   `gorm:"column:avatar_url;size:512"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Profile) TableName() string {
	return "profiles"
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
