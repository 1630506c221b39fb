package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// KarmaItem is a redeemable reward in the karma store. Stock is nil for
// unlimited items; a tracked stock never goes below zero.
type KarmaItem struct {
	ID          string    `gorm:"primaryKey;size:36"`
	Title       string    `gorm:"size:120;not null"`
	Description *string   `gorm:"type:text"`
	Points      int64     `gorm:"not null"`
	Stock       *int64    `gorm:"column:stock"`
	ImageURL    *string   `gorm:"column:image_url;size:512"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (KarmaItem) TableName() string {
	return "karma_store"
}

func (i *KarmaItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
