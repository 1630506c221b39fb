package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RedemptionStatus string

const (
	RedemptionStatusPending   RedemptionStatus = "pending"
	RedemptionStatusCompleted RedemptionStatus = "completed"
	RedemptionStatusRejected  RedemptionStatus = "rejected"
)

// Redemption records a karma-store claim. PointsUsed snapshots the item
// cost at redemption time and is immutable afterwards, even if the
// catalog price changes.
type Redemption struct {
	ID         string           `gorm:"primaryKey;size:36"`
	UserID     string           `gorm:"column:user_id;size:36;index;not null"`
	ItemID     string           `gorm:"column:item_id;size:36;index;not null"`
	PointsUsed int64            `gorm:"column:points_used;not null"`
	Status     RedemptionStatus `gorm:"size:32;not null"`
	CreatedAt  time.Time        `gorm:"autoCreateTime"`
	UpdatedAt  time.Time        `gorm:"autoUpdateTime"`
}

func (Redemption) TableName() string {
	return "redemptions"
}

func (r *Redemption) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
