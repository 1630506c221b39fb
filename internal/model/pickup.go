package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PickupStatus string

const (
	PickupStatusPending   PickupStatus = "pending"
	PickupStatusScheduled PickupStatus = "scheduled"
	PickupStatusCompleted PickupStatus = "completed"
)

// Pickup is an e-waste collection request. Points are estimated when the
// request is created and credited to the user once a kabadiwalla marks
// the pickup completed.
type Pickup struct {
	ID           string       `gorm:"primaryKey;size:36"`
	UserID       string       `gorm:"column:user_id;size:36;index;not null"`
	KabadiwalaID *string      `gorm:"column:kabadiwala_id;size:36;index"`
	Items        string       `gorm:"type:text;not null"`
	Location     string       `gorm:"size:255;not null"`
	Lat          *float64     `gorm:"column:lat"`
	Lng          *float64     `gorm:"column:lng"`
	PickupDate   *string      `gorm:"column:pickup_date;size:32"`
	PickupTime   *string      `gorm:"column:pickup_time;size:32"`
	Points       int64        `gorm:"not null;default:0"`
	Status       PickupStatus `gorm:"size:32;not null"`
	ImageURL     *string      `gorm:"column:image_url;size:512"`
	CreatedAt    time.Time    `gorm:"autoCreateTime"`
	UpdatedAt    time.Time    `gorm:"autoUpdateTime"`
}

func (Pickup) TableName() string {
	return "pickups"
}

func (p *Pickup) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
