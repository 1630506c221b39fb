package repository

import (
	"context"

	"github.com/ecokabadi/ewaste-backend/internal/model"
	"gorm.io/gorm"
)

type PickupRepository interface {
	Create(ctx context.Context, p *model.Pickup) error
	FindByID(ctx context.Context, id string) (*model.Pickup, error)
	ListByUser(ctx context.Context, userID string) ([]model.Pickup, error)
	ListByStatus(ctx context.Context, status model.PickupStatus, limit int) ([]model.Pickup, error)
	Update(ctx context.Context, p *model.Pickup) error
	MarkScheduledIfPending(ctx context.Context, id, kabadiwalaID string, date, pickupTime *string) (int64, error)
	MarkCompletedIfScheduled(ctx context.Context, id, kabadiwalaID string) (int64, error)
	Count(ctx context.Context) (int64, error)
	SetDB(db *gorm.DB)
}

type pickupRepository struct {
	db *gorm.DB
}

func NewPickupRepository(db *gorm.DB) PickupRepository {
	return &pickupRepository{db: db}
}

func (r *pickupRepository) Create(ctx context.Context, p *model.Pickup) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *pickupRepository) FindByID(ctx context.Context, id string) (*model.Pickup, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var p model.Pickup
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pickupRepository) ListByUser(ctx context.Context, userID string) ([]model.Pickup, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.Pickup
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *pickupRepository) ListByStatus(ctx context.Context, status model.PickupStatus, limit int) ([]model.Pickup, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var list []model.Pickup
	if err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at desc").
		Limit(limit).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *pickupRepository) Update(ctx context.Context, p *model.Pickup) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *pickupRepository) MarkScheduledIfPending(ctx context.Context, id, kabadiwalaID string, date, pickupTime *string) (int64, error) {
	if r.db == nil {
		return 0, ErrDBNotReady
	}
	updates := map[string]interface{}{
		"kabadiwala_id": kabadiwalaID,
		"status":        model.PickupStatusScheduled,
	}
	if date != nil {
		updates["pickup_date"] = *date
	}
	if pickupTime != nil {
		updates["pickup_time"] = *pickupTime
	}
	res := r.db.WithContext(ctx).
		Model(&model.Pickup{}).
		Where("id = ? AND status = ?", id, model.PickupStatusPending).
		Updates(updates)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// MarkCompletedIfScheduled is a guarded transition so a pickup can only
// be completed once, and only by the kabadiwalla it was assigned to.
func (r *pickupRepository) MarkCompletedIfScheduled(ctx context.Context, id, kabadiwalaID string) (int64, error) {
	if r.db == nil {
		return 0, ErrDBNotReady
	}
	res := r.db.WithContext(ctx).
		Model(&model.Pickup{}).
		Where("id = ? AND kabadiwala_id = ? AND status = ?", id, kabadiwalaID, model.PickupStatusScheduled).
		Update("status", model.PickupStatusCompleted)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *pickupRepository) Count(ctx context.Context) (int64, error) {
	if r.db == nil {
		return 0, ErrDBNotReady
	}
	var cnt int64
	if err := r.db.WithContext(ctx).Model(&model.Pickup{}).Count(&cnt).Error; err != nil {
		return 0, err
	}
	return cnt, nil
}

func (r *pickupRepository) SetDB(db *gorm.DB) {
	r.db = db
}
