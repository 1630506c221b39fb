package repository

import (
	"context"

	"github.com/ecokabadi/ewaste-backend/internal/model"
	"gorm.io/gorm"
)

type RedemptionRepository interface {
	Create(ctx context.Context, rec *model.Redemption) error
	FindByID(ctx context.Context, id string) (*model.Redemption, error)
	ListByUser(ctx context.Context, userID string) ([]model.Redemption, error)
	AdvanceStatus(ctx context.Context, id string, status model.RedemptionStatus) (int64, error)
	SetDB(db *gorm.DB)
}

type redemptionRepository struct {
	db *gorm.DB
}

func NewRedemptionRepository(db *gorm.DB) RedemptionRepository {
	return &redemptionRepository{db: db}
}

func (r *redemptionRepository) Create(ctx context.Context, rec *model.Redemption) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *redemptionRepository) FindByID(ctx context.Context, id string) (*model.Redemption, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var rec model.Redemption
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *redemptionRepository) ListByUser(ctx context.Context, userID string) ([]model.Redemption, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.Redemption
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// AdvanceStatus moves a pending record to a terminal status. Only the
// status column is touched; points_used stays as written at creation.
func (r *redemptionRepository) AdvanceStatus(ctx context.Context, id string, status model.RedemptionStatus) (int64, error) {
	if r.db == nil {
		return 0, ErrDBNotReady
	}
	res := r.db.WithContext(ctx).
		Model(&model.Redemption{}).
		Where("id = ? AND status = ?", id, model.RedemptionStatusPending).
		Update("status", status)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *redemptionRepository) SetDB(db *gorm.DB) {
	r.db = db
}
