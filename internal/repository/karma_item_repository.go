package repository

import (
	"context"

	"github.com/ecokabadi/ewaste-backend/internal/model"
	"gorm.io/gorm"
)

type KarmaItemRepository interface {
	Create(ctx context.Context, item *model.KarmaItem) error
	FindByID(ctx context.Context, id string) (*model.KarmaItem, error)
	List(ctx context.Context) ([]model.KarmaItem, error)
	Update(ctx context.Context, item *model.KarmaItem) error
	SetDB(db *gorm.DB)
}

type karmaItemRepository struct {
	db *gorm.DB
}

func NewKarmaItemRepository(db *gorm.DB) KarmaItemRepository {
	return &karmaItemRepository{db: db}
}

func (r *karmaItemRepository) Create(ctx context.Context, item *model.KarmaItem) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *karmaItemRepository) FindByID(ctx context.Context, id string) (*model.KarmaItem, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var item model.KarmaItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *karmaItemRepository) List(ctx context.Context) ([]model.KarmaItem, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var items []model.KarmaItem
	if err := r.db.WithContext(ctx).
		Order("points asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *karmaItemRepository) Update(ctx context.Context, item *model.KarmaItem) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *karmaItemRepository) SetDB(db *gorm.DB) {
	r.db = db
}
