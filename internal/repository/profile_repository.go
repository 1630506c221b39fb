package repository

import (
	"context"
	"errors"

	"github.com/ecokabadi/ewaste-backend/internal/model"
	"gorm.io/gorm"
)

var ErrDBNotReady = errors.New("database not initialized")

type ProfileRepository interface {
	Create(ctx context.Context, p *model.Profile) error
	FindByID(ctx context.Context, id string) (*model.Profile, error)
	Update(ctx context.Context, p *model.Profile) error
	UpdateUserType(ctx context.Context, id string, userType model.UserType) (int64, error)
	AddPoints(ctx context.Context, id string, points int64) (int64, error)
	CountByType(ctx context.Context) (map[model.UserType]int64, error)
	SumKarmaPoints(ctx context.Context) (int64, error)
	SetDB(db *gorm.DB)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, p *model.Profile) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *profileRepository) FindByID(ctx context.Context, id string) (*model.Profile, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var p model.Profile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepository) Update(ctx context.Context, p *model.Profile) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *profileRepository) UpdateUserType(ctx context.Context, id string, userType model.UserType) (int64, error) {
	if r.db == nil {
		return 0, ErrDBNotReady
	}
	res := r.db.WithContext(ctx).
		Model(&model.Profile{}).
		Where("id = ?", id).
		Update("user_type", userType)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// AddPoints credits karma atomically; balances are never written from a
// previously read value.
func (r *profileRepository) AddPoints(ctx context.Context, id string, points int64) (int64, error) {
	if r.db == nil {
		return 0, ErrDBNotReady
	}
	if points <= 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Model(&model.Profile{}).
		Where("id = ?", id).
		Update("karma_points", gorm.Expr("karma_points + ?", points))
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *profileRepository) CountByType(ctx context.Context) (map[model.UserType]int64, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var rows []struct {
		UserType model.UserType
		Cnt      int64
	}
	if err := r.db.WithContext(ctx).
		Model(&model.Profile{}).
		Select("user_type, COUNT(*) AS cnt").
		Group("user_type").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[model.UserType]int64, len(rows))
	for _, row := range rows {
		out[row.UserType] = row.Cnt
	}
	return out, nil
}

func (r *profileRepository) SumKarmaPoints(ctx context.Context) (int64, error) {
	if r.db == nil {
		return 0, ErrDBNotReady
	}
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&model.Profile{}).
		Select("COALESCE(SUM(karma_points), 0)").
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *profileRepository) SetDB(db *gorm.DB) {
	r.db = db
}
