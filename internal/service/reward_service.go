package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ecokabadi/ewaste-backend/internal/model"
	"github.com/ecokabadi/ewaste-backend/internal/repository"
	"gorm.io/gorm"
)

// RewardInput carries the admin-editable fields of a karma-store item.
type RewardInput struct {
	Title       string
	Description *string
	Points      int64
	Stock       *int64
	ImageURL    *string
}

type RewardService interface {
	List(ctx context.Context) ([]model.KarmaItem, error)
	Get(ctx context.Context, id string) (*model.KarmaItem, error)
	Create(ctx context.Context, in RewardInput) (*model.KarmaItem, error)
	Update(ctx context.Context, id string, in RewardInput) (*model.KarmaItem, error)
}

type rewardService struct {
	repo repository.KarmaItemRepository
}

func NewRewardService(repo repository.KarmaItemRepository) RewardService {
	return &rewardService{repo: repo}
}

func (s *rewardService) List(ctx context.Context) ([]model.KarmaItem, error) {
	return s.repo.List(ctx)
}

func (s *rewardService) Get(ctx context.Context, id string) (*model.KarmaItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

func validateRewardInput(in *RewardInput) error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" || len(in.Title) > 120 {
		return errors.New("invalid title")
	}
	if in.Points <= 0 {
		return errors.New("points must be positive")
	}
	if in.Stock != nil && *in.Stock < 0 {
		return errors.New("stock must not be negative")
	}
	return nil
}

func (s *rewardService) Create(ctx context.Context, in RewardInput) (*model.KarmaItem, error) {
	if err := validateRewardInput(&in); err != nil {
		return nil, err
	}
	item := &model.KarmaItem{
		Title:       in.Title,
		Description: in.Description,
		Points:      in.Points,
		Stock:       in.Stock,
		ImageURL:    in.ImageURL,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Update rewrites the catalog entry. Existing redemptions keep the
// points_used they were created with regardless of the new price.
func (s *rewardService) Update(ctx context.Context, id string, in RewardInput) (*model.KarmaItem, error) {
	if err := validateRewardInput(&in); err != nil {
		return nil, err
	}
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	item.Title = in.Title
	item.Description = in.Description
	item.Points = in.Points
	item.Stock = in.Stock
	item.ImageURL = in.ImageURL
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}
