package service

import (
	"context"
	"errors"

	"github.com/ecokabadi/ewaste-backend/internal/model"
	"github.com/ecokabadi/ewaste-backend/internal/repository"
	"gorm.io/gorm"
)

var ErrNotPending = errors.New("redemption is not pending")

type RedemptionWithItem struct {
	Redemption model.Redemption
	Item       *model.KarmaItem
}

// RedemptionService covers redemption history and the fulfillment-side
// status transitions; creating redemptions is RedeemService's job.
type RedemptionService interface {
	ListByUser(ctx context.Context, userID string) ([]RedemptionWithItem, error)
	Advance(ctx context.Context, id string, status model.RedemptionStatus) (*model.Redemption, error)
}

type redemptionService struct {
	repo     repository.RedemptionRepository
	itemRepo repository.KarmaItemRepository
}

func NewRedemptionService(repo repository.RedemptionRepository, itemRepo repository.KarmaItemRepository) RedemptionService {
	return &redemptionService{repo: repo, itemRepo: itemRepo}
}

func (s *redemptionService) ListByUser(ctx context.Context, userID string) ([]RedemptionWithItem, error) {
	if userID == "" {
		return nil, errors.New("user is required")
	}
	list, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := make([]RedemptionWithItem, 0, len(list))
	for _, rec := range list {
		item, _ := s.itemRepo.FindByID(ctx, rec.ItemID)
		resp = append(resp, RedemptionWithItem{Redemption: rec, Item: item})
	}
	return resp, nil
}

// Advance moves a pending redemption to completed or rejected. The
// guard on the current status makes repeated fulfillment calls no-ops.
func (s *redemptionService) Advance(ctx context.Context, id string, status model.RedemptionStatus) (*model.Redemption, error) {
	if status != model.RedemptionStatusCompleted && status != model.RedemptionStatusRejected {
		return nil, errors.New("status must be completed or rejected")
	}
	affected, err := s.repo.AdvanceStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		if _, err := s.repo.FindByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		return nil, ErrNotPending
	}
	return s.repo.FindByID(ctx, id)
}
