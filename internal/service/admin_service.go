package service

import (
	"context"

	"github.com/ecokabadi/ewaste-backend/internal/model"
	"github.com/ecokabadi/ewaste-backend/internal/repository"
)

type AdminStats struct {
	TotalUsers   int64
	UsersByType  map[model.UserType]int64
	TotalPickups int64
	TotalKarma   int64
}

type AdminService interface {
	Stats(ctx context.Context) (*AdminStats, error)
}

type adminService struct {
	profileRepo repository.ProfileRepository
	pickupRepo  repository.PickupRepository
}

func NewAdminService(profileRepo repository.ProfileRepository, pickupRepo repository.PickupRepository) AdminService {
	return &adminService{profileRepo: profileRepo, pickupRepo: pickupRepo}
}

func (s *adminService) Stats(ctx context.Context) (*AdminStats, error) {
	byType, err := s.profileRepo.CountByType(ctx)
	if err != nil {
		return nil, err
	}
	var total int64
	for _, n := range byType {
		total += n
	}
	pickups, err := s.pickupRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	karma, err := s.profileRepo.SumKarmaPoints(ctx)
	if err != nil {
		return nil, err
	}
	return &AdminStats{
		TotalUsers:   total,
		UsersByType:  byType,
		TotalPickups: pickups,
		TotalKarma:   karma,
	}, nil
}
