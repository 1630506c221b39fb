package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/ecokabadi/ewaste-backend/internal/model"
	"github.com/ecokabadi/ewaste-backend/internal/repository"
	"gorm.io/gorm"
)

// PickupInput carries a new collection request.
type PickupInput struct {
	Items      string
	Location   string
	Lat        *float64
	Lng        *float64
	PickupDate *string
	PickupTime *string
	ImageURL   *string
}

type PickupService interface {
	Create(ctx context.Context, userID string, in PickupInput) (*model.Pickup, error)
	ListByUser(ctx context.Context, userID string) ([]model.Pickup, error)
	ListByStatus(ctx context.Context, status model.PickupStatus, limit int) ([]model.Pickup, error)
	Schedule(ctx context.Context, pickupID, kabadiwalaID string, date, pickupTime *string) (*model.Pickup, error)
	Complete(ctx context.Context, pickupID, kabadiwalaID string) (*model.Pickup, error)
}

type pickupService struct {
	repo        repository.PickupRepository
	profileRepo repository.ProfileRepository
	notify      NotificationService
}

func NewPickupService(repo repository.PickupRepository, profileRepo repository.ProfileRepository, notify NotificationService) PickupService {
	return &pickupService{repo: repo, profileRepo: profileRepo, notify: notify}
}

func (s *pickupService) Create(ctx context.Context, userID string, in PickupInput) (*model.Pickup, error) {
	if userID == "" {
		return nil, errors.New("user is required")
	}
	in.Items = strings.TrimSpace(in.Items)
	in.Location = strings.TrimSpace(in.Location)
	if in.Items == "" {
		return nil, errors.New("items are required")
	}
	if in.Location == "" {
		return nil, errors.New("location is required")
	}
	p := &model.Pickup{
		UserID:     userID,
		Items:      in.Items,
		Location:   in.Location,
		Lat:        in.Lat,
		Lng:        in.Lng,
		PickupDate: in.PickupDate,
		PickupTime: in.PickupTime,
		ImageURL:   in.ImageURL,
		// Rough estimate until weighing at pickup; credited on completion.
		Points: int64(rand.IntN(100) + 50),
		Status: model.PickupStatusPending,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *pickupService) ListByUser(ctx context.Context, userID string) ([]model.Pickup, error) {
	if userID == "" {
		return nil, errors.New("user is required")
	}
	return s.repo.ListByUser(ctx, userID)
}

func (s *pickupService) ListByStatus(ctx context.Context, status model.PickupStatus, limit int) ([]model.Pickup, error) {
	switch status {
	case model.PickupStatusPending, model.PickupStatusScheduled, model.PickupStatusCompleted:
	default:
		return nil, errors.New("invalid status")
	}
	return s.repo.ListByStatus(ctx, status, limit)
}

func (s *pickupService) Schedule(ctx context.Context, pickupID, kabadiwalaID string, date, pickupTime *string) (*model.Pickup, error) {
	if kabadiwalaID == "" {
		return nil, errors.New("kabadiwalla is required")
	}
	affected, err := s.repo.MarkScheduledIfPending(ctx, pickupID, kabadiwalaID, date, pickupTime)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		if _, err := s.repo.FindByID(ctx, pickupID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		return nil, errors.New("pickup is not pending")
	}
	p, err := s.repo.FindByID(ctx, pickupID)
	if err != nil {
		return nil, err
	}
	if s.notify != nil {
		s.notify.Notify(ctx, p.UserID, "pickup_scheduled",
			"Pickup scheduled",
			"A kabadiwalla has scheduled your e-waste pickup.",
			nil, &p.ID)
	}
	return p, nil
}

// Complete marks the pickup done and credits the estimated karma points
// to the requesting user. The status transition is guarded so the
// credit can only happen once.
func (s *pickupService) Complete(ctx context.Context, pickupID, kabadiwalaID string) (*model.Pickup, error) {
	if kabadiwalaID == "" {
		return nil, errors.New("kabadiwalla is required")
	}
	affected, err := s.repo.MarkCompletedIfScheduled(ctx, pickupID, kabadiwalaID)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		p, err := s.repo.FindByID(ctx, pickupID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		if p.KabadiwalaID == nil || *p.KabadiwalaID != kabadiwalaID {
			return nil, ErrForbidden
		}
		return nil, errors.New("pickup is not scheduled")
	}
	p, err := s.repo.FindByID(ctx, pickupID)
	if err != nil {
		return nil, err
	}
	if _, err := s.profileRepo.AddPoints(ctx, p.UserID, p.Points); err != nil {
		return nil, err
	}
	if s.notify != nil {
		s.notify.Notify(ctx, p.UserID, "pickup_completed",
			"Pickup completed",
			fmt.Sprintf("You earned %d karma points for recycling your e-waste.", p.Points),
			nil, &p.ID)
	}
	return p, nil
}
