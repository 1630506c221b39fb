package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ecokabadi/ewaste-backend/internal/model"
	"github.com/ecokabadi/ewaste-backend/internal/repository"
	"gorm.io/gorm"
)

// ProfileUpdate carries the user-editable profile fields.
type ProfileUpdate struct {
	Name        string
	Location    *string
	PhoneNumber *string
	Bio         *string
	AvatarURL   *string
}

type ProfileService interface {
	Get(ctx context.Context, id string) (*model.Profile, error)
	Upsert(ctx context.Context, id string, in ProfileUpdate) (*model.Profile, error)
	SetUserType(ctx context.Context, id string, userType model.UserType) error
}

type profileService struct {
	repo repository.ProfileRepository
}

func NewProfileService(repo repository.ProfileRepository) ProfileService {
	return &profileService{repo: repo}
}

func (s *profileService) Get(ctx context.Context, id string) (*model.Profile, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// Upsert creates the profile on first write (registration happens at the
// auth provider, so the first profile save is the first time we see the
// user) and updates the editable fields afterwards. The karma balance is
// never touched here.
func (s *profileService) Upsert(ctx context.Context, id string, in ProfileUpdate) (*model.Profile, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || len(in.Name) > 120 {
		return nil, errors.New("invalid name")
	}
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		p = &model.Profile{
			ID:       id,
			Name:     in.Name,
			UserType: model.UserTypeUser,
		}
		p.Location = in.Location
		p.PhoneNumber = in.PhoneNumber
		p.Bio = in.Bio
		p.AvatarURL = in.AvatarURL
		if err := s.repo.Create(ctx, p); err != nil {
			return nil, err
		}
		return p, nil
	}
	p.Name = in.Name
	p.Location = in.Location
	p.PhoneNumber = in.PhoneNumber
	p.Bio = in.Bio
	p.AvatarURL = in.AvatarURL
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *profileService) SetUserType(ctx context.Context, id string, userType model.UserType) error {
	switch userType {
	case model.UserTypeUser, model.UserTypeKabadiwala, model.UserTypeRecycler, model.UserTypeAdmin:
	default:
		return errors.New("invalid user type")
	}
	affected, err := s.repo.UpdateUserType(ctx, id, userType)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
