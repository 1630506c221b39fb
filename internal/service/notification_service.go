package service

import (
	"context"

	"github.com/ecokabadi/ewaste-backend/internal/model"
	"github.com/ecokabadi/ewaste-backend/internal/repository"
)

type NotificationService interface {
	Notify(ctx context.Context, userID, typ, title, body string, redemptionID, pickupID *string)
	List(ctx context.Context, userID string, unreadOnly bool, limit int) ([]model.Notification, int64, error)
	MarkAllRead(ctx context.Context, userID string) error
}

type notificationService struct {
	repo repository.NotificationRepository
}

func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

// Notify is best-effort; it swallows errors so a failed notification
// never breaks the flow that triggered it.
func (s *notificationService) Notify(ctx context.Context, userID, typ, title, body string, redemptionID, pickupID *string) {
	if userID == "" || typ == "" {
		return
	}
	n := &model.Notification{
		UserID:       userID,
		Type:         typ,
		Title:        title,
		Body:         body,
		RedemptionID: redemptionID,
		PickupID:     pickupID,
	}
	_ = s.repo.Create(ctx, n)
}

func (s *notificationService) List(ctx context.Context, userID string, unreadOnly bool, limit int) ([]model.Notification, int64, error) {
	if userID == "" {
		return nil, 0, nil
	}
	list, err := s.repo.ListByUser(ctx, userID, unreadOnly, limit)
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return list, unread, nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) error {
	if userID == "" {
		return nil
	}
	return s.repo.MarkAllRead(ctx, userID)
}
