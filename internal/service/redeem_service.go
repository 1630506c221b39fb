package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ecokabadi/ewaste-backend/internal/model"
	"github.com/ecokabadi/ewaste-backend/internal/repository"
	"gorm.io/gorm"
)

type RedeemResult struct {
	RedemptionID string
	Message      string
}

// RedeemService is the karma-store redemption transaction: debit the
// user's balance, decrement item stock and record the redemption as a
// single unit. Concurrency control is pushed down to conditional
// UPDATEs so the service stays safe when run as multiple stateless
// instances.
type RedeemService interface {
	Redeem(ctx context.Context, itemID, userID string) (*RedeemResult, error)
	SetDB(db *gorm.DB)
}

type redeemService struct {
	db     *gorm.DB
	notify NotificationService
}

func NewRedeemService(db *gorm.DB, notify NotificationService) RedeemService {
	return &redeemService{db: db, notify: notify}
}

func (s *redeemService) SetDB(db *gorm.DB) {
	s.db = db
}

// Redeem validates the four preconditions in a fixed order (user, item,
// balance, stock) and then applies the three writes inside one database
// transaction. The balance debit and the stock decrement are guarded
// conditional UPDATEs: if a concurrent redemption got there first, the
// guard fails, the transaction rolls back and the caller gets the same
// error it would have gotten had the calls run one at a time.
func (s *redeemService) Redeem(ctx context.Context, itemID, userID string) (*RedeemResult, error) {
	if s.db == nil {
		return nil, repository.ErrDBNotReady
	}

	var rec model.Redemption
	var item model.KarmaItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profile model.Profile
		if err := tx.Where("id = ?", userID).First(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return &TransactionFailedError{Err: err}
		}

		if err := tx.Where("id = ?", itemID).First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return &TransactionFailedError{Err: err}
		}

		if profile.KarmaPoints < item.Points {
			return &InsufficientBalanceError{Shortfall: item.Points - profile.KarmaPoints}
		}
		if item.Stock != nil && *item.Stock <= 0 {
			return ErrOutOfStock
		}

		rec = model.Redemption{
			UserID:     userID,
			ItemID:     itemID,
			PointsUsed: item.Points,
			Status:     model.RedemptionStatusPending,
		}
		if err := tx.Create(&rec).Error; err != nil {
			return &TransactionFailedError{Err: err}
		}

		res := tx.Model(&model.Profile{}).
			Where("id = ? AND karma_points >= ?", userID, item.Points).
			Update("karma_points", gorm.Expr("karma_points - ?", item.Points))
		if res.Error != nil {
			return &TransactionFailedError{Err: res.Error}
		}
		if res.RowsAffected == 0 {
			// A concurrent redemption spent the balance after our read.
			shortfall := item.Points
			var current model.Profile
			if err := tx.Where("id = ?", userID).First(&current).Error; err == nil {
				shortfall = item.Points - current.KarmaPoints
			}
			return &InsufficientBalanceError{Shortfall: shortfall}
		}

		if item.Stock != nil {
			res := tx.Model(&model.KarmaItem{}).
				Where("id = ? AND stock > 0", itemID).
				Update("stock", gorm.Expr("stock - 1"))
			if res.Error != nil {
				return &TransactionFailedError{Err: res.Error}
			}
			if res.RowsAffected == 0 {
				return ErrOutOfStock
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notify != nil {
		s.notify.Notify(ctx, userID, "redemption_created",
			"Reward claimed: "+item.Title,
			fmt.Sprintf("You used %d karma points. We'll send you details soon.", rec.PointsUsed),
			&rec.ID, nil)
	}
	return &RedeemResult{
		RedemptionID: rec.ID,
		Message:      "Redemption successful",
	}, nil
}
