package service_test

import (
	"context"
	"testing"

	"github.com/ecokabadi/ewaste-backend/internal/model"
	"github.com/ecokabadi/ewaste-backend/internal/repository"
	"github.com/ecokabadi/ewaste-backend/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newRedemptionService(db *gorm.DB) service.RedemptionService {
	return service.NewRedemptionService(
		repository.NewRedemptionRepository(db),
		repository.NewKarmaItemRepository(db),
	)
}

func TestRedemptionAdvance_Transitions(t *testing.T) {
	db := newTestDB(t)
	redeemSvc := newRedeemService(db)
	svc := newRedemptionService(db)
	ctx := context.Background()

	userID := seedProfile(t, db, 500)
	itemID := seedItem(t, db, 100, nil)

	result, err := redeemSvc.Redeem(ctx, itemID, userID)
	require.NoError(t, err)

	rec, err := svc.Advance(ctx, result.RedemptionID, model.RedemptionStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, model.RedemptionStatusCompleted, rec.Status)
	assert.Equal(t, int64(100), rec.PointsUsed)

	// Terminal states stay terminal.
	_, err = svc.Advance(ctx, result.RedemptionID, model.RedemptionStatusRejected)
	assert.ErrorIs(t, err, service.ErrNotPending)
}

func TestRedemptionAdvance_InvalidInputs(t *testing.T) {
	db := newTestDB(t)
	svc := newRedemptionService(db)
	ctx := context.Background()

	_, err := svc.Advance(ctx, "no-such-redemption", model.RedemptionStatusCompleted)
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = svc.Advance(ctx, "whatever", model.RedemptionStatusPending)
	assert.Error(t, err)
}

func TestRedemptionListByUser_ReturnsItemView(t *testing.T) {
	db := newTestDB(t)
	redeemSvc := newRedeemService(db)
	svc := newRedemptionService(db)
	ctx := context.Background()

	userID := seedProfile(t, db, 1000)
	itemID := seedItem(t, db, 100, nil)

	for i := 0; i < 3; i++ {
		_, err := redeemSvc.Redeem(ctx, itemID, userID)
		require.NoError(t, err)
	}

	list, err := svc.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for _, row := range list {
		assert.Equal(t, userID, row.Redemption.UserID)
		require.NotNil(t, row.Item)
		assert.Equal(t, "Steel Water Bottle", row.Item.Title)
	}
}
