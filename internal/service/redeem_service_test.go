package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/ecokabadi/ewaste-backend/internal/model"
	"github.com/ecokabadi/ewaste-backend/internal/repository"
	"github.com/ecokabadi/ewaste-backend/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newRedeemService(db *gorm.DB) service.RedeemService {
	notif := service.NewNotificationService(repository.NewNotificationRepository(db))
	return service.NewRedeemService(db, notif)
}

func TestRedeem_Success(t *testing.T) {
	db := newTestDB(t)
	svc := newRedeemService(db)
	ctx := context.Background()

	userID := seedProfile(t, db, 300)
	itemID := seedItem(t, db, 250, stockOf(1))

	result, err := svc.Redeem(ctx, itemID, userID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.NotEmpty(t, result.RedemptionID)
	assert.Equal(t, "Redemption successful", result.Message)

	var profile model.Profile
	require.NoError(t, db.Where("id = ?", userID).First(&profile).Error)
	assert.Equal(t, int64(50), profile.KarmaPoints)

	var item model.KarmaItem
	require.NoError(t, db.Where("id = ?", itemID).First(&item).Error)
	require.NotNil(t, item.Stock)
	assert.Equal(t, int64(0), *item.Stock)

	var rec model.Redemption
	require.NoError(t, db.Where("id = ?", result.RedemptionID).First(&rec).Error)
	assert.Equal(t, userID, rec.UserID)
	assert.Equal(t, itemID, rec.ItemID)
	assert.Equal(t, int64(250), rec.PointsUsed)
	assert.Equal(t, model.RedemptionStatusPending, rec.Status)
}

func TestRedeem_RetryAfterStockExhausted(t *testing.T) {
	db := newTestDB(t)
	svc := newRedeemService(db)
	ctx := context.Background()

	userID := seedProfile(t, db, 300)
	itemID := seedItem(t, db, 100, stockOf(1))

	_, err := svc.Redeem(ctx, itemID, userID)
	require.NoError(t, err)

	_, err = svc.Redeem(ctx, itemID, userID)
	assert.ErrorIs(t, err, service.ErrOutOfStock)

	// No state change from the failed attempt.
	var profile model.Profile
	require.NoError(t, db.Where("id = ?", userID).First(&profile).Error)
	assert.Equal(t, int64(200), profile.KarmaPoints)
	var count int64
	require.NoError(t, db.Model(&model.Redemption{}).Where("user_id = ?", userID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRedeem_InsufficientBalance_ReportsShortfall(t *testing.T) {
	db := newTestDB(t)
	svc := newRedeemService(db)
	ctx := context.Background()

	userID := seedProfile(t, db, 0)
	itemID := seedItem(t, db, 100, nil)

	_, err := svc.Redeem(ctx, itemID, userID)
	var insufficient *service.InsufficientBalanceError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, int64(100), insufficient.Shortfall)
}

func TestRedeem_PreconditionOrder_BalanceBeforeStock(t *testing.T) {
	// A user short on points redeeming an out-of-stock item must get
	// the balance error, never the stock error.
	db := newTestDB(t)
	svc := newRedeemService(db)
	ctx := context.Background()

	userID := seedProfile(t, db, 50)
	itemID := seedItem(t, db, 100, stockOf(0))

	_, err := svc.Redeem(ctx, itemID, userID)
	var insufficient *service.InsufficientBalanceError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, int64(50), insufficient.Shortfall)
	assert.NotErrorIs(t, err, service.ErrOutOfStock)
}

func TestRedeem_UserNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newRedeemService(db)

	itemID := seedItem(t, db, 100, nil)
	_, err := svc.Redeem(context.Background(), itemID, "no-such-user")
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}

func TestRedeem_ItemNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newRedeemService(db)

	userID := seedProfile(t, db, 1000)
	_, err := svc.Redeem(context.Background(), "no-such-item", userID)
	assert.ErrorIs(t, err, service.ErrItemNotFound)
}

func TestRedeem_UnlimitedStockStaysNil(t *testing.T) {
	db := newTestDB(t)
	svc := newRedeemService(db)
	ctx := context.Background()

	userID := seedProfile(t, db, 500)
	itemID := seedItem(t, db, 100, nil)

	for i := 0; i < 3; i++ {
		_, err := svc.Redeem(ctx, itemID, userID)
		require.NoError(t, err)
	}

	var item model.KarmaItem
	require.NoError(t, db.Where("id = ?", itemID).First(&item).Error)
	assert.Nil(t, item.Stock)
	var profile model.Profile
	require.NoError(t, db.Where("id = ?", userID).First(&profile).Error)
	assert.Equal(t, int64(200), profile.KarmaPoints)
}

func TestRedeem_PriceSnapshotImmutable(t *testing.T) {
	db := newTestDB(t)
	svc := newRedeemService(db)
	ctx := context.Background()

	userID := seedProfile(t, db, 1000)
	itemID := seedItem(t, db, 200, nil)

	result, err := svc.Redeem(ctx, itemID, userID)
	require.NoError(t, err)

	// Reprice the catalog item after the redemption.
	require.NoError(t, db.Model(&model.KarmaItem{}).Where("id = ?", itemID).Update("points", 500).Error)

	var rec model.Redemption
	require.NoError(t, db.Where("id = ?", result.RedemptionID).First(&rec).Error)
	assert.Equal(t, int64(200), rec.PointsUsed)
}

func TestRedeem_FailureLeavesNoPartialState(t *testing.T) {
	db := newTestDB(t)
	svc := newRedeemService(db)
	ctx := context.Background()

	userID := seedProfile(t, db, 40)
	itemID := seedItem(t, db, 100, stockOf(5))

	_, err := svc.Redeem(ctx, itemID, userID)
	require.Error(t, err)

	var profile model.Profile
	require.NoError(t, db.Where("id = ?", userID).First(&profile).Error)
	assert.Equal(t, int64(40), profile.KarmaPoints)
	var item model.KarmaItem
	require.NoError(t, db.Where("id = ?", itemID).First(&item).Error)
	assert.Equal(t, int64(5), *item.Stock)
	var count int64
	require.NoError(t, db.Model(&model.Redemption{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestRedeem_ConcurrentSameUser_NoNegativeBalance(t *testing.T) {
	db := newTestDB(t)
	svc := newRedeemService(db)
	ctx := context.Background()

	userID := seedProfile(t, db, 250)
	itemID := seedItem(t, db, 100, nil)

	const calls = 6
	var wg sync.WaitGroup
	errs := make([]error, calls)
	for i := 0; i < calls; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Redeem(ctx, itemID, userID)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		var insufficient *service.InsufficientBalanceError
		assert.ErrorAs(t, err, &insufficient)
	}
	assert.Equal(t, 2, succeeded)

	var profile model.Profile
	require.NoError(t, db.Where("id = ?", userID).First(&profile).Error)
	assert.Equal(t, int64(50), profile.KarmaPoints)
	assert.GreaterOrEqual(t, profile.KarmaPoints, int64(0))

	var count int64
	require.NoError(t, db.Model(&model.Redemption{}).Where("user_id = ?", userID).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestRedeem_ConcurrentLastUnit_ExactlyOneSucceeds(t *testing.T) {
	db := newTestDB(t)
	svc := newRedeemService(db)
	ctx := context.Background()

	itemID := seedItem(t, db, 100, stockOf(1))
	userA := seedProfile(t, db, 500)
	userB := seedProfile(t, db, 500)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i, uid := range []string{userA, userB} {
		wg.Add(1)
		go func(i int, uid string) {
			defer wg.Done()
			_, results[i] = svc.Redeem(ctx, itemID, uid)
		}(i, uid)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, service.ErrOutOfStock)
		}
	}
	assert.Equal(t, 1, succeeded)

	var item model.KarmaItem
	require.NoError(t, db.Where("id = ?", itemID).First(&item).Error)
	assert.Equal(t, int64(0), *item.Stock)
}

func TestRedeem_LedgerAndBalanceStayConsistent(t *testing.T) {
	db := newTestDB(t)
	svc := newRedeemService(db)
	ctx := context.Background()

	userID := seedProfile(t, db, 1000)
	itemID := seedItem(t, db, 300, stockOf(2))

	for i := 0; i < 4; i++ {
		_, _ = svc.Redeem(ctx, itemID, userID)

		var profile model.Profile
		require.NoError(t, db.Where("id = ?", userID).First(&profile).Error)
		var spent int64
		require.NoError(t, db.Model(&model.Redemption{}).
			Where("user_id = ?", userID).
			Select("COALESCE(SUM(points_used), 0)").
			Scan(&spent).Error)
		assert.Equal(t, int64(1000), profile.KarmaPoints+spent)
	}
}

func TestRedeem_WritesNotification(t *testing.T) {
	db := newTestDB(t)
	svc := newRedeemService(db)
	ctx := context.Background()

	userID := seedProfile(t, db, 300)
	itemID := seedItem(t, db, 100, nil)

	result, err := svc.Redeem(ctx, itemID, userID)
	require.NoError(t, err)

	var n model.Notification
	require.NoError(t, db.Where("user_id = ? AND type = ?", userID, "redemption_created").First(&n).Error)
	require.NotNil(t, n.RedemptionID)
	assert.Equal(t, result.RedemptionID, *n.RedemptionID)
}
