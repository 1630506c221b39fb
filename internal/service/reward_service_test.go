package service_test

import (
	"context"
	"testing"

	"github.com/ecokabadi/ewaste-backend/internal/repository"
	"github.com/ecokabadi/ewaste-backend/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewardCreate_Validation(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewRewardService(repository.NewKarmaItemRepository(db))
	ctx := context.Background()

	negative := int64(-1)
	zero := int64(0)
	tests := []struct {
		name    string
		in      service.RewardInput
		wantErr bool
	}{
		{"ok unlimited", service.RewardInput{Title: "Cloth Bag", Points: 100}, false},
		{"ok zero stock", service.RewardInput{Title: "Bottle", Points: 250, Stock: &zero}, false},
		{"empty title", service.RewardInput{Title: "  ", Points: 100}, true},
		{"zero points", service.RewardInput{Title: "Bag", Points: 0}, true},
		{"negative points", service.RewardInput{Title: "Bag", Points: -5}, true},
		{"negative stock", service.RewardInput{Title: "Bag", Points: 100, Stock: &negative}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := svc.Create(ctx, tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, item.ID)
		})
	}
}

func TestRewardList_OrderedByPointsAscending(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewRewardService(repository.NewKarmaItemRepository(db))
	ctx := context.Background()

	for _, pts := range []int64{900, 100, 400} {
		_, err := svc.Create(ctx, service.RewardInput{Title: "Reward", Points: pts})
		require.NoError(t, err)
	}

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, int64(100), items[0].Points)
	assert.Equal(t, int64(400), items[1].Points)
	assert.Equal(t, int64(900), items[2].Points)
}

func TestRewardUpdate(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewRewardService(repository.NewKarmaItemRepository(db))
	ctx := context.Background()

	item, err := svc.Create(ctx, service.RewardInput{Title: "LED Bulb", Points: 500})
	require.NoError(t, err)

	stock := int64(10)
	updated, err := svc.Update(ctx, item.ID, service.RewardInput{Title: "LED Bulb 2-Pack", Points: 550, Stock: &stock})
	require.NoError(t, err)
	assert.Equal(t, "LED Bulb 2-Pack", updated.Title)
	assert.Equal(t, int64(550), updated.Points)
	require.NotNil(t, updated.Stock)
	assert.Equal(t, int64(10), *updated.Stock)

	_, err = svc.Update(ctx, "no-such-item", service.RewardInput{Title: "X", Points: 1})
	assert.ErrorIs(t, err, service.ErrNotFound)
}
