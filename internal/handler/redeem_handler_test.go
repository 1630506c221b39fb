package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ecokabadi/ewaste-backend/internal/handler"
	"github.com/ecokabadi/ewaste-backend/internal/model"
	"github.com/ecokabadi/ewaste-backend/internal/repository"
	"github.com/ecokabadi/ewaste-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, gdb.AutoMigrate(
		&model.Profile{},
		&model.KarmaItem{},
		&model.Redemption{},
		&model.Notification{},
	))
	return gdb
}

func newRedeemHandler(db *gorm.DB) *handler.RedeemHandler {
	notif := service.NewNotificationService(repository.NewNotificationRepository(db))
	return handler.NewRedeemHandler(service.NewRedeemService(db, notif))
}

func postRedeem(t *testing.T, h *handler.RedeemHandler, uid, body string) (*httptest.ResponseRecorder, handler.RedeemResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/redeem", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if uid != "" {
		c.Set("uid", uid)
	}
	require.NoError(t, h.Redeem(c))

	var resp handler.RedeemResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func seedUserAndItem(t *testing.T, db *gorm.DB, balance, cost int64, stock *int64) (string, string) {
	t.Helper()
	p := model.Profile{ID: uuid.NewString(), Name: "Asha", UserType: model.UserTypeUser, KarmaPoints: balance}
	require.NoError(t, db.Create(&p).Error)
	item := model.KarmaItem{ID: uuid.NewString(), Title: "Solar Power Bank", Points: cost, Stock: stock}
	require.NoError(t, db.Create(&item).Error)
	return p.ID, item.ID
}

func TestRedeemEndpoint_Success(t *testing.T) {
	db := newTestDB(t)
	h := newRedeemHandler(db)
	userID, itemID := seedUserAndItem(t, db, 300, 250, nil)

	body := fmt.Sprintf(`{"item_id":%q,"user_id":%q}`, itemID, userID)
	rec, resp := postRedeem(t, h, userID, body)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, "Redemption successful", resp.Message)
	assert.NotEmpty(t, resp.RedemptionID)
}

func TestRedeemEndpoint_MissingParameters(t *testing.T) {
	db := newTestDB(t)
	h := newRedeemHandler(db)

	tests := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"missing user", `{"item_id":"abc"}`},
		{"missing item", `{"user_id":"abc"}`},
		{"blank fields", `{"item_id":"  ","user_id":"abc"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := postRedeem(t, h, "", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.False(t, resp.Success)
			assert.Equal(t, "Missing required parameters", resp.Message)
		})
	}
}

func TestRedeemEndpoint_UIDMismatchForbidden(t *testing.T) {
	db := newTestDB(t)
	h := newRedeemHandler(db)
	userID, itemID := seedUserAndItem(t, db, 300, 100, nil)

	body := fmt.Sprintf(`{"item_id":%q,"user_id":%q}`, itemID, userID)
	rec, resp := postRedeem(t, h, "someone-else", body)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, resp.Success)

	// Nothing was spent on behalf of the named user.
	var profile model.Profile
	require.NoError(t, db.Where("id = ?", userID).First(&profile).Error)
	assert.Equal(t, int64(300), profile.KarmaPoints)
}

func TestRedeemEndpoint_InsufficientBalanceMessage(t *testing.T) {
	db := newTestDB(t)
	h := newRedeemHandler(db)
	userID, itemID := seedUserAndItem(t, db, 0, 100, nil)

	body := fmt.Sprintf(`{"item_id":%q,"user_id":%q}`, itemID, userID)
	rec, resp := postRedeem(t, h, userID, body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, "You need 100 more karma points", resp.Message)
}

func TestRedeemEndpoint_OutOfStock(t *testing.T) {
	db := newTestDB(t)
	h := newRedeemHandler(db)
	empty := int64(0)
	userID, itemID := seedUserAndItem(t, db, 500, 100, &empty)

	body := fmt.Sprintf(`{"item_id":%q,"user_id":%q}`, itemID, userID)
	rec, resp := postRedeem(t, h, userID, body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, "This item is out of stock", resp.Message)
}

func TestRedeemEndpoint_NotFoundKinds(t *testing.T) {
	db := newTestDB(t)
	h := newRedeemHandler(db)
	userID, itemID := seedUserAndItem(t, db, 500, 100, nil)

	rec, resp := postRedeem(t, h, userID,
		fmt.Sprintf(`{"item_id":"no-such-item","user_id":%q}`, userID))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Item not found", resp.Message)

	rec, resp = postRedeem(t, h, "ghost",
		fmt.Sprintf(`{"item_id":%q,"user_id":"ghost"}`, itemID))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User profile not found", resp.Message)
}
