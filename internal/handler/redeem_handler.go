package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ecokabadi/ewaste-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type RedeemHandler struct {
	svc service.RedeemService
}

func NewRedeemHandler(svc service.RedeemService) *RedeemHandler {
	return &RedeemHandler{svc: svc}
}

type redeemRequest struct {
	ItemID string `json:"item_id"`
	UserID string `json:"user_id"`
}

// Redeem handles POST /api/redeem. The request is validated before any
// store access; the item cost is always read server-side, never trusted
// from the caller.
func (h *RedeemHandler) Redeem(c echo.Context) error {
	var req redeemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, redeemFailure("Invalid request body"))
	}
	req.ItemID = strings.TrimSpace(req.ItemID)
	req.UserID = strings.TrimSpace(req.UserID)
	if req.ItemID == "" || req.UserID == "" {
		return c.JSON(http.StatusBadRequest, redeemFailure("Missing required parameters"))
	}
	if uid, _ := c.Get("uid").(string); uid != "" && uid != req.UserID {
		return c.JSON(http.StatusForbidden, redeemFailure("You can only redeem for your own account"))
	}

	result, err := h.svc.Redeem(c.Request().Context(), req.ItemID, req.UserID)
	if err != nil {
		var insufficient *service.InsufficientBalanceError
		var txFailed *service.TransactionFailedError
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, redeemFailure("User profile not found"))
		case errors.Is(err, service.ErrItemNotFound):
			return c.JSON(http.StatusNotFound, redeemFailure("Item not found"))
		case errors.As(err, &insufficient):
			return c.JSON(http.StatusBadRequest,
				redeemFailure(fmt.Sprintf("You need %d more karma points", insufficient.Shortfall)))
		case errors.Is(err, service.ErrOutOfStock):
			return c.JSON(http.StatusBadRequest, redeemFailure("This item is out of stock"))
		case errors.As(err, &txFailed):
			return c.JSON(http.StatusServiceUnavailable, redeemFailure("Could not complete the redemption, please try again"))
		default:
			return c.JSON(http.StatusInternalServerError, redeemFailure("Internal server error"))
		}
	}
	return c.JSON(http.StatusOK, RedeemResponse{
		Success:      true,
		Message:      result.Message,
		RedemptionID: result.RedemptionID,
	})
}
