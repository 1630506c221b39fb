package handler

import (
	"net/http"
	"time"

	"github.com/ecokabadi/ewaste-backend/internal/model"
	"github.com/ecokabadi/ewaste-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type RedemptionHandler struct {
	svc service.RedemptionService
}

func NewRedemptionHandler(svc service.RedemptionService) *RedemptionHandler {
	return &RedemptionHandler{svc: svc}
}

type redemptionItemView struct {
	Title    string  `json:"title"`
	Points   int64   `json:"points"`
	ImageURL *string `json:"imageUrl"`
}

type RedemptionResponse struct {
	ID         string              `json:"id"`
	ItemID     string              `json:"itemId"`
	PointsUsed int64               `json:"pointsUsed"`
	Status     string              `json:"status"`
	Item       *redemptionItemView `json:"item,omitempty"`
	CreatedAt  string              `json:"createdAt"`
}

func toRedemptionResponse(row service.RedemptionWithItem) RedemptionResponse {
	resp := RedemptionResponse{
		ID:         row.Redemption.ID,
		ItemID:     row.Redemption.ItemID,
		PointsUsed: row.Redemption.PointsUsed,
		Status:     string(row.Redemption.Status),
		CreatedAt:  row.Redemption.CreatedAt.Format(time.RFC3339),
	}
	if row.Item != nil {
		resp.Item = &redemptionItemView{
			Title:    row.Item.Title,
			Points:   row.Item.Points,
			ImageURL: row.Item.ImageURL,
		}
	}
	return resp
}

func (h *RedemptionHandler) ListMine(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	list, err := h.svc.ListByUser(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch redemptions"))
	}
	resp := make([]RedemptionResponse, 0, len(list))
	for _, row := range list {
		resp = append(resp, toRedemptionResponse(row))
	}
	return c.JSON(http.StatusOK, resp)
}

type advanceRequest struct {
	Status string `json:"status"`
}

// Advance is the fulfillment-side transition; admin only.
func (h *RedemptionHandler) Advance(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid redemption id"))
	}
	var req advanceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	rec, err := h.svc.Advance(c.Request().Context(), id, model.RedemptionStatus(req.Status))
	if err != nil {
		switch err {
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "redemption not found"))
		case service.ErrNotPending:
			return c.JSON(http.StatusConflict, NewErrorResponse("conflict", "redemption is not pending"))
		default:
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
		}
	}
	return c.JSON(http.StatusOK, toRedemptionResponse(service.RedemptionWithItem{Redemption: *rec}))
}
