package handler

import (
	"net/http"
	"time"

	"github.com/ecokabadi/ewaste-backend/internal/model"
	"github.com/ecokabadi/ewaste-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type RewardHandler struct {
	svc service.RewardService
}

func NewRewardHandler(svc service.RewardService) *RewardHandler {
	return &RewardHandler{svc: svc}
}

type RewardResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Points      int64   `json:"points"`
	Stock       *int64  `json:"stock"`
	ImageURL    *string `json:"imageUrl"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

func toRewardResponse(item *model.KarmaItem) RewardResponse {
	return RewardResponse{
		ID:          item.ID,
		Title:       item.Title,
		Description: item.Description,
		Points:      item.Points,
		Stock:       item.Stock,
		ImageURL:    item.ImageURL,
		CreatedAt:   item.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   item.UpdatedAt.Format(time.RFC3339),
	}
}

func (h *RewardHandler) List(c echo.Context) error {
	items, err := h.svc.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch rewards"))
	}
	resp := make([]RewardResponse, 0, len(items))
	for i := range items {
		resp = append(resp, toRewardResponse(&items[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *RewardHandler) Get(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid item id"))
	}
	item, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		if err == service.ErrNotFound {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "item not found"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch item"))
	}
	return c.JSON(http.StatusOK, toRewardResponse(item))
}

type rewardRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Points      int64   `json:"points"`
	Stock       *int64  `json:"stock"`
	ImageURL    *string `json:"imageUrl"`
}

func (h *RewardHandler) Create(c echo.Context) error {
	var req rewardRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	item, err := h.svc.Create(c.Request().Context(), service.RewardInput{
		Title:       req.Title,
		Description: req.Description,
		Points:      req.Points,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusCreated, toRewardResponse(item))
}

func (h *RewardHandler) Update(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid item id"))
	}
	var req rewardRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	item, err := h.svc.Update(c.Request().Context(), id, service.RewardInput{
		Title:       req.Title,
		Description: req.Description,
		Points:      req.Points,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		if err == service.ErrNotFound {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "item not found"))
		}
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusOK, toRewardResponse(item))
}
