package handler

import (
	"net/http"
	"time"

	"github.com/ecokabadi/ewaste-backend/internal/model"
	"github.com/ecokabadi/ewaste-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type PickupHandler struct {
	svc service.PickupService
}

func NewPickupHandler(svc service.PickupService) *PickupHandler {
	return &PickupHandler{svc: svc}
}

type PickupResponse struct {
	ID           string   `json:"id"`
	UserID       string   `json:"userId"`
	KabadiwalaID *string  `json:"kabadiwalaId"`
	Items        string   `json:"items"`
	Location     string   `json:"location"`
	Lat          *float64 `json:"lat"`
	Lng          *float64 `json:"lng"`
	PickupDate   *string  `json:"pickupDate"`
	PickupTime   *string  `json:"pickupTime"`
	Points       int64    `json:"points"`
	Status       string   `json:"status"`
	ImageURL     *string  `json:"imageUrl"`
	CreatedAt    string   `json:"createdAt"`
	UpdatedAt    string   `json:"updatedAt"`
}

func toPickupResponse(p *model.Pickup) PickupResponse {
	return PickupResponse{
		ID:           p.ID,
		UserID:       p.UserID,
		KabadiwalaID: p.KabadiwalaID,
		Items:        p.Items,
		Location:     p.Location,
		Lat:          p.Lat,
		Lng:          p.Lng,
		PickupDate:   p.PickupDate,
		PickupTime:   p.PickupTime,
		Points:       p.Points,
		Status:       string(p.Status),
		ImageURL:     p.ImageURL,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    p.UpdatedAt.Format(time.RFC3339),
	}
}

type pickupCreateRequest struct {
	Items      string   `json:"items"`
	Location   string   `json:"location"`
	Lat        *float64 `json:"lat"`
	Lng        *float64 `json:"lng"`
	PickupDate *string  `json:"pickupDate"`
	PickupTime *string  `json:"pickupTime"`
	ImageURL   *string  `json:"imageUrl"`
}

func (h *PickupHandler) Create(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var req pickupCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	p, err := h.svc.Create(c.Request().Context(), uid, service.PickupInput{
		Items:      req.Items,
		Location:   req.Location,
		Lat:        req.Lat,
		Lng:        req.Lng,
		PickupDate: req.PickupDate,
		PickupTime: req.PickupTime,
		ImageURL:   req.ImageURL,
	})
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusCreated, toPickupResponse(p))
}

func (h *PickupHandler) ListMine(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	list, err := h.svc.ListByUser(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch pickups"))
	}
	resp := make([]PickupResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toPickupResponse(&list[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *PickupHandler) ListByStatus(c echo.Context) error {
	status := c.QueryParam("status")
	if status == "" {
		status = string(model.PickupStatusPending)
	}
	list, err := h.svc.ListByStatus(c.Request().Context(), model.PickupStatus(status), 50)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	resp := make([]PickupResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toPickupResponse(&list[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

type scheduleRequest struct {
	PickupDate *string `json:"pickupDate"`
	PickupTime *string `json:"pickupTime"`
}

func (h *PickupHandler) Schedule(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	id := c.Param("id")
	var req scheduleRequest
	_ = c.Bind(&req)
	p, err := h.svc.Schedule(c.Request().Context(), id, uid, req.PickupDate, req.PickupTime)
	if err != nil {
		switch err {
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "pickup not found"))
		default:
			return c.JSON(http.StatusConflict, NewErrorResponse("conflict", err.Error()))
		}
	}
	return c.JSON(http.StatusOK, toPickupResponse(p))
}

func (h *PickupHandler) Complete(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	id := c.Param("id")
	p, err := h.svc.Complete(c.Request().Context(), id, uid)
	if err != nil {
		switch err {
		case service.ErrNotFound:
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "pickup not found"))
		case service.ErrForbidden:
			return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "not allowed"))
		default:
			return c.JSON(http.StatusConflict, NewErrorResponse("conflict", err.Error()))
		}
	}
	return c.JSON(http.StatusOK, toPickupResponse(p))
}
