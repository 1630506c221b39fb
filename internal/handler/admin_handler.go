package handler

import (
	"net/http"

	"github.com/ecokabadi/ewaste-backend/internal/model"
	"github.com/ecokabadi/ewaste-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type AdminHandler struct {
	svc        service.AdminService
	profileSvc service.ProfileService
}

func NewAdminHandler(svc service.AdminService, profileSvc service.ProfileService) *AdminHandler {
	return &AdminHandler{svc: svc, profileSvc: profileSvc}
}

type AdminStatsResponse struct {
	TotalUsers   int64            `json:"totalUsers"`
	UsersByType  map[string]int64 `json:"usersByType"`
	TotalPickups int64            `json:"totalPickups"`
	TotalKarma   int64            `json:"totalKarma"`
}

func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.svc.Stats(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch stats"))
	}
	byType := make(map[string]int64, len(stats.UsersByType))
	for k, v := range stats.UsersByType {
		byType[string(k)] = v
	}
	return c.JSON(http.StatusOK, AdminStatsResponse{
		TotalUsers:   stats.TotalUsers,
		UsersByType:  byType,
		TotalPickups: stats.TotalPickups,
		TotalKarma:   stats.TotalKarma,
	})
}

type userTypeRequest struct {
	UserType string `json:"userType"`
}

func (h *AdminHandler) UpdateUserType(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid user id"))
	}
	var req userTypeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	if err := h.profileSvc.SetUserType(c.Request().Context(), id, model.UserType(req.UserType)); err != nil {
		if err == service.ErrNotFound {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "profile not found"))
		}
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusOK, map[string]string{"ok": "true"})
}
