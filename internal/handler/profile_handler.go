package handler

import (
	"net/http"
	"time"

	"github.com/ecokabadi/ewaste-backend/internal/model"
	"github.com/ecokabadi/ewaste-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type ProfileHandler struct {
	svc service.ProfileService
}

func NewProfileHandler(svc service.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

type ProfileResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	UserType    string  `json:"userType"`
	KarmaPoints int64   `json:"karmaPoints"`
	Location    *string `json:"location"`
	PhoneNumber *string `json:"phoneNumber"`
	Bio         *string `json:"bio"`
	AvatarURL   *string `json:"avatarUrl"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

func toProfileResponse(p *model.Profile) ProfileResponse {
	return ProfileResponse{
		ID:          p.ID,
		Name:        p.Name,
		UserType:    string(p.UserType),
		KarmaPoints: p.KarmaPoints,
		Location:    p.Location,
		PhoneNumber: p.PhoneNumber,
		Bio:         p.Bio,
		AvatarURL:   p.AvatarURL,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.Format(time.RFC3339),
	}
}

func (h *ProfileHandler) GetMe(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	p, err := h.svc.Get(c.Request().Context(), uid)
	if err != nil {
		if err == service.ErrNotFound {
			return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "profile not found"))
		}
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch profile"))
	}
	return c.JSON(http.StatusOK, toProfileResponse(p))
}

type profileUpdateRequest struct {
	Name        string  `json:"name"`
	Location    *string `json:"location"`
	PhoneNumber *string `json:"phoneNumber"`
	Bio         *string `json:"bio"`
	AvatarURL   *string `json:"avatarUrl"`
}

func (h *ProfileHandler) UpdateMe(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	if uid == "" {
		return c.JSON(http.StatusUnauthorized, NewErrorResponse("unauthorized", "missing uid"))
	}
	var req profileUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	p, err := h.svc.Upsert(c.Request().Context(), uid, service.ProfileUpdate{
		Name:        req.Name,
		Location:    req.Location,
		PhoneNumber: req.PhoneNumber,
		Bio:         req.Bio,
		AvatarURL:   req.AvatarURL,
	})
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
	return c.JSON(http.StatusOK, toProfileResponse(p))
}
