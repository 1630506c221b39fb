package middleware

import (
	"net/http"

	"github.com/ecokabadi/ewaste-backend/internal/model"
	"github.com/ecokabadi/ewaste-backend/internal/repository"
	"github.com/labstack/echo/v4"
)

// AdminGuard restricts routes to profiles with the admin user type. It
// runs after RequireAuth, so uid is already on the context.
type AdminGuard struct {
	profileRepo repository.ProfileRepository
}

func NewAdminGuard(profileRepo repository.ProfileRepository) *AdminGuard {
	return &AdminGuard{profileRepo: profileRepo}
}

func (g *AdminGuard) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid, _ := c.Get("uid").(string)
		if uid == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		}
		p, err := g.profileRepo.FindByID(c.Request().Context(), uid)
		if err != nil || p.UserType != model.UserTypeAdmin {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
		}
		return next(c)
	}
}
