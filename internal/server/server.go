package server

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/ecokabadi/ewaste-backend/internal/handler"
	appmw "github.com/ecokabadi/ewaste-backend/internal/middleware"
	"github.com/ecokabadi/ewaste-backend/internal/repository"
	"github.com/ecokabadi/ewaste-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

type Server struct {
	e              *echo.Echo
	profileRepo    repository.ProfileRepository
	itemRepo       repository.KarmaItemRepository
	redemptionRepo repository.RedemptionRepository
	pickupRepo     repository.PickupRepository
	notifRepo      repository.NotificationRepository
	redeemSvc      service.RedeemService
	sha            string
	build          string
}

func New(db *gorm.DB, sha, buildTime string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) (bool, error) {
			low := strings.ToLower(origin)
			if strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
				strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:") {
				return true, nil
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false, nil
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				return false, nil
			}
			host := u.Hostname()
			if strings.HasSuffix(host, "vercel.app") {
				return true, nil
			}
			return false, nil
		},
	}))

	profileRepo := repository.NewProfileRepository(db)
	itemRepo := repository.NewKarmaItemRepository(db)
	redemptionRepo := repository.NewRedemptionRepository(db)
	pickupRepo := repository.NewPickupRepository(db)
	notifRepo := repository.NewNotificationRepository(db)

	notifSvc := service.NewNotificationService(notifRepo)
	redeemSvc := service.NewRedeemService(db, notifSvc)
	rewardSvc := service.NewRewardService(itemRepo)
	redemptionSvc := service.NewRedemptionService(redemptionRepo, itemRepo)
	profileSvc := service.NewProfileService(profileRepo)
	pickupSvc := service.NewPickupService(pickupRepo, profileRepo, notifSvc)
	adminSvc := service.NewAdminService(profileRepo, pickupRepo)

	redeemHandler := handler.NewRedeemHandler(redeemSvc)
	rewardHandler := handler.NewRewardHandler(rewardSvc)
	redemptionHandler := handler.NewRedemptionHandler(redemptionSvc)
	profileHandler := handler.NewProfileHandler(profileSvc)
	pickupHandler := handler.NewPickupHandler(pickupSvc)
	notifHandler := handler.NewNotificationHandler(notifSvc)
	adminHandler := handler.NewAdminHandler(adminSvc, profileSvc)

	authMw, err := appmw.NewAuthMiddleware(context.Background())
	if err != nil {
		e.Logger.Warnf("firebase auth disabled: %v", err)
		authMw = nil
	}
	adminGuard := appmw.NewAdminGuard(profileRepo)

	var userHandler *handler.UserHandler
	if authMw != nil && authMw.Client() != nil {
		userHandler = handler.NewUserHandler(authMw.Client())
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"ok":         "true",
			"git_sha":    sha,
			"build_time": buildTime,
		})
	})

	api := e.Group("/api")
	if authMw != nil {
		api.POST("/redeem", redeemHandler.Redeem, authMw.RequireAuth)
		api.GET("/me/redemptions", redemptionHandler.ListMine, authMw.RequireAuth)
		api.GET("/me/profile", profileHandler.GetMe, authMw.RequireAuth)
		api.PUT("/me/profile", profileHandler.UpdateMe, authMw.RequireAuth)
		api.POST("/pickups", pickupHandler.Create, authMw.RequireAuth)
		api.GET("/me/pickups", pickupHandler.ListMine, authMw.RequireAuth)
		api.GET("/pickups", pickupHandler.ListByStatus, authMw.RequireAuth)
		api.POST("/pickups/:id/schedule", pickupHandler.Schedule, authMw.RequireAuth)
		api.POST("/pickups/:id/complete", pickupHandler.Complete, authMw.RequireAuth)
		api.GET("/me/notifications", notifHandler.List, authMw.RequireAuth)
		api.POST("/me/notifications/read", notifHandler.MarkAllRead, authMw.RequireAuth)
		api.POST("/rewards", rewardHandler.Create, authMw.RequireAuth, adminGuard.RequireAdmin)
		api.PUT("/rewards/:id", rewardHandler.Update, authMw.RequireAuth, adminGuard.RequireAdmin)
		api.POST("/redemptions/:id/status", redemptionHandler.Advance, authMw.RequireAuth, adminGuard.RequireAdmin)
		api.GET("/admin/stats", adminHandler.Stats, authMw.RequireAuth, adminGuard.RequireAdmin)
		api.POST("/admin/users/:id/type", adminHandler.UpdateUserType, authMw.RequireAuth, adminGuard.RequireAdmin)
	} else {
		api.POST("/redeem", redeemHandler.Redeem)
		api.GET("/me/redemptions", redemptionHandler.ListMine)
		api.GET("/me/profile", profileHandler.GetMe)
		api.PUT("/me/profile", profileHandler.UpdateMe)
		api.POST("/pickups", pickupHandler.Create)
		api.GET("/me/pickups", pickupHandler.ListMine)
		api.GET("/pickups", pickupHandler.ListByStatus)
		api.POST("/pickups/:id/schedule", pickupHandler.Schedule)
		api.POST("/pickups/:id/complete", pickupHandler.Complete)
		api.GET("/me/notifications", notifHandler.List)
		api.POST("/me/notifications/read", notifHandler.MarkAllRead)
		api.POST("/rewards", rewardHandler.Create)
		api.PUT("/rewards/:id", rewardHandler.Update)
		api.POST("/redemptions/:id/status", redemptionHandler.Advance)
		api.GET("/admin/stats", adminHandler.Stats)
		api.POST("/admin/users/:id/type", adminHandler.UpdateUserType)
	}
	api.GET("/rewards", rewardHandler.List)
	api.GET("/rewards/:id", rewardHandler.Get)
	if userHandler != nil {
		api.GET("/users/:uid/public", userHandler.GetPublic)
	}

	return &Server{
		e:              e,
		profileRepo:    profileRepo,
		itemRepo:       itemRepo,
		redemptionRepo: redemptionRepo,
		pickupRepo:     pickupRepo,
		notifRepo:      notifRepo,
		redeemSvc:      redeemSvc,
		sha:            sha,
		build:          buildTime,
	}
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

// SetDB injects the database once the connection is ready; the server
// is allowed to start serving health checks before that.
func (s *Server) SetDB(db *gorm.DB) {
	s.profileRepo.SetDB(db)
	s.itemRepo.SetDB(db)
	s.redemptionRepo.SetDB(db)
	s.pickupRepo.SetDB(db)
	s.notifRepo.SetDB(db)
	s.redeemSvc.SetDB(db)
}
