package routes

import (
	"net/http"
	"time"

	"croppulse/handlers"
	"croppulse/middleware"
	"croppulse/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAccountRoutes registers registration, session and profile endpoints.
func RegisterAccountRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/accounts")
	{
		api.POST("/register", hb.RegisterAccountHandler)
		api.POST("/register/farmer", hb.RegisterFarmerHandler)
		api.POST("/verify/request", hb.RequestCodeHandler)
		api.POST("/verify", hb.VerifyPhoneHandler)
		api.POST("/login", hb.LoginHandler)
		api.POST("/token/refresh", hb.RefreshTokenHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthMiddleware(hb.AuthCache))
		api.POST("/logout", hb.LogoutHandler)
		api.GET("/me", hb.GetProfileHandler)
		api.PATCH("/me", hb.UpdateProfileHandler)
		api.PUT("/me/farm", hb.UpdateFarmerHandler)
		api.PUT("/me/fcm-token", hb.UpdateFCMTokenHandler)
		api.PUT("/me/password", hb.ChangePasswordHandler)
		api.GET("", middleware.RequireCapability(models.CapListAccounts), hb.ListAccountsHandler)

		api.GET("/me/notifications", hb.ListNotificationsHandler)
		api.GET("/me/notifications/unread", hb.UnreadCountHandler)
		api.POST("/me/notifications/:id/read", hb.MarkNotificationReadHandler)
		api.POST("/me/notifications/read-all", hb.MarkAllNotificationsHandler)
	}
}

// RegisterWeatherRoutes registers weather endpoints.
func RegisterWeatherRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/weather")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.AuthCache))
		api.GET("/current", hb.CurrentWeatherHandler)
		api.GET("/history", hb.WeatherHistoryHandler)
		api.GET("/forecast", hb.WeatherForecastHandler)
		api.GET("/summary", hb.WeatherSummaryHandler)
		api.GET("/stations", hb.ListStationsHandler)
		api.POST("/stations", middleware.RequireRole(models.RoleHQAnalyst), hb.CreateStationHandler)
	}
}

// RegisterAlertRoutes registers alert and advisory endpoints.
func RegisterAlertRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/alerts")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.AuthCache))
		api.GET("", hb.ListAlertsHandler)
		api.GET("/active", hb.ListActiveAlertsHandler)
		api.GET("/:id", hb.GetAlertHandler)
		api.POST("", middleware.RequireCapability(models.CapManageAlerts), hb.CreateAlertHandler)
		api.POST("/:id/cancel", middleware.RequireCapability(models.CapManageAlerts), hb.CancelAlertHandler)
	}

	adv := r.Group("/api/advisories")
	{
		adv.Use(middleware.JWTAuthMiddleware(hb.AuthCache))
		adv.GET("", hb.ListAdvisoriesHandler)
		adv.POST("", middleware.RequireCapability(models.CapManageAdvisories), hb.CreateAdvisoryHandler)
		adv.POST("/:id/deactivate", middleware.RequireCapability(models.CapManageAdvisories), hb.DeactivateAdvisoryHandler)
	}
}

// RegisterObservationRoutes registers observation and pest report endpoints.
func RegisterObservationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/observations")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.AuthCache))
		api.POST("", hb.CreateObservationHandler)
		api.GET("", hb.ListObservationsHandler)
		api.GET("/:id", hb.GetObservationHandler)
		api.POST("/:id/verify", middleware.RequireCapability(models.CapVerifyObservations), hb.VerifyObservationHandler)
	}

	pests := r.Group("/api/pests")
	{
		pests.Use(middleware.JWTAuthMiddleware(hb.AuthCache))
		pests.POST("/reports", hb.CreateReportHandler)
		pests.GET("/reports", hb.ListReportsHandler)
		pests.POST("/reports/:id/resolve", middleware.RequireCapability(models.CapVerifyObservations), hb.ResolveReportHandler)
		pests.GET("/hotspots", hb.PestHotspotsHandler)
	}
}

// RegisterCommunityRoutes registers forum endpoints.
func RegisterCommunityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/community")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.AuthCache))
		api.GET("/categories", hb.ListCategoriesHandler)
		api.POST("/categories", middleware.RequireRole(models.RoleHQAnalyst), hb.CreateCategoryHandler)

		api.GET("/posts", hb.ListPostsHandler)
		api.GET("/posts/trending", hb.TrendingPostsHandler)
		api.POST("/posts", hb.CreatePostHandler)
		api.GET("/posts/:id", hb.GetPostHandler)
		api.POST("/posts/:id/like", hb.LikePostHandler)
		api.POST("/posts/:id/flag", hb.FlagPostHandler)
		api.POST("/posts/:id/pin", middleware.RequireRole(models.RoleFieldOfficer, models.RoleHQAnalyst), hb.PinPostHandler)
		api.POST("/posts/:id/lock", middleware.RequireRole(models.RoleFieldOfficer, models.RoleHQAnalyst), hb.LockPostHandler)

		api.POST("/posts/:id/replies", hb.CreateReplyHandler)
		api.GET("/posts/:id/replies", hb.ListRepliesHandler)
		api.POST("/replies/:id/like", hb.LikeReplyHandler)

		api.GET("/stats", hb.CommunityStatsHandler)
	}
}

// RegisterDashboardRoutes registers the per-role home views.
func RegisterDashboardRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/dashboard")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.AuthCache))
		api.GET("/farmer", middleware.RequireRole(models.RoleFarmer), hb.FarmerDashboardHandler)
		api.GET("/officer", middleware.RequireRole(models.RoleFieldOfficer, models.RoleHQAnalyst), hb.OfficerDashboardHandler)
		api.GET("/onboarding", hb.OnboardingHandler)
	}
}

// RegisterAnalyticsRoutes registers the HQ dashboard endpoints.
func RegisterAnalyticsRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/analytics")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.AuthCache))
		api.Use(middleware.RequireCapability(models.CapViewAnalytics))
		api.GET("/dashboard", hb.DashboardHandler)
		api.GET("/users", hb.AccountStatsHandler)
		api.GET("/weather", hb.WeatherStatsHandler)
		api.GET("/observations", hb.ObservationStatsHandler)
		api.GET("/pests", hb.PestStatsHandler)
		api.GET("/alerts", hb.AlertStatsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm CropPulse"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterAccountRoutes(r, hb)
	RegisterWeatherRoutes(r, hb)
	RegisterAlertRoutes(r, hb)
	RegisterObservationRoutes(r, hb)
	RegisterCommunityRoutes(r, hb)
	RegisterDashboardRoutes(r, hb)
	RegisterAnalyticsRoutes(r, hb)
	RegisterHealthRoute(r)
}
