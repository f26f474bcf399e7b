// File: croppulse/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"croppulse/config"
	"croppulse/cron"
	"croppulse/database"
	alertRepoPkg "croppulse/database/repository/alert"
	analyticsRepoPkg "croppulse/database/repository/analytics"
	communityRepoPkg "croppulse/database/repository/community"
	observationRepoPkg "croppulse/database/repository/observation"
	userRepoPkg "croppulse/database/repository/user"
	weatherRepoPkg "croppulse/database/repository/weather"
	"croppulse/handlers"
	"croppulse/routes"
	"croppulse/services/alert"
	"croppulse/services/analytics"
	"croppulse/services/community"
	"croppulse/services/dashboard"
	"croppulse/services/gateway"
	"croppulse/services/notification"
	"croppulse/services/observation"
	"croppulse/services/user"
	"croppulse/services/weather"
	"croppulse/utils"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()
	utils.FirebaseInit()

	// External gateways.
	smsGateway, err := gateway.NewSNSSMSGateway(context.Background())
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize SNS SMS gateway: %v", err)
	}
	pushGateway, err := gateway.NewFCMPushGateway(utils.FCMClient)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize FCM push gateway: %v", err)
	}
	weatherGateway := gateway.NewOpenWeatherGateway(utils.GetCacheClient())
	geocoder := gateway.NewNominatimGateway(utils.GetCacheClient())

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	pool := database.GetPool()
	accountRepo := userRepoPkg.NewPostgresAccountRepo(pool)
	notifRepo := userRepoPkg.NewPostgresNotificationRepo(pool)
	weatherRepo := weatherRepoPkg.NewPostgresRepo(pool)
	alertRepo := alertRepoPkg.NewPostgresRepo(pool)
	observationRepo := observationRepoPkg.NewPostgresRepo(pool)
	communityRepo := communityRepoPkg.NewPostgresRepo(pool)
	analyticsRepo := analyticsRepoPkg.NewPostgresRepo(pool)

	// services.
	clock := clockwork.NewRealClock()
	dispatcher := notification.NewDefaultDispatcher(notifRepo, pushGateway, smsGateway)

	accountService := &user.DefaultAccountService{
		Repo:      accountRepo,
		NotifRepo: notifRepo,
		SMS:       smsGateway,
		Geocoder:  geocoder,
		AuthCache: utils.GetAuthCacheClient(),
		Clock:     clock,
	}
	weatherService := &weather.DefaultWeatherService{
		Repo:    weatherRepo,
		Gateway: weatherGateway,
		Clock:   clock,
	}
	alertService := &alert.DefaultAlertService{
		Repo:       alertRepo,
		Accounts:   accountRepo,
		Stations:   weatherRepo,
		Weather:    weatherGateway,
		Dispatcher: dispatcher,
		Clock:      clock,
	}
	observationService := &observation.DefaultObservationService{
		Repo:       observationRepo,
		Accounts:   accountRepo,
		Dispatcher: dispatcher,
		Clock:      clock,
	}
	communityService := &community.DefaultCommunityService{
		Repo:  communityRepo,
		Clock: clock,
	}
	analyticsService := &analytics.DefaultAnalyticsService{
		Repo:      analyticsRepo,
		Community: communityRepo,
		Clock:     clock,
	}
	dashboardService := &dashboard.DefaultDashboardService{
		Accounts:     accountRepo,
		Notifs:       notifRepo,
		Alerts:       alertRepo,
		Weather:      weatherRepo,
		Observations: observationRepo,
		Clock:        clock,
	}

	// Assemble the handler bundle and register routes.
	handlerBundle := handlers.NewHandlerBundle(
		utils.GetAuthCacheClient(),
		accountService,
		weatherService,
		alertService,
		observationService,
		communityService,
		analyticsService,
		dashboardService,
	)
	routes.RegisterRoutes(router, handlerBundle)

	// Background jobs.
	cron.InitScheduler()
	cron.InitWorker(cron.Deps{
		Weather:    weatherService,
		Alerts:     alertService,
		Stations:   weatherRepo,
		Accounts:   accountRepo,
		NotifRepo:  notifRepo,
		Dispatcher: dispatcher,
	})

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
