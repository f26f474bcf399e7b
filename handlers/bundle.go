// File: croppulse/handlers/bundle.go
package handlers

import (
	"croppulse/services/alert"
	"croppulse/services/analytics"
	"croppulse/services/community"
	"croppulse/services/dashboard"
	"croppulse/services/observation"
	"croppulse/services/user"
	"croppulse/services/weather"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	AuthCache *redis.Client

	// Account endpoints
	RegisterAccountHandler      gin.HandlerFunc
	RegisterFarmerHandler       gin.HandlerFunc
	RequestCodeHandler          gin.HandlerFunc
	VerifyPhoneHandler          gin.HandlerFunc
	LoginHandler                gin.HandlerFunc
	RefreshTokenHandler         gin.HandlerFunc
	LogoutHandler               gin.HandlerFunc
	GetProfileHandler           gin.HandlerFunc
	UpdateProfileHandler        gin.HandlerFunc
	UpdateFarmerHandler         gin.HandlerFunc
	UpdateFCMTokenHandler       gin.HandlerFunc
	ChangePasswordHandler       gin.HandlerFunc
	ListAccountsHandler         gin.HandlerFunc
	ListNotificationsHandler    gin.HandlerFunc
	MarkNotificationReadHandler gin.HandlerFunc
	MarkAllNotificationsHandler gin.HandlerFunc
	UnreadCountHandler          gin.HandlerFunc

	// Weather endpoints
	CurrentWeatherHandler  gin.HandlerFunc
	WeatherHistoryHandler  gin.HandlerFunc
	WeatherForecastHandler gin.HandlerFunc
	WeatherSummaryHandler  gin.HandlerFunc
	ListStationsHandler    gin.HandlerFunc
	CreateStationHandler   gin.HandlerFunc

	// Alert endpoints
	CreateAlertHandler        gin.HandlerFunc
	GetAlertHandler           gin.HandlerFunc
	ListAlertsHandler         gin.HandlerFunc
	ListActiveAlertsHandler   gin.HandlerFunc
	CancelAlertHandler        gin.HandlerFunc
	CreateAdvisoryHandler     gin.HandlerFunc
	ListAdvisoriesHandler     gin.HandlerFunc
	DeactivateAdvisoryHandler gin.HandlerFunc

	// Observation endpoints
	CreateObservationHandler gin.HandlerFunc
	GetObservationHandler    gin.HandlerFunc
	ListObservationsHandler  gin.HandlerFunc
	VerifyObservationHandler gin.HandlerFunc
	CreateReportHandler      gin.HandlerFunc
	ListReportsHandler       gin.HandlerFunc
	ResolveReportHandler     gin.HandlerFunc
	PestHotspotsHandler      gin.HandlerFunc

	// Community endpoints
	ListCategoriesHandler gin.HandlerFunc
	CreateCategoryHandler gin.HandlerFunc
	CreatePostHandler     gin.HandlerFunc
	GetPostHandler        gin.HandlerFunc
	ListPostsHandler      gin.HandlerFunc
	TrendingPostsHandler  gin.HandlerFunc
	LikePostHandler       gin.HandlerFunc
	FlagPostHandler       gin.HandlerFunc
	PinPostHandler        gin.HandlerFunc
	LockPostHandler       gin.HandlerFunc
	CreateReplyHandler    gin.HandlerFunc
	ListRepliesHandler    gin.HandlerFunc
	LikeReplyHandler      gin.HandlerFunc
	CommunityStatsHandler gin.HandlerFunc

	// Home views
	FarmerDashboardHandler  gin.HandlerFunc
	OfficerDashboardHandler gin.HandlerFunc
	OnboardingHandler       gin.HandlerFunc

	// Analytics endpoints
	DashboardHandler        gin.HandlerFunc
	AccountStatsHandler     gin.HandlerFunc
	WeatherStatsHandler     gin.HandlerFunc
	ObservationStatsHandler gin.HandlerFunc
	PestStatsHandler        gin.HandlerFunc
	AlertStatsHandler       gin.HandlerFunc
}

// NewHandlerBundle wires every handler to its service.
func NewHandlerBundle(
	authCache *redis.Client,
	accountSvc user.AccountService,
	weatherSvc weather.WeatherService,
	alertSvc alert.AlertService,
	observationSvc observation.ObservationService,
	communitySvc community.CommunityService,
	analyticsSvc analytics.AnalyticsService,
	dashboardSvc dashboard.DashboardService,
) *HandlerBundle {
	return &HandlerBundle{
		AuthCache: authCache,

		RegisterAccountHandler:      RegisterAccountHandler(accountSvc),
		RegisterFarmerHandler:       RegisterFarmerHandler(accountSvc),
		RequestCodeHandler:          RequestCodeHandler(accountSvc),
		VerifyPhoneHandler:          VerifyPhoneHandler(accountSvc),
		LoginHandler:                LoginHandler(accountSvc),
		RefreshTokenHandler:         RefreshTokenHandler(accountSvc),
		LogoutHandler:               LogoutHandler(accountSvc),
		GetProfileHandler:           GetProfileHandler(accountSvc),
		UpdateProfileHandler:        UpdateProfileHandler(accountSvc),
		UpdateFarmerHandler:         UpdateFarmerProfileHandler(accountSvc),
		UpdateFCMTokenHandler:       UpdateFCMTokenHandler(accountSvc),
		ChangePasswordHandler:       ChangePasswordHandler(accountSvc),
		ListAccountsHandler:         ListAccountsHandler(accountSvc),
		ListNotificationsHandler:    ListNotificationsHandler(accountSvc),
		MarkNotificationReadHandler: MarkNotificationReadHandler(accountSvc),
		MarkAllNotificationsHandler: MarkAllNotificationsReadHandler(accountSvc),
		UnreadCountHandler:          UnreadCountHandler(accountSvc),

		CurrentWeatherHandler:  CurrentWeatherHandler(weatherSvc),
		WeatherHistoryHandler:  WeatherHistoryHandler(weatherSvc),
		WeatherForecastHandler: WeatherForecastHandler(weatherSvc),
		WeatherSummaryHandler:  WeatherSummaryHandler(weatherSvc),
		ListStationsHandler:    ListStationsHandler(weatherSvc),
		CreateStationHandler:   CreateStationHandler(weatherSvc),

		CreateAlertHandler:        CreateAlertHandler(alertSvc),
		GetAlertHandler:           GetAlertHandler(alertSvc),
		ListAlertsHandler:         ListAlertsHandler(alertSvc),
		ListActiveAlertsHandler:   ListActiveAlertsHandler(alertSvc),
		CancelAlertHandler:        CancelAlertHandler(alertSvc),
		CreateAdvisoryHandler:     CreateAdvisoryHandler(alertSvc),
		ListAdvisoriesHandler:     ListAdvisoriesHandler(alertSvc),
		DeactivateAdvisoryHandler: DeactivateAdvisoryHandler(alertSvc),

		CreateObservationHandler: CreateObservationHandler(observationSvc),
		GetObservationHandler:    GetObservationHandler(observationSvc),
		ListObservationsHandler:  ListObservationsHandler(observationSvc),
		VerifyObservationHandler: VerifyObservationHandler(observationSvc),
		CreateReportHandler:      CreateReportHandler(observationSvc),
		ListReportsHandler:       ListReportsHandler(observationSvc),
		ResolveReportHandler:     ResolveReportHandler(observationSvc),
		PestHotspotsHandler:      PestHotspotsHandler(observationSvc),

		ListCategoriesHandler: ListCategoriesHandler(communitySvc),
		CreateCategoryHandler: CreateCategoryHandler(communitySvc),
		CreatePostHandler:     CreatePostHandler(communitySvc),
		GetPostHandler:        GetPostHandler(communitySvc),
		ListPostsHandler:      ListPostsHandler(communitySvc),
		TrendingPostsHandler:  TrendingPostsHandler(communitySvc),
		LikePostHandler:       LikePostHandler(communitySvc),
		FlagPostHandler:       FlagPostHandler(communitySvc),
		PinPostHandler:        PinPostHandler(communitySvc),
		LockPostHandler:       LockPostHandler(communitySvc),
		CreateReplyHandler:    CreateReplyHandler(communitySvc),
		ListRepliesHandler:    ListRepliesHandler(communitySvc),
		LikeReplyHandler:      LikeReplyHandler(communitySvc),
		CommunityStatsHandler: CommunityStatsHandler(communitySvc),

		FarmerDashboardHandler:  FarmerDashboardHandler(dashboardSvc),
		OfficerDashboardHandler: OfficerDashboardHandler(dashboardSvc),
		OnboardingHandler:       OnboardingStatusHandler(dashboardSvc),

		DashboardHandler:        DashboardHandler(analyticsSvc),
		AccountStatsHandler:     AccountStatsHandler(analyticsSvc),
		WeatherStatsHandler:     WeatherStatsHandler(analyticsSvc),
		ObservationStatsHandler: ObservationStatsHandler(analyticsSvc),
		PestStatsHandler:        PestDiseaseStatsHandler(analyticsSvc),
		AlertStatsHandler:       AlertStatsHandler(analyticsSvc),
	}
}
