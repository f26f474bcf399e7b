package handlers

import (
	"net/http"

	"croppulse/services/analytics"

	"github.com/gin-gonic/gin"
)

// DashboardHandler returns the comprehensive HQ dashboard.
func DashboardHandler(svc analytics.AnalyticsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		dashboard, err := svc.Dashboard(c.Request.Context(), c.Query("county"))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, dashboard)
	}
}

// AccountStatsHandler summarizes accounts.
func AccountStatsHandler(svc analytics.AnalyticsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := svc.AccountStats(c.Request.Context(), c.Query("county"))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

// WeatherStatsHandler summarizes weather readings.
func WeatherStatsHandler(svc analytics.AnalyticsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := svc.WeatherStats(c.Request.Context(), c.Query("county"), intQuery(c, "days", 30))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

// ObservationStatsHandler summarizes field observations.
func ObservationStatsHandler(svc analytics.AnalyticsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := svc.ObservationStats(c.Request.Context(), c.Query("county"), intQuery(c, "days", 30))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

// PestDiseaseStatsHandler summarizes pest/disease reports.
func PestDiseaseStatsHandler(svc analytics.AnalyticsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := svc.PestDiseaseStats(c.Request.Context(), c.Query("county"), intQuery(c, "days", 30))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

// AlertStatsHandler summarizes alerts.
func AlertStatsHandler(svc analytics.AnalyticsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := svc.AlertStats(c.Request.Context(), c.Query("county"), intQuery(c, "days", 30))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}
