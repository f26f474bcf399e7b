package handlers

import (
	"net/http"

	"croppulse/middleware"
	"croppulse/services/dashboard"

	"github.com/gin-gonic/gin"
)

// FarmerDashboardHandler returns the caller's farmer home view.
func FarmerDashboardHandler(svc dashboard.DashboardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, err := svc.FarmerDashboard(c.Request.Context(), middleware.AccountID(c))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, d)
	}
}

// OfficerDashboardHandler returns the caller's field-officer work queue.
func OfficerDashboardHandler(svc dashboard.DashboardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, err := svc.OfficerDashboard(c.Request.Context(), middleware.AccountID(c))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, d)
	}
}

// OnboardingStatusHandler reports the caller's setup progress.
func OnboardingStatusHandler(svc dashboard.DashboardService) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, err := svc.OnboardingStatus(c.Request.Context(), middleware.AccountID(c))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, status)
	}
}
