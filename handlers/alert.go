package handlers

import (
	"net/http"

	"croppulse/middleware"
	"croppulse/services/alert"
	"croppulse/utils"

	"github.com/gin-gonic/gin"
)

// CreateAlertHandler creates an alert and triggers its fan-out.
func CreateAlertHandler(svc alert.AlertService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req alert.CreateAlertRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
		a, err := svc.CreateAlert(c.Request.Context(), req, middleware.AccountID(c))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, a)
	}
}

// GetAlertHandler returns one alert.
func GetAlertHandler(svc alert.AlertService) gin.HandlerFunc {
	return func(c *gin.Context) {
		a, err := svc.GetAlert(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, a)
	}
}

// ListAlertsHandler lists alerts filtered by county and status.
func ListAlertsHandler(svc alert.AlertService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := utils.GetPage(c)
		alerts, total, err := svc.ListAlerts(c.Request.Context(), c.Query("county"), c.Query("status"), page.Size, page.Offset())
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, utils.Paginate(c, page, total, alerts))
	}
}

// ListActiveAlertsHandler lists alerts currently in their validity window.
func ListActiveAlertsHandler(svc alert.AlertService) gin.HandlerFunc {
	return func(c *gin.Context) {
		alerts, err := svc.ListActiveAlerts(c.Request.Context())
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"alerts": alerts})
	}
}

// CancelAlertHandler cancels an alert before its window ends.
func CancelAlertHandler(svc alert.AlertService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.CancelAlert(c.Request.Context(), c.Param("id")); err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "alert cancelled"})
	}
}

// CreateAdvisoryHandler creates an advisory and triggers its fan-out.
func CreateAdvisoryHandler(svc alert.AlertService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req alert.CreateAdvisoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
		adv, err := svc.CreateAdvisory(c.Request.Context(), req, middleware.AccountID(c))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, adv)
	}
}

// ListAdvisoriesHandler lists advisories, optionally only active ones.
func ListAdvisoriesHandler(svc alert.AlertService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := utils.GetPage(c)
		activeOnly := c.DefaultQuery("active", "false") == "true"
		advisories, total, err := svc.ListAdvisories(c.Request.Context(), c.Query("county"), activeOnly, page.Size, page.Offset())
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, utils.Paginate(c, page, total, advisories))
	}
}

// DeactivateAdvisoryHandler retires an advisory early.
func DeactivateAdvisoryHandler(svc alert.AlertService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.DeactivateAdvisory(c.Request.Context(), c.Param("id")); err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "advisory deactivated"})
	}
}
