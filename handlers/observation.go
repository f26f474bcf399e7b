package handlers

import (
	"net/http"

	obsRepo "croppulse/database/repository/observation"
	"croppulse/middleware"
	"croppulse/models"
	"croppulse/services/observation"
	"croppulse/utils"

	"github.com/gin-gonic/gin"
)

// CreateObservationHandler records a new field observation.
func CreateObservationHandler(svc observation.ObservationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var o models.FarmObservation
		if err := c.ShouldBindJSON(&o); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
		o.AccountID = middleware.AccountID(c)
		created, err := svc.CreateObservation(c.Request.Context(), &o)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// GetObservationHandler returns one observation.
func GetObservationHandler(svc observation.ObservationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := svc.GetObservation(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

// ListObservationsHandler lists observations with filters.
func ListObservationsHandler(svc observation.ObservationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := utils.GetPage(c)
		filter := obsRepo.ObservationFilter{
			County: c.Query("county"),
			Type:   c.Query("type"),
			Status: c.Query("status"),
		}
		if c.DefaultQuery("mine", "false") == "true" {
			filter.AccountID = middleware.AccountID(c)
		} else if middleware.AccountRole(c) == models.RoleFarmer {
			// Farmers browse only public observations beyond their own.
			filter.PublicOnly = true
		}
		observations, total, err := svc.ListObservations(c.Request.Context(), filter, page.Size, page.Offset())
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, utils.Paginate(c, page, total, observations))
	}
}

// VerifyObservationHandler records an officer's verdict on an observation.
func VerifyObservationHandler(svc observation.ObservationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Status string `json:"status" binding:"required"`
			Notes  string `json:"notes"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
		o, err := svc.VerifyObservation(c.Request.Context(), c.Param("id"), middleware.AccountID(c), req.Status, req.Notes)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

// CreateReportHandler records a pest/disease report.
func CreateReportHandler(svc observation.ObservationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rep models.PestDiseaseReport
		if err := c.ShouldBindJSON(&rep); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
		rep.AccountID = middleware.AccountID(c)
		created, err := svc.CreateReport(c.Request.Context(), &rep)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// ListReportsHandler lists pest/disease reports with filters.
func ListReportsHandler(svc observation.ObservationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := utils.GetPage(c)
		filter := obsRepo.ReportFilter{
			County:         c.Query("county"),
			Severity:       c.Query("severity"),
			UnresolvedOnly: c.DefaultQuery("unresolved", "false") == "true",
		}
		if c.DefaultQuery("mine", "false") == "true" {
			filter.AccountID = middleware.AccountID(c)
		}
		reports, total, err := svc.ListReports(c.Request.Context(), filter, page.Size, page.Offset())
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, utils.Paginate(c, page, total, reports))
	}
}

// ResolveReportHandler marks a pest/disease report resolved.
func ResolveReportHandler(svc observation.ObservationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.ResolveReport(c.Request.Context(), c.Param("id")); err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "report resolved"})
	}
}

// PestHotspotsHandler lists clusters of unresolved reports.
func PestHotspotsHandler(svc observation.ObservationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		hotspots, err := svc.Hotspots(c.Request.Context(), intQuery(c, "days", 30), intQuery(c, "min_reports", 3))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"hotspots": hotspots})
	}
}
