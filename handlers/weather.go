package handlers

import (
	"net/http"
	"strconv"

	"croppulse/models"
	"croppulse/services/weather"
	"croppulse/utils"

	"github.com/gin-gonic/gin"
)

func intQuery(c *gin.Context, name string, fallback int) int {
	n, err := strconv.Atoi(c.DefaultQuery(name, strconv.Itoa(fallback)))
	if err != nil {
		return fallback
	}
	return n
}

// CurrentWeatherHandler returns the latest reading for a county.
func CurrentWeatherHandler(svc weather.WeatherService) gin.HandlerFunc {
	return func(c *gin.Context) {
		county := c.Query("county")
		if county == "" {
			utils.JSONError(c, http.StatusBadRequest, "county is required", "")
			return
		}
		data, err := svc.Current(c.Request.Context(), county)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, data)
	}
}

// WeatherHistoryHandler lists recent readings for a county.
func WeatherHistoryHandler(svc weather.WeatherService) gin.HandlerFunc {
	return func(c *gin.Context) {
		county := c.Query("county")
		if county == "" {
			utils.JSONError(c, http.StatusBadRequest, "county is required", "")
			return
		}
		page := utils.GetPage(c)
		data, total, err := svc.History(c.Request.Context(), county, intQuery(c, "days", 7), page.Size, page.Offset())
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, utils.Paginate(c, page, total, data))
	}
}

// WeatherForecastHandler returns the daily forecast for a county.
func WeatherForecastHandler(svc weather.WeatherService) gin.HandlerFunc {
	return func(c *gin.Context) {
		county := c.Query("county")
		if county == "" {
			utils.JSONError(c, http.StatusBadRequest, "county is required", "")
			return
		}
		forecasts, err := svc.Forecast(c.Request.Context(), county, intQuery(c, "days", 5))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"county": county, "forecasts": forecasts})
	}
}

// WeatherSummaryHandler aggregates recent readings for a county.
func WeatherSummaryHandler(svc weather.WeatherService) gin.HandlerFunc {
	return func(c *gin.Context) {
		county := c.Query("county")
		if county == "" {
			utils.JSONError(c, http.StatusBadRequest, "county is required", "")
			return
		}
		summary, err := svc.Summary(c.Request.Context(), county, intQuery(c, "days", 7))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}

// ListStationsHandler lists the monitored weather stations.
func ListStationsHandler(svc weather.WeatherService) gin.HandlerFunc {
	return func(c *gin.Context) {
		stations, err := svc.ListStations(c.Request.Context())
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"stations": stations})
	}
}

// CreateStationHandler registers a new monitored station.
func CreateStationHandler(svc weather.WeatherService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var st models.WeatherStation
		if err := c.ShouldBindJSON(&st); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
		if err := svc.CreateStation(c.Request.Context(), &st); err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, st)
	}
}
