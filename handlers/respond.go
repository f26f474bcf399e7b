package handlers

import (
	"errors"
	"net/http"

	"croppulse/services/alert"
	"croppulse/services/community"
	"croppulse/services/observation"
	"croppulse/services/user"
	"croppulse/services/weather"
	"croppulse/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondServiceError maps service errors onto HTTP statuses. Anything
// unmapped is a 500 with a generic message.
func respondServiceError(c *gin.Context, err error) {
	var smsErr user.SMSDeliveryError

	switch {
	case errors.Is(err, user.ErrAccountNotFound),
		errors.Is(err, user.ErrNotificationNotFound),
		errors.Is(err, alert.ErrAlertNotFound),
		errors.Is(err, observation.ErrObservationNotFound),
		errors.Is(err, community.ErrPostNotFound),
		errors.Is(err, weather.ErrNoWeatherData):
		utils.JSONError(c, http.StatusNotFound, err.Error(), "")

	case errors.Is(err, user.ErrPhoneTaken):
		utils.JSONError(c, http.StatusConflict, err.Error(), "")

	case errors.Is(err, user.ErrInvalidCode),
		errors.Is(err, user.ErrCodeExpired),
		errors.Is(err, user.ErrAlreadyVerified),
		errors.Is(err, observation.ErrAlreadyVerified),
		errors.Is(err, community.ErrPostLocked):
		utils.JSONError(c, http.StatusBadRequest, err.Error(), "")

	case errors.Is(err, user.ErrInvalidCredentials),
		errors.Is(err, user.ErrInvalidToken):
		utils.JSONError(c, http.StatusUnauthorized, err.Error(), "")

	case errors.Is(err, user.ErrAccountDisabled):
		utils.JSONError(c, http.StatusForbidden, err.Error(), "")

	case errors.As(err, &smsErr):
		utils.JSONError(c, http.StatusServiceUnavailable,
			"SMS service temporarily unavailable", "request a new verification code shortly")

	default:
		getLogger(c).Error("request failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal server error", "")
	}
}
