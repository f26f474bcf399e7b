package handlers

import (
	"errors"
	"net/http"

	"croppulse/middleware"
	"croppulse/models"
	"croppulse/services/user"
	"croppulse/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterAccountHandler handles registration for any role.
func RegisterAccountHandler(svc user.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		var req user.RegistrationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}

		acct, err := svc.Register(c.Request.Context(), req)
		if err != nil {
			var smsErr user.SMSDeliveryError
			if errors.As(err, &smsErr) && acct != nil {
				// Account exists; the client should retry the code request.
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"account": acct,
					"error":   "verification SMS could not be delivered, request a new code shortly",
				})
				return
			}
			logger.Error("Registration failed", zap.Error(err))
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, acct)
	}
}

// RegisterFarmerHandler handles the quick farmer onboarding path.
func RegisterFarmerHandler(svc user.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		var req user.FarmerRegistrationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}

		acct, err := svc.RegisterFarmer(c.Request.Context(), req)
		if err != nil {
			var smsErr user.SMSDeliveryError
			if errors.As(err, &smsErr) && acct != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"account": acct,
					"error":   "verification SMS could not be delivered, request a new code shortly",
				})
				return
			}
			logger.Error("Farmer registration failed", zap.Error(err))
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, acct)
	}
}

// RequestCodeHandler re-sends the phone verification code.
func RequestCodeHandler(svc user.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			PhoneNumber string `json:"phone_number" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
		if err := svc.RequestVerificationCode(c.Request.Context(), req.PhoneNumber); err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "verification code sent"})
	}
}

// VerifyPhoneHandler checks the code and opens a session on success.
func VerifyPhoneHandler(svc user.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			PhoneNumber string `json:"phone_number" binding:"required"`
			Code        string `json:"code" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
		auth, err := svc.VerifyPhone(c.Request.Context(), req.PhoneNumber, req.Code)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, auth)
	}
}

// LoginHandler handles phone/password login.
func LoginHandler(svc user.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			PhoneNumber string `json:"phone_number" binding:"required"`
			Password    string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
		auth, err := svc.Login(c.Request.Context(), req.PhoneNumber, req.Password)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, auth)
	}
}

// RefreshTokenHandler exchanges a refresh token for a fresh pair.
func RefreshTokenHandler(svc user.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			RefreshToken string `json:"refresh_token" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
		auth, err := svc.RefreshSession(c.Request.Context(), req.RefreshToken)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, auth)
	}
}

// LogoutHandler revokes the current session tokens.
func LogoutHandler(svc user.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			RefreshToken string `json:"refresh_token"`
		}
		_ = c.ShouldBindJSON(&req)

		accessToken := ""
		if h := c.GetHeader("Authorization"); len(h) > 7 {
			accessToken = h[7:]
		}
		if err := svc.Logout(c.Request.Context(), accessToken, req.RefreshToken); err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "logged out"})
	}
}

// GetProfileHandler returns the authenticated account.
func GetProfileHandler(svc user.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		acct, err := svc.GetAccount(c.Request.Context(), middleware.AccountID(c))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, acct)
	}
}

// UpdateProfileHandler updates the authenticated account's details.
func UpdateProfileHandler(svc user.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req user.ProfileUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
		acct, err := svc.UpdateProfile(c.Request.Context(), middleware.AccountID(c), req)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, acct)
	}
}

// UpdateFarmerProfileHandler upserts the authenticated farmer's farm details.
func UpdateFarmerProfileHandler(svc user.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.FarmerProfile
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
		acct, err := svc.UpdateFarmerProfile(c.Request.Context(), middleware.AccountID(c), req)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, acct)
	}
}

// UpdateFCMTokenHandler stores the device token for push delivery.
func UpdateFCMTokenHandler(svc user.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			FCMToken string `json:"fcm_token" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
		if err := svc.UpdateFCMToken(c.Request.Context(), middleware.AccountID(c), req.FCMToken); err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "token updated"})
	}
}

// ChangePasswordHandler rotates the account password.
func ChangePasswordHandler(svc user.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			CurrentPassword string `json:"current_password" binding:"required"`
			NewPassword     string `json:"new_password" binding:"required,min=8"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
		if err := svc.ChangePassword(c.Request.Context(), middleware.AccountID(c), req.CurrentPassword, req.NewPassword); err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "password changed"})
	}
}

// ListAccountsHandler lists accounts, optionally filtered by role.
func ListAccountsHandler(svc user.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := utils.GetPage(c)
		role := models.Role(c.Query("role"))

		accounts, total, err := svc.ListAccounts(c.Request.Context(), role, page.Size, page.Offset())
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, utils.Paginate(c, page, total, accounts))
	}
}

// ListNotificationsHandler lists the authenticated account's notifications.
func ListNotificationsHandler(svc user.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := utils.GetPage(c)
		notifs, total, err := svc.Notifications(c.Request.Context(), middleware.AccountID(c), page.Size, page.Offset())
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, utils.Paginate(c, page, total, notifs))
	}
}

// MarkNotificationReadHandler marks one notification read.
func MarkNotificationReadHandler(svc user.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.MarkNotificationRead(c.Request.Context(), middleware.AccountID(c), c.Param("id")); err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "marked read"})
	}
}

// MarkAllNotificationsReadHandler marks all unread notifications read.
func MarkAllNotificationsReadHandler(svc user.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		n, err := svc.MarkAllNotificationsRead(c.Request.Context(), middleware.AccountID(c))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"marked": n})
	}
}

// UnreadCountHandler returns the unread notification count.
func UnreadCountHandler(svc user.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		n, err := svc.UnreadCount(c.Request.Context(), middleware.AccountID(c))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"unread": n})
	}
}
