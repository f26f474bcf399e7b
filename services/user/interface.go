package user

import (
	"context"

	userRepo "croppulse/database/repository/user"
	"croppulse/models"
	"croppulse/services/gateway"

	"github.com/go-redis/redis/v8"
	"github.com/jonboulle/clockwork"
)

// AccountService handles registration, phone verification, sessions and
// account management.
type AccountService interface {
	// Registration and verification
	Register(ctx context.Context, req RegistrationRequest) (*models.Account, error)
	RegisterFarmer(ctx context.Context, req FarmerRegistrationRequest) (*models.Account, error)
	RequestVerificationCode(ctx context.Context, phone string) error
	VerifyPhone(ctx context.Context, phone, code string) (*AuthResponse, error)

	// Sessions
	Login(ctx context.Context, phone, password string) (*AuthResponse, error)
	RefreshSession(ctx context.Context, refreshToken string) (*AuthResponse, error)
	Logout(ctx context.Context, accessToken, refreshToken string) error

	// Account management
	GetAccount(ctx context.Context, id string) (*models.Account, error)
	UpdateProfile(ctx context.Context, id string, req ProfileUpdateRequest) (*models.Account, error)
	UpdateFarmerProfile(ctx context.Context, id string, p models.FarmerProfile) (*models.Account, error)
	UpdateFCMToken(ctx context.Context, id, token string) error
	ChangePassword(ctx context.Context, id, currentPassword, newPassword string) error
	ListAccounts(ctx context.Context, role models.Role, limit, offset int) ([]*models.Account, int, error)

	// Notifications
	Notifications(ctx context.Context, accountID string, limit, offset int) ([]*models.Notification, int, error)
	MarkNotificationRead(ctx context.Context, accountID, notificationID string) error
	MarkAllNotificationsRead(ctx context.Context, accountID string) (int, error)
	UnreadCount(ctx context.Context, accountID string) (int, error)
}

// DefaultAccountService is the production implementation.
type DefaultAccountService struct {
	Repo      userRepo.AccountRepository
	NotifRepo userRepo.NotificationRepository
	SMS       gateway.SMSGateway
	Geocoder  gateway.GeocodingGateway
	AuthCache *redis.Client
	Clock     clockwork.Clock
}

// RegistrationRequest carries the fields shared by all roles.
type RegistrationRequest struct {
	PhoneNumber string      `json:"phone_number" binding:"required"`
	Password    string      `json:"password" binding:"required,min=8"`
	FullName    string      `json:"full_name" binding:"required"`
	Email       string      `json:"email"`
	Role        models.Role `json:"role" binding:"required"`
	County      string      `json:"county" binding:"required"`
	Subcounty   string      `json:"subcounty"`
	Ward        string      `json:"ward"`
	Village     string      `json:"village"`
	Language    string      `json:"language"`
}

// FarmerRegistrationRequest is the short onboarding path for farmers: no
// password, location resolved from coordinates when county is omitted.
type FarmerRegistrationRequest struct {
	PhoneNumber string   `json:"phone_number" binding:"required"`
	FullName    string   `json:"full_name" binding:"required"`
	County      string   `json:"county"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	PrimaryCrop string   `json:"primary_crop"`
	FarmSize    float64  `json:"farm_size"`
	Language    string   `json:"language"`
}

// ProfileUpdateRequest carries the mutable account fields.
type ProfileUpdateRequest struct {
	FullName    *string `json:"full_name"`
	Email       *string `json:"email"`
	County      *string `json:"county"`
	Subcounty   *string `json:"subcounty"`
	Ward        *string `json:"ward"`
	Village     *string `json:"village"`
	Language    *string `json:"language"`
	ReceiveSMS  *bool   `json:"receive_sms_notifications"`
	ReceivePush *bool   `json:"receive_push_notifications"`
}

// AuthResponse carries the session tokens issued on login or verification.
type AuthResponse struct {
	ID           string      `json:"id"`
	PhoneNumber  string      `json:"phone_number"`
	FullName     string      `json:"full_name"`
	Role         models.Role `json:"role"`
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
}
