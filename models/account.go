package models

import "time"

// Account is a platform user identified by phone number.
type Account struct {
	ID          string `json:"id"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email,omitempty"`
	FullName    string `json:"full_name"`
	Role        Role   `json:"role"`

	PasswordHash string `json:"-"`

	// Geographic tags.
	County    string `json:"county"`
	Subcounty string `json:"subcounty,omitempty"`
	Ward      string `json:"ward,omitempty"`
	Village   string `json:"village,omitempty"`

	// Verification state. The code is cleared on successful verification or
	// expiry; it must never survive consumption.
	IsVerified       bool       `json:"is_verified"`
	VerificationCode string     `json:"-"`
	CodeIssuedAt     *time.Time `json:"-"`

	// Preferences.
	Language    string `json:"language"`
	ReceiveSMS  bool   `json:"receive_sms_notifications"`
	ReceivePush bool   `json:"receive_push_notifications"`
	FCMToken    string `json:"-"`

	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`

	// Role-specific profile; exactly one is set depending on Role, none for
	// analysts.
	FarmerProfile       *FarmerProfile       `json:"farmer_profile,omitempty"`
	FieldOfficerProfile *FieldOfficerProfile `json:"field_officer_profile,omitempty"`
}

// FarmerProfile carries the farm details of a farmer account.
type FarmerProfile struct {
	AccountID         string    `json:"-"`
	FarmName          string    `json:"farm_name"`
	FarmSizeHectares  float64   `json:"farm_size"`
	PrimaryCrop       string    `json:"primary_crop"`
	SecondaryCrops    []string  `json:"secondary_crops"`
	Latitude          *float64  `json:"latitude,omitempty"`
	Longitude         *float64  `json:"longitude,omitempty"`
	YearsOfExperience int       `json:"years_of_experience"`
	FarmingType       string    `json:"farming_type"`
	HasIrrigation     bool      `json:"has_irrigation"`
	HasGreenhouse     bool      `json:"has_greenhouse"`
	Notes             string    `json:"notes,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// FieldOfficerProfile carries the work details of a field officer account.
type FieldOfficerProfile struct {
	AccountID           string    `json:"-"`
	EmployeeID          string    `json:"employee_id"`
	AssignedCounties    []string  `json:"assigned_counties"`
	AssignedSubcounties []string  `json:"assigned_subcounties"`
	SupervisorID        string    `json:"supervisor,omitempty"`
	CoverageRadiusKM    int       `json:"coverage_area_radius"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
