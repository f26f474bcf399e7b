package user

import "errors"

var (
	// ErrAccountNotFound signals that no account matches the identifier.
	ErrAccountNotFound = errors.New("account not found")
	// ErrPhoneTaken signals a registration against an existing phone number.
	ErrPhoneTaken = errors.New("phone number already registered")
	// ErrAlreadyVerified signals a code request for a verified account.
	ErrAlreadyVerified = errors.New("phone number already verified")
	// ErrInvalidCode signals a missing or mismatched verification code.
	ErrInvalidCode = errors.New("invalid verification code")
	// ErrCodeExpired signals a verification code older than its validity window.
	ErrCodeExpired = errors.New("verification code has expired")
	// ErrInvalidCredentials signals a failed phone/password login.
	ErrInvalidCredentials = errors.New("invalid phone number or password")
	// ErrInvalidToken signals an expired, malformed or revoked session token.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrAccountDisabled signals a login against a deactivated account.
	ErrAccountDisabled = errors.New("account is disabled")
	// ErrNotificationNotFound signals a read receipt against a notification
	// the account does not have.
	ErrNotificationNotFound = errors.New("notification not found")
)

// SMSDeliveryError signals that the account mutation succeeded but the
// verification SMS could not be delivered. Callers surface it as a
// temporary gateway outage, not a failed registration.
type SMSDeliveryError struct {
	Cause error
}

func (e SMSDeliveryError) Error() string {
	return "verification SMS could not be delivered: " + e.Cause.Error()
}

func (e SMSDeliveryError) Unwrap() error {
	return e.Cause
}
