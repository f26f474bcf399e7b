package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"croppulse/models"
	"croppulse/utils"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testPhone = "+254712345678"
	testCode  = "483920"
)

func verificationFixture(issuedAgo time.Duration) (*models.Account, clockwork.Clock) {
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	issuedAt := now.Add(-issuedAgo)
	acct := &models.Account{
		ID:               "acct-1",
		PhoneNumber:      testPhone,
		FullName:         "Wanjiku Kamau",
		Role:             models.RoleFarmer,
		VerificationCode: testCode,
		CodeIssuedAt:     &issuedAt,
		IsActive:         true,
	}
	return acct, clockwork.NewFakeClockAt(now)
}

func TestVerifyPhoneSuccess(t *testing.T) {
	acct, clock := verificationFixture(5 * time.Minute)
	repo := new(mockAccountRepo)
	repo.On("GetByPhone", mock.Anything, testPhone).Return(acct, nil)
	repo.On("ConsumeVerificationCode", mock.Anything, acct.ID, testCode).Return(true, nil)
	repo.On("SetLastLogin", mock.Anything, acct.ID, mock.Anything).Return(nil)

	svc := &DefaultAccountService{Repo: repo, Clock: clock}
	resp, err := svc.VerifyPhone(context.Background(), testPhone, testCode)
	require.NoError(t, err)
	assert.Equal(t, acct.ID, resp.ID)
	assert.Equal(t, models.RoleFarmer, resp.Role)

	claims, err := utils.ExtractClaims(resp.AccessToken, "access")
	require.NoError(t, err)
	assert.Equal(t, acct.ID, claims.AccountID)

	_, err = utils.ExtractClaims(resp.RefreshToken, "refresh")
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestVerifyPhoneFormatsPhone(t *testing.T) {
	acct, clock := verificationFixture(time.Minute)
	repo := new(mockAccountRepo)
	repo.On("GetByPhone", mock.Anything, testPhone).Return(acct, nil)
	repo.On("ConsumeVerificationCode", mock.Anything, acct.ID, testCode).Return(true, nil)
	repo.On("SetLastLogin", mock.Anything, acct.ID, mock.Anything).Return(nil)

	svc := &DefaultAccountService{Repo: repo, Clock: clock}
	_, err := svc.VerifyPhone(context.Background(), "0712345678", testCode)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestVerifyPhoneUnknownAccount(t *testing.T) {
	repo := new(mockAccountRepo)
	repo.On("GetByPhone", mock.Anything, testPhone).Return(nil, nil)

	svc := &DefaultAccountService{Repo: repo}
	_, err := svc.VerifyPhone(context.Background(), testPhone, testCode)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestVerifyPhoneWrongCode(t *testing.T) {
	acct, clock := verificationFixture(time.Minute)
	repo := new(mockAccountRepo)
	repo.On("GetByPhone", mock.Anything, testPhone).Return(acct, nil)

	svc := &DefaultAccountService{Repo: repo, Clock: clock}
	_, err := svc.VerifyPhone(context.Background(), testPhone, "000000")
	assert.ErrorIs(t, err, ErrInvalidCode)
	repo.AssertNotCalled(t, "ConsumeVerificationCode", mock.Anything, mock.Anything, mock.Anything)
}

func TestVerifyPhoneEmptyCode(t *testing.T) {
	acct, clock := verificationFixture(time.Minute)
	repo := new(mockAccountRepo)
	repo.On("GetByPhone", mock.Anything, testPhone).Return(acct, nil)

	svc := &DefaultAccountService{Repo: repo, Clock: clock}
	_, err := svc.VerifyPhone(context.Background(), testPhone, "")
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestVerifyPhoneExpiredCode(t *testing.T) {
	acct, clock := verificationFixture(11 * time.Minute)
	repo := new(mockAccountRepo)
	repo.On("GetByPhone", mock.Anything, testPhone).Return(acct, nil)

	svc := &DefaultAccountService{Repo: repo, Clock: clock}
	_, err := svc.VerifyPhone(context.Background(), testPhone, testCode)
	assert.ErrorIs(t, err, ErrCodeExpired)
	repo.AssertNotCalled(t, "ConsumeVerificationCode", mock.Anything, mock.Anything, mock.Anything)
}

func TestVerifyPhoneLostConsumeRace(t *testing.T) {
	acct, clock := verificationFixture(time.Minute)
	repo := new(mockAccountRepo)
	repo.On("GetByPhone", mock.Anything, testPhone).Return(acct, nil)
	repo.On("ConsumeVerificationCode", mock.Anything, acct.ID, testCode).Return(false, nil)

	svc := &DefaultAccountService{Repo: repo, Clock: clock}
	_, err := svc.VerifyPhone(context.Background(), testPhone, testCode)
	assert.ErrorIs(t, err, ErrInvalidCode)
	repo.AssertNotCalled(t, "SetLastLogin", mock.Anything, mock.Anything, mock.Anything)
}

func TestVerifyPhoneConsumedCodeCannotBeReplayed(t *testing.T) {
	// After a successful verify the stored code is cleared, so presenting the
	// same code again must fail as invalid rather than verify twice.
	acct, clock := verificationFixture(5 * time.Minute)
	acct.VerificationCode = ""
	acct.CodeIssuedAt = nil
	acct.IsVerified = true
	repo := new(mockAccountRepo)
	repo.On("GetByPhone", mock.Anything, testPhone).Return(acct, nil)

	svc := &DefaultAccountService{Repo: repo, Clock: clock}
	_, err := svc.VerifyPhone(context.Background(), testPhone, testCode)
	assert.ErrorIs(t, err, ErrInvalidCode)
	repo.AssertNotCalled(t, "ConsumeVerificationCode", mock.Anything, mock.Anything, mock.Anything)
}

func TestRequestCodeResendsUnexpired(t *testing.T) {
	acct, clock := verificationFixture(2 * time.Minute)
	repo := new(mockAccountRepo)
	repo.On("GetByPhone", mock.Anything, testPhone).Return(acct, nil)
	sms := &fakeSMS{}

	svc := &DefaultAccountService{Repo: repo, SMS: sms, Clock: clock}
	require.NoError(t, svc.RequestVerificationCode(context.Background(), testPhone))

	// The in-flight code is resent, not replaced.
	repo.AssertNotCalled(t, "SetVerificationCode", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	require.Len(t, sms.messages, 1)
	assert.Contains(t, sms.messages[0], testCode)
	assert.Equal(t, []string{testPhone}, sms.to)
}

func TestRequestCodeRegeneratesExpired(t *testing.T) {
	acct, clock := verificationFixture(15 * time.Minute)
	repo := new(mockAccountRepo)
	repo.On("GetByPhone", mock.Anything, testPhone).Return(acct, nil)
	repo.On("SetVerificationCode", mock.Anything, acct.ID, mock.Anything, mock.Anything).Return(nil)
	sms := &fakeSMS{}

	svc := &DefaultAccountService{Repo: repo, SMS: sms, Clock: clock}
	require.NoError(t, svc.RequestVerificationCode(context.Background(), testPhone))

	repo.AssertCalled(t, "SetVerificationCode", mock.Anything, acct.ID, mock.Anything, mock.Anything)
	require.Len(t, sms.messages, 1)
	assert.NotContains(t, sms.messages[0], testCode)
}

func TestRequestCodeAlreadyVerified(t *testing.T) {
	acct, clock := verificationFixture(time.Minute)
	acct.IsVerified = true
	repo := new(mockAccountRepo)
	repo.On("GetByPhone", mock.Anything, testPhone).Return(acct, nil)
	sms := &fakeSMS{}

	svc := &DefaultAccountService{Repo: repo, SMS: sms, Clock: clock}
	err := svc.RequestVerificationCode(context.Background(), testPhone)
	assert.ErrorIs(t, err, ErrAlreadyVerified)
	assert.Empty(t, sms.messages)
}

func TestRequestCodeSMSOutage(t *testing.T) {
	acct, clock := verificationFixture(2 * time.Minute)
	repo := new(mockAccountRepo)
	repo.On("GetByPhone", mock.Anything, testPhone).Return(acct, nil)
	sms := &fakeSMS{err: errors.New("carrier timeout")}

	svc := &DefaultAccountService{Repo: repo, SMS: sms, Clock: clock}
	err := svc.RequestVerificationCode(context.Background(), testPhone)

	var deliveryErr SMSDeliveryError
	require.ErrorAs(t, err, &deliveryErr)
	assert.Contains(t, deliveryErr.Error(), "carrier timeout")
}
