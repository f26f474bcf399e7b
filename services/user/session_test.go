package user

import (
	"context"
	"testing"

	"croppulse/models"
	"croppulse/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func sessionFixture(t *testing.T) (*DefaultAccountService, *mockAccountRepo) {
	t.Helper()
	mr := miniredis.RunT(t)
	repo := new(mockAccountRepo)
	svc := &DefaultAccountService{
		Repo:      repo,
		AuthCache: redis.NewClient(&redis.Options{Addr: mr.Addr()}),
	}
	return svc, repo
}

func activeAccount(passwordHash string) *models.Account {
	return &models.Account{
		ID:           "acct-1",
		PhoneNumber:  testPhone,
		FullName:     "Wanjiku Kamau",
		Role:         models.RoleFarmer,
		PasswordHash: passwordHash,
		IsVerified:   true,
		IsActive:     true,
	}
}

func TestLoginSuccess(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.DefaultCost)
	require.NoError(t, err)
	svc, repo := sessionFixture(t)
	repo.On("GetByPhone", mock.Anything, testPhone).Return(activeAccount(string(hash)), nil)
	repo.On("SetLastLogin", mock.Anything, "acct-1", mock.Anything).Return(nil)

	resp, err := svc.Login(context.Background(), testPhone, "correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.DefaultCost)
	require.NoError(t, err)
	svc, repo := sessionFixture(t)
	repo.On("GetByPhone", mock.Anything, testPhone).Return(activeAccount(string(hash)), nil)

	_, err = svc.Login(context.Background(), testPhone, "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownPhone(t *testing.T) {
	svc, repo := sessionFixture(t)
	repo.On("GetByPhone", mock.Anything, testPhone).Return(nil, nil)

	_, err := svc.Login(context.Background(), testPhone, "anything")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginPasswordlessAccount(t *testing.T) {
	// Farmer accounts registered over USSD have no password; they must log
	// in through phone verification instead.
	svc, repo := sessionFixture(t)
	repo.On("GetByPhone", mock.Anything, testPhone).Return(activeAccount(""), nil)

	_, err := svc.Login(context.Background(), testPhone, "anything")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginDisabledAccount(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.DefaultCost)
	require.NoError(t, err)
	acct := activeAccount(string(hash))
	acct.IsActive = false
	svc, repo := sessionFixture(t)
	repo.On("GetByPhone", mock.Anything, testPhone).Return(acct, nil)

	_, err = svc.Login(context.Background(), testPhone, "correct horse")
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestRefreshSessionIsSingleUse(t *testing.T) {
	svc, repo := sessionFixture(t)
	repo.On("GetByID", mock.Anything, "acct-1").Return(activeAccount(""), nil)

	refresh, err := utils.GenerateRefreshToken("acct-1", "farmer")
	require.NoError(t, err)

	resp, err := svc.RefreshSession(context.Background(), refresh)
	require.NoError(t, err)
	assert.NotEqual(t, refresh, resp.RefreshToken)

	// The consumed token is revoked and cannot be replayed.
	_, err = svc.RefreshSession(context.Background(), refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshSessionRejectsAccessToken(t *testing.T) {
	svc, _ := sessionFixture(t)
	access, err := utils.GenerateAccessToken("acct-1", "farmer")
	require.NoError(t, err)

	_, err = svc.RefreshSession(context.Background(), access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshSessionDisabledAccount(t *testing.T) {
	acct := activeAccount("")
	acct.IsActive = false
	svc, repo := sessionFixture(t)
	repo.On("GetByID", mock.Anything, "acct-1").Return(acct, nil)

	refresh, err := utils.GenerateRefreshToken("acct-1", "farmer")
	require.NoError(t, err)

	_, err = svc.RefreshSession(context.Background(), refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutRevokesBothTokens(t *testing.T) {
	svc, _ := sessionFixture(t)
	access, err := utils.GenerateAccessToken("acct-1", "farmer")
	require.NoError(t, err)
	refresh, err := utils.GenerateRefreshToken("acct-1", "farmer")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), access, refresh))

	for _, token := range []string{access, refresh} {
		revoked, err := svc.IsTokenRevoked(context.Background(), token)
		require.NoError(t, err)
		assert.True(t, revoked)
	}
}

func TestLogoutIgnoresInvalidTokens(t *testing.T) {
	svc, _ := sessionFixture(t)
	assert.NoError(t, svc.Logout(context.Background(), "garbage", ""))
}
