package user

import (
	"context"
	"time"

	"croppulse/models"
	"croppulse/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const revokedTokenPrefix = "revoked:"

func (s *DefaultAccountService) issueSession(acct *models.Account) (*AuthResponse, error) {
	access, err := utils.GenerateAccessToken(acct.ID, string(acct.Role))
	if err != nil {
		return nil, err
	}
	refresh, err := utils.GenerateRefreshToken(acct.ID, string(acct.Role))
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		ID:           acct.ID,
		PhoneNumber:  acct.PhoneNumber,
		FullName:     acct.FullName,
		Role:         acct.Role,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// Login opens a session for a verified phone/password pair. Lookup failure
// and password mismatch are indistinguishable to the caller.
func (s *DefaultAccountService) Login(ctx context.Context, phone, password string) (*AuthResponse, error) {
	logger := utils.GetLogger()

	acct, err := s.Repo.GetByPhone(ctx, utils.FormatPhoneNumber(phone))
	if err != nil {
		return nil, err
	}
	if acct == nil || acct.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	if !acct.IsActive {
		return nil, ErrAccountDisabled
	}

	if err := s.Repo.SetLastLogin(ctx, acct.ID, s.now()); err != nil {
		logger.Warn("failed to record last login", zap.Error(err))
	}
	return s.issueSession(acct)
}

// RefreshSession exchanges a valid, unrevoked refresh token for a fresh
// token pair. The old refresh token is revoked so each one is single use.
func (s *DefaultAccountService) RefreshSession(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := utils.ExtractClaims(refreshToken, "refresh")
	if err != nil {
		return nil, ErrInvalidToken
	}
	revoked, err := s.isRevoked(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrInvalidToken
	}

	acct, err := s.Repo.GetByID(ctx, claims.AccountID)
	if err != nil {
		return nil, err
	}
	if acct == nil || !acct.IsActive {
		return nil, ErrInvalidToken
	}

	if err := s.revoke(ctx, refreshToken, claims.ExpiresAt); err != nil {
		return nil, err
	}
	return s.issueSession(acct)
}

// Logout revokes both tokens of the session. Tokens that are already
// invalid are ignored so logout never fails for an expired session.
func (s *DefaultAccountService) Logout(ctx context.Context, accessToken, refreshToken string) error {
	for _, pair := range []struct {
		token string
		typ   string
	}{
		{accessToken, "access"},
		{refreshToken, "refresh"},
	} {
		if pair.token == "" {
			continue
		}
		claims, err := utils.ExtractClaims(pair.token, pair.typ)
		if err != nil {
			continue
		}
		if err := s.revoke(ctx, pair.token, claims.ExpiresAt); err != nil {
			return err
		}
	}
	return nil
}

// IsTokenRevoked reports whether the token is on the revocation list. The
// auth middleware consults this for every request.
func (s *DefaultAccountService) IsTokenRevoked(ctx context.Context, token string) (bool, error) {
	return s.isRevoked(ctx, token)
}

func (s *DefaultAccountService) isRevoked(ctx context.Context, token string) (bool, error) {
	if s.AuthCache == nil {
		return false, nil
	}
	n, err := s.AuthCache.Exists(ctx, revokedTokenPrefix+utils.HashToken(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// revoke blacklists the token hash until the token would have expired
// anyway, keeping the revocation list self-pruning.
func (s *DefaultAccountService) revoke(ctx context.Context, token string, expiresAt time.Time) error {
	if s.AuthCache == nil {
		return nil
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.AuthCache.Set(ctx, revokedTokenPrefix+utils.HashToken(token), "1", ttl).Err()
}
