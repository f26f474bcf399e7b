package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"croppulse/config"

	"github.com/golang-jwt/jwt"
)

const (
	// AccessTokenTTL is the lifetime of an access token.
	AccessTokenTTL = 1 * time.Hour
	// RefreshTokenTTL is the lifetime of a refresh token.
	RefreshTokenTTL = 7 * 24 * time.Hour
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrWrongTokenType = errors.New("wrong token type")
)

func secretKey() []byte {
	secret := config.AppConfig.JWTSecret
	if secret == "" {
		secret = "croppulse-dev-secret"
	}
	return []byte(secret)
}

// GenerateAccessToken creates a short-lived signed JWT bound to the account.
func GenerateAccessToken(accountID, role string) (string, error) {
	return generateToken(accountID, role, "access", AccessTokenTTL)
}

// GenerateRefreshToken creates a long-lived signed JWT bound to the account.
func GenerateRefreshToken(accountID, role string) (string, error) {
	return generateToken(accountID, role, "refresh", RefreshTokenTTL)
}

func generateToken(accountID, role, typ string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  accountID,
		"role": role,
		"typ":  typ,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// HashToken computes a SHA-256 hash of the token string.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ValidateToken parses and validates a token string and returns its claims.
func ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// TokenClaims holds the fields extracted from a validated token.
type TokenClaims struct {
	AccountID string
	Role      string
	Type      string
	ExpiresAt time.Time
}

// ExtractClaims validates a token string of the expected type ("access" or
// "refresh") and returns its bound account ID, role and expiry.
func ExtractClaims(tokenString, expectedType string) (*TokenClaims, error) {
	claims, err := ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, ErrInvalidToken
	}
	typ, _ := claims["typ"].(string)
	if typ != expectedType {
		return nil, ErrWrongTokenType
	}
	role, _ := claims["role"].(string)

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, ErrInvalidToken
	}

	return &TokenClaims{
		AccountID: sub,
		Role:      role,
		Type:      typ,
		ExpiresAt: time.Unix(int64(exp), 0),
	}, nil
}
