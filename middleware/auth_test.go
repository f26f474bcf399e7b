package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"croppulse/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authRouter(client *redis.Client) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", JWTAuthMiddleware(client), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"account_id": AccountID(c)})
	})
	return r
}

func getProtected(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	router := authRouter(client)

	token, err := utils.GenerateAccessToken("acct-1", "farmer")
	require.NoError(t, err)

	w := getProtected(router, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "acct-1")
}

func TestJWTAuthRejectsMissingHeader(t *testing.T) {
	router := authRouter(nil)
	w := getProtected(router, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthRejectsRefreshToken(t *testing.T) {
	router := authRouter(nil)

	token, err := utils.GenerateRefreshToken("acct-1", "farmer")
	require.NoError(t, err)

	w := getProtected(router, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthRejectsRevokedToken(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	router := authRouter(client)

	token, err := utils.GenerateAccessToken("acct-1", "farmer")
	require.NoError(t, err)
	require.NoError(t, mr.Set("revoked:"+utils.HashToken(token), "1"))

	w := getProtected(router, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "revoked")
}

func TestJWTAuthFailsClosedWhenCacheUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	router := authRouter(client)

	token, err := utils.GenerateAccessToken("acct-1", "farmer")
	require.NoError(t, err)

	// An unreachable revocation list must not let tokens through unchecked.
	mr.Close()
	w := getProtected(router, "Bearer "+token)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
