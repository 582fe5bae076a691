package middleware

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusdesk/campusdesk-api/internal/models"
	"github.com/campusdesk/campusdesk-api/internal/repository"
	"github.com/campusdesk/campusdesk-api/internal/service"
	"github.com/campusdesk/campusdesk-api/internal/store"
)

func buildJWTRouter(t *testing.T) (*gin.Engine, *service.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := store.New(t.TempDir(), nil, nil)
	require.NoError(t, err)
	userRepo := repository.NewUserRepository(st, nil, nil)
	require.NoError(t, userRepo.Seed(context.Background()))

	authService := service.NewAuthService(userRepo, nil, nil, service.AuthConfig{
		Secret: "test_secret", Expiration: time.Hour, Issuer: "campusdesk-api",
	})

	router := gin.New()
	router.GET("/protected", JWT(authService), func(c *gin.Context) {
		claims, ok := CurrentUser(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"email": claims.Email})
	})
	return router, authService
}

func TestJWTRejectsMissingOrMalformedHeader(t *testing.T) {
	router, _ := buildJWTRouter(t)

	w := performRequest(router, http.MethodGet, "/protected", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = performRequest(router, http.MethodGet, "/protected", map[string]string{"Authorization": "Token abc"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = performRequest(router, http.MethodGet, "/protected", map[string]string{"Authorization": "Bearer garbage"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAttachesClaims(t *testing.T) {
	router, authService := buildJWTRouter(t)

	res, err := authService.Login(context.Background(), models.LoginRequest{
		Email: "student@college.edu", Password: "student123",
	})
	require.NoError(t, err)

	w := performRequest(router, http.MethodGet, "/protected", map[string]string{
		"Authorization": "Bearer " + res.AccessToken,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "student@college.edu")
}
