package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusdesk/campusdesk-api/internal/models"
	"github.com/campusdesk/campusdesk-api/internal/repository"
	appErrors "github.com/campusdesk/campusdesk-api/pkg/errors"
)

type authRepoStub struct {
	users   map[string]models.User
	updated map[string]repository.UpdateUserRequest
}

func (s *authRepoStub) Authenticate(ctx context.Context, email, password string) (*models.UserProfile, error) {
	user, ok := s.users[email]
	if !ok || user.Password != password {
		return nil, appErrors.ErrInvalidCredentials
	}
	profile := user.Profile(email)
	return &profile, nil
}

func (s *authRepoStub) Get(ctx context.Context, email string) (*models.User, error) {
	user, ok := s.users[email]
	if !ok {
		return nil, appErrors.NotFound("User not found")
	}
	return &user, nil
}

func (s *authRepoStub) Update(ctx context.Context, email string, req repository.UpdateUserRequest) error {
	if s.updated == nil {
		s.updated = map[string]repository.UpdateUserRequest{}
	}
	s.updated[email] = req
	return nil
}

func testAuthConfig() AuthConfig {
	return AuthConfig{Secret: "test_secret", Expiration: time.Hour, Issuer: "campusdesk-api"}
}

func TestLoginIssuesValidatableToken(t *testing.T) {
	repo := &authRepoStub{users: map[string]models.User{
		"student@college.edu": {
			Password: "student123", Role: models.RoleStudent, Name: "Demo Student", Department: "Computer Science",
		},
	}}
	svc := NewAuthService(repo, nil, nil, testAuthConfig())

	res, err := svc.Login(context.Background(), models.LoginRequest{
		Email: "student@college.edu", Password: "student123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.AccessToken)
	assert.Equal(t, int64(3600), res.ExpiresIn)
	assert.Equal(t, "Demo Student", res.User.Name)

	claims, err := svc.ValidateToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "student@college.edu", claims.Email)
	assert.Equal(t, models.RoleStudent, claims.Role)
	assert.Equal(t, "Computer Science", claims.Department)
	assert.Equal(t, "campusdesk-api", claims.Issuer)
}

func TestLoginInvalidCredentials(t *testing.T) {
	repo := &authRepoStub{users: map[string]models.User{
		"student@college.edu": {Password: "student123", Role: models.RoleStudent, Name: "Demo Student"},
	}}
	svc := NewAuthService(repo, nil, nil, testAuthConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email: "student@college.edu", Password: "nope",
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidCredentials))
	assert.Equal(t, "Invalid email or password", appErrors.FromError(err).Message)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	repo := &authRepoStub{users: map[string]models.User{
		"student@college.edu": {Password: "student123", Role: models.RoleStudent, Name: "Demo Student"},
	}}
	issuer := NewAuthService(repo, nil, nil, testAuthConfig())

	res, err := issuer.Login(context.Background(), models.LoginRequest{
		Email: "student@college.edu", Password: "student123",
	})
	require.NoError(t, err)

	other := NewAuthService(repo, nil, nil, AuthConfig{Secret: "different", Expiration: time.Hour})
	_, err = other.ValidateToken(res.AccessToken)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthorized))
}

func TestChangePasswordVerifiesOldPassword(t *testing.T) {
	digest, err := repository.HashPassword("oldpass1")
	require.NoError(t, err)

	repo := &authRepoStub{users: map[string]models.User{
		"a@college.edu": {Password: digest, Role: models.RoleStudent, Name: "A"},
	}}
	svc := NewAuthService(repo, nil, nil, testAuthConfig())

	err = svc.ChangePassword(context.Background(), "a@college.edu", ChangePasswordRequest{
		OldPassword: "wrong", NewPassword: "newpass1",
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrForbidden))
	assert.Empty(t, repo.updated)

	err = svc.ChangePassword(context.Background(), "a@college.edu", ChangePasswordRequest{
		OldPassword: "oldpass1", NewPassword: "newpass1",
	})
	require.NoError(t, err)
	require.Contains(t, repo.updated, "a@college.edu")
	assert.Equal(t, "newpass1", *repo.updated["a@college.edu"].Password)
}
