// Package services contains the thin, typed wrappers around the gateway for
// each backend resource: auth, restaurants, reservations, and the admin
// surface. No business logic lives here — path building, query assembly and
// payload decoding only. Normalized gateway errors pass through unchanged.
package services

import (
	"context"

	"github.com/tablebook/tablebook/internal/client/api"
	"github.com/tablebook/tablebook/internal/client/models"
)

// AuthService wraps the /auth endpoints.
type AuthService struct {
	gw *api.Gateway
}

func NewAuthService(gw *api.Gateway) *AuthService {
	return &AuthService{gw: gw}
}

// LoginResult is the token+user pair issued on login and register.
type LoginResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Login exchanges credentials for a token and profile. The caller is
// responsible for email normalization; the payload is sent as given.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	env, err := s.gw.Post(ctx, "/auth/login", body)
	if err != nil {
		return nil, err
	}

	var result LoginResult
	if err := env.Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// RegisterInput is the account-creation payload. The server trusts
// password_confirmation to have been checked by the caller.
type RegisterInput struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
	Phone                string `json:"phone,omitempty"`
}

// Register creates an account and returns the same pair as Login.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*LoginResult, error) {
	env, err := s.gw.Post(ctx, "/auth/register", input)
	if err != nil {
		return nil, err
	}

	var result LoginResult
	if err := env.Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Me fetches the current profile.
func (s *AuthService) Me(ctx context.Context) (*models.User, error) {
	env, err := s.gw.Get(ctx, "/auth/me")
	if err != nil {
		return nil, err
	}

	var payload struct {
		User *models.User `json:"user"`
	}
	if err := env.Decode(&payload); err != nil {
		return nil, err
	}
	return payload.User, nil
}

// Logout tells the backend to revoke the current token.
func (s *AuthService) Logout(ctx context.Context) error {
	_, err := s.gw.Post(ctx, "/auth/logout", nil)
	return err
}

// Refresh exchanges the current token for a fresh one.
func (s *AuthService) Refresh(ctx context.Context) (string, error) {
	env, err := s.gw.Post(ctx, "/auth/refresh", nil)
	if err != nil {
		return "", err
	}

	var payload struct {
		Token string `json:"token"`
	}
	if err := env.Decode(&payload); err != nil {
		return "", err
	}
	return payload.Token, nil
}
