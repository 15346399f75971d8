package api

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/PattyWambere/KapeeFrontend/internal/models"
)

// AuthService wraps the authentication and account endpoints.
type AuthService struct {
	client *Client
}

// NewAuthService creates an auth service over the shared client.
func NewAuthService(client *Client) *AuthService {
	return &AuthService{client: client}
}

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Register creates an account. It does not authenticate the new user.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) error {
	return s.client.do(ctx, http.MethodPost, "/auth/register", req, nil)
}

// Login exchanges credentials for a session token. The token is not stored
// here; the session store owns that decision.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}

	var resp struct {
		Token string `json:"token"`
	}
	if err := s.client.do(ctx, http.MethodPost, "/auth/login", body, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Logout notifies the server that the session is over.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.client.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

// Profile fetches the authenticated user's identity record.
func (s *AuthService) Profile(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := s.client.do(ctx, http.MethodGet, "/auth/profile", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword replaces the current password.
func (s *AuthService) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	body := map[string]string{"oldPassword": oldPassword, "newPassword": newPassword}
	return s.client.do(ctx, http.MethodPost, "/auth/change-password", body, nil)
}

// ForgotPassword requests a password-reset email.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return s.client.do(ctx, http.MethodPost, "/auth/forgot-password", body, nil)
}

// ResetPassword sets a new password using a reset token.
func (s *AuthService) ResetPassword(ctx context.Context, token, password string) error {
	body := map[string]string{"password": password}
	return s.client.do(ctx, http.MethodPost, fmt.Sprintf("/auth/reset-password/%s", token), body, nil)
}

// UploadAvatar uploads a new avatar image and returns its URL.
func (s *AuthService) UploadAvatar(ctx context.Context, filename string, file io.Reader) (string, error) {
	var resp struct {
		Avatar string `json:"avatar"`
	}
	if err := s.client.upload(ctx, "/users/upload-avatar", "avatar", filename, file, &resp); err != nil {
		return "", err
	}
	return resp.Avatar, nil
}
