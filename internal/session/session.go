// Package session holds the authenticated identity for a storefront
// process: silent resume at start-up, login/logout, and the account
// operations that hang off the current user.
package session

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/PattyWambere/KapeeFrontend/internal/api"
	"github.com/PattyWambere/KapeeFrontend/internal/models"
	"github.com/PattyWambere/KapeeFrontend/internal/util"

	"go.uber.org/zap"
)

// ErrNotAuthenticated is returned for operations that require a session.
var ErrNotAuthenticated = errors.New("session: not authenticated")

// Listener is notified whenever the authentication state flips. The cart
// store subscribes to replace its backend and refetch.
type Listener func(authenticated bool)

// Store owns the current user. Authenticated state is simply the presence
// of a user, gated by the loading flag during the initial resume check.
type Store struct {
	client *api.Client
	auth   *api.AuthService
	logger *zap.Logger

	mu        sync.Mutex
	user      *models.User
	loading   bool
	listeners []Listener
}

// NewStore creates a session store. Loading stays true until Resume has
// completed, so callers can avoid rendering a flash of logged-out state.
func NewStore(client *api.Client, auth *api.AuthService) *Store {
	return &Store{
		client:  client,
		auth:    auth,
		logger:  util.GetLogger(),
		loading: true,
	}
}

// OnAuthChange registers a listener for authentication-state transitions.
func (s *Store) OnAuthChange(fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// User returns the current user, or nil when logged out.
func (s *Store) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Authenticated reports whether a user is present.
func (s *Store) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil
}

// Loading reports whether the initial resume check is still in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Resume silently restores a session from a persisted token. On any
// failure the token is discarded and the process is treated as logged out.
// It must complete before any authenticated surface renders.
func (s *Store) Resume(ctx context.Context) {
	defer s.finishLoading()

	if _, ok := s.client.Token(); !ok {
		return
	}

	user, err := s.auth.Profile(ctx)
	if err != nil {
		s.logger.Warn("Session resume failed", zap.Error(err))
		if err := s.client.ClearToken(); err != nil {
			s.logger.Warn("Failed to discard session token", zap.Error(err))
		}
		return
	}

	s.setUser(user)
}

// Login exchanges credentials for a token, persists it, then fetches the
// profile. On failure the user stays logged out and the error carries the
// server's message.
func (s *Store) Login(ctx context.Context, email, password string) (*models.User, error) {
	token, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := s.client.SetToken(token); err != nil {
		return nil, err
	}

	user, err := s.auth.Profile(ctx)
	if err != nil {
		return nil, err
	}

	s.setUser(user)
	util.LoginsTotal.Inc()
	s.logger.Info("Logged in", zap.String("email", user.Email), zap.String("role", user.Role))
	return user, nil
}

// Register creates an account. It does not authenticate; the caller logs
// in separately.
func (s *Store) Register(ctx context.Context, firstName, lastName, email, password string) error {
	return s.auth.Register(ctx, api.RegisterRequest{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  password,
	})
}

// ChangePassword replaces the current password.
func (s *Store) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	if !s.Authenticated() {
		return ErrNotAuthenticated
	}
	return s.auth.ChangePassword(ctx, oldPassword, newPassword)
}

// ForgotPassword requests a password-reset email.
func (s *Store) ForgotPassword(ctx context.Context, email string) error {
	return s.auth.ForgotPassword(ctx, email)
}

// ResetPassword sets a new password using a reset token.
func (s *Store) ResetPassword(ctx context.Context, token, password string) error {
	return s.auth.ResetPassword(ctx, token, password)
}

// UploadAvatar uploads a new avatar and swaps it into the current user in
// place.
func (s *Store) UploadAvatar(ctx context.Context, filename string, file io.Reader) (string, error) {
	if !s.Authenticated() {
		return "", ErrNotAuthenticated
	}

	avatar, err := s.auth.UploadAvatar(ctx, filename, file)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	if s.user != nil {
		s.user.Avatar = avatar
	}
	s.mu.Unlock()
	return avatar, nil
}

// Logout notifies the server best-effort and unconditionally clears the
// local token and user state.
func (s *Store) Logout(ctx context.Context) {
	if err := s.auth.Logout(ctx); err != nil {
		s.logger.Debug("Logout notification failed", zap.Error(err))
	}
	if err := s.client.ClearToken(); err != nil {
		s.logger.Warn("Failed to discard session token", zap.Error(err))
	}
	s.setUser(nil)
}

func (s *Store) finishLoading() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

// setUser swaps the current user and notifies listeners when the
// authenticated state actually flips.
func (s *Store) setUser(user *models.User) {
	s.mu.Lock()
	was := s.user != nil
	s.user = user
	now := s.user != nil
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	if was == now {
		return
	}
	for _, fn := range listeners {
		fn(now)
	}
}
