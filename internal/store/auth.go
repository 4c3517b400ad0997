// Package store holds the client-side state: one exclusively-owned bundle
// of fields per domain (auth, search, user) plus the actions that mutate
// them. Actions call the API client groups, normalize responses into the
// fields, and apply the configured fallback policy when a read fails.
// Write operations return (response, error); read operations never
// propagate a failure to the caller.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/zhaohz/homeseek/internal/api"
	"github.com/zhaohz/homeseek/internal/kvstore"
	"github.com/zhaohz/homeseek/internal/models"
	"github.com/zhaohz/homeseek/internal/session"
)

// AuthStore owns the session state: token, user identity, and the login
// pending flag. It persists the session across restarts through the
// key-value store.
type AuthStore struct {
	auth *api.Auth
	kv   kvstore.Store
	log  *zap.Logger

	mu           sync.Mutex
	token        string
	userID       int64
	username     string
	loggedIn     bool
	loginLoading bool
}

// NewAuthStore wires an AuthStore to its dependencies.
func NewAuthStore(clients *api.Clients, kv kvstore.Store, log *zap.Logger) *AuthStore {
	return &AuthStore{auth: clients.Auth, kv: kv, log: log}
}

// Token returns the current session token, empty when anonymous.
func (s *AuthStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// UserID returns the authenticated user's id, zero when anonymous.
func (s *AuthStore) UserID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

// Username returns the authenticated user's name, empty when anonymous.
func (s *AuthStore) Username() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.username
}

// IsLoggedIn reports whether a login or restored session is active.
func (s *AuthStore) IsLoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loggedIn
}

// LoginLoading reports whether a login is in flight. The flag exists for
// UI binding only; it is not a lock.
func (s *AuthStore) LoginLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loginLoading
}

// Initialize restores a persisted session. A missing or corrupt session
// leaves the store anonymous and clears any partial persisted state.
func (s *AuthStore) Initialize() {
	token, info, ok := session.Load(s.kv)
	if !ok {
		s.ClearAuth()
		return
	}
	s.mu.Lock()
	s.token = token
	s.userID = info.UserID
	s.username = info.Username
	s.loggedIn = true
	s.mu.Unlock()
}

// Login authenticates and, on a response carrying a numeric userId, moves
// the store to authenticated and persists the session. Failures:
//   - HTTP 401 → ErrInvalidCredentials
//   - other HTTP errors → the server-provided message when present
//   - transport failure → a generic network error
//   - a 2xx body without a numeric userId → ErrInvalidResponse; nothing
//     is persisted and the store stays anonymous
func (s *AuthStore) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	s.mu.Lock()
	s.loginLoading = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.loginLoading = false
		s.mu.Unlock()
	}()

	resp, err := s.auth.Login(ctx, models.LoginRequest{Username: username, Password: password})
	if err != nil {
		s.log.Error("login request failed", zap.String("username", username), zap.Error(err))
		return nil, loginError(err)
	}

	if resp.UserID == nil {
		if resp.Message != "" {
			return nil, fmt.Errorf("%w: %s", ErrInvalidResponse, resp.Message)
		}
		return nil, ErrInvalidResponse
	}

	token := resp.Token
	if token == "" {
		// The backend does not issue tokens yet; synthesize a local one so
		// the session invariant (logged in iff token non-empty) holds.
		token = fmt.Sprintf("real-token-%d", time.Now().UnixMilli())
	}
	name := resp.Username
	if name == "" {
		name = username
	}
	profile := resp.UserProfile
	if profile == "" {
		profile = "{}"
	}

	s.mu.Lock()
	s.token = token
	s.userID = *resp.UserID
	s.username = name
	s.loggedIn = true
	s.mu.Unlock()

	if err := session.Save(s.kv, token, models.SessionInfo{
		UserID:      *resp.UserID,
		Username:    name,
		UserProfile: profile,
	}); err != nil {
		s.log.Warn("failed to persist session", zap.Error(err))
	}

	return resp, nil
}

// Register creates an account and, on a response carrying a numeric
// userId, immediately logs in with the same credentials. Failure mapping
// mirrors Login, with HTTP 400 surfacing the server's message.
func (s *AuthStore) Register(ctx context.Context, username, password, phone string, profile *models.UserProfile) (*models.LoginResponse, error) {
	resp, err := s.auth.Register(ctx, models.RegisterRequest{
		Username:    username,
		Password:    password,
		PhoneNumber: phone,
		UserProfile: profile,
	})
	if err != nil {
		s.log.Error("register request failed", zap.String("username", username), zap.Error(err))
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			return nil, fmt.Errorf("registration failed: %s", apiErr.Message)
		}
		return nil, fmt.Errorf("registration failed, please retry: %w", err)
	}

	if resp.UserID == nil {
		if resp.Message != "" {
			return nil, fmt.Errorf("%w: %s", ErrInvalidResponse, resp.Message)
		}
		return nil, ErrInvalidResponse
	}

	// Auto-login with the freshly registered credentials.
	return s.Login(ctx, username, password)
}

// Logout ends the session server-side on a best-effort basis and always
// clears local state.
func (s *AuthStore) Logout(ctx context.Context) {
	if _, err := s.auth.Logout(ctx); err != nil {
		s.log.Warn("server logout failed", zap.Error(err))
	}
	s.ClearAuth()
}

// ClearAuth resets the store to anonymous and removes both persisted
// session entries.
func (s *AuthStore) ClearAuth() {
	s.mu.Lock()
	s.token = ""
	s.userID = 0
	s.username = ""
	s.loggedIn = false
	s.mu.Unlock()

	if err := session.Clear(s.kv); err != nil {
		s.log.Warn("failed to clear persisted session", zap.Error(err))
	}
}

// loginError maps a client-layer failure to the message shown at the
// login form.
func loginError(err error) error {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == 401 {
			return ErrInvalidCredentials
		}
		if apiErr.Message != "" {
			return fmt.Errorf("login failed: %s", apiErr.Message)
		}
		return fmt.Errorf("login failed: %w", apiErr)
	}
	return fmt.Errorf("network error, please retry: %w", err)
}
