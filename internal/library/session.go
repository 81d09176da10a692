package library

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/uta/internal/models"
	"github.com/desertthunder/uta/internal/services"
	"github.com/desertthunder/uta/internal/shared"
)

// Session holds the current-user state and wraps the backend auth calls.
//
// A Session is an explicit object rather than ambient state so callers can
// run isolated sessions side by side. Overlapping calls are not deduplicated;
// the last one to resolve determines the final state.
type Session struct {
	backend *services.BackendClient
	logger  *log.Logger

	mu      sync.Mutex
	user    *models.User
	loading bool
}

// NewSession creates a session manager backed by the given client.
func NewSession(backend *services.BackendClient, logger *log.Logger) *Session {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Session{backend: backend, logger: logger}
}

// SetLogger replaces the session's logger.
func (s *Session) SetLogger(l *log.Logger) {
	s.mu.Lock()
	s.logger = l
	s.mu.Unlock()
}

func (s *Session) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

// IsLoading reports whether an auth call is in flight.
func (s *Session) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// CurrentUser returns the logged-in user, or nil when logged out.
func (s *Session) CurrentUser() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// LoggedIn reports whether a current user exists.
func (s *Session) LoggedIn() bool {
	return s.CurrentUser() != nil
}

func (s *Session) replaceUser(u *models.User) {
	s.mu.Lock()
	s.user = u
	s.mu.Unlock()
}

// Register creates an account and replaces the current-user state.
//
// Missing fields fail client-side with [shared.ErrValidation] before any
// request is sent; backend rejections surface as [shared.ErrAuth] with the
// backend-provided message.
func (s *Session) Register(ctx context.Context, email, password, displayName string) (*models.User, error) {
	if email == "" || password == "" || displayName == "" {
		return nil, fmt.Errorf("%w: email, password and display name are required", shared.ErrValidation)
	}

	s.setLoading(true)
	defer s.setLoading(false)

	user, err := s.backend.Register(ctx, email, password, displayName)
	if err != nil {
		return nil, err
	}

	s.replaceUser(user)
	return user, nil
}

// Login authenticates and replaces the current-user state.
func (s *Session) Login(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", shared.ErrValidation)
	}

	s.setLoading(true)
	defer s.setLoading(false)

	user, err := s.backend.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	s.replaceUser(user)
	return user, nil
}

// FetchUser re-synchronizes the session from the backend record for the
// given user id. Fails with [shared.ErrNotFound] when the id no longer exists.
func (s *Session) FetchUser(ctx context.Context, id int64) (*models.User, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	user, err := s.backend.FetchUser(ctx, id)
	if err != nil {
		return nil, err
	}

	s.replaceUser(user)
	return user, nil
}

// Logout clears the current-user state. No network call is made.
func (s *Session) Logout() {
	s.replaceUser(nil)
}
