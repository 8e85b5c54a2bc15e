// Package session owns the authenticated identity for the running client.
// It replaces the original app's ad hoc global auth state with an explicit
// lifecycle: Init on startup reads persisted credentials, Establish follows
// a successful login, Teardown clears everything on logout.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dvelez2005/civicwatch/internal/client/credstore"
	"github.com/dvelez2005/civicwatch/internal/client/models"
	"github.com/dvelez2005/civicwatch/internal/common"
	"github.com/dvelez2005/civicwatch/internal/logging"
)

// Session holds the current credentials and persists them through the
// credential store. It is safe for concurrent use and implements
// api.TokenSource.
type Session struct {
	mu    sync.RWMutex
	store credstore.Store
	log   logging.Logger
	creds *models.Credentials
}

func New(store credstore.Store, log logging.Logger) *Session {
	return &Session{store: store, log: log.With("component", "session")}
}

// Init loads persisted credentials on app start. A store without
// credentials yields an anonymous session, not an error. Restored
// credentials whose token is expired or undecodable are cleared so the
// user is prompted to log in instead of hitting a guaranteed 401.
func (s *Session) Init(ctx context.Context) error {
	creds, err := s.store.Load(ctx)
	if err != nil {
		if errors.Is(err, common.ErrNoCredentials) {
			s.log.Info(ctx, "no stored credentials, starting anonymous")
			return nil
		}
		return fmt.Errorf("load credentials: %w", err)
	}

	s.mu.Lock()
	s.creds = creds
	s.mu.Unlock()

	if err := s.TokenValid(); err != nil {
		s.log.Warn(ctx, "stored credentials unusable, starting anonymous", "error", err)
		return s.Teardown(ctx)
	}

	s.log.Info(ctx, "session restored", "user_id", creds.UserID)
	return nil
}

// Establish persists creds and makes them the active identity. Called after
// login or registration.
func (s *Session) Establish(ctx context.Context, creds *models.Credentials) error {
	if err := s.store.Save(ctx, creds); err != nil {
		return fmt.Errorf("persist credentials: %w", err)
	}

	s.mu.Lock()
	s.creds = creds
	s.mu.Unlock()
	return nil
}

// Teardown clears the persisted credentials and the in-memory identity.
// Used on logout, account deletion, and after a 401 from the backend.
func (s *Session) Teardown(ctx context.Context) error {
	s.mu.Lock()
	s.creds = nil
	s.mu.Unlock()

	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear credentials: %w", err)
	}
	return nil
}

// Current returns a copy of the active credentials, or false when anonymous.
func (s *Session) Current() (models.Credentials, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.creds == nil {
		return models.Credentials{}, false
	}
	return *s.creds, true
}

// Token implements api.TokenSource. Anonymous sessions yield "".
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.creds == nil {
		return ""
	}
	return s.creds.Token
}

// UserID returns the authenticated user id, or common.ErrNotAuthenticated.
func (s *Session) UserID() (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.creds == nil {
		return 0, common.ErrNotAuthenticated
	}
	return s.creds.UserID, nil
}

// IsAdmin reports whether the current user holds the admin flag.
func (s *Session) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds != nil && s.creds.Admin
}

// RequireMatch guards mutating operations against cross-account calls:
// the target user id must equal the authenticated one.
func (s *Session) RequireMatch(userID int64) error {
	current, err := s.UserID()
	if err != nil {
		return err
	}
	if current != userID {
		return common.ErrUserMismatch
	}
	return nil
}

// TokenValid decodes the stored bearer token without verifying its
// signature (the secret lives on the server) and checks the exp claim.
// It returns nil for a usable token, common.ErrTokenExpired when exp has
// passed, and common.ErrInvalidToken when the token cannot be decoded.
// Tokens without an exp claim are treated as valid; the backend remains
// the authority either way.
func (s *Session) TokenValid() error {
	token := s.Token()
	if token == "" {
		return common.ErrNotAuthenticated
	}

	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if exp != nil && !exp.After(time.Now()) {
		return common.ErrTokenExpired
	}
	return nil
}
