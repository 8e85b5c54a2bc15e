// Package services glues the typed API client to the local session and
// enforces the client-side guards (ownership, admin role, rating rules)
// before a request leaves the machine.
package services

import (
	"context"
	"fmt"

	"github.com/dvelez2005/civicwatch/internal/client/api"
	"github.com/dvelez2005/civicwatch/internal/client/session"
	"github.com/dvelez2005/civicwatch/internal/logging"
)

// AuthService drives the account lifecycle: login, registration, logout and
// account deletion. Successful authentication establishes the session;
// teardown clears it.
type AuthService struct {
	client api.Client
	sess   *session.Session
	log    logging.Logger
}

func NewAuthService(client api.Client, sess *session.Session, log logging.Logger) *AuthService {
	return &AuthService{client: client, sess: sess, log: log.With("component", "auth")}
}

// Login authenticates against the backend and persists the returned
// credentials. Wrong email or password surfaces as an unauthorized
// api.StatusError.
func (s *AuthService) Login(ctx context.Context, email, password string) error {
	creds, err := s.client.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if err := s.sess.Establish(ctx, creds); err != nil {
		return err
	}
	s.log.Info(ctx, "logged in", "user_id", creds.UserID)
	return nil
}

// Register creates an account and signs it in. When the backend does not
// return a token with the registration response, a follow-up login is
// performed with the same credentials.
func (s *AuthService) Register(ctx context.Context, email, password string, admin bool) error {
	creds, err := s.client.Register(ctx, email, password, admin)
	if err != nil {
		return err
	}
	if creds.Token == "" {
		return s.Login(ctx, email, password)
	}
	if err := s.sess.Establish(ctx, creds); err != nil {
		return err
	}
	s.log.Info(ctx, "registered", "user_id", creds.UserID)
	return nil
}

// Logout drops the session and the stored credentials. Purely local; the
// backend holds no session state beyond the token's own expiry.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.sess.Teardown(ctx)
}

// DeleteAccount removes the authenticated user on the backend, then tears
// the local session down. The session survives a failed delete.
func (s *AuthService) DeleteAccount(ctx context.Context) error {
	userID, err := s.sess.UserID()
	if err != nil {
		return err
	}
	if err := s.client.DeleteUser(ctx, userID); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	s.log.Info(ctx, "account deleted", "user_id", userID)
	return s.sess.Teardown(ctx)
}

// HandleAuthError tears the session down when err is an unauthorized
// response, forcing the user back to login. Reports whether it did.
func (s *AuthService) HandleAuthError(ctx context.Context, err error) bool {
	if !api.IsUnauthorized(err) {
		return false
	}
	if _, ok := s.sess.Current(); !ok {
		return true
	}
	s.log.Warn(ctx, "token rejected, clearing session")
	if terr := s.sess.Teardown(ctx); terr != nil {
		s.log.Error(ctx, "session teardown failed", "error", terr)
	}
	return true
}
