// Package services contains the console's application services. Each one
// composes calls of the API client into a user-level operation: signing in,
// the presigned upload, URL submission and the dashboard overview.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/ingestctl/internal/client/client"
	"github.com/dmitrijs2005/ingestctl/internal/client/models"
)

// SessionStore is the part of session.Store the services need.
type SessionStore interface {
	Save(ctx context.Context, username string, ts *models.TokenSet) error
	Clear(ctx context.Context) error
	Username(ctx context.Context) string
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: authenticate against the backend and persist the token set.
//   - Logout: forget the local session. The backend keeps no session to end.
//   - WhoAmI: ask the backend who the current token belongs to.
//   - Ping: unauthenticated liveness probe.
type AuthService interface {
	Login(ctx context.Context, username string, password []byte) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) (*models.UserInfo, error)
	Ping(ctx context.Context) (*models.ServiceHealth, error)
}

var ErrEmptyCredentials = errors.New("username and password are required")

type authService struct {
	client  client.Client
	session SessionStore
}

func NewAuthService(c client.Client, s SessionStore) AuthService {
	return &authService{client: c, session: s}
}

func (a *authService) Login(ctx context.Context, username string, password []byte) error {
	username = strings.TrimSpace(username)
	if username == "" || len(password) == 0 {
		return ErrEmptyCredentials
	}

	ts, err := a.client.Login(ctx, models.Credentials{Username: username, Password: string(password)})
	if err != nil {
		return fmt.Errorf("login error: %w", err)
	}

	if err := a.session.Save(ctx, username, ts); err != nil {
		return fmt.Errorf("session saving error: %w", err)
	}
	return nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.session.Clear(ctx)
}

func (a *authService) WhoAmI(ctx context.Context) (*models.UserInfo, error) {
	u, err := a.client.Me(ctx)
	if err != nil {
		return nil, err
	}
	if u.Username == "" {
		u.Username = a.session.Username(ctx)
	}
	return u, nil
}

func (a *authService) Ping(ctx context.Context) (*models.ServiceHealth, error) {
	return a.client.Health(ctx)
}
