package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/civigo/internal/client/remote"
	"github.com/dmitrijs2005/civigo/internal/client/session"
	"github.com/dmitrijs2005/civigo/internal/common"
)

// Authenticator is the remote side of authentication.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (remote.LoginResponse, error)
	Ping(ctx context.Context) error
}

// SessionStore persists the session locally.
type SessionStore interface {
	session.Source
	Save(ctx context.Context, s session.Session) error
	Clear(ctx context.Context) error
}

// AuthService logs the user in and out.
//
// A stored session survives restarts, so the client keeps working offline
// until the token expires. Login itself needs the server.
type AuthService interface {
	Login(ctx context.Context, email, password string) (session.Session, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (session.Session, error)
	Ping(ctx context.Context) error
}

type authService struct {
	remote   Authenticator
	sessions SessionStore
}

func NewAuthService(remote Authenticator, sessions SessionStore) AuthService {
	return &authService{remote: remote, sessions: sessions}
}

func (a *authService) Login(ctx context.Context, email, password string) (session.Session, error) {
	resp, err := a.remote.Login(ctx, email, password)
	if errors.Is(err, remote.ErrUnauthorized) || errors.Is(err, remote.ErrNotFound) {
		return session.Session{}, common.ErrorInvalidLoginPassword
	}
	if err != nil {
		return session.Session{}, fmt.Errorf("login: %w", err)
	}

	s, err := session.Decode(resp.Token, resp.UserID)
	if err != nil {
		return session.Session{}, fmt.Errorf("login: %w", err)
	}
	if err := a.sessions.Save(ctx, s); err != nil {
		return session.Session{}, fmt.Errorf("save session: %w", err)
	}
	return s, nil
}

// Logout forgets the session. Local data stays; it belongs to the device.
func (a *authService) Logout(ctx context.Context) error {
	return a.sessions.Clear(ctx)
}

func (a *authService) Current(ctx context.Context) (session.Session, error) {
	return a.sessions.Current(ctx)
}

func (a *authService) Ping(ctx context.Context) error {
	return a.remote.Ping(ctx)
}
