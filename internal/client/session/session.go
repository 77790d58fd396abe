// Package session holds the authenticated identity the sync engine runs
// under. A Session is passed explicitly to every remote call instead of
// being read from process-wide state.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/civigo/internal/client/repositories/metadata"
	"github.com/golang-jwt/jwt/v5"
)

// ErrNoSession means nobody is logged in or the token has expired.
var ErrNoSession = errors.New("no active session")

// Session is the bearer token plus what the client reads from it.
type Session struct {
	Token     string
	Role      string
	UserID    string
	ExpiresAt time.Time
}

// Valid reports whether s can authorize remote calls at now.
func (s Session) Valid(now time.Time) bool {
	if s.Token == "" || s.Role == "" {
		return false
	}
	return s.ExpiresAt.IsZero() || now.Before(s.ExpiresAt)
}

// Decode reads role, user id and expiry from a JWT without verifying its
// signature; the client does not hold the signing key and the server
// verifies every request anyway. userID, when not empty, takes precedence
// over the token's claim.
func Decode(token, userID string) (Session, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Session{}, fmt.Errorf("decode token: %w", err)
	}

	s := Session{Token: token, UserID: userID}
	if role, ok := claims["role"].(string); ok {
		s.Role = role
	}
	if s.UserID == "" {
		if id, ok := claims["user_id"].(string); ok {
			s.UserID = id
		} else if sub, err := claims.GetSubject(); err == nil {
			s.UserID = sub
		}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return Session{}, fmt.Errorf("decode token: %w", err)
	}
	if exp != nil {
		s.ExpiresAt = exp.Time
	}
	return s, nil
}

// Source yields the current session.
type Source interface {
	Current(ctx context.Context) (Session, error)
}

const (
	keyPrefix = "session."
	keyToken  = keyPrefix + "token"
	keyUserID = keyPrefix + "user_id"
)

// Store persists the session in the local metadata table so the client
// keeps working offline across restarts.
type Store struct {
	repo metadata.Repository
	now  func() time.Time
}

func NewStore(repo metadata.Repository) *Store {
	return &Store{repo: repo, now: time.Now}
}

// Save stores the token of s. Derived fields are decoded again on load.
func (st *Store) Save(ctx context.Context, s Session) error {
	if err := st.repo.Set(ctx, keyToken, s.Token); err != nil {
		return err
	}
	return st.repo.Set(ctx, keyUserID, s.UserID)
}

// Clear forgets the session.
func (st *Store) Clear(ctx context.Context) error {
	return st.repo.DeletePrefix(ctx, keyPrefix)
}

// Current returns the stored session, or ErrNoSession if there is none or
// it is no longer valid.
func (st *Store) Current(ctx context.Context) (Session, error) {
	token, ok, err := st.repo.Get(ctx, keyToken)
	if err != nil {
		return Session{}, err
	}
	if !ok || token == "" {
		return Session{}, ErrNoSession
	}
	userID, _, err := st.repo.Get(ctx, keyUserID)
	if err != nil {
		return Session{}, err
	}

	s, err := Decode(token, userID)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrNoSession, err)
	}
	if !s.Valid(st.now()) {
		return Session{}, ErrNoSession
	}
	return s, nil
}

// Static is a fixed Source, used by tests and one-shot commands.
type Static Session

func (s Static) Current(context.Context) (Session, error) {
	if !Session(s).Valid(time.Now()) {
		return Session{}, ErrNoSession
	}
	return Session(s), nil
}
