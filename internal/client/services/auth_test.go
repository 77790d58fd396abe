package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/civigo/internal/client/remote"
	"github.com/dmitrijs2005/civigo/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/civigo/internal/client/session"
	"github.com/dmitrijs2005/civigo/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthenticator struct {
	token   string
	userID  string
	err     error
	pingErr error

	lastEmail string
}

func (f *fakeAuthenticator) Login(ctx context.Context, email, password string) (remote.LoginResponse, error) {
	f.lastEmail = email
	if f.err != nil {
		return remote.LoginResponse{}, f.err
	}
	return remote.LoginResponse{Token: f.token, UserID: f.userID}, nil
}

func (f *fakeAuthenticator) Ping(context.Context) error { return f.pingErr }

func token(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	require.NoError(t, err)
	return s
}

func TestAuth_LoginPersistsSession(t *testing.T) {
	ctx := context.Background()
	store := session.NewStore(metadata.NewSQLiteRepository(setupDB(t)))
	fa := &fakeAuthenticator{
		token:  token(t, jwt.MapClaims{"role": "engineer", "exp": time.Now().Add(time.Hour).Unix()}),
		userID: "u-7",
	}
	svc := NewAuthService(fa, store)

	_, err := svc.Current(ctx)
	assert.ErrorIs(t, err, session.ErrNoSession)

	s, err := svc.Login(ctx, "site@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "engineer", s.Role)
	assert.Equal(t, "u-7", s.UserID)
	assert.Equal(t, "site@example.com", fa.lastEmail)

	cur, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, s.Token, cur.Token)

	require.NoError(t, svc.Logout(ctx))
	_, err = svc.Current(ctx)
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestAuth_LoginErrors(t *testing.T) {
	ctx := context.Background()
	store := session.NewStore(metadata.NewSQLiteRepository(setupDB(t)))

	fa := &fakeAuthenticator{err: &remote.TransportError{StatusCode: 401, Err: remote.ErrUnauthorized}}
	_, err := NewAuthService(fa, store).Login(ctx, "a", "b")
	assert.ErrorIs(t, err, common.ErrorInvalidLoginPassword)

	fa = &fakeAuthenticator{err: &remote.TransportError{Err: remote.ErrUnavailable}}
	_, err = NewAuthService(fa, store).Login(ctx, "a", "b")
	assert.ErrorIs(t, err, remote.ErrUnavailable)

	fa = &fakeAuthenticator{token: "not-a-jwt"}
	_, err = NewAuthService(fa, store).Login(ctx, "a", "b")
	assert.Error(t, err)

	_, err = store.Current(ctx)
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestAuth_Ping(t *testing.T) {
	down := errors.New("down")
	svc := NewAuthService(&fakeAuthenticator{pingErr: down}, nil)
	assert.ErrorIs(t, svc.Ping(context.Background()), down)
}
