package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/ingestctl/internal/client/models"
	"github.com/stretchr/testify/require"
)

func TestLogin_EmptyCredentials(t *testing.T) {
	fc := &fakeClient{}
	svc := NewAuthService(fc, &fakeSession{})

	require.ErrorIs(t, svc.Login(context.Background(), " ", []byte("p")), ErrEmptyCredentials)
	require.ErrorIs(t, svc.Login(context.Background(), "u", nil), ErrEmptyCredentials)
	require.Empty(t, fc.calls)
}

func TestLogin_ClientError_Wrapped(t *testing.T) {
	fc := &fakeClient{LoginErr: errors.New("bad creds")}
	s := &fakeSession{}
	svc := NewAuthService(fc, s)

	err := svc.Login(context.Background(), "u", []byte("p"))
	require.Error(t, err)
	require.True(t, strings.HasPrefix(err.Error(), "login error:"))
	require.Nil(t, s.saved)
}

func TestLogin_Success_SavesSession(t *testing.T) {
	ts := &models.TokenSet{IDToken: "idt", RefreshToken: "rt"}
	fc := &fakeClient{LoginRet: ts}
	s := &fakeSession{}
	svc := NewAuthService(fc, s)

	require.NoError(t, svc.Login(context.Background(), " alice ", []byte("secret")))

	require.Equal(t, models.Credentials{Username: "alice", Password: "secret"}, fc.LastCred)
	require.Equal(t, ts, s.saved)
	require.Equal(t, "alice", s.username)
}

func TestLogin_SaveError_Wrapped(t *testing.T) {
	fc := &fakeClient{LoginRet: &models.TokenSet{IDToken: "x"}}
	svc := NewAuthService(fc, &fakeSession{SaveErr: errors.New("disk full")})

	err := svc.Login(context.Background(), "u", []byte("p"))
	require.ErrorContains(t, err, "session saving error: disk full")
}

func TestLogout_ClearsSession(t *testing.T) {
	s := &fakeSession{saved: &models.TokenSet{IDToken: "x"}}
	svc := NewAuthService(&fakeClient{}, s)

	require.NoError(t, svc.Logout(context.Background()))
	require.True(t, s.cleared)
}

func TestWhoAmI_FillsUsernameFromSession(t *testing.T) {
	fc := &fakeClient{MeRet: &models.UserInfo{UserID: "u-1", Authenticated: true}}
	svc := NewAuthService(fc, &fakeSession{username: "alice"})

	u, err := svc.WhoAmI(context.Background())
	require.NoError(t, err)
	require.Equal(t, "alice", u.Username)
	require.Equal(t, "u-1", u.UserID)
}

func TestWhoAmI_ErrorPropagates(t *testing.T) {
	fc := &fakeClient{MeErr: errors.New("401")}
	svc := NewAuthService(fc, &fakeSession{})

	_, err := svc.WhoAmI(context.Background())
	require.Error(t, err)
}

func TestPing_Delegates(t *testing.T) {
	fc := &fakeClient{HealthRet: &models.ServiceHealth{Status: "healthy"}}
	svc := NewAuthService(fc, &fakeSession{})

	h, err := svc.Ping(context.Background())
	require.NoError(t, err)
	require.Equal(t, "healthy", h.Status)
}
