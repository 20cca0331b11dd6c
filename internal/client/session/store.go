// Package session keeps the signed-in user's token set in the local SQLite
// database and serves the identity token to the request builder.
//
// The token is resolved on every call. When it has expired and a refresh
// token is stored, exactly one refresh is attempted; if that fails the
// caller simply gets no token and the request goes out unauthenticated.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrijs2005/ingestctl/internal/client/models"
	"github.com/dmitrijs2005/ingestctl/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/ingestctl/internal/common"
	"github.com/dmitrijs2005/ingestctl/internal/dbx"
	"github.com/dmitrijs2005/ingestctl/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

const (
	keyAccessToken  = "access_token"
	keyIDToken      = "id_token"
	keyRefreshToken = "refresh_token"
	keyTokenType    = "token_type"
	keyExpiresAt    = "expires_at"
	keyUsername     = "username"
)

// DefaultSkew is how long before the real expiry a token is considered stale.
const DefaultSkew = 30 * time.Second

// Refresher exchanges a refresh token for a new token set.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (*models.TokenSet, error)
}

type Store struct {
	db   *sql.DB
	repo metadata.Repository
	log  logging.Logger

	now  func() time.Time
	skew time.Duration

	// mu serialises refreshes so concurrent callers do not each spend
	// the refresh token.
	mu        sync.Mutex
	refresher Refresher
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithSkew(d time.Duration) Option {
	return func(s *Store) { s.skew = d }
}

func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.log = l }
}

func NewStore(db *sql.DB, opts ...Option) *Store {
	s := &Store{
		db:   db,
		repo: metadata.NewSQLiteRepository(db),
		log:  logging.Discard(),
		now:  time.Now,
		skew: DefaultSkew,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// SetRefresher wires the refresh endpoint after construction; the API
// client itself depends on the store for its headers.
func (s *Store) SetRefresher(r Refresher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresher = r
}

// Save replaces the stored session with ts atomically.
func (s *Store) Save(ctx context.Context, username string, ts *models.TokenSet) error {
	if ts == nil || ts.Bearer() == "" {
		return common.ErrInvalidToken
	}
	return dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Clear(ctx); err != nil {
			return err
		}
		return s.write(ctx, repo, username, ts, true)
	})
}

func (s *Store) write(ctx context.Context, repo metadata.Repository, username string, ts *models.TokenSet, replaceRefresh bool) error {
	values := map[string]string{
		keyAccessToken: ts.AccessToken,
		keyIDToken:     ts.IDToken,
		keyTokenType:   ts.TokenType,
		keyExpiresAt:   "",
	}
	if ts.ExpiresIn > 0 {
		values[keyExpiresAt] = strconv.FormatInt(s.now().Add(time.Duration(ts.ExpiresIn)*time.Second).Unix(), 10)
	}
	if username != "" {
		values[keyUsername] = username
	}
	if replaceRefresh || ts.RefreshToken != "" {
		values[keyRefreshToken] = ts.RefreshToken
	}
	for k, v := range values {
		if err := repo.Set(ctx, k, v); err != nil {
			return err
		}
	}
	return nil
}

// Clear forgets the session.
func (s *Store) Clear(ctx context.Context) error {
	return s.repo.Clear(ctx)
}

// Username returns the name the session was opened with.
func (s *Store) Username(ctx context.Context) string {
	v, _, err := s.repo.Get(ctx, keyUsername)
	if err != nil {
		return ""
	}
	return v
}

// CurrentToken implements auth.SessionAccessor.
func (s *Store) CurrentToken(ctx context.Context) (string, bool) {
	token, err := s.currentToken(ctx)
	if err != nil {
		if !errors.Is(err, common.ErrNoSession) {
			s.log.Debug(ctx, "no usable session token", "error", err)
		}
		return "", false
	}
	return token, true
}

func (s *Store) currentToken(ctx context.Context) (string, error) {
	token, expired, err := s.stored(ctx)
	if err != nil {
		return "", err
	}
	if !expired {
		return token, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another caller may have refreshed while we waited.
	token, expired, err = s.stored(ctx)
	if err != nil {
		return "", err
	}
	if !expired {
		return token, nil
	}
	return s.refresh(ctx)
}

func (s *Store) stored(ctx context.Context) (token string, expired bool, err error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return "", false, err
	}
	token = all[keyIDToken]
	if token == "" {
		token = all[keyAccessToken]
	}
	if token == "" {
		return "", false, common.ErrNoSession
	}

	exp, ok := parseUnix(all[keyExpiresAt])
	if !ok {
		exp, ok = tokenExpiry(token)
	}
	if ok && !s.now().Add(s.skew).Before(exp) {
		return token, true, nil
	}
	return token, false, nil
}

func (s *Store) refresh(ctx context.Context) (string, error) {
	rt, _, err := s.repo.Get(ctx, keyRefreshToken)
	if err != nil {
		return "", err
	}
	if rt == "" || s.refresher == nil {
		return "", common.ErrTokenExpired
	}

	ts, err := s.refresher.Refresh(ctx, rt)
	if err != nil {
		return "", fmt.Errorf("refresh session: %w", err)
	}
	if ts == nil || ts.Bearer() == "" {
		return "", common.ErrInvalidToken
	}

	err = dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		return s.write(ctx, metadata.NewSQLiteRepository(tx), "", ts, false)
	})
	if err != nil {
		return "", err
	}
	s.log.Info(ctx, "session refreshed")
	return ts.Bearer(), nil
}

// Subject returns the "sub" claim of the current identity token.
func (s *Store) Subject(ctx context.Context) string {
	token, ok := s.CurrentToken(ctx)
	if !ok {
		return ""
	}
	return TokenSubject(token)
}

// TokenSubject reads "sub" from a JWT without verifying it.
func TokenSubject(token string) string {
	claims, ok := parseClaims(token)
	if !ok {
		return ""
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return ""
	}
	return sub
}

func tokenExpiry(token string) (time.Time, bool) {
	claims, ok := parseClaims(token)
	if !ok {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// The backend verifies signatures; the client only reads claims.
func parseClaims(token string) (jwt.MapClaims, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, false
	}
	return claims, true
}

func parseUnix(v string) (time.Time, bool) {
	if v == "" {
		return time.Time{}, false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(n, 0), true
}
