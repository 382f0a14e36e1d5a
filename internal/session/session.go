// Package session reads and clears the locally persisted identity: the
// auth token and current user profile. Tokens are issued and refreshed by
// the remote auth service; this package never mints one.
package session

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/dragon98048/EverstMart/internal/domain/cart"
	"github.com/dragon98048/EverstMart/internal/storage"
)

// Storage keys shared with the rest of the client. Logout clears all of
// them, cart included.
const (
	tokenKey = "token"
	userKey  = "user"
)

// User is the profile of the logged-in customer.
type User struct {
	ID    string
	Name  string
	Email string
	Phone string
}

// Store exposes the current identity held in durable storage.
type Store struct {
	kv storage.KV
	lg *zap.Logger
}

// NewStore creates a session store over the given storage.
func NewStore(kv storage.KV, lg *zap.Logger) *Store {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Store{kv: kv, lg: lg}
}

// Token returns the held auth token, if any. An expired token reads as
// absent, so callers see "logged out" instead of a doomed request.
func (s *Store) Token(ctx context.Context) (string, bool) {
	token, ok, err := s.kv.Get(ctx, tokenKey)
	if err != nil {
		s.lg.Warn("Reading token failed", zap.Error(err))
		return "", false
	}
	if !ok || token == "" {
		return "", false
	}
	if TokenExpired(token, time.Now()) {
		s.lg.Info("Stored token has expired")
		return "", false
	}
	return token, true
}

// CurrentUser returns the stored user profile, or nil when absent or
// unreadable. A corrupt profile is not an error: the caller treats it the
// same as being logged out.
func (s *Store) CurrentUser(ctx context.Context) *User {
	raw, ok, err := s.kv.Get(ctx, userKey)
	if err != nil || !ok {
		return nil
	}
	user, err := decodeUser(raw)
	if err != nil {
		s.lg.Warn("Discarding malformed user profile", zap.Error(err))
		return nil
	}
	return user
}

// SaveLogin persists the credentials returned by a successful login.
func (s *Store) SaveLogin(ctx context.Context, token string, user User) error {
	if err := s.kv.Set(ctx, tokenKey, token); err != nil {
		return errors.Wrap(err, "store token")
	}
	if err := s.kv.Set(ctx, userKey, encodeUser(user)); err != nil {
		return errors.Wrap(err, "store user")
	}
	return nil
}

// Clear removes the token, user profile, and cart, mirroring logout.
func (s *Store) Clear(ctx context.Context) error {
	for _, key := range []string{tokenKey, userKey, cart.StorageKey} {
		if err := s.kv.Delete(ctx, key); err != nil {
			return errors.Wrapf(err, "clear %q", key)
		}
	}
	return nil
}

// TokenExpired reports whether the held token is a JWT that has already
// expired. The signature is deliberately not verified: verification is the
// server's job, and the client only uses the expiry to prompt a re-login
// before attempting checkout. Tokens without a readable expiry are assumed
// live.
func TokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}

func encodeUser(u User) string {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("id")
	e.Str(u.ID)
	e.FieldStart("name")
	e.Str(u.Name)
	e.FieldStart("email")
	e.Str(u.Email)
	e.FieldStart("phone")
	e.Str(u.Phone)
	e.ObjEnd()
	return e.String()
}

func decodeUser(raw string) (*User, error) {
	var u User
	d := jx.DecodeStr(raw)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "id":
			u.ID, err = d.Str()
		case "name":
			u.Name, err = d.Str()
		case "email":
			u.Email, err = d.Str()
		case "phone":
			u.Phone, err = d.Str()
		default:
			err = d.Skip()
		}
		return err
	}); err != nil {
		return nil, err
	}
	return &u, nil
}
