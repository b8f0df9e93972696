// Package auth keeps the learner's bearer token in the key-value store and
// reads identity claims from it.
package auth

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/abhisek/adaptly/internal/store"
)

// Key is the store key holding the bearer token.
const Key = "authToken"

// RoleTeacher grants access to the teacher endpoints.
const RoleTeacher = "ROLE_TEACHER"

// ErrEmptyToken is returned by Login for a blank token.
var ErrEmptyToken = errors.New("token is empty")

// User is the identity carried by the token.
type User struct {
	Username  string
	Roles     []string
	ExpiresAt time.Time // zero when the token has no exp claim
}

// IsTeacher reports whether the user holds RoleTeacher.
func (u User) IsTeacher() bool { return slices.Contains(u.Roles, RoleTeacher) }

// Session reads and writes the token. Read failures are logged and treated
// as signed out.
type Session struct {
	kv  store.KV
	log *zap.Logger
	now func() time.Time
}

// NewSession returns a session over kv.
func NewSession(kv store.KV, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{kv: kv, log: log, now: time.Now}
}

// Login stores token, replacing any previous one.
func (s *Session) Login(ctx context.Context, token string) error {
	token = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "Bearer "))
	if token == "" {
		return ErrEmptyToken
	}
	if err := s.kv.Set(ctx, Key, token); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}

// Logout removes the token.
func (s *Session) Logout(ctx context.Context) error {
	if err := s.kv.Delete(ctx, Key); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

// Token returns the stored token.
func (s *Session) Token(ctx context.Context) (string, bool) {
	tok, ok, err := s.kv.Get(ctx, Key)
	if err != nil {
		s.log.Warn("read token failed", zap.Error(err))
		return "", false
	}
	return tok, ok && tok != ""
}

// IsAuthenticated reports whether a token is stored and, when it carries an
// expiry, has not expired.
func (s *Session) IsAuthenticated(ctx context.Context) bool {
	tok, ok := s.Token(ctx)
	if !ok {
		return false
	}
	u, err := ParseUser(tok)
	if err != nil {
		// Opaque tokens are accepted as-is.
		return true
	}
	return u.ExpiresAt.IsZero() || s.now().Before(u.ExpiresAt)
}

// User returns the identity from the stored token.
func (s *Session) User(ctx context.Context) (User, bool) {
	tok, ok := s.Token(ctx)
	if !ok {
		return User{}, false
	}
	u, err := ParseUser(tok)
	if err != nil {
		s.log.Debug("token is not a JWT", zap.Error(err))
		return User{}, false
	}
	return u, true
}

type claims struct {
	jwt.RegisteredClaims
	Username    string   `json:"username,omitempty"`
	Roles       []string `json:"roles,omitempty"`
	Authorities []string `json:"authorities,omitempty"`
}

// ParseUser reads the claims of a JWT without verifying its signature. The
// server verifies tokens; the client only needs the identity.
func ParseUser(token string) (User, error) {
	var c claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &c); err != nil {
		return User{}, fmt.Errorf("parse token: %w", err)
	}

	u := User{Username: c.Username, Roles: c.Roles}
	if u.Username == "" {
		u.Username = c.Subject
	}
	if len(u.Roles) == 0 {
		u.Roles = c.Authorities
	}
	if c.ExpiresAt != nil {
		u.ExpiresAt = c.ExpiresAt.Time
	}
	return u, nil
}
