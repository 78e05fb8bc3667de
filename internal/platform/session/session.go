// Package session keeps the bearer token of the signed-in user and decodes
// the identity it carries.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoSession is returned when no token has been stored.
var ErrNoSession = errors.New("no active session")

// TokenStore persists the bearer token between calls. Token returns "" and no
// error when nothing is stored.
type TokenStore interface {
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// Claims is the identity carried by a session token.
type Claims struct {
	Subject   string
	Role      string
	Email     string
	ExpiresAt time.Time
}

// Expired reports whether the token is past its exp claim. Tokens without an
// exp claim never expire on the client side.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// ParseClaims decodes the token without verifying its signature. The client
// holds no key; the backend stays authoritative.
func ParseClaims(token string) (Claims, error) {
	if token == "" {
		return Claims{}, ErrNoSession
	}

	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, mc); err != nil {
		return Claims{}, fmt.Errorf("parse session token: %w", err)
	}

	var c Claims
	c.Subject, _ = mc.GetSubject()
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	if role, ok := mc["role"].(string); ok {
		c.Role = role
	}
	if email, ok := mc["email"].(string); ok {
		c.Email = email
	}
	if c.Subject == "" {
		if id, ok := mc["user_id"].(string); ok {
			c.Subject = id
		}
	}
	return c, nil
}

// MemoryStore is a process-local TokenStore.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

var _ TokenStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Token(context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, nil
}

func (s *MemoryStore) SetToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
