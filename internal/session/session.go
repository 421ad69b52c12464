// Package session provides server-side session state keyed by an opaque
// token. The manager is an interface so handlers can be tested against a
// short-lived store and production can tune the TTL.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
)

// Session is the authenticated state attached to a token.
type Session struct {
	AccountID int64
	Username  string
}

// Manager creates, resolves, and revokes sessions.
type Manager interface {
	Create(accountID int64, username string) (string, error)
	Get(token string) (Session, bool)
	Delete(token string)
}

// cacheManager implements Manager on top of a go-cache TTL store.
type cacheManager struct {
	store *cache.Cache
	ttl   time.Duration
}

// NewManager returns a Manager whose sessions expire after ttl.
func NewManager(ttl time.Duration) Manager {
	return &cacheManager{
		store: cache.New(ttl, 2*ttl),
		ttl:   ttl,
	}
}

// newToken returns a 64-hex-character opaque token.
func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func (m *cacheManager) Create(accountID int64, username string) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}
	m.store.Set(token, Session{AccountID: accountID, Username: username}, m.ttl)
	return token, nil
}

func (m *cacheManager) Get(token string) (Session, bool) {
	if token == "" {
		return Session{}, false
	}
	v, found := m.store.Get(token)
	if !found {
		return Session{}, false
	}
	return v.(Session), true
}

func (m *cacheManager) Delete(token string) {
	m.store.Delete(token)
}
