package auth

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// The demo credential pair bypasses the hosted identity service entirely so
// the app can be exercised without a configured auth backend. Demo sessions
// live only in the local cache; signing one out never calls the remote
// service.
const (
	DemoEmail    = "example@outlook.com"
	DemoPassword = "1234"

	demoUserID      = "demo-user-id"
	demoTokenPrefix = "demo-"
)

var ErrNoSession = errors.New("no active session")

// Remote is the subset of the identity service the manager depends on.
type Remote interface {
	SignUp(ctx context.Context, email, password string) (*Session, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context, accessToken string) error
	GetUser(ctx context.Context, accessToken string) (*User, error)
}

// Manager is the application-level session context. It is constructed once
// at startup and injected into the handlers that need it.
type Manager struct {
	remote   Remote
	sessions TokenCache
	inflight atomic.Int64
}

func NewManager(remote Remote, cache TokenCache) *Manager {
	return &Manager{remote: remote, sessions: cache}
}

// Loading reports whether any auth operation is currently in flight.
func (m *Manager) Loading() bool {
	return m.inflight.Load() > 0
}

// SignIn authenticates credentials and caches the resulting session.
func (m *Manager) SignIn(ctx context.Context, email, password string) (*Session, error) {
	m.inflight.Add(1)
	defer m.inflight.Add(-1)

	if email == DemoEmail && password == DemoPassword {
		return m.startDemoSession(ctx)
	}

	sess, err := m.remote.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	m.cache(ctx, sess)
	return sess, nil
}

// SignUp registers an account and caches the resulting session. The demo
// credential pair short-circuits here too.
func (m *Manager) SignUp(ctx context.Context, email, password string) (*Session, error) {
	m.inflight.Add(1)
	defer m.inflight.Add(-1)

	if email == DemoEmail && password == DemoPassword {
		return m.startDemoSession(ctx)
	}

	sess, err := m.remote.SignUp(ctx, email, password)
	if err != nil {
		return nil, err
	}
	m.cache(ctx, sess)
	return sess, nil
}

// SignOut drops the cached session. Demo sessions are cleared locally only;
// every other token is also revoked at the identity service.
func (m *Manager) SignOut(ctx context.Context, accessToken string) error {
	m.inflight.Add(1)
	defer m.inflight.Add(-1)

	sess, err := m.sessions.Get(ctx, accessToken)
	if err != nil {
		log.Printf("WARN: session cache lookup failed during sign-out: %v", err)
	}
	if err := m.sessions.Delete(ctx, accessToken); err != nil {
		log.Printf("WARN: failed to evict session from cache: %v", err)
	}

	if isDemoSession(sess, accessToken) {
		return nil
	}
	return m.remote.SignOut(ctx, accessToken)
}

// SessionFromToken resolves the session behind an access token, consulting
// the cache first and the identity service second. Demo tokens are never
// sent to the identity service.
func (m *Manager) SessionFromToken(ctx context.Context, accessToken string) (*Session, error) {
	if accessToken == "" {
		return nil, ErrNoSession
	}

	sess, err := m.sessions.Get(ctx, accessToken)
	if err != nil {
		log.Printf("WARN: session cache lookup failed: %v", err)
	}
	if sess != nil {
		return sess, nil
	}

	if strings.HasPrefix(accessToken, demoTokenPrefix) {
		return nil, ErrNoSession
	}

	user, err := m.remote.GetUser(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	resolved := &Session{AccessToken: accessToken, TokenType: "bearer", User: *user}
	m.cache(ctx, resolved)
	return resolved, nil
}

func (m *Manager) startDemoSession(ctx context.Context) (*Session, error) {
	sess := &Session{
		AccessToken: demoTokenPrefix + uuid.New().String(),
		TokenType:   "bearer",
		User: User{
			ID:        demoUserID,
			Email:     DemoEmail,
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
		},
	}
	m.cache(ctx, sess)
	return sess, nil
}

func (m *Manager) cache(ctx context.Context, sess *Session) {
	if err := m.sessions.Put(ctx, sess.AccessToken, sess); err != nil {
		log.Printf("WARN: failed to cache session: %v", err)
	}
}

func isDemoSession(sess *Session, accessToken string) bool {
	if sess != nil {
		return sess.User.Email == DemoEmail
	}
	return strings.HasPrefix(accessToken, demoTokenPrefix)
}
