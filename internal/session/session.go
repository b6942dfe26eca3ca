package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrNoSession    = errors.New("session not found")
	ErrInvalidToken = errors.New("invalid session token")
)

// Session is the server-side login state behind a cookie
type Session struct {
	ID        string    `msgpack:"id"`
	UserID    int       `msgpack:"user_id"`
	Username  string    `msgpack:"username"`
	Avatar    string    `msgpack:"avatar"`
	ExpiresAt time.Time `msgpack:"expires_at"`
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Store persists sessions by id
type Store interface {
	Save(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// expiredSweeper is implemented by stores that cannot expire keys on their own
type expiredSweeper interface {
	DeleteExpired(ctx context.Context, now time.Time) error
}

// Manager issues, resolves and revokes sessions
type Manager struct {
	store    Store
	signer   *Signer
	lifetime time.Duration
	now      func() time.Time
	log      zerolog.Logger
}

func NewManager(store Store, secret string, lifetime time.Duration, log zerolog.Logger) *Manager {
	return &Manager{
		store:    store,
		signer:   NewSigner(secret),
		lifetime: lifetime,
		now:      time.Now,
		log:      log.With().Str("component", "session").Logger(),
	}
}

func (m *Manager) Lifetime() time.Duration {
	return m.lifetime
}

// Create starts a session for the user and returns it with its cookie token
func (m *Manager) Create(ctx context.Context, userID int, username, avatar string) (*Session, string, error) {
	now := m.now()

	if sweeper, ok := m.store.(expiredSweeper); ok {
		if err := sweeper.DeleteExpired(ctx, now); err != nil {
			m.log.Warn().Err(err).Msg("failed to delete expired sessions")
		}
	}

	sess := &Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		Username:  username,
		Avatar:    avatar,
		ExpiresAt: now.Add(m.lifetime).UTC(),
	}
	if err := m.store.Save(ctx, sess); err != nil {
		return nil, "", fmt.Errorf("failed to store session: %w", err)
	}

	token, err := m.signer.Sign(sess.ID, sess.ExpiresAt)
	if err != nil {
		return nil, "", err
	}

	m.log.Debug().Int("user_id", userID).Str("sid", sess.ID).Msg("session created")
	return sess, token, nil
}

// Resolve returns the live session behind a cookie token
func (m *Manager) Resolve(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrNoSession
	}

	sid, err := m.signer.Parse(token)
	if err != nil {
		return nil, err
	}

	sess, err := m.store.Get(ctx, sid)
	if err != nil {
		return nil, err
	}

	if sess.Expired(m.now()) {
		if err := m.store.Delete(ctx, sid); err != nil {
			m.log.Warn().Err(err).Str("sid", sid).Msg("failed to delete expired session")
		}
		return nil, ErrNoSession
	}

	return sess, nil
}

// Update rewrites the stored payload of a live session, keeping its expiry
func (m *Manager) Update(ctx context.Context, sess *Session) error {
	return m.store.Save(ctx, sess)
}

// Destroy revokes the session behind a token. Unknown or malformed tokens are ignored.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	sid, err := m.signer.Parse(token)
	if err != nil {
		return nil
	}

	return m.store.Delete(ctx, sid)
}
