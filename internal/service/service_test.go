package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/finansgold/backend/internal/config"
	"github.com/finansgold/backend/internal/database"
	"github.com/finansgold/backend/internal/logger"
	"github.com/finansgold/backend/internal/models"
	"github.com/finansgold/backend/internal/session"
)

type fixture struct {
	db       *gorm.DB
	sessions *session.Manager
	auth     *AuthService
	content  *ContentService
	ratings  *RatingService
	profiles *ProfileService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	svc, err := database.New(config.DBConfig{Driver: "sqlite", SQLitePath: ":memory:"}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })

	db := svc.GetDB()
	log := logger.Nop()
	sessions := session.NewManager(session.NewDBStore(db), "test-secret", time.Hour, log)

	return &fixture{
		db:       db,
		sessions: sessions,
		auth:     NewAuthService(db, sessions, log),
		content:  NewContentService(db, log),
		ratings:  NewRatingService(db, log),
		profiles: NewProfileService(db, sessions, log),
	}
}

// signup registers username and returns its session
func (f *fixture) signup(t *testing.T, username string) *session.Session {
	t.Helper()
	sess, _, err := f.auth.Register(context.Background(), models.RegisterRequest{Username: username, Password: "secret123"})
	require.NoError(t, err)
	return sess
}

func (f *fixture) user(t *testing.T, id int) models.User {
	t.Helper()
	var u models.User
	require.NoError(t, f.db.First(&u, id).Error)
	return u
}

func (f *fixture) post(t *testing.T, id int) models.Post {
	t.Helper()
	var p models.Post
	require.NoError(t, f.db.First(&p, id).Error)
	return p
}

func (f *fixture) count(t *testing.T, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	q := f.db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}
