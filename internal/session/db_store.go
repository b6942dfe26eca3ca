package session

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/finansgold/backend/internal/models"
)

// DBStore keeps sessions in the relational database when Redis is not configured
type DBStore struct {
	db *gorm.DB
}

func NewDBStore(db *gorm.DB) *DBStore {
	return &DBStore{db: db}
}

func (s *DBStore) Save(ctx context.Context, sess *Session) error {
	row := models.Session{
		ID:        sess.ID,
		UserID:    sess.UserID,
		Username:  sess.Username,
		Avatar:    sess.Avatar,
		ExpiresAt: sess.ExpiresAt,
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&row).Error
}

func (s *DBStore) Get(ctx context.Context, id string) (*Session, error) {
	var row models.Session
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoSession
		}
		return nil, err
	}

	return &Session{
		ID:        row.ID,
		UserID:    row.UserID,
		Username:  row.Username,
		Avatar:    row.Avatar,
		ExpiresAt: row.ExpiresAt,
	}, nil
}

func (s *DBStore) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Session{}).Error
}

func (s *DBStore) DeleteExpired(ctx context.Context, now time.Time) error {
	return s.db.WithContext(ctx).Where("expires_at <= ?", now.UTC()).Delete(&models.Session{}).Error
}
