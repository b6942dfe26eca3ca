package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/finansgold/backend/internal/database"
	"github.com/finansgold/backend/internal/models"
	"github.com/finansgold/backend/internal/session"
)

const (
	FeedLimit          = 50
	AssetCommentsLimit = 50
)

// ContentService owns posts and comments together with the counters derived from them
type ContentService struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewContentService(db *gorm.DB, log zerolog.Logger) *ContentService {
	return &ContentService{
		db:  db,
		log: log.With().Str("component", "content").Logger(),
	}
}

func requireActor(actor *session.Session) error {
	if actor == nil || actor.UserID == 0 {
		return ErrUnauthorized
	}
	return nil
}

// bumpUserCounter adjusts total_posts or total_comments. Increments fail when the user row is gone;
// clamped decrements may legitimately touch nothing on MySQL, so their row count is not checked.
func bumpUserCounter(tx *gorm.DB, userID int, column string, delta int) error {
	if delta < 0 {
		return tx.Model(&models.User{}).Where("id = ?", userID).UpdateColumn(column, database.Decrement(column)).Error
	}

	res := tx.Model(&models.User{}).Where("id = ?", userID).UpdateColumn(column, database.Increment(column, delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *ContentService) CreatePost(ctx context.Context, actor *session.Session, content string) (int, error) {
	if err := requireActor(actor); err != nil {
		return 0, err
	}
	if strings.TrimSpace(content) == "" {
		return 0, ErrEmptyContent
	}

	post := models.Post{AuthorID: actor.UserID, Content: content}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&post).Error; err != nil {
			return err
		}
		return bumpUserCounter(tx, actor.UserID, "total_posts", 1)
	})
	if err != nil {
		return 0, err
	}

	s.log.Debug().Int("post_id", post.ID).Int("user_id", actor.UserID).Msg("post created")
	return post.ID, nil
}

// ownedPost loads a post and checks that actor wrote it
func ownedPost(tx *gorm.DB, actor *session.Session, postID int) (*models.Post, error) {
	var post models.Post
	if err := tx.Where("id = ?", postID).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if post.AuthorID != actor.UserID {
		return nil, ErrForbidden
	}
	return &post, nil
}

func (s *ContentService) UpdatePost(ctx context.Context, actor *session.Session, postID int, content string) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	if strings.TrimSpace(content) == "" {
		return ErrEmptyContent
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post, err := ownedPost(tx, actor, postID)
		if err != nil {
			return err
		}
		return tx.Model(post).Update("content", content).Error
	})
}

// DeletePost removes the post with all of its comments and lowers the author's post count
func (s *ContentService) DeletePost(ctx context.Context, actor *session.Session, postID int) error {
	if err := requireActor(actor); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post, err := ownedPost(tx, actor, postID)
		if err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.PostComment{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(post).Error; err != nil {
			return err
		}
		return bumpUserCounter(tx, post.AuthorID, "total_posts", -1)
	})
	if err != nil {
		return err
	}

	s.log.Debug().Int("post_id", postID).Int("user_id", actor.UserID).Msg("post deleted")
	return nil
}

// Feed returns the newest posts first
func (s *ContentService) Feed(ctx context.Context) ([]FeedItem, error) {
	var posts []models.Post
	err := s.db.WithContext(ctx).
		Preload("Author").
		Order("created_at DESC").
		Order("id DESC").
		Limit(FeedLimit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	items := make([]FeedItem, 0, len(posts))
	for _, p := range posts {
		items = append(items, newFeedItem(p))
	}
	return items, nil
}
