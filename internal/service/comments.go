package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/finansgold/backend/internal/database"
	"github.com/finansgold/backend/internal/models"
	"github.com/finansgold/backend/internal/session"
)

// AddPostComment attaches a comment to a post and bumps both the post and author counters
func (s *ContentService) AddPostComment(ctx context.Context, actor *session.Session, req models.CreatePostCommentRequest) (int, error) {
	if err := requireActor(actor); err != nil {
		return 0, err
	}
	if strings.TrimSpace(req.Content) == "" {
		return 0, ErrEmptyContent
	}

	comment := models.PostComment{PostID: req.PostID, AuthorID: actor.UserID, Content: req.Content}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Post{}).Where("id = ?", req.PostID).
			UpdateColumn("comment_count", database.Increment("comment_count", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrPostNotFound
		}

		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		return bumpUserCounter(tx, actor.UserID, "total_comments", 1)
	})
	if err != nil {
		return 0, err
	}
	return comment.ID, nil
}

func (s *ContentService) DeletePostComment(ctx context.Context, actor *session.Session, commentID int) error {
	if err := requireActor(actor); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comment models.PostComment
		if err := tx.Where("id = ?", commentID).First(&comment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCommentNotFound
			}
			return err
		}
		if comment.AuthorID != actor.UserID {
			return ErrForbidden
		}

		if err := tx.Delete(&comment).Error; err != nil {
			return err
		}
		err := tx.Model(&models.Post{}).Where("id = ?", comment.PostID).
			UpdateColumn("comment_count", database.Decrement("comment_count")).Error
		if err != nil {
			return err
		}
		return bumpUserCounter(tx, comment.AuthorID, "total_comments", -1)
	})
}

// PostComments lists a post's comments, newest first
func (s *ContentService) PostComments(ctx context.Context, postID int) ([]CommentItem, error) {
	var comments []models.PostComment
	err := s.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	items := make([]CommentItem, 0, len(comments))
	for _, c := range comments {
		items = append(items, newCommentItem(c.ID, c.Author, c.Content, c.CreatedAt, c.Rating))
	}
	return items, nil
}

func (s *ContentService) AddAssetComment(ctx context.Context, actor *session.Session, req models.CreateAssetCommentRequest) (int, error) {
	if err := requireActor(actor); err != nil {
		return 0, err
	}
	symbol := strings.TrimSpace(req.Symbol)
	if symbol == "" {
		return 0, ErrMissingSymbol
	}
	if strings.TrimSpace(req.Content) == "" {
		return 0, ErrEmptyContent
	}

	comment := models.AssetComment{AssetSymbol: symbol, AuthorID: actor.UserID, Content: req.Content}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		return bumpUserCounter(tx, actor.UserID, "total_comments", 1)
	})
	if err != nil {
		return 0, err
	}
	return comment.ID, nil
}

func (s *ContentService) DeleteAssetComment(ctx context.Context, actor *session.Session, commentID int) error {
	if err := requireActor(actor); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comment models.AssetComment
		if err := tx.Where("id = ?", commentID).First(&comment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCommentNotFound
			}
			return err
		}
		if comment.AuthorID != actor.UserID {
			return ErrForbidden
		}

		if err := tx.Delete(&comment).Error; err != nil {
			return err
		}
		return bumpUserCounter(tx, comment.AuthorID, "total_comments", -1)
	})
}

// AssetComments returns the newest comments on a market symbol
func (s *ContentService) AssetComments(ctx context.Context, symbol string) ([]CommentItem, error) {
	var comments []models.AssetComment
	err := s.db.WithContext(ctx).
		Preload("Author").
		Where("asset_symbol = ?", symbol).
		Order("created_at DESC").
		Order("id DESC").
		Limit(AssetCommentsLimit).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	items := make([]CommentItem, 0, len(comments))
	for _, c := range comments {
		items = append(items, newCommentItem(c.ID, c.Author, c.Content, c.CreatedAt, c.Rating))
	}
	return items, nil
}
