package service

import (
	"context"
	"errors"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/finansgold/backend/internal/models"
	"github.com/finansgold/backend/internal/session"
)

type ProfileService struct {
	db       *gorm.DB
	sessions *session.Manager
	log      zerolog.Logger
}

func NewProfileService(db *gorm.DB, sessions *session.Manager, log zerolog.Logger) *ProfileService {
	return &ProfileService{
		db:       db,
		sessions: sessions,
		log:      log.With().Str("component", "profile").Logger(),
	}
}

// Get returns the public profile with the user's posts, newest first
func (s *ProfileService) Get(ctx context.Context, username string) (*Profile, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var posts []models.Post
	err := s.db.WithContext(ctx).
		Where("author_id = ?", user.ID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	var profile Profile
	if err := copier.Copy(&profile, &user); err != nil {
		return nil, err
	}
	profile.Avatar = avatarOf(user)
	profile.JoinedDate = user.CreatedAt.UTC().Format(DateLayout)

	profile.Posts = make([]ProfilePost, 0, len(posts))
	for _, p := range posts {
		profile.Posts = append(profile.Posts, ProfilePost{
			ID:           p.ID,
			Content:      p.Content,
			Timestamp:    formatTimestamp(p.CreatedAt),
			Likes:        p.Likes,
			CommentCount: p.CommentCount,
			Avatar:       profile.Avatar,
			RatingAvg:    p.Rating.Average(),
			RatingCount:  p.Rating.Count,
		})
	}

	return &profile, nil
}

// Update changes only the fields present in req. A new avatar is also written into the live session.
func (s *ProfileService) Update(ctx context.Context, actor *session.Session, req models.ProfileUpdate) error {
	if err := requireActor(actor); err != nil {
		return err
	}

	updates := map[string]interface{}{}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.Avatar != nil {
		updates["avatar"] = *req.Avatar
	}
	if req.ProfileImage != nil {
		updates["profile_image"] = *req.ProfileImage
	}
	if req.RemoveImage {
		updates["profile_image"] = nil
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("id = ?", actor.UserID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&user).Updates(updates).Error
	})
	if err != nil {
		return err
	}

	if req.Avatar != nil && *req.Avatar != actor.Avatar {
		updated := *actor
		updated.Avatar = *req.Avatar
		if err := s.sessions.Update(ctx, &updated); err != nil {
			return err
		}
		actor.Avatar = updated.Avatar
	}

	return nil
}
