package service

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/finansgold/backend/internal/database"
	"github.com/finansgold/backend/internal/models"
	"github.com/finansgold/backend/internal/session"
)

// RatingTarget names the kind of row a rating lands on
type RatingTarget int

const (
	TargetPost RatingTarget = iota
	TargetPostComment
	TargetAssetComment
)

func (t RatingTarget) model() (interface{}, error) {
	switch t {
	case TargetPost:
		return &models.Post{}, nil
	case TargetPostComment:
		return &models.PostComment{}, nil
	case TargetAssetComment:
		return &models.AssetComment{}, nil
	default:
		return nil, ErrValidation
	}
}

func (t RatingTarget) notFound() error {
	if t == TargetPost {
		return ErrPostNotFound
	}
	return ErrCommentNotFound
}

type RatingResult struct {
	Avg   float64 `json:"rating_avg"`
	Count int     `json:"rating_count"`
}

// RatingService keeps the running rating sum and count on posts and comments.
// Ratings are append-only: the same user may rate a target any number of times.
type RatingService struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewRatingService(db *gorm.DB, log zerolog.Logger) *RatingService {
	return &RatingService{
		db:  db,
		log: log.With().Str("component", "rating").Logger(),
	}
}

func (s *RatingService) Rate(ctx context.Context, actor *session.Session, target RatingTarget, id, rating int) (*RatingResult, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if !models.ValidRating(rating) {
		return nil, ErrInvalidRating
	}
	model, err := target.model()
	if err != nil {
		return nil, err
	}

	var sum, count int
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// single UPDATE so concurrent ratings cannot lose each other
		res := tx.Model(model).Where("id = ?", id).UpdateColumns(map[string]interface{}{
			"rating_sum":   database.Increment("rating_sum", rating),
			"rating_count": database.Increment("rating_count", 1),
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return target.notFound()
		}

		return tx.Model(model).Select("rating_sum", "rating_count").Where("id = ?", id).Row().Scan(&sum, &count)
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug().Int("target", int(target)).Int("id", id).Int("rating", rating).Msg("rated")
	return &RatingResult{Avg: models.AverageRating(sum, count), Count: count}, nil
}
