package service

import (
	"time"

	"github.com/finansgold/backend/internal/models"
)

const (
	TimestampLayout = "2006-01-02 15:04"
	DateLayout      = "2006-01-02"
)

type FeedItem struct {
	ID           int     `json:"id"`
	UserID       int     `json:"user_id"`
	User         string  `json:"user"`
	Avatar       string  `json:"avatar"`
	Content      string  `json:"content"`
	Likes        int     `json:"likes"`
	CommentCount int     `json:"comment_count"`
	Timestamp    string  `json:"timestamp"`
	RatingAvg    float64 `json:"rating_avg"`
	RatingCount  int     `json:"rating_count"`
}

type CommentItem struct {
	ID          int     `json:"id"`
	UserID      int     `json:"user_id"`
	Username    string  `json:"username"`
	Avatar      string  `json:"avatar"`
	Content     string  `json:"content"`
	Timestamp   string  `json:"timestamp"`
	RatingAvg   float64 `json:"rating_avg"`
	RatingCount int     `json:"rating_count"`
}

type ProfilePost struct {
	ID           int     `json:"id"`
	Content      string  `json:"content"`
	Timestamp    string  `json:"timestamp"`
	Likes        int     `json:"likes"`
	CommentCount int     `json:"comment_count"`
	Avatar       string  `json:"avatar"`
	RatingAvg    float64 `json:"rating_avg"`
	RatingCount  int     `json:"rating_count"`
}

type Profile struct {
	Username      string        `json:"username"`
	FullName      string        `json:"full_name"`
	Bio           string        `json:"bio"`
	Avatar        string        `json:"avatar"`
	ProfileImage  *string       `json:"profile_image"`
	JoinedDate    string        `json:"joined_date"`
	TotalPosts    int           `json:"total_posts"`
	TotalComments int           `json:"total_comments"`
	Posts         []ProfilePost `json:"posts"`
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func avatarOf(u models.User) string {
	if u.Avatar == "" {
		return models.DefaultAvatar
	}
	return u.Avatar
}

func newFeedItem(p models.Post) FeedItem {
	return FeedItem{
		ID:           p.ID,
		UserID:       p.AuthorID,
		User:         p.Author.Username,
		Avatar:       avatarOf(p.Author),
		Content:      p.Content,
		Likes:        p.Likes,
		CommentCount: p.CommentCount,
		Timestamp:    formatTimestamp(p.CreatedAt),
		RatingAvg:    p.Rating.Average(),
		RatingCount:  p.Rating.Count,
	}
}

func newCommentItem(id int, author models.User, content string, createdAt time.Time, rating models.Rating) CommentItem {
	return CommentItem{
		ID:          id,
		UserID:      author.ID,
		Username:    author.Username,
		Avatar:      avatarOf(author),
		Content:     content,
		Timestamp:   formatTimestamp(createdAt),
		RatingAvg:   rating.Average(),
		RatingCount: rating.Count,
	}
}
