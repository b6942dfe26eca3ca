package models

import "time"

// PostComment is a comment attached to a feed post
type PostComment struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	PostID    int       `gorm:"not null;index" json:"post_id"`
	Post      Post      `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	AuthorID  int       `gorm:"not null;index" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Rating    Rating    `gorm:"embedded" json:"rating"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// AssetComment is a comment attached to a market symbol instead of a post
type AssetComment struct {
	ID          int       `gorm:"primaryKey" json:"id"`
	AssetSymbol string    `gorm:"size:50;not null;index" json:"asset_symbol"`
	AuthorID    int       `gorm:"not null;index" json:"author_id"`
	Author      User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	Rating      Rating    `gorm:"embedded" json:"rating"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}

type CreatePostCommentRequest struct {
	PostID  int    `json:"post_id" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type CreateAssetCommentRequest struct {
	Symbol  string `json:"symbol" binding:"required"`
	Content string `json:"content" binding:"required"`
}
