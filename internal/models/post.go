package models

import "time"

type Post struct {
	ID           int       `gorm:"primaryKey" json:"id"`
	AuthorID     int       `gorm:"not null;index" json:"author_id"`
	Author       User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	Likes        int       `gorm:"not null;default:0" json:"likes"`
	CommentCount int       `gorm:"not null;default:0" json:"comment_count"`
	Rating       Rating    `gorm:"embedded" json:"rating"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CreatePostRequest struct {
	Content string `json:"content" binding:"required"`
}

type UpdatePostRequest struct {
	Content string `json:"content" binding:"required"`
}
