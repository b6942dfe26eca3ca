package models

import "time"

// Avatars is the glyph palette a new account draws its avatar from
var Avatars = []string{"👤", "😎", "🚀", "💎", "🎯", "⚡", "🔥", "🌟", "💰", "🦁"}

const DefaultAvatar = "👤"

type User struct {
	ID            int       `gorm:"primaryKey" json:"id"`
	Username      string    `gorm:"size:80;uniqueIndex;not null" json:"username"`
	Password      string    `gorm:"size:200;not null" json:"-"`
	FullName      string    `gorm:"size:100" json:"full_name"`
	Bio           string    `gorm:"size:500" json:"bio"`
	Avatar        string    `gorm:"size:16" json:"avatar"`
	ProfileImage  *string   `gorm:"type:text" json:"profile_image"`
	TotalPosts    int       `gorm:"not null;default:0" json:"total_posts"`
	TotalComments int       `gorm:"not null;default:0" json:"total_comments"`
	CreatedAt     time.Time `json:"joined_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ProfileUpdate carries the optional fields of a profile edit; nil means unchanged
type ProfileUpdate struct {
	Bio          *string `json:"bio"`
	Avatar       *string `json:"avatar"`
	ProfileImage *string `json:"profile_image"`
	RemoveImage  bool    `json:"remove_image"`
}
