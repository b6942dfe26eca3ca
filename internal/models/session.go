package models

import "time"

// Session is the relational fallback storage for login sessions
type Session struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    int       `gorm:"not null;index" json:"user_id"`
	Username  string    `gorm:"size:80" json:"username"`
	Avatar    string    `gorm:"size:16" json:"avatar"`
	ExpiresAt time.Time `gorm:"index" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
