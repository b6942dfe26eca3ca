package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/finansgold/backend/internal/models"
	"github.com/finansgold/backend/internal/session"
)

const DefaultFullName = "İsimsiz Kullanıcı"

type AuthService struct {
	db         *gorm.DB
	sessions   *session.Manager
	log        zerolog.Logger
	pickAvatar func() string
}

func NewAuthService(db *gorm.DB, sessions *session.Manager, log zerolog.Logger) *AuthService {
	return &AuthService{
		db:       db,
		sessions: sessions,
		log:      log.With().Str("component", "auth").Logger(),
		pickAvatar: func() string {
			return models.Avatars[rand.Intn(len(models.Avatars))]
		},
	}
}

// SessionState is what the client learns about its own session
type SessionState struct {
	LoggedIn bool   `json:"logged_in"`
	Username string `json:"username,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

// Register creates the account and opens a session for it
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*session.Session, string, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, "", ErrMissingCredentials
	}

	var existing int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&existing).Error; err != nil {
		return nil, "", err
	}
	if existing > 0 {
		return nil, "", ErrUsernameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		fullName = DefaultFullName
	}

	user := models.User{
		Username: username,
		Password: string(hashed),
		FullName: fullName,
		Avatar:   s.pickAvatar(),
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", ErrUsernameTaken
		}
		return nil, "", err
	}

	s.log.Info().Str("username", user.Username).Msg("user registered")
	return s.sessions.Create(ctx, user.ID, user.Username, user.Avatar)
}

// Login checks the credentials and opens a session. Nothing is stored on failure.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*session.Session, string, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, "", ErrMissingCredentials
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	s.log.Info().Str("username", user.Username).Msg("user logged in")
	return s.sessions.Create(ctx, user.ID, user.Username, user.Avatar)
}

func (s *AuthService) CheckSession(sess *session.Session) SessionState {
	if sess == nil {
		return SessionState{LoggedIn: false}
	}
	avatar := sess.Avatar
	if avatar == "" {
		avatar = models.DefaultAvatar
	}
	return SessionState{LoggedIn: true, Username: sess.Username, Avatar: avatar}
}

// Logout is idempotent
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Destroy(ctx, token)
}
