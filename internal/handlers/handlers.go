package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/finansgold/backend/internal/service"
)

// Services is everything the handlers delegate to
type Services struct {
	Auth    *service.AuthService
	Content *service.ContentService
	Ratings *service.RatingService
	Profile *service.ProfileService
	Market  *service.MarketService
}

// CookieConfig describes the session cookie handed to browsers
type CookieConfig struct {
	Name   string
	MaxAge time.Duration
	Secure bool
}

// Handler combines all handler types
type Handler struct {
	Auth    *AuthHandler
	Post    *PostHandler
	Comment *CommentHandler
	User    *UserHandler
	Market  *MarketHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(svc Services, cookie CookieConfig, log zerolog.Logger) *Handler {
	log = log.With().Str("component", "http").Logger()

	return &Handler{
		Auth:    NewAuthHandler(svc.Auth, cookie, log),
		Post:    NewPostHandler(svc.Content, svc.Ratings, log),
		Comment: NewCommentHandler(svc.Content, svc.Ratings, log),
		User:    NewUserHandler(svc.Profile, log),
		Market:  NewMarketHandler(svc.Market, log),
	}
}

// respondError writes {"error": msg} with the status of err's kind.
// Errors outside the taxonomy are logged and hidden behind the generic internal message.
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	code, known := service.StatusOf(err)
	if !known || code == http.StatusInternalServerError {
		log.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
	}
	if !known {
		err = service.ErrInternal
	}
	c.JSON(code, gin.H{"error": err.Error()})
}

// bindError turns a binding failure into a validation error with a readable message
func bindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch verrs[0].Field() {
		case "Content":
			return service.ErrEmptyContent
		case "Symbol":
			return service.ErrMissingSymbol
		}
	}
	return service.ErrValidation
}

// idParam parses a numeric path parameter; anything else names no row
func idParam(c *gin.Context, name string, notFound error) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, notFound
	}
	return id, nil
}

func success(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}
