package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/finansgold/backend/internal/service"
	"github.com/finansgold/backend/internal/session"
)

const (
	sessionKey = "session"
	tokenKey   = "session_token"
)

// LoadSession resolves the session cookie, if any, and stores the session in the context.
// Requests without a valid session pass through anonymously; a failing store aborts with 500.
func LoadSession(sessions *session.Manager, cookieName string, log zerolog.Logger) gin.HandlerFunc {
	log = log.With().Str("component", "session").Logger()

	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}
		c.Set(tokenKey, token)

		sess, err := sessions.Resolve(c.Request.Context(), token)
		switch {
		case err == nil:
			c.Set(sessionKey, sess)
		case errors.Is(err, session.ErrNoSession), errors.Is(err, session.ErrInvalidToken):
		default:
			log.Error().Err(err).Msg("failed to resolve session")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": service.ErrInternal.Error()})
			return
		}

		c.Next()
	}
}

// AuthMiddleware rejects requests that carry no live session
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentSession(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": service.ErrUnauthorized.Error()})
			return
		}
		c.Next()
	}
}

// CurrentSession returns the caller's session or nil
func CurrentSession(c *gin.Context) *session.Session {
	raw, exists := c.Get(sessionKey)
	if !exists {
		return nil
	}
	sess, _ := raw.(*session.Session)
	return sess
}

// SessionToken returns the raw cookie value seen on the request
func SessionToken(c *gin.Context) string {
	return c.GetString(tokenKey)
}
