package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/finansgold/backend/internal/middleware"
	"github.com/finansgold/backend/internal/models"
	"github.com/finansgold/backend/internal/service"
)

type AuthHandler struct {
	auth   *service.AuthService
	cookie CookieConfig
	log    zerolog.Logger
}

func NewAuthHandler(auth *service.AuthService, cookie CookieConfig, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, cookie: cookie, log: log}
}

func (h *AuthHandler) setCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, token, maxAge, "/", "", h.cookie.Secure, true)
}

// Register handles user registration and logs the new account in
func (h *AuthHandler) Register(c *gin.Context) {
	var input models.RegisterRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, h.log, service.ErrMissingCredentials)
		return
	}

	_, token, err := h.auth.Register(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.setCookie(c, token, int(h.cookie.MaxAge.Seconds()))
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Kayıt başarılı!"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input models.LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, h.log, service.ErrMissingCredentials)
		return
	}

	sess, token, err := h.auth.Login(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.setCookie(c, token, int(h.cookie.MaxAge.Seconds()))
	c.JSON(http.StatusOK, gin.H{"username": sess.Username, "avatar": sess.Avatar})
}

func (h *AuthHandler) CheckSession(c *gin.Context) {
	c.JSON(http.StatusOK, h.auth.CheckSession(middleware.CurrentSession(c)))
}

// Logout always succeeds and expires the cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	if token := middleware.SessionToken(c); token != "" {
		if err := h.auth.Logout(c.Request.Context(), token); err != nil {
			h.log.Warn().Err(err).Msg("failed to destroy session")
		}
	}

	h.setCookie(c, "", -1)
	success(c)
}
