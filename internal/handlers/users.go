package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/finansgold/backend/internal/middleware"
	"github.com/finansgold/backend/internal/models"
	"github.com/finansgold/backend/internal/service"
)

type UserHandler struct {
	profiles *service.ProfileService
	log      zerolog.Logger
}

func NewUserHandler(profiles *service.ProfileService, log zerolog.Logger) *UserHandler {
	return &UserHandler{profiles: profiles, log: log}
}

// GetUserProfile returns a user's public profile with their posts
func (h *UserHandler) GetUserProfile(c *gin.Context) {
	profile, err := h.profiles.Get(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateUserProfile edits the caller's own profile (PROTECTED)
func (h *UserHandler) UpdateUserProfile(c *gin.Context) {
	var input models.ProfileUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, h.log, bindError(err))
		return
	}

	if err := h.profiles.Update(c.Request.Context(), middleware.CurrentSession(c), input); err != nil {
		respondError(c, h.log, err)
		return
	}
	success(c)
}
