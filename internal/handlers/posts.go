package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/finansgold/backend/internal/middleware"
	"github.com/finansgold/backend/internal/models"
	"github.com/finansgold/backend/internal/service"
)

type PostHandler struct {
	content *service.ContentService
	ratings *service.RatingService
	log     zerolog.Logger
}

func NewPostHandler(content *service.ContentService, ratings *service.RatingService, log zerolog.Logger) *PostHandler {
	return &PostHandler{content: content, ratings: ratings, log: log}
}

// GetFeed returns the newest posts; a failed read yields an empty list
func (h *PostHandler) GetFeed(c *gin.Context) {
	items, err := h.content.Feed(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to load feed")
		c.JSON(http.StatusOK, []service.FeedItem{})
		return
	}
	c.JSON(http.StatusOK, items)
}

// CreatePost creates a new post (PROTECTED - requires authentication)
func (h *PostHandler) CreatePost(c *gin.Context) {
	var input models.CreatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, h.log, bindError(err))
		return
	}

	postID, err := h.content.CreatePost(c.Request.Context(), middleware.CurrentSession(c), input.Content)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "post_id": postID})
}

// UpdatePost replaces the content of a post the caller owns
func (h *PostHandler) UpdatePost(c *gin.Context) {
	postID, err := idParam(c, "id", service.ErrPostNotFound)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	var input models.UpdatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, h.log, bindError(err))
		return
	}

	if err := h.content.UpdatePost(c.Request.Context(), middleware.CurrentSession(c), postID, input.Content); err != nil {
		respondError(c, h.log, err)
		return
	}
	success(c)
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	postID, err := idParam(c, "id", service.ErrPostNotFound)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	if err := h.content.DeletePost(c.Request.Context(), middleware.CurrentSession(c), postID); err != nil {
		respondError(c, h.log, err)
		return
	}
	success(c)
}

func (h *PostHandler) RatePost(c *gin.Context) {
	var input models.RateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, h.log, service.ErrInvalidRating)
		return
	}

	res, err := h.ratings.Rate(c.Request.Context(), middleware.CurrentSession(c), service.TargetPost, input.PostID, input.Rating)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondRating(c, res)
}

func respondRating(c *gin.Context, res *service.RatingResult) {
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"rating_avg":   res.Avg,
		"rating_count": res.Count,
	})
}
