package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/finansgold/backend/internal/middleware"
	"github.com/finansgold/backend/internal/models"
	"github.com/finansgold/backend/internal/service"
)

type CommentHandler struct {
	content *service.ContentService
	ratings *service.RatingService
	log     zerolog.Logger
}

func NewCommentHandler(content *service.ContentService, ratings *service.RatingService, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{content: content, ratings: ratings, log: log}
}

// GetPostComments lists a post's comments; unknown posts simply have none
func (h *CommentHandler) GetPostComments(c *gin.Context) {
	postID, err := idParam(c, "id", service.ErrPostNotFound)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	items, err := h.content.PostComments(c.Request.Context(), postID)
	if err != nil {
		h.log.Error().Err(err).Int("post_id", postID).Msg("failed to load comments")
		items = []service.CommentItem{}
	}
	c.JSON(http.StatusOK, items)
}

func (h *CommentHandler) CreatePostComment(c *gin.Context) {
	var input models.CreatePostCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, h.log, bindError(err))
		return
	}

	if _, err := h.content.AddPostComment(c.Request.Context(), middleware.CurrentSession(c), input); err != nil {
		respondError(c, h.log, err)
		return
	}
	success(c)
}

func (h *CommentHandler) DeletePostComment(c *gin.Context) {
	commentID, err := idParam(c, "id", service.ErrCommentNotFound)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	if err := h.content.DeletePostComment(c.Request.Context(), middleware.CurrentSession(c), commentID); err != nil {
		respondError(c, h.log, err)
		return
	}
	success(c)
}

// GetAssetComments returns the newest comments on a market symbol
func (h *CommentHandler) GetAssetComments(c *gin.Context) {
	symbol := c.Param("symbol")

	items, err := h.content.AssetComments(c.Request.Context(), symbol)
	if err != nil {
		h.log.Error().Err(err).Str("symbol", symbol).Msg("failed to load asset comments")
		items = []service.CommentItem{}
	}
	c.JSON(http.StatusOK, items)
}

func (h *CommentHandler) CreateAssetComment(c *gin.Context) {
	var input models.CreateAssetCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, h.log, bindError(err))
		return
	}

	if _, err := h.content.AddAssetComment(c.Request.Context(), middleware.CurrentSession(c), input); err != nil {
		respondError(c, h.log, err)
		return
	}
	success(c)
}

func (h *CommentHandler) DeleteAssetComment(c *gin.Context) {
	commentID, err := idParam(c, "id", service.ErrCommentNotFound)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	if err := h.content.DeleteAssetComment(c.Request.Context(), middleware.CurrentSession(c), commentID); err != nil {
		respondError(c, h.log, err)
		return
	}
	success(c)
}

func (h *CommentHandler) RatePostComment(c *gin.Context) {
	h.rateComment(c, service.TargetPostComment)
}

func (h *CommentHandler) RateAssetComment(c *gin.Context) {
	h.rateComment(c, service.TargetAssetComment)
}

func (h *CommentHandler) rateComment(c *gin.Context, target service.RatingTarget) {
	var input models.RateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, h.log, service.ErrInvalidRating)
		return
	}

	res, err := h.ratings.Rate(c.Request.Context(), middleware.CurrentSession(c), target, input.CommentID, input.Rating)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	respondRating(c, res)
}
