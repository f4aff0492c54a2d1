package api

import (
	"net/http"
	"strconv"

	"github.com/comment-dashboard-api/internal/filter"
	"github.com/comment-dashboard-api/internal/models"
	"github.com/comment-dashboard-api/internal/service"
	"github.com/comment-dashboard-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// CommentHandler handles comment listing and moderation endpoints
type CommentHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(services *service.Services, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		services: services,
		log:      log.With().Str("handler", "comment").Logger(),
	}
}

// ListComments handles GET /api/comments?status=&search=&limit=&sort=
func (h *CommentHandler) ListComments(c *gin.Context) {
	opts := filter.Options{
		Status: c.Query("status"),
		Search: c.Query("search"),
		Sort:   filter.SortOrder(c.Query("sort")),
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			respondValidation(c, "limit must be an integer", []validation.FieldError{
				{Field: "limit", Message: "limit must be an integer", Value: raw},
			})
			return
		}
		opts.Limit = limit
	}

	comments, err := h.services.Comment.List(c.Request.Context(), opts)
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch comments")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"comments": comments,
		"count":    len(comments),
	})
}

// UpdateComment handles PATCH /api/comments/:id
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	id, errs := validation.ParseCommentID(c.Param("id"))
	if errs != nil {
		respondValidation(c, errs[0].Message, errs)
		return
	}

	var req models.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Valid status is required (pending, approved, spam)", []validation.FieldError{
			{Field: "status", Message: "request body must be JSON with a status field"},
		})
		return
	}

	comment, err := h.services.Comment.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, h.log, err, "Failed to update comment")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"comment": comment,
	})
}

// DeleteComment handles DELETE /api/comments/:id
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	id, errs := validation.ParseCommentID(c.Param("id"))
	if errs != nil {
		respondValidation(c, errs[0].Message, errs)
		return
	}

	if err := h.services.Comment.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err, "Failed to delete comment")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// BulkAction handles POST /api/comments/bulk
func (h *CommentHandler) BulkAction(c *gin.Context) {
	var req models.BulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, "Action and commentIds array are required", []validation.FieldError{
			{Field: "body", Message: err.Error()},
		})
		return
	}

	count, err := h.services.Comment.Bulk(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err, "Failed to perform bulk action")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   count,
	})
}
