package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/videominer/videominer-go/internal/models"
	"github.com/videominer/videominer-go/internal/query"
	"github.com/videominer/videominer-go/internal/service"
)

// CommentHandler handles comment HTTP requests.
type CommentHandler struct {
	comments *service.CommentService
}

// NewCommentHandler creates a new CommentHandler instance.
func NewCommentHandler(comments *service.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// List returns one page of comments.
func (h *CommentHandler) List(c *gin.Context) {
	q, err := listParams(c, query.CommentFields)
	if err != nil {
		handleError(c, err)
		return
	}

	comments, total, err := h.comments.List(c.Request.Context(), q)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, listResponse(comments, q, total))
}

// Get returns one comment with its author.
func (h *CommentHandler) Get(c *gin.Context) {
	comment, err := h.comments.Get(c.Request.Context(), c.Param("commentId"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

// ListByVideo returns every comment on a video.
func (h *CommentHandler) ListByVideo(c *gin.Context) {
	comments, err := h.comments.ListByVideo(c.Request.Context(), c.Param("videoId"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

// Create stores a comment, and its author, under an existing video.
func (h *CommentHandler) Create(c *gin.Context) {
	var req models.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request payload: "+err.Error())
		return
	}

	comment, err := h.comments.Create(c.Request.Context(), c.Param("videoId"), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// Update modifies the mutable fields of a comment.
func (h *CommentHandler) Update(c *gin.Context) {
	var req models.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request payload: "+err.Error())
		return
	}

	if err := h.comments.Update(c.Request.Context(), c.Param("commentId"), &req); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Delete removes a comment together with its author.
func (h *CommentHandler) Delete(c *gin.Context) {
	if err := h.comments.Delete(c.Request.Context(), c.Param("commentId")); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
