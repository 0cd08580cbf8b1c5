package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/videominer/videominer-go/internal/models"
	"github.com/videominer/videominer-go/internal/query"
	"github.com/videominer/videominer-go/internal/service"
)

// CaptionHandler handles caption HTTP requests.
type CaptionHandler struct {
	captions *service.CaptionService
}

// NewCaptionHandler creates a new CaptionHandler instance.
func NewCaptionHandler(captions *service.CaptionService) *CaptionHandler {
	return &CaptionHandler{captions: captions}
}

// List returns one page of captions.
func (h *CaptionHandler) List(c *gin.Context) {
	q, err := listParams(c, query.CaptionFields)
	if err != nil {
		handleError(c, err)
		return
	}

	captions, total, err := h.captions.List(c.Request.Context(), q)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, listResponse(captions, q, total))
}

// Get returns one caption.
func (h *CaptionHandler) Get(c *gin.Context) {
	caption, err := h.captions.Get(c.Request.Context(), c.Param("captionId"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, caption)
}

// ListByVideo returns every caption of a video.
func (h *CaptionHandler) ListByVideo(c *gin.Context) {
	captions, err := h.captions.ListByVideo(c.Request.Context(), c.Param("videoId"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, captions)
}

// Create stores a caption under an existing video.
func (h *CaptionHandler) Create(c *gin.Context) {
	var req models.CreateCaptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request payload: "+err.Error())
		return
	}

	caption, err := h.captions.Create(c.Request.Context(), c.Param("videoId"), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, caption)
}

// Update modifies the mutable fields of a caption.
func (h *CaptionHandler) Update(c *gin.Context) {
	var req models.UpdateCaptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request payload: "+err.Error())
		return
	}

	if err := h.captions.Update(c.Request.Context(), c.Param("captionId"), &req); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Delete removes a caption.
func (h *CaptionHandler) Delete(c *gin.Context) {
	if err := h.captions.Delete(c.Request.Context(), c.Param("captionId")); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
