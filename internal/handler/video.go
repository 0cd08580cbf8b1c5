package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/videominer/videominer-go/internal/models"
	"github.com/videominer/videominer-go/internal/query"
	"github.com/videominer/videominer-go/internal/service"
)

// VideoHandler handles video HTTP requests.
type VideoHandler struct {
	videos *service.VideoService
}

// NewVideoHandler creates a new VideoHandler instance.
func NewVideoHandler(videos *service.VideoService) *VideoHandler {
	return &VideoHandler{videos: videos}
}

// List returns one page of videos.
func (h *VideoHandler) List(c *gin.Context) {
	q, err := listParams(c, query.VideoFields)
	if err != nil {
		handleError(c, err)
		return
	}

	videos, total, err := h.videos.List(c.Request.Context(), q)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, listResponse(videos, q, total))
}

// Get returns one video with its comments and captions.
func (h *VideoHandler) Get(c *gin.Context) {
	video, err := h.videos.Get(c.Request.Context(), c.Param("videoId"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, video)
}

// Create stores a video under an existing channel.
func (h *VideoHandler) Create(c *gin.Context) {
	var req models.CreateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request payload: "+err.Error())
		return
	}

	video, err := h.videos.Create(c.Request.Context(), c.Param("channelId"), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, video)
}

// Update modifies the mutable fields of a video.
func (h *VideoHandler) Update(c *gin.Context) {
	var req models.UpdateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request payload: "+err.Error())
		return
	}

	if err := h.videos.Update(c.Request.Context(), c.Param("videoId"), &req); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Delete removes a video and everything it owns.
func (h *VideoHandler) Delete(c *gin.Context) {
	if err := h.videos.Delete(c.Request.Context(), c.Param("videoId")); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
