package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/videominer/videominer-go/internal/models"
	"github.com/videominer/videominer-go/internal/query"
	"github.com/videominer/videominer-go/internal/service"
)

// ChannelHandler handles channel HTTP requests.
type ChannelHandler struct {
	channels *service.ChannelService
}

// NewChannelHandler creates a new ChannelHandler instance.
func NewChannelHandler(channels *service.ChannelService) *ChannelHandler {
	return &ChannelHandler{channels: channels}
}

// List returns one page of channels.
func (h *ChannelHandler) List(c *gin.Context) {
	q, err := listParams(c, query.ChannelFields)
	if err != nil {
		handleError(c, err)
		return
	}

	channels, total, err := h.channels.List(c.Request.Context(), q)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, listResponse(channels, q, total))
}

// Get returns one channel with its videos.
func (h *ChannelHandler) Get(c *gin.Context) {
	channel, err := h.channels.Get(c.Request.Context(), c.Param("channelId"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, channel)
}

// Create stores a channel together with any embedded videos, comments and
// captions.
func (h *ChannelHandler) Create(c *gin.Context) {
	var req models.CreateChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request payload: "+err.Error())
		return
	}

	channel, err := h.channels.Create(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, channel)
}

// Update modifies the mutable fields of a channel.
func (h *ChannelHandler) Update(c *gin.Context) {
	var req models.UpdateChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request payload: "+err.Error())
		return
	}

	if err := h.channels.Update(c.Request.Context(), c.Param("channelId"), &req); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Delete removes a channel and everything it owns.
func (h *ChannelHandler) Delete(c *gin.Context) {
	if err := h.channels.Delete(c.Request.Context(), c.Param("channelId")); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
