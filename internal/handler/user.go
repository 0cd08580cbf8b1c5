package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/videominer/videominer-go/internal/models"
	"github.com/videominer/videominer-go/internal/query"
	"github.com/videominer/videominer-go/internal/service"
)

// UserHandler handles user HTTP requests. Users are created through comments,
// so the routes cover read, update and delete only.
type UserHandler struct {
	users *service.UserService
}

// NewUserHandler creates a new UserHandler instance.
func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// List returns one page of users.
func (h *UserHandler) List(c *gin.Context) {
	q, err := listParams(c, query.UserFields)
	if err != nil {
		handleError(c, err)
		return
	}

	users, total, err := h.users.List(c.Request.Context(), q)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, listResponse(users, q, total))
}

// Get returns one user.
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), c.Param("userId"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// ListByVideo returns the comment authors of a video.
func (h *UserHandler) ListByVideo(c *gin.Context) {
	users, err := h.users.ListByVideo(c.Request.Context(), c.Param("videoId"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// Update modifies the mutable fields of a user.
func (h *UserHandler) Update(c *gin.Context) {
	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request payload: "+err.Error())
		return
	}

	if err := h.users.Update(c.Request.Context(), c.Param("userId"), &req); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Delete removes a user together with the comment they authored.
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), c.Param("userId")); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
