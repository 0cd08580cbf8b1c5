package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/videominer/videominer-go/internal/models"
	"github.com/videominer/videominer-go/internal/service"
)

// TokenHandler handles token registration. This is the one route left
// outside the token gate.
type TokenHandler struct {
	tokens *service.TokenService
}

// NewTokenHandler creates a new TokenHandler instance.
func NewTokenHandler(tokens *service.TokenService) *TokenHandler {
	return &TokenHandler{tokens: tokens}
}

// Create registers an access token value.
func (h *TokenHandler) Create(c *gin.Context) {
	var req models.CreateTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request payload: "+err.Error())
		return
	}

	token, err := h.tokens.Create(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, token)
}
