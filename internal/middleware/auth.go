// Package middleware provides the gin middleware used by the HTTP server.
package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/videominer/videominer-go/internal/models"
	"github.com/videominer/videominer-go/internal/service"
)

const headerAuth = "Authorization"

// RequireToken gates every catalogue route behind a registered access token.
// The Authorization header carries the token value verbatim, with no scheme
// prefix. A missing header and an unknown token are reported separately but
// both end the request with 403.
func RequireToken(auth *service.Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(headerAuth)

		err := auth.Authorize(c.Request.Context(), token)
		if err == nil {
			c.Next()
			return
		}

		if errors.Is(err, service.ErrTokenRequired) || errors.Is(err, service.ErrTokenInvalid) {
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{
				Status:    http.StatusForbidden,
				Error:     http.StatusText(http.StatusForbidden),
				Message:   err.Error(),
				Timestamp: time.Now(),
				Path:      c.Request.URL.Path,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
			Status:    http.StatusInternalServerError,
			Error:     http.StatusText(http.StatusInternalServerError),
			Message:   "token lookup failed",
			Timestamp: time.Now(),
			Path:      c.Request.URL.Path,
		})
	}
}
