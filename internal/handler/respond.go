// Package handler provides the HTTP handlers of the catalogue API.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/videominer/videominer-go/internal/db"
	"github.com/videominer/videominer-go/internal/models"
	"github.com/videominer/videominer-go/internal/query"
	"github.com/videominer/videominer-go/internal/service"
	"github.com/videominer/videominer-go/pkg/logger"
)

const (
	defaultPage = 0
	defaultSize = 10
)

// listParams reads page, size, order and the remaining query parameters as
// filters, then validates them against the entity's field set.
func listParams(c *gin.Context, fields query.FieldSet) (*query.ListQuery, error) {
	page := defaultPage
	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, query.ErrInvalidPaging
		}
		page = n
	}

	size := defaultSize
	if raw := c.Query("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, query.ErrInvalidPaging
		}
		size = n
	}

	filters := make(map[string]string)
	for name, values := range c.Request.URL.Query() {
		switch name {
		case "page", "size", "order":
			continue
		}
		if len(values) > 0 {
			filters[name] = values[0]
		}
	}

	return query.Parse(page, size, c.Query("order"), filters, fields)
}

// listResponse is the envelope returned by every collection endpoint.
func listResponse(items any, q *query.ListQuery, total int) gin.H {
	return gin.H{
		"items": items,
		"page":  q.Page,
		"size":  q.Size,
		"total": total,
	}
}

// handleError translates service and query errors into the error body.
func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, query.ErrAmbiguousFilter),
		errors.Is(err, query.ErrMalformedFilterValue),
		errors.Is(err, query.ErrUnknownField),
		errors.Is(err, query.ErrInvalidPaging),
		errors.Is(err, service.ErrIDRequired),
		errors.Is(err, service.ErrTokenValueRequired):
		respondError(c, http.StatusBadRequest, err.Error())

	case errors.Is(err, service.ErrTokenRequired), errors.Is(err, service.ErrTokenInvalid):
		respondError(c, http.StatusForbidden, err.Error())

	case service.IsNotFound(err):
		respondError(c, http.StatusNotFound, err.Error())

	case db.IsDuplicateKey(err):
		respondError(c, http.StatusConflict, err.Error())

	default:
		logger.Log.Error("Unexpected error",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
		)
		respondError(c, http.StatusInternalServerError, "an unexpected error occurred")
	}
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, models.ErrorResponse{
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
		Timestamp: time.Now(),
		Path:      c.Request.URL.Path,
	})
}

func badRequest(c *gin.Context, message string) {
	respondError(c, http.StatusBadRequest, message)
}
