package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/videominer/videominer-go/internal/models"
	"github.com/videominer/videominer-go/internal/service"
	"github.com/videominer/videominer-go/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	_ = logger.Init("error", "")
}

type stubTokenRepo struct {
	known map[string]bool
}

func (s *stubTokenRepo) Exists(_ context.Context, value string) (bool, error) {
	return s.known[value], nil
}

func (s *stubTokenRepo) Save(_ context.Context, token *models.Token) error {
	s.known[token.Value] = true
	return nil
}

func gatedRouter() *gin.Engine {
	auth := service.NewAuthorizer(&stubTokenRepo{known: map[string]bool{"good": true}})

	router := gin.New()
	router.Use(RequireToken(auth))
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return router
}

func TestRequireToken(t *testing.T) {
	tests := []struct {
		name        string
		header      string
		wantStatus  int
		wantMessage string
	}{
		{
			name:       "valid token",
			header:     "good",
			wantStatus: http.StatusOK,
		},
		{
			name:        "missing token",
			header:      "",
			wantStatus:  http.StatusForbidden,
			wantMessage: service.ErrTokenRequired.Error(),
		},
		{
			name:        "unknown token",
			header:      "bad",
			wantStatus:  http.StatusForbidden,
			wantMessage: service.ErrTokenInvalid.Error(),
		},
	}

	router := gatedRouter()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantMessage == "" {
				return
			}

			var body models.ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("unmarshal body: %v", err)
			}
			if body.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", body.Message, tt.wantMessage)
			}
			if body.Status != http.StatusForbidden {
				t.Errorf("body status = %d, want 403", body.Status)
			}
			if body.Path != "/ping" {
				t.Errorf("body path = %q, want /ping", body.Path)
			}
		})
	}
}

// The header value is taken verbatim; a Bearer prefix makes it a different,
// unknown token.
func TestRequireTokenNoSchemeStripping(t *testing.T) {
	router := gatedRouter()

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer good")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestRequestIDEchoed(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Header().Get("X-Request-ID") == "" {
		t.Error("generated request id missing from response")
	}

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "caller-id")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Header().Get("X-Request-ID"); got != "caller-id" {
		t.Errorf("request id = %q, want caller-id", got)
	}
}
