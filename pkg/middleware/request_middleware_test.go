package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/emceep/pkg/logger"
	"github.com/stretchr/testify/assert"
)

func newTestRouter(buf *bytes.Buffer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID(), AccessLog(logger.New(logger.Options{Level: "debug", Output: buf})))
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, RequestIDFromContext(c.Request.Context()))
	})
	return router
}

func TestRequestIDGenerated(t *testing.T) {
	var buf bytes.Buffer
	router := newTestRouter(&buf)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	id := rec.Header().Get(RequestIDHeader)
	assert.Len(t, id, 36)
	assert.Equal(t, id, rec.Body.String())
	assert.Contains(t, buf.String(), "request_id="+id)
	assert.Contains(t, buf.String(), "status=200")
}

func TestRequestIDPropagated(t *testing.T) {
	var buf bytes.Buffer
	router := newTestRouter(&buf)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
	assert.Equal(t, "abc-123", rec.Body.String())
}

func TestAccessLogWarnsOnClientErrors(t *testing.T) {
	var buf bytes.Buffer
	router := newTestRouter(&buf)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "path=/missing")
}

func TestRequestIDFromEmptyContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, RequestIDFromContext(req.Context()))
}
