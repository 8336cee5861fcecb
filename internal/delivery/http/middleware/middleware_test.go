package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"
	"time"

	"go-benefit-recommender/internal/delivery/http/response"
	"go-benefit-recommender/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var body response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "pong", nil)
	})

	t.Run("Generates an ID", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		id := w.Header().Get(RequestIDHeader)
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
		assert.Equal(t, id, decode(t, w).RequestID)
	})

	t.Run("Reuses a valid inbound ID", func(t *testing.T) {
		inbound := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(RequestIDHeader, inbound)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, inbound, w.Header().Get(RequestIDHeader))
	})

	t.Run("Replaces a malformed inbound ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(RequestIDHeader, "<script>")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.NotEqual(t, "<script>", w.Header().Get(RequestIDHeader))
	})
}

func TestErrorHandler(t *testing.T) {
	type payload struct {
		Title string `validate:"required"`
	}

	r := gin.New()
	r.Use(RequestID(), ErrorHandler())
	r.GET("/app", func(c *gin.Context) {
		_ = c.Error(apperror.NotFound("Offer not found"))
	})
	r.GET("/validation", func(c *gin.Context) {
		_ = c.Error(validator.New().Struct(payload{}))
	})
	r.GET("/internal", func(c *gin.Context) {
		_ = c.Error(errors.New("pq: relation does not exist"))
	})

	t.Run("Application errors keep their status", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/app", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		body := decode(t, w)
		assert.False(t, body.Success)
		assert.Equal(t, "Offer not found", body.Message)
	})

	t.Run("Validation errors are formatted", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/validation", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decode(t, w)
		assert.Equal(t, "Validation failed", body.Message)
		assert.Equal(t, []interface{}{"Title: is required"}, body.Error)
	})

	t.Run("Unknown errors are hidden", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/internal", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "relation")
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(DefaultRateLimitConfig(2, time.Minute, nil)))
	r.GET("/limited", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	call := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/limited", nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	first := call("10.0.0.1")
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusOK, call("10.0.0.1").Code)

	blocked := call("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.Equal(t, "0", blocked.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, blocked.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, call("10.0.0.2").Code, "other clients keep their own budget")
}

func TestRateLimitDisabled(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(DefaultRateLimitConfig(0, time.Minute, nil)))
	r.GET("/open", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/open", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestMemoryStoreResetsExpiredWindow(t *testing.T) {
	s := newMemoryStore(time.Second)
	now := time.Now()

	count, _ := s.hit("k", time.Second, now)
	assert.Equal(t, 1, count)
	count, _ = s.hit("k", time.Second, now)
	assert.Equal(t, 2, count)
	count, _ = s.hit("k", time.Second, now.Add(2*time.Second))
	assert.Equal(t, 1, count)
}

func TestMemoryStoreSweepsExpiredEntries(t *testing.T) {
	s := newMemoryStore(time.Second)
	start := s.lastSweep

	s.hit("old", time.Second, start.Add(time.Second))
	s.hit("fresh", 10*time.Minute, start.Add(time.Second))

	// before the sweep interval nothing is dropped
	s.hit("fresh", 10*time.Minute, start.Add(time.Minute))
	_, ok := s.entries.Load("old")
	assert.True(t, ok)

	s.hit("fresh", 10*time.Minute, start.Add(s.sweepInterval+time.Second))
	_, ok = s.entries.Load("old")
	assert.False(t, ok, "expired entry should be swept")
	_, ok = s.entries.Load("fresh")
	assert.True(t, ok)
}

func TestRateLimitMiddlewareStartsNoGoroutines(t *testing.T) {
	before := runtime.NumGoroutine()
	for i := 0; i < 50; i++ {
		_ = RateLimitMiddleware(DefaultRateLimitConfig(10, time.Minute, nil))
	}
	assert.LessOrEqual(t, runtime.NumGoroutine(), before)
}

func TestCORSMiddleware(t *testing.T) {
	newRouter := func(origins ...string) *gin.Engine {
		r := gin.New()
		r.Use(CORSMiddleware(origins))
		r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })
		return r
	}

	preflight := func(r *gin.Engine, origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/x", nil)
		req.Header.Set("Origin", origin)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("Listed origin gets credentials", func(t *testing.T) {
		w := preflight(newRouter("https://hr.example.com"), "https://hr.example.com")
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "https://hr.example.com", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("Unlisted origin is refused", func(t *testing.T) {
		w := preflight(newRouter("https://hr.example.com"), "https://evil.example.com")
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Wildcard allows any origin without credentials", func(t *testing.T) {
		w := preflight(newRouter("*"), "https://anywhere.example.com")
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	})
}
