package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/vetclinic-api/internal/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAuthenticator map[string]*model.Principal

func (s stubAuthenticator) Authenticate(_ context.Context, token string) (*model.Principal, error) {
	if p, ok := s[token]; ok {
		return p, nil
	}
	return nil, model.ErrInvalidToken
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticate(t *testing.T) {
	operator := &model.Principal{UserID: 3, Email: "op@clinica.com"}
	auth := NewAuthMiddleware(stubAuthenticator{"good": operator}, "vet_session")

	r := gin.New()
	r.GET("/me", auth.Authenticate(), func(c *gin.Context) {
		c.JSON(http.StatusOK, GetPrincipal(c))
	})

	tests := []struct {
		name   string
		setup  func(*http.Request)
		status int
	}{
		{"no credentials", func(*http.Request) {}, http.StatusUnauthorized},
		{"cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "vet_session", Value: "good"}) }, http.StatusOK},
		{"bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer good") }, http.StatusOK},
		{"bad token", func(r *http.Request) { r.Header.Set("Authorization", "Bearer forged") }, http.StatusUnauthorized},
		{"other scheme", func(r *http.Request) { r.Header.Set("Authorization", "Basic good") }, http.StatusUnauthorized},
		{"stale cookie with valid bearer", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: "vet_session", Value: "expired"})
			r.Header.Set("Authorization", "Bearer good")
		}, http.StatusOK},
		{"stale cookie and bad bearer", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: "vet_session", Value: "expired"})
			r.Header.Set("Authorization", "Bearer forged")
		}, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			tt.setup(req)
			w := serve(r, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusUnauthorized {
				assert.JSONEq(t, `{"status":"error","message":"unauthorized"}`, w.Body.String())
			} else {
				assert.Contains(t, w.Body.String(), `"email":"op@clinica.com"`)
			}
		})
	}
}

func TestRateLimitPerClient(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Rate: 1, Burst: 1})
	r := gin.New()
	r.GET("/", rl.RateLimit(), func(c *gin.Context) { c.Status(http.StatusOK) })

	first := httptest.NewRequest(http.MethodGet, "/", nil)
	first.RemoteAddr = "10.0.0.1:1234"
	assert.Equal(t, http.StatusOK, serve(r, first).Code)

	again := httptest.NewRequest(http.MethodGet, "/", nil)
	again.RemoteAddr = "10.0.0.1:1235"
	w := serve(r, again)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))

	other := httptest.NewRequest(http.MethodGet, "/", nil)
	other.RemoteAddr = "10.0.0.2:1234"
	assert.Equal(t, http.StatusOK, serve(r, other).Code)
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS(DefaultCORSConfig([]string{"http://localhost:5173"})))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := serve(r, req)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	preflight := httptest.NewRequest(http.MethodOptions, "/x", nil)
	preflight.Header.Set("Origin", "http://localhost:5173")
	assert.Equal(t, http.StatusNoContent, serve(r, preflight).Code)

	foreign := httptest.NewRequest(http.MethodOptions, "/x", nil)
	foreign.Header.Set("Origin", "http://evil.example")
	w = serve(r, foreign)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

type countingInvalidator struct{ calls int }

func (c *countingInvalidator) InvalidateDashboard(context.Context) error {
	c.calls++
	return nil
}

func TestInvalidateCacheOnSuccessfulWrites(t *testing.T) {
	inv := &countingInvalidator{}
	r := gin.New()
	r.Use(InvalidateCache(inv))
	r.GET("/clients", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/clients", func(c *gin.Context) { c.Status(http.StatusCreated) })
	r.PUT("/clients/:id", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	r.DELETE("/clients/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	serve(r, httptest.NewRequest(http.MethodGet, "/clients", nil))
	assert.Equal(t, 0, inv.calls)

	serve(r, httptest.NewRequest(http.MethodPost, "/clients", nil))
	assert.Equal(t, 1, inv.calls)

	serve(r, httptest.NewRequest(http.MethodPut, "/clients/1", nil))
	assert.Equal(t, 1, inv.calls)

	serve(r, httptest.NewRequest(http.MethodDelete, "/clients/1", nil))
	assert.Equal(t, 2, inv.calls)
}

func TestRequestIDPropagation(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(ContextRequestID)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderXRequestID, "abc-123")
	w := serve(r, req)
	assert.Equal(t, "abc-123", w.Header().Get(HeaderXRequestID))
	assert.Equal(t, "abc-123", w.Body.String())

	w = serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Len(t, w.Header().Get(HeaderXRequestID), 36)
}

func TestRecoveryAndErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(), ErrorHandler())
	r.GET("/panic", func(*gin.Context) { panic("boom") })
	r.GET("/error", func(c *gin.Context) { _ = c.Error(assert.AnError) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"status":"error","message":"internal server error"}`, w.Body.String())

	w = serve(r, httptest.NewRequest(http.MethodGet, "/error", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
}

func TestSizeLimit(t *testing.T) {
	r := gin.New()
	r.POST("/", SizeLimit(4), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.ContentLength = 10
	assert.Equal(t, http.StatusRequestEntityTooLarge, serve(r, req).Code)
}
