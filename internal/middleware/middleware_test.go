package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/codewithrabha/eventbooking/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/logger"
)

func newTestLogger(t *testing.T) logger.Logger {
	t.Helper()
	log, err := logger.InitLogger("slog", "test", "test", logger.WithLevel(logger.ErrorLevel))
	if err != nil {
		t.Fatalf("init test logger: %v", err)
	}
	return log
}

type stubVerifier struct {
	callerID string
	err      error
}

func (s stubVerifier) Verify(_ context.Context, _ string) (string, error) {
	return s.callerID, s.err
}

func newEngine(mw ...ginext.HandlerFunc) *ginext.Engine {
	r := ginext.New("test")
	r.Use(mw...)
	r.GET("/whoami", func(c *ginext.Context) {
		c.JSON(http.StatusOK, ginext.H{"caller_id": CallerID(c), "request_id": GetRequestID(c)})
	})
	r.GET("/panic", func(c *ginext.Context) {
		panic("boom")
	})
	return r
}

func TestRequireAuth_Rejects(t *testing.T) {
	log := newTestLogger(t)
	r := newEngine(RequireAuth(stubVerifier{err: errors.Join(domain.ErrUnauthenticated, errors.New("token expired"))}, log))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"unauthenticated"}`, w.Body.String())
}

func TestRequireAuth_StoresCaller(t *testing.T) {
	log := newTestLogger(t)
	r := newEngine(RequireAuth(stubVerifier{callerID: "user-1"}, log))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer a.b.c")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"caller_id":"user-1"`)
}

func TestRequestID_GeneratesAndEchoes(t *testing.T) {
	r := newEngine(RequestID())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(HeaderRequestID, "fixed-id")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "fixed-id", w.Header().Get(HeaderRequestID))
	assert.Contains(t, w.Body.String(), `"request_id":"fixed-id"`)
}

func TestRecovery_ReturnsJSON500(t *testing.T) {
	log := newTestLogger(t)
	r := newEngine(RequestID(), RequestLogger(log), Recovery(log))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
}

func newCORSEngine(t *testing.T, origins ...string) *ginext.Engine {
	t.Helper()
	mw, err := CORS(origins)
	require.NoError(t, err)
	return newEngine(mw)
}

func TestCORS_PreflightAllowed(t *testing.T) {
	r := newCORSEngine(t, "http://localhost:5173")

	req := httptest.NewRequest(http.MethodOptions, "/whoami", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodDelete)
	assert.Equal(t, "600", w.Header().Get("Access-Control-Max-Age"))
}

func TestCORS_OriginNotAllowed(t *testing.T) {
	r := newCORSEngine(t, "http://localhost:5173")

	for _, method := range []string{http.MethodOptions, http.MethodGet} {
		req := httptest.NewRequest(method, "/whoami", nil)
		req.Header.Set("Origin", "http://evil.local")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code, method)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"), method)
	}
}

func TestCORS_NoOriginPassesThrough(t *testing.T) {
	r := newCORSEngine(t, "http://localhost:5173")

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORS_AllowAll(t *testing.T) {
	for _, origins := range [][]string{{"*"}, {"http://localhost:5173", "*"}, nil} {
		r := newCORSEngine(t, origins...)

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Origin", "http://anywhere.local")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	}
}

func TestCORS_BadOrigin(t *testing.T) {
	_, err := CORS([]string{"localhost:5173"})
	assert.Error(t, err)
}
