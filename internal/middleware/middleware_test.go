package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"paytm-mcp/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestAuth(t *testing.T) {
	const secret = "jwt-secret"
	hash, err := auth.HashAPIKey("key-123")
	require.NoError(t, err)

	var seenClient string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenClient, _ = ClientFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := Auth(secret, hash)(next)

	t.Run("Disabled", func(t *testing.T) {
		w := httptest.NewRecorder()
		Auth("", "")(okHandler).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/mcp", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("ValidBearer", func(t *testing.T) {
		tok, err := auth.GenerateToken(secret, "desktop-agent", time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "desktop-agent", seenClient)
	})

	t.Run("ValidAPIKey", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
		req.Header.Set(auth.APIKeyHeader, "key-123")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "api-key", seenClient)
	})

	t.Run("BadBearerFallsBackToAPIKey", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		req.Header.Set(auth.APIKeyHeader, "key-123")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
		req.Header.Set(auth.APIKeyHeader, "wrong")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Missing", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/mcp", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRateLimiter(t *testing.T) {
	t.Run("BurstThenThrottled", func(t *testing.T) {
		l := NewRateLimiter(0.001, 2)
		handler := l.Middleware(okHandler)

		codes := make([]int, 0, 3)
		for i := 0; i < 3; i++ {
			req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
			req.RemoteAddr = "10.0.0.1:1234"
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			codes = append(codes, w.Code)
		}
		assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

		other := httptest.NewRequest(http.MethodPost, "/mcp", nil)
		other.RemoteAddr = "10.0.0.2:1234"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, other)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Disabled", func(t *testing.T) {
		handler := NewRateLimiter(0, 0).Middleware(okHandler)
		for i := 0; i < 5; i++ {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/mcp", nil))
			assert.Equal(t, http.StatusOK, w.Code)
		}
	})

	t.Run("Cleanup", func(t *testing.T) {
		l := NewRateLimiter(1, 1)
		l.getVisitor("ip:10.0.0.1")
		l.Cleanup(time.Hour)
		assert.Len(t, l.visitors, 1)

		l.visitors["ip:10.0.0.1"].lastSeen = time.Now().Add(-2 * time.Hour)
		l.Cleanup(time.Hour)
		assert.Empty(t, l.visitors)
	})
}

func TestCORS(t *testing.T) {
	t.Run("AllowedOrigin", func(t *testing.T) {
		handler := CORS([]string{"https://a.example"})(okHandler)
		req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
		req.Header.Set("Origin", "https://a.example")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, "https://a.example", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("DisallowedOrigin", func(t *testing.T) {
		handler := CORS([]string{"https://a.example"})(okHandler)
		req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
		req.Header.Set("Origin", "https://evil.example")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Preflight", func(t *testing.T) {
		handler := CORS(nil)(okHandler)
		req := httptest.NewRequest(http.MethodOptions, "/mcp", nil)
		req.Header.Set("Origin", "https://agent.example")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.True(t, w.Code == http.StatusOK || w.Code == http.StatusNoContent)
	})
}
