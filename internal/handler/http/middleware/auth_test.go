package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/hr-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hr-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protectedRouter(jwtService *jwt.JWTService) (http.Handler, *int) {
	calls := 0
	r := chi.NewRouter()
	r.Use(Verifier(jwtService.JWTAuth()))
	r.Use(AuthRequired)
	r.Get("/employees", func(w http.ResponseWriter, r *http.Request) {
		calls++
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		response.Success(w, "ok", map[string]any{"id": claims.ID, "email": claims.Email})
	})
	return r, &calls
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var body response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAuthRequired(t *testing.T) {
	jwtService := jwt.NewJWTService("middleware-secret", time.Hour)
	handler, calls := protectedRouter(jwtService)

	valid, _, err := jwtService.GenerateToken(1, "admin@hr.com", "HR Admin")
	require.NoError(t, err)

	foreign, _, err := jwt.NewJWTService("other-secret", time.Hour).GenerateToken(1, "admin@hr.com", "HR Admin")
	require.NoError(t, err)

	tests := []struct {
		name          string
		authorization string
		wantStatus    int
		wantMessage   string
	}{
		{"missing header", "", http.StatusUnauthorized, "Access denied. No token provided."},
		{"not a bearer token", "Basic YWRtaW46YWRtaW4=", http.StatusUnauthorized, "Access denied. No token provided."},
		{"garbage token", "Bearer not-a-token", http.StatusUnauthorized, "Invalid or expired token."},
		{"signed with another key", "Bearer " + foreign, http.StatusUnauthorized, "Invalid or expired token."},
		{"valid token", "Bearer " + valid, http.StatusOK, "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := *calls
			req := httptest.NewRequest(http.MethodGet, "/employees", nil)
			if tt.authorization != "" {
				req.Header.Set("Authorization", tt.authorization)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decode(t, rec)
			assert.Equal(t, tt.wantMessage, body.Message)
			assert.Equal(t, tt.wantStatus == http.StatusOK, body.Success)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, before+1, *calls)
			} else {
				assert.Equal(t, before, *calls, "downstream handler must not run")
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(1, 2)
	frozen := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return frozen }

	handler := limiter.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	call := func(remoteAddr string) int {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, call("10.0.0.1:5000"))
	assert.Equal(t, http.StatusNoContent, call("10.0.0.1:5001"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:5002"))
	assert.Equal(t, http.StatusNoContent, call("10.0.0.2:5000"), "other clients keep their own budget")

	frozen = frozen.Add(time.Second)
	assert.Equal(t, http.StatusNoContent, call("10.0.0.1:5003"))
}

func TestRateLimiter_Sweep(t *testing.T) {
	limiter := NewRateLimiter(1, 1)
	frozen := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return frozen }

	assert.True(t, limiter.Allow("10.0.0.1"))
	frozen = frozen.Add(visitorIdleTTL)
	assert.True(t, limiter.Allow("10.0.0.2"))
	assert.Equal(t, 2, limiter.Len())

	frozen = frozen.Add(time.Minute)
	require.NoError(t, limiter.Sweep(context.Background()))
	assert.Equal(t, 1, limiter.Len(), "only the idle client is forgotten")

	frozen = frozen.Add(visitorIdleTTL + time.Second)
	require.NoError(t, limiter.Sweep(context.Background()))
	assert.Zero(t, limiter.Len())
}

func TestSecureHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	SecureHeaders(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}
