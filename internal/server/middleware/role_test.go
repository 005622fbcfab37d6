package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akozhevnikov/coffeeshop/internal/models"
	"github.com/akozhevnikov/coffeeshop/internal/server/handlers"
)

// requestWithRole puts a role into the request context the way
// AuthMiddleware does
func requestWithRole(role string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	ctx := context.WithValue(req.Context(), handlers.RoleKey, role)
	return req.WithContext(ctx)
}

func TestRequireRole_Success(t *testing.T) {
	logger := setupTestLogger()

	called := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	wrappedHandler := RequireRole(logger, models.RoleAdmin)(handler)

	w := httptest.NewRecorder()
	wrappedHandler.ServeHTTP(w, requestWithRole(models.RoleAdmin))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, called)
}

func TestRequireRole_Forbidden(t *testing.T) {
	logger := setupTestLogger()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("Handler should not be called")
	})

	wrappedHandler := RequireRole(logger, models.RoleAdmin)(handler)

	tests := []struct {
		name string
		role string
	}{
		{name: "regular user", role: models.RoleUser},
		{name: "premium user", role: models.RolePremium},
		{name: "moderator", role: models.RoleModerator},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			wrappedHandler.ServeHTTP(w, requestWithRole(tt.role))

			assert.Equal(t, http.StatusForbidden, w.Code)
			assert.Contains(t, w.Body.String(), "insufficient permissions")
		})
	}
}

func TestRequireRole_NoRoleInContext(t *testing.T) {
	logger := setupTestLogger()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("Handler should not be called")
	})

	wrappedHandler := RequireRole(logger, models.RoleAdmin)(handler)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	wrappedHandler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "missing token")
}
