package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestAuthMiddlewareRejections(t *testing.T) {
	ts := newTestServer(t)
	expired := ts.handler.authManager.WithClock(func() time.Time { return time.Now().Add(-25 * time.Hour) })
	expiredToken, _, err := expired.Issue(identityOf(ts.admin))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	tests := []struct {
		name   string
		header string
		code   string
	}{
		{"missing header", "", ErrCodeAuthRequired},
		{"wrong scheme", "Token abc", ErrCodeAuthRequired},
		{"empty bearer", "Bearer   ", ErrCodeAuthRequired},
		{"garbage token", "Bearer not-a-token", ErrCodeSessionExpired},
		{"expired token", "Bearer " + expiredToken, ErrCodeSessionExpired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			ts.router.ServeHTTP(w, req)
			expectError(t, w, http.StatusUnauthorized, tt.code)
		})
	}
}

func TestMutationsRequireAuthentication(t *testing.T) {
	ts := newTestServer(t)
	for _, path := range []string{"/api/announcements", "/api/events", "/api/posters"} {
		w := ts.do(http.MethodPost, path, "", map[string]any{"title": "x"})
		expectError(t, w, http.StatusUnauthorized, ErrCodeAuthRequired)
	}
	w := ts.do(http.MethodDelete, "/api/events/event-1", "", nil)
	expectError(t, w, http.StatusUnauthorized, ErrCodeAuthRequired)
}

func TestNonSuperAdminCannotCreateUsers(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(http.MethodPost, "/api/users", ts.adminToken, map[string]any{
		"email":    "new@example.com",
		"password": "password123",
		"role":     "admin",
	})
	expectError(t, w, http.StatusForbidden, ErrCodeForbidden)

	w = ts.do(http.MethodGet, "/api/users", ts.adminToken, nil)
	expectError(t, w, http.StatusForbidden, ErrCodeForbidden)

	w = ts.do(http.MethodPut, fmt.Sprintf("/api/users/%d", ts.superAdmin.ID), ts.adminToken, map[string]any{"name": "x"})
	expectError(t, w, http.StatusForbidden, ErrCodeForbidden)
}

func TestSelfTargetIsRejectedBeforeRoleCheck(t *testing.T) {
	ts := newTestServer(t)

	adminSelf := fmt.Sprintf("/api/users/%d", ts.admin.ID)
	w := ts.do(http.MethodPut, adminSelf, ts.adminToken, map[string]any{"role": "admin"})
	expectError(t, w, http.StatusBadRequest, ErrCodeSelfAction)

	superSelf := fmt.Sprintf("/api/users/%d", ts.superAdmin.ID)
	w = ts.do(http.MethodPut, superSelf, ts.superToken, map[string]any{"role": "admin"})
	expectError(t, w, http.StatusBadRequest, ErrCodeSelfAction)

	w = ts.do(http.MethodPut, superSelf, ts.superToken, map[string]any{"isActive": false})
	expectError(t, w, http.StatusBadRequest, ErrCodeSelfAction)

	w = ts.do(http.MethodDelete, superSelf, ts.superToken, nil)
	expectError(t, w, http.StatusBadRequest, ErrCodeSelfAction)

	// Renaming oneself is not a self-targeted role change.
	w = ts.do(http.MethodPut, superSelf, ts.superToken, map[string]any{"name": "Root"})
	expectStatus(t, w, http.StatusOK)
}

func TestRoleComesFromTokenClaims(t *testing.T) {
	ts := newTestServer(t)
	// A token issued while the user was super_admin keeps that role until it
	// expires, even after a demotion.
	other := ts.createUser("second@example.com", "super_admin")
	token := ts.tokenFor(other)

	w := ts.do(http.MethodPut, fmt.Sprintf("/api/users/%d", other.ID), ts.superToken, map[string]any{"role": "admin"})
	expectStatus(t, w, http.StatusOK)

	w = ts.do(http.MethodGet, "/api/users", token, nil)
	expectStatus(t, w, http.StatusOK)
}
