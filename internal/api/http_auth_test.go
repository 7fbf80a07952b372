package api

import (
	"bulletin/internal/config"
	"bulletin/internal/entity"
	"context"
	"fmt"
	"net/http"
	"testing"
)

func TestLoginThenVerify(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "EDITOR@example.com",
		"password": testPassword,
	})
	expectStatus(t, w, http.StatusOK)
	resp := decode[entity.AuthLoginResponse](t, w)
	if !resp.Success || resp.Token == "" {
		t.Fatalf("unexpected login response %+v", resp)
	}
	if resp.User.ID != ts.admin.ID || resp.User.Role != entity.UserRoleAdmin {
		t.Fatalf("unexpected user block %+v", resp.User)
	}

	identity, ok := ts.handler.authManager.Verify(resp.Token)
	if !ok || identity.Role != entity.UserRoleAdmin || identity.UserID != ts.admin.ID {
		t.Fatalf("token does not carry stored identity: %+v", identity)
	}

	w = ts.do(http.MethodGet, "/api/auth/verify", resp.Token, nil)
	expectStatus(t, w, http.StatusOK)
	verify := decode[entity.AuthVerifyResponse](t, w)
	if !verify.Valid || verify.User.Email != "editor@example.com" {
		t.Fatalf("unexpected verify response %+v", verify)
	}

	stored, err := ts.repo.GetUserByID(context.Background(), ts.admin.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if stored.LastLoginAt == nil {
		t.Fatal("expected lastLoginAt to be recorded")
	}
}

func TestLoginFailures(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPost, "/api/auth/login", "", map[string]any{"email": "editor@example.com", "password": "wrong-password"})
	expectError(t, w, http.StatusUnauthorized, ErrCodeInvalidCredentials)

	w = ts.do(http.MethodPost, "/api/auth/login", "", map[string]any{"email": "nobody@example.com", "password": testPassword})
	expectError(t, w, http.StatusUnauthorized, ErrCodeInvalidCredentials)

	w = ts.do(http.MethodPost, "/api/auth/login", "", map[string]any{"password": testPassword})
	body := expectError(t, w, http.StatusBadRequest, ErrCodeValidation)
	if len(body.Details) != 1 || body.Details[0].Field != "email" {
		t.Fatalf("expected email detail, got %+v", body.Details)
	}
}

func TestDeactivatedUserCannotLogin(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodDelete, fmt.Sprintf("/api/users/%d", ts.admin.ID), ts.superToken, nil)
	expectStatus(t, w, http.StatusOK)

	w = ts.do(http.MethodPost, "/api/auth/login", "", map[string]any{"email": "editor@example.com", "password": testPassword})
	expectError(t, w, http.StatusUnauthorized, ErrCodeInvalidCredentials)

	w = ts.do(http.MethodGet, fmt.Sprintf("/api/users/%d", ts.admin.ID), ts.superToken, nil)
	expectStatus(t, w, http.StatusOK)
	user := decode[entity.UserSummary](t, w)
	if user.IsActive {
		t.Fatal("expected deactivated user to be returned with isActive=false")
	}
}

func TestChangePassword(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPut, "/api/auth/password", ts.adminToken, map[string]any{
		"currentPassword": "wrong-password",
		"newPassword":     "brand-new-pass",
	})
	expectError(t, w, http.StatusBadRequest, ErrCodeInvalidCredentials)

	w = ts.do(http.MethodPut, "/api/auth/password", ts.adminToken, map[string]any{
		"currentPassword": testPassword,
		"newPassword":     "short",
	})
	expectError(t, w, http.StatusBadRequest, ErrCodeValidation)

	w = ts.do(http.MethodPut, "/api/auth/password", ts.adminToken, map[string]any{
		"currentPassword": testPassword,
		"newPassword":     "brand-new-pass",
	})
	expectStatus(t, w, http.StatusOK)

	w = ts.do(http.MethodPost, "/api/auth/login", "", map[string]any{"email": "editor@example.com", "password": "brand-new-pass"})
	expectStatus(t, w, http.StatusOK)
}

func TestUpdateProfileAndMe(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPut, "/api/auth/profile", ts.adminToken, map[string]any{"name": "  Editor  "})
	expectStatus(t, w, http.StatusOK)

	w = ts.do(http.MethodGet, "/api/auth/me", ts.adminToken, nil)
	expectStatus(t, w, http.StatusOK)
	me := decode[map[string]any](t, w)
	if me["name"] != "Editor" {
		t.Fatalf("expected trimmed name, got %v", me["name"])
	}
	if _, leaked := me["passwordHash"]; leaked {
		t.Fatal("password hash must not be exposed")
	}

	w = ts.do(http.MethodPut, "/api/auth/profile", ts.adminToken, map[string]any{"email": "ROOT@example.com"})
	expectError(t, w, http.StatusBadRequest, ErrCodeEmailExists)
}

func TestLoginRateLimit(t *testing.T) {
	ts := newTestServer(t, func(cfg *config.Config) { cfg.LoginRatePerMinute = 2 })

	payload := map[string]any{"email": "editor@example.com", "password": "wrong-password"}
	for i := 0; i < 2; i++ {
		w := ts.do(http.MethodPost, "/api/auth/login", "", payload)
		expectStatus(t, w, http.StatusUnauthorized)
	}
	w := ts.do(http.MethodPost, "/api/auth/login", "", payload)
	expectError(t, w, http.StatusTooManyRequests, ErrCodeTooManyRequest)
}
