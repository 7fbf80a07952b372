package api

import (
	"bulletin/internal/entity"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestCreateUser(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPost, "/api/users", ts.superToken, map[string]any{
		"email":    "New@Example.com",
		"password": "password123",
		"name":     "New",
		"role":     "admin",
	})
	expectStatus(t, w, http.StatusCreated)
	created := decode[entity.UserSummary](t, w)
	if created.Email != "new@example.com" || !created.MustChangePassword || !created.IsActive {
		t.Fatalf("unexpected created user %+v", created)
	}

	w = ts.do(http.MethodPost, "/api/users", ts.superToken, map[string]any{
		"email":    "NEW@example.com",
		"password": "password123",
		"role":     "admin",
	})
	expectError(t, w, http.StatusBadRequest, ErrCodeEmailExists)

	w = ts.do(http.MethodPost, "/api/users", ts.superToken, map[string]any{
		"email":    "bad",
		"password": "short",
		"role":     "owner",
	})
	body := expectError(t, w, http.StatusBadRequest, ErrCodeValidation)
	fields := map[string]bool{}
	for _, d := range body.Details {
		fields[d.Field] = true
	}
	for _, f := range []string{"email", "password", "role"} {
		if !fields[f] {
			t.Errorf("expected detail for %s, got %+v", f, body.Details)
		}
	}
}

func TestListUsers(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(http.MethodGet, "/api/users?role=admin", ts.superToken, nil)
	expectStatus(t, w, http.StatusOK)
	users := decode[[]entity.UserSummary](t, w)
	if len(users) != 1 || users[0].Email != "editor@example.com" {
		t.Fatalf("unexpected users %+v", users)
	}
}

func TestUpdateUserRole(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(http.MethodPut, fmt.Sprintf("/api/users/%d", ts.admin.ID), ts.superToken, map[string]any{"role": "super_admin"})
	expectStatus(t, w, http.StatusOK)
	updated := decode[entity.UserSummary](t, w)
	if updated.Role != entity.UserRoleSuperAdmin {
		t.Fatalf("expected promotion, got %s", updated.Role)
	}

	w = ts.do(http.MethodPut, "/api/users/9999", ts.superToken, map[string]any{"name": "ghost"})
	expectError(t, w, http.StatusNotFound, ErrCodeNotFound)

	w = ts.do(http.MethodPut, "/api/users/abc", ts.superToken, map[string]any{"name": "ghost"})
	expectError(t, w, http.StatusBadRequest, ErrCodeInvalidRequest)
}

func TestLastSuperAdminIsProtected(t *testing.T) {
	ts := newTestServer(t)
	second := ts.createUser("second@example.com", entity.UserRoleSuperAdmin)
	secondToken := ts.tokenFor(second)

	// Two super_admins: demoting one is allowed.
	w := ts.do(http.MethodPut, fmt.Sprintf("/api/users/%d", second.ID), ts.superToken, map[string]any{"role": "admin"})
	expectStatus(t, w, http.StatusOK)

	// The remaining super_admin can not be removed by anyone still holding a
	// super_admin token.
	w = ts.do(http.MethodDelete, fmt.Sprintf("/api/users/%d", ts.superAdmin.ID), secondToken, nil)
	expectError(t, w, http.StatusBadRequest, ErrCodeLastSuperAdmin)

	w = ts.do(http.MethodPut, fmt.Sprintf("/api/users/%d", ts.superAdmin.ID), secondToken, map[string]any{"isActive": false})
	expectError(t, w, http.StatusBadRequest, ErrCodeLastSuperAdmin)
}

func TestResetPassword(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPost, fmt.Sprintf("/api/users/%d/reset-password", ts.admin.ID), ts.superToken, map[string]any{"newPassword": "temporary-pass"})
	expectStatus(t, w, http.StatusOK)

	w = ts.do(http.MethodPost, "/api/auth/login", "", map[string]any{"email": "editor@example.com", "password": "temporary-pass"})
	expectStatus(t, w, http.StatusOK)
	resp := decode[entity.AuthLoginResponse](t, w)
	if !resp.User.MustChangePassword {
		t.Fatal("expected mustChangePassword after reset")
	}

	w = ts.do(http.MethodPost, "/api/users/9999/reset-password", ts.superToken, map[string]any{"newPassword": "temporary-pass"})
	expectError(t, w, http.StatusNotFound, ErrCodeNotFound)
}

func TestNewPasswordsFollowPolicy(t *testing.T) {
	ts := newTestServer(t)
	blank := "          "
	tooLong := strings.Repeat("é", 40) // 40 runes, 80 bytes

	cases := []struct {
		name   string
		method string
		path   string
		token  string
		field  string
		body   func(password string) map[string]any
	}{
		{
			name: "create user", method: http.MethodPost, path: "/api/users", token: ts.superToken, field: "password",
			body: func(p string) map[string]any {
				return map[string]any{"email": "fresh@example.com", "password": p, "role": "admin"}
			},
		},
		{
			name: "reset password", method: http.MethodPost, path: fmt.Sprintf("/api/users/%d/reset-password", ts.admin.ID), token: ts.superToken, field: "newPassword",
			body: func(p string) map[string]any { return map[string]any{"newPassword": p} },
		},
		{
			name: "change password", method: http.MethodPut, path: "/api/auth/password", token: ts.adminToken, field: "newPassword",
			body: func(p string) map[string]any {
				return map[string]any{"currentPassword": testPassword, "newPassword": p}
			},
		},
	}

	for _, tc := range cases {
		for _, password := range []string{blank, tooLong} {
			w := ts.do(tc.method, tc.path, tc.token, tc.body(password))
			body := expectError(t, w, http.StatusBadRequest, ErrCodeValidation)
			if len(body.Details) != 1 || body.Details[0].Field != tc.field {
				t.Fatalf("%s (%d bytes): expected %s detail, got %+v", tc.name, len(password), tc.field, body.Details)
			}
		}
	}

	// Nothing was written: the old password still works and no user was added.
	w := ts.do(http.MethodPost, "/api/auth/login", "", map[string]any{"email": "editor@example.com", "password": testPassword})
	expectStatus(t, w, http.StatusOK)
	w = ts.do(http.MethodGet, "/api/users", ts.superToken, nil)
	expectStatus(t, w, http.StatusOK)
	if users := decode[[]entity.UserSummary](t, w); len(users) != 2 {
		t.Fatalf("expected no new users, got %d", len(users))
	}
}
