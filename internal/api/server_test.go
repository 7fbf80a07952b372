package api

import (
	"bulletin/internal/auth"
	"bulletin/internal/config"
	"bulletin/internal/entity"
	"bulletin/internal/model"
	"bulletin/internal/storage"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

const testPassword = "correct-horse"

type testServer struct {
	t         *testing.T
	router    *gin.Engine
	handler   *HTTPHandler
	repo      model.Repository
	uploadDir string

	superAdmin *entity.DbUser
	admin      *entity.DbUser
	superToken string
	adminToken string
}

func newTestServer(t *testing.T, mutate ...func(*config.Config)) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	root := t.TempDir()
	cfg := config.Config{
		DBType:               model.DBTypeSQLite,
		DBPath:               filepath.Join(root, "bulletin.db"),
		DBMaxOpenConns:       4,
		UploadMaxBytes:       1024,
		StorageType:          storage.TypeLocal,
		StorageLocalDir:      filepath.Join(root, "uploads"),
		StoragePublicBaseURL: "/uploads",
		JWTSecret:            "test-secret",
		JWTIssuer:            "bulletin",
		CORSAllowedOrigins:   []string{"*"},
		LoginRatePerMinute:   100,
	}
	for _, fn := range mutate {
		fn(&cfg)
	}

	repo, err := model.InitRepository(context.Background(), &cfg)
	if err != nil {
		t.Fatalf("init repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	store, err := storage.NewStorage(cfg)
	if err != nil {
		t.Fatalf("init storage: %v", err)
	}
	handler, err := NewHTTPHandler(cfg, repo, store)
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	ts := &testServer{
		t:         t,
		router:    NewRouter(handler, store),
		handler:   handler,
		repo:      repo,
		uploadDir: cfg.StorageLocalDir,
	}
	ts.superAdmin = ts.createUser("root@example.com", entity.UserRoleSuperAdmin)
	ts.admin = ts.createUser("editor@example.com", entity.UserRoleAdmin)
	ts.superToken = ts.tokenFor(ts.superAdmin)
	ts.adminToken = ts.tokenFor(ts.admin)
	return ts
}

func (ts *testServer) createUser(email, role string) *entity.DbUser {
	ts.t.Helper()
	hash, err := auth.HashPassword(testPassword)
	if err != nil {
		ts.t.Fatalf("hash password: %v", err)
	}
	user := &entity.DbUser{Email: email, PasswordHash: hash, Role: role, IsActive: true}
	if err := ts.repo.CreateUser(context.Background(), user); err != nil {
		ts.t.Fatalf("create user: %v", err)
	}
	return user
}

func (ts *testServer) tokenFor(user *entity.DbUser) string {
	ts.t.Helper()
	token, _, err := ts.handler.authManager.Issue(identityOf(user))
	if err != nil {
		ts.t.Fatalf("issue token: %v", err)
	}
	return token
}

func (ts *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	ts.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			ts.t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

// writeUpload places a file under the upload root as if it had been uploaded
// and returns its public URL.
func (ts *testServer) writeUpload(key string) string {
	ts.t.Helper()
	abs := filepath.Join(ts.uploadDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		ts.t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(abs, []byte("img"), 0o644); err != nil {
		ts.t.Fatalf("write upload: %v", err)
	}
	return "/uploads/" + key
}

func (ts *testServer) uploadExists(url string) bool {
	ts.t.Helper()
	key := strings.TrimPrefix(url, "/uploads/")
	_, err := os.Stat(filepath.Join(ts.uploadDir, filepath.FromSlash(key)))
	return err == nil
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()
	if w.Code != status {
		t.Fatalf("expected status %d, got %d: %s", status, w.Code, w.Body.String())
	}
}

func expectError(t *testing.T, w *httptest.ResponseRecorder, status int, code string) APIError {
	t.Helper()
	expectStatus(t, w, status)
	body := decode[APIError](t, w)
	if body.Code != code {
		t.Fatalf("expected code %s, got %s (%s)", code, body.Code, body.Error)
	}
	if body.Error == "" {
		t.Fatal("expected error message")
	}
	return body
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	w := ts.do(http.MethodGet, "/health", "", nil)
	expectStatus(t, w, http.StatusOK)
}

func identityOf(user *entity.DbUser) auth.Identity {
	return auth.Identity{UserID: user.ID, Email: user.Email, Role: user.Role}
}
