package api

import (
	"bulletin/internal/auth"
	"bulletin/internal/config"
	"bulletin/internal/model"
	"bulletin/internal/service"
	"bulletin/internal/storage"
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const defaultQueryTimeout = 5 * time.Second

// HTTPHandler holds the dependencies shared by every route.
type HTTPHandler struct {
	cfg          config.Config
	repo         model.Repository
	images       *service.ImageService
	authManager  *auth.Manager
	loginLimiter *ipRateLimiter
	queryTimeout time.Duration
}

// NewHTTPHandler wires the handler from configuration, the repository and the
// image storage backend.
func NewHTTPHandler(cfg config.Config, repo model.Repository, store storage.Storage) (*HTTPHandler, error) {
	authManager, err := auth.NewManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTExpiration)
	if err != nil {
		return nil, err
	}

	maxBytes := cfg.UploadMaxBytes
	if maxBytes <= 0 {
		maxBytes = config.DefaultUploadMaxBytes
	}

	timeout := cfg.DBConnTimeout
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}

	return &HTTPHandler{
		cfg:          cfg,
		repo:         repo,
		images:       service.NewImageService(store, normalisePublicBase(cfg.StoragePublicBaseURL), maxBytes),
		authManager:  authManager,
		loginLimiter: newIPRateLimiter(cfg.LoginRatePerMinute),
		queryTimeout: timeout,
	}, nil
}

// normalisePublicBase returns the public URL prefix without a trailing slash.
func normalisePublicBase(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		trimmed = "/uploads"
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return strings.TrimRight(trimmed, "/")
	}
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}
	return strings.TrimRight(trimmed, "/")
}

// requestContext bounds store calls, including connection acquisition.
func (h *HTTPHandler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), h.queryTimeout)
}

// Health reports liveness and database reachability.
func (h *HTTPHandler) Health(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	if h.repo == nil {
		ServiceUnavailable(c, "database not available")
		return
	}
	if err := h.repo.Ping(ctx); err != nil {
		logrus.WithError(err).Error("health check failed")
		ServiceUnavailable(c, "database not available")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
}

// storeFailure maps a store error to the API taxonomy. Unexpected errors are
// logged and reported as 500 without internal detail.
func storeFailure(c *gin.Context, err error, resource string, fields logrus.Fields) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		NotFound(c, resource+" not found")
	case errors.Is(err, model.ErrDuplicateEmail):
		Conflict(c, ErrCodeEmailExists, "email already registered")
	default:
		logrus.WithError(err).WithFields(fields).Errorf("%s store operation failed", resource)
		InternalError(c, "internal server error")
	}
}

// imageAvailable writes a 400 and returns false when an item other than
// exceptID already references url.
func (h *HTTPHandler) imageAvailable(ctx context.Context, c *gin.Context, url, exceptID string) bool {
	inUse, err := h.repo.ImageURLInUse(ctx, url, exceptID)
	if err != nil {
		storeFailure(c, err, "image", logrus.Fields{"path": url})
		return false
	}
	if inUse {
		ValidationFailed(c, fieldErrors("imageUrl", "imageUrl is already used by another item"))
		return false
	}
	return true
}

// releaseImage removes oldURL after its owner moved to newURL or was deleted.
// The file is kept while any other item still references it.
func (h *HTTPHandler) releaseImage(ctx context.Context, ownerID, oldURL, newURL string, fields logrus.Fields) {
	oldURL = strings.TrimSpace(oldURL)
	if oldURL == "" || oldURL == strings.TrimSpace(newURL) {
		return
	}
	inUse, err := h.repo.ImageURLInUse(ctx, oldURL, ownerID)
	if err != nil {
		logrus.WithError(err).WithFields(fields).WithField("path", oldURL).Warn("image reference check failed; keeping file")
		return
	}
	if inUse {
		logrus.WithFields(fields).WithField("path", oldURL).Info("image still referenced; keeping file")
		return
	}
	logCleanup(h.images.Reconcile(ctx, oldURL, newURL), fields)
}

// logCleanup records the outcome of a best-effort image removal.
func logCleanup(result service.CleanupResult, fields logrus.Fields) {
	if result.Warning != nil {
		logrus.WithError(result.Warning).WithFields(fields).WithField("path", result.Path).Warn("failed to remove replaced image")
		return
	}
	if result.Deleted {
		logrus.WithFields(fields).WithField("path", result.Path).Info("removed replaced image")
	}
}

func parseUserID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id == 0 {
		BadRequest(c, ErrCodeInvalidRequest, "invalid user id")
		return 0, false
	}
	return uint(id), true
}

func boolOrDefault(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}
