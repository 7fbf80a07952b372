package service

import (
	"bulletin/internal/storage"
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Upload categories, used as the first path segment of stored images.
const (
	CategoryPosters       = "posters"
	CategoryEvents        = "events"
	CategoryAnnouncements = "announcements"
	CategoryTheme         = "theme"
	CategoryServices      = "services"
)

var (
	ErrInvalidFileType = errors.New("invalid file type: only JPEG, PNG and WebP images are allowed")
	ErrFileTooLarge    = errors.New("file too large")
	ErrEmptyFile       = errors.New("file is empty")
	ErrInvalidCategory = errors.New("invalid upload category")
)

// UploadCategories lists the accepted upload categories.
var UploadCategories = []string{CategoryPosters, CategoryEvents, CategoryAnnouncements, CategoryTheme, CategoryServices}

// Image directories a content kind may reference.
var (
	EventImageDirs  = []string{CategoryEvents}
	PosterImageDirs = []string{CategoryPosters, CategoryTheme, CategoryServices}
)

var allowedImageTypes = map[string][]string{
	"image/jpeg": {".jpg", ".jpeg"},
	"image/png":  {".png"},
	"image/webp": {".webp"},
}

// Upload is a validated-on-store image payload.
type Upload struct {
	Data     []byte
	Filename string
	MimeType string
	Category string
}

// StoredImage describes a successfully written image.
type StoredImage struct {
	URL      string
	Filename string
}

// CleanupResult reports the outcome of a best-effort image removal. Warning
// is set when a managed file could not be removed; it never fails the
// surrounding operation.
type CleanupResult struct {
	Path    string
	Deleted bool
	Warning error
}

// ImageService validates uploads and keeps stored files in step with the
// imageUrl fields that reference them.
type ImageService struct {
	store    storage.Storage
	baseURL  string
	maxBytes int64
}

// NewImageService creates an ImageService. publicBaseURL is the prefix that
// stored keys are served under, e.g. "/uploads".
func NewImageService(store storage.Storage, publicBaseURL string, maxBytes int64) *ImageService {
	base := strings.TrimRight(strings.TrimSpace(publicBaseURL), "/")
	if base == "" {
		base = "/uploads"
	}
	return &ImageService{store: store, baseURL: base, maxBytes: maxBytes}
}

// MaxBytes returns the per-file size limit.
func (s *ImageService) MaxBytes() int64 {
	return s.maxBytes
}

// Store validates the upload and writes it under "{category}/{uuid}.{ext}".
// Nothing is written when validation fails.
func (s *ImageService) Store(ctx context.Context, upload Upload) (*StoredImage, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("image storage not configured")
	}
	category := strings.ToLower(strings.TrimSpace(upload.Category))
	if !isUploadCategory(category) {
		return nil, ErrInvalidCategory
	}
	if len(upload.Data) == 0 {
		return nil, ErrEmptyFile
	}

	mimeType := resolveMimeType(upload.MimeType, upload.Data)
	extensions, ok := allowedImageTypes[mimeType]
	if !ok {
		return nil, ErrInvalidFileType
	}
	if s.maxBytes > 0 && int64(len(upload.Data)) > s.maxBytes {
		return nil, ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(upload.Filename))
	if !containsString(extensions, ext) {
		ext = extensions[0]
	}

	key, err := s.store.Save(ctx, upload.Data, storage.SaveOptions{
		Category:    category,
		BaseName:    uuid.NewString(),
		Extension:   ext,
		ContentType: mimeType,
	})
	if err != nil {
		return nil, fmt.Errorf("save image: %w", err)
	}

	return &StoredImage{URL: s.PublicURL(key), Filename: path.Base(key)}, nil
}

// PublicURL maps a storage key to the URL clients reference it by.
func (s *ImageService) PublicURL(key string) string {
	return s.baseURL + "/" + strings.TrimLeft(key, "/")
}

// Owns reports whether url points at a managed image. When dirs are given the
// image must also live in one of those category directories.
func (s *ImageService) Owns(url string, dirs ...string) bool {
	key, ok := s.keyFor(url)
	if !ok {
		return false
	}
	if len(dirs) == 0 {
		return true
	}
	dir, _, found := strings.Cut(key, "/")
	return found && containsString(dirs, dir)
}

// Reconcile removes the image at oldURL when it is managed and no longer
// referenced by newURL. It never returns an error; failures are reported in
// the result.
func (s *ImageService) Reconcile(ctx context.Context, oldURL, newURL string) CleanupResult {
	oldURL = strings.TrimSpace(oldURL)
	result := CleanupResult{Path: oldURL}
	if oldURL == "" || oldURL == strings.TrimSpace(newURL) {
		return result
	}
	key, ok := s.keyFor(oldURL)
	if !ok || s.store == nil {
		return result
	}
	if err := s.store.Delete(ctx, key); err != nil {
		result.Warning = err
		return result
	}
	result.Deleted = true
	return result
}

// Remove deletes the managed image at url, as when its owner is deleted.
func (s *ImageService) Remove(ctx context.Context, url string) CleanupResult {
	return s.Reconcile(ctx, url, "")
}

// keyFor strips the public base from url and returns the storage key.
func (s *ImageService) keyFor(url string) (string, bool) {
	if s == nil {
		return "", false
	}
	url = strings.TrimSpace(url)
	prefix := s.baseURL + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(url, prefix)
	if key == "" || strings.Contains(key, "\\") {
		return "", false
	}
	if cleaned := path.Clean("/" + key); cleaned != "/"+key {
		return "", false
	}
	if !strings.Contains(key, "/") {
		return "", false
	}
	return key, true
}

func resolveMimeType(declared string, data []byte) string {
	declared = strings.TrimSpace(declared)
	if declared != "" && declared != "application/octet-stream" {
		if parsed, _, err := mime.ParseMediaType(declared); err == nil {
			return strings.ToLower(parsed)
		}
		return strings.ToLower(declared)
	}
	sniffed, _, _ := mime.ParseMediaType(http.DetectContentType(data))
	return sniffed
}

func isUploadCategory(category string) bool {
	return containsString(UploadCategories, category)
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
