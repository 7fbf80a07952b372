package storage

import (
	"bulletin/internal/config"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

const (
	// TypeLocal stores files on the local filesystem.
	TypeLocal = "local"
	// TypeS3 stores files in Amazon S3 or a compatible service.
	TypeS3 = "s3"
	// TypeOSS stores files in Aliyun OSS.
	TypeOSS = "oss"
	// TypeCOS stores files in Tencent COS.
	TypeCOS = "cos"
	// TypeR2 stores files in Cloudflare R2.
	TypeR2 = "r2"
)

var (
	// ErrInvalidKey is returned for keys that are empty or escape the storage root.
	ErrInvalidKey = errors.New("storage: invalid key")
	// ErrEmptyPayload is returned when Save is called without data.
	ErrEmptyPayload = errors.New("storage: empty payload")
)

// immutableCacheControl is sent with remote uploads. Keys carry a fresh uuid,
// so an object never changes once written.
const immutableCacheControl = "public, max-age=31536000, immutable"

// SaveOptions controls where a payload is written.
//
// Category becomes the first key segment. BaseName is the file name without
// extension. Extension may carry a leading dot (".jpg" or "jpg").
type SaveOptions struct {
	Category    string
	BaseName    string
	Extension   string
	ContentType string
}

// Storage persists binary payloads under slash-separated keys of the form
// "{category}/{name}.{ext}". Backend prefixes are applied internally and never
// appear in returned keys.
type Storage interface {
	Save(ctx context.Context, data []byte, opts SaveOptions) (string, error)
	// Delete removes the object stored under key. Missing objects are not an
	// error.
	Delete(ctx context.Context, key string) error
}

// LocalBaseDirProvider is implemented by backends whose files can be served
// directly over HTTP.
type LocalBaseDirProvider interface {
	LocalBaseDir() string
}

// NewStorage instantiates the backend selected by STORAGE_TYPE.
func NewStorage(cfg config.Config) (Storage, error) {
	typeName := strings.ToLower(strings.TrimSpace(cfg.StorageType))
	switch typeName {
	case "", TypeLocal:
		return NewLocalStorage(cfg.StorageLocalDir)
	case TypeS3:
		return NewS3Storage(cfg)
	case TypeOSS:
		return NewOSSStorage(cfg)
	case TypeCOS:
		return NewCOSStorage(cfg)
	case TypeR2:
		return NewR2Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.StorageType)
	}
}

// prepareSave checks the payload and context and returns the key to write.
func prepareSave(ctx context.Context, data []byte, opts SaveOptions) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyPayload
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return buildObjectKey(opts), nil
}

// requireSettings reports every blank setting of a backend by its env name.
func requireSettings(backend string, settings map[string]string) error {
	var missing []string
	for name, value := range settings {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return fmt.Errorf("storage: %s requires %s", backend, strings.Join(missing, ", "))
}
