package storage

import (
	"bytes"
	"bulletin/internal/config"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tencentyun/cos-go-sdk-v5"
)

type cosStorage struct {
	client *cos.Client
	prefix string
}

// NewCOSStorage opens a Tencent COS bucket from its bucket URL.
func NewCOSStorage(cfg config.Config) (Storage, error) {
	bucketURL := strings.TrimSpace(cfg.StorageCOSBucketURL)
	secretID := strings.TrimSpace(cfg.StorageCOSSecretID)
	secretKey := strings.TrimSpace(cfg.StorageCOSSecretKey)
	if err := requireSettings(TypeCOS, map[string]string{
		"STORAGE_COS_BUCKET_URL": bucketURL,
		"STORAGE_COS_SECRET_ID":  secretID,
		"STORAGE_COS_SECRET_KEY": secretKey,
	}); err != nil {
		return nil, err
	}

	parsed, err := url.Parse(bucketURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("storage: invalid STORAGE_COS_BUCKET_URL %q", bucketURL)
	}

	client := cos.NewClient(&cos.BaseURL{BucketURL: parsed}, &http.Client{
		Transport: &cos.AuthorizationTransport{SecretID: secretID, SecretKey: secretKey},
	})
	return &cosStorage{
		client: client,
		prefix: trimPrefix(cfg.StorageCOSPrefix),
	}, nil
}

func (s *cosStorage) Save(ctx context.Context, data []byte, opts SaveOptions) (string, error) {
	key, err := prepareSave(ctx, data, opts)
	if err != nil {
		return "", err
	}

	resp, err := s.client.Object.Put(ctx, joinPrefix(s.prefix, key), bytes.NewReader(data), &cos.ObjectPutOptions{
		ObjectPutHeaderOptions: &cos.ObjectPutHeaderOptions{
			ContentType:   contentTypeFor(opts),
			CacheControl:  immutableCacheControl,
			ContentLength: int64(len(data)),
		},
	})
	drainCOS(resp)
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return key, nil
}

func (s *cosStorage) Delete(ctx context.Context, key string) error {
	cleaned, err := cleanKey(key)
	if err != nil {
		return err
	}
	resp, err := s.client.Object.Delete(ctx, joinPrefix(s.prefix, cleaned))
	drainCOS(resp)
	if err != nil && !cos.IsNotFoundError(err) {
		return fmt.Errorf("delete object %s: %w", cleaned, err)
	}
	return nil
}

func drainCOS(resp *cos.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

var _ Storage = (*cosStorage)(nil)
