package storage

import (
	"bytes"
	"bulletin/internal/config"
	"context"
	"fmt"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

type ossStorage struct {
	bucket *oss.Bucket
	prefix string
}

// NewOSSStorage opens an Aliyun OSS bucket.
func NewOSSStorage(cfg config.Config) (Storage, error) {
	endpoint := strings.TrimSpace(cfg.StorageOSSEndpoint)
	bucketName := strings.TrimSpace(cfg.StorageOSSBucket)
	accessKey := strings.TrimSpace(cfg.StorageOSSAccessKeyID)
	secretKey := strings.TrimSpace(cfg.StorageOSSAccessKeySecret)
	if err := requireSettings(TypeOSS, map[string]string{
		"STORAGE_OSS_ENDPOINT":          endpoint,
		"STORAGE_OSS_BUCKET":            bucketName,
		"STORAGE_OSS_ACCESS_KEY_ID":     accessKey,
		"STORAGE_OSS_ACCESS_KEY_SECRET": secretKey,
	}); err != nil {
		return nil, err
	}

	client, err := oss.New(endpoint, accessKey, secretKey)
	if err != nil {
		return nil, fmt.Errorf("storage: create OSS client: %w", err)
	}
	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("storage: open OSS bucket: %w", err)
	}

	return &ossStorage{
		bucket: bucket,
		prefix: trimPrefix(cfg.StorageOSSPrefix),
	}, nil
}

func (s *ossStorage) Save(ctx context.Context, data []byte, opts SaveOptions) (string, error) {
	key, err := prepareSave(ctx, data, opts)
	if err != nil {
		return "", err
	}

	err = s.bucket.PutObject(joinPrefix(s.prefix, key), bytes.NewReader(data),
		oss.WithContext(ctx),
		oss.ContentType(contentTypeFor(opts)),
		oss.CacheControl(immutableCacheControl),
	)
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return key, nil
}

// Delete removes the object. OSS treats deleting a missing key as success.
func (s *ossStorage) Delete(ctx context.Context, key string) error {
	cleaned, err := cleanKey(key)
	if err != nil {
		return err
	}
	if err := s.bucket.DeleteObject(joinPrefix(s.prefix, cleaned), oss.WithContext(ctx)); err != nil {
		return fmt.Errorf("delete object %s: %w", cleaned, err)
	}
	return nil
}

var _ Storage = (*ossStorage)(nil)
