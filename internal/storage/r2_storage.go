package storage

import (
	"bulletin/internal/config"
	"fmt"
	"strings"
)

// NewR2Storage connects to a Cloudflare R2 bucket through the S3 API. The
// endpoint is derived from the account id unless set explicitly.
func NewR2Storage(cfg config.Config) (Storage, error) {
	settings := s3Settings{
		Bucket:          strings.TrimSpace(cfg.StorageR2Bucket),
		Prefix:          cfg.StorageR2Prefix,
		Region:          strings.TrimSpace(cfg.StorageR2Region),
		Endpoint:        r2Endpoint(cfg.StorageR2Endpoint, cfg.StorageR2AccountID),
		AccessKeyID:     strings.TrimSpace(cfg.StorageR2AccessKeyID),
		SecretAccessKey: strings.TrimSpace(cfg.StorageR2SecretAccessKey),
		ForcePathStyle:  true,
	}
	if settings.Region == "" {
		settings.Region = "auto"
	}
	if err := requireSettings(TypeR2, map[string]string{
		"STORAGE_R2_BUCKET":                            settings.Bucket,
		"STORAGE_R2_ACCESS_KEY_ID":                     settings.AccessKeyID,
		"STORAGE_R2_SECRET_ACCESS_KEY":                 settings.SecretAccessKey,
		"STORAGE_R2_ENDPOINT or STORAGE_R2_ACCOUNT_ID": settings.Endpoint,
	}); err != nil {
		return nil, err
	}
	return newRemoteS3Storage(settings), nil
}

func r2Endpoint(endpoint, accountID string) string {
	if endpoint = strings.TrimSpace(endpoint); endpoint != "" {
		return endpoint
	}
	if accountID = strings.TrimSpace(accountID); accountID != "" {
		return fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID)
	}
	return ""
}
