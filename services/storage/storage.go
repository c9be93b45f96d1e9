package storage

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"

	"shelfspace/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const receiptFolder = "settlement-receipts"

// NewCloudinaryStorageService builds the receipt store from the loaded
// application config.
func NewCloudinaryStorageService() (StorageService, error) {
	cfg := config.AppConfig
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	return &CloudinaryStorageService{
		cld:       cld,
		cloudName: cfg.CloudinaryCloudName,
		apiSecret: cfg.CloudinaryAPISecret,
	}, nil
}

func (s *CloudinaryStorageService) UploadReceipt(ctx context.Context, localFilePath string) (string, error) {
	result, err := s.cld.Upload.Upload(ctx, localFilePath, uploader.UploadParams{
		Folder: receiptFolder,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload receipt: %w", err)
	}
	if result.PublicID == "" {
		return "", fmt.Errorf("upload returned no public ID")
	}
	return result.PublicID, nil
}

// GetReceiptURL signs a short-lived authenticated URL so the receipt is
// never publicly addressable.
func (s *CloudinaryStorageService) GetReceiptURL(ctx context.Context, publicID string, expires time.Duration) (string, error) {
	expiresAt := time.Now().Add(expires).Unix()
	stringToSign := fmt.Sprintf("expires_at=%d&public_id=%s%s", expiresAt, publicID, s.apiSecret)
	h := sha1.New()
	h.Write([]byte(stringToSign))
	signature := hex.EncodeToString(h.Sum(nil))
	return fmt.Sprintf("https://res.cloudinary.com/%s/image/authenticated/s--%s--/expires_%d/%s",
		s.cloudName, signature, expiresAt, publicID), nil
}

func (s *CloudinaryStorageService) DeleteReceipt(ctx context.Context, publicID string) error {
	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("failed to delete receipt: %w", err)
	}
	return nil
}
