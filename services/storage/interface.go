package storage

import (
	"context"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
)

// StorageService stores payout receipt blobs. Receipts are write-once: the
// public ID returned by an upload is what gets recorded on the clearance
// as the receipt reference.
type StorageService interface {
	// UploadReceipt uploads a local file into the receipts folder and
	// returns its permanent public ID.
	UploadReceipt(ctx context.Context, localFilePath string) (string, error)

	// GetReceiptURL returns a signed, short-lived download URL for a
	// previously uploaded receipt.
	GetReceiptURL(ctx context.Context, publicID string, expires time.Duration) (string, error)

	DeleteReceipt(ctx context.Context, publicID string) error
}

// CloudinaryStorageService implements StorageService on Cloudinary.
type CloudinaryStorageService struct {
	cld       *cloudinary.Cloudinary
	cloudName string
	apiSecret string
}
