package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"

	"mountify/config"
)

// StorageService stores uploaded documents and returns their public IDs.
type StorageService interface {
	UploadDocument(ctx context.Context, folder, name string, data []byte) (string, error)
	DeleteDocument(ctx context.Context, publicID string) error
}

// CloudinaryStorage implements StorageService on Cloudinary.
type CloudinaryStorage struct {
	client *cloudinary.Cloudinary
	logger *zap.Logger
}

// NewCloudinaryStorage builds the client from config. Returns an error when
// credentials are missing rather than failing on first upload.
func NewCloudinaryStorage(logger *zap.Logger) (*CloudinaryStorage, error) {
	cfg := config.AppConfig
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not configured")
	}
	client, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to init cloudinary: %w", err)
	}
	return &CloudinaryStorage{client: client, logger: logger}, nil
}

func (s *CloudinaryStorage) UploadDocument(ctx context.Context, folder, name string, data []byte) (string, error) {
	resp, err := s.client.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder:   folder,
		PublicID: name,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload document: %w", err)
	}
	s.logger.Info("document uploaded",
		zap.String("folder", folder), zap.String("publicID", resp.PublicID))
	return resp.PublicID, nil
}

func (s *CloudinaryStorage) DeleteDocument(ctx context.Context, publicID string) error {
	if _, err := s.client.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}
