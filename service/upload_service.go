package service

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mugix-storefront/imageset"
)

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// UploadService validates, optimizes and stores product images
type UploadService struct {
	storage Storage
	logger  *zap.Logger
}

// NewUploadService creates a new UploadService
func NewUploadService(storage Storage, logger *zap.Logger) *UploadService {
	return &UploadService{storage: storage, logger: logger}
}

var _ imageset.Uploader = (*UploadService)(nil)

// Upload stores one image under a random name and returns its URL
func (s *UploadService) Upload(ctx context.Context, f imageset.File) (string, error) {
	if err := imageset.Validate(f); err != nil {
		return "", err
	}

	rc, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", f.Name(), err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, imageset.MaxFileSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", f.Name(), err)
	}
	if len(data) > imageset.MaxFileSize {
		return "", imageset.ErrTooLarge
	}

	optimized, err := OptimizeImage(data, f.ContentType())
	if err != nil {
		return "", fmt.Errorf("%s: %w", f.Name(), err)
	}

	name := uuid.NewString() + extensions[f.ContentType()]
	url, err := s.storage.Save(ctx, name, f.ContentType(), optimized)
	if err != nil {
		s.logger.Error("image upload failed", zap.String("file", f.Name()), zap.Error(err))
		return "", err
	}

	s.logger.Info("image uploaded",
		zap.String("file", f.Name()),
		zap.String("url", url),
		zap.Int("original_bytes", len(data)),
		zap.Int("stored_bytes", len(optimized)))
	return url, nil
}
