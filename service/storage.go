package service

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"go.uber.org/zap"
)

// Storage persists an uploaded image and returns its public URL
type Storage interface {
	Save(ctx context.Context, name, contentType string, data []byte) (string, error)
}

// LocalStorage writes images under a directory served at publicPrefix
type LocalStorage struct {
	dir          string
	publicPrefix string
	logger       *zap.Logger
}

// NewLocalStorage ensures dir exists and returns a LocalStorage over it
func NewLocalStorage(dir, publicPrefix string, logger *zap.Logger) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStorage{dir: dir, publicPrefix: publicPrefix, logger: logger}, nil
}

var _ Storage = (*LocalStorage)(nil)

func (s *LocalStorage) Save(ctx context.Context, name, _ string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name = filepath.Base(name)
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}

	s.logger.Debug("image stored", zap.String("name", name), zap.Int("bytes", len(data)))
	return path.Join(s.publicPrefix, name), nil
}
