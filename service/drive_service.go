package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"mugix-storefront/utils"
)

// DriveStorage stores images in a Google Drive folder and serves them
// through public links. Writes go through a circuit breaker so a Drive
// outage fails uploads fast instead of stalling every save.
type DriveStorage struct {
	client   *drive.Service
	folderID string
	breaker  *gobreaker.CircuitBreaker
	logger   *zap.Logger
}

// NewDriveStorage creates a DriveStorage.
// credentialsPath should be the path to the Service Account JSON file
func NewDriveStorage(ctx context.Context, credentialsPath, folderID string, logger *zap.Logger) (*DriveStorage, error) {
	if folderID == "" {
		return nil, fmt.Errorf("DRIVE_FOLDER_ID is required for the drive upload backend")
	}

	// option.WithCredentialsFile handles Service Account authentication
	client, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DriveStorage{
		client:   client,
		folderID: folderID,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "drive-upload",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Warn("circuit breaker state changed",
					zap.String("breaker", name),
					zap.String("from", from.String()),
					zap.String("to", to.String()))
			},
		}),
		logger: logger,
	}, nil
}

var _ Storage = (*DriveStorage)(nil)

// Save uploads the file into the folder, shares it read-only with anyone
// and returns the direct view link.
func (s *DriveStorage) Save(ctx context.Context, name, contentType string, data []byte) (string, error) {
	return utils.ExecuteWithBreaker(s.breaker, func() (string, error) {
		file, err := s.client.Files.Create(&drive.File{
			Name:     name,
			Parents:  []string{s.folderID},
			MimeType: contentType,
		}).
			Media(bytes.NewReader(data), googleapi.ContentType(contentType)).
			Fields("id").
			Context(ctx).
			Do()
		if err != nil {
			return "", fmt.Errorf("failed to upload %s to drive: %w", name, err)
		}

		_, err = s.client.Permissions.Create(file.Id, &drive.Permission{
			Type: "anyone",
			Role: "reader",
		}).Context(ctx).Do()
		if err != nil {
			return "", fmt.Errorf("failed to share %s: %w", name, err)
		}

		s.logger.Info("image uploaded to drive", zap.String("name", name), zap.String("file_id", file.Id))
		return fmt.Sprintf("https://drive.google.com/uc?id=%s", file.Id), nil
	})
}
