package service

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

const (
	// Quality settings
	qualityUpload = 82
	// Size settings (max dimension)
	maxSizeUpload = 1600
)

// OptimizeImage downsizes a JPEG or PNG larger than maxSizeUpload on either
// side, keeping its format. Smaller images, gif and webp are returned as is.
func OptimizeImage(data []byte, contentType string) ([]byte, error) {
	var format imaging.Format
	switch contentType {
	case "image/jpeg", "image/jpg":
		format = imaging.JPEG
	case "image/png":
		format = imaging.PNG
	default:
		return data, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() <= maxSizeUpload && bounds.Dy() <= maxSizeUpload {
		return data, nil
	}

	// Fit keeps the aspect ratio
	resized := imaging.Fit(img, maxSizeUpload, maxSizeUpload, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format, imaging.JPEGQuality(qualityUpload)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}
