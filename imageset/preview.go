package imageset

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image/jpeg"
	"io"
	"mime/multipart"

	"github.com/disintegration/imaging"
)

const (
	previewMaxDim  = 300
	previewQuality = 60
)

// renderPreview returns a data URL for the file. Decodable images are shrunk
// to a JPEG thumbnail; anything else (webp has no decoder here) is inlined
// as is.
func renderPreview(ctx context.Context, f File) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	rc, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer rc.Close()

	raw, err := io.ReadAll(io.LimitReader(rc, MaxFileSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return dataURL(f.ContentType(), raw), nil
	}

	thumb := imaging.Fit(img, previewMaxDim, previewMaxDim, imaging.Lanczos)
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: previewQuality}); err != nil {
		return dataURL(f.ContentType(), raw), nil
	}
	return dataURL("image/jpeg", buf.Bytes()), nil
}

func dataURL(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// multipartFile adapts an uploaded form file
type multipartFile struct {
	fh *multipart.FileHeader
}

// FromMultipart wraps a multipart file header as a File
func FromMultipart(fh *multipart.FileHeader) File { return multipartFile{fh: fh} }

func (m multipartFile) Name() string                 { return m.fh.Filename }
func (m multipartFile) ContentType() string          { return m.fh.Header.Get("Content-Type") }
func (m multipartFile) Size() int64                  { return m.fh.Size }
func (m multipartFile) Open() (io.ReadCloser, error) { return m.fh.Open() }
