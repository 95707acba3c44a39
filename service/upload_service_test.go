package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mugix-storefront/imageset"
)

func encodedImage(t *testing.T, w, h int, format string) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x += 7 {
		img.Set(x, x%h, color.RGBA{R: 255, G: 128, A: 255})
	}
	var buf bytes.Buffer
	switch format {
	case "png":
		require.NoError(t, png.Encode(&buf, img))
	default:
		require.NoError(t, jpeg.Encode(&buf, img, nil))
	}
	return buf.Bytes()
}

func TestOptimizeImage(t *testing.T) {
	t.Run("large jpeg is downsized", func(t *testing.T) {
		out, err := OptimizeImage(encodedImage(t, 3200, 1600, "jpeg"), "image/jpeg")
		require.NoError(t, err)

		cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
		require.NoError(t, err)
		assert.Equal(t, "jpeg", format)
		assert.Equal(t, 1600, cfg.Width)
		assert.Equal(t, 800, cfg.Height)
	})

	t.Run("large png keeps its format", func(t *testing.T) {
		out, err := OptimizeImage(encodedImage(t, 2000, 400, "png"), "image/png")
		require.NoError(t, err)

		cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
		require.NoError(t, err)
		assert.Equal(t, "png", format)
		assert.Equal(t, 1600, cfg.Width)
	})

	t.Run("small image is untouched", func(t *testing.T) {
		in := encodedImage(t, 100, 100, "png")
		out, err := OptimizeImage(in, "image/png")
		require.NoError(t, err)
		assert.Equal(t, in, out)
	})

	t.Run("webp passes through", func(t *testing.T) {
		in := []byte("RIFF....WEBP")
		out, err := OptimizeImage(in, "image/webp")
		require.NoError(t, err)
		assert.Equal(t, in, out)
	})

	t.Run("corrupt jpeg", func(t *testing.T) {
		_, err := OptimizeImage([]byte("not an image"), "image/jpeg")
		assert.Error(t, err)
	})
}

func TestLocalStorage_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	s, err := NewLocalStorage(dir, "/uploads", zap.NewNop())
	require.NoError(t, err)

	url, err := s.Save(context.Background(), "../escape.png", "image/png", []byte("data"))
	require.NoError(t, err)

	assert.Equal(t, "/uploads/escape.png", url)
	got, err := os.ReadFile(filepath.Join(dir, "escape.png"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(got))
}

type testFile struct {
	name, contentType string
	data              []byte
}

func (f testFile) Name() string        { return f.name }
func (f testFile) ContentType() string { return f.contentType }
func (f testFile) Size() int64         { return int64(len(f.data)) }
func (f testFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.data)), nil
}

// recordingStorage keeps the last saved object
type recordingStorage struct {
	name string
	data []byte
	err  error
}

func (s *recordingStorage) Save(ctx context.Context, name, contentType string, data []byte) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.name, s.data = name, data
	return "/uploads/" + name, nil
}

func TestUploadService_Upload(t *testing.T) {
	store := &recordingStorage{}
	svc := NewUploadService(store, zap.NewNop())

	url, err := svc.Upload(context.Background(), testFile{
		name:        "../../photo.PNG",
		contentType: "image/png",
		data:        encodedImage(t, 10, 10, "png"),
	})

	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(store.name, ".png"))
	assert.NotContains(t, store.name, "photo")
	assert.Equal(t, "/uploads/"+store.name, url)
}

func TestUploadService_RejectsBeforeStoring(t *testing.T) {
	store := &recordingStorage{}
	svc := NewUploadService(store, zap.NewNop())

	_, err := svc.Upload(context.Background(), testFile{name: "a.pdf", contentType: "application/pdf", data: []byte("%PDF")})

	assert.ErrorIs(t, err, imageset.ErrUnsupportedType)
	assert.Empty(t, store.name)
}

func TestUploadService_StorageError(t *testing.T) {
	svc := NewUploadService(&recordingStorage{err: errors.New("disk full")}, zap.NewNop())

	_, err := svc.Upload(context.Background(), testFile{name: "a.gif", contentType: "image/gif", data: []byte("GIF89a")})

	assert.EqualError(t, err, "disk full")
}
