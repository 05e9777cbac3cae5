package catalog

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pupuk/storefront/internal/domain/shared"
	"github.com/pupuk/storefront/internal/infrastructure/logger"
)

// ImageStorage stores product images and serves them from a public URL.
type ImageStorage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	// KeyFromURL reports the object key behind a URL this storage produced.
	KeyFromURL(url string) (string, bool)
}

const imageKeyPrefix = "products/"

var (
	ErrUnsupportedImage = shared.NewDomainError("UNSUPPORTED_IMAGE", "Only JPEG, PNG, WebP or GIF images are accepted")
	ErrImageTooLarge    = shared.NewDomainError("IMAGE_TOO_LARGE", "Image exceeds the upload size limit")
)

var imageExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
}

// ImageUpload is one uploaded file.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// ImageResponse is the result of an upload.
type ImageResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// ImageService uploads product images.
type ImageService struct {
	storage ImageStorage
	maxSize int64
	logger  *zap.Logger
	newID   func() uuid.UUID
}

// NewImageService creates an ImageService. maxSize <= 0 disables the size check.
func NewImageService(storage ImageStorage, maxSize int64, logger *zap.Logger) *ImageService {
	return &ImageService{storage: storage, maxSize: maxSize, logger: logger, newID: uuid.New}
}

// Upload stores the image under products/{uuid}.{ext}.
func (s *ImageService) Upload(ctx context.Context, in ImageUpload) (*ImageResponse, error) {
	ext, err := imageExtension(in.Filename, in.ContentType)
	if err != nil {
		return nil, err
	}
	if s.maxSize > 0 && in.Size > s.maxSize {
		return nil, ErrImageTooLarge
	}

	key := fmt.Sprintf("%s%s.%s", imageKeyPrefix, s.newID(), ext)
	url, err := s.storage.Upload(ctx, key, in.Body, in.ContentType)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}
	logger.L(ctx, s.logger).Info("Product image uploaded", zap.String("key", key), zap.Int64("size", in.Size))
	return &ImageResponse{Key: key, URL: url}, nil
}

// Remove deletes an image previously returned by Upload. URLs that point
// elsewhere are left alone.
func (s *ImageService) Remove(ctx context.Context, url string) error {
	key, ok := s.storage.KeyFromURL(url)
	if !ok || !strings.HasPrefix(key, imageKeyPrefix) {
		return nil
	}
	return s.storage.Delete(ctx, key)
}

func imageExtension(filename, contentType string) (string, error) {
	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	want, ok := imageExtensions[ct]
	if !ok {
		return "", ErrUnsupportedImage
	}
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(filename)), ".")
	switch {
	case ext == want:
		return ext, nil
	case ext == "jpeg" && want == "jpg":
		return ext, nil
	}
	return want, nil
}
