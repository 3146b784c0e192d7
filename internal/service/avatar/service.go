package avatar

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"cagnotte-backend/internal/config"
	"cagnotte-backend/internal/domain"
)

const maxAvatarSize = 5 << 20

var allowedContentTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// Service stores user avatars in object storage and returns their public URL.
type Service interface {
	Upload(ctx context.Context, userID uuid.UUID, fileSize int64, contentType string, reader io.Reader) (string, error)
	Delete(ctx context.Context, avatarURL string) error
}

type service struct {
	minioClient *minio.Client
	cfg         *config.Config
}

func NewService(minioClient *minio.Client, cfg *config.Config) Service {
	return &service{minioClient: minioClient, cfg: cfg}
}

func (s *service) Upload(ctx context.Context, userID uuid.UUID, fileSize int64, contentType string, reader io.Reader) (string, error) {
	ext, ok := allowedContentTypes[contentType]
	if !ok {
		return "", fmt.Errorf("%w: unsupported image type %s", domain.ErrValidation, contentType)
	}
	if fileSize <= 0 || fileSize > maxAvatarSize {
		return "", fmt.Errorf("%w: avatar must be between 1 byte and 5MB", domain.ErrValidation)
	}

	// One object per user so re-uploads replace the previous avatar.
	storagePath := fmt.Sprintf("avatars/%s.%s", userID.String(), ext)

	_, err := s.minioClient.PutObject(ctx, s.cfg.MinIOBucket, storagePath, reader, fileSize, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	return s.publicURL(storagePath), nil
}

func (s *service) Delete(ctx context.Context, avatarURL string) error {
	prefix := s.publicURL("")
	if !strings.HasPrefix(avatarURL, prefix) {
		return nil
	}
	storagePath, err := url.PathUnescape(strings.TrimPrefix(avatarURL, prefix))
	if err != nil {
		return err
	}
	return s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, storagePath, minio.RemoveObjectOptions{})
}

func (s *service) publicURL(storagePath string) string {
	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket, url.PathEscape(storagePath))
}
