package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type AvatarService struct {
	mock.Mock
}

func (m *AvatarService) Upload(ctx context.Context, userID uuid.UUID, fileSize int64, contentType string, reader io.Reader) (string, error) {
	args := m.Called(ctx, userID, fileSize, contentType, reader)
	return args.String(0), args.Error(1)
}

func (m *AvatarService) Delete(ctx context.Context, avatarURL string) error {
	args := m.Called(ctx, avatarURL)
	return args.Error(0)
}
