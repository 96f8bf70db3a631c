package mocks

import (
	"context"

	"estate-manager/core/storage"

	"github.com/stretchr/testify/mock"
)

// MediaStore mocks storage.MediaStore.
type MediaStore struct {
	mock.Mock
}

func (m *MediaStore) Upload(ctx context.Context, localPath string, opts storage.UploadOptions) (storage.UploadResult, error) {
	args := m.Called(ctx, localPath, opts)
	return args.Get(0).(storage.UploadResult), args.Error(1)
}

func (m *MediaStore) Destroy(ctx context.Context, publicID string) error {
	args := m.Called(ctx, publicID)
	return args.Error(0)
}
