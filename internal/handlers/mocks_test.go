package handlers

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/eventgallery/gateway/internal/models"
	"github.com/eventgallery/gateway/internal/storage"
)

// MockGalleryService implements GalleryService for handler tests.
type MockGalleryService struct {
	mock.Mock
}

func (m *MockGalleryService) ListFolders(ctx context.Context) ([]models.Folder, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Folder), args.Error(1)
}

func (m *MockGalleryService) ListMedia(ctx context.Context, folder string) ([]models.MediaItem, error) {
	args := m.Called(ctx, folder)
	return args.Get(0).([]models.MediaItem), args.Error(1)
}

func (m *MockGalleryService) CreateFolder(ctx context.Context, name string) (models.Folder, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(models.Folder), args.Error(1)
}

func (m *MockGalleryService) RenameFolder(ctx context.Context, oldName, newName string) (models.RenameResult, error) {
	args := m.Called(ctx, oldName, newName)
	return args.Get(0).(models.RenameResult), args.Error(1)
}

func (m *MockGalleryService) DeleteFolder(ctx context.Context, name string) (models.DeleteFolderResult, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(models.DeleteFolderResult), args.Error(1)
}

func (m *MockGalleryService) DeleteMedia(ctx context.Context, folder, key string) error {
	args := m.Called(ctx, folder, key)
	return args.Error(0)
}

func (m *MockGalleryService) Upload(ctx context.Context, folder, filename, contentType string, size int64, body io.Reader) (models.UploadResult, error) {
	args := m.Called(ctx, folder, filename, contentType, size, body)
	return args.Get(0).(models.UploadResult), args.Error(1)
}

func (m *MockGalleryService) Download(ctx context.Context, folder, key string) (io.ReadCloser, storage.ObjectInfo, error) {
	args := m.Called(ctx, folder, key)
	var rc io.ReadCloser
	if v := args.Get(0); v != nil {
		rc = v.(io.ReadCloser)
	}
	return rc, args.Get(1).(storage.ObjectInfo), args.Error(2)
}
