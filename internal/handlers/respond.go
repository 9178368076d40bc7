// Package handlers exposes the gallery operations as a JSON HTTP API.
package handlers

import (
	"context"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/eventgallery/gateway/internal/models"
	"github.com/eventgallery/gateway/internal/storage"
)

// GalleryService is the surface the handlers need from the gallery layer.
type GalleryService interface {
	ListFolders(ctx context.Context) ([]models.Folder, error)
	ListMedia(ctx context.Context, folder string) ([]models.MediaItem, error)
	CreateFolder(ctx context.Context, name string) (models.Folder, error)
	RenameFolder(ctx context.Context, oldName, newName string) (models.RenameResult, error)
	DeleteFolder(ctx context.Context, name string) (models.DeleteFolderResult, error)
	DeleteMedia(ctx context.Context, folder, key string) error
	Upload(ctx context.Context, folder, filename, contentType string, size int64, body io.Reader) (models.UploadResult, error)
	Download(ctx context.Context, folder, key string) (io.ReadCloser, storage.ObjectInfo, error)
}

// fail writes the standard error envelope.
func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{"success": false, "error": message})
}

// failWithDetails writes the error envelope with the upstream message
// attached.
func failWithDetails(c echo.Context, status int, message string, err error) error {
	return c.JSON(status, echo.Map{"success": false, "error": message, "details": err.Error()})
}
