package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type UploadHandler struct {
	svc GalleryService
}

func NewUploadHandler(svc GalleryService) *UploadHandler {
	return &UploadHandler{svc: svc}
}

// Upload accepts a multipart file and stores it under the target folder,
// defaulting to the shared uploads folder. The declared content type is
// passed through untouched; sniffing and size caps are left to the HTTP
// layer and the store.
func (h *UploadHandler) Upload(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return fail(c, http.StatusBadRequest, "No file uploaded")
	}

	src, err := file.Open()
	if err != nil {
		return failWithDetails(c, http.StatusInternalServerError, "Failed to read upload", err)
	}
	defer func() { _ = src.Close() }()

	folder := c.FormValue("folder")
	result, err := h.svc.Upload(c.Request().Context(), folder, file.Filename,
		file.Header.Get("Content-Type"), file.Size, src)
	if err != nil {
		return failWithDetails(c, http.StatusInternalServerError, "Failed to upload file", err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "File uploaded successfully!",
		"data":    result,
	})
}
