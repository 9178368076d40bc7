package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

type ImagesHandler struct {
	svc GalleryService
}

func NewImagesHandler(svc GalleryService) *ImagesHandler {
	return &ImagesHandler{svc: svc}
}

// List returns the media items in a folder. A folder with no qualifying
// media and a folder that does not exist both yield an empty list.
func (h *ImagesHandler) List(c echo.Context) error {
	folder := c.QueryParam("folder")
	if folder == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"success": false,
			"error":   "Folder parameter is required",
			"example": "/api/images?folder=event-name",
		})
	}

	images, err := h.svc.ListMedia(c.Request().Context(), folder)
	if err != nil {
		return failWithDetails(c, http.StatusInternalServerError, "Failed to list images", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"count":   len(images),
		"images":  images,
	})
}

type deleteImageRequest struct {
	Key    string `json:"key"`
	Folder string `json:"folder"`
}

// Delete removes a single media object. Deleting a key that is already
// gone succeeds; object-store deletes are idempotent.
func (h *ImagesHandler) Delete(c echo.Context) error {
	var req deleteImageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if req.Key == "" || req.Folder == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Missing required fields: key and folder are required",
		})
	}

	if err := h.svc.DeleteMedia(c.Request().Context(), req.Folder, req.Key); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error":   "Failed to delete image",
			"details": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Image deleted successfully"})
}

// Download streams a single object back to the caller with an attachment
// disposition.
func (h *ImagesHandler) Download(c echo.Context) error {
	folder := c.QueryParam("folder")
	key := c.QueryParam("key")
	if folder == "" || key == "" {
		return fail(c, http.StatusBadRequest, "Both folder and key parameters are required")
	}

	body, info, err := h.svc.Download(c.Request().Context(), folder, key)
	if err != nil {
		return fail(c, http.StatusNotFound, "Object not found")
	}
	defer func() { _ = body.Close() }()

	contentType := info.ContentType
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+key+`"`)
	c.Response().Header().Set(echo.HeaderContentLength, strconv.FormatInt(info.Size, 10))
	return c.Stream(http.StatusOK, contentType, body)
}
