package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventgallery/gateway/internal/gallery"
)

type FoldersHandler struct {
	svc GalleryService
}

func NewFoldersHandler(svc GalleryService) *FoldersHandler {
	return &FoldersHandler{svc: svc}
}

// List returns every top-level folder.
func (h *FoldersHandler) List(c echo.Context) error {
	folders, err := h.svc.ListFolders(c.Request().Context())
	if err != nil {
		return failWithDetails(c, http.StatusInternalServerError, "Failed to list folders", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"count":   len(folders),
		"folders": folders,
	})
}

type createFolderRequest struct {
	Name string `json:"name"`
}

// Create sanitizes the requested name and creates the folder marker.
func (h *FoldersHandler) Create(c echo.Context) error {
	var req createFolderRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}

	folder, err := h.svc.CreateFolder(c.Request().Context(), req.Name)
	switch {
	case errors.Is(err, gallery.ErrEmptyName):
		return fail(c, http.StatusBadRequest, "Folder name is required")
	case errors.Is(err, gallery.ErrFolderExists):
		return fail(c, http.StatusConflict, "Folder already exists")
	case err != nil:
		return failWithDetails(c, http.StatusInternalServerError, "Failed to create folder", err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Folder created successfully",
		"data":    folder,
	})
}

type renameFolderRequest struct {
	Name string `json:"name"`
}

// Rename moves every object from the old prefix to the new one. Partial
// failure is reported distinctly from full success.
func (h *FoldersHandler) Rename(c echo.Context) error {
	oldName := c.Param("id")
	var req renameFolderRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if oldName == "" || req.Name == "" {
		return fail(c, http.StatusBadRequest, "Both old folder name and new folder name are required")
	}

	result, err := h.svc.RenameFolder(c.Request().Context(), oldName, req.Name)
	switch {
	case errors.Is(err, gallery.ErrFolderNotFound):
		return fail(c, http.StatusNotFound, "Folder not found")
	case err != nil:
		return failWithDetails(c, http.StatusInternalServerError, "Failed to rename folder", err)
	}

	if result.Failed > 0 {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success":    false,
			"error":      "Folder rename incomplete: some objects could not be moved",
			"oldName":    result.OldName,
			"newName":    result.NewName,
			"moved":      result.Moved,
			"failed":     result.Failed,
			"failedKeys": result.FailedKeys,
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Folder renamed successfully",
		"oldName": result.OldName,
		"newName": result.NewName,
	})
}

// Delete removes a folder and everything under it. Partial failure is
// reported distinctly from full success.
func (h *FoldersHandler) Delete(c echo.Context) error {
	name := c.Param("id")
	if name == "" {
		return fail(c, http.StatusBadRequest, "Folder name is required")
	}

	result, err := h.svc.DeleteFolder(c.Request().Context(), name)
	switch {
	case errors.Is(err, gallery.ErrFolderNotFound):
		return fail(c, http.StatusNotFound, "Folder not found or is empty")
	case err != nil:
		return failWithDetails(c, http.StatusInternalServerError, "Failed to delete folder", err)
	}

	if result.Failed > 0 {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success":      false,
			"error":        "Folder delete incomplete: some objects could not be removed",
			"folder":       result.Folder,
			"deletedItems": result.Deleted,
			"failed":       result.Failed,
			"failedKeys":   result.FailedKeys,
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":      true,
		"message":      "Folder and all its contents deleted successfully",
		"folder":       result.Folder,
		"deletedItems": result.Deleted,
	})
}
