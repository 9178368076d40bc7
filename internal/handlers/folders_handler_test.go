package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/eventgallery/gateway/internal/gallery"
	"github.com/eventgallery/gateway/internal/models"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestFoldersList(t *testing.T) {
	e := echo.New()
	svc := new(MockGalleryService)
	svc.On("ListFolders", mock.Anything).Return([]models.Folder{
		{Name: "tech-workshop-2025", Path: "tech-workshop-2025/"},
		{Name: "my-event", Path: "my-event/"},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/folders", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, NewFoldersHandler(svc).List(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(2), body["count"])
	folders := body["folders"].([]interface{})
	first := folders[0].(map[string]interface{})
	assert.Equal(t, "tech-workshop-2025", first["name"])
	assert.Equal(t, "tech-workshop-2025/", first["path"])
}

func TestFoldersListStoreError(t *testing.T) {
	e := echo.New()
	svc := new(MockGalleryService)
	svc.On("ListFolders", mock.Anything).Return([]models.Folder{}, errors.New("connection refused"))

	req := httptest.NewRequest(http.MethodGet, "/api/folders", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, NewFoldersHandler(svc).List(c))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "connection refused", body["details"])
}

func TestFoldersCreate(t *testing.T) {
	e := echo.New()
	svc := new(MockGalleryService)
	svc.On("CreateFolder", mock.Anything, "Tech Workshop 2025!").
		Return(models.Folder{Name: "tech-workshop-2025", Path: "tech-workshop-2025/"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/folders",
		strings.NewReader(`{"name":"Tech Workshop 2025!"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, NewFoldersHandler(svc).Create(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "tech-workshop-2025", data["name"])
	assert.Equal(t, "tech-workshop-2025/", data["path"])
}

func TestFoldersCreateEmptyName(t *testing.T) {
	e := echo.New()
	svc := new(MockGalleryService)
	svc.On("CreateFolder", mock.Anything, "!!!").Return(models.Folder{}, gallery.ErrEmptyName)

	req := httptest.NewRequest(http.MethodPost, "/api/folders", strings.NewReader(`{"name":"!!!"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, NewFoldersHandler(svc).Create(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Folder name is required", decodeBody(t, rec)["error"])
}

func TestFoldersCreateConflict(t *testing.T) {
	e := echo.New()
	svc := new(MockGalleryService)
	svc.On("CreateFolder", mock.Anything, "evt").Return(models.Folder{}, gallery.ErrFolderExists)

	req := httptest.NewRequest(http.MethodPost, "/api/folders", strings.NewReader(`{"name":"evt"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, NewFoldersHandler(svc).Create(c))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Folder already exists", decodeBody(t, rec)["error"])
}

func TestFoldersRename(t *testing.T) {
	e := echo.New()
	svc := new(MockGalleryService)
	svc.On("RenameFolder", mock.Anything, "old-name", "new-name").
		Return(models.RenameResult{OldName: "old-name", NewName: "new-name", Moved: 3}, nil)

	req := httptest.NewRequest(http.MethodPut, "/api/folders/old-name",
		strings.NewReader(`{"name":"new-name"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("old-name")

	require.NoError(t, NewFoldersHandler(svc).Rename(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "old-name", body["oldName"])
	assert.Equal(t, "new-name", body["newName"])
}

func TestFoldersRenameMissingName(t *testing.T) {
	e := echo.New()
	svc := new(MockGalleryService)

	req := httptest.NewRequest(http.MethodPut, "/api/folders/old-name", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("old-name")

	require.NoError(t, NewFoldersHandler(svc).Rename(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "RenameFolder")
}

func TestFoldersRenameNotFound(t *testing.T) {
	e := echo.New()
	svc := new(MockGalleryService)
	svc.On("RenameFolder", mock.Anything, "ghost", "new-name").
		Return(models.RenameResult{}, gallery.ErrFolderNotFound)

	req := httptest.NewRequest(http.MethodPut, "/api/folders/ghost",
		strings.NewReader(`{"name":"new-name"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("ghost")

	require.NoError(t, NewFoldersHandler(svc).Rename(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Folder not found", decodeBody(t, rec)["error"])
}

func TestFoldersRenamePartialFailure(t *testing.T) {
	e := echo.New()
	svc := new(MockGalleryService)
	svc.On("RenameFolder", mock.Anything, "old-name", "new-name").
		Return(models.RenameResult{
			OldName: "old-name", NewName: "new-name",
			Moved: 2, Failed: 1, FailedKeys: []string{"old-name/x.jpg"},
		}, nil)

	req := httptest.NewRequest(http.MethodPut, "/api/folders/old-name",
		strings.NewReader(`{"name":"new-name"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("old-name")

	require.NoError(t, NewFoldersHandler(svc).Rename(c))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, float64(2), body["moved"])
	assert.Equal(t, float64(1), body["failed"])
}

func TestFoldersDelete(t *testing.T) {
	e := echo.New()
	svc := new(MockGalleryService)
	svc.On("DeleteFolder", mock.Anything, "evt").
		Return(models.DeleteFolderResult{Folder: "evt", Deleted: 3}, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/folders/evt", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("evt")

	require.NoError(t, NewFoldersHandler(svc).Delete(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "evt", body["folder"])
	assert.Equal(t, float64(3), body["deletedItems"])
}

func TestFoldersDeleteNotFound(t *testing.T) {
	e := echo.New()
	svc := new(MockGalleryService)
	svc.On("DeleteFolder", mock.Anything, "ghost-folder").
		Return(models.DeleteFolderResult{}, gallery.ErrFolderNotFound)

	req := httptest.NewRequest(http.MethodDelete, "/api/folders/ghost-folder", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("ghost-folder")

	require.NoError(t, NewFoldersHandler(svc).Delete(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Folder not found or is empty", body["error"])
}

func TestFoldersDeletePartialFailure(t *testing.T) {
	e := echo.New()
	svc := new(MockGalleryService)
	svc.On("DeleteFolder", mock.Anything, "evt").
		Return(models.DeleteFolderResult{
			Folder: "evt", Deleted: 2, Failed: 1, FailedKeys: []string{"evt/stuck.jpg"},
		}, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/folders/evt", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("evt")

	require.NoError(t, NewFoldersHandler(svc).Delete(c))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, float64(2), body["deletedItems"])
	assert.Equal(t, float64(1), body["failed"])
}
