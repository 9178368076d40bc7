package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newGuardedServer(token string) *echo.Echo {
	e := echo.New()
	e.DELETE("/api/images", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, RequireToken(token))
	return e
}

func TestRequireTokenValid(t *testing.T) {
	e := newGuardedServer("s3cret")

	req := httptest.NewRequest(http.MethodDelete, "/api/images", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer s3cret")
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireTokenMissing(t *testing.T) {
	e := newGuardedServer("s3cret")

	req := httptest.NewRequest(http.MethodDelete, "/api/images", nil)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireTokenWrong(t *testing.T) {
	e := newGuardedServer("s3cret")

	req := httptest.NewRequest(http.MethodDelete, "/api/images", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer nope")
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireTokenDisabledWhenEmpty(t *testing.T) {
	e := newGuardedServer("")

	req := httptest.NewRequest(http.MethodDelete, "/api/images", nil)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
