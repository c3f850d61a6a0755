package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dojoroom/room-booking/internal/utils"
)

const testSecret = "test-secret"

func runAuthed(t *testing.T, authHeader string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var gotName string
	h := JWTAuth(testSecret)(func(c echo.Context) error {
		gotName, _ = c.Get("name").(string)
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, gotName
}

func TestJWTAuth(t *testing.T) {
	t.Run("valid token passes identity through", func(t *testing.T) {
		tok, err := utils.NewAccessToken(testSecret, 7, "Jane Doe", 5)
		require.NoError(t, err)

		rec, name := runAuthed(t, "Bearer "+tok.Token)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Jane Doe", name)
	})

	t.Run("missing header", func(t *testing.T) {
		rec, _ := runAuthed(t, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		rec, _ := runAuthed(t, "Bearer not.a.jwt")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		tok, err := utils.NewAccessToken("other-secret", 7, "Jane Doe", 5)
		require.NoError(t, err)

		rec, _ := runAuthed(t, "Bearer "+tok.Token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
