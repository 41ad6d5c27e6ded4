package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haneul-dev/virtual-gallery/internal/utils"
)

const testSecret = "test-secret"

func runGuard(t *testing.T, authHeader string) (*httptest.ResponseRecorder, echo.Context, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/galleries/myGallery", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	next := func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	}
	require.NoError(t, JWTAuth(testSecret)(next)(c))
	return rec, c, called
}

func TestJWTAuthInjectsClaims(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 42, "jiwoo", 5)
	require.NoError(t, err)

	rec, c, called := runGuard(t, "Bearer "+tok.Token)
	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 42, c.Get("user_id"))
	assert.Equal(t, "jiwoo", c.Get("nickname"))
}

func TestJWTAuthRejectsMissingToken(t *testing.T) {
	rec, _, called := runGuard(t, "")
	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestJWTAuthRejectsForgedToken(t *testing.T) {
	tok, err := utils.NewAccessToken("other-secret", 42, "jiwoo", 5)
	require.NoError(t, err)

	rec, _, called := runGuard(t, "Bearer "+tok.Token)
	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthRejectsExpiredToken(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 42, "jiwoo", -5)
	require.NoError(t, err)

	rec, _, called := runGuard(t, "Bearer "+tok.Token)
	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
