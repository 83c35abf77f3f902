package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"inventory-service/pkg/config"
	"inventory-service/pkg/jwtutil"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authTestContext(t *testing.T, authorization string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/api/items", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func TestAuthMiddleware(t *testing.T) {
	jwtutil.Initialize(&config.JWTConfig{SigningKey: "test-signing-key", ExpirationHours: 1})

	next := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}

	t.Run("missing header", func(t *testing.T) {
		c, rec := authTestContext(t, "")
		require.NoError(t, AuthMiddleware(next)(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		c, rec := authTestContext(t, "Basic abc123")
		require.NoError(t, AuthMiddleware(next)(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		c, rec := authTestContext(t, "Bearer not.a.token")
		require.NoError(t, AuthMiddleware(next)(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token stores identity", func(t *testing.T) {
		token, err := jwtutil.GenerateToken("user-1", "Dr. Tan", "admin")
		require.NoError(t, err)

		c, rec := authTestContext(t, "Bearer "+token)
		require.NoError(t, AuthMiddleware(next)(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "user-1", c.Get("user_id"))
		assert.Equal(t, "admin", c.Get("user_role"))
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	next := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}

	t.Run("generates an id when absent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		c := echo.New().NewContext(req, rec)

		require.NoError(t, RequestIDMiddleware(next)(c))
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})

	t.Run("propagates an existing id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("X-Request-ID", "req-42")
		rec := httptest.NewRecorder()
		c := echo.New().NewContext(req, rec)

		require.NoError(t, RequestIDMiddleware(next)(c))
		assert.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))
	})
}
