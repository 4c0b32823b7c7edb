package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bluestock/ipo-platform/services"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret"

func authTestApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Get("/protected", Authenticate(testSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"userId": c.Locals(LocalsUserID),
			"role":   c.Locals(LocalsRole),
		})
	})
	return app
}

func sessionRequest(token string) *http.Request {
	req := httptest.NewRequest("GET", "/protected", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	}
	return req
}

func TestAuthenticateNoCookie(t *testing.T) {
	app := authTestApp(t)

	resp, err := app.Test(sessionRequest(""))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Access Denied. No token provided.")
}

func TestAuthenticateGarbageToken(t *testing.T) {
	app := authTestApp(t)

	resp, err := app.Test(sessionRequest("garbage"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Invalid Token")
}

func TestAuthenticateWrongSecret(t *testing.T) {
	app := authTestApp(t)

	token, err := services.CreateSessionToken("some-other-secret", 5, "user")
	require.NoError(t, err)

	resp, err := app.Test(sessionRequest(token))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAuthenticateValidToken(t *testing.T) {
	app := authTestApp(t)

	token, err := services.CreateSessionToken(testSecret, 42, "admin")
	require.NoError(t, err)

	resp, err := app.Test(sessionRequest(token))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		UserID int    `json:"userId"`
		Role   string `json:"role"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Equal(t, 42, payload.UserID)
	assert.Equal(t, "admin", payload.Role)
}
