package handlers

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bluestock/ipo-platform/services"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The handlers below are exercised only on paths that reject the request
// before any query runs, so a service with no database is safe.
func ipoTestApp() *fiber.App {
	h := NewIPOHandler(services.NewIPOService(nil))
	app := fiber.New()
	app.Post("/api/ipo", h.CreateIPO)
	app.Get("/api/ipos/search", h.SearchIPOs)
	app.Get("/api/ipos/:id", h.GetIPO)
	app.Put("/api/iposupdate/:id", h.UpdateIPOTerms)
	app.Delete("/api/ipo/:id", h.DeleteIPO)
	return app
}

func TestCreateIPOMissingFields(t *testing.T) {
	app := ipoTestApp()

	req := httptest.NewRequest("POST", "/api/ipo", strings.NewReader(`{"company_id": 1}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Missing required fields")
}

func TestCreateIPOMalformedBody(t *testing.T) {
	app := ipoTestApp()

	req := httptest.NewRequest("POST", "/api/ipo", strings.NewReader(`{not json`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCreateIPOInvalidDates(t *testing.T) {
	app := ipoTestApp()

	payload := `{
		"company_id": 1,
		"api_source_id": "src-1",
		"price_per_ipo": 42,
		"issue_size": "3000000",
		"opening_date": "15/01/2024",
		"closing_date": "2024-01-20"
	}`
	req := httptest.NewRequest("POST", "/api/ipo", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "opening_date")
}

func TestGetIPOInvalidID(t *testing.T) {
	app := ipoTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/api/ipos/abc", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSearchIPOsInvalidPrice(t *testing.T) {
	app := ipoTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/api/ipos/search?minPrice=cheap", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Invalid minPrice")
}

func TestUpdateIPOTermsMissingFields(t *testing.T) {
	app := ipoTestApp()

	req := httptest.NewRequest("PUT", "/api/iposupdate/3", strings.NewReader(`{"price_band": "42"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "All fields are required")
}

func TestUpdateIPOTermsNonNumeric(t *testing.T) {
	app := ipoTestApp()

	payload := `{"price_band": "cheap", "issue_size": "3000000", "issue_type": "Book Built"}`
	req := httptest.NewRequest("PUT", "/api/iposupdate/3", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Invalid data format")
}

func TestDeleteIPOInvalidID(t *testing.T) {
	app := ipoTestApp()

	resp, err := app.Test(httptest.NewRequest("DELETE", "/api/ipo/-1", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
