package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"t-convert/internals/core/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Helper to setup Fiber app with routes ---

func setupTestApp(apiKey string) *fiber.App {
	h := NewHandler(DefaultRateTable())
	h.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	return NewApp(h, apiKey)
}

func doGet(t *testing.T, app *fiber.App, target string, header http.Header) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

// --- Tests for /currencies ---

func TestGetCurrencies(t *testing.T) {
	app := setupTestApp("")

	status, body := doGet(t, app, "/currencies", nil)
	assert.Equal(t, fiber.StatusOK, status)

	var currencies []domain.CurrencyInfo
	require.NoError(t, json.Unmarshal(body, &currencies))
	require.NotEmpty(t, currencies)
	assert.Equal(t, domain.CurrencyInfo{Code: "USD", Name: "US Dollar"}, currencies[0])
}

// --- Tests for /convert ---

func TestConvert_Success(t *testing.T) {
	app := setupTestApp("")

	status, body := doGet(t, app, "/convert?from=USD&to=EUR&date=2024-01-01&amount=100.00&format=json", nil)
	assert.Equal(t, fiber.StatusOK, status)

	var resp ConvertResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 0.92, resp.Info.Rate)
	assert.Equal(t, 92.0, resp.Result)
	assert.Equal(t, "2024-01-01", resp.Date)
	assert.True(t, resp.Historical)
}

func TestConvert_CrossRateThroughUSD(t *testing.T) {
	app := setupTestApp("")

	_, body := doGet(t, app, "/convert?from=EUR&to=GBP&amount=1", nil)

	var resp ConvertResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.InDelta(t, 0.79/0.92, resp.Info.Rate, 1e-8)
	assert.Equal(t, "2024-06-01", resp.Date, "date defaults to today (UTC)")
	assert.False(t, resp.Historical)
}

func TestConvert_Failures(t *testing.T) {
	app := setupTestApp("")

	tests := []struct {
		name   string
		target string
		status int
		code   string
	}{
		{"unknown source", "/convert?from=XXX&to=EUR&amount=1", fiber.StatusOK, "invalid_currency_code"},
		{"unknown target", "/convert?from=USD&to=eur&amount=1", fiber.StatusOK, "invalid_currency_code"},
		{"bad amount", "/convert?from=USD&to=EUR&amount=abc", fiber.StatusOK, "invalid_amount"},
		{"zero amount", "/convert?from=USD&to=EUR&amount=0", fiber.StatusOK, "invalid_amount"},
		{"bad date", "/convert?from=USD&to=EUR&amount=1&date=2024/01/01", fiber.StatusOK, "invalid_date"},
		{"future date", "/convert?from=USD&to=EUR&amount=1&date=2099-01-01", fiber.StatusOK, "invalid_date"},
		{"missing currencies", "/convert?amount=1", fiber.StatusBadRequest, "bad_request"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, body := doGet(t, app, tc.target, nil)
			assert.Equal(t, tc.status, status)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(body, &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, tc.code, resp.Error)
			assert.NotEmpty(t, resp.Description)
		})
	}
}

func TestConvert_UnknownCodeNamed(t *testing.T) {
	app := setupTestApp("")

	_, body := doGet(t, app, "/convert?from=USD&to=XYZ&amount=1", nil)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Contains(t, resp.Description, "XYZ")
}

// --- API key ---

func TestRequireAPIKey(t *testing.T) {
	app := setupTestApp("secret")

	status, body := doGet(t, app, "/currencies", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, "invalid_api_key", resp.Error)

	status, _ = doGet(t, app, "/currencies?api_key=secret", nil)
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = doGet(t, app, "/convert?from=USD&to=EUR&amount=1", http.Header{"Authorization": {"Bearer secret"}})
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = doGet(t, app, "/convert?from=USD&to=EUR&amount=1", http.Header{"Authorization": {"Bearer wrong"}})
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestHealth(t *testing.T) {
	app := setupTestApp("secret")

	status, body := doGet(t, app, "/health", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"status":"UP"}`, string(body))
}
