package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lannisterpay/internal/repositories"
	"lannisterpay/internal/services/fees"
)

func newTestApp() *fiber.App {
	store := repositories.NewMemoryStore()
	service := fees.NewService(store, fees.PolicyReplace, nil, nil)
	handler := NewFeeHandler(service)

	app := fiber.New()
	app.Post("/fees", handler.SubmitSpecification)
	app.Post("/compute-transaction-fee", handler.ComputeTransactionFee)
	app.Get("/health", HealthCheck(store))
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (*http.Response, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return resp, decoded
}

const specBody = `{"FeeConfigurationSpec": "LNPY1221 NGN * *(*) : APPLY PERC 1.4\nLNPY1223 NGN LOCL CREDIT-CARD(*) : APPLY FLAT_PERC 50:1.4"}`

const transactionBody = `{
	"ID": 91203,
	"Amount": 5000,
	"Currency": "NGN",
	"CurrencyCountry": "NG",
	"Customer": {"ID": 2211232, "EmailAddress": "anonimized29900@anon.io", "FullName": "Abel Eden", "BearsFee": true},
	"PaymentEntity": {"ID": 2203454, "Issuer": "GTBANK", "Brand": "MASTERCARD", "Number": "530191******2903", "SixID": 530191, "Type": "CREDIT-CARD", "Country": "NG"}
}`

func TestSubmitSpecification(t *testing.T) {
	app := newTestApp()

	resp, body := postJSON(t, app, "/fees", specBody)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestSubmitSpecificationRejectsBadLine(t *testing.T) {
	app := newTestApp()

	resp, body := postJSON(t, app, "/fees",
		`{"FeeConfigurationSpec": "LNPY122 NGN * *(*) : APPLY PERC 1.4"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "id length must be at least 8 characters long", body["Error"])
}

func TestComputeTransactionFee(t *testing.T) {
	app := newTestApp()

	resp, _ := postJSON(t, app, "/fees", specBody)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := postJSON(t, app, "/compute-transaction-fee", transactionBody)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "LNPY1223", body["AppliedFeeID"])
	assert.Equal(t, 120.0, body["AppliedFeeValue"])
	assert.Equal(t, 5120.0, body["ChargeAmount"])
	assert.Equal(t, 5000.0, body["SettlementAmount"])
}

func TestComputeTransactionFeeNoMatch(t *testing.T) {
	app := newTestApp()

	resp, _ := postJSON(t, app, "/fees", specBody)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	usd := strings.Replace(transactionBody, `"Currency": "NGN"`, `"Currency": "USD"`, 1)
	usd = strings.Replace(usd, `"CurrencyCountry": "NG"`, `"CurrencyCountry": "US"`, 1)

	resp, body := postJSON(t, app, "/compute-transaction-fee", usd)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "No fee configuration for USD transactions.", body["Error"])
}

func TestComputeTransactionFeeInvalidBody(t *testing.T) {
	app := newTestApp()

	resp, body := postJSON(t, app, "/compute-transaction-fee", `{"Amount": -1}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotEmpty(t, body["Error"])
}

func TestHealth(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// unreachableStore is a rule store whose backing system is down.
type unreachableStore struct {
	*repositories.MemoryStore
}

func (unreachableStore) HealthCheck(context.Context) error {
	return errors.New("connection refused")
}

func TestHealthReportsUnreachableStore(t *testing.T) {
	store := unreachableStore{repositories.NewMemoryStore()}
	app := fiber.New()
	app.Get("/health", HealthCheck(store))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "unreachable", body["store"])
}
