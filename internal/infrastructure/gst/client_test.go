package gst

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/billcraft/billcraft-api/internal/config"
	"github.com/billcraft/billcraft-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) Validator {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(&config.GSTConfig{
		BaseURL: srv.URL,
		Secret:  "test-secret",
		Timeout: 2 * time.Second,
	})
}

func TestValidateSuccess(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/check/test-secret/27AAPFU0939F1ZV", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"flag": true,
			"message": "GSTIN found.",
			"data": {
				"lgnm": "UNIQUE TRADERS",
				"tradeNam": "Unique Traders",
				"sts": "Active",
				"rgdt": "01/07/2017",
				"ctb": "Partnership",
				"stj": "State - Maharashtra, Ward 12",
				"nba": ["Wholesale Business", "Retail Business"],
				"pradr": {
					"adr": "1st Floor, Market Road, Pune, Maharashtra, 411001",
					"addr": {"stcd": "Maharashtra", "pncd": "411001"}
				}
			}
		}`))
	})

	data, err := client.Validate(context.Background(), "27AAPFU0939F1ZV")
	require.NoError(t, err)
	require.NotNil(t, data)

	assert.Equal(t, "UNIQUE TRADERS", data.LegalName)
	assert.Equal(t, "UNIQUE TRADERS", data.Name())
	assert.Equal(t, "Active", data.Status)
	assert.Equal(t, "Maharashtra", data.PrimaryAddress.Addr.StateCode)
	assert.Equal(t, []string{"Wholesale Business", "Retail Business"}, data.NatureOfBusiness)
}

func TestValidateRejectedGSTIN(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"flag": false, "message": "Invalid GSTIN pattern", "data": null}`))
	})

	data, err := client.Validate(context.Background(), "BOGUS")
	assert.Nil(t, data)
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
	assert.Equal(t, "Invalid GSTIN pattern", appErr.Message)
}

func TestValidateRejectionWithoutMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"flag": false}`))
	})

	_, err := client.Validate(context.Background(), "27AAPFU0939F1ZV")
	require.Error(t, err)
	assert.Equal(t, "Invalid GST number", apperror.GetAppError(err).Message)
}

func TestValidateUpstreamStatusError(t *testing.T) {
	var calls int
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.Validate(context.Background(), "27AAPFU0939F1ZV")
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
	assert.Contains(t, appErr.Message, "503")
	// A definite registry answer is not retried
	assert.Equal(t, 1, calls)
}

func TestValidateRetriesMalformedResponseOnce(t *testing.T) {
	var calls int
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`not json`))
	})

	_, err := client.Validate(context.Background(), "27AAPFU0939F1ZV")
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	assert.Equal(t, http.StatusBadGateway, appErr.Code)
	assert.Equal(t, maxAttempts, calls)
}

func TestValidateMissingSecret(t *testing.T) {
	client := NewClient(&config.GSTConfig{
		BaseURL: "http://localhost:1",
		Secret:  "",
		Timeout: time.Second,
	})

	_, err := client.Validate(context.Background(), "27AAPFU0939F1ZV")
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, apperror.GetAppError(err).Code)
}
